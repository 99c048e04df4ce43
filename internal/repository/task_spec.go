package repository

import (
	"fmt"
	"maps"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/go-tasks/internal/errs"
	"github.com/deppfellow/go-tasks/internal/model"
	"github.com/deppfellow/go-tasks/internal/model/task"
)

// Spec is a composable predicate over the tasks table. A nil *Spec is a
// valid predicate that matches every row.
type Spec struct {
	clauses []string
	args    pgx.NamedArgs
}

// IsNotArchived excludes soft-deleted tasks.
func IsNotArchived() *Spec {
	return &Spec{clauses: []string{"archived = FALSE"}}
}

// HasStatus matches tasks in status. A nil status matches everything.
func HasStatus(status *task.Status) *Spec {
	if status == nil {
		return nil
	}
	return &Spec{
		clauses: []string{"status = @status"},
		args:    pgx.NamedArgs{"status": string(*status)},
	}
}

// HasDueDate matches tasks due on date. A nil date matches everything.
func HasDueDate(date *task.Date) *Spec {
	if date == nil {
		return nil
	}
	return &Spec{
		clauses: []string{"due_date = @due_date"},
		args:    pgx.NamedArgs{"due_date": date.Time},
	}
}

// Where combines specs with AND, skipping nil ones.
func Where(specs ...*Spec) *Spec {
	out := &Spec{args: pgx.NamedArgs{}}
	for _, s := range specs {
		out = out.And(s)
	}
	return out
}

// And returns a new spec matching both s and other.
func (s *Spec) And(other *Spec) *Spec {
	out := &Spec{args: pgx.NamedArgs{}}
	for _, part := range []*Spec{s, other} {
		if part == nil {
			continue
		}
		out.clauses = append(out.clauses, part.clauses...)
		maps.Copy(out.args, part.args)
	}
	return out
}

// SQL renders the WHERE clause, or "" when there is no predicate.
func (s *Spec) SQL() string {
	if s == nil || len(s.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(s.clauses, " AND ")
}

// Args returns a copy of the named arguments of s.
func (s *Spec) Args() pgx.NamedArgs {
	out := pgx.NamedArgs{}
	if s != nil {
		maps.Copy(out, s.args)
	}
	return out
}

// SortProperties are the task properties a listing may be sorted by.
var SortProperties = []string{"id", "title", "dueDate", "status"}

var sortColumns = map[string]string{
	"id":      "id",
	"title":   "title",
	"dueDate": "due_date",
	"status":  "status",
}

// InvalidSortPropertyError is the 400 returned for a property outside
// SortProperties.
func InvalidSortPropertyError(property string) *errs.HTTPError {
	return errs.NewBadRequestError(
		fmt.Sprintf("Invalid sort property: '%s'. Valid properties are: [%s]", property, strings.Join(SortProperties, ", ")),
		true, nil, nil,
	)
}

// ValidateSort checks every order against SortProperties.
func ValidateSort(orders []model.SortOrder) error {
	for _, o := range orders {
		if _, ok := sortColumns[o.Property]; !ok {
			return InvalidSortPropertyError(o.Property)
		}
	}
	return nil
}

// OrderBy compiles orders into an ORDER BY clause. Rows are always
// tie-broken by id ascending so paging is stable.
func OrderBy(orders []model.SortOrder) (string, error) {
	parts := make([]string, 0, len(orders)+1)
	hasID := false

	for _, o := range orders {
		column, ok := sortColumns[o.Property]
		if !ok {
			return "", InvalidSortPropertyError(o.Property)
		}
		if column == "id" {
			hasID = true
		}

		direction := model.ASC
		if o.Direction == model.DESC {
			direction = model.DESC
		}
		parts = append(parts, column+" "+string(direction))
	}

	if !hasID {
		parts = append(parts, "id ASC")
	}

	return " ORDER BY " + strings.Join(parts, ", "), nil
}
