package task

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-tasks/internal/validation"
)

const dueDateFutureMessage = "Due date must be greater than present date"

// ------------------------------------------------------------

type CreateTaskPayload struct {
	Title       string  `json:"title" validate:"notblank,min=5"`
	Description *string `json:"description"`
	DueDate     *Date   `json:"dueDate" validate:"required"`
	Status      string  `json:"status" validate:"notblank"`
}

func (p *CreateTaskPayload) Validate() error {
	var extra []validation.CustomValidationError
	if p.DueDate != nil && !p.DueDate.IsFuture() {
		extra = append(extra, validation.CustomValidationError{Field: "dueDate", Message: dueDateFutureMessage})
	}
	return validation.Struct(p, extra...)
}

func (p *CreateTaskPayload) ValidationMessages() map[string]string {
	return map[string]string{
		"title.notblank":   "Title cannot be empty",
		"title.min":        "Title must be at least 5 characters",
		"dueDate.required": "Due date cannot be null",
		"status.notblank":  "status cannot be empty",
	}
}

// ------------------------------------------------------------

// UpdateTaskPayload is a partial update: nil fields are left unchanged.
type UpdateTaskPayload struct {
	ID          int64   `json:"-" param:"id"`
	Title       *string `json:"title" validate:"omitempty,min=5"`
	Description *string `json:"description"`
	DueDate     *Date   `json:"dueDate"`
	Status      *string `json:"status"`
}

func (p *UpdateTaskPayload) Bind(c echo.Context) error {
	if err := echo.PathParamsBinder(c).MustInt64("id", &p.ID).BindError(); err != nil {
		return err
	}
	return new(echo.DefaultBinder).BindBody(c, p)
}

func (p *UpdateTaskPayload) Validate() error {
	var extra []validation.CustomValidationError
	if p.DueDate != nil && !p.DueDate.IsFuture() {
		extra = append(extra, validation.CustomValidationError{Field: "dueDate", Message: dueDateFutureMessage})
	}
	return validation.Struct(p, extra...)
}

func (p *UpdateTaskPayload) ValidationMessages() map[string]string {
	return map[string]string{
		"title.min": "Title must be at least 5 characters",
	}
}

// ------------------------------------------------------------

type GetTaskPayload struct {
	ID int64 `param:"id"`
}

func (p *GetTaskPayload) Bind(c echo.Context) error {
	return echo.PathParamsBinder(c).MustInt64("id", &p.ID).BindError()
}

func (p *GetTaskPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type DeleteTaskPayload struct {
	ID int64 `param:"id"`
}

func (p *DeleteTaskPayload) Bind(c echo.Context) error {
	return echo.PathParamsBinder(c).MustInt64("id", &p.ID).BindError()
}

func (p *DeleteTaskPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

// ListTasksQuery holds the filters and paging parameters of GET /tasks.
// Zero Page and Size mean "use the default"; a page or size that is not a
// number is ignored the same way.
type ListTasksQuery struct {
	Status  *Status
	DueDate *Date
	Page    int
	Size    int
	Sort    []string
}

func (q *ListTasksQuery) Bind(c echo.Context) error {
	if raw := c.QueryParam("status"); raw != "" {
		status, err := StatusOf(raw)
		if err != nil {
			return echo.NewBindingError("status", []string{raw}, "failed to bind field value to Status", err)
		}
		q.Status = &status
	}

	var dueDate Date
	err := echo.QueryParamsBinder(c).
		FailFast(true).
		BindUnmarshaler("dueDate", &dueDate).
		Strings("sort", &q.Sort).
		BindError()
	if err != nil {
		return err
	}

	q.Page = lenientInt(c.QueryParam("page"))
	q.Size = lenientInt(c.QueryParam("size"))

	if !dueDate.IsZero() {
		q.DueDate = &dueDate
	}
	return nil
}

func (q *ListTasksQuery) Validate() error {
	return nil
}

// lenientInt parses a paging parameter, returning 0 for anything that is
// not an integer so the default applies.
func lenientInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// ------------------------------------------------------------

type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     Date      `json:"dueDate"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
