// Package task holds the task entity, its request and response shapes and
// the mapping between them.
package task

import (
	"strings"
	"time"

	"github.com/deppfellow/go-tasks/internal/errs"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists every valid Status in declaration order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// StatusValuesMessage is reported for any unknown status value.
const StatusValuesMessage = "Expected values [TODO, IN_PROGRESS, DONE]"

// ParseStatus trims and upper-cases s and returns the matching Status.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range Statuses() {
		if candidate == status {
			return status, nil
		}
	}

	return "", &errs.InvalidFieldError{Field: "status", Message: StatusValuesMessage}
}

// StatusOf returns the Status spelled exactly as s, without trimming or
// case folding. Query parameters are matched this way.
func StatusOf(s string) (Status, error) {
	for _, status := range Statuses() {
		if Status(s) == status {
			return status, nil
		}
	}

	return "", &errs.InvalidFieldError{Field: "status", Message: StatusValuesMessage}
}

// Task is a row of the tasks table.
type Task struct {
	ID          int64
	Title       string
	Description *string
	DueDate     Date
	Status      Status
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
