package task

import (
	"github.com/deppfellow/go-tasks/internal/model"
)

// ToEntity builds a new, unsaved task from a create payload.
func ToEntity(p *CreateTaskPayload) (*Task, error) {
	status, err := ParseStatus(p.Status)
	if err != nil {
		return nil, err
	}

	t := &Task{
		Title:       p.Title,
		Description: p.Description,
		Status:      status,
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	return t, nil
}

// ApplyUpdate copies the non-nil fields of p onto t. The ID is never
// touched. When the status is invalid t is left unchanged.
func ApplyUpdate(p *UpdateTaskPayload, t *Task) error {
	var status *Status
	if p.Status != nil {
		parsed, err := ParseStatus(*p.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if status != nil {
		t.Status = *status
	}
	return nil
}

func ToResponse(t *Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToResponseList(tasks []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, ToResponse(&tasks[i]))
	}
	return out
}

func ToResponsePage(page *model.Page[Task]) *model.Page[TaskResponse] {
	return model.MapPage(page, func(t Task) TaskResponse {
		return ToResponse(&t)
	})
}
