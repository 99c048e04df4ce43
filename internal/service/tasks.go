package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/deppfellow/go-tasks/internal/config"
	"github.com/deppfellow/go-tasks/internal/model"
	"github.com/deppfellow/go-tasks/internal/model/task"
	"github.com/deppfellow/go-tasks/internal/repository"
)

// TaskRepository is the persistence TaskService depends on.
type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) (*task.Task, error)
	FindByIDNotArchived(ctx context.Context, id int64) (*task.Task, error)
	FindAll(ctx context.Context, spec *repository.Spec, req model.PageRequest) (*model.Page[task.Task], error)
	Update(ctx context.Context, id int64, mutate func(*task.Task) error) (*task.Task, error)
}

type TaskService struct {
	repo       TaskRepository
	pagination config.PaginationConfig
}

func NewTaskService(repo TaskRepository, pagination config.PaginationConfig) *TaskService {
	return &TaskService{repo: repo, pagination: pagination}
}

func (s *TaskService) CreateTask(ctx context.Context, payload *task.CreateTaskPayload) (*task.TaskResponse, error) {
	entity, err := task.ToEntity(payload)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, errors.Wrap(err, "create task")
	}

	response := task.ToResponse(created)
	return &response, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id int64) (*task.TaskResponse, error) {
	found, err := s.repo.FindByIDNotArchived(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get task %d", id)
	}

	response := task.ToResponse(found)
	return &response, nil
}

// GetTasks lists non-archived tasks, optionally filtered by status and due
// date. Sort properties are checked before the database is queried.
func (s *TaskService) GetTasks(ctx context.Context, query *task.ListTasksQuery) (*model.Page[task.TaskResponse], error) {
	req := model.NewPageRequest(query.Page, query.Size, query.Sort, s.pagination.DefaultSize, s.pagination.MaxSize)
	if err := repository.ValidateSort(req.Sort); err != nil {
		return nil, err
	}

	spec := repository.Where(
		repository.IsNotArchived(),
		repository.HasStatus(query.Status),
		repository.HasDueDate(query.DueDate),
	)

	page, err := s.repo.FindAll(ctx, spec, req)
	if err != nil {
		return nil, errors.Wrap(err, "list tasks")
	}

	return task.ToResponsePage(page), nil
}

// UpdateTask merges the non-nil fields of payload into the stored task.
func (s *TaskService) UpdateTask(ctx context.Context, payload *task.UpdateTaskPayload) (*task.TaskResponse, error) {
	updated, err := s.repo.Update(ctx, payload.ID, func(t *task.Task) error {
		return task.ApplyUpdate(payload, t)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "update task %d", payload.ID)
	}

	response := task.ToResponse(updated)
	return &response, nil
}

// DeleteTask archives the task and returns its id. Archived tasks are not
// found again, so a second delete is a 404.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) (int64, error) {
	_, err := s.repo.Update(ctx, id, func(t *task.Task) error {
		t.Archived = true
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "delete task %d", id)
	}

	return id, nil
}
