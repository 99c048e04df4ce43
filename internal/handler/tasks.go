package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-tasks/internal/model"
	"github.com/deppfellow/go-tasks/internal/model/task"
	"github.com/deppfellow/go-tasks/internal/server"
)

// TaskService is the business logic TaskHandler calls.
type TaskService interface {
	CreateTask(ctx context.Context, payload *task.CreateTaskPayload) (*task.TaskResponse, error)
	GetTaskByID(ctx context.Context, id int64) (*task.TaskResponse, error)
	GetTasks(ctx context.Context, query *task.ListTasksQuery) (*model.Page[task.TaskResponse], error)
	UpdateTask(ctx context.Context, payload *task.UpdateTaskPayload) (*task.TaskResponse, error)
	DeleteTask(ctx context.Context, id int64) (int64, error)
}

type TaskHandler struct {
	Handler
	service TaskService
}

func NewTaskHandler(s *server.Server, service TaskService) *TaskHandler {
	return &TaskHandler{
		Handler: NewHandler(s),
		service: service,
	}
}

func (h *TaskHandler) GetTask(c echo.Context, req *task.GetTaskPayload) (model.Response[task.TaskResponse], error) {
	found, err := h.service.GetTaskByID(c.Request().Context(), req.ID)
	if err != nil {
		return model.Response[task.TaskResponse]{}, err
	}
	return model.NewResponse(*found), nil
}

func (h *TaskHandler) GetTasks(c echo.Context, req *task.ListTasksQuery) (model.PagedResponse[task.TaskResponse], error) {
	page, err := h.service.GetTasks(c.Request().Context(), req)
	if err != nil {
		return model.PagedResponse[task.TaskResponse]{}, err
	}
	return model.NewPagedResponse(page), nil
}

func (h *TaskHandler) CreateTask(c echo.Context, req *task.CreateTaskPayload) (model.Response[task.TaskResponse], error) {
	created, err := h.service.CreateTask(c.Request().Context(), req)
	if err != nil {
		return model.Response[task.TaskResponse]{}, err
	}
	return model.NewResponse(*created), nil
}

func (h *TaskHandler) UpdateTask(c echo.Context, req *task.UpdateTaskPayload) (model.Response[task.TaskResponse], error) {
	updated, err := h.service.UpdateTask(c.Request().Context(), req)
	if err != nil {
		return model.Response[task.TaskResponse]{}, err
	}
	return model.NewResponse(*updated), nil
}

func (h *TaskHandler) DeleteTask(c echo.Context, req *task.DeleteTaskPayload) (model.Response[int64], error) {
	id, err := h.service.DeleteTask(c.Request().Context(), req.ID)
	if err != nil {
		return model.Response[int64]{}, err
	}
	return model.NewResponse(id), nil
}
