package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-tasks/internal/handler"
)

func registerTaskRoutes(r *echo.Group, h *handler.Handlers) {
	tasks := r.Group("/tasks")

	tasks.GET("", handler.Handle(h.Task.Handler, h.Task.GetTasks, http.StatusOK))
	tasks.POST("", handler.Handle(h.Task.Handler, h.Task.CreateTask, http.StatusCreated))
	tasks.GET("/:id", handler.Handle(h.Task.Handler, h.Task.GetTask, http.StatusOK))
	tasks.PATCH("/:id", handler.Handle(h.Task.Handler, h.Task.UpdateTask, http.StatusOK))
	tasks.DELETE("/:id", handler.Handle(h.Task.Handler, h.Task.DeleteTask, http.StatusOK))
}
