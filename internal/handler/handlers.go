package handler

import (
	"github.com/deppfellow/go-tasks/internal/server"
	"github.com/deppfellow/go-tasks/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single object.
type Handlers struct {
	Health *HealthHandler
	Task   *TaskHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Task:   NewTaskHandler(s, services.Task),
	}
}
