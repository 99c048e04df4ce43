package service

import (
	"github.com/deppfellow/go-tasks/internal/repository"
	"github.com/deppfellow/go-tasks/internal/server"
)

type Services struct {
	Task *TaskService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Task: NewTaskService(repos.Task, s.Config.Pagination),
	}
}
