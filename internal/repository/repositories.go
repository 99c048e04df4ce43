package repository

import (
	"github.com/deppfellow/go-tasks/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Task *TaskRepository
}

// NewRepositories builds every repository over the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Task: NewTaskRepository(s.DB.Pool),
	}
}
