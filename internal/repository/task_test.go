package repository

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/deppfellow/go-tasks/internal/database"
	"github.com/deppfellow/go-tasks/internal/errs"
	"github.com/deppfellow/go-tasks/internal/model"
	"github.com/deppfellow/go-tasks/internal/model/task"
)

func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// newTestPool starts a throwaway Postgres, applies the migrations and
// returns a pool to it.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	if !dockerAvailable() {
		t.Skip("docker is not available")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("tasks"),
		postgres.WithUsername("tasks"),
		postgres.WithPassword("tasks"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := zerolog.New(os.Stderr)
	require.NoError(t, database.Migrate(ctx, &logger, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func date(t *testing.T, s string) task.Date {
	t.Helper()
	d, err := task.ParseDate(s)
	require.NoError(t, err)
	return d
}

func seed(t *testing.T, repo *TaskRepository, tasks ...task.Task) []*task.Task {
	t.Helper()

	out := make([]*task.Task, 0, len(tasks))
	for i := range tasks {
		created, err := repo.Create(context.Background(), &tasks[i])
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func TestTaskRepository(t *testing.T) {
	pool := newTestPool(t)
	repo := NewTaskRepository(pool)
	ctx := context.Background()

	description := "buy milk"
	created := seed(t, repo,
		task.Task{Title: "Groceries", Description: &description, DueDate: date(t, "2030-01-02"), Status: task.StatusTodo},
		task.Task{Title: "Write report", DueDate: date(t, "2030-01-01"), Status: task.StatusInProgress},
		task.Task{Title: "Archive mail", DueDate: date(t, "2030-01-02"), Status: task.StatusDone},
		task.Task{Title: "Call plumber", DueDate: date(t, "2030-01-03"), Status: task.StatusTodo},
	)

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		first := created[0]
		assert.NotZero(t, first.ID)
		assert.Equal(t, "Groceries", first.Title)
		assert.Equal(t, "buy milk", *first.Description)
		assert.Equal(t, "2030-01-02", first.DueDate.String())
		assert.Equal(t, task.StatusTodo, first.Status)
		assert.False(t, first.Archived)
		assert.WithinDuration(t, time.Now(), first.CreatedAt, time.Minute)
		assert.Nil(t, created[1].Description)
	})

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByIDNotArchived(ctx, created[1].ID)
		require.NoError(t, err)
		assert.Equal(t, *created[1], *found)
	})

	t.Run("find missing id", func(t *testing.T) {
		_, err := repo.FindByIDNotArchived(ctx, 999999)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "TASK_NOT_FOUND", httpErr.Code)
		assert.Equal(t, "Task not found with id : '999999'", httpErr.Message)
	})

	t.Run("filter by status sorted by title", func(t *testing.T) {
		status := task.StatusTodo
		req := model.NewPageRequest(0, 10, []string{"title,asc"}, 10, 100)

		page, err := repo.FindAll(ctx, Where(IsNotArchived(), HasStatus(&status)), req)
		require.NoError(t, err)

		require.Len(t, page.Content, 2)
		assert.Equal(t, "Call plumber", page.Content[0].Title)
		assert.Equal(t, "Groceries", page.Content[1].Title)
		assert.Equal(t, int64(2), page.TotalElements)
	})

	t.Run("filter by due date", func(t *testing.T) {
		due := date(t, "2030-01-02")
		req := model.NewPageRequest(0, 10, nil, 10, 100)

		page, err := repo.FindAll(ctx, Where(IsNotArchived(), HasDueDate(&due)), req)
		require.NoError(t, err)

		require.Len(t, page.Content, 2)
		assert.Equal(t, created[0].ID, page.Content[0].ID)
		assert.Equal(t, created[2].ID, page.Content[1].ID)
	})

	t.Run("paging with due date sort and id tie-breaker", func(t *testing.T) {
		req := model.NewPageRequest(1, 2, []string{"dueDate"}, 10, 100)

		page, err := repo.FindAll(ctx, Where(IsNotArchived()), req)
		require.NoError(t, err)

		require.Len(t, page.Content, 2)
		assert.Equal(t, created[2].ID, page.Content[0].ID)
		assert.Equal(t, created[3].ID, page.Content[1].ID)
		assert.Equal(t, int64(4), page.TotalElements)
		assert.Equal(t, 2, page.TotalPages())
		assert.True(t, page.IsLast())
	})

	t.Run("page beyond the end is empty", func(t *testing.T) {
		req := model.NewPageRequest(5, 2, nil, 10, 100)

		page, err := repo.FindAll(ctx, Where(IsNotArchived()), req)
		require.NoError(t, err)

		assert.Empty(t, page.Content)
		assert.Equal(t, int64(4), page.TotalElements)
	})

	t.Run("update applies mutation", func(t *testing.T) {
		updated, err := repo.Update(ctx, created[1].ID, func(tk *task.Task) error {
			tk.Status = task.StatusDone
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, task.StatusDone, updated.Status)
		assert.Equal(t, "Write report", updated.Title)
		assert.False(t, updated.UpdatedAt.Before(created[1].UpdatedAt))
	})

	t.Run("failed mutation writes nothing", func(t *testing.T) {
		mutationErr := &errs.InvalidFieldError{Field: "status", Message: "bad"}

		_, err := repo.Update(ctx, created[0].ID, func(tk *task.Task) error {
			tk.Title = "Changed"
			return mutationErr
		})
		assert.Same(t, mutationErr, err)

		found, err := repo.FindByIDNotArchived(ctx, created[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", found.Title)
	})

	t.Run("archived tasks are hidden", func(t *testing.T) {
		_, err := repo.Update(ctx, created[3].ID, func(tk *task.Task) error {
			tk.Archived = true
			return nil
		})
		require.NoError(t, err)

		_, err = repo.FindByIDNotArchived(ctx, created[3].ID)
		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)

		_, err = repo.Update(ctx, created[3].ID, func(*task.Task) error { return nil })
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)

		page, err := repo.FindAll(ctx, Where(IsNotArchived()), model.NewPageRequest(0, 10, nil, 10, 100))
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.TotalElements)
	})

	t.Run("status outside the check constraint", func(t *testing.T) {
		_, err := repo.Create(ctx, &task.Task{Title: "Bad status", DueDate: date(t, "2030-01-01"), Status: "LATER"})

		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "23514", pgErr.Code)
	})
}
