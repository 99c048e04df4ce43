package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/go-tasks/internal/errs"
	"github.com/deppfellow/go-tasks/internal/model"
	"github.com/deppfellow/go-tasks/internal/model/task"
)

const taskColumns = `id, title, description, due_date, status, archived, created_at, updated_at`

var taskNotFoundCode = "TASK_NOT_FOUND"

// TaskNotFoundError is the 404 returned for a missing or archived task.
func TaskNotFoundError(id int64) *errs.HTTPError {
	return errs.NewNotFoundError(fmt.Sprintf("Task not found with id : '%d'", id), true, &taskNotFoundCode)
}

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (task.Task, error) {
	var (
		t       task.Task
		status  string
		dueDate time.Time
	)

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&dueDate,
		&status,
		&t.Archived,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return task.Task{}, err
	}

	t.DueDate = task.NewDate(dueDate)
	t.Status = task.Status(status)
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) (*task.Task, error) {
	stmt := `
		INSERT INTO tasks (title, description, due_date, status)
		VALUES (@title, @description, @due_date, @status)
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRow(ctx, stmt, pgx.NamedArgs{
		"title":       t.Title,
		"description": t.Description,
		"due_date":    t.DueDate.Time,
		"status":      string(t.Status),
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &created, nil
}

// FindByIDNotArchived returns the task with id unless it is archived.
func (r *TaskRepository) FindByIDNotArchived(ctx context.Context, id int64) (*task.Task, error) {
	stmt := `SELECT ` + taskColumns + ` FROM tasks WHERE id = @id AND archived = FALSE`

	t, err := scanTask(r.db.QueryRow(ctx, stmt, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, TaskNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}

	return &t, nil
}

// FindAll returns the page of tasks matching spec.
func (r *TaskRepository) FindAll(ctx context.Context, spec *Spec, req model.PageRequest) (*model.Page[task.Task], error) {
	orderBy, err := OrderBy(req.Sort)
	if err != nil {
		return nil, err
	}

	var total int64
	countStmt := `SELECT COUNT(*) FROM tasks` + spec.SQL()
	if err := r.db.QueryRow(ctx, countStmt, spec.Args()).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	if total == 0 || req.Offset() >= total {
		return model.NewPage([]task.Task{}, req, total), nil
	}

	args := spec.Args()
	args["limit"] = req.Size
	args["offset"] = req.Offset()

	stmt := `SELECT ` + taskColumns + ` FROM tasks` + spec.SQL() + orderBy + ` LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, stmt, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (task.Task, error) {
		return scanTask(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect tasks: %w", err)
	}

	return model.NewPage(tasks, req, total), nil
}

// Update locks the non-archived task with id, applies mutate to it and
// writes every column back in one transaction. If mutate fails nothing is
// written and its error is returned unchanged.
func (r *TaskRepository) Update(ctx context.Context, id int64, mutate func(*task.Task) error) (*task.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	selectStmt := `SELECT ` + taskColumns + ` FROM tasks WHERE id = @id AND archived = FALSE FOR UPDATE`

	current, err := scanTask(tx.QueryRow(ctx, selectStmt, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, TaskNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to lock task %d: %w", id, err)
	}

	if err := mutate(&current); err != nil {
		return nil, err
	}

	updateStmt := `
		UPDATE tasks
		SET title = @title,
			description = @description,
			due_date = @due_date,
			status = @status,
			archived = @archived,
			updated_at = NOW()
		WHERE id = @id
		RETURNING ` + taskColumns

	updated, err := scanTask(tx.QueryRow(ctx, updateStmt, pgx.NamedArgs{
		"id":          id,
		"title":       current.Title,
		"description": current.Description,
		"due_date":    current.DueDate.Time,
		"status":      string(current.Status),
		"archived":    current.Archived,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit task %d: %w", id, err)
	}

	return &updated, nil
}
