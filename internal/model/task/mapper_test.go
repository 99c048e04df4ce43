package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-tasks/internal/errs"
	"github.com/deppfellow/go-tasks/internal/model"
)

func ptr[T any](v T) *T {
	return &v
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestToEntity(t *testing.T) {
	due := mustDate(t, "2030-01-01")

	got, err := ToEntity(&CreateTaskPayload{
		Title:       "Write the report",
		Description: ptr("quarterly numbers"),
		DueDate:     &due,
		Status:      "in_progress",
	})
	require.NoError(t, err)

	assert.Zero(t, got.ID)
	assert.Equal(t, "Write the report", got.Title)
	assert.Equal(t, "quarterly numbers", *got.Description)
	assert.Equal(t, due, got.DueDate)
	assert.Equal(t, StatusInProgress, got.Status)
	assert.False(t, got.Archived)
}

func TestToEntity_InvalidStatus(t *testing.T) {
	due := mustDate(t, "2030-01-01")

	_, err := ToEntity(&CreateTaskPayload{Title: "Write the report", DueDate: &due, Status: "later"})

	var fieldErr *errs.InvalidFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "status", fieldErr.Field)
}

func existingTask(t *testing.T) *Task {
	return &Task{
		ID:          7,
		Title:       "Original title",
		Description: ptr("original description"),
		DueDate:     mustDate(t, "2030-01-01"),
		Status:      StatusTodo,
	}
}

func TestApplyUpdate_OnlyNonNilFields(t *testing.T) {
	entity := existingTask(t)

	err := ApplyUpdate(&UpdateTaskPayload{ID: 99, Status: ptr("done")}, entity)
	require.NoError(t, err)

	assert.Equal(t, int64(7), entity.ID, "id is never overwritten")
	assert.Equal(t, "Original title", entity.Title)
	assert.Equal(t, "original description", *entity.Description)
	assert.Equal(t, mustDate(t, "2030-01-01"), entity.DueDate)
	assert.Equal(t, StatusDone, entity.Status)
}

func TestApplyUpdate_AllFields(t *testing.T) {
	entity := existingTask(t)
	due := mustDate(t, "2031-05-05")

	err := ApplyUpdate(&UpdateTaskPayload{
		Title:       ptr("New title"),
		Description: ptr("new description"),
		DueDate:     &due,
		Status:      ptr("IN_PROGRESS"),
	}, entity)
	require.NoError(t, err)

	assert.Equal(t, "New title", entity.Title)
	assert.Equal(t, "new description", *entity.Description)
	assert.Equal(t, due, entity.DueDate)
	assert.Equal(t, StatusInProgress, entity.Status)
}

func TestApplyUpdate_InvalidStatusLeavesEntityUntouched(t *testing.T) {
	entity := existingTask(t)
	before := *entity

	err := ApplyUpdate(&UpdateTaskPayload{Title: ptr("Another title"), Status: ptr("unknown")}, entity)

	var fieldErr *errs.InvalidFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, before, *entity)
}

func TestToResponsePage(t *testing.T) {
	created := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	page := &model.Page[Task]{
		Content: []Task{
			{ID: 1, Title: "First task", Status: StatusTodo, CreatedAt: created, UpdatedAt: created},
			{ID: 2, Title: "Second task", Status: StatusDone, CreatedAt: created, UpdatedAt: created},
		},
		Number:        1,
		Size:          2,
		TotalElements: 5,
	}

	got := ToResponsePage(page)

	require.Len(t, got.Content, 2)
	assert.Equal(t, int64(1), got.Content[0].ID)
	assert.Equal(t, StatusDone, got.Content[1].Status)
	assert.Equal(t, created, got.Content[1].CreatedAt)
	assert.Equal(t, 1, got.Number)
	assert.Equal(t, 2, got.Size)
	assert.Equal(t, int64(5), got.TotalElements)
	assert.Equal(t, 3, got.TotalPages())
}

func TestToResponseList_Empty(t *testing.T) {
	got := ToResponseList(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
