package task

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-tasks/internal/validation"
)

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()

	var validationErrs validation.CustomValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	out := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		out[e.Field] = e.Message
	}
	return out
}

func TestCreateTaskPayload_Validate(t *testing.T) {
	freezeNow(t, time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC))

	future := mustDate(t, "2030-01-11")
	today := mustDate(t, "2030-01-10")

	tests := []struct {
		name    string
		payload CreateTaskPayload
		want    map[string]string
	}{
		{
			name:    "valid",
			payload: CreateTaskPayload{Title: "Write docs", DueDate: &future, Status: "TODO"},
		},
		{
			name:    "blank title",
			payload: CreateTaskPayload{Title: "     ", DueDate: &future, Status: "TODO"},
			want:    map[string]string{"title": "Title cannot be empty"},
		},
		{
			name:    "short title",
			payload: CreateTaskPayload{Title: "abc", DueDate: &future, Status: "TODO"},
			want:    map[string]string{"title": "Title must be at least 5 characters"},
		},
		{
			name:    "missing due date and status",
			payload: CreateTaskPayload{Title: "Write docs"},
			want: map[string]string{
				"dueDate": "Due date cannot be null",
				"status":  "status cannot be empty",
			},
		},
		{
			name:    "due date today",
			payload: CreateTaskPayload{Title: "Write docs", DueDate: &today, Status: "DONE"},
			want:    map[string]string{"dueDate": "Due date must be greater than present date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, fieldMessages(t, err))
		})
	}
}

func TestUpdateTaskPayload_Validate(t *testing.T) {
	freezeNow(t, time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC))

	past := mustDate(t, "2029-12-31")

	assert.NoError(t, (&UpdateTaskPayload{}).Validate(), "an empty update is valid")

	err := (&UpdateTaskPayload{Title: ptr("abc"), DueDate: &past}).Validate()
	assert.Equal(t, map[string]string{
		"title":   "Title must be at least 5 characters",
		"dueDate": "Due date must be greater than present date",
	}, fieldMessages(t, err))
}

func newContext(method, target, body string) echo.Context {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestUpdateTaskPayload_Bind(t *testing.T) {
	c := newContext(http.MethodPatch, "/api/v1/tasks/42", `{"title":"Changed title","status":"done"}`)
	c.SetParamNames("id")
	c.SetParamValues("42")

	var p UpdateTaskPayload
	require.NoError(t, p.Bind(c))

	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "Changed title", *p.Title)
	assert.Equal(t, "done", *p.Status)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.DueDate)
}

func TestGetTaskPayload_Bind_NonNumericID(t *testing.T) {
	c := newContext(http.MethodGet, "/api/v1/tasks/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	var p GetTaskPayload
	err := p.Bind(c)

	var bindingErr *echo.BindingError
	require.ErrorAs(t, err, &bindingErr)
	assert.Equal(t, "id", bindingErr.Field)
}

func TestListTasksQuery_Bind(t *testing.T) {
	c := newContext(http.MethodGet, "/api/v1/tasks?status=IN_PROGRESS&dueDate=2030-03-01&page=2&size=5&sort=title,desc&sort=id", "")

	var q ListTasksQuery
	require.NoError(t, q.Bind(c))

	require.NotNil(t, q.Status)
	assert.Equal(t, StatusInProgress, *q.Status)
	require.NotNil(t, q.DueDate)
	assert.Equal(t, "2030-03-01", q.DueDate.String())
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 5, q.Size)
	assert.Equal(t, []string{"title,desc", "id"}, q.Sort)
}

func TestListTasksQuery_Bind_NoFilters(t *testing.T) {
	c := newContext(http.MethodGet, "/api/v1/tasks", "")

	var q ListTasksQuery
	require.NoError(t, q.Bind(c))

	assert.Nil(t, q.Status)
	assert.Nil(t, q.DueDate)
	assert.Zero(t, q.Page)
	assert.Zero(t, q.Size)
	assert.Empty(t, q.Sort)
}

func TestListTasksQuery_Bind_Errors(t *testing.T) {
	tests := []struct {
		query string
		field string
	}{
		{"status=later", "status"},
		{"status=todo", "status"},
		{"dueDate=03-01-2030", "dueDate"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c := newContext(http.MethodGet, "/api/v1/tasks?"+tt.query, "")

			var q ListTasksQuery
			err := q.Bind(c)

			var bindingErr *echo.BindingError
			require.ErrorAs(t, err, &bindingErr)
			assert.Equal(t, tt.field, bindingErr.Field)
		})
	}
}

func TestListTasksQuery_Bind_NonNumericPagingFallsBack(t *testing.T) {
	c := newContext(http.MethodGet, "/api/v1/tasks?page=first&size=abc", "")

	var q ListTasksQuery
	require.NoError(t, q.Bind(c))

	assert.Zero(t, q.Page)
	assert.Zero(t, q.Size)
}
