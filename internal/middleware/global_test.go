package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-tasks/internal/config"
	"github.com/deppfellow/go-tasks/internal/errs"
	"github.com/deppfellow/go-tasks/internal/server"
)

func newTestServer(rateLimit config.RateLimitConfig) *server.Server {
	logger := zerolog.Nop()

	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			RateLimit:     rateLimit,
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func TestResolveError(t *testing.T) {
	notFound := errs.NewNotFoundError("Task not found with id : '1'", true, nil)

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "http error wrapped by the service layer",
			err:     pkgerrors.Wrap(notFound, "get task 1"),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Task not found with id : '1'",
		},
		{
			name:    "invalid field",
			err:     fmt.Errorf("create: %w", &errs.InvalidFieldError{Field: "status", Message: "Expected values [TODO]"}),
			status:  http.StatusBadRequest,
			code:    "BAD_REQUEST",
			message: errs.MessageInvalidField,
		},
		{
			name:    "unknown route",
			err:     echo.ErrNotFound,
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: errs.MessageRouteNotFound,
		},
		{
			name:    "rate limited",
			err:     echo.ErrTooManyRequests,
			status:  http.StatusTooManyRequests,
			code:    "TOO_MANY_REQUESTS",
			message: errs.MessageTooManyRequests,
		},
		{
			name:    "method not allowed",
			err:     echo.ErrMethodNotAllowed,
			status:  http.StatusMethodNotAllowed,
			code:    "METHOD_NOT_ALLOWED",
			message: "Method Not Allowed",
		},
		{
			name:    "database check violation",
			err:     &pgconn.PgError{Code: "23514", TableName: "tasks", ConstraintName: "tasks_status_check"},
			status:  http.StatusBadRequest,
			code:    "TASK_INVALID",
			message: "The Status value does not meet required conditions",
		},
		{
			name:    "unexpected",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveError(tt.err)

			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(newTestServer(config.RateLimitConfig{}))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/tasks/9", nil), rec)

	global.GlobalErrorHandler(errs.NewNotFoundError("Task not found with id : '9'", true, nil), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "Task not found with id : '9'", body.Message)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.NotZero(t, body.Timestamp)
}

func TestGlobalErrorHandler_Head(t *testing.T) {
	global := NewGlobalMiddlewares(newTestServer(config.RateLimitConfig{}))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodHead, "/missing", nil), rec)

	global.GlobalErrorHandler(echo.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
