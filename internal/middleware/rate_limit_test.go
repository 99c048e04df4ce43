package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/go-tasks/internal/config"
)

func newLimitedEcho(cfg config.RateLimitConfig) *echo.Echo {
	s := newTestServer(cfg)
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(NewRateLimitMiddleware(s).Limit())

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/status", ok)
	e.GET("/api/v1/tasks", ok)

	return e
}

func serve(e *echo.Echo, path string) int {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestRateLimit_Disabled(t *testing.T) {
	e := newLimitedEcho(config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1, Burst: 0})

	for range 5 {
		assert.Equal(t, http.StatusOK, serve(e, "/api/v1/tasks"))
	}
}

func TestRateLimit_MemoryStore(t *testing.T) {
	e := newLimitedEcho(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1})

	assert.Equal(t, http.StatusOK, serve(e, "/api/v1/tasks"))
	assert.Equal(t, http.StatusTooManyRequests, serve(e, "/api/v1/tasks"))

	assert.Equal(t, http.StatusOK, serve(e, "/status"), "the health route is never limited")
}

func TestRedisRateLimiterStore_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	store := NewRedisRateLimiterStore(client, 1, &logger)

	for range 3 {
		allowed, err := store.Allow("192.0.2.1")
		assert.NoError(t, err)
		assert.True(t, allowed)
	}
}
