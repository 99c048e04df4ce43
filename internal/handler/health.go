package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-tasks/internal/middleware"
	"github.com/deppfellow/go-tasks/internal/server"
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthCheck is the result of checking one dependency.
type HealthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

const (
	healthy   = "healthy"
	unhealthy = "unhealthy"
)

// CheckHealth pings the configured dependencies.
//
// It returns 503 when the database is unreachable. Redis only backs the
// rate limiter, so a failing Redis is reported without failing the check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      healthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]HealthCheck{},
	}

	if cfg.Has("database") && h.server.DB != nil {
		check := h.check(c.Request().Context(), cfg.Timeout, "database", h.server.DB.Ping)
		response.Checks["database"] = check
		if check.Status != healthy {
			response.Status = unhealthy
		}
	}

	if cfg.Has("redis") && h.server.Redis != nil {
		response.Checks["redis"] = h.check(c.Request().Context(), cfg.Timeout, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if response.Status != healthy {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordHealthError("overall", "overall_unhealthy", time.Since(start), nil)
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) check(ctx context.Context, timeout time.Duration, name string, ping func(context.Context) error) HealthCheck {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		h.server.Logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")
		h.recordHealthError(name, name+"_unhealthy", elapsed, err)
		return HealthCheck{Status: unhealthy, ResponseTime: elapsed.String(), Error: err.Error()}
	}

	return HealthCheck{Status: healthy, ResponseTime: elapsed.String()}
}

// recordHealthError records a HealthCheckError custom event in New Relic.
func (h *HealthHandler) recordHealthError(checkType, errorType string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attributes := map[string]any{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		attributes["error_message"] = err.Error()
	}
	app.RecordCustomEvent("HealthCheckError", attributes)
}
