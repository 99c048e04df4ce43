package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/go-tasks/internal/errs"
	"github.com/deppfellow/go-tasks/internal/server"
	"github.com/deppfellow/go-tasks/internal/sqlerr"
)

// GlobalMiddlewares groups the middleware every route runs through and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" log line per request. The level follows
// the final status: error for 5xx, warn for 4xx, info otherwise.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler has not written the response yet when a
			// handler fails, so derive the status from the error.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = ResolveError(v.Error).Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// RemoveTrailingSlash lets "/api/v1/tasks/" match "/api/v1/tasks". It must
// be registered with Pre so it runs before routing.
func (global *GlobalMiddlewares) RemoveTrailingSlash() echo.MiddlewareFunc {
	return middleware.RemoveTrailingSlash()
}

// ResolveError converts any error into the HTTPError written to the client.
//
//   - *errs.HTTPError: as is
//   - *errs.InvalidFieldError: 400 "Invalid field for task"
//   - *echo.HTTPError: 404 "Route not found", 429 "Too many requests", others keep their code
//   - anything else goes through sqlerr.HandleError
func ResolveError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var fieldErr *errs.InvalidFieldError
	if errors.As(err, &fieldErr) {
		return errs.NewInvalidFieldError(fieldErr)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound:
			return errs.NewNotFoundError(errs.MessageRouteNotFound, true, nil)
		case http.StatusTooManyRequests:
			return errs.NewTooManyRequestsError()
		}

		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// GlobalErrorHandler is the single funnel every error ends up in. It logs
// the original error and writes the error envelope.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	resolved := ResolveError(err).Stamp()

	logger := GetLogger(c)

	event := logger.Warn()
	if resolved.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}
	event.
		Err(err).
		Int("status", resolved.Status).
		Str("error_code", resolved.Code).
		Msg(resolved.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(resolved.Status)
		return
	}
	_ = c.JSON(resolved.Status, resolved)
}
