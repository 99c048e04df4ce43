// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-tasks/internal/handler"
	"github.com/deppfellow/go-tasks/internal/middleware"
	"github.com/deppfellow/go-tasks/internal/server"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route.
//
// Order matters: the request id must exist before the logger is enhanced,
// and the New Relic transaction must exist before EnhanceTracing and
// EnhanceContext read it.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(middlewares.Global.RemoveTrailingSlash())

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerTaskRoutes(v1, h)

	return router
}
