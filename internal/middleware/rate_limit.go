package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/deppfellow/go-tasks/internal/errs"
	"github.com/deppfellow/go-tasks/internal/server"
)

const (
	rateLimitWindow     = time.Minute
	rateLimitKeyPrefix  = "tasks:ratelimit:"
	redisRequestTimeout = 100 * time.Millisecond
)

// RateLimitMiddleware throttles requests per client IP. Counters live in
// Redis when it is available and in process memory otherwise.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns the limiter, or a pass-through when rate limiting is
// disabled. The health route is never limited.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/status"
		},
		Store: r.store(),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("identifier", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError()
		},
	})
}

func (r *RateLimitMiddleware) store() middleware.RateLimiterStore {
	cfg := r.server.Config.RateLimit

	if r.server.Redis != nil {
		return NewRedisRateLimiterStore(r.server.Redis, cfg.RequestsPerMinute+cfg.Burst, r.server.Logger)
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(cfg.RequestsPerMinute) / rateLimitWindow.Seconds()),
		Burst:     max(cfg.Burst, 1),
		ExpiresIn: 3 * rateLimitWindow,
	})
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}

// RedisRateLimiterStore is a fixed one-minute window counter shared by
// every instance using the same Redis.
type RedisRateLimiterStore struct {
	client *redis.Client
	limit  int
	log    *zerolog.Logger
	now    func() time.Time
}

func NewRedisRateLimiterStore(client *redis.Client, limit int, log *zerolog.Logger) *RedisRateLimiterStore {
	return &RedisRateLimiterStore{
		client: client,
		limit:  limit,
		log:    log,
		now:    time.Now,
	}
}

// Allow increments the identifier's counter for the current window. Redis
// failures let the request through.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisRequestTimeout)
	defer cancel()

	window := s.now().Truncate(rateLimitWindow).Unix()
	key := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, identifier, window)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rateLimitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error().Err(err).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return incr.Val() <= int64(s.limit), nil
}
