package http

import (
	"context"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/quickfix/booking-service/internal/config"
	"github.com/quickfix/booking-service/internal/observability"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: rate limiting, error
// handling with the public response envelope, and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg config.Config) {
	if timeout := cfg.App.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	if cfg.RateLimit.Enabled {
		app.Use(rateLimitMiddleware(cfg.RateLimit))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

const limiterIdleTTL = 10 * time.Minute

// ipLimiters keeps one token bucket per client IP. Buckets idle longer than
// limiterIdleTTL are swept on the next access, so the table stays bounded by
// the set of recently active clients.
type ipLimiters struct {
	mu        sync.Mutex
	entries   map[string]*ipLimiterEntry
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type ipLimiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newIPLimiters(cfg config.RateLimitConfig) *ipLimiters {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}
	return &ipLimiters{
		entries: make(map[string]*ipLimiterEntry),
		rps:     rate.Limit(cfg.RPS),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		l.sweepLocked(now)
	}

	entry, ok := l.entries[ip]
	if !ok {
		entry = &ipLimiterEntry{lim: rate.NewLimiter(l.rps, l.burst)}
		l.entries[ip] = entry
	}
	entry.lastSeen = now
	return entry.lim.Allow()
}

func (l *ipLimiters) sweepLocked(now time.Time) {
	for ip, entry := range l.entries {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(l.entries, ip)
		}
	}
	l.lastSweep = now
}

func rateLimitMiddleware(cfg config.RateLimitConfig) fiber.Handler {
	limiters := newIPLimiters(cfg)
	return func(c *fiber.Ctx) error {
		if !limiters.allow(c.IP()) {
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
		}
		return c.Next()
	}
}

// errorHandlingMiddleware converts DomainError values into the public
// envelope {success:false, message, errors?} and recovers panics.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

				response := fiber.Map{
					"success": false,
					"message": domainErr.Message,
				}
				if len(domainErr.Fields) > 0 {
					response["errors"] = domainErr.Fields
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}
