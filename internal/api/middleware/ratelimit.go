package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopstack/catalog-api/internal/api/metrics"
	"github.com/shopstack/catalog-api/internal/core/ports"
)

// Endpoint classes and their per-minute limits per client address.
const (
	ClassSignup = "signup"
	ClassLogin  = "login"
	ClassMutate = "mutate"
	ClassRead   = "read"

	SignupLimit int64 = 5
	LoginLimit  int64 = 10
	MutateLimit int64 = 30
	ReadLimit   int64 = 60
)

// RateLimit bounds request frequency per (client address, endpoint class).
// It runs before authentication, so an over-limit caller never exercises
// token verification or handler logic. Rejections carry a Retry-After
// header.
func RateLimit(limiter ports.RateLimiter, class string, limit int64, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := class + ":" + c.RealIP()

			decision, err := limiter.Allow(c.Request().Context(), key, limit)
			if err != nil {
				// Fail open: a broken limiter must not take the API down.
				logger.Error().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
				return next(c)
			}

			if !decision.Allowed {
				metrics.RateLimitRejectionsTotal.WithLabelValues(class).Inc()
				logger.Warn().
					Str("class", class).
					Str("ip", c.RealIP()).
					Dur("retry_after", decision.RetryAfter).
					Msg("rate limit exceeded")

				retryAfter := int(decision.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
