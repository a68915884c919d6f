package ports

import (
	"context"
	"time"
)

// RateDecision is the outcome of a single rate-limit check.
type RateDecision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// RateLimiter bounds request frequency per key over a rolling window. The
// key encodes both the caller address and the endpoint class so limits are
// independent across endpoints.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64) (RateDecision, error)
}
