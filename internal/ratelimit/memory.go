// Package ratelimit provides an in-process sliding-window rate limiter,
// used when no Redis instance is configured and in tests.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/shopstack/catalog-api/internal/core/ports"
)

const (
	defaultWindow = time.Minute
	sweepInterval = 5 * time.Minute
)

// MemoryLimiter keeps a rolling window of request timestamps per key under
// a single mutex. Timestamps are pruned lazily on each check, and keys
// that have gone idle for a full window are evicted on a periodic sweep so
// memory stays bounded by the active caller set.
type MemoryLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	requests  map[string][]time.Time
	lastSweep time.Time

	now func() time.Time // overridable in tests
}

func NewMemoryLimiter(window time.Duration) *MemoryLimiter {
	if window <= 0 {
		window = defaultWindow
	}
	return &MemoryLimiter{
		window:   window,
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Allow records one request under the key and reports whether it fits in
// the window.
func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int64) (ports.RateDecision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := prune(l.requests[key], cutoff)

	if int64(len(kept)) >= limit {
		l.requests[key] = kept
		retry := kept[0].Add(l.window).Sub(now)
		return ports.RateDecision{RetryAfter: retry}, nil
	}

	l.requests[key] = append(kept, now)
	l.sweepLocked(now)

	return ports.RateDecision{
		Allowed:   true,
		Remaining: limit - int64(len(kept)) - 1,
	}, nil
}

// prune drops timestamps at or before the cutoff. The slice is in
// insertion order, so the survivors are a suffix.
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	return stamps[i:]
}

// sweepLocked evicts keys whose newest timestamp has aged out of the
// window. Runs at most once per sweepInterval. Caller holds the mutex.
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now

	cutoff := now.Add(-l.window)
	for key, stamps := range l.requests {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.requests, key)
		}
	}
}
