package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shopstack/catalog-api/internal/core/ports"
)

const (
	rateLimitKeyPrefix = "ratelimit:"
	rateLimitWindow    = time.Minute
)

// slidingWindowScript counts timestamps in a rolling window held in a
// sorted set. It prunes entries older than the window, admits the request
// if the remaining count is under the limit, and reports how long until
// the oldest entry ages out otherwise. Atomic, so concurrent checks on the
// same key cannot over-admit.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])      -- current time, ms
	local window = tonumber(ARGV[2])   -- window size, ms
	local limit = tonumber(ARGV[3])
	local member = ARGV[4]

	redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

	local count = redis.call('ZCARD', key)
	if count < limit then
		redis.call('ZADD', key, now, member)
		redis.call('PEXPIRE', key, window)
		return {1, limit - count - 1, 0}
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local retry = 0
	if oldest[2] then
		retry = (tonumber(oldest[2]) + window) - now
	end
	return {0, 0, retry}
`)

// RateLimiter is a sliding-window rate limiter backed by Redis. It fails
// open: when Redis is unreachable the request is admitted and the error
// logged, so a cache outage does not take the API down with it.
type RateLimiter struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRateLimiter(client *redis.Client, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{client: client, logger: logger}
}

// Allow records one request under the key and reports whether it fits in
// the rolling one-minute window.
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int64) (ports.RateDecision, error) {
	now := time.Now().UnixMilli()

	res, err := slidingWindowScript.Run(ctx, l.client,
		[]string{rateLimitKeyPrefix + key},
		now, rateLimitWindow.Milliseconds(), limit, member(now),
	).Int64Slice()
	if err != nil {
		l.logger.Error().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
		return ports.RateDecision{Allowed: true, Remaining: limit}, nil
	}

	return ports.RateDecision{
		Allowed:    res[0] == 1,
		Remaining:  res[1],
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}, nil
}

// member builds a unique sorted-set member so two requests landing in the
// same millisecond are both counted.
func member(now int64) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return time.Now().String()
	}
	return time.UnixMilli(now).Format(time.RFC3339Nano) + "-" + hex.EncodeToString(b)
}
