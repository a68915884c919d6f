package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shopstack/catalog-api/internal/api/metrics"
	"github.com/shopstack/catalog-api/internal/core/domain"
	"github.com/shopstack/catalog-api/internal/core/ports"
)

const (
	listKeyPrefix   = "products:list:"
	listVersionKey  = "products:ver"
	defaultCacheTTL = 5 * time.Minute
)

// ProductListCache caches listing results in Redis. Every cached entry is
// keyed by the current catalog version plus a digest of the normalized
// query; Invalidate bumps the version, making every prior entry
// unreachable. Stale entries are reclaimed by their TTL. All failures are
// logged and treated as misses so the service falls through to storage.
type ProductListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewProductListCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *ProductListCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ProductListCache{client: client, ttl: ttl, logger: logger}
}

func (c *ProductListCache) Get(ctx context.Context, query ports.ListQuery) ([]domain.Product, bool) {
	key, err := c.key(ctx, query)
	if err != nil {
		c.logger.Warn().Err(err).Msg("list cache key lookup failed")
		return nil, false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Msg("list cache read failed")
		}
		metrics.ListCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		c.logger.Warn().Err(err).Msg("list cache entry corrupt, discarding")
		c.client.Del(ctx, key)
		metrics.ListCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.ListCacheTotal.WithLabelValues("hit").Inc()
	return products, true
}

func (c *ProductListCache) Set(ctx context.Context, query ports.ListQuery, products []domain.Product) {
	key, err := c.key(ctx, query)
	if err != nil {
		c.logger.Warn().Err(err).Msg("list cache key lookup failed")
		return
	}

	payload, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn().Err(err).Msg("list cache encode failed")
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("list cache write failed")
	}
}

// Invalidate bumps the catalog version. Called after every successful
// mutation so readers never see results older than the last write.
func (c *ProductListCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, listVersionKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("list cache invalidation failed")
	}
}

func (c *ProductListCache) key(ctx context.Context, query ports.ListQuery) (string, error) {
	version, err := c.client.Get(ctx, listVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%s%d:%s", listKeyPrefix, version, queryDigest(query)), nil
}

// queryDigest derives a fixed-length key fragment from the normalized
// query parameters.
func queryDigest(q ports.ListQuery) string {
	minPrice, maxPrice := "-", "-"
	if q.MinPrice != nil {
		minPrice = fmt.Sprintf("%g", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%g", *q.MaxPrice)
	}

	raw := fmt.Sprintf("%s:%s:%s:%s:%d:%d", minPrice, maxPrice, q.SortBy, q.SortOrder, q.Skip, q.Limit)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:8])
}
