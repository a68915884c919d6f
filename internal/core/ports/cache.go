package ports

import (
	"context"

	"github.com/shopstack/catalog-api/internal/core/domain"
)

// ProductListCache is a best-effort read cache for listing results. A miss
// or a backend failure simply falls through to storage; implementations
// log failures rather than propagate them. Invalidate is called after
// every successful catalog mutation so stale results are unreachable.
type ProductListCache interface {
	Get(ctx context.Context, query ListQuery) ([]domain.Product, bool)
	Set(ctx context.Context, query ListQuery, products []domain.Product)
	Invalidate(ctx context.Context)
}
