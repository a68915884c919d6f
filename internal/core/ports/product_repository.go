package ports

import (
	"context"

	"github.com/shopstack/catalog-api/internal/core/domain"
)

// Allowed sort keys and directions for product listing. Caller-supplied
// values are checked against these closed sets before any query is built;
// a sort key is never interpolated into a query as a raw string.
const (
	SortByPrice    = "price"
	SortByQuantity = "quantity"
	SortByName     = "name"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery carries validated filter, sort, and pagination parameters for a
// product listing.
type ListQuery struct {
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
	Skip      int64
	Limit     int64
}

// ProductRepository defines the interface for catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, query ListQuery) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}
