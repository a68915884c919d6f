package ports

import (
	"context"

	"github.com/shopstack/catalog-api/internal/core/domain"
)

// ProductInput carries the caller-supplied fields for a create or a full
// replace. Every field is required; there is no partial-update path.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int64
}

type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, query ListQuery) ([]domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
