package handler

import (
	"strings"
	"time"

	"github.com/shopstack/catalog-api/internal/core/domain"
	"github.com/shopstack/catalog-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for operations whose only payload is a
// confirmation.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

// productRequest carries the full field set for both create and update;
// update has full-replace semantics, so the two shapes are identical.
type productRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Description string  `json:"description" validate:"required,max=1000"`
	Price       float64 `json:"price"       validate:"gt=0,lte=1000000"`
	Quantity    *int64  `json:"quantity"    validate:"required,gte=0,lte=1000000"`
}

// normalize strips surrounding whitespace before validation so a
// whitespace-only name fails the required check.
func (r *productRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    *r.Quantity,
	}
}

// listProductsRequest binds the listing query string. Sort parameters are
// restricted to their enumerated sets here, before the service or storage
// sees them.
type listProductsRequest struct {
	MinPrice  *float64 `query:"min_price"  validate:"omitempty,gte=0"`
	MaxPrice  *float64 `query:"max_price"  validate:"omitempty,gte=0"`
	SortBy    string   `query:"sort_by"    validate:"omitempty,oneof=price quantity name"`
	SortOrder string   `query:"sort_order" validate:"omitempty,oneof=asc desc"`
	Skip      int64    `query:"skip"       validate:"gte=0"`
	Limit     int64    `query:"limit"      validate:"gte=0,lte=100"`
}

func (r *listProductsRequest) toQuery() ports.ListQuery {
	return ports.ListQuery{
		MinPrice:  r.MinPrice,
		MaxPrice:  r.MaxPrice,
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
		Skip:      r.Skip,
		Limit:     r.Limit,
	}
}

type productResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}
