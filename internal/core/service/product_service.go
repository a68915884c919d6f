package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/catalog-api/internal/core/domain"
	"github.com/shopstack/catalog-api/internal/core/ports"
)

// ProductService implements catalog CRUD and the filtered, sorted,
// paginated list operation. The cache is optional; when nil the service
// reads straight from the repository.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductListCache
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.ProductListCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

// Create validates and stores a new product. Storage assigns the
// identifier; the returned record includes it.
func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	fields, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Quantity:    fields.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns products matching the price filter, ordered by the chosen
// sort key, windowed by skip/limit. Non-enumerated sort parameters fail
// with domain.ErrInvalidQuery before storage is touched.
func (s *ProductService) List(ctx context.Context, query ports.ListQuery) ([]domain.Product, error) {
	q, err := normalizeListQuery(query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if products, ok := s.cache.Get(ctx, q); ok {
			return products, nil
		}
	}

	products, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, q, products)
	}
	return products, nil
}

// Update replaces every field of an existing product with the validated
// input. The identifier and creation timestamp are preserved; there is no
// partial-update path.
func (s *ProductService) Update(ctx context.Context, id int64, input ports.ProductInput) (*domain.Product, error) {
	fields, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = fields.Name
	existing.Description = fields.Description
	existing.Price = fields.Price
	existing.Quantity = fields.Quantity
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return existing, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// normalizeInput trims surrounding whitespace, rounds the price to two
// decimals, and enforces field bounds. The transport validator applies the
// same rules earlier for per-field messages; this is the last check before
// storage.
func normalizeInput(input ports.ProductInput) (ports.ProductInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Price = math.Round(input.Price*100) / 100

	if input.Name == "" || len(input.Name) > domain.MaxNameLength {
		return ports.ProductInput{}, fmt.Errorf("%w: name must be 1-%d characters", domain.ErrInvalidProduct, domain.MaxNameLength)
	}
	if input.Description == "" || len(input.Description) > domain.MaxDescriptionLength {
		return ports.ProductInput{}, fmt.Errorf("%w: description must be 1-%d characters", domain.ErrInvalidProduct, domain.MaxDescriptionLength)
	}
	if input.Price <= 0 || input.Price > domain.MaxPrice {
		return ports.ProductInput{}, fmt.Errorf("%w: price must be in (0, %d]", domain.ErrInvalidProduct, domain.MaxPrice)
	}
	if input.Quantity < 0 || input.Quantity > domain.MaxQuantity {
		return ports.ProductInput{}, fmt.Errorf("%w: quantity must be in [0, %d]", domain.ErrInvalidProduct, domain.MaxQuantity)
	}

	return input, nil
}
