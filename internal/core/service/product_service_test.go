package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopstack/catalog-api/internal/core/domain"
	"github.com/shopstack/catalog-api/internal/core/ports"
)

type stubProductRepo struct {
	nextID    int64
	products  map[int64]*domain.Product
	listCalls int
	lastQuery ports.ListQuery
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int64]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	copy := *p
	copy.ID = r.nextID
	r.products[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *stubProductRepo) List(_ context.Context, q ports.ListQuery) ([]domain.Product, error) {
	r.listCalls++
	r.lastQuery = q
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	copy := *p
	r.products[p.ID] = &copy
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type stubListCache struct {
	entries     map[ports.ListQuery][]domain.Product
	invalidated int
}

func newStubListCache() *stubListCache {
	return &stubListCache{entries: make(map[ports.ListQuery][]domain.Product)}
}

func (c *stubListCache) Get(_ context.Context, q ports.ListQuery) ([]domain.Product, bool) {
	p, ok := c.entries[q]
	return p, ok
}

func (c *stubListCache) Set(_ context.Context, q ports.ListQuery, products []domain.Product) {
	c.entries[q] = products
}

func (c *stubListCache) Invalidate(_ context.Context) {
	c.invalidated++
	c.entries = make(map[ports.ListQuery][]domain.Product)
}

func validInput() ports.ProductInput {
	return ports.ProductInput{Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 5}
}

func TestProductService_Create_AssignsIDAndRoundsPrice(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	input := validInput()
	input.Price = 9.999
	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected storage-assigned id")
	}
	if created.Price != 10.00 {
		t.Fatalf("expected price rounded to 10.00, got %v", created.Price)
	}
}

func TestProductService_Create_TrimsWhitespace(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	input := validInput()
	input.Name = "  Widget  "
	input.Description = "\tA widget\n"
	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Widget" || created.Description != "A widget" {
		t.Fatalf("expected trimmed fields, got %q / %q", created.Name, created.Description)
	}
}

func TestProductService_Create_RejectsOutOfRange(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	cases := []struct {
		name  string
		mut   func(*ports.ProductInput)
	}{
		{"empty name", func(in *ports.ProductInput) { in.Name = "   " }},
		{"empty description", func(in *ports.ProductInput) { in.Description = "" }},
		{"zero price", func(in *ports.ProductInput) { in.Price = 0 }},
		{"negative price", func(in *ports.ProductInput) { in.Price = -1 }},
		{"price above cap", func(in *ports.ProductInput) { in.Price = 1_000_000.01 }},
		{"negative quantity", func(in *ports.ProductInput) { in.Quantity = -1 }},
		{"quantity above cap", func(in *ports.ProductInput) { in.Quantity = 1_000_001 }},
	}
	for _, tc := range cases {
		input := validInput()
		tc.mut(&input)
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrInvalidProduct) {
			t.Fatalf("%s: expected ErrInvalidProduct, got %v", tc.name, err)
		}
	}
	if len(repo.products) != 0 {
		t.Fatalf("invalid input must not reach storage")
	}
}

func TestProductService_Update_FullReplaceRoundTrip(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.ProductInput{
		Name: "Gadget", Description: "A gadget", Price: 19.99, Quantity: 7,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id must be stable across update")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Gadget" || got.Description != "A gadget" || got.Price != 19.99 || got.Quantity != 7 {
		t.Fatalf("update did not replace all fields: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must survive update")
	}
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), nil, zerolog.Nop())

	if _, err := svc.Update(context.Background(), 42, validInput()); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete_ThenGetFails(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on double delete, got %v", err)
	}
}

func TestProductService_List_RejectsBadSortBeforeStorage(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.ListQuery{SortBy: "password_hash"}); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for bad sort_by, got %v", err)
	}
	if _, err := svc.List(context.Background(), ports.ListQuery{SortOrder: "sideways"}); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for bad sort_order, got %v", err)
	}
	if _, err := svc.List(context.Background(), ports.ListQuery{Skip: -1}); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for negative skip, got %v", err)
	}
	if _, err := svc.List(context.Background(), ports.ListQuery{Limit: 101}); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery for oversized limit, got %v", err)
	}
	if repo.listCalls != 0 {
		t.Fatalf("rejected queries must never reach storage, got %d calls", repo.listCalls)
	}
}

func TestProductService_List_AppliesDefaults(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, nil, zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.ListQuery{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	q := repo.lastQuery
	if q.SortBy != ports.SortByPrice || q.SortOrder != ports.SortAsc {
		t.Fatalf("expected default sort price/asc, got %s/%s", q.SortBy, q.SortOrder)
	}
	if q.Skip != 0 || q.Limit != 20 {
		t.Fatalf("expected default window 0/20, got %d/%d", q.Skip, q.Limit)
	}
}

func TestProductService_List_CacheHitSkipsStorage(t *testing.T) {
	repo := newStubProductRepo()
	cache := newStubListCache()
	svc := NewProductService(repo, cache, zerolog.Nop())

	if _, err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.List(context.Background(), ports.ListQuery{}); err != nil {
		t.Fatalf("first list failed: %v", err)
	}
	if _, err := svc.List(context.Background(), ports.ListQuery{}); err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected second list served from cache, storage calls = %d", repo.listCalls)
	}
}

func TestProductService_WritesInvalidateCache(t *testing.T) {
	repo := newStubProductRepo()
	cache := newStubListCache()
	svc := NewProductService(repo, cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Update(context.Background(), created.ID, validInput()); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if cache.invalidated != 3 {
		t.Fatalf("expected cache invalidated on every write, got %d", cache.invalidated)
	}
}
