package service

import (
	"fmt"

	"github.com/shopstack/catalog-api/internal/core/domain"
	"github.com/shopstack/catalog-api/internal/core/ports"
)

// Pagination bounds for product listing.
const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// validSortFields is the closed set of sortable columns. A caller-supplied
// sort key is only ever checked for membership here; it is never resolved
// into a live field accessor or interpolated into a query.
var validSortFields = map[string]struct{}{
	ports.SortByPrice:    {},
	ports.SortByQuantity: {},
	ports.SortByName:     {},
}

// normalizeListQuery applies defaults and rejects out-of-range or
// non-enumerated parameters before anything touches storage.
func normalizeListQuery(q ports.ListQuery) (ports.ListQuery, error) {
	if q.SortBy == "" {
		q.SortBy = ports.SortByPrice
	}
	if q.SortOrder == "" {
		q.SortOrder = ports.SortAsc
	}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}

	if _, ok := validSortFields[q.SortBy]; !ok {
		return ports.ListQuery{}, fmt.Errorf("%w: sort_by must be one of price, quantity, name", domain.ErrInvalidQuery)
	}
	if q.SortOrder != ports.SortAsc && q.SortOrder != ports.SortDesc {
		return ports.ListQuery{}, fmt.Errorf("%w: sort_order must be asc or desc", domain.ErrInvalidQuery)
	}
	if q.Skip < 0 {
		return ports.ListQuery{}, fmt.Errorf("%w: skip must not be negative", domain.ErrInvalidQuery)
	}
	if q.Limit < 1 || q.Limit > maxListLimit {
		return ports.ListQuery{}, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidQuery, maxListLimit)
	}
	if q.MinPrice != nil && *q.MinPrice < 0 {
		return ports.ListQuery{}, fmt.Errorf("%w: min_price must not be negative", domain.ErrInvalidQuery)
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return ports.ListQuery{}, fmt.Errorf("%w: max_price must not be negative", domain.ErrInvalidQuery)
	}

	return q, nil
}
