package listing

import (
	"cmp"
	"slices"
	"strings"

	"vicmar/server/internal/models"
)

// Apply narrows props by search text, type, status and the inclusive price
// range, then sorts the survivors. props is never modified.
func Apply(props []models.Property, q Query) []models.Property {
	q = q.Normalize()
	search := strings.ToLower(q.Search)

	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if q.PropertyType != All && p.PropertyType != q.PropertyType {
			continue
		}
		if q.Status != All && p.Status != q.Status {
			continue
		}
		if p.Price < q.MinPrice || p.Price > q.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, comparator(q.SortBy))
	return out
}

func matchesSearch(p models.Property, search string) bool {
	return strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Location), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}

func comparator(sortBy string) func(a, b models.Property) int {
	switch sortBy {
	case SortPriceLow:
		return func(a, b models.Property) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceHigh:
		return func(a, b models.Property) int { return cmp.Compare(b.Price, a.Price) }
	case SortOldest:
		return func(a, b models.Property) int { return a.CreatedDate.Compare(b.CreatedDate) }
	default:
		return func(a, b models.Property) int { return b.CreatedDate.Compare(a.CreatedDate) }
	}
}
