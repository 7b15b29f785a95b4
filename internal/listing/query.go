package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort orders accepted by the listings page
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// All disables the type or status filter.
const All = "all"

const (
	DefaultMinPrice = 500000
	DefaultMaxPrice = 5000000
)

// Query is the full set of listing filter inputs.
type Query struct {
	Search       string `json:"search"`
	PropertyType string `json:"type"`
	Status       string `json:"status"`
	MinPrice     int    `json:"min_price"`
	MaxPrice     int    `json:"max_price"`
	SortBy       string `json:"sort"`
}

func DefaultQuery() Query {
	return Query{
		PropertyType: All,
		Status:       All,
		MinPrice:     DefaultMinPrice,
		MaxPrice:     DefaultMaxPrice,
		SortBy:       SortNewest,
	}
}

// ParseQuery reads search, type, status, minPrice, maxPrice and sort from
// URL parameters. Missing or malformed values fall back to the defaults.
func ParseQuery(values url.Values) Query {
	q := DefaultQuery()
	q.Search = values.Get("search")
	if v := values.Get("type"); v != "" {
		q.PropertyType = v
	}
	if v := values.Get("status"); v != "" {
		q.Status = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(values.Get("minPrice"))); err == nil && v >= 0 {
		q.MinPrice = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(values.Get("maxPrice"))); err == nil && v >= 0 {
		q.MaxPrice = v
	}
	if v := values.Get("sort"); v != "" {
		q.SortBy = v
	}
	return q.Normalize()
}

// Normalize fills empty fields with defaults and maps unknown sort orders to newest.
func (q Query) Normalize() Query {
	if q.PropertyType == "" {
		q.PropertyType = All
	}
	if q.Status == "" {
		q.Status = All
	}
	switch q.SortBy {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh:
	default:
		q.SortBy = SortNewest
	}
	return q
}

// Values encodes q as URL parameters, omitting defaults.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.PropertyType != "" && q.PropertyType != All {
		values.Set("type", q.PropertyType)
	}
	if q.Status != "" && q.Status != All {
		values.Set("status", q.Status)
	}
	if q.MinPrice != DefaultMinPrice {
		values.Set("minPrice", strconv.Itoa(q.MinPrice))
	}
	if q.MaxPrice != DefaultMaxPrice {
		values.Set("maxPrice", strconv.Itoa(q.MaxPrice))
	}
	if q.SortBy != "" && q.SortBy != SortNewest {
		values.Set("sort", q.SortBy)
	}
	return values
}
