package search

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey selects the post-fetch ordering of a result set.
type SortKey string

const (
	SortNone       SortKey = "none"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortPopularity SortKey = "popularity"
)

var sortKeys = map[string]SortKey{
	"":           SortNone,
	"none":       SortNone,
	"relevance":  SortNone,
	"price_asc":  SortPriceAsc,
	"price_desc": SortPriceDesc,
	"popularity": SortPopularity,
}

// ParseSortKey maps raw input onto a SortKey. Empty input and "relevance" mean no sorting.
func ParseSortKey(raw string) (SortKey, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	key, ok := sortKeys[normalized]
	if !ok {
		return "", &InvalidFilterValueError{
			Field:   "sort",
			Value:   raw,
			Allowed: []string{string(SortNone), string(SortPriceAsc), string(SortPriceDesc), string(SortPopularity)},
		}
	}
	return key, nil
}

// Sortable is implemented by records that can be ordered by price and popularity.
// Records without a popularity value report zero.
type Sortable interface {
	SortPrice() float64
	SortPopularity() float64
}

// Sort returns a new slice ordered by key. The input is never modified and equal
// elements keep their fetch order.
func Sort[T Sortable](records []T, key SortKey) []T {
	out := make([]T, len(records))
	copy(out, records)

	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(a.SortPrice(), b.SortPrice())
		})
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(b.SortPrice(), a.SortPrice())
		})
	case SortPopularity:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(b.SortPopularity(), a.SortPopularity())
		})
	}
	return out
}
