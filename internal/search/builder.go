// Package search turns loosely typed filter parameters into store-agnostic
// queries and orders fetched results.
//
// An empty FilterRequest matches every record of the collection, bounded by the
// cap. A malformed range spec never fails the request: the query degrades to a
// predicate that matches nothing. Only enum violations (category, sort key) are
// reported as errors.
//
// The cap is applied by the store before the in-memory sort, so a sorted preview
// is the ordered view of the first Cap matches in creation order, not the true
// top-K of every match.
package search

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultCap is the preview size used when no cap is configured.
const DefaultCap = 4

// FilterRequest holds raw filter parameters. Empty strings mean absent.
type FilterRequest struct {
	SearchText string
	Category   string
	RangeSpec  string
	SortKey    string
}

// Query is the immutable output of Builder.Build.
type Query struct {
	Collection string
	Predicate  Predicate
	Cap        int
	Sort       SortKey
}

// Fingerprint renders the query as a stable string, suitable as a cache key.
func (q Query) Fingerprint() string {
	return fmt.Sprintf("%s|%s|cap=%d|sort=%s", q.Collection, q.Predicate, q.Cap, q.Sort)
}

// Builder builds queries against one schema. It holds no mutable state and can be
// shared between goroutines.
type Builder struct {
	schema Schema
	cap    int
}

// NewBuilder returns a builder for schema with the given result cap.
func NewBuilder(schema Schema, cap int) *Builder {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &Builder{schema: schema, cap: cap}
}

// Schema returns the schema the builder targets.
func (b *Builder) Schema() Schema {
	return b.schema
}

// Cap returns the configured result cap.
func (b *Builder) Cap() int {
	return b.cap
}

// Build validates req and assembles the query. It fails only with an
// *InvalidFilterValueError.
func (b *Builder) Build(req FilterRequest) (Query, error) {
	sortKey, err := ParseSortKey(req.SortKey)
	if err != nil {
		return Query{}, err
	}

	var pred Predicate

	if text := strings.TrimSpace(req.SearchText); text != "" {
		if !utf8.ValidString(text) || strings.ContainsRune(text, 0) {
			return Query{}, &InvalidFilterValueError{
				Field:  "search",
				Value:  strings.ToValidUTF8(strings.ReplaceAll(text, "\x00", ""), ""),
				Reason: "must be valid UTF-8 without NUL bytes",
			}
		}
		pred.Conditions = append(pred.Conditions, TextMatch{
			Fields:  slices.Clone(b.schema.TextFields),
			Literal: text,
			Pattern: regexp.QuoteMeta(text),
		})
	}

	if raw := strings.TrimSpace(req.Category); raw != "" {
		canonical, ok := b.schema.CanonicalCategory(raw)
		if !ok {
			return Query{}, &InvalidFilterValueError{
				Field:   b.schema.CategoryField,
				Value:   raw,
				Allowed: slices.Clone(b.schema.Categories),
			}
		}
		pred.Conditions = append(pred.Conditions, Equals{Field: b.schema.CategoryField, Value: canonical})
	}

	if raw := strings.TrimSpace(req.RangeSpec); raw != "" {
		rng, err := ParseRange(raw)
		if err != nil {
			pred.MatchNone = true
		} else {
			pred.Conditions = append(pred.Conditions, NumericRange{Field: b.schema.RangeField, Range: rng})
		}
	}

	return Query{
		Collection: b.schema.Name,
		Predicate:  pred,
		Cap:        b.cap,
		Sort:       sortKey,
	}, nil
}
