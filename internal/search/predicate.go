package search

import (
	"fmt"
	"strings"
)

// Document exposes the attributes a predicate can be evaluated against.
type Document interface {
	TextField(name string) string
	NumberField(name string) (float64, bool)
}

// Condition is one conjunct of a Predicate.
type Condition interface {
	Matches(doc Document) bool
	String() string
	condition()
}

// TextMatch is a case-insensitive literal substring match OR-ed across Fields.
// Pattern is Literal with every regex metacharacter escaped, ready for a regex
// capable store.
type TextMatch struct {
	Fields  []string
	Literal string
	Pattern string
}

// Equals matches a field against a canonical enum value, ignoring case.
type Equals struct {
	Field string
	Value string
}

// NumericRange constrains a numeric field to an inclusive range.
type NumericRange struct {
	Field string
	Range Range
}

func (TextMatch) condition()    {}
func (Equals) condition()       {}
func (NumericRange) condition() {}

// Matches folds case on both sides and looks for Literal as a plain substring,
// so evaluating a document never compiles Pattern.
func (t TextMatch) Matches(doc Document) bool {
	needle := strings.ToLower(t.Literal)
	for _, field := range t.Fields {
		if strings.Contains(strings.ToLower(doc.TextField(field)), needle) {
			return true
		}
	}
	return false
}

func (t TextMatch) String() string {
	return fmt.Sprintf("text(%s)~%q", strings.Join(t.Fields, ","), t.Literal)
}

func (e Equals) Matches(doc Document) bool {
	return strings.EqualFold(doc.TextField(e.Field), e.Value)
}

func (e Equals) String() string {
	return fmt.Sprintf("%s=%q", e.Field, e.Value)
}

func (n NumericRange) Matches(doc Document) bool {
	v, ok := doc.NumberField(n.Field)
	if !ok {
		return false
	}
	return n.Range.Contains(v)
}

func (n NumericRange) String() string {
	return fmt.Sprintf("%s in [%s]", n.Field, n.Range)
}

// Predicate is a conjunction of conditions. A predicate without conditions matches
// every record; MatchNone forces an empty result regardless of the conditions.
type Predicate struct {
	Conditions []Condition
	MatchNone  bool
}

// IsEmpty reports whether the predicate places no constraint at all.
func (p Predicate) IsEmpty() bool {
	return !p.MatchNone && len(p.Conditions) == 0
}

// Matches evaluates the predicate in memory.
func (p Predicate) Matches(doc Document) bool {
	if p.MatchNone {
		return false
	}
	for _, c := range p.Conditions {
		if !c.Matches(doc) {
			return false
		}
	}
	return true
}

func (p Predicate) String() string {
	if p.MatchNone {
		return "none"
	}
	if len(p.Conditions) == 0 {
		return "all"
	}
	parts := make([]string, 0, len(p.Conditions))
	for _, c := range p.Conditions {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " AND ")
}

// Filter applies the predicate to records in their given order and stops after
// limit matches. A non-positive limit keeps every match.
func Filter[T Document](records []T, p Predicate, limit int) []T {
	out := make([]T, 0)
	if p.MatchNone {
		return out
	}
	for _, r := range records {
		if limit > 0 && len(out) >= limit {
			break
		}
		if p.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
