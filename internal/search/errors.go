package search

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFilterValue marks a category or sort key outside its fixed enum,
	// or search text that is not clean UTF-8.
	ErrInvalidFilterValue = errors.New("invalid filter value")
	// ErrMalformedRange marks a range spec that is neither "<min>-<max>" nor "<min>+".
	ErrMalformedRange = errors.New("malformed range")
)

// InvalidFilterValueError carries the offending field and value so callers can report it.
type InvalidFilterValueError struct {
	Field   string
	Value   string
	Allowed []string
	// Reason replaces the allowed list for free-form fields.
	Reason string
}

func (e *InvalidFilterValueError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: expected one of %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// Unwrap lets errors.Is match ErrInvalidFilterValue.
func (e *InvalidFilterValueError) Unwrap() error {
	return ErrInvalidFilterValue
}
