package search

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	closedRangePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)$`)
	openRangePattern   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*\+$`)
)

// Range is an inclusive numeric interval. A nil Max means no upper bound.
type Range struct {
	Min float64
	Max *float64
}

// Contains reports whether v lies inside the range, comparing numerically.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) || v < r.Min {
		return false
	}
	return r.Max == nil || v <= *r.Max
}

func (r Range) String() string {
	if r.Max == nil {
		return formatBound(r.Min) + "+"
	}
	return formatBound(r.Min) + "-" + formatBound(*r.Max)
}

// ParseRange decodes "<min>-<max>" into a closed range and "<min>+" into an open
// lower bound. Every other shape yields ErrMalformedRange.
func ParseRange(spec string) (Range, error) {
	spec = strings.TrimSpace(spec)

	if m := closedRangePattern.FindStringSubmatch(spec); m != nil {
		lo, err := parseBound(m[1])
		if err != nil {
			return Range{}, err
		}
		hi, err := parseBound(m[2])
		if err != nil {
			return Range{}, err
		}
		if lo > hi {
			return Range{}, fmt.Errorf("%w: lower bound %s exceeds upper bound %s", ErrMalformedRange, m[1], m[2])
		}
		return Range{Min: lo, Max: &hi}, nil
	}

	if m := openRangePattern.FindStringSubmatch(spec); m != nil {
		lo, err := parseBound(m[1])
		if err != nil {
			return Range{}, err
		}
		return Range{Min: lo}, nil
	}

	return Range{}, fmt.Errorf("%w: %q", ErrMalformedRange, spec)
}

func parseBound(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: bound %q is not a finite number", ErrMalformedRange, raw)
	}
	return v, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
