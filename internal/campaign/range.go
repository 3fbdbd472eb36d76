package campaign

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rileyhilliard/insights/internal/errors"
)

// Range is an inclusive numeric interval parsed from "min-max" or "min+".
type Range struct {
	Min     float64
	Max     float64
	Bounded bool // false for "min+", which has no upper bound
}

// ParseRange parses a "min-max" or "min+" encoding.
func ParseRange(s string) (Range, error) {
	raw := strings.TrimSpace(s)

	if strings.HasSuffix(raw, "+") {
		min, err := parseBound(strings.TrimSuffix(raw, "+"))
		if err != nil {
			return Range{}, malformedRange(s, err)
		}
		return Range{Min: min}, nil
	}

	lo, hi, found := strings.Cut(raw, "-")
	if !found {
		return Range{}, malformedRange(s, fmt.Errorf("missing '-' or '+'"))
	}
	min, err := parseBound(lo)
	if err != nil {
		return Range{}, malformedRange(s, err)
	}
	max, err := parseBound(hi)
	if err != nil {
		return Range{}, malformedRange(s, err)
	}
	if max < min {
		return Range{}, malformedRange(s, fmt.Errorf("upper bound %g is below lower bound %g", max, min))
	}
	return Range{Min: min, Max: max, Bounded: true}, nil
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if v < r.Min {
		return false
	}
	return !r.Bounded || v <= r.Max
}

// String renders the range in its wire encoding.
func (r Range) String() string {
	if !r.Bounded {
		return strconv.FormatFloat(r.Min, 'f', -1, 64) + "+"
	}
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

func parseBound(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty bound")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("bound %q is not a finite number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative bound %g", v)
	}
	return v, nil
}

func malformedRange(s string, cause error) error {
	return errors.WrapWithCode(cause, errors.ErrFilter,
		fmt.Sprintf("Malformed range '%s'", s),
		"Use 'min-max' (e.g. 1000-5000) or 'min+' (e.g. 10000+).")
}
