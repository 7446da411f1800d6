package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse failures are recoverable and typed: callers can distinguish a
// missing or malformed separator from a non-integer component with
// errors.Is. Values are never silently defaulted.
var (
	// ErrSeparator is returned when the separator is missing, duplicated,
	// or followed by trailing content.
	ErrSeparator = errors.New("missing or malformed separator")

	// ErrInteger is returned when either side of the separator is not a
	// non-negative integer.
	ErrInteger = errors.New("component is not a non-negative integer")
)

// ParseAspectRatio parses the "W:H" text form used when ratios arrive
// from configuration or object metadata strings.
func ParseAspectRatio(s string) (AspectRatio, error) {
	w, h, err := parsePair(s, ":")
	if err != nil {
		return AspectRatio{}, err
	}
	return AspectRatio{W: w, H: h}, nil
}

// ParseDimension parses the "WxH" text form.
func ParseDimension(s string) (Dimension, error) {
	w, h, err := parsePair(s, "x")
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{W: w, H: h}, nil
}

// parsePair splits s on exactly one occurrence of sep and parses both
// sides as non-negative integers.
func parsePair(s, sep string) (int, int, error) {
	first, second, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", s, ErrSeparator)
	}
	if strings.Contains(second, sep) {
		return 0, 0, fmt.Errorf("%q: duplicated %q: %w", s, sep, ErrSeparator)
	}
	a, err := parseComponent(first)
	if err != nil {
		return 0, 0, err
	}
	b, err := parseComponent(second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseComponent(s string) (int, error) {
	// ParseUint rejects signs and empty strings, matching the
	// non-negative contract exactly.
	v, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInteger)
	}
	return int(v), nil
}
