package photogrid

import "time"

// SearchFilter narrows a photo set by capture time and rating before
// layout. Zero-valued fields are unset and match everything; photos
// with missing or malformed metadata fall back to the documented
// defaults (zero time, zero rating) instead of failing the filter.
type SearchFilter struct {
	// Before keeps photos captured at or before this time.
	Before time.Time
	// After keeps photos captured at or after this time.
	After time.Time
	// MinRating keeps photos rated at least this value.
	MinRating int
}

// IsZero reports whether the filter matches everything.
func (f SearchFilter) IsZero() bool {
	return f.Before.IsZero() && f.After.IsZero() && f.MinRating == 0
}

// Matches reports whether the photo passes every set bound.
func (f SearchFilter) Matches(p PhotoLayoutData) bool {
	ts := p.Timestamp()
	if !f.Before.IsZero() && ts.After(f.Before) {
		return false
	}
	if !f.After.IsZero() && ts.Before(f.After) {
		return false
	}
	return p.Rating() >= f.MinRating
}

// Apply returns the photos that pass the filter, preserving order.
func (f SearchFilter) Apply(photos []PhotoLayoutData) []PhotoLayoutData {
	if f.IsZero() {
		return photos
	}
	out := make([]PhotoLayoutData, 0, len(photos))
	for _, p := range photos {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
