package geom

import "fmt"

// RoundingPolicy selects how the long edge of a rounded aspect ratio is
// computed from the division remainder. Observed photo libraries behave
// best with RoundUp, which is the default everywhere; RoundHalf is kept
// as an explicitly selectable alternate.
type RoundingPolicy int

const (
	// RoundUp rounds the long edge up on any nonzero remainder.
	RoundUp RoundingPolicy = iota
	// RoundHalf rounds the long edge up only when the remainder exceeds
	// half the divisor.
	RoundHalf
)

// String returns "up" or "half".
func (p RoundingPolicy) String() string {
	if p == RoundHalf {
		return "half"
	}
	return "up"
}

// ParseRoundingPolicy maps the config spellings "up" and "half" to a
// policy. An empty string selects the default RoundUp.
func ParseRoundingPolicy(s string) (RoundingPolicy, error) {
	switch s {
	case "", "up":
		return RoundUp, nil
	case "half":
		return RoundHalf, nil
	}
	return 0, fmt.Errorf("unknown rounding policy %q (must be \"up\" or \"half\")", s)
}

// RoundedAspectRatio is an aspect ratio snapped to a small integer cell
// footprint: the short edge is fixed at a unit count and the long edge
// is the rounded integer multiple. It implements [Size].
type RoundedAspectRatio struct {
	shortEdge   int
	longEdge    int
	orientation Orientation
}

// RoundRatio converts ratio into a cell footprint whose short edge is
// shortEdge cells, rounding the long edge up on any nonzero remainder.
// shortEdge must be positive and must not exceed the ratio's short
// component, otherwise the divisor collapses to zero and RoundRatio
// panics.
func RoundRatio(ratio AspectRatio, shortEdge int) RoundedAspectRatio {
	return RoundRatioPolicy(ratio, shortEdge, RoundUp)
}

// RoundRatioPolicy is [RoundRatio] with an explicit rounding policy.
func RoundRatioPolicy(ratio AspectRatio, shortEdge int, policy RoundingPolicy) RoundedAspectRatio {
	orientation := ratio.Orientation()
	min, max := ratio.W, ratio.H
	if orientation == Landscape {
		min, max = ratio.H, ratio.W
	}

	divisor := min / shortEdge
	if divisor == 0 {
		panic(fmt.Sprintf("geom: short edge %d exceeds ratio %s", shortEdge, ratio))
	}

	longEdge := max / divisor
	switch rem := max % divisor; policy {
	case RoundHalf:
		if rem*2 > divisor {
			longEdge++
		}
	default:
		if rem > 0 {
			longEdge++
		}
	}

	return RoundedAspectRatio{
		shortEdge:   shortEdge,
		longEdge:    longEdge,
		orientation: orientation,
	}
}

// RoundSize is [RoundRatio] applied to the gcd-reduced ratio of a size,
// typically a source image's pixel dimensions.
func RoundSize(s Size, shortEdge int) RoundedAspectRatio {
	return RoundRatio(Dimension{W: s.Width(), H: s.Height()}.AspectRatio(), shortEdge)
}

// Width returns the cell width per orientation.
func (r RoundedAspectRatio) Width() int {
	if r.orientation == Landscape {
		return r.longEdge
	}
	return r.shortEdge
}

// Height returns the cell height per orientation.
func (r RoundedAspectRatio) Height() int {
	if r.orientation == Landscape {
		return r.shortEdge
	}
	return r.longEdge
}

// Orientation returns the orientation the footprint was derived with.
func (r RoundedAspectRatio) Orientation() Orientation { return r.orientation }

// NormalizedAspectRatio is the unit-short-edge special case: the short
// edge is exactly one cell and LongEdge is the rounded multiple. Fields
// are exported so tests and callers can state footprints literally.
// It implements [Size].
type NormalizedAspectRatio struct {
	Orient   Orientation
	LongEdge int
}

// NormalizeRatio derives the unit-short-edge footprint of ratio,
// rounding the long edge up on any nonzero remainder.
func NormalizeRatio(ratio AspectRatio) NormalizedAspectRatio {
	orientation := ratio.Orientation()
	min, max := ratio.W, ratio.H
	if orientation == Landscape {
		min, max = ratio.H, ratio.W
	}

	longEdge := max / min
	if max%min > 0 {
		longEdge++
	}

	return NormalizedAspectRatio{Orient: orientation, LongEdge: longEdge}
}

// Width returns the cell width per orientation.
func (n NormalizedAspectRatio) Width() int {
	if n.Orient == Landscape {
		return n.LongEdge
	}
	return 1
}

// Height returns the cell height per orientation.
func (n NormalizedAspectRatio) Height() int {
	if n.Orient == Landscape {
		return 1
	}
	return n.LongEdge
}

// ClampConfig bounds a footprint's width. A zero field leaves that
// bound unset.
type ClampConfig struct {
	MinWidth int
	MaxWidth int
}

// clamped is a footprint produced by Clamp. It implements [Size].
type clamped struct {
	w, h int
}

func (c clamped) Width() int  { return c.w }
func (c clamped) Height() int { return c.h }

// ClampWidthTo bounds s to at most maxWidth columns. If the width
// already fits, s is returned unchanged; otherwise both edges are
// scaled by maxWidth/width with the height floored at one cell.
func ClampWidthTo(s Size, maxWidth int) Size {
	return Clamp(s, ClampConfig{MaxWidth: maxWidth})
}

// Clamp applies cfg to s: the max bound shrinks an over-wide footprint,
// then the min bound widens an under-wide one, each scaling the height
// proportionally and flooring it at one cell.
func Clamp(s Size, cfg ClampConfig) Size {
	w, h := s.Width(), s.Height()
	if cfg.MaxWidth > 0 && w > cfg.MaxWidth {
		h = h * cfg.MaxWidth / w
		if h < 1 {
			h = 1
		}
		w = cfg.MaxWidth
	}
	if cfg.MinWidth > 0 && w < cfg.MinWidth {
		h = h * cfg.MinWidth / w
		if h < 1 {
			h = 1
		}
		w = cfg.MinWidth
	}
	return clamped{w: w, h: h}
}
