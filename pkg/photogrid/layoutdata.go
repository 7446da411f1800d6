package photogrid

import (
	"strconv"
	"time"

	"github.com/mhartig/photogrid/pkg/geom"
)

// SrcSet is one resized variant of a source image.
type SrcSet struct {
	Dimensions geom.Dimension `json:"dimensions"`
	URL        string         `json:"url"`
}

// PhotoLayoutData is the opaque per-item payload the engine lays out:
// the intrinsic aspect ratio, the available resized variants, and
// free-form string metadata.
type PhotoLayoutData struct {
	AspectRatio geom.AspectRatio  `json:"aspect_ratio"`
	Srcs        []SrcSet          `json:"srcs"`
	Metadata    map[string]string `json:"metadata"`
}

// LargestSrc returns the widest resized variant, or false when the
// photo has no variants at all.
func (p PhotoLayoutData) LargestSrc() (SrcSet, bool) {
	if len(p.Srcs) == 0 {
		return SrcSet{}, false
	}
	best := p.Srcs[0]
	for _, s := range p.Srcs[1:] {
		if s.Dimensions.W > best.Dimensions.W {
			best = s
		}
	}
	return best, true
}

// Timestamp returns the photo's capture time from the "timestamp"
// metadata entry (RFC 3339). Missing or malformed metadata degrades to
// the zero time rather than failing the layout.
func (p PhotoLayoutData) Timestamp() time.Time {
	ts, err := time.Parse(time.RFC3339, p.Metadata["timestamp"])
	if err != nil {
		return time.Time{}
	}
	return ts
}

// Rating returns the photo's rating from the "rating" metadata entry.
// Missing or malformed metadata degrades to zero.
func (p PhotoLayoutData) Rating() int {
	n, err := strconv.Atoi(p.Metadata["rating"])
	if err != nil {
		return 0
	}
	return n
}

// DefaultBreakpoints is the column-count set a photo wall is laid out
// for when no configuration overrides it.
var DefaultBreakpoints = []int{3, 4, 5, 8, 12}

// DefaultShortEdge is the default short-edge unit count for footprint
// rounding.
const DefaultShortEdge = 2

// DefaultSizer sizes a photo for a breakpoint: the rounded footprint
// of its largest variant (falling back to the declared aspect ratio),
// clamped to the breakpoint's column count. On the smallest breakpoint
// the footprint is additionally widened to the full column count so
// each photo spans the row.
func DefaultSizer(shortEdge int, policy geom.RoundingPolicy) Sizer[PhotoLayoutData] {
	return func(p PhotoLayoutData, bp BreakpointContext) geom.Size {
		ratio := p.AspectRatio
		if src, ok := p.LargestSrc(); ok {
			ratio = src.Dimensions.AspectRatio()
		}
		// Scaling both components leaves the ratio unchanged but keeps
		// the rounding divisor positive for already-reduced ratios like
		// 1:1, whose short component is below the unit count.
		if m := min(ratio.W, ratio.H); m > 0 && m < shortEdge {
			ratio = geom.AspectRatio{W: ratio.W * shortEdge, H: ratio.H * shortEdge}
		}
		rounded := geom.RoundRatioPolicy(ratio, shortEdge, policy)

		cfg := geom.ClampConfig{MaxWidth: bp.Columns}
		if bp.Index == 0 {
			// Smallest breakpoint: every photo spans the full row.
			cfg.MinWidth = bp.Columns
		}
		return geom.Clamp(rounded, cfg)
	}
}

// DefaultResponsive lays photos out over [DefaultBreakpoints] with the
// default sizing rule and the gap-closing pass applied.
func DefaultResponsive(photos []PhotoLayoutData) *ResponsivePhotoGrid[PhotoLayoutData] {
	return NewResponsive(photos, DefaultBreakpoints, DefaultSizer(DefaultShortEdge, geom.RoundUp)).
		GrowToWidth()
}
