// Package geom provides the value types the layout engine is built on:
// dimensions, aspect ratios, coordinates, and the Size capability that
// describes an item's footprint in grid cells.
//
// All sizes are expressed in whole grid cells. An item's footprint is
// derived from its intrinsic aspect ratio by [RoundRatio], which anchors
// the short edge to a fixed unit count and rounds the long edge to an
// integer multiple.
package geom

import "fmt"

// Orientation classifies a size by its longer edge.
type Orientation int

const (
	// Landscape means width >= height.
	Landscape Orientation = iota
	// Portrait means height > width.
	Portrait
)

// String returns "landscape" or "portrait".
func (o Orientation) String() string {
	if o == Portrait {
		return "portrait"
	}
	return "landscape"
}

// Size describes a rectangular footprint in grid cells.
// Implementations must return positive extents for packable items;
// a zero extent is a contract violation the packer fails fast on.
type Size interface {
	// Width returns the horizontal extent in cells.
	Width() int
	// Height returns the vertical extent in cells.
	Height() int
}

// OrientationOf derives the orientation of a size: Landscape if
// width >= height, Portrait otherwise.
func OrientationOf(s Size) Orientation {
	if s.Width() >= s.Height() {
		return Landscape
	}
	return Portrait
}

// Dimension is a width/height pair. Depending on context the units are
// pixels (source image dimensions) or grid cells (placement spans).
type Dimension struct {
	W int `json:"width"`
	H int `json:"height"`
}

// Width returns the horizontal extent. Dimension implements [Size].
func (d Dimension) Width() int { return d.W }

// Height returns the vertical extent. Dimension implements [Size].
func (d Dimension) Height() int { return d.H }

// String returns the canonical "WxH" text form.
func (d Dimension) String() string { return fmt.Sprintf("%dx%d", d.W, d.H) }

// AspectRatio returns the gcd-reduced aspect ratio of the dimension.
func (d Dimension) AspectRatio() AspectRatio {
	return AspectRatio{W: d.W, H: d.H}.Reduced()
}

// AspectRatio is a pair of positive integers describing proportions.
// It is not required to be reduced; use [AspectRatio.Reduced] for the
// canonical form.
type AspectRatio struct {
	W int `json:"width"`
	H int `json:"height"`
}

// String returns the canonical "W:H" text form.
func (r AspectRatio) String() string { return fmt.Sprintf("%d:%d", r.W, r.H) }

// Reduced returns the ratio divided by the greatest common divisor of
// its components. A ratio with a zero component is returned unchanged.
func (r AspectRatio) Reduced() AspectRatio {
	g := gcd(r.W, r.H)
	if g == 0 {
		return r
	}
	return AspectRatio{W: r.W / g, H: r.H / g}
}

// Orientation classifies the ratio: Landscape if W >= H, else Portrait.
func (r AspectRatio) Orientation() Orientation {
	if r.W >= r.H {
		return Landscape
	}
	return Portrait
}

// Coord identifies a grid cell by column (X) and row (Y).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
