package photogrid

import "github.com/mhartig/photogrid/pkg/geom"

// BreakpointContext tells a sizing rule which breakpoint it is sizing
// for, so footprints can vary per breakpoint (e.g. clamping to the
// column count, or forcing full-width items on the smallest layout).
type BreakpointContext struct {
	// Index is the breakpoint's position in the configured list.
	Index int
	// Columns is the breakpoint's column count.
	Columns int
}

// Sizer resolves an item to its cell footprint for one breakpoint.
type Sizer[T any] func(item T, bp BreakpointContext) geom.Size

// ResponsivePhotoGrid holds one independently packed grid per
// configured column count over a shared, stable-indexed item arena.
// Each inner grid places ordinals 0..N-1; items are resolved on read.
//
// Every breakpoint is a pure function of (items, column count, sizing
// rule): there is no shared mutable state between breakpoints.
type ResponsivePhotoGrid[T any] struct {
	grids []PhotoGrid[int]
	data  []T
}

// NewResponsive builds one grid per column count in widths over the
// same item set. The sizing rule receives the item together with its
// breakpoint context.
func NewResponsive[T any](items []T, widths []int, sizeFn Sizer[T]) *ResponsivePhotoGrid[T] {
	ids := make([]int, len(items))
	for i := range ids {
		ids[i] = i
	}

	grids := make([]PhotoGrid[int], 0, len(widths))
	for idx, width := range widths {
		bp := BreakpointContext{Index: idx, Columns: width}
		grids = append(grids, NewWithMapper(ids, width, func(id int) geom.Size {
			return sizeFn(items[id], bp)
		}))
	}

	return &ResponsivePhotoGrid[T]{grids: grids, data: items}
}

// Grids resolves the ordinal placements of every breakpoint against
// the item arena and returns the resulting views in breakpoint order.
func (r *ResponsivePhotoGrid[T]) Grids() []PhotoGrid[T] {
	out := make([]PhotoGrid[T], 0, len(r.grids))
	for _, g := range r.grids {
		placements := make([]Content[T], 0, len(g.Placements))
		for _, c := range g.Placements {
			placements = append(placements, mapContent(c, func(id int) T {
				return r.data[id]
			}))
		}
		out = append(out, PhotoGrid[T]{Placements: placements, Width: g.Width})
	}
	return out
}

// Slot correlates one logical item across a single breakpoint: the
// placement it received and the breakpoint's column count.
type Slot[T any] struct {
	Item      T
	Placement Content[int]
	Columns   int
}

// ContentsAt returns item slot n's placement in every breakpoint, in
// breakpoint order. Lookup is by identity, so each returned slot
// refers to the same logical item regardless of where packing put it.
// Returns nil if n is out of range.
func (r *ResponsivePhotoGrid[T]) ContentsAt(n int) []Slot[T] {
	if n < 0 || n >= len(r.data) {
		return nil
	}
	out := make([]Slot[T], 0, len(r.grids))
	for _, g := range r.grids {
		for _, c := range g.Placements {
			if c.Data == n {
				out = append(out, Slot[T]{Item: r.data[n], Placement: c, Columns: g.Width})
				break
			}
		}
	}
	return out
}

// ContentsLen returns the number of items each breakpoint places.
func (r *ResponsivePhotoGrid[T]) ContentsLen() int { return len(r.data) }

// Breakpoints returns the configured column counts in order.
func (r *ResponsivePhotoGrid[T]) Breakpoints() []int {
	out := make([]int, len(r.grids))
	for i, g := range r.grids {
		out[i] = g.Width
	}
	return out
}

// GrowToWidth applies the gap-closing pass to every breakpoint
// independently and returns the grid for chaining. On the smallest
// breakpoint this typically stretches each item to the full row width.
func (r *ResponsivePhotoGrid[T]) GrowToWidth() *ResponsivePhotoGrid[T] {
	for i := range r.grids {
		r.grids[i] = r.grids[i].GrowNonIntersecting()
	}
	return r
}
