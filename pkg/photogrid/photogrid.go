// Package photogrid assembles packed occupancy grids into the
// placement lists a responsive photo wall is rendered from: one
// [PhotoGrid] per breakpoint column count, collected into a
// [ResponsivePhotoGrid] over a shared item arena.
//
// Construction is a single synchronous pass. A built grid is immutable
// and may be shared by any number of concurrent readers without
// synchronization; rebuilding on new data means constructing a whole
// new instance and publishing it atomically.
package photogrid

import (
	"fmt"

	"github.com/mhartig/photogrid/pkg/geom"
	"github.com/mhartig/photogrid/pkg/grid"
)

// Content is a placed rectangle: the payload, its span in cells, and
// its top-left origin. Origin.X + Size.W never exceeds the grid width.
type Content[T any] struct {
	Data   T              `json:"data"`
	Size   geom.Dimension `json:"size"`
	Origin geom.Coord     `json:"origin"`
}

// GridArea returns the span and origin of the placement.
func (c Content[T]) GridArea() (geom.Dimension, geom.Coord) {
	return c.Size, c.Origin
}

// rowRange is the half-open vertical extent [Origin.Y, Origin.Y+Size.H).
func (c Content[T]) rowRange() (int, int) {
	return c.Origin.Y, c.Origin.Y + c.Size.H
}

// mapContent rebuilds a placement around a transformed payload.
func mapContent[T, U any](c Content[T], fn func(T) U) Content[U] {
	return Content[U]{Data: fn(c.Data), Size: c.Size, Origin: c.Origin}
}

// rangesIntersect reports whether two half-open ranges overlap.
func rangesIntersect(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// PhotoGrid is one complete set of placements at one breakpoint.
// Placements cover pairwise-disjoint cell sets and together place every
// input item exactly once.
type PhotoGrid[T any] struct {
	Placements []Content[T]
	Width      int
}

// SizerFor resolves an item to its cell footprint when building a
// single-breakpoint grid.
type SizerFor[T any] func(item T) geom.Size

// NewWithMapper packs items into a grid with the given column count,
// sized through sizeFn, and resolves the packed ordinals back to the
// items. Items are consumed arena-style: each index is moved into
// exactly one placement, and a consumption bitset makes a double
// consumption fail fast — that indicates a bug in the sizing rule, not
// malformed input.
func NewWithMapper[T any](items []T, width int, sizeFn SizerFor[T]) PhotoGrid[T] {
	g := grid.New[int](width)
	sizes := make([]geom.Size, len(items))
	for i := range items {
		sizes[i] = sizeFn(items[i])
	}
	grid.Pack(g, sizes)

	return PhotoGrid[T]{
		Placements: resolvePlacements(items, grid.Regions(g)),
		Width:      width,
	}
}

// resolvePlacements substitutes region ordinals with their items,
// enforcing exactly-once consumption.
func resolvePlacements[T any](items []T, regions []grid.Region[int]) []Content[T] {
	consumed := newBitset(len(items))
	placements := make([]Content[T], 0, len(regions))
	for _, r := range regions {
		if r.Value < 0 || r.Value >= len(items) {
			panic(fmt.Sprintf("photogrid: region references unknown item %d", r.Value))
		}
		if consumed.test(r.Value) {
			panic(fmt.Sprintf("photogrid: item %d consumed by more than one placement", r.Value))
		}
		consumed.set(r.Value)
		placements = append(placements, Content[T]{
			Data:   items[r.Value],
			Size:   r.Span,
			Origin: r.Origin,
		})
	}
	if len(placements) != len(items) {
		panic(fmt.Sprintf("photogrid: placed %d of %d items", len(placements), len(items)))
	}
	return placements
}

// GrowNonIntersecting closes trailing row gaps: any placement with no
// other placement at a strictly greater origin column overlapping its
// vertical extent grows to the grid's right edge. Width only ever
// increases, height never changes, and the guarding test ensures no
// overlap is created.
func (p PhotoGrid[T]) GrowNonIntersecting() PhotoGrid[T] {
	for i := range p.Placements {
		iStart, iEnd := p.Placements[i].rowRange()
		blocked := false
		for j := range p.Placements {
			if j == i || p.Placements[j].Origin.X <= p.Placements[i].Origin.X {
				continue
			}
			jStart, jEnd := p.Placements[j].rowRange()
			if rangesIntersect(iStart, iEnd, jStart, jEnd) {
				blocked = true
				break
			}
		}
		if !blocked {
			p.Placements[i].Size.W = p.Width - p.Placements[i].Origin.X
		}
	}
	return p
}

// bitset tracks item consumption during placement resolution.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) test(i int) bool { return b[i/64]&(1<<(i%64)) != 0 }

func (b bitset) set(i int) { b[i/64] |= 1 << (i % 64) }
