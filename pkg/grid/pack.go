package grid

import (
	"fmt"

	"github.com/mhartig/photogrid/pkg/geom"
)

// Pack places items into g in input order using greedy row-major
// first-fit: each item claims the first allocated position where its
// rectangle stays inside the right edge and covers only empty cells
// (cells beyond the allocated height count as empty). When no
// allocated position fits, the grid grows and the item is appended at
// the end. Cell values are the item's ordinal in items.
//
// The result is deterministic: it depends only on input order. There
// is no backtracking and no optimality guarantee.
//
// An item with a zero extent is a contract violation of the caller's
// sizing rule, not malformed input, and Pack panics on it.
func Pack(g *Grid[int], items []geom.Size) {
	for ord, item := range items {
		if item.Width() < 1 || item.Height() < 1 {
			panic(fmt.Sprintf("grid: item %d has zero extent %dx%d", ord, item.Width(), item.Height()))
		}

		placed := false
		for idx := 0; idx < len(g.cells); idx++ {
			if g.cells[idx].occupied {
				continue
			}
			if g.fitsAt(idx, item) {
				g.insertAt(idx, ord, item)
				placed = true
				break
			}
		}
		if !placed {
			// Nothing fits within the current extent; append on a fresh
			// row. The buffer always holds whole rows, so Len() is a
			// row-start index.
			g.insertAt(g.Len(), ord, item)
		}
	}
}

// fitsAt reports whether a rectangle of the given size, with its
// top-left cell at idx, stays inside the right edge and covers only
// empty cells.
func (g *Grid[T]) fitsAt(idx int, size geom.Size) bool {
	if g.ToCoord(idx).X+size.Width() > g.width {
		return false
	}
	fits := true
	g.coveredIndices(idx, size, func(i int) {
		if i < len(g.cells) && g.cells[i].occupied {
			fits = false
		}
	})
	return fits
}

// insertAt grows the grid to the rectangle's full extent and marks
// every covered cell with val.
func (g *Grid[T]) insertAt(idx int, val T, size geom.Size) {
	last := idx + (size.Height()-1)*g.width + size.Width() - 1
	g.ExtendTo(last)
	g.coveredIndices(idx, size, func(i int) {
		g.Set(i, val)
	})
}
