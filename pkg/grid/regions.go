package grid

import "github.com/mhartig/photogrid/pkg/geom"

// Region is a reconstructed placement rectangle: the cell value, the
// span in cells, and the top-left origin.
type Region[T comparable] struct {
	Value  T
	Span   geom.Dimension
	Origin geom.Coord
}

// Regions converts a packed grid back into its placement rectangles in
// row-major discovery order.
//
// Precondition: every occupied region is one of the non-overlapping
// axis-aligned same-value rectangles produced by [Pack]. Under that
// precondition the maximal rectangle at a cursor can be found by
// probing its row extent and column extent independently, which keeps
// reconstruction at O(cells). Violations are not detected at runtime;
// they are guaranteed upstream by the packer and covered by tests.
func Regions[T comparable](g *Grid[T]) []Region[T] {
	seen := make(map[int]struct{})
	var out []Region[T]

	for cur := 0; cur < len(g.cells); {
		if _, ok := seen[cur]; ok {
			cur++
			continue
		}

		origin := g.ToCoord(cur)
		bottomRight := g.touching(origin)
		span := geom.Dimension{
			W: 1 + bottomRight.X - origin.X,
			H: 1 + bottomRight.Y - origin.Y,
		}

		for y := origin.Y; y <= bottomRight.Y; y++ {
			for x := origin.X; x <= bottomRight.X; x++ {
				seen[g.ToIndex(geom.Coord{X: x, Y: y})] = struct{}{}
			}
		}

		if g.cells[cur].occupied {
			out = append(out, Region[T]{
				Value:  g.cells[cur].val,
				Span:   span,
				Origin: origin,
			})
		}
		cur += span.W
	}
	return out
}

// touching returns the bottom-right corner of the maximal same-value
// rectangle anchored at topLeft, probing rightward along the row and
// downward along the column independently.
func (g *Grid[T]) touching(topLeft geom.Coord) geom.Coord {
	start := g.cells[g.ToIndex(topLeft)]
	corner := topLeft

	for x := topLeft.X + 1; x < g.width; x++ {
		if g.cells[g.ToIndex(geom.Coord{X: x, Y: topLeft.Y})] != start {
			break
		}
		corner.X = x
	}
	for y := topLeft.Y + 1; ; y++ {
		idx := g.ToIndex(geom.Coord{X: topLeft.X, Y: y})
		if idx >= len(g.cells) || g.cells[idx] != start {
			break
		}
		corner.Y = y
	}
	return corner
}
