// Package grid implements the occupancy grid the packing engine works
// on: a fixed-width, row-major cell buffer whose row count grows
// monotonically, plus the greedy first-fit bin-packer and the region
// reconstructor that turns a packed grid back into placement
// rectangles.
//
// # Invariants
//
// The cell buffer always holds exactly Width*Height cells: growth adds
// whole rows, and the height never decreases. Construction is a single
// synchronous packing pass with no I/O; a packed grid is consumed by
// [Regions] and never mutated afterwards.
package grid

import (
	"fmt"

	"github.com/mhartig/photogrid/pkg/geom"
)

// Connectivity selects which adjacent cells Neighbours yields.
type Connectivity int

const (
	// Conn4 yields the four orthogonal neighbours.
	Conn4 Connectivity = iota
	// ConnDiagonal yields the four diagonal neighbours.
	ConnDiagonal
	// Conn8 yields all eight surrounding neighbours.
	Conn8
)

// cell is an optional value: occupied pairs the zero value with false
// so empty cells compare equal with ==.
type cell[T comparable] struct {
	val      T
	occupied bool
}

// Grid is a fixed-width, dynamically row-growable occupancy buffer.
// Cells are stored row-major: index = y*width + x. The zero value is
// not usable; use [New] or [NewWithHeight].
//
// Grid is not safe for concurrent mutation. Build it in one goroutine,
// then share the consumed result freely.
type Grid[T comparable] struct {
	width int
	cells []cell[T]
}

// New creates an empty grid with the given column count.
// Panics if width is not positive.
func New[T comparable](width int) *Grid[T] {
	if width <= 0 {
		panic(fmt.Sprintf("grid: width must be positive, got %d", width))
	}
	return &Grid[T]{width: width}
}

// NewWithHeight creates a grid pre-grown to the given row count.
func NewWithHeight[T comparable](width, height int) *Grid[T] {
	g := New[T](width)
	if height > 0 {
		g.cells = make([]cell[T], width*height)
	}
	return g
}

// Width returns the fixed column count.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the current row count. It only ever increases.
func (g *Grid[T]) Height() int { return len(g.cells) / g.width }

// Len returns the number of allocated cells, always Width()*Height().
func (g *Grid[T]) Len() int { return len(g.cells) }

// ToIndex converts a coordinate to its flat row-major index.
func (g *Grid[T]) ToIndex(c geom.Coord) int { return c.Y*g.width + c.X }

// ToCoord converts a flat index back to a coordinate.
func (g *Grid[T]) ToCoord(idx int) geom.Coord {
	return geom.Coord{X: idx % g.width, Y: idx / g.width}
}

// At returns the value at idx and whether the cell is occupied.
// Indices beyond the allocated extent read as empty.
func (g *Grid[T]) At(idx int) (T, bool) {
	if idx < 0 || idx >= len(g.cells) {
		var zero T
		return zero, false
	}
	c := g.cells[idx]
	return c.val, c.occupied
}

// Set marks the cell at idx with val. The cell must be allocated.
func (g *Grid[T]) Set(idx int, val T) {
	g.cells[idx] = cell[T]{val: val, occupied: true}
}

// ExtendTo grows the buffer with empty cells up to and including the
// row containing idx. Growth is monotonic and idempotent: indices
// already covered are a no-op.
func (g *Grid[T]) ExtendTo(idx int) {
	end := (idx/g.width + 1) * g.width
	if end <= len(g.cells) {
		return
	}
	g.cells = append(g.cells, make([]cell[T], end-len(g.cells))...)
}

// Neighbours returns the in-bounds cells adjacent to c for the given
// connectivity. There is no wraparound: cells past an edge are simply
// absent. Bounds are the fixed width and the currently allocated
// height.
func (g *Grid[T]) Neighbours(c geom.Coord, conn Connectivity) []geom.Coord {
	var offsets [][2]int
	switch conn {
	case Conn4:
		offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	case ConnDiagonal:
		offsets = [][2]int{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
	case Conn8:
		offsets = [][2]int{
			{0, -1}, {1, -1}, {1, 0}, {1, 1},
			{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
		}
	}

	height := g.Height()
	out := make([]geom.Coord, 0, len(offsets))
	for _, o := range offsets {
		x, y := c.X+o[0], c.Y+o[1]
		if x < 0 || x >= g.width || y < 0 || y >= height {
			continue
		}
		out = append(out, geom.Coord{X: x, Y: y})
	}
	return out
}

// coveredIndices calls fn with each flat index a rectangle of the given
// size covers when its top-left cell sits at offset. Iteration is
// row-major within the rectangle.
func (g *Grid[T]) coveredIndices(offset int, size geom.Size, fn func(idx int)) {
	for y := 0; y < size.Height(); y++ {
		for x := 0; x < size.Width(); x++ {
			fn(offset + y*g.width + x)
		}
	}
}
