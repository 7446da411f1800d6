package grid

import (
	"testing"

	"github.com/mhartig/photogrid/pkg/geom"
)

// verifyRectangles is the test-only full-rectangle check the production
// reconstructor deliberately omits: every reported region must exactly
// cover a same-value rectangle, regions must be pairwise disjoint, and
// together they must account for every occupied cell.
func verifyRectangles[T comparable](t *testing.T, g *Grid[T], regions []Region[T]) {
	t.Helper()

	covered := make(map[int]struct{})
	for _, r := range regions {
		for y := r.Origin.Y; y < r.Origin.Y+r.Span.H; y++ {
			for x := r.Origin.X; x < r.Origin.X+r.Span.W; x++ {
				idx := g.ToIndex(geom.Coord{X: x, Y: y})
				if _, dup := covered[idx]; dup {
					t.Errorf("cell %d covered by more than one region", idx)
				}
				covered[idx] = struct{}{}
				v, ok := g.At(idx)
				if !ok || v != r.Value {
					t.Errorf("cell %d not occupied by region value %v", idx, r.Value)
				}
			}
		}
	}
	for idx := 0; idx < g.Len(); idx++ {
		if _, ok := g.At(idx); ok {
			if _, seen := covered[idx]; !seen {
				t.Errorf("occupied cell %d not covered by any region", idx)
			}
		}
	}
}

// Two landscapes and a portrait reconstruct in row-major discovery
// order with the packer's exact origins and spans.
func TestRegions_ReconstructsPlacements(t *testing.T) {
	g := New[int](4)
	Pack(g, []geom.Size{landscape(2), landscape(2), portrait(2)})

	regions := Regions(g)

	want := []Region[int]{
		{Value: 0, Span: geom.Dimension{W: 2, H: 1}, Origin: geom.Coord{X: 0, Y: 0}},
		{Value: 1, Span: geom.Dimension{W: 2, H: 1}, Origin: geom.Coord{X: 2, Y: 0}},
		{Value: 2, Span: geom.Dimension{W: 1, H: 2}, Origin: geom.Coord{X: 0, Y: 1}},
	}
	if len(regions) != len(want) {
		t.Fatalf("Regions() returned %d regions, want %d", len(regions), len(want))
	}
	for i, w := range want {
		if regions[i] != w {
			t.Errorf("region %d = %+v, want %+v", i, regions[i], w)
		}
	}
	verifyRectangles(t, g, regions)
}

// Three portraits fill a band, then a landscape starts the next one.
func TestRegions_TallBandThenRow(t *testing.T) {
	g := New[int](4)
	Pack(g, []geom.Size{portrait(2), portrait(2), portrait(2), landscape(2)})

	regions := Regions(g)

	want := []Region[int]{
		{Value: 0, Span: geom.Dimension{W: 1, H: 2}, Origin: geom.Coord{X: 0, Y: 0}},
		{Value: 1, Span: geom.Dimension{W: 1, H: 2}, Origin: geom.Coord{X: 1, Y: 0}},
		{Value: 2, Span: geom.Dimension{W: 1, H: 2}, Origin: geom.Coord{X: 2, Y: 0}},
		{Value: 3, Span: geom.Dimension{W: 2, H: 1}, Origin: geom.Coord{X: 0, Y: 2}},
	}
	if len(regions) != len(want) {
		t.Fatalf("Regions() returned %d regions, want %d", len(regions), len(want))
	}
	for i, w := range want {
		if regions[i] != w {
			t.Errorf("region %d = %+v, want %+v", i, regions[i], w)
		}
	}
	verifyRectangles(t, g, regions)
}

func TestRegions_SkipsEmptyRuns(t *testing.T) {
	g := New[int](4)
	Pack(g, []geom.Size{landscape(2)})

	regions := Regions(g)
	if len(regions) != 1 {
		t.Fatalf("Regions() returned %d regions, want 1", len(regions))
	}
	if regions[0].Value != 0 {
		t.Errorf("region value = %d, want 0", regions[0].Value)
	}
}

func TestRegions_EmptyGrid(t *testing.T) {
	g := New[int](4)
	if regions := Regions(g); len(regions) != 0 {
		t.Errorf("Regions() on empty grid returned %d regions", len(regions))
	}
}

func TestRegions_CoversEveryIdentityExactlyOnce(t *testing.T) {
	items := []geom.Size{portrait(3), landscape(2), portrait(2), landscape(4), landscape(2), portrait(2)}
	g := New[int](5)
	Pack(g, items)

	regions := Regions(g)
	if len(regions) != len(items) {
		t.Fatalf("Regions() returned %d regions, want %d", len(regions), len(items))
	}
	seen := make(map[int]bool)
	for _, r := range regions {
		if seen[r.Value] {
			t.Errorf("identity %d appears in more than one region", r.Value)
		}
		seen[r.Value] = true
	}
	verifyRectangles(t, g, regions)
}
