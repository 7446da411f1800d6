package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mhartig/photogrid/pkg/geom"
	"github.com/mhartig/photogrid/pkg/photogrid"
)

func testPreviewGrid() *photogrid.ResponsivePhotoGrid[photogrid.PhotoLayoutData] {
	photos := []photogrid.PhotoLayoutData{
		{AspectRatio: geom.AspectRatio{W: 3, H: 2}},
		{AspectRatio: geom.AspectRatio{W: 2, H: 3}},
		{AspectRatio: geom.AspectRatio{W: 1, H: 1}},
	}
	return photogrid.NewResponsive(photos, []int{4, 8},
		photogrid.DefaultSizer(2, geom.RoundUp))
}

func TestPreviewModelNavigation(t *testing.T) {
	m := NewPreviewModel(testPreviewGrid())

	if m.Cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", m.Cursor)
	}

	key := func(s string) tea.Msg {
		if s == "left" {
			return tea.KeyMsg{Type: tea.KeyLeft}
		}
		return tea.KeyMsg{Type: tea.KeyRight}
	}

	next, _ := m.Update(key("right"))
	m = next.(PreviewModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after right = %d, want 1", m.Cursor)
	}

	// Right at the last breakpoint stays put
	next, _ = m.Update(key("right"))
	m = next.(PreviewModel)
	if m.Cursor != 1 {
		t.Errorf("cursor should clamp at last breakpoint, got %d", m.Cursor)
	}

	next, _ = m.Update(key("left"))
	m = next.(PreviewModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after left = %d, want 0", m.Cursor)
	}

	// Left at the first breakpoint stays put
	next, _ = m.Update(key("left"))
	m = next.(PreviewModel)
	if m.Cursor != 0 {
		t.Errorf("cursor should clamp at first breakpoint, got %d", m.Cursor)
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m := NewPreviewModel(testPreviewGrid())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("q produced %T, want tea.QuitMsg", msg)
	}
}

func TestPreviewModelView(t *testing.T) {
	m := NewPreviewModel(testPreviewGrid())

	view := m.View()
	if !strings.Contains(view, "4 columns") {
		t.Errorf("view should name the breakpoint's column count:\n%s", view)
	}
	if !strings.Contains(view, "[1/2]") {
		t.Errorf("view should show breakpoint position:\n%s", view)
	}
	if !strings.Contains(view, "3 photos") {
		t.Errorf("view should show the photo count:\n%s", view)
	}
}

func TestRenderGridCoverage(t *testing.T) {
	// Two placements filling a 4x1 strip with a trailing gap.
	g := photogrid.PhotoGrid[photogrid.PhotoLayoutData]{
		Placements: []photogrid.Content[photogrid.PhotoLayoutData]{
			{Size: geom.Dimension{W: 2, H: 1}, Origin: geom.Coord{X: 0, Y: 0}},
			{Size: geom.Dimension{W: 1, H: 1}, Origin: geom.Coord{X: 2, Y: 0}},
		},
		Width: 4,
	}

	out := renderGrid(g)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d rows, want 1:\n%s", len(lines), out)
	}
	// The unplaced trailing cell renders as the empty marker.
	if !strings.Contains(out, "··") {
		t.Errorf("empty cell should render as a dotted marker:\n%s", out)
	}
}

func TestRenderGridEmpty(t *testing.T) {
	g := photogrid.PhotoGrid[photogrid.PhotoLayoutData]{Width: 4}
	if out := renderGrid(g); out != "" {
		t.Errorf("empty grid should render nothing, got %q", out)
	}
}
