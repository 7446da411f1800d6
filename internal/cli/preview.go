package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mhartig/photogrid/pkg/photogrid"
)

// previewCommand creates the preview command for rendering a layout in
// the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <layout.json>",
		Short: "Render one breakpoint's grid in the terminal",
		Long: `Render one breakpoint's grid in the terminal.

The preview command takes a layout.json file (produced by 'layout') and
draws each breakpoint's placements as colored cell blocks. Use the
arrow keys to switch between breakpoints.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open layout %s: %w", args[0], err)
			}
			grid, err := photogrid.ReadJSON[photogrid.PhotoLayoutData](f)
			f.Close()
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}

			model := NewPreviewModel(grid)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	return cmd
}

// cellPalette colors placements; adjacent ordinals get distinct colors.
var cellPalette = []lipgloss.Color{
	lipgloss.Color("36"),  // teal
	lipgloss.Color("75"),  // light blue
	lipgloss.Color("220"), // amber
	lipgloss.Color("35"),  // green
	lipgloss.Color("167"), // soft red
	lipgloss.Color("135"), // purple
	lipgloss.Color("208"), // orange
	lipgloss.Color("245"), // gray
}

// PreviewModel is the bubbletea model for breakpoint preview.
type PreviewModel struct {
	Grids  []photogrid.PhotoGrid[photogrid.PhotoLayoutData]
	Cursor int
}

// NewPreviewModel creates a preview model over the layout's resolved
// breakpoint grids.
func NewPreviewModel(grid *photogrid.ResponsivePhotoGrid[photogrid.PhotoLayoutData]) PreviewModel {
	return PreviewModel{Grids: grid.Grids()}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l":
			if m.Cursor < len(m.Grids)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ switch breakpoint  q quit"))
	b.WriteString("\n\n")

	if len(m.Grids) == 0 {
		b.WriteString(StyleDim.Render("  (no breakpoints)"))
		b.WriteString("\n")
		return b.String()
	}

	g := m.Grids[m.Cursor]
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("%d columns", g.Width)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]  %d photos", m.Cursor+1, len(m.Grids), len(g.Placements))))
	b.WriteString("\n\n")

	b.WriteString(renderGrid(g))
	return b.String()
}

// renderGrid draws the breakpoint's occupancy as colored blocks, two
// terminal columns per cell.
func renderGrid[T any](g photogrid.PhotoGrid[T]) string {
	height := 0
	for _, p := range g.Placements {
		if bottom := p.Origin.Y + p.Size.H; bottom > height {
			height = bottom
		}
	}

	// Cell matrix of placement indices, -1 for empty.
	cells := make([]int, g.Width*height)
	for i := range cells {
		cells[i] = -1
	}
	for idx, p := range g.Placements {
		for y := p.Origin.Y; y < p.Origin.Y+p.Size.H; y++ {
			for x := p.Origin.X; x < p.Origin.X+p.Size.W; x++ {
				cells[y*g.Width+x] = idx
			}
		}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		b.WriteString("  ")
		for x := 0; x < g.Width; x++ {
			idx := cells[y*g.Width+x]
			if idx < 0 {
				b.WriteString(StyleDim.Render("··"))
				continue
			}
			style := lipgloss.NewStyle().Background(cellPalette[idx%len(cellPalette)])
			b.WriteString(style.Render("  "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
