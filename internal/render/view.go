package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/barbatoslupus21/unisync-overview/internal/grid"
)

// Size of one grid cell in terminal characters.
const (
	CellWidth  = 26
	CellHeight = 6
)

// Terminal is a grid.View that draws each frame as a character canvas.
type Terminal struct {
	out io.Writer
	mu  sync.Mutex

	headerStyle  lipgloss.Style
	dimStyle     lipgloss.Style
	tileStyle    lipgloss.Style
	editingStyle lipgloss.Style
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out: out,
		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
			Bold(true),
		dimStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
		// tile borders stay uncoloured so the canvas can be painted rune by rune
		tileStyle:    lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1),
		editingStyle: lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).Padding(0, 1),
	}
}

func (t *Terminal) Render(f grid.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, t.header(f))
	fmt.Fprintln(t.out, t.Project(f))
}

func (t *Terminal) ShowPreview(p *grid.Preview) {
	if p == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	line := fmt.Sprintf("%s %s -> (%d,%d) %dx%d", p.State, p.WidgetID, p.Target.X, p.Target.Y, p.Target.W, p.Target.H)
	if n := len(p.Shifted); n > 0 {
		line += fmt.Sprintf(", %d shifted", n)
	}
	fmt.Fprintln(t.out, t.dimStyle.Render(line))
}

func (t *Terminal) header(f grid.Frame) string {
	h := fmt.Sprintf("Dashboard  %d widgets  %d columns", len(f.Tiles), f.Columns)
	if f.Editing {
		h += "  [editing]"
	}
	return t.headerStyle.Render(h)
}

// Project draws the tiles of f at their grid positions. Widgets placed
// right of the current column count widen the canvas rather than move.
func (t *Terminal) Project(f grid.Frame) string {
	cols, rows := max(f.Columns, 1), 0
	for _, tile := range f.Tiles {
		r := tile.Widget.Rect()
		cols = max(cols, r.Right())
		rows = max(rows, r.Bottom())
	}
	if rows == 0 {
		return t.dimStyle.Render("No widgets. Add one with: overview widget add <type>")
	}

	canvas := make([][]rune, rows*CellHeight)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", cols*CellWidth))
	}

	style := t.tileStyle
	if f.Editing {
		style = t.editingStyle
	}
	for _, tile := range f.Tiles {
		r := tile.Widget.Rect()
		if r.W < 1 || r.H < 1 || r.X < 0 || r.Y < 0 {
			continue
		}
		box := style.
			Width(r.W*CellWidth - 2).
			Height(r.H*CellHeight - 2).
			MaxHeight(r.H * CellHeight).
			Render(tileContent(tile, r.W*CellWidth-4))
		paint(canvas, box, r.X*CellWidth, r.Y*CellHeight, r.W*CellWidth)
	}

	lines := make([]string, len(canvas))
	for i, l := range canvas {
		lines[i] = strings.TrimRight(string(l), " ")
	}
	return strings.Join(lines, "\n")
}

func tileContent(tile grid.Tile, width int) string {
	var b strings.Builder
	b.WriteString(truncate(tile.Title, width))
	b.WriteString("\n")
	b.WriteString(truncate(tile.Widget.ID, width))
	b.WriteString("\n")
	if tile.Err != "" {
		b.WriteString("! " + tile.Err)
		return b.String()
	}
	for _, l := range strings.Split(tile.Body, "\n") {
		b.WriteString(truncate(l, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func paint(canvas [][]rune, box string, x, y, width int) {
	for i, line := range strings.Split(box, "\n") {
		row := y + i
		if row >= len(canvas) {
			return
		}
		for j, r := range []rune(line) {
			if j >= width || x+j >= len(canvas[row]) {
				break
			}
			canvas[row][x+j] = r
		}
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
