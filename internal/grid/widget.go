package grid

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Widget is a placed tile on the dashboard grid.
type Widget struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
}

// Rect returns the cells the widget occupies.
func (w Widget) Rect() Rect {
	return Rect{X: w.X, Y: w.Y, W: w.W, H: w.H}
}

// Rect is a rectangle of grid cells, [X, X+W) x [Y, Y+H).
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Bottom is the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Right is the first column right of the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Overlaps reports whether the two rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	overlapsX := !(o.X >= r.Right() || o.Right() <= r.X)
	overlapsY := !(o.Y >= r.Bottom() || o.Bottom() <= r.Y)
	return overlapsX && overlapsY
}

// Layout is the ordered collection of a user's widgets.
type Layout []Widget

// Clone returns a copy that shares no backing array with l.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	return slices.Clone(l)
}

// Index returns the position of the widget with the given id, or -1.
func (l Layout) Index(id string) int {
	return slices.IndexFunc(l, func(w Widget) bool { return w.ID == id })
}

// Find returns the widget with the given id.
func (l Layout) Find(id string) (Widget, bool) {
	i := l.Index(id)
	if i < 0 {
		return Widget{}, false
	}
	return l[i], true
}

// Bottom is the first row below every widget; 0 for an empty layout.
func (l Layout) Bottom() int {
	maxY := 0
	for _, w := range l {
		maxY = max(maxY, w.Y+w.H)
	}
	return maxY
}

// Sorted returns the widgets in row-major order (y, then x). The receiver
// keeps its own order.
func (l Layout) Sorted() Layout {
	out := l.Clone()
	slices.SortStableFunc(out, func(a, b Widget) int {
		if a.Y == b.Y {
			return a.X - b.X
		}
		return a.Y - b.Y
	})
	return out
}

// NewWidgetID generates a widget id of the form "widget-<uuid>".
func NewWidgetID() string {
	return "widget-" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
