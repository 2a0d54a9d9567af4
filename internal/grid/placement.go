package grid

import "slices"

// MaxRows bounds the placement scan. Effectively unbounded for dashboards
// with tens of widgets.
const MaxRows = 100

// FindAvailablePosition returns the first free origin for a w x h widget in
// row-major order (lower y wins, then lower x). When nothing fits inside
// MaxRows the widget goes to a new row below everything, at x=0.
func FindAvailablePosition(layout Layout, w, h, columns int) Rect {
	w, h = max(w, 1), max(h, 1)
	columns = max(columns, 1)

	occupied := make([][]bool, MaxRows)
	for y := range occupied {
		occupied[y] = make([]bool, columns)
	}
	for _, wd := range layout {
		for y := wd.Y; y < wd.Y+wd.H; y++ {
			for x := wd.X; x < wd.X+wd.W; x++ {
				if y >= 0 && y < MaxRows && x >= 0 && x < columns {
					occupied[y][x] = true
				}
			}
		}
	}

	for y := 0; y < MaxRows; y++ {
		for x := 0; x+w <= columns; x++ {
			if fits(occupied, x, y, w, h) {
				return Rect{X: x, Y: y, W: w, H: h}
			}
		}
	}
	return Rect{X: 0, Y: layout.Bottom(), W: w, H: h}
}

func fits(occupied [][]bool, x, y, w, h int) bool {
	for dy := 0; dy < h; dy++ {
		if y+dy >= len(occupied) {
			// rows past the scan bound are free
			return true
		}
		for dx := 0; dx < w; dx++ {
			if occupied[y+dy][x+dx] {
				return false
			}
		}
	}
	return true
}

// Reflow pushes widgets down until none overlaps another. The widget with
// id anchor keeps its cell; the rest settle in row-major order, each moved
// straight down below whatever it collides with.
func Reflow(layout Layout, anchor string) Layout {
	out := layout.Clone()

	order := make([]int, 0, len(out))
	settled := make([]Rect, 0, len(out))
	for i, w := range out {
		if w.ID == anchor {
			settled = append(settled, w.Rect())
			continue
		}
		order = append(order, i)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if out[a].Y == out[b].Y {
			return out[a].X - out[b].X
		}
		return out[a].Y - out[b].Y
	})

	for _, i := range order {
		r := out[i].Rect()
		for {
			bottom, hit := -1, false
			for _, s := range settled {
				if r.Overlaps(s) {
					hit = true
					bottom = max(bottom, s.Bottom())
				}
			}
			if !hit {
				break
			}
			r.Y = bottom
		}
		out[i].Y = r.Y
		settled = append(settled, r)
	}
	return out
}
