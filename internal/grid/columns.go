package grid

import (
	"sync"
	"time"
)

// Viewport breakpoints in pixels.
const (
	breakpointSmallTablet = 768
	breakpointLargeTablet = 1100
	breakpointDesktop     = 1400
)

// RowHeight is the pixel height of one grid row.
const RowHeight = 200.0

// ResizeDebounce delays column recomputation after viewport changes.
const ResizeDebounce = 250 * time.Millisecond

// ColumnCount maps a viewport width to the number of grid columns.
func ColumnCount(viewportWidth int) int {
	switch {
	case viewportWidth >= breakpointDesktop:
		return 4
	case viewportWidth >= breakpointLargeTablet:
		return 3
	case viewportWidth >= breakpointSmallTablet:
		return 2
	default:
		return 1
	}
}

// Debouncer runs the most recently triggered function once the trigger has
// been quiet for the configured wait.
type Debouncer struct {
	wait  time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Trigger (re)arms the timer with fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Stop drops any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
