package grid

import (
	"context"
	"fmt"
	"maps"
	"math"
)

// State of the interaction state machine.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Preview is the cosmetic overlay shown while a widget is dragged or
// resized. It is never written into the layout; Shifted holds where
// overlapped widgets are shown while the pointer hovers over them.
type Preview struct {
	WidgetID string          `json:"widgetId"`
	State    State           `json:"state"`
	Target   Rect            `json:"target"`
	Shifted  map[string]Rect `json:"shifted,omitempty"`
}

type interaction struct {
	state    State
	widgetID string
	original Rect
	current  Rect
	hovered  bool
	preview  *Preview
}

// State returns the active interaction state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return StateIdle
	}
	return c.active.state
}

// EnterEditMode enables moving and resizing.
func (c *Controller) EnterEditMode(ctx context.Context) {
	c.mu.Lock()
	if c.editing {
		c.mu.Unlock()
		return
	}
	c.editing = true
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.render(ctx, snap)
}

// ExitEditMode finishes any active interaction, disables editing and saves.
func (c *Controller) ExitEditMode(ctx context.Context) error {
	c.mu.Lock()
	if !c.editing {
		c.mu.Unlock()
		return nil
	}
	var resized *Widget
	if c.active != nil {
		switch c.active.state {
		case StateDragging:
			c.dropLocked()
		case StateResizing:
			resized = c.endResizeLocked()
		}
	}
	c.editing = false
	snap := c.snapshotLocked()
	err := c.saveLocked(ctx)
	c.mu.Unlock()

	c.refresh(ctx, resized)
	c.render(ctx, snap)
	return err
}

func (c *Controller) beginLocked(id string, state State) error {
	if !c.editing {
		return ErrNotEditing
	}
	if c.active != nil {
		return ErrInteractionActive
	}
	w, ok := c.layout.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	c.active = &interaction{
		state:    state,
		widgetID: id,
		original: w.Rect(),
		current:  w.Rect(),
	}
	return nil
}

func (c *Controller) activeLocked(state State) (*interaction, error) {
	if c.active == nil {
		return nil, ErrNoInteraction
	}
	if c.active.state != state {
		return nil, ErrWrongInteraction
	}
	return c.active, nil
}

// BeginDrag starts moving a widget. The original rectangle is kept so the
// drag can be cancelled.
func (c *Controller) BeginDrag(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.beginLocked(id, StateDragging); err != nil {
		return err
	}
	c.active.preview = &Preview{WidgetID: id, State: StateDragging, Target: c.active.original}
	c.showPreviewLocked(c.active.preview)
	return nil
}

// DragTo moves the pointer to (px, py), in pixels relative to the grid
// origin. The candidate cell is the one under the pointer, clamped so the
// widget stays inside the columns. Overlapped widgets are only shifted in
// the preview.
func (c *Controller) DragTo(px, py float64) (Preview, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, err := c.activeLocked(StateDragging)
	if err != nil {
		return Preview{}, err
	}

	x := int(math.Floor(px / c.cellWidth()))
	y := int(math.Floor(py / RowHeight))
	x = min(max(x, 0), max(c.columns-it.original.W, 0))
	y = max(y, 0)

	if it.hovered && it.current.X == x && it.current.Y == y {
		return clonePreview(it.preview), nil
	}
	it.hovered = true
	it.current = Rect{X: x, Y: y, W: it.original.W, H: it.original.H}

	shifted := make(map[string]Rect)
	for _, w := range c.layout {
		if w.ID == it.widgetID || !w.Rect().Overlaps(it.current) {
			continue
		}
		r := w.Rect()
		r.Y = it.current.Y + it.current.H
		shifted[w.ID] = r
	}
	it.preview = &Preview{WidgetID: it.widgetID, State: StateDragging, Target: it.current, Shifted: shifted}
	c.showPreviewLocked(it.preview)
	return clonePreview(it.preview), nil
}

// Drop commits the last candidate cell, re-flows the layout so nothing
// overlaps, renders and saves.
func (c *Controller) Drop(ctx context.Context) error {
	c.mu.Lock()
	if _, err := c.activeLocked(StateDragging); err != nil {
		c.mu.Unlock()
		return err
	}
	c.dropLocked()
	snap := c.snapshotLocked()
	err := c.saveLocked(ctx)
	c.mu.Unlock()

	c.render(ctx, snap)
	return err
}

func (c *Controller) dropLocked() {
	it := c.active
	c.active = nil
	c.showPreviewLocked(nil)

	i := c.layout.Index(it.widgetID)
	if i < 0 {
		return
	}
	c.layout[i].X, c.layout[i].Y = it.current.X, it.current.Y
	c.layout = Reflow(c.layout, it.widgetID)
	c.log.Debug("widget moved", "widget_id", it.widgetID, "x", it.current.X, "y", it.current.Y)
}

// CancelDrag abandons the drag; the layout is left as it was.
func (c *Controller) CancelDrag() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.activeLocked(StateDragging); err != nil {
		return err
	}
	c.active = nil
	c.showPreviewLocked(nil)
	return nil
}

// BeginResize starts resizing a widget from its bottom-right corner.
func (c *Controller) BeginResize(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.beginLocked(id, StateResizing); err != nil {
		return err
	}
	c.active.preview = &Preview{WidgetID: id, State: StateResizing, Target: c.active.original}
	c.showPreviewLocked(c.active.preview)
	return nil
}

// ResizeBy applies a pointer delta, in pixels, to the size captured at
// BeginResize. The size snaps to whole cells and never drops below 1x1.
func (c *Controller) ResizeBy(dx, dy float64) (Rect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, err := c.activeLocked(StateResizing)
	if err != nil {
		return Rect{}, err
	}
	cw := c.cellWidth()
	w := int(math.Round((float64(it.original.W)*cw + dx) / cw))
	h := int(math.Round((float64(it.original.H)*RowHeight + dy) / RowHeight))
	it.current.W, it.current.H = max(w, 1), max(h, 1)

	it.preview = &Preview{WidgetID: it.widgetID, State: StateResizing, Target: it.current}
	c.showPreviewLocked(it.preview)
	return it.current, nil
}

// EndResize commits the size, re-flows, lets the widget's renderer refresh
// its content, renders and saves.
func (c *Controller) EndResize(ctx context.Context) error {
	c.mu.Lock()
	if _, err := c.activeLocked(StateResizing); err != nil {
		c.mu.Unlock()
		return err
	}
	resized := c.endResizeLocked()
	snap := c.snapshotLocked()
	err := c.saveLocked(ctx)
	c.mu.Unlock()

	c.refresh(ctx, resized)
	c.render(ctx, snap)
	return err
}

// endResizeLocked commits the resize and returns the resized widget, or nil
// when it has been removed meanwhile.
func (c *Controller) endResizeLocked() *Widget {
	it := c.active
	c.active = nil
	c.showPreviewLocked(nil)

	i := c.layout.Index(it.widgetID)
	if i < 0 {
		return nil
	}
	c.layout[i].W, c.layout[i].H = it.current.W, it.current.H
	c.layout = Reflow(c.layout, it.widgetID)
	c.log.Debug("widget resized", "widget_id", it.widgetID, "w", it.current.W, "h", it.current.H)

	w := c.layout[c.layout.Index(it.widgetID)]
	return &w
}

// refresh lets the renderer of a resized widget reload its content.
func (c *Controller) refresh(ctx context.Context, w *Widget) {
	if w == nil {
		return
	}
	rd, _ := c.registry.Lookup(w.Type)
	rf, ok := rd.(Refresher)
	if !ok {
		return
	}
	if err := rf.Refresh(ctx, *w); err != nil {
		c.log.Warn("widget refresh after resize failed", "widget_id", w.ID, "type", w.Type, "error", err)
	}
}

// MoveWidget drives a full drag of widget id onto cell (x, y). Unlike a
// pointer drag the target is not clamped: a cell that would put the widget
// outside the columns is rejected.
func (c *Controller) MoveWidget(ctx context.Context, id string, x, y int) error {
	c.mu.Lock()
	w, ok := c.layout.Find(id)
	columns := c.columns
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	if x < 0 || y < 0 || x+w.W > columns {
		return fmt.Errorf("%w: %dx%d widget at (%d,%d) with %d columns", ErrOutOfBounds, w.W, w.H, x, y, columns)
	}

	if err := c.BeginDrag(id); err != nil {
		return err
	}
	c.mu.Lock()
	px := (float64(x) + 0.5) * c.cellWidth()
	py := (float64(y) + 0.5) * RowHeight
	c.mu.Unlock()
	if _, err := c.DragTo(px, py); err != nil {
		_ = c.CancelDrag()
		return err
	}
	return c.Drop(ctx)
}

// ResizeWidget drives a full resize of widget id to w x h cells.
func (c *Controller) ResizeWidget(ctx context.Context, id string, w, h int) error {
	if w < 1 || h < 1 {
		return fmt.Errorf("%w: size %dx%d", ErrOutOfBounds, w, h)
	}
	if err := c.BeginResize(id); err != nil {
		return err
	}
	c.mu.Lock()
	if c.active == nil {
		c.mu.Unlock()
		return ErrNoInteraction
	}
	orig := c.active.original
	dx := float64(w-orig.W) * c.cellWidth()
	dy := float64(h-orig.H) * RowHeight
	c.mu.Unlock()
	if _, err := c.ResizeBy(dx, dy); err != nil {
		return err
	}
	return c.EndResize(ctx)
}

func clonePreview(p *Preview) Preview {
	if p == nil {
		return Preview{}
	}
	out := *p
	out.Shifted = maps.Clone(p.Shifted)
	return out
}
