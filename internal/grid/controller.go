package grid

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Saver persists the full layout after a mutation.
type Saver interface {
	Save(ctx context.Context, layout Layout) error
}

type Config struct {
	Registry      *Registry
	View          View
	Saver         Saver
	Log           *slog.Logger
	ViewportWidth int
	NewID         func() string // defaults to NewWidgetID
}

// Controller owns the live layout of one dashboard session. The layout is
// the single source of truth; every mutation is followed by a full render
// through the View and a save. Frames are built from a snapshot after mu is
// released, so slow renderers never block reads or other mutations.
type Controller struct {
	mu  sync.Mutex
	gen uint64 // last snapshot handed out, guarded by mu

	renderMu sync.Mutex
	drawn    uint64 // newest snapshot shown, guarded by renderMu

	registry *Registry
	view     View
	saver    Saver
	log      *slog.Logger
	newID    func() string
	resize   *Debouncer

	layout   Layout
	viewport int
	columns  int
	editing  bool
	active   *interaction
}

func NewController(cfg Config) *Controller {
	c := &Controller{
		registry: cfg.Registry,
		view:     cfg.View,
		saver:    cfg.Saver,
		log:      cfg.Log,
		newID:    cfg.NewID,
		resize:   NewDebouncer(ResizeDebounce),
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.newID == nil {
		c.newID = NewWidgetID
	}
	c.setViewportLocked(cfg.ViewportWidth)
	return c
}

// Close stops pending debounced work.
func (c *Controller) Close() {
	c.resize.Stop()
}

// Layout returns a copy of the live layout.
func (c *Controller) Layout() Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.Clone()
}

func (c *Controller) Columns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.columns
}

func (c *Controller) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// SetLayout adopts a loaded layout and renders it. It does not save.
func (c *Controller) SetLayout(ctx context.Context, layout Layout) {
	c.mu.Lock()
	c.layout = layout.Clone()
	c.active = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.render(ctx, snap)
}

// Render re-renders the dashboard from the layout.
func (c *Controller) Render(ctx context.Context) {
	c.mu.Lock()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.render(ctx, snap)
}

// Save persists the current layout.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked(ctx)
}

// AddWidget places a new widget of the given kind at the first free slot for
// the current column count.
func (c *Controller) AddWidget(ctx context.Context, tag string) (Widget, error) {
	kind, ok := LookupKind(tag)
	if !ok {
		return Widget{}, fmt.Errorf("%w: %q", ErrUnknownWidgetType, tag)
	}

	c.mu.Lock()
	pos := FindAvailablePosition(c.layout, kind.W, kind.H, c.columns)
	w := Widget{ID: c.newID(), Type: kind.Tag, X: pos.X, Y: pos.Y, W: pos.W, H: pos.H}
	c.layout = append(c.layout, w)
	c.log.Debug("widget added", "widget_id", w.ID, "type", w.Type, "x", w.X, "y", w.Y)
	snap := c.snapshotLocked()
	err := c.saveLocked(ctx)
	c.mu.Unlock()

	c.render(ctx, snap)
	return w, err
}

// RemoveWidget drops a widget from the layout.
func (c *Controller) RemoveWidget(ctx context.Context, id string) error {
	c.mu.Lock()
	i := c.layout.Index(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	if c.active != nil && c.active.widgetID == id {
		c.active = nil
		c.showPreviewLocked(nil)
	}
	c.layout = append(c.layout[:i:i], c.layout[i+1:]...)
	c.log.Debug("widget removed", "widget_id", id)
	snap := c.snapshotLocked()
	err := c.saveLocked(ctx)
	c.mu.Unlock()

	c.render(ctx, snap)
	return err
}

// SetViewport applies a viewport width immediately.
func (c *Controller) SetViewport(ctx context.Context, width int) {
	c.mu.Lock()
	c.setViewportLocked(width)
	if !c.editing {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.render(ctx, snap)
}

// ViewportResized is the debounced form of SetViewport for a stream of
// window-resize notifications.
func (c *Controller) ViewportResized(ctx context.Context, width int) {
	c.resize.Trigger(func() {
		c.SetViewport(context.WithoutCancel(ctx), width)
	})
}

// cellWidth is the pixel width of one column.
func (c *Controller) cellWidth() float64 {
	return float64(max(c.viewport, 1)) / float64(c.columns)
}

func (c *Controller) setViewportLocked(width int) {
	c.viewport = width
	c.columns = ColumnCount(width)
}

type snapshot struct {
	gen     uint64
	layout  Layout
	columns int
	editing bool
}

func (c *Controller) snapshotLocked() snapshot {
	c.gen++
	return snapshot{gen: c.gen, layout: c.layout.Clone(), columns: c.columns, editing: c.editing}
}

// render builds and shows the frame for snap without holding mu. A frame
// that finishes after a newer one has been shown is dropped.
func (c *Controller) render(ctx context.Context, snap snapshot) {
	if c.view == nil {
		return
	}
	frame := c.registry.RenderFrame(ctx, snap.layout, snap.columns, snap.editing)

	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	if snap.gen <= c.drawn {
		return
	}
	c.drawn = snap.gen
	c.view.Render(frame)
}

func (c *Controller) showPreviewLocked(p *Preview) {
	if c.view == nil {
		return
	}
	c.view.ShowPreview(p)
}

func (c *Controller) saveLocked(ctx context.Context) error {
	if c.saver == nil {
		return nil
	}
	if err := c.saver.Save(ctx, c.layout.Clone()); err != nil {
		c.log.Error("failed to save dashboard layout", "error", err)
		return err
	}
	return nil
}
