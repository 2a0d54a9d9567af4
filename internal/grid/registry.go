package grid

import (
	"context"
	"sync"
)

// Renderer produces the body of a widget tile.
type Renderer interface {
	Render(ctx context.Context, w Widget) (string, error)
}

// Refresher is implemented by renderers whose content must be told about a
// size change; most embedded content does not reflow by itself.
type Refresher interface {
	Refresh(ctx context.Context, w Widget) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, w Widget) (string, error)

func (f RendererFunc) Render(ctx context.Context, w Widget) (string, error) { return f(ctx, w) }

// UnknownTypeMessage is the body rendered for tags with no renderer.
const UnknownTypeMessage = "Unknown widget type"

type unknownRenderer struct{}

func (unknownRenderer) Render(context.Context, Widget) (string, error) {
	return UnknownTypeMessage, nil
}

// Registry maps widget kinds to renderers. Lookups go through the kind
// aliases, so "jorequestorchart" and "jo-requestor-chart" share a renderer.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  Renderer
}

func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		fallback:  unknownRenderer{},
	}
}

// Register binds r to the kind tag (and therefore to all of its aliases).
func (r *Registry) Register(tag string, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[Canonical(tag)] = renderer
}

// Lookup returns the renderer for tag and whether one was registered. The
// returned renderer is never nil.
func (r *Registry) Lookup(tag string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rd, ok := r.renderers[Canonical(tag)]; ok {
		return rd, true
	}
	return r.fallback, false
}

// Tile is the rendered projection of one widget.
type Tile struct {
	Widget Widget `json:"widget"`
	Title  string `json:"title"`
	Icon   string `json:"icon"`
	Body   string `json:"body"`
	Err    string `json:"error,omitempty"`
}

// Frame is one full render of the dashboard.
type Frame struct {
	Columns int    `json:"columns"`
	Editing bool   `json:"editing"`
	Tiles   []Tile `json:"tiles"`
}

// View receives projections of the layout. It is write-only: the engine never
// reads state back from it.
type View interface {
	Render(frame Frame)
	ShowPreview(p *Preview)
}

// RenderFrame renders every widget in row-major order. A failing renderer
// only affects its own tile.
func (r *Registry) RenderFrame(ctx context.Context, layout Layout, columns int, editing bool) Frame {
	frame := Frame{Columns: columns, Editing: editing, Tiles: make([]Tile, 0, len(layout))}
	for _, w := range layout.Sorted() {
		tile := Tile{Widget: w, Title: "Widget", Icon: "fas fa-th-large"}
		if k, ok := LookupKind(w.Type); ok {
			tile.Title, tile.Icon = k.Title, k.Icon
		}
		rd, _ := r.Lookup(w.Type)
		body, err := rd.Render(ctx, w)
		if err != nil {
			tile.Err = err.Error()
		} else {
			tile.Body = body
		}
		frame.Tiles = append(frame.Tiles, tile)
	}
	return frame
}
