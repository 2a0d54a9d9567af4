package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/barbatoslupus21/unisync-overview/internal/grid"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
)

// ErrOffline is the tile error of widgets whose content needs the API.
var ErrOffline = errors.New("content unavailable offline")

type NotesSource interface {
	Notes(ctx context.Context, widgetID string) ([]*models.QuickNote, error)
}

type EventsSource interface {
	Events(ctx context.Context, widgetID string) ([]*models.CalendarEvent, error)
}

// Source supplies per-widget content.
type Source interface {
	NotesSource
	EventsSource
}

// NewRegistry binds a renderer to every known kind. With a nil source the
// notes and calendar tiles report ErrOffline.
func NewRegistry(src Source) *grid.Registry {
	reg := grid.NewRegistry()
	if src != nil {
		reg.Register(grid.KindQuickNotes, &notesRenderer{src: src})
		reg.Register(grid.KindCalendar, newCalendarRenderer(src, time.Now))
	} else {
		offline := grid.RendererFunc(func(context.Context, grid.Widget) (string, error) {
			return "", ErrOffline
		})
		reg.Register(grid.KindQuickNotes, offline)
		reg.Register(grid.KindCalendar, offline)
	}
	for _, k := range grid.Kinds() {
		if k.Tag == grid.KindQuickNotes || k.Tag == grid.KindCalendar {
			continue
		}
		reg.Register(k.Tag, chartRenderer{kind: k})
	}
	return reg
}

type notesRenderer struct {
	src NotesSource
}

// linesFor is how many body lines fit under the title and id of a widget
// h cells tall.
func linesFor(h int) int {
	return max(h*CellHeight-4, 1)
}

func (r *notesRenderer) Render(ctx context.Context, w grid.Widget) (string, error) {
	notes, err := r.src.Notes(ctx, w.ID)
	if err != nil {
		return "", fmt.Errorf("load notes: %w", err)
	}
	if len(notes) == 0 {
		return "No notes yet", nil
	}
	lines := []string{fmt.Sprintf("%d notes", len(notes))}
	for _, n := range notes {
		if len(lines) >= linesFor(w.H) {
			break
		}
		first, _, _ := strings.Cut(n.Content, "\n")
		lines = append(lines, "- "+first)
	}
	return strings.Join(lines, "\n"), nil
}

// calendarRenderer lists upcoming events. Events are cached per widget
// until the widget is resized.
type calendarRenderer struct {
	src EventsSource
	now func() time.Time

	mu    sync.Mutex
	cache map[string][]*models.CalendarEvent
}

func newCalendarRenderer(src EventsSource, now func() time.Time) *calendarRenderer {
	return &calendarRenderer{src: src, now: now, cache: make(map[string][]*models.CalendarEvent)}
}

func (r *calendarRenderer) events(ctx context.Context, widgetID string) ([]*models.CalendarEvent, error) {
	r.mu.Lock()
	cached, ok := r.cache[widgetID]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}
	events, err := r.src.Events(ctx, widgetID)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	r.mu.Lock()
	r.cache[widgetID] = events
	r.mu.Unlock()
	return events, nil
}

func (r *calendarRenderer) Render(ctx context.Context, w grid.Widget) (string, error) {
	events, err := r.events(ctx, w.ID)
	if err != nil {
		return "", err
	}
	now := r.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var lines []string
	for _, e := range events {
		if e.Completed || e.Start.Before(today) {
			continue
		}
		if len(lines) >= linesFor(w.H) {
			break
		}
		when := e.Start.Format("Mon 02 Jan 15:04")
		if e.AllDay {
			when = e.Start.Format("Mon 02 Jan")
		}
		lines = append(lines, when+" "+e.Title)
	}
	if len(lines) == 0 {
		return "No upcoming events", nil
	}
	return strings.Join(lines, "\n"), nil
}

// Refresh drops the cached events so the next render fetches them for the
// new size.
func (r *calendarRenderer) Refresh(ctx context.Context, w grid.Widget) error {
	r.mu.Lock()
	delete(r.cache, w.ID)
	r.mu.Unlock()
	_, err := r.events(ctx, w.ID)
	return err
}

// chartRenderer describes a chart tile. Chart data lives in other portal
// modules; the tile names its source.
type chartRenderer struct {
	kind grid.Kind
}

func (r chartRenderer) Render(_ context.Context, w grid.Widget) (string, error) {
	if r.kind.DataSource == "" {
		return fmt.Sprintf("%dx%d", w.W, w.H), nil
	}
	return fmt.Sprintf("source %s\n%dx%d", r.kind.DataSource, w.W, w.H), nil
}
