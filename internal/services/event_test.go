package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/pkg/helpers"
)

type fakeEventStore struct {
	events map[string]*models.CalendarEvent
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[string]*models.CalendarEvent)}
}

func (f *fakeEventStore) Create(_ context.Context, _ string, e *models.CalendarEvent) error {
	f.events[e.EventID] = e
	return nil
}

func (f *fakeEventStore) Get(_ context.Context, _, eventID string) (*models.CalendarEvent, error) {
	e, ok := f.events[eventID]
	if !ok {
		return nil, errs.NewNotFoundError("event not found")
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventStore) ListByWidget(_ context.Context, _, widgetID string) ([]*models.CalendarEvent, error) {
	var out []*models.CalendarEvent
	for _, e := range f.events {
		if e.WidgetID == widgetID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) Update(_ context.Context, _ string, e *models.CalendarEvent) error {
	f.events[e.EventID] = e
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, _, eventID string) error {
	delete(f.events, eventID)
	return nil
}

func TestCreateEvent_Defaults(t *testing.T) {
	svc := NewEventService(newFakeEventStore())
	e, err := svc.CreateEvent(helpers.TestCtx(), "uid1", "widget-c", dto.CreateEventRequest{
		Title: " Plant audit ",
		Start: "2025-05-06T09:30",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if e.Title != "Plant audit" {
		t.Fatalf("title not trimmed: %q", e.Title)
	}
	if e.Type != dto.EventTypeTask || e.Priority != dto.PriorityMedium {
		t.Fatalf("unexpected defaults type=%s priority=%s", e.Type, e.Priority)
	}
	want := time.Date(2025, time.May, 6, 9, 30, 0, 0, time.UTC)
	if !e.Start.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, e.Start)
	}
	if e.End != nil {
		t.Fatalf("expected no end, got %v", e.End)
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateEventRequest
	}{
		{"missing title", dto.CreateEventRequest{Start: "2025-05-06"}},
		{"missing start", dto.CreateEventRequest{Title: "x"}},
		{"bad date", dto.CreateEventRequest{Title: "x", Start: "06/05/2025"}},
		{"bad type", dto.CreateEventRequest{Title: "x", Start: "2025-05-06", Type: "party"}},
		{"bad priority", dto.CreateEventRequest{Title: "x", Start: "2025-05-06", Priority: "urgent"}},
		{"end before start", dto.CreateEventRequest{Title: "x", Start: "2025-05-06", End: "2025-05-05"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEventService(newFakeEventStore())
			_, err := svc.CreateEvent(helpers.TestCtx(), "uid1", "widget-c", tt.req)
			var ve *errs.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestUpdateEvent_Partial(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	ctx := helpers.TestCtx()

	e, err := svc.CreateEvent(ctx, "uid1", "widget-c", dto.CreateEventRequest{
		Title: "Shift handover", Start: "2025-05-06T07:00:00", End: "2025-05-06T08:00:00", Priority: "HIGH",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	updated, err := svc.UpdateEvent(ctx, "uid1", e.EventID, dto.UpdateEventRequest{
		Completed: helpers.Ptr(true),
		End:       helpers.Ptr(""),
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if !updated.Completed || updated.End != nil {
		t.Fatalf("partial update not applied: %+v", updated)
	}
	if updated.Title != "Shift handover" || updated.Priority != dto.PriorityHigh {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestCreateEvent_AttendeesAndCompleted(t *testing.T) {
	svc := NewEventService(newFakeEventStore())
	ctx := helpers.TestCtx()

	e, err := svc.CreateEvent(ctx, "uid1", "widget-c", dto.CreateEventRequest{
		Title:     "Sync",
		Start:     "2025-03-01T09:00",
		Attendees: []string{" ana ", "", "ben"},
		Completed: true,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if len(e.Attendees) != 2 || e.Attendees[0] != "ana" || e.Attendees[1] != "ben" {
		t.Fatalf("unexpected attendees %q", e.Attendees)
	}
	if !e.Completed {
		t.Fatal("expected completed event")
	}

	updated, err := svc.UpdateEvent(ctx, "uid1", e.EventID, dto.UpdateEventRequest{Attendees: &[]string{"carla"}})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if len(updated.Attendees) != 1 || updated.Attendees[0] != "carla" {
		t.Fatalf("attendees not replaced: %q", updated.Attendees)
	}

	kept, err := svc.UpdateEvent(ctx, "uid1", e.EventID, dto.UpdateEventRequest{Title: helpers.Ptr("Sync v2")})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if len(kept.Attendees) != 1 || kept.Attendees[0] != "carla" {
		t.Fatalf("attendees changed by unrelated update: %q", kept.Attendees)
	}
}

func TestUpdateEvent_RejectsBlankTitle(t *testing.T) {
	store := newFakeEventStore()
	store.events["e1"] = &models.CalendarEvent{EventID: "e1", Title: "x", Start: time.Now()}
	svc := NewEventService(store)

	_, err := svc.UpdateEvent(helpers.TestCtx(), "uid1", "e1", dto.UpdateEventRequest{Title: helpers.Ptr("  ")})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDeleteEvent_NotFound(t *testing.T) {
	svc := NewEventService(newFakeEventStore())
	err := svc.DeleteEvent(helpers.TestCtx(), "uid1", "missing")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
