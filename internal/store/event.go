package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
)

type eventStore struct {
	client *firestore.Client
}

func NewEventStore(client *firestore.Client) *eventStore {
	return &eventStore{client: client}
}

func (s *eventStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("calendar_events")
}

func (s *eventStore) Create(ctx context.Context, uid string, e *models.CalendarEvent) error {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	if _, err := s.collection(uid).Doc(e.EventID).Create(ctx, e); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("event already exists")
		}
		return errs.NewDatabaseError("create", "failed to create event", err)
	}
	return nil
}

func (s *eventStore) Get(ctx context.Context, uid, eventID string) (*models.CalendarEvent, error) {
	doc, err := s.collection(uid).Doc(eventID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("event not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get event", err)
	}
	var e models.CalendarEvent
	if err := doc.DataTo(&e); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse event data", err)
	}
	return &e, nil
}

// ListByWidget returns the widget's events ordered by start.
func (s *eventStore) ListByWidget(ctx context.Context, uid, widgetID string) ([]*models.CalendarEvent, error) {
	docs, err := s.collection(uid).
		Where("widgetId", "==", widgetID).
		OrderBy("start", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list events", err)
	}
	events := make([]*models.CalendarEvent, 0, len(docs))
	for _, d := range docs {
		var e models.CalendarEvent
		if err := d.DataTo(&e); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse event data", err)
		}
		events = append(events, &e)
	}
	return events, nil
}

func (s *eventStore) Update(ctx context.Context, uid string, e *models.CalendarEvent) error {
	e.UpdatedAt = time.Now()
	if _, err := s.collection(uid).Doc(e.EventID).Set(ctx, e); err != nil {
		return errs.NewDatabaseError("update", "failed to update event", err)
	}
	return nil
}

func (s *eventStore) Delete(ctx context.Context, uid, eventID string) error {
	if _, err := s.collection(uid).Doc(eventID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete event", err)
	}
	return nil
}
