package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/metrics"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/pkg/helpers"
	"github.com/barbatoslupus21/unisync-overview/pkg/logger"
)

// Accepted date layouts, most specific first. Values without a zone are
// read as UTC.
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type eventStore interface {
	Create(ctx context.Context, uid string, e *models.CalendarEvent) error
	Get(ctx context.Context, uid, eventID string) (*models.CalendarEvent, error)
	ListByWidget(ctx context.Context, uid, widgetID string) ([]*models.CalendarEvent, error)
	Update(ctx context.Context, uid string, e *models.CalendarEvent) error
	Delete(ctx context.Context, uid, eventID string) error
}

type eventService struct {
	store eventStore
}

func NewEventService(store eventStore) *eventService {
	return &eventService{store: store}
}

func (s *eventService) ListEvents(ctx context.Context, uid, widgetID string) ([]*models.CalendarEvent, error) {
	return s.store.ListByWidget(ctx, uid, widgetID)
}

func (s *eventService) CreateEvent(ctx context.Context, uid, widgetID string, req dto.CreateEventRequest) (*models.CalendarEvent, error) {
	req.Normalize()
	if err := dto.Validate.Struct(req); err != nil {
		return nil, errs.NewValidationError(dto.ValidationMessage(err))
	}
	start, err := parseEventTime(req.Start)
	if err != nil {
		return nil, err
	}
	var end *time.Time
	if req.End != "" {
		t, err := parseEventTime(req.End)
		if err != nil {
			return nil, err
		}
		end = &t
	}
	if err := checkEventRange(start, end); err != nil {
		return nil, err
	}

	e := &models.CalendarEvent{
		EventID:     uuid.New().String(),
		WidgetID:    widgetID,
		Title:       req.Title,
		Description: req.Description,
		Start:       start,
		End:         end,
		AllDay:      req.AllDay,
		Type:        orDefault(req.Type, dto.EventTypeTask),
		Priority:    orDefault(req.Priority, dto.PriorityMedium),
		Location:    req.Location,
		Attendees:   req.Attendees,
		Completed:   req.Completed,
	}
	err = s.store.Create(ctx, uid, e)
	metrics.ItemOp("event", "create", err)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("event created", "widget_id", widgetID, "event_id", e.EventID)
	return e, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, uid, eventID string, req dto.UpdateEventRequest) (*models.CalendarEvent, error) {
	req.Normalize()
	if err := dto.Validate.Struct(req); err != nil {
		return nil, errs.NewValidationError(dto.ValidationMessage(err))
	}
	if req.Title != nil && *req.Title == "" {
		return nil, errs.NewValidationError("title cannot be empty")
	}

	e, err := s.store.Get(ctx, uid, eventID)
	if err != nil {
		return nil, err
	}

	if req.Start != nil {
		t, err := parseEventTime(*req.Start)
		if err != nil {
			return nil, err
		}
		e.Start = t
	}
	if req.End != nil {
		if *req.End == "" {
			e.End = nil
		} else {
			t, err := parseEventTime(*req.End)
			if err != nil {
				return nil, err
			}
			e.End = &t
		}
	}
	if err := checkEventRange(e.Start, e.End); err != nil {
		return nil, err
	}

	e.Title = helpers.ValueOr(req.Title, e.Title)
	e.Description = helpers.ValueOr(req.Description, e.Description)
	e.AllDay = helpers.ValueOr(req.AllDay, e.AllDay)
	e.Type = orDefault(helpers.ValueOr(req.Type, e.Type), dto.EventTypeTask)
	e.Priority = orDefault(helpers.ValueOr(req.Priority, e.Priority), dto.PriorityMedium)
	e.Location = helpers.ValueOr(req.Location, e.Location)
	e.Attendees = helpers.ValueOr(req.Attendees, e.Attendees)
	e.Completed = helpers.ValueOr(req.Completed, e.Completed)

	err = s.store.Update(ctx, uid, e)
	metrics.ItemOp("event", "update", err)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, uid, eventID string) error {
	if _, err := s.store.Get(ctx, uid, eventID); err != nil {
		return err
	}
	err := s.store.Delete(ctx, uid, eventID)
	metrics.ItemOp("event", "delete", err)
	return err
}

func parseEventTime(v string) (time.Time, error) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.NewValidationError("invalid date: " + v)
}

func checkEventRange(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return errs.NewValidationError("end must not be before start")
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
