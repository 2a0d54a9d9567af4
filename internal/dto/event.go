package dto

import (
	"strings"

	"github.com/barbatoslupus21/unisync-overview/internal/models"
)

// Event types
const (
	EventTypeTask     = "task"
	EventTypeMeeting  = "meeting"
	EventTypeReminder = "reminder"
	EventTypeDeadline = "deadline"
)

// Event priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// CreateEventRequest carries dates as strings; the service accepts several
// layouts (see services.parseEventTime).
type CreateEventRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Start       string   `json:"start" validate:"required"`
	End         string   `json:"end"`
	AllDay      bool     `json:"allDay"`
	Type        string   `json:"type" validate:"omitempty,oneof=task meeting reminder deadline"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Location    string   `json:"location" validate:"max=200"`
	Attendees   []string `json:"attendees" validate:"max=50,dive,max=200"`
	Completed   bool     `json:"completed"`
}

func (r *CreateEventRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Start = strings.TrimSpace(r.Start)
	r.End = strings.TrimSpace(r.End)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Priority = strings.ToLower(strings.TrimSpace(r.Priority))
	r.Attendees = trimAttendees(r.Attendees)
}

// UpdateEventRequest is a partial update; nil fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Start       *string   `json:"start"`
	End         *string   `json:"end"`
	AllDay      *bool     `json:"allDay"`
	Type        *string   `json:"type" validate:"omitempty,oneof=task meeting reminder deadline"`
	Priority    *string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Location    *string   `json:"location" validate:"omitempty,max=200"`
	Attendees   *[]string `json:"attendees" validate:"omitempty,max=50,dive,max=200"`
	Completed   *bool     `json:"completed"`
}

func (r *UpdateEventRequest) Normalize() {
	for _, s := range []*string{r.Title, r.Start, r.End} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	for _, s := range []*string{r.Type, r.Priority} {
		if s != nil {
			*s = strings.ToLower(strings.TrimSpace(*s))
		}
	}
	if r.Attendees != nil {
		a := trimAttendees(*r.Attendees)
		r.Attendees = &a
	}
}

// trimAttendees drops blank names. The result is never nil so an emptied
// list is stored as [] rather than null.
func trimAttendees(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

type EventsResponse struct {
	Events []*models.CalendarEvent `json:"events"`
}
