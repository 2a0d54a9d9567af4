package models

import "time"

// CalendarEvent belongs to one Calendar widget.
type CalendarEvent struct {
	EventID     string     `firestore:"eventId" json:"id"`
	WidgetID    string     `firestore:"widgetId" json:"widgetId"`
	Title       string     `firestore:"title" json:"title"`
	Description string     `firestore:"description" json:"description"`
	Start       time.Time  `firestore:"start" json:"start"`
	End         *time.Time `firestore:"end,omitempty" json:"end,omitempty"`
	AllDay      bool       `firestore:"allDay" json:"allDay"`
	Type        string     `firestore:"type" json:"type"`         // task, meeting, reminder, deadline
	Priority    string     `firestore:"priority" json:"priority"` // low, medium, high
	Location    string     `firestore:"location" json:"location"`
	Attendees   []string   `firestore:"attendees" json:"attendees"`
	Completed   bool       `firestore:"completed" json:"completed"`
	CreatedAt   time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `firestore:"updatedAt" json:"updatedAt"`
}
