package models

import "time"

// QuickNote belongs to one Quick Notes widget.
type QuickNote struct {
	NoteID    string    `firestore:"noteId" json:"id"`
	WidgetID  string    `firestore:"widgetId" json:"widgetId"`
	Content   string    `firestore:"content" json:"content"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
