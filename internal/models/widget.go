package models

import "time"

// Widget is one placed tile of a stored dashboard layout.
type Widget struct {
	ID   string `firestore:"id" json:"id"`
	Type string `firestore:"type" json:"type"`
	X    int    `firestore:"x" json:"x"`
	Y    int    `firestore:"y" json:"y"`
	W    int    `firestore:"w" json:"w"`
	H    int    `firestore:"h" json:"h"`
}

// DashboardLayout is the single layout document kept per user.
type DashboardLayout struct {
	Widgets   []Widget  `firestore:"widgets" json:"widgets"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
