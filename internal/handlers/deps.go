package handlers

import (
	"context"
	"log/slog"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/internal/response"
)

type LayoutService interface {
	GetLayout(ctx context.Context, uid string) ([]models.Widget, error)
	SaveLayout(ctx context.Context, uid string, widgets []models.Widget) error
	ResetLayout(ctx context.Context, uid string) error
}

type NoteService interface {
	ListNotes(ctx context.Context, uid, widgetID string) ([]*models.QuickNote, error)
	CreateNote(ctx context.Context, uid, widgetID string, req dto.CreateNoteRequest) (*models.QuickNote, error)
	DeleteNote(ctx context.Context, uid, noteID string) error
}

type EventService interface {
	ListEvents(ctx context.Context, uid, widgetID string) ([]*models.CalendarEvent, error)
	CreateEvent(ctx context.Context, uid, widgetID string, req dto.CreateEventRequest) (*models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, uid, eventID string, req dto.UpdateEventRequest) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, uid, eventID string) error
}

type UserService interface {
	Roles(ctx context.Context, uid, email string, claimed []string) ([]string, error)
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	LayoutSvc       LayoutService
	NoteSvc         NoteService
	EventSvc        EventService
	UserSvc         UserService
}
