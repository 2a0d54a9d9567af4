package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/metrics"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/pkg/logger"
)

type noteStore interface {
	Create(ctx context.Context, uid string, n *models.QuickNote) error
	ListByWidget(ctx context.Context, uid, widgetID string) ([]*models.QuickNote, error)
	Delete(ctx context.Context, uid, noteID string) error
}

type noteService struct {
	store noteStore
}

func NewNoteService(store noteStore) *noteService {
	return &noteService{store: store}
}

func (s *noteService) ListNotes(ctx context.Context, uid, widgetID string) ([]*models.QuickNote, error) {
	return s.store.ListByWidget(ctx, uid, widgetID)
}

func (s *noteService) CreateNote(ctx context.Context, uid, widgetID string, req dto.CreateNoteRequest) (*models.QuickNote, error) {
	req.Normalize()
	if req.Content == "" {
		return nil, errs.NewValidationError("content cannot be empty")
	}
	if err := dto.Validate.Struct(req); err != nil {
		return nil, errs.NewValidationError(dto.ValidationMessage(err))
	}

	n := &models.QuickNote{
		NoteID:   uuid.New().String(),
		WidgetID: widgetID,
		Content:  req.Content,
	}
	err := s.store.Create(ctx, uid, n)
	metrics.ItemOp("note", "create", err)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("note created", "widget_id", widgetID, "note_id", n.NoteID)
	return n, nil
}

func (s *noteService) DeleteNote(ctx context.Context, uid, noteID string) error {
	err := s.store.Delete(ctx, uid, noteID)
	metrics.ItemOp("note", "delete", err)
	return err
}
