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

type noteStore struct {
	client *firestore.Client
}

func NewNoteStore(client *firestore.Client) *noteStore {
	return &noteStore{client: client}
}

func (s *noteStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("quick_notes")
}

func (s *noteStore) Create(ctx context.Context, uid string, n *models.QuickNote) error {
	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	if _, err := s.collection(uid).Doc(n.NoteID).Create(ctx, n); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("note already exists")
		}
		return errs.NewDatabaseError("create", "failed to create note", err)
	}
	return nil
}

// ListByWidget returns the widget's notes, newest first.
func (s *noteStore) ListByWidget(ctx context.Context, uid, widgetID string) ([]*models.QuickNote, error) {
	docs, err := s.collection(uid).
		Where("widgetId", "==", widgetID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list notes", err)
	}
	notes := make([]*models.QuickNote, 0, len(docs))
	for _, d := range docs {
		var n models.QuickNote
		if err := d.DataTo(&n); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse note data", err)
		}
		notes = append(notes, &n)
	}
	return notes, nil
}

func (s *noteStore) Delete(ctx context.Context, uid, noteID string) error {
	ref := s.collection(uid).Doc(noteID)
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("note not found")
		}
		return errs.NewDatabaseError("read", "failed to get note", err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete note", err)
	}
	return nil
}
