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

const layoutDocID = "layout"

type layoutStore struct {
	client *firestore.Client
}

func NewLayoutStore(client *firestore.Client) *layoutStore {
	return &layoutStore{client: client}
}

func (s *layoutStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid).Collection("overview").Doc(layoutDocID)
}

func (s *layoutStore) Get(ctx context.Context, uid string) (*models.DashboardLayout, error) {
	doc, err := s.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("layout not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get layout", err)
	}
	var l models.DashboardLayout
	if err := doc.DataTo(&l); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse layout data", err)
	}
	return &l, nil
}

// Put replaces the whole layout document.
func (s *layoutStore) Put(ctx context.Context, uid string, widgets []models.Widget) error {
	l := models.DashboardLayout{Widgets: widgets, UpdatedAt: time.Now()}
	if l.Widgets == nil {
		l.Widgets = []models.Widget{}
	}
	if _, err := s.doc(uid).Set(ctx, l); err != nil {
		return errs.NewDatabaseError("update", "failed to save layout", err)
	}
	return nil
}

func (s *layoutStore) Delete(ctx context.Context, uid string) error {
	if _, err := s.doc(uid).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete layout", err)
	}
	return nil
}
