package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/metrics"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/pkg/logger"
)

// maxLayoutWidgets bounds a saved layout; the grid never produces more than
// a few dozen tiles.
const maxLayoutWidgets = 200

type layoutStore interface {
	Get(ctx context.Context, uid string) (*models.DashboardLayout, error)
	Put(ctx context.Context, uid string, widgets []models.Widget) error
	Delete(ctx context.Context, uid string) error
}

type layoutService struct {
	store layoutStore
}

func NewLayoutService(store layoutStore) *layoutService {
	return &layoutService{store: store}
}

// GetLayout returns the stored widgets; a user without a layout gets an
// empty list so clients fall back to their cache or defaults.
func (s *layoutService) GetLayout(ctx context.Context, uid string) ([]models.Widget, error) {
	l, err := s.store.Get(ctx, uid)
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		metrics.LayoutOp("fetch", nil)
		return []models.Widget{}, nil
	}
	metrics.LayoutOp("fetch", err)
	if err != nil {
		return nil, err
	}
	if l.Widgets == nil {
		return []models.Widget{}, nil
	}
	return l.Widgets, nil
}

func (s *layoutService) SaveLayout(ctx context.Context, uid string, widgets []models.Widget) error {
	log := logger.FromContext(ctx)

	if err := validateLayout(widgets); err != nil {
		return err
	}
	err := s.store.Put(ctx, uid, widgets)
	metrics.LayoutOp("save", err)
	if err != nil {
		log.Error("failed to save layout", "error", err)
		return err
	}
	metrics.LayoutSaved(len(widgets))
	log.Info("layout saved", "widgets", len(widgets))
	return nil
}

func (s *layoutService) ResetLayout(ctx context.Context, uid string) error {
	err := s.store.Delete(ctx, uid)
	metrics.LayoutOp("reset", err)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info("layout reset")
	return nil
}

// validateLayout checks record shape only. Unknown widget types and
// overlapping rectangles are accepted; clients render and re-flow them.
func validateLayout(widgets []models.Widget) error {
	if len(widgets) > maxLayoutWidgets {
		return errs.NewValidationError(fmt.Sprintf("layout has more than %d widgets", maxLayoutWidgets))
	}
	seen := make(map[string]struct{}, len(widgets))
	for i, w := range widgets {
		switch {
		case w.ID == "":
			return errs.NewValidationError(fmt.Sprintf("widget %d: id is required", i))
		case w.Type == "":
			return errs.NewValidationError(fmt.Sprintf("widget %s: type is required", w.ID))
		case w.W < 1 || w.H < 1:
			return errs.NewValidationError(fmt.Sprintf("widget %s: size must be at least 1x1", w.ID))
		case w.X < 0 || w.Y < 0:
			return errs.NewValidationError(fmt.Sprintf("widget %s: position must not be negative", w.ID))
		}
		if _, dup := seen[w.ID]; dup {
			return errs.NewValidationError(fmt.Sprintf("duplicate widget id %s", w.ID))
		}
		seen[w.ID] = struct{}{}
	}
	return nil
}
