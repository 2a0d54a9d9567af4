package services

import (
	"context"
	"errors"
	"slices"

	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/pkg/logger"
)

type userUSStore interface {
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	Store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{
		Store: store,
	}
}

// Roles merges the roles asserted by the identity token with the roles
// stored on the user document. A first visit registers the user document
// (with no stored roles) so portal admins have something to grant roles on.
func (s *userService) Roles(ctx context.Context, uid, email string, claimed []string) ([]string, error) {
	// Get logger from context - already has uid, request_id, method, path
	log := logger.FromContext(ctx)

	roles := slices.Clone(claimed)
	user, err := s.Store.GetUser(ctx, uid)
	var nf *errs.NotFoundError
	switch {
	case errors.As(err, &nf):
		if err := s.Store.UpdateUser(ctx, &models.User{UID: uid, Email: email, Roles: []string{}}); err != nil {
			log.Error("failed to register user", "error", err)
			return nil, err
		}
		log.Info("user registered")
	case err != nil:
		log.Error("failed to get user roles", "error", err)
		return nil, err
	default:
		roles = append(roles, user.Roles...)
	}

	roles = slices.DeleteFunc(roles, func(r string) bool { return r == "" })
	slices.Sort(roles)
	return slices.Compact(roles), nil
}
