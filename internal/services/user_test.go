package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/pkg/helpers"
)

type stubUserStore struct {
	user        *models.User
	getErr      error
	updateErr   error
	updated     *models.User
	updateCalls int
}

func (s *stubUserStore) UpdateUser(_ context.Context, user *models.User) error {
	s.updated = user
	s.updateCalls++
	return s.updateErr
}

func (s *stubUserStore) GetUser(_ context.Context, _ string) (*models.User, error) {
	return s.user, s.getErr
}

func TestUserServiceRolesMergesClaimsAndStored(t *testing.T) {
	store := &stubUserStore{user: &models.User{UID: "uid-1", Roles: []string{"dcf_approver", "manhours_staff"}}}
	svc := NewUserService(store)

	roles, err := svc.Roles(helpers.TestCtx(), "uid-1", "a@example.com", []string{"manhours_staff", "", "dcf_requestor"})
	if err != nil {
		t.Fatalf("Roles returned error: %v", err)
	}
	want := []string{"dcf_approver", "dcf_requestor", "manhours_staff"}
	if !reflect.DeepEqual(roles, want) {
		t.Fatalf("expected %v, got %v", want, roles)
	}
	if store.updateCalls != 0 {
		t.Fatalf("existing user should not be rewritten")
	}
}

func TestUserServiceRolesRegistersNewUser(t *testing.T) {
	store := &stubUserStore{getErr: errs.NewNotFoundError("user not found")}
	svc := NewUserService(store)

	roles, err := svc.Roles(helpers.TestCtx(), "uid-2", "b@example.com", []string{"job_order_requestor"})
	if err != nil {
		t.Fatalf("Roles returned error: %v", err)
	}
	if !reflect.DeepEqual(roles, []string{"job_order_requestor"}) {
		t.Fatalf("unexpected roles %v", roles)
	}
	if store.updated == nil || store.updated.UID != "uid-2" || store.updated.Email != "b@example.com" {
		t.Fatalf("user was not registered: %+v", store.updated)
	}
}

func TestUserServiceRolesStoreError(t *testing.T) {
	store := &stubUserStore{getErr: errs.NewDatabaseError("read", "failed to get user", errors.New("unavailable"))}
	svc := NewUserService(store)

	if _, err := svc.Roles(helpers.TestCtx(), "uid-3", "", nil); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
