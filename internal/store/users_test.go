package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/carrental/internal/db"
	"github.com/erazemk/carrental/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "testuser", "hash123", model.RoleManager)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %q", user.Username)
	}
	if user.Role != model.RoleManager {
		t.Errorf("expected role 'manager', got %q", user.Role)
	}

	got, err := s.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %q", got.Username)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "alice", "hash", model.RoleManager); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	_, err := s.CreateUser(ctx, "alice", "hash", model.RoleManager)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestGetUserByUsername(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	s.CreateUser(ctx, "alice", "hash", model.RoleAdmin)

	user, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("expected alice, got %+v", user)
	}

	missing, err := s.GetUserByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestListUsersByRoleAndCount(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	s.CreateUser(ctx, "root", "hash", model.RoleAdmin)
	s.CreateUser(ctx, "b", "hash", model.RoleManager)
	s.CreateUser(ctx, "a", "hash", model.RoleManager)

	managers, err := s.ListUsersByRole(ctx, model.RoleManager)
	if err != nil {
		t.Fatalf("ListUsersByRole: %v", err)
	}
	if len(managers) != 2 || managers[0].Username != "a" {
		t.Errorf("expected managers [a b], got %+v", managers)
	}

	if n, _ := s.CountUsers(ctx, model.RoleManager); n != 2 {
		t.Errorf("expected 2 managers, got %d", n)
	}
	if n, _ := s.CountUsers(ctx, ""); n != 3 {
		t.Errorf("expected 3 users, got %d", n)
	}
}

func TestDeleteUserOnlyMatchingRole(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	admin, _ := s.CreateUser(ctx, "root", "hash", model.RoleAdmin)
	manager, _ := s.CreateUser(ctx, "m", "hash", model.RoleManager)

	deleted, err := s.DeleteUser(ctx, admin.ID, model.RoleManager)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if deleted {
		t.Error("expected admin not to be deleted through manager role")
	}

	deleted, _ = s.DeleteUser(ctx, manager.ID, model.RoleManager)
	if !deleted {
		t.Error("expected manager to be deleted")
	}
	if got, _ := s.GetUser(ctx, manager.ID); got != nil {
		t.Error("expected manager to be gone")
	}
}

func TestUpdateUserPasswordAndName(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	user, _ := s.CreateUser(ctx, "pwuser", "oldhash", model.RoleManager)
	s.CreateUser(ctx, "taken", "hash", model.RoleManager)

	s.UpdateUserPassword(ctx, user.ID, "newhash")
	got, _ := s.GetUser(ctx, user.ID)
	if got.PasswordHash != "newhash" {
		t.Errorf("expected password hash 'newhash', got %q", got.PasswordHash)
	}

	if err := s.UpdateUsername(ctx, user.ID, "taken"); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	if err := s.UpdateUsername(ctx, user.ID, "renamed"); err != nil {
		t.Errorf("UpdateUsername: %v", err)
	}
}
