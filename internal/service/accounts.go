package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/carrental/internal/model"
)

// AccountStore is the persistence needed by Accounts.
type AccountStore interface {
	CreateUser(ctx context.Context, username, passwordHash, role string) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]model.User, error)
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	DeleteUser(ctx context.Context, id int64, role string) (bool, error)
	CountUsers(ctx context.Context, role string) (int, error)
}

// Accounts manages credentials and manager accounts.
type Accounts struct {
	store AccountStore
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

// NewAccounts returns an account service.
func NewAccounts(s AccountStore) *Accounts {
	return &Accounts{store: s}
}

func (a *Accounts) hash(password string) (string, error) {
	cost := a.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

func checkPassword(password string) error {
	if err := model.ValidatePassword(password); err != nil {
		return newError(ErrInvalidInput, "%s", err.Error())
	}
	return nil
}

func duplicateUsername(username string) error {
	return newError(ErrDuplicateKey, "username %s is already taken", username)
}

// Authenticate checks a username and password.
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := a.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ListManagers returns all manager accounts.
func (a *Accounts) ListManagers(ctx context.Context) ([]model.User, error) {
	return a.store.ListUsersByRole(ctx, model.RoleManager)
}

// GetManager returns a manager account or ErrUnknownUser.
func (a *Accounts) GetManager(ctx context.Context, id int64) (*model.User, error) {
	user, err := a.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if user == nil || user.Role != model.RoleManager {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// CreateManager adds a manager account.
func (a *Accounts) CreateManager(ctx context.Context, actor Actor, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, newError(ErrInvalidInput, "username is required")
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	existing, err := a.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if existing != nil {
		return nil, duplicateUsername(username)
	}

	hash, err := a.hash(password)
	if err != nil {
		return nil, err
	}
	user, err := a.store.CreateUser(ctx, username, hash, model.RoleManager)
	if errors.Is(err, ErrDuplicateKey) {
		return nil, duplicateUsername(username)
	}
	if err != nil {
		return nil, fmt.Errorf("creating manager: %w", err)
	}

	slog.Info("manager created", "user", actor.Username, "manager", username)
	return user, nil
}

// UpdateManager renames a manager and, when password is non-empty, sets a
// new password.
func (a *Accounts) UpdateManager(ctx context.Context, actor Actor, id int64, username, password string) (*model.User, error) {
	user, err := a.GetManager(ctx, id)
	if err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, newError(ErrInvalidInput, "username is required")
	}
	if password != "" {
		if err := checkPassword(password); err != nil {
			return nil, err
		}
	}

	if username != user.Username {
		existing, err := a.store.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("checking username: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, duplicateUsername(username)
		}
		err = a.store.UpdateUsername(ctx, id, username)
		if errors.Is(err, ErrDuplicateKey) {
			return nil, duplicateUsername(username)
		}
		if err != nil {
			return nil, fmt.Errorf("renaming manager: %w", err)
		}
	}

	if password != "" {
		hash, err := a.hash(password)
		if err != nil {
			return nil, err
		}
		if err := a.store.UpdateUserPassword(ctx, id, hash); err != nil {
			return nil, fmt.Errorf("setting manager password: %w", err)
		}
	}

	slog.Info("manager updated", "user", actor.Username, "manager", username, "password_changed", password != "")
	return a.GetManager(ctx, id)
}

// DeleteManager removes a manager account. Admin accounts are never removed.
func (a *Accounts) DeleteManager(ctx context.Context, actor Actor, id int64) error {
	deleted, err := a.store.DeleteUser(ctx, id, model.RoleManager)
	if err != nil {
		return fmt.Errorf("deleting manager: %w", err)
	}
	if !deleted {
		return ErrUnknownUser
	}
	slog.Info("manager deleted", "user", actor.Username, "manager", id)
	return nil
}

// ChangePassword replaces the actor's own password after checking the
// current one.
func (a *Accounts) ChangePassword(ctx context.Context, actor Actor, current, next string) error {
	if current == "" || next == "" {
		return newError(ErrInvalidInput, "enter your current and new password")
	}
	user, err := a.store.GetUser(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("getting user: %w", err)
	}
	if user == nil {
		return ErrUnknownUser
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return newError(ErrInvalidCredentials, "current password is incorrect")
	}
	if err := checkPassword(next); err != nil {
		return err
	}

	hash, err := a.hash(next)
	if err != nil {
		return err
	}
	if err := a.store.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	slog.Info("user changed own password", "user", actor.Username)
	return nil
}

// EnsureAdmin creates an admin account with a random password when no
// accounts exist yet. It returns the generated password, or "" when nothing
// was created.
func (a *Accounts) EnsureAdmin(ctx context.Context, username string) (string, error) {
	n, err := a.store.CountUsers(ctx, "")
	if err != nil {
		return "", fmt.Errorf("counting users: %w", err)
	}
	if n > 0 {
		return "", nil
	}

	password, err := GeneratePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}
	hash, err := a.hash(password)
	if err != nil {
		return "", err
	}
	if _, err := a.store.CreateUser(ctx, username, hash, model.RoleAdmin); err != nil {
		return "", fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("initial admin account created", "user", username)
	return password, nil
}

// GeneratePassword returns a random password of the given length.
func GeneratePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
