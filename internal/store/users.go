package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/carrental/internal/model"
)

const userColumns = `id, username, password_hash, role, created_at`

// CreateUser creates a new user.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, role string) (*model.User, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		username, passwordHash, role,
	)
	if err != nil {
		return nil, writeErr("creating user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return s.GetUser(ctx, id)
}

// GetUser returns a user by ID.
func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := s.db.GetContext(ctx, u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByUsername returns a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := s.db.GetContext(ctx, u, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return u, nil
}

// ListUsersByRole returns users with the given role ordered by username.
func (s *Store) ListUsersByRole(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	err := s.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY username`, role,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// UpdateUsername renames a user.
func (s *Store) UpdateUsername(ctx context.Context, id int64, username string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET username = ? WHERE id = ?`, username, id)
	if err != nil {
		return writeErr("updating user", err)
	}
	return nil
}

// UpdateUserPassword updates a user's password hash.
func (s *Store) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// DeleteUser removes a user holding the given role. It reports whether a row
// was deleted.
func (s *Store) DeleteUser(ctx context.Context, id int64, role string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ? AND role = ?`, id, role)
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}
	return n > 0, nil
}

// CountUsers counts users, optionally restricted to one role.
func (s *Store) CountUsers(ctx context.Context, role string) (int, error) {
	var n int
	var err error
	if role == "" {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	} else {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE role = ?`, role)
	}
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}
