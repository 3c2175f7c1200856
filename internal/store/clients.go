package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/carrental/internal/model"
)

const clientColumns = `id, name, email, phone, address, created_at, updated_at`

// CreateClient inserts a client and returns the stored record.
func (s *Store) CreateClient(ctx context.Context, c *model.Client) (*model.Client, error) {
	result, err := s.db.NamedExecContext(ctx,
		`INSERT INTO clients (name, email, phone, address) VALUES (:name, :email, :phone, :address)`,
		c,
	)
	if err != nil {
		return nil, writeErr("creating client", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting client id: %w", err)
	}

	return s.GetClient(ctx, id)
}

// GetClient returns a client by ID.
func (s *Store) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	c := &model.Client{}
	err := s.db.GetContext(ctx, c, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return c, nil
}

// FindClientByEmail returns the client with the given email.
func (s *Store) FindClientByEmail(ctx context.Context, email string) (*model.Client, error) {
	c := &model.Client{}
	err := s.db.GetContext(ctx, c, `SELECT `+clientColumns+` FROM clients WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding client by email: %w", err)
	}
	return c, nil
}

// ListClients returns all clients ordered by name.
func (s *Store) ListClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := s.db.SelectContext(ctx, &clients, `SELECT `+clientColumns+` FROM clients ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}

// UpdateClient overwrites a client's editable fields.
func (s *Store) UpdateClient(ctx context.Context, c *model.Client) error {
	_, err := s.db.NamedExecContext(ctx,
		`UPDATE clients SET name = :name, email = :email, phone = :phone, address = :address,
		 updated_at = CURRENT_TIMESTAMP WHERE id = :id`,
		c,
	)
	if err != nil {
		return writeErr("updating client", err)
	}
	return nil
}

// DeleteClient removes a client without checking for reservations.
func (s *Store) DeleteClient(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting client: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting client: %w", err)
	}
	return n > 0, nil
}

// CountClients counts all clients.
func (s *Store) CountClients(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM clients`); err != nil {
		return 0, fmt.Errorf("counting clients: %w", err)
	}
	return n, nil
}
