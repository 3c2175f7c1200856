package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/carrental/internal/model"
)

// ClientStore is the persistence needed by Clients.
type ClientStore interface {
	CreateClient(ctx context.Context, c *model.Client) (*model.Client, error)
	GetClient(ctx context.Context, id int64) (*model.Client, error)
	FindClientByEmail(ctx context.Context, email string) (*model.Client, error)
	ListClients(ctx context.Context) ([]model.Client, error)
	UpdateClient(ctx context.Context, c *model.Client) error
	DeleteClient(ctx context.Context, id int64) (bool, error)
}

// ClientInput is the editable part of a client.
type ClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Clients maintains the customer register.
type Clients struct {
	store ClientStore
}

// NewClients returns a client register service.
func NewClients(s ClientStore) *Clients {
	return &Clients{store: s}
}

func (in *ClientInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	if in.Name == "" || in.Email == "" || in.Phone == "" {
		return newError(ErrInvalidInput, "name, email and phone are required")
	}
	if at := strings.Index(in.Email, "@"); at <= 0 || at == len(in.Email)-1 {
		return newError(ErrInvalidInput, "%q is not a valid email address", in.Email)
	}
	return nil
}

func duplicateEmail(email string) error {
	return newError(ErrDuplicateKey, "a client with email %s already exists", email)
}

func (c *Clients) checkEmail(ctx context.Context, email string, selfID int64) error {
	existing, err := c.store.FindClientByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("checking email: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return duplicateEmail(email)
	}
	return nil
}

// Create adds a client.
func (c *Clients) Create(ctx context.Context, actor Actor, in ClientInput) (*model.Client, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if err := c.checkEmail(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	client, err := c.store.CreateClient(ctx, &model.Client{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if errors.Is(err, ErrDuplicateKey) {
		return nil, duplicateEmail(in.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	slog.Info("client created", "user", actor.Username, "client", client.Name)
	return client, nil
}

// Update overwrites a client's details.
func (c *Clients) Update(ctx context.Context, actor Actor, id int64, in ClientInput) (*model.Client, error) {
	client, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if err := c.checkEmail(ctx, in.Email, id); err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address

	err = c.store.UpdateClient(ctx, client)
	if errors.Is(err, ErrDuplicateKey) {
		return nil, duplicateEmail(in.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	slog.Info("client updated", "user", actor.Username, "client", client.Name)
	return client, nil
}

// Delete removes a client. Reservations that reference it keep the client ID.
func (c *Clients) Delete(ctx context.Context, actor Actor, id int64) error {
	deleted, err := c.store.DeleteClient(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	if !deleted {
		return ErrUnknownClient
	}
	slog.Info("client deleted", "user", actor.Username, "client", id)
	return nil
}

// Get returns a client or ErrUnknownClient.
func (c *Clients) Get(ctx context.Context, id int64) (*model.Client, error) {
	client, err := c.store.GetClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting client: %w", err)
	}
	if client == nil {
		return nil, ErrUnknownClient
	}
	return client, nil
}

// List returns every client.
func (c *Clients) List(ctx context.Context) ([]model.Client, error) {
	return c.store.ListClients(ctx)
}
