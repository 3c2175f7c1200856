package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erazemk/carrental/internal/auth"
)

// ErrSessionExpired is returned for tokens that are invalid, revoked, or
// whose account no longer exists.
var ErrSessionExpired = errors.New("session expired, please sign in again")

// TokenStore tracks revoked session tokens.
type TokenStore interface {
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// Sessions issues, resolves and revokes session tokens.
type Sessions struct {
	accounts *Accounts
	tokens   TokenStore
	secret   string
}

// NewSessions returns a session service signing with secret.
func NewSessions(accounts *Accounts, tokens TokenStore, secret string) *Sessions {
	return &Sessions{accounts: accounts, tokens: tokens, secret: secret}
}

// Login authenticates and returns a signed token with its actor.
func (s *Sessions) Login(ctx context.Context, username, password string) (string, Actor, error) {
	user, err := s.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return "", Actor{}, err
	}
	token, err := auth.GenerateToken(s.secret, user.ID, user.Username, user.Role)
	if err != nil {
		return "", Actor{}, fmt.Errorf("issuing token: %w", err)
	}
	slog.Info("user logged in", "user", user.Username, "role", user.Role)
	return token, Actor{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// Resolve validates a token and returns the current state of its account.
// Role and username come from the store, so edits apply to live sessions.
func (s *Sessions) Resolve(ctx context.Context, token string) (Actor, *auth.Claims, error) {
	claims, err := auth.ValidateToken(s.secret, token)
	if err != nil {
		return Actor{}, nil, ErrSessionExpired
	}

	revoked, err := s.tokens.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return Actor{}, nil, fmt.Errorf("checking token revocation: %w", err)
	}
	if revoked {
		return Actor{}, nil, ErrSessionExpired
	}

	user, err := s.accounts.store.GetUser(ctx, claims.UserID)
	if err != nil {
		return Actor{}, nil, fmt.Errorf("getting session user: %w", err)
	}
	if user == nil {
		return Actor{}, nil, ErrSessionExpired
	}

	claims.Username = user.Username
	claims.Role = user.Role
	return ActorFromClaims(claims), claims, nil
}

// Logout revokes a token. Invalid tokens are ignored.
func (s *Sessions) Logout(ctx context.Context, token string) error {
	claims, err := auth.ValidateToken(s.secret, token)
	if err != nil {
		return nil
	}
	if err := s.tokens.RevokeToken(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	slog.Info("user logged out", "user", claims.Username)
	return nil
}
