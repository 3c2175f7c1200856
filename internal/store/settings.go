package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const jwtSecretKey = "jwt_secret"

// GetJWTSecret returns the token signing secret, generating and storing one on
// first use. Concurrent first calls agree on a single value.
func (s *Store) GetJWTSecret(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		jwtSecretKey, hex.EncodeToString(buf),
	); err != nil {
		return "", fmt.Errorf("storing jwt secret: %w", err)
	}

	var secret string
	if err := s.db.GetContext(ctx, &secret, `SELECT value FROM settings WHERE key = ?`, jwtSecretKey); err != nil {
		return "", fmt.Errorf("querying jwt secret: %w", err)
	}
	return secret, nil
}
