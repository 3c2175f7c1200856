package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/carrental/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	revoked, err := s.IsTokenRevoked(ctx, "test-jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected token not to be revoked")
	}

	if err := s.RevokeToken(ctx, "test-jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = s.IsTokenRevoked(ctx, "test-jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected token to be revoked")
	}

	revoked, _ = s.IsTokenRevoked(ctx, "test-jti-2")
	if revoked {
		t.Error("expected different token not to be revoked")
	}
}

func TestRevokeTokenIdempotent(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	if err := s.RevokeToken(ctx, "test-jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("first RevokeToken: %v", err)
	}
	if err := s.RevokeToken(ctx, "test-jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("second RevokeToken: %v", err)
	}
}

func TestRevokeTokenPrunesExpired(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	s.RevokeToken(ctx, "old", time.Now().Add(-time.Hour))
	s.RevokeToken(ctx, "new", time.Now().Add(time.Hour))

	if revoked, _ := s.IsTokenRevoked(ctx, "old"); revoked {
		t.Error("expected expired revocation to be pruned")
	}
	if revoked, _ := s.IsTokenRevoked(ctx, "new"); !revoked {
		t.Error("expected live revocation to remain")
	}
}
