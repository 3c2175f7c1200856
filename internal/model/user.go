package model

import (
	"fmt"
	"slices"
	"time"
)

// User is a back-office account.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ValidRole reports whether role is a known account role.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

// HasRole reports whether role is one of allowed. Roles are not ranked: an
// admin does not pass a manager-only check.
func HasRole(role string, allowed ...string) bool {
	if !ValidRole(role) {
		return false
	}
	return slices.Contains(allowed, role)
}

// ValidatePassword checks the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
