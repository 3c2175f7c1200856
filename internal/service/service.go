// Package service holds the car-rental business rules: reservation pricing and
// lifecycle, dashboard statistics, and validated maintenance of cars, clients
// and manager accounts.
//
// Callers authorize requests first and pass the acting account explicitly as
// an Actor; nothing here reads ambient session state.
package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/erazemk/carrental/internal/auth"
	"github.com/erazemk/carrental/internal/store"
)

// Error kinds. Match with errors.Is.
var (
	ErrInvalidDateFormat  = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrUnknownCar         = errors.New("car not found")
	ErrUnknownClient      = errors.New("client not found")
	ErrUnknownReservation = errors.New("reservation not found")
	ErrUnknownUser        = errors.New("user not found")
	ErrDuplicateKey       = store.ErrDuplicateKey
	ErrInvalidAction      = errors.New("invalid action")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Error carries a user-facing message for one of the error kinds.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Actor is the authenticated account performing an operation.
type Actor struct {
	UserID   int64
	Username string
	Role     string
}

// ActorFromClaims builds an Actor from session token claims.
func ActorFromClaims(c *auth.Claims) Actor {
	return Actor{UserID: c.UserID, Username: c.Username, Role: c.Role}
}

// Options toggles reservation lifecycle behaviour.
type Options struct {
	// StrictTransitions only allows pending->confirmed, pending->refused and
	// confirmed->completed. When false any known action applies from any
	// status.
	StrictTransitions bool
	// SyncCarStatus marks the car rented on confirm and available on complete.
	SyncCarStatus bool
}

// DefaultOptions are the recommended lifecycle settings.
func DefaultOptions() Options {
	return Options{StrictTransitions: true}
}

var kinds = []error{
	ErrInvalidDateFormat,
	ErrInvalidDateRange,
	ErrUnknownCar,
	ErrUnknownClient,
	ErrUnknownReservation,
	ErrUnknownUser,
	ErrDuplicateKey,
	ErrInvalidAction,
	ErrInvalidInput,
	ErrInvalidCredentials,
	ErrSessionExpired,
}

// KindOf returns the error kind err belongs to, or nil for internal failures.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Message returns the user-facing text of err and whether err is a known
// kind. Internal failures yield ("", false) and should be logged instead.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg, true
	}
	if k := KindOf(err); k != nil {
		return k.Error(), true
	}
	return "", false
}

// HTTPStatus is the response code both HTTP surfaces use for err.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case nil:
		return http.StatusInternalServerError
	case ErrUnknownCar, ErrUnknownClient, ErrUnknownReservation, ErrUnknownUser:
		return http.StatusNotFound
	case ErrDuplicateKey:
		return http.StatusConflict
	case ErrInvalidCredentials, ErrSessionExpired:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
