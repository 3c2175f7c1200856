package service

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erazemk/carrental/internal/store"
)

func TestKindOfAndMessage(t *testing.T) {
	err := fmt.Errorf("creating car: %w", store.ErrDuplicateKey)
	assert.Equal(t, ErrDuplicateKey, KindOf(err))

	msg, ok := Message(newError(ErrInvalidInput, "year must be between %d and %d", 1886, 2027))
	assert.True(t, ok)
	assert.Equal(t, "year must be between 1886 and 2027", msg)

	msg, ok = Message(fmt.Errorf("wrapped: %w", ErrUnknownCar))
	assert.True(t, ok)
	assert.Equal(t, "car not found", msg)

	_, ok = Message(errors.New("disk full"))
	assert.False(t, ok)
	assert.Nil(t, KindOf(errors.New("disk full")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrInvalidDateFormat, http.StatusBadRequest},
		{newError(ErrInvalidAction, "cannot confirm"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", ErrUnknownReservation), http.StatusNotFound},
		{ErrUnknownUser, http.StatusNotFound},
		{newError(ErrDuplicateKey, "taken"), http.StatusConflict},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrSessionExpired, http.StatusUnauthorized},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}
