package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatching(t *testing.T) {
	err := fmt.Errorf("saving room: %w", Conflict("Room is already booked during this time"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, Conflict("Room is already booked during this time")))
	assert.False(t, errors.Is(err, Conflict("Course code already exists")))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, http.StatusConflict, KindOf(err).HTTPStatus())
}

func TestPublicMessageHidesCause(t *testing.T) {
	cause := errors.New("mongo: connection refused")
	err := Wrap(KindUnavailable, "Booking store unavailable", cause)

	assert.Equal(t, "Booking store unavailable", PublicMessage(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal Server Error", PublicMessage(cause))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, http.StatusInternalServerError, KindOf(cause).HTTPStatus())
}
