package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "gone")))
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
	assert.Equal(t, Internal, KindOf(nil))

	// kind survives further wrapping
	wrapped := fmt.Errorf("context: %w", New(Conflict, "dup"))
	assert.Equal(t, Conflict, KindOf(wrapped))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 400, StatusCode(New(Validation, "bad")))
	assert.Equal(t, 400, StatusCode(New(InvalidState, "empty cart")))
	assert.Equal(t, 401, StatusCode(New(Unauthorized, "nope")))
	assert.Equal(t, 403, StatusCode(New(Forbidden, "admin only")))
	assert.Equal(t, 404, StatusCode(New(NotFound, "gone")))
	assert.Equal(t, 409, StatusCode(New(Conflict, "dup")))
	assert.Equal(t, 500, StatusCode(errors.New("untyped")))
}

func TestMessage_MasksInternal(t *testing.T) {
	err := Wrap(errors.New("pq: connection reset"), Internal, "failed to load cart")
	assert.Equal(t, "Internal Server Error", Message(err))

	// the cause stays reachable for logging
	assert.Contains(t, err.Err.Error(), "connection reset")
	assert.Equal(t, "Internal Server Error", Message(errors.New("raw db error")))
}

func TestMessage_ClientKindsPassThrough(t *testing.T) {
	assert.Equal(t, "Cart is empty", Message(New(InvalidState, "Cart is empty")))
	assert.Equal(t, "Product not found", Message(New(NotFound, "Product not found")))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "dup", New(Conflict, "dup").Error())

	cause := errors.New("cause")
	e := Wrap(cause, Internal, "")
	assert.Equal(t, "cause", e.Error())
	assert.ErrorIs(t, e, cause)
}
