package tide_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tideorm/tide"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		assert.Equal(t, "tide: users not found (id=7)", tide.NewNotFoundError("users", 7).Error())
		assert.Equal(t, "tide: users not found", tide.NewNotFoundError("users", nil).Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := tide.NewNotFoundError("posts", 1)
		assert.True(t, errors.Is(err, tide.ErrNotFound))
		assert.Equal(t, "posts", err.Label())
		assert.Equal(t, 1, err.ID())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := tide.NewNotFoundError("comments", 3)
		assert.True(t, tide.IsNotFound(err))
		assert.True(t, tide.IsNotFound(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, tide.IsNotFound(tide.ErrNotFound))
		assert.False(t, tide.IsNotFound(errors.New("other error")))
		assert.False(t, tide.IsNotFound(nil))
	})
}

func TestValidationError(t *testing.T) {
	inner := errors.New("bad digit")
	err := tide.NewValidationError("id", inner)
	assert.Equal(t, "tide: invalid id: bad digit", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.True(t, tide.IsValidationError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, tide.IsValidationError(inner))
	assert.False(t, tide.IsValidationError(nil))
}

func TestQueryError(t *testing.T) {
	inner := errors.New("connection refused")
	err := tide.NewQueryError("users", "select", inner)
	assert.Equal(t, "tide: select users: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.True(t, tide.IsQueryError(err))
	assert.False(t, tide.IsQueryError(inner))
}

func TestMigrationError(t *testing.T) {
	inner := errors.New("syntax error")
	err := &tide.MigrationError{Name: "20240101_create_users", Op: "up", Err: inner}
	assert.Equal(t, "tide: migration 20240101_create_users (up): syntax error", err.Error())
	assert.ErrorIs(t, err, inner)
}
