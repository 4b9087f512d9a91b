package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchWithErrorsIs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		kind error
	}{
		{Validation("english is required"), ErrValidation},
		{NotFound("word %d not found", 3), ErrNotFound},
		{Conflict("word %q already exists", "apple"), ErrConflict},
		{Storage("failed to insert word", errors.New("disk full")), ErrStorage},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, tc.err, tc.kind)
		wrapped := fmt.Errorf("outer: %w", tc.err)
		assert.ErrorIs(t, wrapped, tc.kind)
	}
}

func TestKindsAreDistinct(t *testing.T) {
	t.Parallel()

	err := NotFound("missing")
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrStorage)
}

func TestStorageUnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("database is locked")
	err := Storage("failed to update word", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to update word: database is locked", err.Error())
	assert.Equal(t, "failed to update word", Message(err))
}

func TestMessageKeepsValidationDetail(t *testing.T) {
	t.Parallel()

	err := Validation("answers: expected %d answers, got %d", 2, 1)
	assert.Equal(t, "answers: expected 2 answers, got 1", Message(err))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
