package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"validation", Validation(CodeLabelNameRequired, "name is required"), ErrValidation},
		{"duplicate", Duplicate(CodeLabelDuplicate, "dup"), ErrDuplicate},
		{"not found", NotFound(CodeTaskNotFound, "task %s not found", "x"), ErrNotFound},
		{"limit", Limit(CodeLabelLimit, "too many"), ErrLimit},
		{"storage", Storage(CodeStorageWrite, errors.New("disk full"), "write failed"), ErrStorage},
		{"migration", Migration(CodeMigrationFailed, nil, "boom"), ErrMigration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.target)
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.target)
			assert.NotErrorIs(t, tt.err, errors.New("other"))
		})
	}
}

func TestErrorKindsDoNotCrossMatch(t *testing.T) {
	err := NotFound(CodeLabelNotFound, "missing")
	assert.NotErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrStorage)
}

func TestStorageErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := Storage(CodeStorageWrite, cause, "failed to save labels")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save labels: quota exceeded", err.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeLabelDuplicate, CodeOf(fmt.Errorf("ctx: %w", Duplicate(CodeLabelDuplicate, "dup"))))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "A label with this name already exists.", UserMessage(Duplicate(CodeLabelDuplicate, "dup")))
	assert.Equal(t, GenericMessage, UserMessage(errors.New("plain")))
	assert.Equal(t, GenericMessage, UserMessage(Validation("SOMETHING_NEW", "x")))
	assert.Equal(t, "", UserMessage(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ValidationError", KindValidation.String())
	assert.Equal(t, "MigrationError", KindMigration.String())
	assert.Equal(t, "Error", Kind(0).String())
}
