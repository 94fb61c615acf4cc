package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/tally/internal/apperrors"
)

func TestValidateLabel_CollectsAllProblems(t *testing.T) {
	r := ValidateLabel("", "blue")

	assert.False(t, r.OK())
	assert.Len(t, r.Errors, 2)
	assert.Equal(t, "name", r.Errors[0].Field)
	assert.Equal(t, "color", r.Errors[1].Field)
	assert.Equal(t, apperrors.CodeLabelNameRequired, apperrors.CodeOf(r.Err()))
}

func TestValidateLabel_OK(t *testing.T) {
	r := ValidateLabel("bug", "#abc")
	assert.True(t, r.OK())
	assert.NoError(t, r.Err())
}

func TestValidateColor(t *testing.T) {
	valid := []string{"#fff", "#FFF", "#a1B2c3", " #123456 "}
	invalid := []string{"", "#", "#ff", "#ffff", "#fffff", "#1234567", "123456", "#zzzzzz"}

	for _, c := range valid {
		assert.True(t, ValidateColor(c).OK(), "expected %q to be valid", c)
	}
	for _, c := range invalid {
		assert.False(t, ValidateColor(c).OK(), "expected %q to be invalid", c)
	}
}
