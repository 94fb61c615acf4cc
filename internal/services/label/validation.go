package label

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/models"
)

// Hex color regex pattern: #RGB or #RRGGBB
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

const maxLabels = models.MaxLabels

// FieldError describes one invalid field
type FieldError struct {
	Field   string
	Code    string
	Message string
}

// ValidationResult collects every problem found in a label input
type ValidationResult struct {
	Errors []FieldError
}

// OK reports whether no problems were found
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Err converts the first problem into a ValidationError, nil when OK
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	first := r.Errors[0]
	return apperrors.Validation(first.Code, "%s", first.Message)
}

func (r *ValidationResult) add(field, code, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Code: code, Message: message})
}

// ValidateLabel checks a full name/color pair, as used on create
func ValidateLabel(name, color string) ValidationResult {
	var r ValidationResult
	validateName(&r, name)
	validateColor(&r, color)
	return r
}

// ValidateName checks a label name on its own
func ValidateName(name string) ValidationResult {
	var r ValidationResult
	validateName(&r, name)
	return r
}

// ValidateColor checks a label color on its own
func ValidateColor(color string) ValidationResult {
	var r ValidationResult
	validateColor(&r, color)
	return r
}

func validateName(r *ValidationResult, name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		r.add("name", apperrors.CodeLabelNameRequired, "name cannot be empty")
	case utf8.RuneCountInString(name) > models.MaxLabelNameLength:
		r.add("name", apperrors.CodeLabelNameTooLong, "name cannot exceed 32 characters")
	}
}

func validateColor(r *ValidationResult, color string) {
	if !hexColorRegex.MatchString(strings.TrimSpace(color)) {
		r.add("color", apperrors.CodeLabelColorInvalid,
			"invalid color format (must be hex color like #FFF or #FFFFFF)")
	}
}

// normalizeName is the key used for case-insensitive uniqueness
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
