package cli

import (
	"errors"

	"github.com/thenoetrevino/tally/internal/apperrors"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: storage failures, failed migrations, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: unknown task, label or backup.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: corrupted stored data.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: bad names or colors, duplicates, limits.
	ExitValidation = 5
)

// ReportedError carries the process exit code for a command failure whose
// message was already printed.
type ReportedError struct {
	Code int
	Err  error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// UsageError marks a command-line mistake
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// ExitCodeFor maps an error to its exit code
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var reported *ReportedError
	if errors.As(err, &reported) {
		return reported.Code
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrLimit):
		return ExitValidation
	case apperrors.CodeOf(err) == apperrors.CodeStorageCorrupt:
		return ExitDataErr
	default:
		return ExitError
	}
}

// ErrorCode returns the machine-readable code reported for err
func ErrorCode(err error) string {
	if code := apperrors.CodeOf(err); code != "" {
		return code
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return "USAGE_ERROR"
	}
	return "INTERNAL_ERROR"
}
