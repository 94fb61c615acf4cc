// Package apperrors defines the structured error taxonomy shared by every
// store. Each error carries a machine-readable code for message lookup.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicate
	KindNotFound
	KindLimit
	KindStorage
	KindMigration
)

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation = errors.New("validation error")
	ErrDuplicate  = errors.New("duplicate error")
	ErrNotFound   = errors.New("not found error")
	ErrLimit      = errors.New("limit error")
	ErrStorage    = errors.New("storage error")
	ErrMigration  = errors.New("migration error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindDuplicate:
		return ErrDuplicate
	case KindNotFound:
		return ErrNotFound
	case KindLimit:
		return ErrLimit
	case KindStorage:
		return ErrStorage
	case KindMigration:
		return ErrMigration
	default:
		return nil
	}
}

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindDuplicate:
		return "DuplicateError"
	case KindNotFound:
		return "NotFoundError"
	case KindLimit:
		return "LimitError"
	case KindStorage:
		return "StorageError"
	case KindMigration:
		return "MigrationError"
	default:
		return "Error"
	}
}

// Error is a structured domain error.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel, so errors.Is(err, ErrNotFound) works
// regardless of code.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func newError(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a ValidationError.
func Validation(code, format string, args ...any) *Error {
	return newError(KindValidation, code, format, args...)
}

// Duplicate builds a DuplicateError.
func Duplicate(code, format string, args ...any) *Error {
	return newError(KindDuplicate, code, format, args...)
}

// NotFound builds a NotFoundError.
func NotFound(code, format string, args ...any) *Error {
	return newError(KindNotFound, code, format, args...)
}

// Limit builds a LimitError.
func Limit(code, format string, args ...any) *Error {
	return newError(KindLimit, code, format, args...)
}

// Storage wraps an underlying read/write failure.
func Storage(code string, err error, format string, args ...any) *Error {
	e := newError(KindStorage, code, format, args...)
	e.Err = err
	return e
}

// Migration wraps a migration failure.
func Migration(code string, err error, format string, args ...any) *Error {
	e := newError(KindMigration, code, format, args...)
	e.Err = err
	return e
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or "" for foreign errors.
func CodeOf(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}
