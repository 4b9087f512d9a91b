// Package apperr defines the error taxonomy shared by the store, the domain
// components and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Use errors.Is against these to classify an error.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage error")
)

// Error carries a kind, a human readable message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is reports a match against the error kind.
func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a 400-class error for missing or malformed input.
func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a 404-class error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a 409-class error for duplicate unique keys.
func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps an underlying engine failure.
func Storage(message string, err error) error {
	return &Error{Kind: ErrStorage, Message: message, Err: err}
}

// Message returns the text shown to API clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == ErrStorage {
			return e.Message
		}
		return e.Error()
	}
	return err.Error()
}
