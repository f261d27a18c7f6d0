package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// AppError is a classified error whose Message is safe to return to clients.
// errors.Is(err, ErrNotFound) etc. works through Unwrap.
type AppError struct {
	Kind     error
	Message  string
	Redirect string
	Fields   map[string]string
}

func (e *AppError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, FormatValidationErrors(e.Fields))
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NewValidationError(message string, fields map[string]string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message, Fields: fields}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: ErrUnauthorized, Message: message}
}

func NewForbiddenError(message, redirect string) *AppError {
	return &AppError{Kind: ErrForbidden, Message: message, Redirect: redirect}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: ErrConflict, Message: message}
}

// AsAppError finds the classified error in err's chain, if any.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func FormatValidationErrors(errors map[string]string) string {
	keys := make([]string, 0, len(errors))
	for field := range errors {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, field := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
