// Package apperror holds the error taxonomy shared by the repository,
// service and handler layers.
package apperror

import (
	"errors"
	"sort"
	"strings"
)

// Error allows sentinel errors to be declared as constants.
type Error string

func (err Error) Error() string { return string(err) }

const (
	ErrNotFound     Error = "resource not found"
	ErrConflict     Error = "resource conflicts with an existing record"
	ErrUnauthorized Error = "authentication required"
)

// ValidationError reports malformed or out-of-bound input, keyed by the
// JSON field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is, or wraps, a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
