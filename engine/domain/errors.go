package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation failures. The pipeline has exactly one
// failure mode: invalid input. Lookups fall back to generic defaults instead
// of failing so that diagnosis degrades gracefully.
var (
	ErrInvalidInput  = errors.New("invalid diagnostic input")
	ErrEmptySymptoms = errors.New("symptoms must not be empty")
	ErrMissingDevice = errors.New("device info is required")
)

// ValidationError wraps a sentinel with field context.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}

// IsInvalidInput reports whether err is any input-validation failure.
// Callers should map these to a 4xx-equivalent response and never retry.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptySymptoms) ||
		errors.Is(err, ErrMissingDevice)
}
