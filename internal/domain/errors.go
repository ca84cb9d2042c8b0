package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an entity or an operation's input fails
	// validation. It is usually wrapped by a ValidationError carrying the field.
	ErrValidation = errors.New("validation failed")

	// ErrCapacityExceeded is returned when an insert would push a collection
	// past one of the hard caps defined in limits.go.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidOrder is returned when an order strategy is not one of the
	// known values.
	ErrInvalidOrder = errors.New("invalid order strategy")
)

// ValidationError describes which field failed validation and why.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError. If err is nil the error
// wraps ErrValidation so callers can always match on it.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// CapacityError reports which cap was hit.
type CapacityError struct {
	// Resource names the collection that is full, e.g. "wordlist".
	Resource string
	// Limit is the cap that was reached.
	Limit int
	// Message is the human readable explanation shown to end users.
	Message string
}

// Error implements the error interface for CapacityError.
func (e *CapacityError) Error() string {
	return e.Message
}

// Unwrap always returns ErrCapacityExceeded.
func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// NewCapacityError creates a new CapacityError.
func NewCapacityError(resource string, limit int, message string) *CapacityError {
	return &CapacityError{
		Resource: resource,
		Limit:    limit,
		Message:  message,
	}
}

// IsValidationError reports whether err is, or wraps, a validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidOrder)
}

// IsCapacityError reports whether err is, or wraps, a capacity failure.
func IsCapacityError(err error) bool {
	return errors.Is(err, ErrCapacityExceeded)
}
