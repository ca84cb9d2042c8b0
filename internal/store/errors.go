package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested row or snapshot does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means a unique key was violated.
	ErrDuplicate = errors.New("duplicate")

	// ErrInvalidEntity means a row broke a column or check constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed means a transaction could not begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrSnapshotNotFound means no library has been saved yet.
	ErrSnapshotNotFound = fmt.Errorf("%w: library snapshot", ErrNotFound)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError records which entity and operation a persistence failure
// happened on. Detail is usually the row id or the statement stage.
type StoreError struct {
	Entity    string
	Operation string
	Detail    string
	Err       error
}

func (e *StoreError) Error() string {
	msg := e.Entity + " " + e.Operation
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err == nil {
		return msg + " failed"
	}
	return msg + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError builds a StoreError.
func NewStoreError(entity, operation, detail string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Detail: detail, Err: err}
}
