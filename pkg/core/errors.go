package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrValidation is returned when a note is rejected before any mutation (e.g. empty title).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an update or delete targets an id that is not in the collection.
	ErrNotFound = errors.New("note not found")
)

// PersistenceError reports a failed load or save against the persistence backend.
// The in-memory collection stays authoritative when one is returned.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("persistence %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
