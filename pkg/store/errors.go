package store

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyText rejects drafts with no text. The mutation is blocked and
	// no state changes.
	ErrEmptyText = errors.New("store: text is required")

	// ErrNotFound reports a stale id reference. The mutation is a no-op.
	ErrNotFound = errors.New("store: record not found")

	// ErrWrongKind reports an operation applied to the wrong collection,
	// like toggling a note.
	ErrWrongKind = errors.New("store: operation not valid for this kind")
)

// PersistenceError wraps a local store read or write failure. The in-memory
// state stays authoritative for the session.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
