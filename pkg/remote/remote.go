// Package remote mirrors the local collections into a cloud document
// store. The mirror is eventually consistent: the local store stays the
// source of truth and every remote failure is non-fatal.
package remote

import (
	"context"
	"fmt"
)

// Collections mirrored per user under users/{uid}.
const (
	CollectionRecords = "records"
	CollectionTasks   = "tasks"
)

// Document is a flat field map exchanged with the document store.
type Document map[string]any

// Store is the capability interface over the remote document store.
type Store interface {
	ListByUser(ctx context.Context, uid, collection string) ([]Listed, error)
	Add(ctx context.Context, uid, collection string, doc Document) (string, error)
	Update(ctx context.Context, uid, collection, id string, doc Document) error
	Delete(ctx context.Context, uid, collection, id string) error
}

// Listed is one fetched document with its remote id.
type Listed struct {
	ID  string
	Doc Document
}

// SyncError wraps any failure talking to the remote store. Always
// non-fatal; surfaced as a transient status, never rolls back local state.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("remote: %s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
