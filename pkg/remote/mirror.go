package remote

import (
	"context"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

// Mirror adapts the document store to the record store's push interface
// and owns the sign-in/sign-out snapshot exchange.
type Mirror struct {
	docs Store
}

// NewMirror wraps a document store.
func NewMirror(docs Store) *Mirror {
	return &Mirror{docs: docs}
}

var _ store.Mirror = (*Mirror)(nil)

func (m *Mirror) AddNote(ctx context.Context, uid string, n record.Note) (string, error) {
	id, err := m.docs.Add(ctx, uid, CollectionRecords, encodeNote(n))
	if err != nil {
		return "", &SyncError{Op: "add record", Err: err}
	}
	return id, nil
}

func (m *Mirror) AddTask(ctx context.Context, uid string, t record.Task) (string, error) {
	id, err := m.docs.Add(ctx, uid, CollectionTasks, encodeTask(t))
	if err != nil {
		return "", &SyncError{Op: "add task", Err: err}
	}
	return id, nil
}

func (m *Mirror) UpdateTask(ctx context.Context, uid string, t record.Task) error {
	if err := m.docs.Update(ctx, uid, CollectionTasks, t.RemoteID, encodeTask(t)); err != nil {
		return &SyncError{Op: "update task", Err: err}
	}
	return nil
}

func (m *Mirror) DeleteNote(ctx context.Context, uid, remoteID string) error {
	if err := m.docs.Delete(ctx, uid, CollectionRecords, remoteID); err != nil {
		return &SyncError{Op: "delete record", Err: err}
	}
	return nil
}

func (m *Mirror) DeleteTask(ctx context.Context, uid, remoteID string) error {
	if err := m.docs.Delete(ctx, uid, CollectionTasks, remoteID); err != nil {
		return &SyncError{Op: "delete task", Err: err}
	}
	return nil
}

// SignIn fetches the user's full remote snapshot and swaps it in whole.
// Partial states never merge: either both fetches succeed and the local
// collections are replaced atomically, or nothing changes.
func (m *Mirror) SignIn(ctx context.Context, s *store.RecordStore, uid string) error {
	listedNotes, err := m.docs.ListByUser(ctx, uid, CollectionRecords)
	if err != nil {
		return &SyncError{Op: "list records", Err: err}
	}
	listedTasks, err := m.docs.ListByUser(ctx, uid, CollectionTasks)
	if err != nil {
		return &SyncError{Op: "list tasks", Err: err}
	}

	notes := make([]record.Note, 0, len(listedNotes))
	for _, l := range listedNotes {
		notes = append(notes, decodeNote(l))
	}
	tasks := make([]record.Task, 0, len(listedTasks))
	for _, l := range listedTasks {
		tasks = append(tasks, decodeTask(l))
	}
	sortNotes(notes)
	sortTasks(tasks)

	s.SetSession(uid)
	s.ReplaceAll(notes, tasks)
	return nil
}

// SignOut clears the session and wipes the local collections. No remote
// access is needed, the remote copy stays intact.
func SignOut(s *store.RecordStore) {
	s.ClearSession()
	s.ReplaceAll(nil, nil)
}
