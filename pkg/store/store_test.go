package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

type memoryKV struct {
	data   map[string]string
	writes int
	fail   bool
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryKV) Set(key, value string) error {
	m.writes++
	if m.fail {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

type fakeMirror struct {
	failAdd bool
	added   int
	deleted []string
	updated []record.Task
}

func (f *fakeMirror) AddNote(_ context.Context, _ string, _ record.Note) (string, error) {
	if f.failAdd {
		return "", errors.New("remote unavailable")
	}
	f.added++
	return "remote-note", nil
}

func (f *fakeMirror) AddTask(_ context.Context, _ string, _ record.Task) (string, error) {
	if f.failAdd {
		return "", errors.New("remote unavailable")
	}
	f.added++
	return "remote-task", nil
}

func (f *fakeMirror) UpdateTask(_ context.Context, _ string, t record.Task) error {
	f.updated = append(f.updated, t)
	return nil
}

func (f *fakeMirror) DeleteNote(_ context.Context, _ string, remoteID string) error {
	f.deleted = append(f.deleted, remoteID)
	return nil
}

func (f *fakeMirror) DeleteTask(_ context.Context, _ string, remoteID string) error {
	f.deleted = append(f.deleted, remoteID)
	return nil
}

func testClock() func() time.Time {
	at := time.Date(2024, time.June, 5, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	s := New(newMemoryKV(), WithClock(testClock()))
	ctx := context.Background()

	first, err := s.Add(ctx, record.KindTask, Draft{Text: "one", On: record.MustDay("2024-06-05")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := s.Add(ctx, record.KindNote, Draft{Text: "two", On: record.MustDay("2024-06-05")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first == second {
		t.Fatalf("ids must be unique, both %q", first)
	}
	if second < first {
		t.Fatalf("ids must be monotonic: %q then %q", first, second)
	}
}

func TestAddEmptyTextNoWrite(t *testing.T) {
	kv := newMemoryKV()
	s := New(kv, WithClock(testClock()))

	_, err := s.Add(context.Background(), record.KindTask, Draft{Text: "   "})
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatal("collection length must be unchanged")
	}
	if kv.writes != 0 {
		t.Fatalf("no persistence write may be issued, got %d", kv.writes)
	}
}

func TestPersistLoadRoundTrip(t *testing.T) {
	kv := newMemoryKV()
	s := New(kv, WithClock(testClock()))
	ctx := context.Background()
	day := record.MustDay("2024-06-05")

	if _, err := s.Add(ctx, record.KindNote, Draft{Text: "note", On: day}); err != nil {
		t.Fatalf("add note: %v", err)
	}
	id, err := s.Add(ctx, record.KindTask, Draft{Text: "write report", On: day, Priority: record.High})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := s.ToggleCompleted(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	reloaded := New(kv)
	reloaded.Load()
	notes, tasks := reloaded.Notes(), reloaded.Tasks()
	if len(notes) != 1 || len(tasks) != 1 {
		t.Fatalf("expected 1 note and 1 task, got %d/%d", len(notes), len(tasks))
	}
	if tasks[0].ID != id || !tasks[0].Completed || tasks[0].Priority != record.High {
		t.Fatalf("task did not round-trip: %+v", tasks[0])
	}
	if notes[0].Text != "note" || notes[0].On != day {
		t.Fatalf("note did not round-trip: %+v", notes[0])
	}
}

func TestLoadCorruptDataIsEmpty(t *testing.T) {
	kv := newMemoryKV()
	kv.data[notesKey] = `{"not":"a list"}`
	kv.data[tasksKey] = `]]]`

	s := New(kv)
	s.Load()
	if len(s.Notes()) != 0 || len(s.Tasks()) != 0 {
		t.Fatal("corrupt data must load as empty collections")
	}
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	s := New(newMemoryKV(), WithClock(testClock()))
	ctx := context.Background()
	id, _ := s.Add(ctx, record.KindTask, Draft{Text: "draft", On: record.MustDay("2024-06-05"), Priority: record.Low})

	priority := record.High
	if err := s.Update(ctx, id, Patch{Priority: &priority}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := s.Tasks()[0]
	if got.Text != "draft" || got.Priority != record.High || got.On != record.MustDay("2024-06-05") {
		t.Fatalf("patch touched unrelated fields: %+v", got)
	}

	if err := s.Update(ctx, "missing", Patch{Priority: &priority}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRejectsNotes(t *testing.T) {
	s := New(newMemoryKV(), WithClock(testClock()))
	ctx := context.Background()
	id, _ := s.Add(ctx, record.KindNote, Draft{Text: "immutable", On: record.MustDay("2024-06-05")})

	text := "changed"
	if err := s.Update(ctx, id, Patch{Text: &text}); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
	if err := s.ToggleCompleted(ctx, id); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind for toggle, got %v", err)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s := New(newMemoryKV(), WithClock(testClock()))
	ctx := context.Background()
	id, _ := s.Add(ctx, record.KindTask, Draft{Text: "flip", On: record.MustDay("2024-06-05")})

	if err := s.ToggleCompleted(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !s.Tasks()[0].Completed {
		t.Fatal("expected completed after first toggle")
	}
	if err := s.ToggleCompleted(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.Tasks()[0].Completed {
		t.Fatal("expected original state after second toggle")
	}
}

func TestRemove(t *testing.T) {
	s := New(newMemoryKV(), WithClock(testClock()))
	ctx := context.Background()
	id, _ := s.Add(ctx, record.KindTask, Draft{Text: "gone", On: record.MustDay("2024-06-05")})

	if err := s.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatal("task not removed")
	}
	if err := s.Remove(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on stale id, got %v", err)
	}
}

func TestReplaceAllWipes(t *testing.T) {
	kv := newMemoryKV()
	s := New(kv, WithClock(testClock()))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := s.Add(ctx, record.KindNote, Draft{Text: "n", On: record.MustDay("2024-06-05")}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := s.Add(ctx, record.KindTask, Draft{Text: "t", On: record.MustDay("2024-06-05")}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	s.ReplaceAll(nil, nil)
	if len(s.Notes()) != 0 || len(s.Tasks()) != 0 {
		t.Fatal("collections must be empty after ReplaceAll(nil, nil)")
	}
	if kv.data[notesKey] != "[]" || kv.data[tasksKey] != "[]" {
		t.Fatalf("persisted snapshot must be empty, got %q / %q", kv.data[notesKey], kv.data[tasksKey])
	}
}

func TestRemoteFailureKeepsLocalWrite(t *testing.T) {
	var statuses []string
	mirror := &fakeMirror{failAdd: true}
	s := New(newMemoryKV(),
		WithClock(testClock()),
		WithMirror(mirror),
		WithStatus(func(msg string) { statuses = append(statuses, msg) }),
	)
	s.SetSession("uid-1")

	id, err := s.Add(context.Background(), record.KindTask, Draft{Text: "offline", On: record.MustDay("2024-06-05")})
	if err != nil {
		t.Fatalf("add must not raise past the mutation boundary: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != id {
		t.Fatal("local collection must contain the new task")
	}
	if tasks[0].RemoteID != "" {
		t.Fatalf("no remoteId may be recorded, got %q", tasks[0].RemoteID)
	}
	if len(statuses) == 0 {
		t.Fatal("a sync failure status must be reported")
	}
}

func TestRemoteSuccessRecordsRemoteID(t *testing.T) {
	mirror := &fakeMirror{}
	s := New(newMemoryKV(), WithClock(testClock()), WithMirror(mirror))
	s.SetSession("uid-1")
	ctx := context.Background()

	id, err := s.Add(ctx, record.KindTask, Draft{Text: "online", On: record.MustDay("2024-06-05")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := s.Tasks()[0].RemoteID; got != "remote-task" {
		t.Fatalf("expected remote id recorded, got %q", got)
	}

	if err := s.ToggleCompleted(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(mirror.updated) != 1 || !mirror.updated[0].Completed {
		t.Fatalf("toggle must mirror the updated task, got %+v", mirror.updated)
	}

	if err := s.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(mirror.deleted) != 1 || mirror.deleted[0] != "remote-task" {
		t.Fatalf("remove must delete the remote companion, got %v", mirror.deleted)
	}
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	var statuses []string
	kv := newMemoryKV()
	s := New(kv, WithClock(testClock()), WithStatus(func(msg string) { statuses = append(statuses, msg) }))
	kv.fail = true

	id, err := s.Add(context.Background(), record.KindTask, Draft{Text: "kept", On: record.MustDay("2024-06-05")})
	if err != nil {
		t.Fatalf("persistence failure must not fail the mutation: %v", err)
	}
	if len(s.Tasks()) != 1 || s.Tasks()[0].ID != id {
		t.Fatal("in-memory state must stay authoritative")
	}
	if len(statuses) == 0 {
		t.Fatal("the user must be notified")
	}
}

func TestObserverScopes(t *testing.T) {
	s := New(newMemoryKV(), WithClock(testClock()))
	ctx := context.Background()
	var calls [][]record.Day
	s.Subscribe(func(changed ...record.Day) {
		calls = append(calls, append([]record.Day(nil), changed...))
	})

	id, _ := s.Add(ctx, record.KindTask, Draft{Text: "move me", On: record.MustDay("2024-06-05")})
	on := record.MustDay("2024-06-07")
	if err := s.Update(ctx, id, Patch{On: &on}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(calls))
	}
	if len(calls[0]) != 1 || calls[0][0] != record.MustDay("2024-06-05") {
		t.Fatalf("add scope: %v", calls[0])
	}
	// A date change touches both the old and the new day.
	if len(calls[1]) != 2 || calls[1][0] != record.MustDay("2024-06-05") || calls[1][1] != on {
		t.Fatalf("update scope: %v", calls[1])
	}
}

func TestSessionSurvivesReload(t *testing.T) {
	kv := newMemoryKV()

	s := New(kv)
	s.SetSession("user-1")
	if !s.Signed() || s.User() != "user-1" {
		t.Fatal("session not active after SetSession")
	}

	reopened := New(kv)
	reopened.Load()
	if !reopened.Signed() || reopened.User() != "user-1" {
		t.Error("session must survive a reload")
	}

	reopened.ClearSession()
	third := New(kv)
	third.Load()
	if third.Signed() {
		t.Error("cleared session must stay cleared across reloads")
	}
}

// Mutations and a whole-snapshot swap racing each other must serialize:
// whichever enters first fully applies first, never a merged or partial
// state. Meant to run under the race detector.
func TestReplaceAllSerializesWithMutations(t *testing.T) {
	kv := newMemoryKV()
	s := New(kv)
	ctx := context.Background()
	on := record.MustDay("2024-06-05")

	fetchedNotes := []record.Note{{ID: "5", Text: "fetched note", On: on, CreatedAt: "08:00:00"}}
	fetchedTasks := []record.Task{{ID: "7", Text: "fetched task", On: on, CreatedAt: "08:00:01", Priority: record.Medium}}

	const writers = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if _, err := s.Add(ctx, record.KindTask, Draft{Text: fmt.Sprintf("local %d", i), On: on}); err != nil {
				t.Errorf("add: %v", err)
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		s.ReplaceAll(fetchedNotes, fetchedTasks)
	}()
	close(start)
	wg.Wait()

	// Notes are written only by the swap here, so the snapshot must land
	// whole or not at all — and it ran exactly once.
	notes := s.Notes()
	if len(notes) != 1 || notes[0] != fetchedNotes[0] {
		t.Fatalf("notes = %+v, want the fetched snapshot intact", notes)
	}

	tasks := s.Tasks()
	if len(tasks) == 0 || len(tasks) > writers+1 {
		t.Fatalf("task count %d outside any serial order", len(tasks))
	}
	fetched := 0
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
		switch {
		case task == fetchedTasks[0]:
			fetched++
		case strings.HasPrefix(task.Text, "local "):
			// A surviving add must be a whole record, never a fragment.
			if task.On != on || task.CreatedAt == "" || task.Priority != record.Medium || task.Completed {
				t.Fatalf("partial task state: %+v", task)
			}
		default:
			t.Fatalf("unexpected task: %+v", task)
		}
	}
	if fetched != 1 {
		t.Fatalf("fetched task present %d times, want exactly once", fetched)
	}

	// Each operation persisted inside its own critical section, so the
	// final stored value is the final in-memory state.
	wantTasks, _ := json.Marshal(tasks)
	if kv.data[tasksKey] != string(wantTasks) {
		t.Fatalf("persisted tasks diverged from memory:\n%s\n%s", kv.data[tasksKey], wantTasks)
	}
	wantNotes, _ := json.Marshal(notes)
	if kv.data[notesKey] != string(wantNotes) {
		t.Fatalf("persisted notes diverged from memory:\n%s\n%s", kv.data[notesKey], wantNotes)
	}
}

func TestSubscribeDuringMutations(t *testing.T) {
	s := New(newMemoryKV())
	ctx := context.Background()
	on := record.MustDay("2024-06-05")

	var notified atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	const pairs = 4
	for i := 0; i < pairs; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			s.Subscribe(func(...record.Day) { notified.Add(1) })
		}()
		go func() {
			defer wg.Done()
			<-start
			if _, err := s.Add(ctx, record.KindTask, Draft{Text: "while subscribing", On: on}); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	// Once the dust settles a mutation reaches every observer.
	before := notified.Load()
	if _, err := s.Add(ctx, record.KindTask, Draft{Text: "after", On: on}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := notified.Load() - before; got != pairs {
		t.Fatalf("final mutation notified %d observers, want %d", got, pairs)
	}
}
