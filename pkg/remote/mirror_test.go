package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

type fakeDocs struct {
	byCollection map[string][]Listed
	added        map[string][]Document
	failList     bool
	nextID       int
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{
		byCollection: make(map[string][]Listed),
		added:        make(map[string][]Document),
	}
}

func (f *fakeDocs) ListByUser(_ context.Context, _, collection string) ([]Listed, error) {
	if f.failList {
		return nil, errors.New("unreachable")
	}
	return f.byCollection[collection], nil
}

func (f *fakeDocs) Add(_ context.Context, _, collection string, doc Document) (string, error) {
	f.nextID++
	f.added[collection] = append(f.added[collection], doc)
	return "r" + string(rune('0'+f.nextID)), nil
}

func (f *fakeDocs) Update(_ context.Context, _, _, _ string, _ Document) error { return nil }
func (f *fakeDocs) Delete(_ context.Context, _, _, _ string) error             { return nil }

type memKV struct{ data map[string]string }

func (k memKV) Get(key string) (string, bool) { v, ok := k.data[key]; return v, ok }
func (k memKV) Set(key, value string) error   { k.data[key] = value; return nil }

func TestCodecRoundTrip(t *testing.T) {
	task := record.Task{
		ID: "17", Text: "pack boxes", On: record.MustDay("2024-06-05"),
		CreatedAt: "09:15:00", Priority: record.High, Completed: true,
	}
	got := decodeTask(Listed{ID: "remote-1", Doc: encodeTask(task)})
	task.RemoteID = "remote-1"
	if got != task {
		t.Fatalf("task round-trip mismatch:\n got %+v\nwant %+v", got, task)
	}

	note := record.Note{ID: "18", Text: "met Anna", On: record.MustDay("2024-06-06"), CreatedAt: "10:00:00"}
	gotNote := decodeNote(Listed{ID: "remote-2", Doc: encodeNote(note)})
	note.RemoteID = "remote-2"
	if gotNote != note {
		t.Fatalf("note round-trip mismatch:\n got %+v\nwant %+v", gotNote, note)
	}
}

func TestDecodeTolerantOfLegacyDocs(t *testing.T) {
	// Older clients wrote numeric ids and omitted fields.
	got := decodeTask(Listed{ID: "remote-9", Doc: Document{
		"id":        float64(1717570000000),
		"text":      "legacy",
		"date":      "2024-06-05",
		"priority":  "urgent!!",
		"completed": true,
	}})
	if got.ID != "1717570000000" {
		t.Fatalf("numeric id must decode to its digits, got %q", got.ID)
	}
	if got.Priority != record.Medium {
		t.Fatalf("unknown priority must fall back to medium, got %q", got.Priority)
	}
	if !got.Completed || got.RemoteID != "remote-9" {
		t.Fatalf("decode wrong: %+v", got)
	}

	empty := decodeNote(Listed{ID: "remote-10", Doc: Document{}})
	if empty.ID != "remote-10" {
		t.Fatalf("missing id must fall back to the remote id, got %q", empty.ID)
	}
}

func TestIDOrderIsNumericWithFallbacksLast(t *testing.T) {
	tasks := []record.Task{
		{ID: "zz-remote", Text: "fallback b"},
		{ID: "1717570000123", Text: "newest"},
		{ID: "9", Text: "oldest"},
		{ID: "aa-remote", Text: "fallback a"},
		{ID: "100", Text: "middle"},
	}
	sortTasks(tasks)

	want := []string{"9", "100", "1717570000123", "aa-remote", "zz-remote"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("position %d = %q, want %q (order %+v)", i, tasks[i].ID, id, tasks)
		}
	}
}

func TestSignInReplacesSnapshot(t *testing.T) {
	docs := newFakeDocs()
	docs.byCollection[CollectionTasks] = []Listed{
		{ID: "rb", Doc: Document{"id": "20", "text": "later", "date": "2024-06-06", "priority": "low"}},
		{ID: "ra", Doc: Document{"id": "10", "text": "sooner", "date": "2024-06-05", "priority": "high"}},
	}
	docs.byCollection[CollectionRecords] = []Listed{
		{ID: "rn", Doc: Document{"id": "15", "text": "remote note", "date": "2024-06-05"}},
	}

	s := store.New(memKV{data: map[string]string{}})
	s.ReplaceAll(nil, []record.Task{{ID: "local", Text: "stale", On: record.MustDay("2024-06-01")}})

	m := NewMirror(docs)
	if err := m.SignIn(context.Background(), s, "uid-1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks after sign-in, got %d", len(tasks))
	}
	// Insertion order restored from the monotonic ids.
	if tasks[0].ID != "10" || tasks[1].ID != "20" {
		t.Fatalf("tasks out of order: %s, %s", tasks[0].ID, tasks[1].ID)
	}
	if len(s.Notes()) != 1 || s.Notes()[0].RemoteID != "rn" {
		t.Fatalf("notes wrong: %+v", s.Notes())
	}
	if !s.Signed() {
		t.Fatal("store must be signed in")
	}
}

func TestSignInFailureLeavesLocalState(t *testing.T) {
	docs := newFakeDocs()
	docs.failList = true

	s := store.New(memKV{data: map[string]string{}})
	s.ReplaceAll(nil, []record.Task{{ID: "local", Text: "keep", On: record.MustDay("2024-06-01")}})

	m := NewMirror(docs)
	err := m.SignIn(context.Background(), s, "uid-1")
	if err == nil {
		t.Fatal("expected a sync error")
	}
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("expected *SyncError, got %T", err)
	}
	if len(s.Tasks()) != 1 || s.Tasks()[0].ID != "local" {
		t.Fatal("a failed fetch must not touch local state")
	}
	if s.Signed() {
		t.Fatal("session must not be established")
	}
}

func TestSignOutWipes(t *testing.T) {
	s := store.New(memKV{data: map[string]string{}})
	s.SetSession("uid-1")
	s.ReplaceAll(
		[]record.Note{{ID: "1", Text: "n", On: record.MustDay("2024-06-01")}},
		[]record.Task{{ID: "2", Text: "t", On: record.MustDay("2024-06-01")}},
	)

	SignOut(s)
	if len(s.Notes()) != 0 || len(s.Tasks()) != 0 {
		t.Fatal("sign-out must clear the collections")
	}
	if s.Signed() {
		t.Fatal("session must be cleared")
	}
}
