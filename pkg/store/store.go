package store

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

const (
	notesKey   = "records"
	tasksKey   = "tasks"
	sessionKey = "session"
)

// Observer is notified after a successful mutation with the affected days.
// An empty call means every view scope may have changed.
type Observer func(changed ...record.Day)

// StatusFunc receives transient user-facing status messages, like sync
// results. Never called for errors returned from the mutation itself.
type StatusFunc func(msg string)

// Mirror pushes individual mutations to the remote document store. All
// calls are best-effort: failures surface as a status message and never
// roll back the local write.
type Mirror interface {
	AddNote(ctx context.Context, uid string, n record.Note) (string, error)
	AddTask(ctx context.Context, uid string, t record.Task) (string, error)
	UpdateTask(ctx context.Context, uid string, t record.Task) error
	DeleteNote(ctx context.Context, uid, remoteID string) error
	DeleteTask(ctx context.Context, uid, remoteID string) error
}

// Draft is the input for Add.
type Draft struct {
	Text     string
	On       record.Day
	Priority record.Priority
}

// Patch replaces only the non-nil fields of a task.
type Patch struct {
	Text     *string
	On       *record.Day
	Priority *record.Priority
}

// RecordStore owns the two ordered collections and their persistence.
// The local store is the source of truth for the UI; the remote mirror is
// an eventually-consistent copy.
type RecordStore struct {
	mu     sync.Mutex
	kv     KV
	mirror Mirror
	uid    string

	notes []record.Note
	tasks []record.Task

	lastID    int64
	now       func() time.Time
	observers []Observer
	status    StatusFunc
}

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) { s.now = now }
}

// WithMirror attaches the remote mirror used for fire-and-forget pushes.
func WithMirror(m Mirror) Option {
	return func(s *RecordStore) { s.mirror = m }
}

// WithStatus attaches the transient status sink.
func WithStatus(fn StatusFunc) Option {
	return func(s *RecordStore) { s.status = fn }
}

// New creates a RecordStore over the given local key-value store.
func New(kv KV, opts ...Option) *RecordStore {
	s := &RecordStore{
		kv:     kv,
		now:    time.Now,
		status: func(string) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads config, opens the local store and restores the collections.
func Open(cfg *Config) (*RecordStore, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	s := New(NewDiskKV(cfg.Path))
	s.Load()
	return s, nil
}

// KV exposes the underlying local store for sibling features that keep
// their own keys, like collaborator preferences.
func (s *RecordStore) KV() KV { return s.kv }

// Subscribe registers an observer for mutation notifications.
func (s *RecordStore) Subscribe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// SetMirror attaches the remote mirror after construction, once a
// session has been established.
func (s *RecordStore) SetMirror(m Mirror) {
	s.mu.Lock()
	s.mirror = m
	s.mu.Unlock()
}

// SetStatus replaces the transient status sink after construction.
func (s *RecordStore) SetStatus(fn StatusFunc) {
	s.mu.Lock()
	s.status = fn
	s.mu.Unlock()
}

// SetSession marks the store as signed in. Mutations mirror to the remote
// store under this user until ClearSession. The session survives process
// restarts.
func (s *RecordStore) SetSession(uid string) {
	s.mu.Lock()
	s.uid = uid
	s.mu.Unlock()
	if err := s.kv.Set(sessionKey, uid); err != nil {
		log.Printf("store: session not persisted: %v", err)
	}
}

// ClearSession returns the store to local-only operation.
func (s *RecordStore) ClearSession() {
	s.SetSession("")
}

// Signed reports whether a remote session is active.
func (s *RecordStore) Signed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid != ""
}

// User returns the signed-in user id, or empty when local-only.
func (s *RecordStore) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid
}

// Notes returns a copy of the notes collection in insertion order.
func (s *RecordStore) Notes() []record.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]record.Note(nil), s.notes...)
}

// Tasks returns a copy of the tasks collection in insertion order.
func (s *RecordStore) Tasks() []record.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]record.Task(nil), s.tasks...)
}

// Add validates the draft, assigns an id and appends to the collection for
// kind. ErrEmptyText leaves the store untouched and issues no write.
func (s *RecordStore) Add(ctx context.Context, kind record.Kind, d Draft) (string, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return "", ErrEmptyText
	}
	on := d.On
	if on == "" {
		on = record.DayOf(s.now())
	}

	s.mu.Lock()
	id := s.nextID()
	stamp := record.Stamp(s.now())
	switch kind {
	case record.KindTask:
		priority := d.Priority
		if priority == "" {
			priority = record.Medium
		}
		s.tasks = append(s.tasks, record.Task{
			ID:        id,
			Text:      text,
			On:        on,
			CreatedAt: stamp,
			Priority:  priority,
		})
		s.persistTasks()
	default:
		s.notes = append(s.notes, record.Note{
			ID:        id,
			Text:      text,
			On:        on,
			CreatedAt: stamp,
		})
		s.persistNotes()
	}
	s.mu.Unlock()

	s.notify(on)
	s.pushAdd(ctx, kind, id)
	return id, nil
}

// Update replaces the patched fields of the task with the given id and
// refreshes its creation stamp. Notes are immutable except deletion.
func (s *RecordStore) Update(ctx context.Context, id string, p Patch) error {
	s.mu.Lock()
	if noteAt(s.notes, id) >= 0 {
		s.mu.Unlock()
		return ErrWrongKind
	}
	i := taskAt(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	t := &s.tasks[i]
	before := t.On
	if p.Text != nil {
		text := strings.TrimSpace(*p.Text)
		if text == "" {
			s.mu.Unlock()
			return ErrEmptyText
		}
		t.Text = text
	}
	if p.On != nil {
		t.On = *p.On
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	t.CreatedAt = record.Stamp(s.now())
	after := *t
	s.persistTasks()
	s.mu.Unlock()

	s.notify(before, after.On)
	s.pushUpdate(ctx, after)
	return nil
}

// Remove deletes the note or task with the given id and best-effort deletes
// its remote companion.
func (s *RecordStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	if i := noteAt(s.notes, id); i >= 0 {
		removed := s.notes[i]
		s.notes = append(s.notes[:i], s.notes[i+1:]...)
		s.persistNotes()
		s.mu.Unlock()

		s.notify(removed.On)
		s.pushDelete(ctx, record.KindNote, removed.RemoteID)
		return nil
	}
	if i := taskAt(s.tasks, id); i >= 0 {
		removed := s.tasks[i]
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.persistTasks()
		s.mu.Unlock()

		s.notify(removed.On)
		s.pushDelete(ctx, record.KindTask, removed.RemoteID)
		return nil
	}
	s.mu.Unlock()
	return ErrNotFound
}

// ToggleCompleted flips the completed flag of the task with the given id.
func (s *RecordStore) ToggleCompleted(ctx context.Context, id string) error {
	s.mu.Lock()
	if noteAt(s.notes, id) >= 0 {
		s.mu.Unlock()
		return ErrWrongKind
	}
	i := taskAt(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	after := s.tasks[i]
	s.persistTasks()
	s.mu.Unlock()

	s.notify(after.On)
	s.pushUpdate(ctx, after)
	return nil
}

// ReplaceAll swaps in a full snapshot, as after a remote fetch on sign-in
// or a sign-out wipe. It applies atomically with respect to concurrent
// mutations: whichever enters first fully applies first.
func (s *RecordStore) ReplaceAll(notes []record.Note, tasks []record.Task) {
	s.mu.Lock()
	s.notes = append(make([]record.Note, 0, len(notes)), notes...)
	s.tasks = append(make([]record.Task, 0, len(tasks)), tasks...)
	s.reseedID()
	s.persistNotes()
	s.persistTasks()
	s.mu.Unlock()

	s.notify()
}

// Load restores both collections from the local store. Corrupt or missing
// values load as empty collections; startup never blocks on bad state.
func (s *RecordStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = loadSlice[record.Note](s.kv, notesKey)
	s.tasks = loadSlice[record.Task](s.kv, tasksKey)
	if uid, ok := s.kv.Get(sessionKey); ok {
		s.uid = uid
	}
	s.reseedID()
}

func loadSlice[T any](kv KV, key string) []T {
	out := []T{}
	raw, ok := kv.Get(key)
	if !ok || raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("store: discarding corrupt %q: %v", key, err)
		return []T{}
	}
	return out
}

// nextID returns a monotonic creation-timestamp token. Ids are never
// reused after deletion.
func (s *RecordStore) nextID() string {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *RecordStore) reseedID() {
	for _, n := range s.notes {
		if v, err := strconv.ParseInt(n.ID, 10, 64); err == nil && v > s.lastID {
			s.lastID = v
		}
	}
	for _, t := range s.tasks {
		if v, err := strconv.ParseInt(t.ID, 10, 64); err == nil && v > s.lastID {
			s.lastID = v
		}
	}
}

func (s *RecordStore) persistNotes() { s.persist(notesKey, s.notes) }
func (s *RecordStore) persistTasks() { s.persist(tasksKey, s.tasks) }

// persist is called with the lock held. A write failure keeps the in-memory
// state authoritative for the session.
func (s *RecordStore) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.reportPersist(&PersistenceError{Op: "encode", Key: key, Err: err})
		return
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		s.reportPersist(&PersistenceError{Op: "write", Key: key, Err: err})
	}
}

func (s *RecordStore) reportPersist(err *PersistenceError) {
	log.Print(err)
	s.status("local save failed, changes kept for this session")
}

func (s *RecordStore) notify(changed ...record.Day) {
	s.mu.Lock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()
	for _, fn := range observers {
		fn(changed...)
	}
}

func noteAt(notes []record.Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func taskAt(tasks []record.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
