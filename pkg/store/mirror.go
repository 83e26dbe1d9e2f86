package store

import (
	"context"
	"log"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

// Remote pushes are fire-and-forget: the local write already happened, a
// failure reports a transient status and is never retried.

func (s *RecordStore) session() (Mirror, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mirror == nil || s.uid == "" {
		return nil, ""
	}
	return s.mirror, s.uid
}

func (s *RecordStore) pushAdd(ctx context.Context, kind record.Kind, id string) {
	m, uid := s.session()
	if m == nil {
		return
	}

	var remoteID string
	var err error
	switch kind {
	case record.KindTask:
		s.mu.Lock()
		i := taskAt(s.tasks, id)
		if i < 0 {
			s.mu.Unlock()
			return
		}
		t := s.tasks[i]
		s.mu.Unlock()
		remoteID, err = m.AddTask(ctx, uid, t)
	default:
		s.mu.Lock()
		i := noteAt(s.notes, id)
		if i < 0 {
			s.mu.Unlock()
			return
		}
		n := s.notes[i]
		s.mu.Unlock()
		remoteID, err = m.AddNote(ctx, uid, n)
	}
	if err != nil {
		s.reportSync(err)
		return
	}

	s.mu.Lock()
	switch kind {
	case record.KindTask:
		if i := taskAt(s.tasks, id); i >= 0 {
			s.tasks[i].RemoteID = remoteID
			s.persistTasks()
		}
	default:
		if i := noteAt(s.notes, id); i >= 0 {
			s.notes[i].RemoteID = remoteID
			s.persistNotes()
		}
	}
	s.mu.Unlock()
	s.status("synced")
}

// pushUpdate mirrors an edit or toggle. Items without a remote companion
// stay local-only; they get one on their next successful add sync.
func (s *RecordStore) pushUpdate(ctx context.Context, t record.Task) {
	m, uid := s.session()
	if m == nil || t.RemoteID == "" {
		return
	}
	if err := m.UpdateTask(ctx, uid, t); err != nil {
		s.reportSync(err)
		return
	}
	s.status("synced")
}

func (s *RecordStore) pushDelete(ctx context.Context, kind record.Kind, remoteID string) {
	m, uid := s.session()
	if m == nil || remoteID == "" {
		return
	}
	var err error
	switch kind {
	case record.KindTask:
		err = m.DeleteTask(ctx, uid, remoteID)
	default:
		err = m.DeleteNote(ctx, uid, remoteID)
	}
	if err != nil {
		s.reportSync(err)
		return
	}
	s.status("synced")
}

func (s *RecordStore) reportSync(err error) {
	log.Printf("store: remote sync: %v", err)
	s.status("sync failed, changes kept locally")
}
