package remote

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

// The wire shape mirrors the local JSON fields one to one, so either side
// can be rebuilt from the other.

func encodeNote(n record.Note) Document {
	return Document{
		"id":        n.ID,
		"text":      n.Text,
		"date":      string(n.On),
		"createdAt": n.CreatedAt,
		"type":      string(record.KindNote),
	}
}

func encodeTask(t record.Task) Document {
	return Document{
		"id":        t.ID,
		"text":      t.Text,
		"date":      string(t.On),
		"createdAt": t.CreatedAt,
		"type":      string(record.KindTask),
		"priority":  string(t.Priority),
		"completed": t.Completed,
	}
}

func decodeNote(l Listed) record.Note {
	return record.Note{
		ID:        str(l.Doc, "id", l.ID),
		Text:      str(l.Doc, "text", ""),
		On:        record.Day(str(l.Doc, "date", "")),
		CreatedAt: str(l.Doc, "createdAt", ""),
		RemoteID:  l.ID,
	}
}

func decodeTask(l Listed) record.Task {
	priority, err := record.ParsePriority(str(l.Doc, "priority", ""))
	if err != nil {
		priority = record.Medium
	}
	completed, _ := l.Doc["completed"].(bool)
	return record.Task{
		ID:        str(l.Doc, "id", l.ID),
		Text:      str(l.Doc, "text", ""),
		On:        record.Day(str(l.Doc, "date", "")),
		CreatedAt: str(l.Doc, "createdAt", ""),
		Priority:  priority,
		Completed: completed,
		RemoteID:  l.ID,
	}
}

// str reads a document field as a string, tolerating numeric ids written
// by older clients.
func str(doc Document, key, fallback string) string {
	switch v := doc[key].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case int64:
		return fmt.Sprintf("%d", v)
	}
	return fallback
}

// Fetched snapshots come back in store order; insertion order locally is
// the monotonic id order, so restore that before handing the snapshot over.
func sortNotes(notes []record.Note) {
	sort.SliceStable(notes, func(i, j int) bool { return idLess(notes[i].ID, notes[j].ID) })
}

func sortTasks(tasks []record.Task) {
	sort.SliceStable(tasks, func(i, j int) bool { return idLess(tasks[i].ID, tasks[j].ID) })
}

// idLess orders numeric id tokens by value. Documents that fell back to
// a non-numeric remote id sort after every numeric id, lexicographically
// among themselves, so the restored order stays deterministic.
func idLess(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
