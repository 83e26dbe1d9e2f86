package record

import (
	"fmt"
	"strings"
	"time"
)

// Kind distinguishes the two collections.
type Kind string

const (
	KindNote Kind = "note"
	KindTask Kind = "task"
)

// Priority orders tasks by urgency.
type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// AllPriorities returns the supported priorities.
func AllPriorities() []Priority {
	return []Priority{Low, Medium, High}
}

// ParsePriority converts a string to a Priority or returns an error for
// unknown values. Empty input defaults to Medium.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return Medium, nil
	}
	for _, candidate := range AllPriorities() {
		if candidate == p {
			return candidate, nil
		}
	}
	return Medium, fmt.Errorf("record: unknown priority %q", raw)
}

const clockLayout = "15:04:05"

// Stamp formats the local time-of-day string recorded at creation.
func Stamp(t time.Time) string {
	return t.Local().Format(clockLayout)
}

// Note is a dated free-text entry with no completion semantics. Immutable
// except deletion.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	On        Day    `json:"date"`
	CreatedAt string `json:"createdAt,omitempty"`
	RemoteID  string `json:"remoteId,omitempty"`
}

// Task is a dated, prioritized, completable entry.
type Task struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	On        Day      `json:"date"`
	CreatedAt string   `json:"createdAt,omitempty"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	RemoteID  string   `json:"remoteId,omitempty"`
}
