package assist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

const recentNotesLimit = 5

// BuildPrompt composes the single request sent to the model: the user's
// question framed by today's and tomorrow's tasks, recent notes, the
// running completion rate, and whatever preferences have been learned.
func BuildPrompt(message string, notes []record.Note, tasks []record.Task, prefs Preferences, today record.Day) string {
	var b strings.Builder

	b.WriteString("You are a planning collaborator inside a personal journal. ")
	b.WriteString("Give short, concrete advice about the user's schedule and priorities. ")
	b.WriteString("If the user tells you a lasting preference about how they work, reply with ")
	b.WriteString(`only this JSON: {"action":"update_preferences","preferences":{...},"message":"..."}`)
	b.WriteString(" where message confirms what you remembered. Otherwise reply in plain text.\n\n")

	writeTaskSection(&b, "Tasks for today", tasks, today)
	writeTaskSection(&b, "Tasks for tomorrow", tasks, today.AddDays(1))
	writeNotes(&b, notes)
	writeCompletion(&b, tasks)
	writePatterns(&b, tasks, today)
	writePrefs(&b, prefs)

	b.WriteString("User: ")
	b.WriteString(message)
	return b.String()
}

func writeTaskSection(b *strings.Builder, title string, tasks []record.Task, day record.Day) {
	var lines []string
	for _, t := range tasks {
		if t.On != day {
			continue
		}
		mark := "pending"
		if t.Completed {
			mark = "done"
		}
		lines = append(lines, fmt.Sprintf("- [%s] (%s) %s", mark, t.Priority, t.Text))
	}
	fmt.Fprintf(b, "%s (%s):\n", title, day)
	if len(lines) == 0 {
		b.WriteString("- none\n")
	} else {
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeNotes(b *strings.Builder, notes []record.Note) {
	if len(notes) == 0 {
		return
	}
	recent := make([]record.Note, len(notes))
	copy(recent, notes)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].ID > recent[j].ID })
	if len(recent) > recentNotesLimit {
		recent = recent[:recentNotesLimit]
	}
	b.WriteString("Recent notes:\n")
	for _, n := range recent {
		fmt.Fprintf(b, "- (%s) %s\n", n.On, n.Text)
	}
	b.WriteString("\n")
}

func writeCompletion(b *strings.Builder, tasks []record.Task) {
	if len(tasks) == 0 {
		return
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	fmt.Fprintf(b, "Overall completion: %d of %d tasks done.\n\n", done, len(tasks))
}

// writePatterns surfaces rough work-pattern hints so the model can
// ground its advice without seeing the whole history.
func writePatterns(b *strings.Builder, tasks []record.Task, today record.Day) {
	if len(tasks) == 0 {
		return
	}
	high, todayCount := 0, 0
	for _, t := range tasks {
		if t.Priority == record.High {
			high++
		}
		if t.On == today {
			todayCount++
		}
	}
	var hints []string
	if high*2 > len(tasks) {
		hints = append(hints, "most tasks are marked high priority")
	}
	if todayCount >= 5 {
		hints = append(hints, fmt.Sprintf("today is heavily loaded (%d tasks)", todayCount))
	}
	if len(hints) == 0 {
		return
	}
	fmt.Fprintf(b, "Work patterns: %s.\n\n", strings.Join(hints, "; "))
}

func writePrefs(b *strings.Builder, prefs Preferences) {
	if len(prefs) == 0 {
		return
	}
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString("Known preferences:\n")
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %s\n", k, prefs[k])
	}
	b.WriteString("\n")
}
