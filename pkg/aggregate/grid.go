package aggregate

import (
	"time"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

const (
	// GridCells is always 6 full weeks, Sunday start.
	GridCells = 42

	maxPreviews     = 3
	previewRunes    = 6
	previewEllipsis = "..."
)

// Preview is a truncated item label shown inside a grid cell.
type Preview struct {
	Kind      record.Kind
	Text      string
	Priority  record.Priority
	Completed bool
}

// Cell is one day cell of the monthly grid.
type Cell struct {
	Day      int
	Date     record.Day
	InMonth  bool
	Today    bool
	AllDone  bool
	Previews []Preview
	Overflow int
}

// CalendarGrid lays out a month as 42 cells. Leading and trailing cells
// carry the neighbour months' day numbers but no previews.
func CalendarGrid(notes []record.Note, tasks []record.Task, year int, month time.Month, today record.Day) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	offset := int(first.Weekday())
	days := daysIn(year, month)

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		day := i - offset + 1
		date := record.DayOf(first.AddDate(0, 0, day-1))
		if day < 1 || day > days {
			cells = append(cells, Cell{Day: date.Time().Day(), Date: date})
			continue
		}
		cells = append(cells, monthCell(notes, tasks, date, day, today))
	}
	return cells
}

func monthCell(notes []record.Note, tasks []record.Task, date record.Day, day int, today record.Day) Cell {
	cell := Cell{
		Day:     day,
		Date:    date,
		InMonth: true,
		Today:   date == today,
	}

	// Cell previews keep tasks ahead of notes, unlike the daily listing.
	total := 0
	done := 0
	for _, t := range tasks {
		if t.On != date {
			continue
		}
		total++
		if t.Completed {
			done++
		}
		cell.push(Preview{
			Kind:      record.KindTask,
			Text:      Truncate(t.Text),
			Priority:  t.Priority,
			Completed: t.Completed,
		})
	}
	for _, n := range notes {
		if n.On != date {
			continue
		}
		cell.push(Preview{Kind: record.KindNote, Text: Truncate(n.Text)})
	}
	cell.AllDone = total > 0 && done == total
	return cell
}

func (c *Cell) push(p Preview) {
	if len(c.Previews) < maxPreviews {
		c.Previews = append(c.Previews, p)
		return
	}
	c.Overflow++
}

// Truncate cuts preview text to the fixed character budget, counting
// characters the way the original display does.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + previewEllipsis
}
