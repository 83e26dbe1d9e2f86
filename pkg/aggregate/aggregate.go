// Package aggregate computes view data from the flat collections. All
// functions are pure: same collections and reference date, same output.
package aggregate

import (
	"time"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

// Item is a note or task flattened for a daily listing.
type Item struct {
	Kind      record.Kind
	ID        string
	Text      string
	CreatedAt string
	Priority  record.Priority
	Completed bool
}

// DayStats summarizes task completion for one day.
type DayStats struct {
	TotalTasks     int
	CompletedTasks int
	Percent        int
}

// DayFlag marks one day inside a month summary.
type DayFlag struct {
	Day       int
	HasTasks  bool
	Completed bool
	Today     bool
}

// MonthStats summarizes completion-day counts for one month. Days with
// zero tasks count toward neither numerator nor denominator.
type MonthStats struct {
	DaysWithTasks      int
	DaysFullyCompleted int
	Percent            int
	PerDay             []DayFlag
}

// ItemsOnDay lists the day's items in display order: incomplete tasks,
// then notes, then completed tasks, each group in insertion order.
// Actionable items surface first.
func ItemsOnDay(notes []record.Note, tasks []record.Task, day record.Day) []Item {
	items := make([]Item, 0)
	for _, t := range tasks {
		if t.On == day && !t.Completed {
			items = append(items, taskItem(t))
		}
	}
	for _, n := range notes {
		if n.On == day {
			items = append(items, noteItem(n))
		}
	}
	for _, t := range tasks {
		if t.On == day && t.Completed {
			items = append(items, taskItem(t))
		}
	}
	return items
}

// DayStatsOn computes the completion stats for one day.
func DayStatsOn(tasks []record.Task, day record.Day) DayStats {
	stats := DayStats{}
	for _, t := range tasks {
		if t.On != day {
			continue
		}
		stats.TotalTasks++
		if t.Completed {
			stats.CompletedTasks++
		}
	}
	stats.Percent = percent(stats.CompletedTasks, stats.TotalTasks)
	return stats
}

// MonthStatsOn computes the per-day completion summary for a month. The
// reference date decides which day is flagged as today.
func MonthStatsOn(tasks []record.Task, year int, month time.Month, today record.Day) MonthStats {
	stats := MonthStats{}
	days := daysIn(year, month)
	stats.PerDay = make([]DayFlag, 0, days)
	for day := 1; day <= days; day++ {
		date := record.NewDay(year, month, day)
		flag := DayFlag{Day: day, Today: date == today}
		ds := DayStatsOn(tasks, date)
		if ds.TotalTasks > 0 {
			flag.HasTasks = true
			stats.DaysWithTasks++
			if ds.CompletedTasks == ds.TotalTasks {
				flag.Completed = true
				stats.DaysFullyCompleted++
			}
		}
		stats.PerDay = append(stats.PerDay, flag)
	}
	stats.Percent = percent(stats.DaysFullyCompleted, stats.DaysWithTasks)
	return stats
}

// percent is a rounded integer percentage, 0 when the total is 0.
func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(completed)/float64(total)*100 + 0.5)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func taskItem(t record.Task) Item {
	return Item{
		Kind:      record.KindTask,
		ID:        t.ID,
		Text:      t.Text,
		CreatedAt: t.CreatedAt,
		Priority:  t.Priority,
		Completed: t.Completed,
	}
}

func noteItem(n record.Note) Item {
	return Item{
		Kind:      record.KindNote,
		ID:        n.ID,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
	}
}
