// Package printers renders snapshots for plain terminal output, one
// region per command invocation.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/view"
)

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

var idSpacing = strings.Repeat(" ", len("1717574400000  "))

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return os.Stdout
}

// Render lets a PrettyPrint stand in wherever a renderer is expected.
func (pp *PrettyPrint) Render(region view.Region, snap view.Snapshot) {
	switch region {
	case view.DayPanel:
		pp.DayPanel(snap.Day, snap.DayItems)
	case view.DayProgress:
		pp.DayProgress(snap.DayStats)
	case view.MonthGrid:
		pp.MonthGrid(snap.Month, snap.Grid)
	case view.MonthProgress:
		pp.MonthProgress(snap.MonthStats)
	case view.Modal:
		if snap.ModalOpen {
			pp.DayPanel(snap.ModalDay, snap.ModalItems)
		}
	}
}

func (pp *PrettyPrint) NewLine() {
	fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), idSpacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

// DayPanel prints the items of one day in panel order: open tasks,
// then notes, then finished tasks.
func (pp *PrettyPrint) DayPanel(day record.Day, items []aggregate.Item) {
	pp.Title(day.Time().Format("Monday, January 2"))

	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " nothing recorded\n\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	for _, it := range items {
		row := []interface{}{marker(it), it.CreatedAt, it.Text}
		if it.Kind == record.KindTask {
			row = append(row, priorityLabel(it.Priority))
		} else {
			row = append(row, "")
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(it.ID)}, row...)
		}
		table.AddRow(row...)
	}
	fmt.Fprintln(pp.out(), table.String())
	fmt.Fprintln(pp.out())
}

// DayProgress prints a completion bar for the selected day.
func (pp *PrettyPrint) DayProgress(stats aggregate.DayStats) {
	if stats.TotalTasks == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no tasks today\n")
		return
	}
	fmt.Fprintf(pp.out(), "%s %3d%%  (%d/%d done)\n",
		progressBar(stats.Percent), stats.Percent, stats.CompletedTasks, stats.TotalTasks)
	if stats.Percent == 100 {
		c := color.New(color.FgHiGreen, color.Bold)
		_, _ = c.Fprintln(pp.out(), "All done today. 🎉")
	}
}

// MonthProgress prints the month completion bar and fully-done days.
func (pp *PrettyPrint) MonthProgress(stats aggregate.MonthStats) {
	if stats.DaysWithTasks == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no tasks this month\n")
		return
	}
	fmt.Fprintf(pp.out(), "%s %3d%%  (%d of %d days complete)\n",
		progressBar(stats.Percent), stats.Percent, stats.DaysFullyCompleted, stats.DaysWithTasks)
}

const barCells = 20

func progressBar(percent int) string {
	filled := percent * barCells / 100
	g := color.New(color.FgHiGreen)
	f := color.New(color.Faint)
	return g.Sprint(strings.Repeat("█", filled)) + f.Sprint(strings.Repeat("░", barCells-filled))
}

func marker(it aggregate.Item) string {
	if it.Kind == record.KindNote {
		return color.New(color.FgHiBlue).Sprint("–")
	}
	if it.Completed {
		return color.New(color.FgHiGreen).Sprint("✓")
	}
	return color.New(color.FgHiWhite).Sprint("•")
}

func priorityLabel(p record.Priority) string {
	switch p {
	case record.High:
		return color.New(color.FgHiRed).Sprint("high")
	case record.Low:
		return color.New(color.FgHiGreen).Sprint("low")
	default:
		return color.New(color.FgHiYellow).Sprint("medium")
	}
}
