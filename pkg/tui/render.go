package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/view"
)

const gridCellWidth = 12

// regionCache receives scoped renders and keeps both the rendered month
// regions and the latest snapshot. The daily regions render at view time
// because the selection cursor lives in the model, not the snapshot.
type regionCache struct {
	styles theme

	monthGrid     string
	monthProgress string
	snap          view.Snapshot

	// celebrations queued by the sync layer, drained by the update loop.
	celebrated []view.Scope
}

func newRegionCache(styles theme) *regionCache {
	return &regionCache{styles: styles}
}

var _ view.Renderer = (*regionCache)(nil)

func (c *regionCache) Render(region view.Region, snap view.Snapshot) {
	c.snap = snap
	switch region {
	case view.MonthGrid:
		c.monthGrid = c.renderGrid(snap)
	case view.MonthProgress:
		c.monthProgress = c.renderBar(snap.MonthStats.Percent,
			fmt.Sprintf("%d of %d days complete", snap.MonthStats.DaysFullyCompleted, snap.MonthStats.DaysWithTasks),
			snap.MonthStats.DaysWithTasks == 0)
	}
}

func (c *regionCache) queueCelebration(scope view.Scope) {
	c.celebrated = append(c.celebrated, scope)
}

func (c *regionCache) drainCelebrations() []view.Scope {
	out := c.celebrated
	c.celebrated = nil
	return out
}

func (c *regionCache) renderGrid(snap view.Snapshot) string {
	t := c.styles
	var lines []string

	var header []string
	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		header = append(header, padCell(t.header.Render(wd), len(wd)))
	}
	lines = append(lines, strings.Join(header, ""))

	for row := 0; row < len(snap.Grid); row += 7 {
		week := snap.Grid[row : row+7]
		height := weekHeight(week)
		for line := 0; line < height; line++ {
			var cells []string
			for _, cell := range week {
				cells = append(cells, c.cellLine(cell, line))
			}
			lines = append(lines, strings.Join(cells, ""))
		}
	}
	return strings.Join(lines, "\n")
}

func weekHeight(week []aggregate.Cell) int {
	h := 1
	for _, c := range week {
		n := 1 + len(c.Previews)
		if c.Overflow > 0 {
			n++
		}
		if n > h {
			h = n
		}
	}
	return h
}

func (c *regionCache) cellLine(cell aggregate.Cell, line int) string {
	t := c.styles
	if line == 0 {
		n := fmt.Sprintf("%2d", cell.Date.Time().Day())
		visible := 2
		var rendered string
		switch {
		case !cell.InMonth:
			rendered = t.faint.Render(n)
		case cell.Today:
			rendered = t.today.Render(n)
		case cell.AllDone:
			rendered = t.allDone.Render(n + " ✓")
			visible = 4
		default:
			rendered = t.title.Render(n)
		}
		return padCell(rendered, visible)
	}
	i := line - 1
	if i < len(cell.Previews) {
		p := cell.Previews[i]
		mark := c.previewMark(p)
		text := " " + mark + " " + p.Text
		return padCell(text, 3+len([]rune(p.Text)))
	}
	if i == len(cell.Previews) && cell.Overflow > 0 {
		text := fmt.Sprintf(" +%d", cell.Overflow)
		return padCell(t.faint.Render(text), len(text))
	}
	return strings.Repeat(" ", gridCellWidth)
}

func (c *regionCache) previewMark(p aggregate.Preview) string {
	t := c.styles
	if p.Kind == record.KindNote {
		return t.note.Render("–")
	}
	if p.Completed {
		return t.allDone.Render("✓")
	}
	return t.priority(string(p.Priority)).Render("•")
}

const barWidth = 24

func (c *regionCache) renderBar(percent int, detail string, empty bool) string {
	t := c.styles
	if empty {
		return t.faint.Render("no tasks yet")
	}
	filled := percent * barWidth / 100
	bar := t.barFill.Render(strings.Repeat("█", filled)) +
		t.barRest.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%  %s", bar, percent, t.faint.Render(detail))
}

// padCell right-fills to the grid cell width using the visible rune
// count, since styled text defeats lipgloss.Width on some terminals.
func padCell(s string, visible int) string {
	if visible >= gridCellWidth {
		return s
	}
	return s + strings.Repeat(" ", gridCellWidth-visible)
}

// renderItems draws a day's item list with an optional selection cursor
// at index sel (-1 for none) and the in-progress edit marked.
func (c *regionCache) renderItems(items []aggregate.Item, sel int, editingID string) string {
	t := c.styles
	if len(items) == 0 {
		return t.faint.Render("nothing recorded")
	}
	var lines []string
	for i, it := range items {
		var mark, text string
		switch {
		case it.Kind == record.KindNote:
			mark = t.note.Render("–")
			text = it.Text
		case it.Completed:
			mark = t.allDone.Render("✓")
			text = t.done.Render(it.Text)
		default:
			mark = t.priority(string(it.Priority)).Render("•")
			text = it.Text
		}
		line := fmt.Sprintf("%s %s %s", mark, t.faint.Render(it.CreatedAt), text)
		if it.ID == editingID {
			line += t.faint.Render("  (editing)")
		}
		if i == sel {
			line = t.selected.Render(">") + " " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (c *regionCache) renderDayPanel(sel int) string {
	t := c.styles
	title := t.title.Render(c.snap.Day.Time().Format("Monday, January 2"))
	items := c.renderItems(c.snap.DayItems, sel, c.snap.EditingID)
	bar := c.renderBar(c.snap.DayStats.Percent,
		fmt.Sprintf("%d/%d done", c.snap.DayStats.CompletedTasks, c.snap.DayStats.TotalTasks),
		c.snap.DayStats.TotalTasks == 0)
	return lipgloss.JoinVertical(lipgloss.Left, title, "", items, "", bar)
}

func (c *regionCache) renderModal() string {
	if !c.snap.ModalOpen {
		return ""
	}
	t := c.styles
	title := t.title.Render(c.snap.ModalDay.Time().Format("Monday, January 2"))
	items := c.renderItems(c.snap.ModalItems, -1, "")
	return t.modal.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", items))
}
