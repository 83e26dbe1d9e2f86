package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

const cellWidth = len("12 write...  ")

// MonthGrid prints the six-week calendar with up to three previews per
// day and an overflow count for the rest.
func (pp *PrettyPrint) MonthGrid(month time.Time, cells []aggregate.Cell) {
	gridWidth := cellWidth * 7

	tf := color.New(color.FgWhite, color.Italic)
	title := month.Format("January 2006")
	mid := (gridWidth - len(title)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), title)

	h := color.New(color.Faint)
	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		_, _ = h.Fprintf(pp.out(), "%-*s", cellWidth, wd)
	}
	fmt.Fprintln(pp.out())

	for row := 0; row < len(cells); row += 7 {
		week := cells[row : row+7]
		for line := 0; line < cellLines(week); line++ {
			for _, c := range week {
				fmt.Fprint(pp.out(), pp.cellLine(c, line))
			}
			fmt.Fprintln(pp.out())
		}
	}
	fmt.Fprintln(pp.out())
}

// cellLines is the tallest cell of the week: the day-number line plus
// previews plus an optional overflow line.
func cellLines(week []aggregate.Cell) int {
	lines := 1
	for _, c := range week {
		n := 1 + len(c.Previews)
		if c.Overflow > 0 {
			n++
		}
		if n > lines {
			lines = n
		}
	}
	return lines
}

func (pp *PrettyPrint) cellLine(c aggregate.Cell, line int) string {
	if line == 0 {
		return pad(pp.dayNumber(c), cellWidth, visibleDayNumber(c))
	}
	i := line - 1
	if i < len(c.Previews) {
		p := c.Previews[i]
		text := "  " + previewMark(p) + " " + p.Text
		return pad(text, cellWidth, len("  x ")+len([]rune(p.Text)))
	}
	if i == len(c.Previews) && c.Overflow > 0 {
		text := fmt.Sprintf("  +%d more", c.Overflow)
		return pad(color.New(color.Faint).Sprint(text), cellWidth, len(text))
	}
	return strings.Repeat(" ", cellWidth)
}

func (pp *PrettyPrint) dayNumber(c aggregate.Cell) string {
	n := fmt.Sprintf("%2d", c.Date.Time().Day())
	switch {
	case !c.InMonth:
		return color.New(color.Faint).Sprint(n)
	case c.Today:
		return color.New(color.Bold, color.FgHiCyan).Sprint(n)
	case c.AllDone:
		return color.New(color.FgHiGreen).Sprint(n + " ✓")
	default:
		return color.New(color.FgHiWhite).Sprint(n)
	}
}

func visibleDayNumber(c aggregate.Cell) int {
	if c.InMonth && c.AllDone && !c.Today {
		return 4
	}
	return 2
}

// pad right-fills to width using the visible rune count, since color
// escapes make len() useless here.
func pad(s string, width, visible int) string {
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func previewMark(p aggregate.Preview) string {
	if p.Kind == record.KindNote {
		return color.New(color.FgHiBlue).Sprint("–")
	}
	if p.Completed {
		return color.New(color.FgHiGreen).Sprint("✓")
	}
	switch p.Priority {
	case record.High:
		return color.New(color.FgHiRed).Sprint("•")
	case record.Low:
		return color.New(color.FgHiGreen).Sprint("•")
	default:
		return color.New(color.FgHiYellow).Sprint("•")
	}
}
