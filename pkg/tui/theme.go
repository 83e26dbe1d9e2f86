// Package tui hosts the Bubble Tea program for the interactive journal.
package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	title    lipgloss.Style
	header   lipgloss.Style
	faint    lipgloss.Style
	today    lipgloss.Style
	allDone  lipgloss.Style
	note     lipgloss.Style
	done     lipgloss.Style
	high     lipgloss.Style
	medium   lipgloss.Style
	low      lipgloss.Style
	selected lipgloss.Style
	panel    lipgloss.Style
	modal    lipgloss.Style
	status   lipgloss.Style
	praise   lipgloss.Style
	barFill  lipgloss.Style
	barRest  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")),
		faint:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		today:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")).Underline(true),
		allDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		note:     lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		done:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Strikethrough(true),
		high:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		medium:   lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		low:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		selected: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		praise:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		barFill: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		barRest: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (t theme) priority(name string) lipgloss.Style {
	switch name {
	case "high":
		return t.high
	case "low":
		return t.low
	default:
		return t.medium
	}
}
