package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const chatHistory = 8

func (m *Model) View() string {
	t := m.styles

	title := t.title.Render("Momentum · " + m.sync.Month().Format("January 2006"))
	if m.store.Signed() {
		title += t.faint.Render("  signed in as " + m.store.User())
	}

	left := t.panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.cache.monthGrid, "", m.cache.monthProgress))
	right := t.panel.Render(m.cache.renderDayPanel(m.selection))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	sections := []string{title, body}

	if modal := m.cache.renderModal(); modal != "" {
		sections = append(sections, modal)
	}
	if m.mode == modeChat || len(m.chat) > 0 {
		sections = append(sections, m.chatPane())
	}
	if m.mode == modeInsertNote || m.mode == modeInsertTask || m.mode == modeEdit {
		sections = append(sections, m.input.View())
	}

	sections = append(sections, m.statusLine())
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) chatPane() string {
	t := m.styles
	var lines []string
	history := m.chat
	if len(history) > chatHistory {
		history = history[len(history)-chatHistory:]
	}
	for _, l := range history {
		if l.fromUser {
			lines = append(lines, t.title.Render("you ")+l.text)
		} else {
			lines = append(lines, t.note.Render("ai  ")+l.text)
		}
	}
	if m.busy {
		lines = append(lines, m.spin.View()+t.faint.Render(" thinking"))
	}
	if m.mode == modeChat {
		lines = append(lines, m.input.View())
	}
	return t.panel.Render(strings.Join(lines, "\n"))
}

func (m *Model) statusLine() string {
	t := m.styles
	switch {
	case m.celebration != "":
		return t.praise.Render(m.celebration)
	case m.status != "":
		return t.status.Render(m.status)
	case m.mode == modeConfirmDelete:
		return t.status.Render("delete selected record? y/n")
	case m.mode == modeChat:
		return t.status.Render("enter send · esc back")
	case m.mode != modeNormal:
		return t.status.Render("enter save · esc cancel")
	default:
		return t.status.Render("←/→ day · [/] month · t today · ↑/↓ select · space done · a task · n note · e edit · p priority · d delete · o details · c chat · q quit")
	}
}
