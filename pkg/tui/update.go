package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
	"github.com/Kaidooo2024/momentum.day/pkg/view"
)

const (
	statusLinger      = 4 * time.Second
	celebrationLinger = 5 * time.Second
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case mutationMsg:
		m.busy = false
		m.sync.OnMutation()
		m.clampSelection()
		var cmds []tea.Cmd
		if msg.err != nil {
			m.status = msg.err.Error()
			cmds = append(cmds, clearStatusAfter(statusLinger))
		}
		cmds = append(cmds, m.drainCelebrations()...)
		return m, tea.Batch(cmds...)

	case chatReplyMsg:
		m.busy = false
		m.chat = append(m.chat, chatLine{text: msg.reply})
		m.sync.Refresh()
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, clearStatusAfter(statusLinger)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case clearCelebrationMsg:
		m.celebration = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeNormal:
		return m.handleNormalKey(msg)
	case modeInsertNote, modeInsertTask, modeEdit:
		return m.handleInputKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	case modeChat:
		return m.handleChatKey(msg)
	}
	return m, nil
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		m.sync.PrevDay()
		m.clampSelection()
	case "right", "l":
		m.sync.NextDay()
		m.clampSelection()
	case "[":
		m.sync.PrevMonth()
	case "]":
		m.sync.NextMonth()
	case "t":
		m.sync.GoToDay(record.Today())
		m.clampSelection()

	case "up", "k":
		m.selection--
		m.clampSelection()
	case "down", "j":
		m.selection++
		m.clampSelection()

	case " ", "x":
		if id, kind, ok := m.selectedItem(); ok && kind == record.KindTask {
			m.busy = true
			return m, tea.Batch(m.spin.Tick, m.mutate(func(ctx context.Context) error {
				return m.store.ToggleCompleted(ctx, id)
			}))
		}

	case "p":
		if id, kind, ok := m.selectedItem(); ok && kind == record.KindTask {
			next := nextPriority(m.cache.snap.DayItems[m.selection].Priority)
			return m, m.mutate(func(ctx context.Context) error {
				return m.store.Update(ctx, id, store.Patch{Priority: &next})
			})
		}

	case "n":
		m.enterInput(modeInsertNote, "note for "+string(m.sync.Day()), "")
	case "a":
		m.enterInput(modeInsertTask, "task for "+string(m.sync.Day()), "")

	case "e":
		if id, kind, ok := m.selectedItem(); ok && kind == record.KindTask {
			m.sync.StartEdit(id)
			m.enterInput(modeEdit, "edit task", m.cache.snap.DayItems[m.selection].Text)
		}

	case "d":
		if _, _, ok := m.selectedItem(); ok {
			m.mode = modeConfirmDelete
		}

	case "o", "enter":
		m.sync.OpenModal(m.sync.Day())
	case "esc":
		if m.cache.snap.ModalOpen {
			m.sync.CloseModal()
		}

	case "c":
		m.mode = modeChat
		m.input.Placeholder = "ask about your schedule"
		m.input.SetValue("")
		m.input.Focus()
	}
	return m, nil
}

func (m *Model) enterInput(to mode, placeholder, value string) {
	m.mode = to
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == modeEdit {
			m.sync.StopEdit()
		}
		m.leaveInput()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		from := m.mode
		if from == modeEdit {
			m.sync.StopEdit()
		}
		m.leaveInput()
		if text == "" {
			return m, nil
		}

		day := m.sync.Day()
		switch from {
		case modeInsertNote:
			return m, m.mutate(func(ctx context.Context) error {
				_, err := m.store.Add(ctx, record.KindNote, store.Draft{Text: text, On: day})
				return err
			})
		case modeInsertTask:
			return m, m.mutate(func(ctx context.Context) error {
				_, err := m.store.Add(ctx, record.KindTask, store.Draft{Text: text, On: day})
				return err
			})
		case modeEdit:
			if id, kind, ok := m.selectedItem(); ok && kind == record.KindTask {
				return m, m.mutate(func(ctx context.Context) error {
					return m.store.Update(ctx, id, store.Patch{Text: &text})
				})
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.mode = modeNormal
		if id, _, ok := m.selectedItem(); ok {
			return m, m.mutate(func(ctx context.Context) error {
				return m.store.Remove(ctx, id)
			})
		}
	case "n", "esc":
		m.mode = modeNormal
	}
	return m, nil
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.SetValue("")
		if m.assistant == nil {
			m.chat = append(m.chat,
				chatLine{fromUser: true, text: text},
				chatLine{text: "No API key configured. Set assist.api_key to enable the collaborator."})
			return m, nil
		}
		m.chat = append(m.chat, chatLine{fromUser: true, text: text})
		m.busy = true
		return m, tea.Batch(m.spin.Tick, m.ask(text))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) drainCelebrations() []tea.Cmd {
	var cmds []tea.Cmd
	for _, scope := range m.cache.drainCelebrations() {
		switch scope {
		case view.ScopeDay:
			m.celebration = "All tasks done today. 🎉"
		case view.ScopeMonth:
			m.celebration = "Every day this month is complete. 🏆"
		}
		cmds = append(cmds, clearCelebrationAfter(celebrationLinger))
	}
	return cmds
}

func nextPriority(p record.Priority) record.Priority {
	switch p {
	case record.Low:
		return record.Medium
	case record.Medium:
		return record.High
	default:
		return record.Low
	}
}
