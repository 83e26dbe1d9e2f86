package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kaidooo2024/momentum.day/pkg/assist"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
	"github.com/Kaidooo2024/momentum.day/pkg/view"
)

type mode int

const (
	modeNormal mode = iota
	modeInsertNote
	modeInsertTask
	modeEdit
	modeConfirmDelete
	modeChat
)

type chatLine struct {
	fromUser bool
	text     string
}

// Model drives the whole interactive session. All store and sync calls
// happen on the update loop; slow work (remote pushes, the chat
// collaborator) runs in commands and reports back as messages.
type Model struct {
	store     *store.RecordStore
	sync      *view.Sync
	cache     *regionCache
	assistant *assist.Assistant
	styles    theme

	mode      mode
	selection int
	input     textinput.Model
	spin      spinner.Model
	busy      bool

	chat []chatLine

	status      string
	celebration string

	width, height int
}

type mutationMsg struct{ err error }

type chatReplyMsg struct {
	reply string
	err   error
}

type statusMsg string

// StatusMessage wraps a transient status line for Program.Send, so the
// store's sync reports can reach the update loop from any goroutine.
func StatusMessage(s string) tea.Msg { return statusMsg(s) }

type clearStatusMsg struct{}

type clearCelebrationMsg struct{}

// New assembles the program model. The assistant may be nil when no API
// key is configured; the chat pane then explains how to enable it.
func New(s *store.RecordStore, assistant *assist.Assistant) *Model {
	styles := defaultTheme()
	cache := newRegionCache(styles)

	input := textinput.New()
	input.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &Model{
		store:     s,
		assistant: assistant,
		cache:     cache,
		styles:    styles,
		input:     input,
		spin:      spin,
	}
	m.sync = view.NewSync(s, cache, view.WithCelebrator(cache.queueCelebration))
	return m
}

func (m *Model) Init() tea.Cmd {
	m.sync.Refresh()
	return nil
}

// mutate runs a store mutation off the update loop so a slow remote
// push never blocks the UI, then reports back for the redraw.
func (m *Model) mutate(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{err: fn(context.Background())}
	}
}

func (m *Model) ask(message string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.assistant.Chat(context.Background(), message)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func clearCelebrationAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearCelebrationMsg{} })
}

// selectedItem returns the item under the cursor, if any.
func (m *Model) selectedItem() (id string, kind record.Kind, ok bool) {
	items := m.cache.snap.DayItems
	if m.selection < 0 || m.selection >= len(items) {
		return "", "", false
	}
	it := items[m.selection]
	return it.ID, it.Kind, true
}

func (m *Model) clampSelection() {
	n := len(m.cache.snap.DayItems)
	if n == 0 {
		m.selection = 0
		return
	}
	if m.selection >= n {
		m.selection = n - 1
	}
	if m.selection < 0 {
		m.selection = 0
	}
}
