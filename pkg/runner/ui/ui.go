package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kaidooo2024/momentum.day/pkg/assist"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
	"github.com/Kaidooo2024/momentum.day/pkg/tui"
)

type UI struct {
	Store     *store.RecordStore
	Assistant *assist.Assistant
}

func (u *UI) Do(_ context.Context) error {
	model := tui.New(u.Store, u.Assistant)
	p := tea.NewProgram(model, tea.WithAltScreen())

	u.Store.SetStatus(func(msg string) {
		p.Send(tui.StatusMessage(msg))
	})

	_, err := p.Run()
	return err
}
