package tui

import (
	"helproom/cmd/helproom/ui"
	"helproom/internal/logging"
	"helproom/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the full-screen interface over an opened store and blocks
// until the user quits.
func Run(st *store.Store, theme ui.Theme) error {
	logging.UI("Starting interactive interface")
	p := tea.NewProgram(New(st, theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
