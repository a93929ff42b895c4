package tui

import (
	"fmt"
	"os"

	"ccswitch/config"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI on the given store
func Run(cm *config.Manager) error {
	if !IsTerminal(os.Stdin) || !IsTerminal(os.Stdout) {
		return fmt.Errorf("ccswitch TUI requires a terminal. Use subcommands for non-interactive mode")
	}

	p := tea.NewProgram(NewModel(cm), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(f)
}
