// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the feedwire player
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Feedwire-Audio/feedwire-go/internal/engine"
)

// Run starts the TUI over the given engine and blocks until it quits.
func Run(eng *engine.Engine, ports []string) error {
	p := tea.NewProgram(NewModel(eng, ports), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
