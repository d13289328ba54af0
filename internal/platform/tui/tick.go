// Package tui provides the Bubble Tea integration for the comet game.
// It handles the terminal UI loop, input mapping, screens and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the render rate used when none is configured.
const DefaultFPS = 60

// TickMsg is sent to trigger a frame: the game advances by the wall time
// since the previous frame and the screen is redrawn.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
