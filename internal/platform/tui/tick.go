// Package tui provides the Bubble Tea host for the snake game.
// It handles the terminal UI loop, input mapping, persistence effects and
// the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the game model to advance the engine by one tick.
// Gen identifies the timer chain that produced it; stale chains are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd arms a single timer for the next move. The model re-arms it after
// every tick while the game is running.
func tickCmd(delay time.Duration, gen int) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
