package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "z", ",":
		return core.ActionTurnLeft, false
	case "x", ".":
		return core.ActionTurnRight, false
	case "enter":
		return core.ActionConfirm, false
	case "p", " ":
		return core.ActionPause, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// CommandFor converts an action to an engine command for the given mode.
// Up doubles as start/resume whenever the snake is not moving.
func CommandFor(a core.Action, mode snake.Mode) snake.Command {
	running := mode == snake.ModeRunning

	switch a {
	case core.ActionUp:
		if running {
			return snake.CmdNorth
		}
		return snake.CmdStart
	case core.ActionConfirm:
		if !running {
			return snake.CmdStart
		}
	case core.ActionPause:
		if running {
			return snake.CmdPause
		}
		if mode == snake.ModePaused {
			return snake.CmdStart
		}
	case core.ActionDown:
		return snake.CmdSouth
	case core.ActionLeft:
		return snake.CmdWest
	case core.ActionRight:
		return snake.CmdEast
	case core.ActionTurnLeft:
		return snake.CmdTurnLeft
	case core.ActionTurnRight:
		return snake.CmdTurnRight
	}
	return snake.CmdNone
}

// GameKeyMap describes the in-game bindings for the help bar.
type GameKeyMap struct {
	Move  key.Binding
	Turn  key.Binding
	Pause key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Turn, k.Pause, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Turn},
		{k.Pause, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap mirrors the bindings handled by MapKey.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"),
			key.WithHelp("arrows/wasd", "steer, up starts"),
		),
		Turn: key.NewBinding(
			key.WithKeys("z", "x", ",", "."),
			key.WithHelp("z/x", "turn left/right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
