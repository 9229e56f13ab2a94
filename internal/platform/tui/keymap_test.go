package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		want     core.Action
		wantQuit bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"vim down", runeKey('j'), core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"turn left", runeKey('z'), core.ActionTurnLeft, false},
		{"turn right", runeKey('.'), core.ActionTurnRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('y'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, quit := km.MapKey(tc.msg)
			if got != tc.want || quit != tc.wantQuit {
				t.Errorf("MapKey(%q) = %v/%v, want %v/%v", tc.msg.String(), got, quit, tc.want, tc.wantQuit)
			}
		})
	}
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		action core.Action
		mode   snake.Mode
		want   snake.Command
	}{
		{core.ActionUp, snake.ModeReady, snake.CmdStart},
		{core.ActionUp, snake.ModePaused, snake.CmdStart},
		{core.ActionUp, snake.ModeLose, snake.CmdStart},
		{core.ActionUp, snake.ModeRunning, snake.CmdNorth},
		{core.ActionConfirm, snake.ModeWin, snake.CmdStart},
		{core.ActionConfirm, snake.ModeRunning, snake.CmdNone},
		{core.ActionPause, snake.ModeRunning, snake.CmdPause},
		{core.ActionPause, snake.ModePaused, snake.CmdStart},
		{core.ActionPause, snake.ModeReady, snake.CmdNone},
		{core.ActionDown, snake.ModeRunning, snake.CmdSouth},
		{core.ActionLeft, snake.ModeRunning, snake.CmdWest},
		{core.ActionRight, snake.ModeRunning, snake.CmdEast},
		{core.ActionTurnLeft, snake.ModeRunning, snake.CmdTurnLeft},
		{core.ActionTurnRight, snake.ModeRunning, snake.CmdTurnRight},
		{core.ActionNone, snake.ModeRunning, snake.CmdNone},
	}

	for _, tc := range tests {
		t.Run(tc.action.String()+"/"+string(tc.mode), func(t *testing.T) {
			if got := CommandFor(tc.action, tc.mode); got != tc.want {
				t.Errorf("CommandFor(%v, %s) = %v, want %v", tc.action, tc.mode, got, tc.want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}
