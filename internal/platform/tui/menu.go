package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// MenuChoice is what the player picked from the start menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuNewGame
	MenuResume
	MenuScores
	MenuQuit
)

// menuItem is one line of the start menu.
type menuItem struct {
	title  string
	choice MenuChoice
	levels bool // Opens the level picker instead of choosing directly
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Level  int // 1-indexed starting level for MenuNewGame, 0 = first
	Config core.RuntimeConfig
}

// MenuModel is the start menu: new game, resume, level select, scores.
type MenuModel struct {
	items         []menuItem
	cursor        int
	levelCursor   int
	inLevelSelect bool
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	result        MenuResult
	done          bool
}

// NewMenuModel creates a start menu. The resume entry is offered only when
// player has a saved game.
func NewMenuModel(store *storage.Store, player string, cfg core.RuntimeConfig) MenuModel {
	items := []menuItem{{title: "New game", choice: MenuNewGame}}
	if store != nil {
		if _, ok, err := store.LoadSession(player); err == nil && ok {
			items = append(items, menuItem{title: "Resume saved game", choice: MenuResume})
		}
	}
	items = append(items,
		menuItem{title: "Select level...", choice: MenuNewGame, levels: true},
		menuItem{title: "High scores", choice: MenuScores},
		menuItem{title: "Quit", choice: MenuQuit},
	)

	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleMenuKey(action)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMenuKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		return m.finish(MenuResult{Choice: MenuQuit})
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)
	case MenuActionScoreboard:
		return m.finish(MenuResult{Choice: MenuScores})
	case MenuActionSelect:
		item := m.items[m.cursor]
		if item.levels {
			m.inLevelSelect = true
			m.levelCursor = 0
			return m, nil
		}
		return m.finish(MenuResult{Choice: item.choice})
	}
	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		return m.finish(MenuResult{Choice: MenuQuit})
	case MenuActionUp:
		m.levelCursor = core.Clamp(m.levelCursor-1, 0, snake.LevelCount()-1)
	case MenuActionDown:
		m.levelCursor = core.Clamp(m.levelCursor+1, 0, snake.LevelCount()-1)
	case MenuActionSelect:
		return m.finish(MenuResult{Choice: MenuNewGame, Level: m.levelCursor + 1})
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// finish records the result and ends a standalone menu program.
func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	r.Config = m.config
	m.result = r
	m.done = true
	return m, tea.Quit
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}

	lines := make([]string, len(m.items))
	for i, item := range m.items {
		lines[i] = item.title
	}
	return m.viewList("S N A K E", lines, m.cursor,
		"Enter: Select  |  Tab: Scores  |  Q: Quit")
}

func (m MenuModel) viewLevelSelect() string {
	lines := make([]string, snake.LevelCount())
	for i, level := range snake.Levels {
		lines[i] = fmt.Sprintf("%d. %-8s %dms", i+1, level.Name, level.MoveDelay.Milliseconds())
	}
	return m.viewList("SELECT LEVEL", lines, m.levelCursor,
		"Enter: Start  |  Esc: Back  |  Q: Quit")
}

func (m MenuModel) viewList(title string, lines []string, cursor int, hint string) string {
	var b strings.Builder
	width := m.config.ScreenW

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(title), width))
	b.WriteString("\n\n")

	for i, line := range lines {
		if i == cursor {
			line = menuCursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render(hint), width))
	b.WriteString("\n")
	return b.String()
}

// Result returns the player's choice and whether one was made.
func (m MenuModel) Result() (MenuResult, bool) {
	return m.result, m.done
}

// RunMenu runs the start menu as its own program.
func RunMenu(store *storage.Store, player string, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, player, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Choice: MenuQuit, Config: cfg}, nil
	}
	if r, done := m.Result(); done {
		return r, nil
	}
	return MenuResult{Choice: MenuQuit, Config: m.config}, nil
}
