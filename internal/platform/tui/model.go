package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// hudRows is the screen chrome around the board: HUD, separator, help bar.
const hudRows = 3

// GameOptions configures a game model.
type GameOptions struct {
	Config  snake.Config
	Store   *storage.Store // Optional; nil disables persistence
	Logger  *log.Logger
	Player  string
	Runtime core.RuntimeConfig
	Resume  bool // Restore the player's saved session, if any
}

// status is the message panel drawn over the board.
type status struct {
	title   string
	detail  string
	visible bool
}

// GameModel is the Bubble Tea model hosting one snake engine.
type GameModel struct {
	game      *snake.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	player    string
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	keys      GameKeyMap
	help      help.Model

	status status
	labels snake.Effect
	gen    int  // Current tick chain; bumped whenever a new chain is armed
	played bool // The snake has moved, or the game was resumed

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model, seeding the high score from storage and
// restoring the saved session when requested.
func NewGameModel(opts GameOptions) GameModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Config.Seed == 0 {
		opts.Config.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:      snake.New(opts.Config),
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		store:     opts.Store,
		logger:    opts.Logger.With("player", opts.Player),
		player:    opts.Player,
		config:    opts.Runtime,
		keyMapper: NewKeyMapper(),
		keys:      DefaultGameKeyMap(),
		help:      help.New(),
		status:    status{title: "S N A K E", detail: "Press Up to start", visible: true},
	}
	m.help.Width = opts.Runtime.ScreenW
	m.labels = snake.Effect{
		Kind:  snake.EffectLabels,
		Lives: m.game.Lives(),
		Level: m.game.Level(),
	}

	if m.store != nil {
		rec, err := m.store.Player(m.player)
		if err != nil {
			m.logger.Error("cannot load player record", "error", err)
		} else {
			m.game.SetHighScore(rec.HighScore)
		}
	}

	if opts.Resume {
		m.resume()
	}
	return m
}

// resume restores the saved session into the engine. Failures leave a fresh game.
func (m *GameModel) resume() {
	if m.store == nil {
		return
	}
	data, ok, err := m.store.LoadSession(m.player)
	if err != nil {
		m.logger.Error("cannot load saved game", "error", err)
		return
	}
	if !ok {
		m.logger.Info("no saved game to resume")
		return
	}

	state, err := snake.DecodeState(data)
	if err == nil {
		err = m.game.RestoreState(state)
	}
	if err != nil {
		m.logger.Warn("discarding saved game", "error", err)
		//nolint:errcheck // Best-effort cleanup of an unusable record
		m.store.ClearSession(m.player)
		return
	}

	m.logger.Info("resumed saved game", "level", state.Level+1, "score", state.Score)
	m.played = true
	m.status = status{title: "Paused", detail: "Press Up to continue", visible: true}
	m.applyEffects(m.labelsNow())
}

// labelsNow returns a labels effect for the current engine state, used when
// the engine changed without emitting one.
func (m *GameModel) labelsNow() []snake.Effect {
	return []snake.Effect{{
		Kind:  snake.EffectLabels,
		Score: m.game.Score(),
		Lives: m.game.Lives(),
		Level: m.game.Level(),
	}}
}

// Init does not arm a timer: the engine waits in READY or PAUSED until Up.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.game.Mode() == snake.ModeRunning {
			m.applyEffects(m.game.Command(snake.CmdPause))
		}
		m.leave()
		m.backToMenu = true
		return m, tea.Quit
	}

	if m.tooSmall() {
		return m, nil
	}

	return m.command(CommandFor(action, m.game.Mode()))
}

// command sends c to the engine and arms a new tick chain when the snake
// starts moving.
func (m GameModel) command(c snake.Command) (tea.Model, tea.Cmd) {
	if c == snake.CmdNone {
		return m, nil
	}

	wasRunning := m.game.Mode() == snake.ModeRunning
	m.applyEffects(m.game.Command(c))

	if !wasRunning && m.game.Mode() == snake.ModeRunning {
		m.gen++
		return m, tickCmd(m.game.MoveDelay(), m.gen)
	}
	return m, nil
}

// handleTick advances the engine. Ticks from an older chain, or arriving
// after the game stopped, are dropped without re-arming.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.game.Mode() != snake.ModeRunning {
		return m, nil
	}

	m.applyEffects(m.game.Tick())

	if m.game.Mode() != snake.ModeRunning {
		return m, nil
	}
	return m, tickCmd(m.game.MoveDelay(), m.gen)
}

// handleResize processes window resize events. A board that no longer fits
// pauses the game.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if m.tooSmall() && m.game.Mode() == snake.ModeRunning {
		m.applyEffects(m.game.Command(snake.CmdPause))
	}
	return m, nil
}

func (m GameModel) tooSmall() bool {
	return !m.config.Fits(m.game.Width(), m.game.Height(), hudRows)
}

// applyEffects carries out the side effects requested by the engine.
func (m *GameModel) applyEffects(effects []snake.Effect) {
	for _, e := range effects {
		switch e.Kind {
		case snake.EffectMode:
			if m.logger.GetLevel() <= log.DebugLevel {
				m.logger.Debug("mode change", "from", e.From, "to", e.To, "state", m.game.DebugState())
			}
			if e.To == snake.ModeRunning {
				m.played = true
			}
			if e.To == snake.ModeGameOver {
				m.clearSession()
			}
		case snake.EffectStatus:
			m.status = status{title: e.Title, detail: e.Detail, visible: true}
		case snake.EffectHideStatus:
			m.status.visible = false
		case snake.EffectLabels:
			m.labels = e
		case snake.EffectSaveHighScore:
			m.saveHighScore(e.Score, e.Speed)
		case snake.EffectRecordGame:
			m.recordGame(e.Score, e.Level)
		}
	}
}

func (m *GameModel) saveHighScore(score, speed int) {
	if m.store == nil {
		return
	}
	raised, err := m.store.SaveHighScore(m.player, score, speed)
	if err != nil {
		m.logger.Error("cannot save high score", "score", score, "error", err)
		return
	}
	if raised {
		m.logger.Info("new high score", "score", score, "speed", speed)
	}
}

func (m *GameModel) recordGame(score, level int) {
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(m.player, score, level); err != nil {
		m.logger.Error("cannot record game", "score", score, "error", err)
	}
}

// leave persists an unfinished game so it can be resumed and forgets one
// that ended. A game that never started keeps any older save.
func (m *GameModel) leave() {
	if m.store == nil || !m.played {
		return
	}
	switch m.game.Mode() {
	case snake.ModeRunning, snake.ModePaused:
	default:
		m.clearSession()
		return
	}

	data, err := snake.EncodeState(m.game.SaveState())
	if err != nil {
		m.logger.Error("cannot encode game", "error", err)
		return
	}
	if err := m.store.SaveSession(m.player, data); err != nil {
		m.logger.Error("cannot save game", "error", err)
		return
	}
	m.logger.Debug("saved game", "bytes", len(data))
}

func (m *GameModel) clearSession() {
	if m.store == nil {
		return
	}
	if err := m.store.ClearSession(m.player); err != nil {
		m.logger.Error("cannot clear saved game", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	if m.tooSmall() {
		m.screen.DrawPanel(m.screen.Bounds().CenteredIn(30, 4),
			"Window too small",
			fmt.Sprintf("need %dx%d", m.game.Width(), m.game.Height()+hudRows),
			core.ColorBrightYellow)
		return RenderScreen(m.screen)
	}

	m.renderHUD()

	board := core.NewRect((m.config.ScreenW-m.game.Width())/2, 2, m.game.Width(), m.game.Height())
	m.game.Render(screenSink{screen: m.screen, x0: board.X, y0: board.Y})

	if m.status.visible {
		w := max(lipgloss.Width(m.status.title), lipgloss.Width(m.status.detail)) + 4
		m.screen.DrawPanel(board.CenteredIn(min(w, board.W), 4), m.status.title, m.status.detail, core.ColorBrightYellow)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// renderHUD draws the counters and a separator across the top two rows.
func (m GameModel) renderHUD() {
	name := "?"
	if level := snake.GetLevel(m.labels.Level); level != nil {
		name = level.Name
	}
	hud := fmt.Sprintf(" Snake - Level %d/%d %s  Score: %d  Lives: %d  Best: %d",
		m.labels.Level+1, snake.LevelCount(), name, m.labels.Score, m.labels.Lives, m.game.HighScore())
	m.screen.DrawText(0, 0, hud, core.ColorBrightWhite)

	for x := range m.screen.Width() {
		m.screen.SetColored(x, 1, '─', core.ColorGray)
	}
}

// Game returns the hosted engine.
func (m GameModel) Game() *snake.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
// Returns true if the player quit rather than going back to the menu.
func Run(opts GameOptions) (quit bool, err error) {
	p := tea.NewProgram(
		NewGameModel(opts),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return true, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return true, nil
	}
	return m.IsQuitting(), nil
}
