package snake

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// initialLength is the length of a freshly spawned snake.
const initialLength = 6

// minMoveDelay bounds the speed-up so the tick interval never reaches zero.
const minMoveDelay = time.Millisecond

// Mode represents the game mode.
type Mode string

const (
	ModeReady    Mode = "ready"
	ModeRunning  Mode = "running"
	ModePaused   Mode = "paused"
	ModeLose     Mode = "lose"
	ModeWin      Mode = "win"
	ModeGameOver Mode = "game_over"
)

// Command is a player input.
type Command int

const (
	CmdNone Command = iota
	CmdStart
	CmdPause
	CmdTurnLeft  // 90° relative to the current heading
	CmdTurnRight // 90° relative to the current heading
	CmdNorth
	CmdEast
	CmdSouth
	CmdWest
)

// Config contains the parameters of a game session.
type Config struct {
	Width            int
	Height           int
	Lives            int
	SpeedUpFactor    float64
	StartApples      int
	MaxSpawnAttempts int
	StartLevel       int             // 0-indexed
	MoveDelays       []time.Duration // Per-level overrides; zero keeps the built-in delay
	Seed             int64
}

// DefaultConfig returns a Config built from the default YAML configuration.
func DefaultConfig() Config {
	return ConfigFrom(config.DefaultSnakeConfig(), 0)
}

// ConfigFrom converts loaded configuration into engine parameters.
func ConfigFrom(c config.SnakeConfig, seed int64) Config {
	delays := make([]time.Duration, len(c.Levels))
	for i, l := range c.Levels {
		delays[i] = time.Duration(l.MoveDelayMs) * time.Millisecond
	}
	start := 0
	if c.Gameplay.StartLevel > 0 {
		start = c.Gameplay.StartLevel - 1
	}
	return Config{
		Width:            c.Grid.Width,
		Height:           c.Grid.Height,
		Lives:            c.Gameplay.Lives,
		SpeedUpFactor:    c.Gameplay.SpeedUpFactor,
		StartApples:      c.Gameplay.StartApples,
		MaxSpawnAttempts: c.Gameplay.MaxSpawnAttempts,
		StartLevel:       start,
		MoveDelays:       delays,
		Seed:             seed,
	}
}

// Game is the snake engine. It owns all game state; the host reads it
// through accessors and changes it only through Command, Tick and
// RestoreState.
type Game struct {
	cfg     Config
	rng     *rand.Rand
	walls   *WallMap
	body    *Body
	apples  *AppleSet
	spawner *Spawner

	mode      Mode
	direction Direction
	nextDir   Direction // Latched into direction at the start of a tick
	tick      uint64
	score     int
	lives     int
	level     int // 0-indexed
	moveDelay time.Duration
	highScore int
}

// New creates a game in READY mode.
func New(cfg Config) *Game {
	if cfg.Lives <= 0 {
		cfg.Lives = 3
	}
	if cfg.SpeedUpFactor <= 0 {
		cfg.SpeedUpFactor = 0.9
	}
	if cfg.StartLevel < 0 || cfg.StartLevel >= LevelCount() {
		cfg.StartLevel = 0
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	g := &Game{
		cfg:     cfg,
		rng:     rng,
		walls:   NewWallMap(cfg.Width, cfg.Height),
		apples:  NewAppleSet(),
		spawner: NewSpawner(rng, cfg.MaxSpawnAttempts),
		mode:    ModeReady,
		lives:   cfg.Lives,
		level:   cfg.StartLevel,
	}
	g.placeSnake()
	g.walls.Build(g.currentLevel())
	g.moveDelay = g.levelDelay(g.level)
	return g
}

// initNewGame resets the board for the current level.
func (g *Game) initNewGame() {
	g.placeSnake()
	g.apples.Clear()
	g.walls.Build(g.currentLevel())
	g.moveDelay = g.levelDelay(g.level)

	for range g.cfg.StartApples {
		if _, err := g.spawner.Spawn(g.body, g.walls, g.apples); err != nil {
			break
		}
	}
}

// placeSnake lays an eastbound trail on the row just above mid-height,
// tail on the left border.
func (g *Game) placeSnake() {
	row := g.cfg.Height/2 - 1
	cells := make([]Cell, 0, initialLength)
	for x := initialLength - 1; x >= 0; x-- {
		cells = append(cells, Cell{X: x, Y: row})
	}
	g.body = NewBody(cells...)
	g.direction = DirEast
	g.nextDir = DirEast
}

func (g *Game) currentLevel() Level {
	return Levels[g.level]
}

// levelDelay returns the move interval a level starts with.
func (g *Game) levelDelay(i int) time.Duration {
	if i < len(g.cfg.MoveDelays) && g.cfg.MoveDelays[i] > 0 {
		return g.cfg.MoveDelays[i]
	}
	return Levels[i].MoveDelay
}

// Command applies a player input. Turns are only accepted while running;
// a turn that would reverse the snake is ignored.
func (g *Game) Command(c Command) []Effect {
	switch c {
	case CmdStart:
		return g.fire(EventStart)
	case CmdPause:
		return g.fire(EventPause)
	}

	if g.mode != ModeRunning {
		return nil
	}

	switch c {
	case CmdTurnLeft:
		g.nextDir = g.direction.Left()
	case CmdTurnRight:
		g.nextDir = g.direction.Right()
	case CmdNorth:
		g.steer(DirNorth)
	case CmdEast:
		g.steer(DirEast)
	case CmdSouth:
		g.steer(DirSouth)
	case CmdWest:
		g.steer(DirWest)
	}
	return nil
}

// steer buffers an absolute heading unless it reverses the current one.
func (g *Game) steer(d Direction) {
	if d == g.direction.Opposite() {
		return
	}
	g.nextDir = d
}

// Tick advances the simulation by one cell. It is a no-op unless running.
// A fault inside the tick ends the life instead of escaping to the host.
func (g *Game) Tick() (effects []Effect) {
	if g.mode != ModeRunning {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			if g.mode != ModeRunning {
				effects = nil
				return
			}
			g.lives--
			effects = g.fire(EventCrash)
		}
	}()

	return g.step()
}

// step runs the ordered checks of one tick: exit, wall, self, apple.
func (g *Game) step() []Effect {
	g.tick++
	g.direction = g.nextDir

	newHead := g.body.Head().Step(g.direction)

	// The exit gate sits on the border, so it must be checked before walls.
	if g.walls.IsExit(newHead) {
		g.score++
		return g.fire(EventWin)
	}

	if g.walls.IsWall(newHead) || g.body.Contains(newHead) {
		g.lives--
		return g.fire(EventCrash)
	}

	var effects []Effect
	grow := g.apples.Remove(newHead)
	if grow {
		g.score++
		g.moveDelay = max(time.Duration(float64(g.moveDelay)*g.cfg.SpeedUpFactor), minMoveDelay)
		effects = append(effects, g.labels())
	}

	g.body.Advance(newHead, grow)

	// Spawn after advancing so the replacement never lands under the new head.
	if grow {
		//nolint:errcheck // A full board simply skips the replacement apple
		g.spawner.Spawn(g.body, g.walls, g.apples)
	}

	g.walls.Build(g.currentLevel())
	return effects
}

// Mode returns the current mode.
func (g *Game) Mode() Mode { return g.mode }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Level returns the current level (0-indexed).
func (g *Game) Level() int { return g.level }

// LevelName returns the display name of the current level.
func (g *Game) LevelName() string { return g.currentLevel().Name }

// HighScore returns the best score known to this session.
func (g *Game) HighScore() int { return g.highScore }

// SetHighScore seeds the high score from storage. Lower values are ignored.
func (g *Game) SetHighScore(score int) {
	if score > g.highScore {
		g.highScore = score
	}
}

// MoveDelay returns the interval the host should wait before the next tick.
func (g *Game) MoveDelay() time.Duration { return g.moveDelay }

// Direction returns the latched heading.
func (g *Game) Direction() Direction { return g.direction }

// Width returns the grid width.
func (g *Game) Width() int { return g.cfg.Width }

// Height returns the grid height.
func (g *Game) Height() int { return g.cfg.Height }

// labels returns the counters for display.
func (g *Game) labels() Effect {
	return Effect{Kind: EffectLabels, Score: g.score, Lives: g.lives, Level: g.level}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tick: %d, Mode: %s, Score: %d, Lives: %d, Level: %d\n",
		g.tick, g.mode, g.score, g.lives, g.level+1))
	b.WriteString(fmt.Sprintf("Snake len: %d, Direction: %s, Next: %s\n", g.body.Len(), g.direction, g.nextDir))
	b.WriteString(fmt.Sprintf("Head: %s, Apples: %v, Delay: %s\n", g.body.Head(), g.apples.Cells(), g.moveDelay))
	return b.String()
}
