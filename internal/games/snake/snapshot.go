package snake

import "time"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Level     int // Current level (1-indexed for display)
	Mode      Mode
	Score     int
	Lives     int
	HighScore int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	NextDir   Direction
	Apples    []Cell
	MoveDelay time.Duration
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	head := g.body.Head()
	return Snapshot{
		Tick:      g.tick,
		Level:     g.level + 1,
		Mode:      g.mode,
		Score:     g.score,
		Lives:     g.lives,
		HighScore: g.highScore,
		SnakeLen:  g.body.Len(),
		HeadX:     head.X,
		HeadY:     head.Y,
		Dir:       g.direction,
		NextDir:   g.nextDir,
		Apples:    g.apples.Cells(),
		MoveDelay: g.moveDelay,
	}
}
