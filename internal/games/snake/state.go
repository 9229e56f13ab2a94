package snake

import (
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrInvalidState is wrapped by every RestoreState validation failure.
var ErrInvalidState = errors.New("snake: invalid saved state")

// SavedState is the flat record used to survive a process restart.
// Cell lists are flattened as [x1, y1, x2, y2, ...].
type SavedState struct {
	Apples        []int         `msgpack:"apples"`
	Direction     Direction     `msgpack:"direction"`
	NextDirection Direction     `msgpack:"next_direction"`
	MoveDelay     time.Duration `msgpack:"move_delay"`
	Score         int           `msgpack:"score"`
	Trail         []int         `msgpack:"trail"`
	Level         int           `msgpack:"level"`
	Lives         int           `msgpack:"lives"`
}

// SaveState captures the game so it can be restored later.
func (g *Game) SaveState() SavedState {
	return SavedState{
		Apples:        flatten(g.apples.Cells()),
		Direction:     g.direction,
		NextDirection: g.nextDir,
		MoveDelay:     g.moveDelay,
		Score:         g.score,
		Trail:         flatten(g.body.Cells()),
		Level:         g.level,
		Lives:         g.lives,
	}
}

// RestoreState replaces the game state with s and pauses the game.
// Malformed records are rejected without modifying the game.
func (g *Game) RestoreState(s SavedState) error {
	trail, err := g.unflatten("trail", s.Trail)
	if err != nil {
		return err
	}
	if len(trail) == 0 {
		return fmt.Errorf("%w: trail is empty", ErrInvalidState)
	}
	seen := make(map[Cell]bool, len(trail))
	for _, c := range trail {
		if seen[c] {
			return fmt.Errorf("%w: trail visits %s twice", ErrInvalidState, c)
		}
		seen[c] = true
	}

	if !s.Direction.Valid() {
		return fmt.Errorf("%w: direction %d", ErrInvalidState, s.Direction)
	}
	if !s.NextDirection.Valid() {
		return fmt.Errorf("%w: next direction %d", ErrInvalidState, s.NextDirection)
	}
	if s.NextDirection == s.Direction.Opposite() {
		return fmt.Errorf("%w: next direction %s reverses %s", ErrInvalidState, s.NextDirection, s.Direction)
	}
	if s.MoveDelay <= 0 {
		return fmt.Errorf("%w: move delay %s", ErrInvalidState, s.MoveDelay)
	}
	if s.Score < 0 {
		return fmt.Errorf("%w: score %d", ErrInvalidState, s.Score)
	}
	if s.Level < 0 || s.Level >= LevelCount() {
		return fmt.Errorf("%w: level %d", ErrInvalidState, s.Level)
	}
	if s.Lives <= 0 {
		return fmt.Errorf("%w: lives %d", ErrInvalidState, s.Lives)
	}

	apples, err := g.unflatten("apples", s.Apples)
	if err != nil {
		return err
	}
	walls := NewWallMap(g.cfg.Width, g.cfg.Height)
	walls.Build(Levels[s.Level])
	for _, c := range apples {
		switch {
		case seen[c]:
			return fmt.Errorf("%w: apple %s overlaps the snake or another apple", ErrInvalidState, c)
		case walls.IsWall(c):
			return fmt.Errorf("%w: apple %s is on a wall", ErrInvalidState, c)
		}
		seen[c] = true
	}

	g.body = NewBody(trail...)
	g.apples.Clear()
	for _, c := range apples {
		g.apples.Add(c)
	}
	g.direction = s.Direction
	g.nextDir = s.NextDirection
	g.moveDelay = s.MoveDelay
	g.score = s.Score
	g.level = s.Level
	g.lives = s.Lives
	g.walls.Build(g.currentLevel())

	g.fire(EventRestore)
	return nil
}

// EncodeState serializes a saved state with msgpack.
func EncodeState(s SavedState) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("snake: encode state: %w", err)
	}
	return data, nil
}

// DecodeState parses a record produced by EncodeState.
func DecodeState(data []byte) (SavedState, error) {
	var s SavedState
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return SavedState{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return s, nil
}

func flatten(cells []Cell) []int {
	raw := make([]int, 0, len(cells)*2)
	for _, c := range cells {
		raw = append(raw, c.X, c.Y)
	}
	return raw
}

// unflatten rebuilds cells from coordinate pairs, rejecting odd lengths and
// cells off the grid.
func (g *Game) unflatten(field string, raw []int) ([]Cell, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w: %s has odd length %d", ErrInvalidState, field, len(raw))
	}
	cells := make([]Cell, 0, len(raw)/2)
	for i := 0; i < len(raw); i += 2 {
		c := Cell{X: raw[i], Y: raw[i+1]}
		if !g.walls.InBounds(c) {
			return nil, fmt.Errorf("%w: %s cell %s is off the grid", ErrInvalidState, field, c)
		}
		cells = append(cells, c)
	}
	return cells, nil
}
