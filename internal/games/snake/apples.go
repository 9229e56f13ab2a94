package snake

import (
	"errors"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// ErrBoardFull is returned when no free interior cell is left for an apple.
var ErrBoardFull = errors.New("snake: board full")

// AppleSet holds the active apples in placement order.
type AppleSet struct {
	order []Cell
	index mapset.Set[Cell]
}

// NewAppleSet creates an empty apple set.
func NewAppleSet() *AppleSet {
	return &AppleSet{index: mapset.New[Cell]()}
}

// Add places an apple at c. Returns false if one is already there.
func (a *AppleSet) Add(c Cell) bool {
	if a.index.Has(c) {
		return false
	}
	a.index.Put(c)
	a.order = append(a.order, c)
	return true
}

// Has reports whether an apple sits at c.
func (a *AppleSet) Has(c Cell) bool {
	return a.index.Has(c)
}

// Remove eats the apple at c. Returns false if there was none.
func (a *AppleSet) Remove(c Cell) bool {
	if !a.index.Has(c) {
		return false
	}
	a.index.Remove(c)
	for i, apple := range a.order {
		if apple == c {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of apples.
func (a *AppleSet) Len() int {
	return len(a.order)
}

// Cells returns the apples in placement order.
func (a *AppleSet) Cells() []Cell {
	out := make([]Cell, len(a.order))
	copy(out, a.order)
	return out
}

// Clear removes every apple.
func (a *AppleSet) Clear() {
	a.order = a.order[:0]
	a.index = mapset.New[Cell]()
}

// Spawner places apples on free interior cells.
type Spawner struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewSpawner creates a spawner. maxAttempts bounds random sampling before
// falling back to a full scan of the board.
func NewSpawner(rng *rand.Rand, maxAttempts int) *Spawner {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Spawner{rng: rng, maxAttempts: maxAttempts}
}

// Spawn adds an apple to apples on a cell strictly inside the border that is
// not occupied by the snake, a wall or another apple.
func (s *Spawner) Spawn(body *Body, walls *WallMap, apples *AppleSet) (Cell, error) {
	w, h := walls.Width(), walls.Height()
	if w < 3 || h < 3 {
		return Cell{}, ErrBoardFull
	}

	free := func(c Cell) bool {
		return !walls.IsWall(c) && !body.Contains(c) && !apples.Has(c)
	}

	for range s.maxAttempts {
		c := Cell{X: 1 + s.rng.Intn(w-2), Y: 1 + s.rng.Intn(h-2)}
		if free(c) {
			apples.Add(c)
			return c, nil
		}
	}

	// Sampling kept missing; pick from the cells that are actually left.
	var candidates []Cell
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := Cell{X: x, Y: y}
			if free(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, ErrBoardFull
	}

	c := candidates[s.rng.Intn(len(candidates))]
	apples.Add(c)
	return c, nil
}
