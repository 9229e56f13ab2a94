// Package snake implements the walled, three-level Snake game engine.
// It contains pure game logic: the host drives it with Command and Tick and
// applies the returned effects (status text, labels, persistence).
package snake

import "fmt"

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Step returns the neighbouring cell in the given direction.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is the snake's heading.
type Direction int

const (
	DirNorth Direction = iota + 1
	DirEast
	DirSouth
	DirWest
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirNorth && d <= DirWest
}

// Delta returns the unit step for d. North decreases y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	case DirWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// Left returns the heading after a 90° counter-clockwise turn.
func (d Direction) Left() Direction {
	switch d {
	case DirNorth:
		return DirWest
	case DirWest:
		return DirSouth
	case DirSouth:
		return DirEast
	default:
		return DirNorth
	}
}

// Right returns the heading after a 90° clockwise turn.
func (d Direction) Right() Direction {
	switch d {
	case DirNorth:
		return DirEast
	case DirEast:
		return DirSouth
	case DirSouth:
		return DirWest
	default:
		return DirNorth
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirNorth:
		return DirSouth
	case DirSouth:
		return DirNorth
	case DirEast:
		return DirWest
	case DirWest:
		return DirEast
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirEast:
		return "east"
	case DirSouth:
		return "south"
	case DirWest:
		return "west"
	default:
		return "unknown"
	}
}
