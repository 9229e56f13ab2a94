package snake

// Body is the snake's trail, head first.
type Body struct {
	cells []Cell
}

// NewBody creates a body from cells given head first.
func NewBody(cells ...Cell) *Body {
	b := &Body{cells: make([]Cell, len(cells))}
	copy(b.cells, cells)
	return b
}

// Advance prepends newHead and drops the tail unless grow is set.
// Callers must have checked newHead for collisions already.
func (b *Body) Advance(newHead Cell, grow bool) {
	b.cells = append(b.cells, Cell{})
	copy(b.cells[1:], b.cells)
	b.cells[0] = newHead
	if !grow {
		b.cells = b.cells[:len(b.cells)-1]
	}
}

// Contains reports whether any segment, tail included, occupies c.
func (b *Body) Contains(c Cell) bool {
	for _, seg := range b.cells {
		if seg == c {
			return true
		}
	}
	return false
}

// Head returns the head cell. The body must not be empty.
func (b *Body) Head() Cell {
	return b.cells[0]
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return len(b.cells)
}

// Cells returns a copy of the trail, head first.
func (b *Body) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}
