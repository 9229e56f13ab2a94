package snake

// exitHalfSpan is half the height of the exit gate: the gate covers rows
// [h/2-exitHalfSpan, h/2+exitHalfSpan).
const exitHalfSpan = 2

// WallMap tracks blocked cells for the current level.
// The outer boundary is always treated as wall, whether or not it has been
// marked, except for the exit gate on the right edge.
type WallMap struct {
	width  int
	height int
	marked [][]bool // [x][y]
}

// NewWallMap creates an empty wall map with the given extents.
func NewWallMap(width, height int) *WallMap {
	w := &WallMap{width: width, height: height}
	w.marked = make([][]bool, width)
	for x := range w.marked {
		w.marked[x] = make([]bool, height)
	}
	return w
}

// Width returns the grid width.
func (w *WallMap) Width() int { return w.width }

// Height returns the grid height.
func (w *WallMap) Height() int { return w.height }

// InBounds reports whether c lies on the grid.
func (w *WallMap) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < w.width && c.Y >= 0 && c.Y < w.height
}

// AddWall marks c as blocked. Out-of-range cells are ignored.
func (w *WallMap) AddWall(c Cell) {
	if !w.InBounds(c) {
		return
	}
	w.marked[c.X][c.Y] = true
}

// Marked reports whether c was explicitly marked. Used for display.
func (w *WallMap) Marked(c Cell) bool {
	if !w.InBounds(c) {
		return false
	}
	return w.marked[c.X][c.Y]
}

// IsWall reports whether moving into c is lethal.
func (w *WallMap) IsWall(c Cell) bool {
	if !w.InBounds(c) {
		return true
	}
	if w.IsExit(c) {
		return false
	}
	if c.X == 0 || c.Y == 0 || c.X == w.width-1 || c.Y == w.height-1 {
		return true
	}
	return w.marked[c.X][c.Y]
}

// IsExit reports whether c is past the right interior bound inside the exit band.
func (w *WallMap) IsExit(c Cell) bool {
	return c.X > w.width-2 && w.InExitBand(c.Y)
}

// InExitBand reports whether row y lies in the 4-row band centred on mid-height.
func (w *WallMap) InExitBand(y int) bool {
	mid := w.height / 2
	return y >= mid-exitHalfSpan && y < mid+exitHalfSpan
}

// Reset clears every mark.
func (w *WallMap) Reset() {
	for x := range w.marked {
		clear(w.marked[x])
	}
}

// Build resets the map and draws the border and the level's interior segments.
func (w *WallMap) Build(level Level) {
	w.Reset()
	w.drawBorder()
	for _, seg := range level.Segments {
		for _, c := range seg.Cells(w.width, w.height) {
			w.AddWall(c)
		}
	}
}

// drawBorder marks the outer frame, leaving the exit band open on both
// vertical edges. Only the right-edge gap is passable.
func (w *WallMap) drawBorder() {
	for x := 0; x < w.width; x++ {
		w.AddWall(Cell{X: x, Y: 0})
		w.AddWall(Cell{X: x, Y: w.height - 1})
	}
	for y := 1; y < w.height-1; y++ {
		if w.InExitBand(y) {
			continue
		}
		w.AddWall(Cell{X: 0, Y: y})
		w.AddWall(Cell{X: w.width - 1, Y: y})
	}
}
