package snake

import "time"

// Pos is a coordinate along one axis, resolved against the grid extent.
// The base is 0, extent/2 (Half) or extent (FromEnd); Offset is added to it.
type Pos struct {
	Half    bool
	FromEnd bool
	Offset  int
}

// Resolve returns the absolute coordinate for an axis of the given extent.
func (p Pos) Resolve(extent int) int {
	switch {
	case p.Half:
		return extent/2 + p.Offset
	case p.FromEnd:
		return extent + p.Offset
	default:
		return p.Offset
	}
}

// Orientation of a wall segment.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Segment is a straight run of wall cells.
// For a Horizontal segment Line is the row and [From, To) the columns;
// for a Vertical segment Line is the column and [From, To) the rows.
type Segment struct {
	Orientation Orientation
	Line        Pos
	From        Pos
	To          Pos
}

// Cells expands the segment on a width x height grid.
func (s Segment) Cells(width, height int) []Cell {
	lineExtent, runExtent := height, width
	if s.Orientation == Vertical {
		lineExtent, runExtent = width, height
	}
	line := s.Line.Resolve(lineExtent)
	from, to := s.From.Resolve(runExtent), s.To.Resolve(runExtent)

	var cells []Cell
	for i := from; i < to; i++ {
		if s.Orientation == Vertical {
			cells = append(cells, Cell{X: line, Y: i})
		} else {
			cells = append(cells, Cell{X: i, Y: line})
		}
	}
	return cells
}

// Level is one entry of the level table.
type Level struct {
	ID        int
	Name      string
	MoveDelay time.Duration
	Segments  []Segment
}

var (
	// Column w/2, rows [5, h-5).
	dividerWall = Segment{
		Orientation: Vertical,
		Line:        Pos{Half: true},
		From:        Pos{Offset: 5},
		To:          Pos{FromEnd: true, Offset: -5},
	}
	// Row h/2, six cells right of the divider.
	spurWall = Segment{
		Orientation: Horizontal,
		Line:        Pos{Half: true},
		From:        Pos{Half: true, Offset: 1},
		To:          Pos{Half: true, Offset: 7},
	}
	// Six cells left of the divider at its top end.
	upperLedge = Segment{
		Orientation: Horizontal,
		Line:        Pos{Offset: 5},
		From:        Pos{Half: true, Offset: -6},
		To:          Pos{Half: true},
	}
	// Six cells left of the divider at its bottom end.
	lowerLedge = Segment{
		Orientation: Horizontal,
		Line:        Pos{FromEnd: true, Offset: -6},
		From:        Pos{Half: true, Offset: -6},
		To:          Pos{Half: true},
	}
)

// Levels is the built-in campaign. Each layout extends the previous one.
var Levels = []Level{
	{
		ID:        1,
		Name:      "Divide",
		MoveDelay: 600 * time.Millisecond,
		Segments:  []Segment{dividerWall},
	},
	{
		ID:        2,
		Name:      "Spur",
		MoveDelay: 500 * time.Millisecond,
		Segments:  []Segment{dividerWall, spurWall},
	},
	{
		ID:        3,
		Name:      "Gallery",
		MoveDelay: 400 * time.Millisecond,
		Segments:  []Segment{dividerWall, spurWall, upperLedge, lowerLedge},
	},
}

// LevelCount returns the number of built-in levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at index i (0-indexed), or nil.
func GetLevel(i int) *Level {
	if i < 0 || i >= len(Levels) {
		return nil
	}
	return &Levels[i]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, LevelCount())
	for i, level := range Levels {
		names[i] = level.Name
	}
	return names
}
