package snake

// Tile is what a grid cell shows.
type Tile int

const (
	TileEmpty Tile = iota
	TileWall
	TileApple
	TileSnakeBody
	TileSnakeHead
)

// TileSink receives one SetTile call per grid cell on every Render.
type TileSink interface {
	SetTile(x, y int, t Tile)
}

// Render paints the whole grid into dst: floor and walls first, then apples,
// then the snake with its head drawn last.
func (g *Game) Render(dst TileSink) {
	for y := 0; y < g.cfg.Height; y++ {
		for x := 0; x < g.cfg.Width; x++ {
			t := TileEmpty
			if g.walls.Marked(Cell{X: x, Y: y}) {
				t = TileWall
			}
			dst.SetTile(x, y, t)
		}
	}

	for _, c := range g.apples.order {
		dst.SetTile(c.X, c.Y, TileApple)
	}

	cells := g.body.cells
	for i := len(cells) - 1; i > 0; i-- {
		dst.SetTile(cells[i].X, cells[i].Y, TileSnakeBody)
	}
	if len(cells) > 0 {
		dst.SetTile(cells[0].X, cells[0].Y, TileSnakeHead)
	}
}
