package snake

import "testing"

type recordingSink struct {
	tiles map[Cell]Tile
	calls int
}

func (s *recordingSink) SetTile(x, y int, t Tile) {
	s.tiles[Cell{X: x, Y: y}] = t
	s.calls++
}

func TestRender(t *testing.T) {
	g := startedGame(t, testConfig())
	apple := Cell{X: 10, Y: 3}
	g.apples.Add(apple)

	sink := &recordingSink{tiles: make(map[Cell]Tile)}
	g.Render(sink)

	if len(sink.tiles) != g.Width()*g.Height() {
		t.Errorf("Rendered %d cells, want %d", len(sink.tiles), g.Width()*g.Height())
	}
	if sink.tiles[g.body.Head()] != TileSnakeHead {
		t.Errorf("Head tile = %v", sink.tiles[g.body.Head()])
	}
	for _, c := range g.body.Cells()[1:] {
		if sink.tiles[c] != TileSnakeBody {
			t.Errorf("Body cell %s tile = %v", c, sink.tiles[c])
		}
	}
	if sink.tiles[apple] != TileApple {
		t.Errorf("Apple tile = %v", sink.tiles[apple])
	}
	if sink.tiles[Cell{X: 20, Y: 5}] != TileWall {
		t.Error("Divider not rendered as wall")
	}
	if sink.tiles[Cell{X: 39, Y: 10}] != TileEmpty || sink.tiles[Cell{X: 0, Y: 10}] != TileEmpty {
		t.Error("Border gaps should render as floor")
	}
	if sink.tiles[Cell{X: 30, Y: 15}] != TileEmpty {
		t.Error("Interior floor not rendered as empty")
	}
}
