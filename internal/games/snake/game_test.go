package snake

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Width:            40,
		Height:           20,
		Lives:            3,
		SpeedUpFactor:    0.9,
		StartApples:      0,
		MaxSpawnAttempts: 64,
		Seed:             1,
	}
}

func startedGame(t *testing.T, cfg Config) *Game {
	t.Helper()
	g := New(cfg)
	g.Command(CmdStart)
	if g.Mode() != ModeRunning {
		t.Fatalf("Expected running after start, got %s", g.Mode())
	}
	return g
}

// placeSnake puts the snake at cells (head first) heading in d.
func placeSnake(g *Game, d Direction, cells ...Cell) {
	g.body = NewBody(cells...)
	g.direction = d
	g.nextDir = d
}

// crash runs the snake into the top border.
func crash(g *Game) []Effect {
	placeSnake(g, DirNorth, Cell{X: 1, Y: 1}, Cell{X: 1, Y: 2})
	return g.Tick()
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	cfg := testConfig()
	cfg.Seed = 12345
	cfg.StartApples = 3

	g1 := startedGame(t, cfg)
	g2 := startedGame(t, cfg)

	for i := 0; i < 40; i++ {
		var cmd Command
		switch i {
		case 5:
			cmd = CmdTurnRight
		case 9:
			cmd = CmdTurnLeft
		case 20:
			cmd = CmdNorth
		}
		g1.Command(cmd)
		g2.Command(cmd)
		g1.Tick()
		g2.Tick()
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()

	if snap1.Tick != snap2.Tick {
		t.Errorf("Tick mismatch: %d vs %d", snap1.Tick, snap2.Tick)
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Score mismatch: %d vs %d", snap1.Score, snap2.Score)
	}
	if snap1.HeadX != snap2.HeadX || snap1.HeadY != snap2.HeadY {
		t.Errorf("Head position mismatch: (%d,%d) vs (%d,%d)",
			snap1.HeadX, snap1.HeadY, snap2.HeadX, snap2.HeadY)
	}
	if snap1.Dir != snap2.Dir {
		t.Errorf("Direction mismatch: %v vs %v", snap1.Dir, snap2.Dir)
	}
	if !slices.Equal(snap1.Apples, snap2.Apples) {
		t.Errorf("Apple mismatch: %v vs %v", snap1.Apples, snap2.Apples)
	}
}

func TestInitialTrail(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 20, 10
	g := startedGame(t, cfg)

	want := []Cell{{5, 4}, {4, 4}, {3, 4}, {2, 4}, {1, 4}, {0, 4}}
	if got := g.body.Cells(); !slices.Equal(got, want) {
		t.Errorf("Initial trail = %v, want %v", got, want)
	}
	if g.Direction() != DirEast {
		t.Errorf("Initial direction = %s, want east", g.Direction())
	}
	if g.MoveDelay() != 600*time.Millisecond {
		t.Errorf("Initial move delay = %s, want 600ms", g.MoveDelay())
	}
}

func TestEastboundSixTicks(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 20, 10
	g := startedGame(t, cfg)

	for i := 0; i < 6; i++ {
		g.Tick()
	}

	if head := g.body.Head(); head != (Cell{X: 11, Y: 4}) {
		t.Errorf("Head = %s, want (11,4)", head)
	}
	if g.body.Len() != 6 {
		t.Errorf("Body length = %d, want 6", g.body.Len())
	}
	if g.Mode() != ModeRunning {
		t.Errorf("Mode = %s, want running", g.Mode())
	}
}

func TestHeadMovesOneCellPerTick(t *testing.T) {
	g := startedGame(t, testConfig())
	turns := []Command{CmdTurnRight, CmdNone, CmdTurnLeft, CmdNone, CmdNone, CmdTurnLeft, CmdTurnLeft, CmdNone}

	for i := 0; i < 30 && g.Mode() == ModeRunning; i++ {
		g.Command(turns[i%len(turns)])
		before := g.body.Head()
		g.Tick()
		if g.Mode() != ModeRunning {
			break
		}
		after := g.body.Head()
		dx, dy := g.Direction().Delta()
		if after.X-before.X != dx || after.Y-before.Y != dy {
			t.Fatalf("Tick %d: head moved %s -> %s, want delta (%d,%d)", i, before, after, dx, dy)
		}
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := startedGame(t, testConfig())

	// Initial direction is east; west points straight into the neck
	g.Command(CmdWest)
	if g.nextDir != DirEast {
		t.Errorf("Should not allow reversal from east to west, nextDir = %s", g.nextDir)
	}

	head := g.body.Head()
	g.Tick()
	if g.Direction() != DirEast {
		t.Errorf("Heading changed to %s", g.Direction())
	}
	if g.body.Head() != head.Step(DirEast) {
		t.Errorf("Head = %s, want %s", g.body.Head(), head.Step(DirEast))
	}

	// Now try valid direction change: south
	g.Command(CmdSouth)
	if g.nextDir != DirSouth {
		t.Errorf("Expected nextDir south, got %s", g.nextDir)
	}
}

func TestRelativeTurnsAreLatchedPerTick(t *testing.T) {
	g := startedGame(t, testConfig())

	// Two lefts before one tick must not compose into a reversal
	g.Command(CmdTurnLeft)
	g.Command(CmdTurnLeft)
	if g.nextDir != DirNorth {
		t.Fatalf("nextDir = %s, want north", g.nextDir)
	}

	g.Tick()
	g.Command(CmdTurnLeft)
	if g.nextDir != DirWest {
		t.Errorf("nextDir after tick = %s, want west", g.nextDir)
	}
	g.Command(CmdTurnRight)
	if g.nextDir != DirEast {
		t.Errorf("TurnRight from north = %s, want east", g.nextDir)
	}
}

func TestTurnsIgnoredUnlessRunning(t *testing.T) {
	g := New(testConfig())
	g.Command(CmdTurnLeft)
	if g.nextDir != DirEast {
		t.Errorf("Turn accepted in %s mode", g.Mode())
	}
}

func TestWallCollision(t *testing.T) {
	g := startedGame(t, testConfig())

	effects := crash(g)

	if g.Mode() != ModeLose {
		t.Errorf("Mode = %s, want lose after hitting wall", g.Mode())
	}
	if g.Lives() != 2 {
		t.Errorf("Lives = %d, want 2", g.Lives())
	}
	if _, ok := FindEffect(effects, EffectStatus); !ok {
		t.Error("Expected a status effect on loss")
	}
}

func TestInteriorWallCollision(t *testing.T) {
	g := startedGame(t, testConfig())
	// Divider is column 20, rows [5, 15)
	placeSnake(g, DirEast, Cell{X: 19, Y: 6}, Cell{X: 18, Y: 6}, Cell{X: 17, Y: 6})

	g.Tick()

	if g.Mode() != ModeLose {
		t.Errorf("Mode = %s, want lose after hitting the divider", g.Mode())
	}
}

func TestSelfCollisionIncludesTail(t *testing.T) {
	g := startedGame(t, testConfig())
	// Moving east puts the head on the current tail cell
	placeSnake(g, DirEast,
		Cell{X: 5, Y: 5},
		Cell{X: 5, Y: 6},
		Cell{X: 6, Y: 6},
		Cell{X: 6, Y: 5},
	)

	g.Tick()

	if g.Mode() != ModeLose {
		t.Errorf("Mode = %s, want lose when the head enters the tail cell", g.Mode())
	}
	if g.Lives() != 2 {
		t.Errorf("Lives = %d, want 2", g.Lives())
	}
}

func TestExitGate(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name string
		row  int
		win  bool
	}{
		{"band top", cfg.Height/2 - 2, true},
		{"mid", cfg.Height / 2, true},
		{"band bottom", cfg.Height/2 + 1, true},
		{"above band", cfg.Height/2 - 3, false},
		{"below band", cfg.Height/2 + 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := startedGame(t, cfg)
			x := cfg.Width - 2
			placeSnake(g, DirEast, Cell{X: x, Y: tc.row}, Cell{X: x - 1, Y: tc.row}, Cell{X: x - 2, Y: tc.row})

			effects := g.Tick()

			if tc.win {
				if g.Score() != 1 {
					t.Errorf("Score = %d, want 1", g.Score())
				}
				if g.Level() != 1 {
					t.Errorf("Level = %d, want 1", g.Level())
				}
				if g.Lives() != 3 {
					t.Errorf("Lives = %d, want 3", g.Lives())
				}
				if g.Mode() != ModeLose {
					t.Errorf("Mode = %s, want lose (win is transient)", g.Mode())
				}
				if e, ok := FindEffect(effects, EffectMode); !ok || e.To != ModeWin {
					t.Errorf("Expected a transition through win, got %+v", effects)
				}
				return
			}

			if g.Score() != 0 || g.Level() != 0 {
				t.Errorf("Score/level = %d/%d, want 0/0", g.Score(), g.Level())
			}
			if g.Lives() != 2 {
				t.Errorf("Lives = %d, want 2", g.Lives())
			}
		})
	}
}

func TestWinStartsNextLevel(t *testing.T) {
	g := startedGame(t, testConfig())
	placeSnake(g, DirEast, Cell{X: 38, Y: 10}, Cell{X: 37, Y: 10})
	g.Tick()

	g.Command(CmdStart)

	if g.Mode() != ModeRunning {
		t.Fatalf("Mode = %s, want running", g.Mode())
	}
	if g.LevelName() != "Spur" {
		t.Errorf("Level = %s, want Spur", g.LevelName())
	}
	if g.MoveDelay() != 500*time.Millisecond {
		t.Errorf("Move delay = %s, want 500ms", g.MoveDelay())
	}
	if g.Score() != 1 {
		t.Errorf("Score = %d, want 1 carried into next level", g.Score())
	}
}

func TestCampaignComplete(t *testing.T) {
	g := startedGame(t, testConfig())
	g.level = LevelCount() - 1
	g.score = 12
	placeSnake(g, DirEast, Cell{X: 38, Y: 10}, Cell{X: 37, Y: 10})

	effects := g.Tick()

	if g.Mode() != ModeGameOver {
		t.Fatalf("Mode = %s, want game over after the last level", g.Mode())
	}
	status, _ := FindEffect(effects, EffectStatus)
	if !strings.Contains(status.Title, "every level") {
		t.Errorf("Status = %q, want campaign message", status.Title)
	}
	if hs, ok := FindEffect(effects, EffectSaveHighScore); !ok || hs.Score != 13 {
		t.Errorf("Expected high score 13 to be saved, got %+v", hs)
	}
}

func TestSnakeGrowth(t *testing.T) {
	g := startedGame(t, testConfig())
	head := g.body.Head()
	g.apples.Add(head.Step(DirEast))

	initialLen := g.body.Len()
	initialDelay := g.MoveDelay()

	effects := g.Tick()

	if g.body.Len() != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating, got %d vs %d", g.body.Len(), initialLen+1)
	}
	if g.Score() != 1 {
		t.Errorf("Score should be 1 after eating, got %d", g.Score())
	}
	if g.apples.Len() != 1 {
		t.Errorf("Apple count = %d, want 1 (replacement spawned)", g.apples.Len())
	}
	if g.apples.Has(g.body.Head()) {
		t.Error("Replacement apple spawned under the head")
	}
	if want := time.Duration(float64(initialDelay) * 0.9); g.MoveDelay() != want {
		t.Errorf("Move delay = %s, want %s", g.MoveDelay(), want)
	}
	if _, ok := FindEffect(effects, EffectLabels); !ok {
		t.Error("Expected a labels effect after eating")
	}
}

func TestLoseMessages(t *testing.T) {
	g := startedGame(t, testConfig())
	g.score = 4
	effects := crash(g)
	status, _ := FindEffect(effects, EffectStatus)
	if !strings.Contains(status.Title, "score 4") {
		t.Errorf("Level 0 loss status = %q, want final score", status.Title)
	}

	g.level = 1
	g.Command(CmdStart)
	effects = crash(g)
	status, _ = FindEffect(effects, EffectStatus)
	if !strings.Contains(status.Title, "1 lives left") {
		t.Errorf("Level 1 loss status = %q, want remaining lives", status.Title)
	}
}

func TestGameOverAfterLivesExhausted(t *testing.T) {
	g := startedGame(t, testConfig())
	g.SetHighScore(5)

	crash(g)
	g.Command(CmdStart)
	crash(g)
	g.Command(CmdStart)
	if g.Lives() != 1 {
		t.Fatalf("Lives = %d, want 1 before the last crash", g.Lives())
	}

	g.level = 1
	g.score = 7
	effects := crash(g)

	if g.Mode() != ModeGameOver {
		t.Fatalf("Mode = %s, want game over", g.Mode())
	}
	if g.Lives() != 3 || g.Level() != 0 || g.Score() != 0 {
		t.Errorf("Counters after game over = lives %d level %d score %d, want 3/0/0",
			g.Lives(), g.Level(), g.Score())
	}
	if g.HighScore() != 7 {
		t.Errorf("HighScore = %d, want 7", g.HighScore())
	}
	saved, ok := FindEffect(effects, EffectSaveHighScore)
	if !ok || saved.Score != 7 {
		t.Errorf("Expected SaveHighScore(7), got %+v", effects)
	}
	if rec, ok := FindEffect(effects, EffectRecordGame); !ok || rec.Score != 7 || rec.Level != 1 {
		t.Errorf("Expected RecordGame(7, level 1), got %+v", rec)
	}

	// A new game starts from the first level
	g.Command(CmdStart)
	if g.Mode() != ModeRunning || g.Level() != 0 {
		t.Errorf("Restart = %s at level %d, want running at 0", g.Mode(), g.Level())
	}
}

func TestGameOverKeepsHigherStoredScore(t *testing.T) {
	g := startedGame(t, testConfig())
	g.SetHighScore(50)
	g.lives = 1
	g.score = 3

	effects := crash(g)

	// The record still learns the last score; only the store decides on raising
	saved, ok := FindEffect(effects, EffectSaveHighScore)
	if !ok || saved.Score != 3 {
		t.Errorf("Expected SaveHighScore(3) for the record, got %+v", effects)
	}
	if g.HighScore() != 50 {
		t.Errorf("HighScore = %d, want 50", g.HighScore())
	}
}

func TestSpeedUpHasFloor(t *testing.T) {
	g := startedGame(t, testConfig())
	g.moveDelay = minMoveDelay
	g.apples.Add(g.body.Head().Step(DirEast))

	g.Tick()

	if g.MoveDelay() != minMoveDelay {
		t.Fatalf("MoveDelay = %s, want floor %s", g.MoveDelay(), minMoveDelay)
	}

	restored := New(testConfig())
	if err := restored.RestoreState(g.SaveState()); err != nil {
		t.Errorf("RestoreState() of a fully sped-up game failed: %v", err)
	}
}

func TestDebugState(t *testing.T) {
	g := startedGame(t, testConfig())
	g.score = 4

	state := g.DebugState()
	for _, want := range []string{"Mode: running", "Score: 4", "Lives: 3", "Level: 1", "Direction: east"} {
		if !strings.Contains(state, want) {
			t.Errorf("DebugState() missing %q:\n%s", want, state)
		}
	}
}

func TestPauseResume(t *testing.T) {
	g := startedGame(t, testConfig())
	g.Tick()
	before := g.body.Cells()

	g.Command(CmdPause)
	if g.Mode() != ModePaused {
		t.Fatalf("Mode = %s, want paused", g.Mode())
	}
	if effects := g.Tick(); effects != nil || !slices.Equal(g.body.Cells(), before) {
		t.Error("Tick should be a no-op while paused")
	}

	g.Command(CmdStart)
	if g.Mode() != ModeRunning {
		t.Fatalf("Mode = %s, want running", g.Mode())
	}
	if !slices.Equal(g.body.Cells(), before) {
		t.Error("Resuming should not reset the snake")
	}
}

func TestTickRecoversFromFault(t *testing.T) {
	g := startedGame(t, testConfig())
	g.body = &Body{}

	effects := g.Tick()

	if g.Mode() != ModeLose {
		t.Errorf("Mode = %s, want lose after a faulty tick", g.Mode())
	}
	if g.Lives() != 2 {
		t.Errorf("Lives = %d, want 2", g.Lives())
	}
	if len(effects) == 0 {
		t.Error("Expected loss effects")
	}
}

func TestStartApples(t *testing.T) {
	cfg := testConfig()
	cfg.StartApples = 4
	g := startedGame(t, cfg)

	if g.apples.Len() != 4 {
		t.Fatalf("Apple count = %d, want 4", g.apples.Len())
	}
	for _, a := range g.apples.Cells() {
		if g.walls.IsWall(a) || g.body.Contains(a) {
			t.Errorf("Apple at %s overlaps a wall or the snake", a)
		}
	}
}

func TestConfiguredMoveDelays(t *testing.T) {
	cfg := testConfig()
	cfg.MoveDelays = []time.Duration{250 * time.Millisecond}
	g := startedGame(t, cfg)

	if g.MoveDelay() != 250*time.Millisecond {
		t.Errorf("Move delay = %s, want 250ms", g.MoveDelay())
	}
	if g.levelDelay(2) != 400*time.Millisecond {
		t.Errorf("Level 3 delay = %s, want built-in 400ms", g.levelDelay(2))
	}
}

func TestSaveRestore(t *testing.T) {
	cfg := testConfig()
	cfg.StartApples = 3
	g1 := startedGame(t, cfg)
	g1.Tick()
	g1.Command(CmdTurnRight)
	g1.Tick()
	g1.Command(CmdTurnLeft)
	g1.score = 9

	data, err := EncodeState(g1.SaveState())
	if err != nil {
		t.Fatalf("EncodeState() failed: %v", err)
	}
	state, err := DecodeState(data)
	if err != nil {
		t.Fatalf("DecodeState() failed: %v", err)
	}

	cfg.Seed = 99
	g2 := New(cfg)
	if err := g2.RestoreState(state); err != nil {
		t.Fatalf("RestoreState() failed: %v", err)
	}

	if g2.Mode() != ModePaused {
		t.Errorf("Mode = %s, want paused after restore", g2.Mode())
	}
	if !slices.Equal(g1.body.Cells(), g2.body.Cells()) {
		t.Errorf("Trail mismatch: %v vs %v", g1.body.Cells(), g2.body.Cells())
	}
	if !slices.Equal(g1.apples.Cells(), g2.apples.Cells()) {
		t.Errorf("Apples mismatch: %v vs %v", g1.apples.Cells(), g2.apples.Cells())
	}
	if g1.direction != g2.direction || g1.nextDir != g2.nextDir {
		t.Errorf("Direction mismatch: %s/%s vs %s/%s", g1.direction, g1.nextDir, g2.direction, g2.nextDir)
	}
	if g1.MoveDelay() != g2.MoveDelay() || g1.Score() != g2.Score() {
		t.Errorf("Delay/score mismatch: %s/%d vs %s/%d", g1.MoveDelay(), g1.Score(), g2.MoveDelay(), g2.Score())
	}

	g2.Command(CmdStart)
	if g2.Mode() != ModeRunning || !slices.Equal(g1.body.Cells(), g2.body.Cells()) {
		t.Error("Resuming a restored game should keep the restored trail")
	}
}

func TestRestoreRejectsMalformedState(t *testing.T) {
	valid := func() SavedState {
		return SavedState{
			Apples:        []int{10, 10},
			Direction:     DirEast,
			NextDirection: DirEast,
			MoveDelay:     600 * time.Millisecond,
			Trail:         []int{5, 9, 4, 9, 3, 9},
			Lives:         3,
		}
	}

	tests := []struct {
		name   string
		mutate func(*SavedState)
	}{
		{"odd trail", func(s *SavedState) { s.Trail = []int{5, 9, 4} }},
		{"odd apples", func(s *SavedState) { s.Apples = []int{1} }},
		{"empty trail", func(s *SavedState) { s.Trail = nil }},
		{"duplicate trail cell", func(s *SavedState) { s.Trail = []int{5, 9, 5, 9} }},
		{"off grid", func(s *SavedState) { s.Trail = []int{80, 9} }},
		{"bad direction", func(s *SavedState) { s.Direction = 0 }},
		{"bad next direction", func(s *SavedState) { s.NextDirection = 9 }},
		{"zero delay", func(s *SavedState) { s.MoveDelay = 0 }},
		{"bad level", func(s *SavedState) { s.Level = LevelCount() }},
		{"no lives", func(s *SavedState) { s.Lives = 0 }},
		{"negative score", func(s *SavedState) { s.Score = -1 }},
		{"reversed next direction", func(s *SavedState) { s.NextDirection = DirWest }},
		{"apple on trail", func(s *SavedState) { s.Apples = []int{4, 9} }},
		{"duplicate apple", func(s *SavedState) { s.Apples = []int{10, 10, 10, 10} }},
		{"apple on border", func(s *SavedState) { s.Apples = []int{0, 0} }},
		{"apple on divider", func(s *SavedState) { s.Apples = []int{20, 6} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New(testConfig())
			before := g.Snapshot()

			s := valid()
			tc.mutate(&s)
			err := g.RestoreState(s)

			if !errors.Is(err, ErrInvalidState) {
				t.Fatalf("RestoreState() error = %v, want ErrInvalidState", err)
			}
			if g.Mode() != ModeReady || g.Snapshot().SnakeLen != before.SnakeLen {
				t.Error("Rejected restore modified the game")
			}
		})
	}

	g := New(testConfig())
	if err := g.RestoreState(valid()); err != nil {
		t.Errorf("RestoreState(valid) failed: %v", err)
	}
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	if _, err := DecodeState([]byte{0xc1}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("DecodeState(garbage) error = %v, want ErrInvalidState", err)
	}
}
