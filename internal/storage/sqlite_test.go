package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestPlayerCreatedIfAbsent(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.Player("alice")
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}
	if rec.Name != "alice" || rec.HighScore != 0 || rec.Speed != 0 || rec.Score != 0 {
		t.Errorf("New player record = %+v, want zeroed", rec)
	}

	// Second lookup must not reset anything
	if _, err := store.SaveHighScore("alice", 12, 486); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	rec, err = store.Player("alice")
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}
	if rec.HighScore != 12 {
		t.Errorf("HighScore = %d, want 12", rec.HighScore)
	}
}

func TestSaveHighScoreOnlyRaises(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name       string
		score      int
		speed      int
		wantRaised bool
		wantHigh   int
		wantSpeed  int
	}{
		{"first score", 10, 531, true, 10, 531},
		{"lower score", 4, 600, false, 10, 531},
		{"equal score", 10, 400, false, 10, 531},
		{"higher score", 15, 430, true, 15, 430},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raised, err := store.SaveHighScore("bob", tc.score, tc.speed)
			if err != nil {
				t.Fatalf("SaveHighScore() failed: %v", err)
			}
			if raised != tc.wantRaised {
				t.Errorf("raised = %v, want %v", raised, tc.wantRaised)
			}

			rec, err := store.Player("bob")
			if err != nil {
				t.Fatalf("Player() failed: %v", err)
			}
			if rec.HighScore != tc.wantHigh || rec.Speed != tc.wantSpeed {
				t.Errorf("record = high %d speed %d, want %d/%d", rec.HighScore, rec.Speed, tc.wantHigh, tc.wantSpeed)
			}
			if rec.Score != tc.score {
				t.Errorf("last score = %d, want %d", rec.Score, tc.score)
			}
		})
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	games := []struct {
		player string
		score  int
		level  int
	}{
		{"alice", 100, 1},
		{"alice", 50, 0},
		{"bob", 200, 2},
		{"alice", 150, 2},
	}
	for _, g := range games {
		if _, err := store.SaveScore(g.player, g.score, g.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	want := []int{200, 150, 100, 50}
	for i, s := range scores {
		if s.Score != want[i] {
			t.Errorf("scores[%d] = %d, want %d", i, s.Score, want[i])
		}
	}
	if scores[0].Player != "bob" || scores[0].Level != 2 {
		t.Errorf("Top entry = %+v, want bob at level 2", scores[0])
	}

	alice, err := store.AllScores("alice")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(alice) != 3 {
		t.Errorf("Expected 3 scores for alice, got %d", len(alice))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, 0)
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("carol")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for a new player, got %d", high)
	}

	store.SaveScore("carol", 100, 0)
	store.SaveScore("carol", 300, 1)
	store.SaveScore("dave", 900, 2)

	high, err = store.HighScore("carol")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("alice", 100, 0)
	store.SaveScore("bob", 300, 0)
	store.SaveHighScore("alice", 100, 600)

	if err := store.ClearScores("alice"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.AllScores("alice"); len(scores) != 0 {
		t.Errorf("Expected 0 scores for alice after clear, got %d", len(scores))
	}
	if rec, _ := store.Player("alice"); rec.HighScore != 0 {
		t.Errorf("Alice high score = %d after clear, want 0", rec.HighScore)
	}
	if scores, _ := store.AllScores("bob"); len(scores) != 1 {
		t.Error("Bob's scores should not be affected by clearing alice")
	}

	if err := store.ClearScores(""); err != nil {
		t.Fatalf("ClearScores(all) failed: %v", err)
	}
	if scores, _ := store.TopScores(10); len(scores) != 0 {
		t.Errorf("Expected no scores after clearing everything, got %d", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats("erin")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", stats)
	}

	store.SaveScore("erin", 10, 0)
	store.SaveScore("erin", 30, 1)

	stats, err = store.GetStats("erin")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 {
		t.Errorf("Stats = %+v, want 2 games, high 30, avg 20", stats)
	}
}

func TestSessions(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LoadSession("alice"); err != nil || ok {
		t.Fatalf("LoadSession(missing) = ok %v, err %v", ok, err)
	}

	first := []byte{0x85, 0x01, 0x02}
	second := []byte{0x86, 0x03}

	if err := store.SaveSession("alice", first); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if err := store.SaveSession("alice", second); err != nil {
		t.Fatalf("SaveSession(replace) failed: %v", err)
	}

	got, ok, err := store.LoadSession("alice")
	if err != nil || !ok {
		t.Fatalf("LoadSession() = ok %v, err %v", ok, err)
	}
	if !bytes.Equal(got, second) {
		t.Errorf("LoadSession() = %x, want %x", got, second)
	}

	if err := store.ClearSession("alice"); err != nil {
		t.Fatalf("ClearSession() failed: %v", err)
	}
	if _, ok, _ := store.LoadSession("alice"); ok {
		t.Error("Session still present after ClearSession")
	}
}
