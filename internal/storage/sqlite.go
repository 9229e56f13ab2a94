// Package storage provides SQLite-based persistence for players, finished
// games and saved sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
// It is safe for concurrent use by multiple sessions.
type Store struct {
	db *sql.DB
}

// PlayerRecord is the per-player high-score record.
type PlayerRecord struct {
	Name      string
	Speed     int // Move delay in ms when the high score was set
	HighScore int
	Score     int // Score of the most recent finished game
	UpdatedAt time.Time
}

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID        int64
	Player    string
	Score     int
	Level     int // 0-indexed level the game ended on
	CreatedAt time.Time
}

// Stats aggregates a player's finished games.
type Stats struct {
	Player     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			name TEXT PRIMARY KEY,
			speed INTEGER NOT NULL DEFAULT 0,
			high_score INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_player ON games(player);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(score DESC);

		CREATE TABLE IF NOT EXISTS sessions (
			name TEXT PRIMARY KEY,
			state BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Player returns the record for name, creating an empty one if absent.
func (s *Store) Player(name string) (PlayerRecord, error) {
	if _, err := s.db.Exec("INSERT OR IGNORE INTO players (name) VALUES (?)", name); err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot create player %q: %w", name, err)
	}

	rec := PlayerRecord{Name: name}
	var updatedAt any
	err := s.db.QueryRow(
		"SELECT speed, high_score, score, updated_at FROM players WHERE name = ?",
		name,
	).Scan(&rec.Speed, &rec.HighScore, &rec.Score, &updatedAt)
	if err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot load player %q: %w", name, err)
	}
	rec.UpdatedAt = parseTime(updatedAt)
	return rec, nil
}

// SaveHighScore stores score as the player's latest result and raises the
// high score (and the speed it was set at) when score beats it.
// Returns whether the high score was raised.
func (s *Store) SaveHighScore(name string, score, speed int) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("INSERT OR IGNORE INTO players (name) VALUES (?)", name); err != nil {
		return false, fmt.Errorf("storage: cannot create player %q: %w", name, err)
	}

	var high int
	if err := tx.QueryRow("SELECT high_score FROM players WHERE name = ?", name).Scan(&high); err != nil {
		return false, fmt.Errorf("storage: cannot read high score: %w", err)
	}

	raised := score > high
	if raised {
		_, err = tx.Exec(
			`UPDATE players SET high_score = ?, speed = ?, score = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE name = ?`,
			score, speed, score, name,
		)
	} else {
		_, err = tx.Exec(
			"UPDATE players SET score = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ?",
			score, name,
		)
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot update player %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit high score: %w", err)
	}
	return raised, nil
}

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(player string, score, level int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO games (player, score, level) VALUES (?, ?, ?)",
		player, score, level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best N finished games across all players.
// Results are ordered by score descending.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, level, created_at
		 FROM games
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// AllScores retrieves every finished game of one player.
func (s *Store) AllScores(player string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, player, score, level, created_at
		 FROM games
		 WHERE player = ?
		 ORDER BY score DESC, id ASC`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best finished game of a player.
// Returns 0 if the player has no games.
func (s *Store) HighScore(player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM games WHERE player = ?",
		player,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes the game history and high-score record of a player.
// An empty name clears every player.
func (s *Store) ClearScores(player string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if player == "" {
		_, err = tx.Exec("DELETE FROM games")
		if err == nil {
			_, err = tx.Exec("DELETE FROM players")
		}
	} else {
		_, err = tx.Exec("DELETE FROM games WHERE player = ?", player)
		if err == nil {
			_, err = tx.Exec("DELETE FROM players WHERE name = ?", player)
		}
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// GetStats retrieves aggregated statistics for a player's finished games.
func (s *Store) GetStats(player string) (*Stats, error) {
	stats := &Stats{Player: player}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM games WHERE player = ?`,
		player,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// SaveSession stores an encoded game state under name, replacing any previous one.
func (s *Store) SaveSession(name string, state []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (name, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		name, state,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session %q: %w", name, err)
	}
	return nil
}

// LoadSession returns the encoded game state saved under name.
// ok is false when there is none.
func (s *Store) LoadSession(name string) (state []byte, ok bool, err error) {
	err = s.db.QueryRow("SELECT state FROM sessions WHERE name = ?", name).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot load session %q: %w", name, err)
	}
	return state, true, nil
}

// ClearSession deletes the saved state for name, if any.
func (s *Store) ClearSession(name string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot clear session %q: %w", name, err)
	}
	return nil
}

// parseTime handles both driver-parsed and textual DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
