// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid     SnakeGrid     `yaml:"grid"`
	Gameplay SnakeGameplay `yaml:"gameplay"`
	Levels   []SnakeLevel  `yaml:"levels"`
	Player   PlayerConfig  `yaml:"player"`
	Storage  StorageConfig `yaml:"storage"`
	Log      LogConfig     `yaml:"log"`
}

// SnakeGrid defines the play area in cells, border included.
type SnakeGrid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeGameplay defines rules shared by all levels.
type SnakeGameplay struct {
	Lives            int     `yaml:"lives"`
	SpeedUpFactor    float64 `yaml:"speed_up_factor"` // Move delay multiplier per apple eaten
	StartApples      int     `yaml:"start_apples"`
	MaxSpawnAttempts int     `yaml:"max_spawn_attempts"`
	StartLevel       int     `yaml:"start_level"` // 1-indexed, 0 = first level
}

// SnakeLevel tunes a built-in level. Layouts are fixed; only timing changes.
type SnakeLevel struct {
	MoveDelayMs int `yaml:"move_delay_ms"`
}

// PlayerConfig identifies the local player for high-score records.
type PlayerConfig struct {
	Name string `yaml:"name"`
}

// StorageConfig locates the scores database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig controls logger verbosity and where local play logs go.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file while a local game owns the terminal
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. Empty means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// IsFixedPreset returns true if the preset disables speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
