package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Width:  40,
			Height: 20,
		},
		Gameplay: SnakeGameplay{
			Lives:            3,
			SpeedUpFactor:    0.9,
			StartApples:      2,
			MaxSpawnAttempts: 256,
			StartLevel:       0,
		},
		Levels: []SnakeLevel{
			{MoveDelayMs: 600},
			{MoveDelayMs: 500},
			{MoveDelayMs: 400},
		},
		Player: PlayerConfig{
			Name: "player",
		},
		Storage: StorageConfig{
			DBPath: "~/.snake/scores.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.snake/snake.log",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
