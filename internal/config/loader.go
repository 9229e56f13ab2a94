package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Smallest grid that still fits every level layout and the exit gate.
const (
	MinGridWidth  = 16
	MinGridHeight = 10
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := DefaultSnakeConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/snake.yaml"); err == nil {
		candidate := DefaultSnakeConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// Validate checks the configuration for values the game cannot run with.
func (c SnakeConfig) Validate() error {
	if c.Grid.Width < MinGridWidth || c.Grid.Height < MinGridHeight {
		return fmt.Errorf("%w: grid %dx%d is smaller than %dx%d",
			ErrInvalidConfig, c.Grid.Width, c.Grid.Height, MinGridWidth, MinGridHeight)
	}
	if c.Gameplay.Lives <= 0 {
		return fmt.Errorf("%w: lives must be positive, got %d", ErrInvalidConfig, c.Gameplay.Lives)
	}
	if c.Gameplay.SpeedUpFactor <= 0 || c.Gameplay.SpeedUpFactor > 1 {
		return fmt.Errorf("%w: speed_up_factor must be in (0, 1], got %v", ErrInvalidConfig, c.Gameplay.SpeedUpFactor)
	}
	if c.Gameplay.StartApples < 0 {
		return fmt.Errorf("%w: start_apples must not be negative", ErrInvalidConfig)
	}
	if c.Gameplay.StartLevel < 0 {
		return fmt.Errorf("%w: start_level must not be negative", ErrInvalidConfig)
	}
	for i, l := range c.Levels {
		if l.MoveDelayMs < 0 {
			return fmt.Errorf("%w: level %d move_delay_ms must not be negative", ErrInvalidConfig, i+1)
		}
	}
	return nil
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Gameplay.SpeedUpFactor = 0.95
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Gameplay.SpeedUpFactor = 0.85
	case DifficultyFixed:
		cfg.Gameplay.SpeedUpFactor = 1.0
	}
}
