// snake is a walled, three-level Snake game for the terminal.
//
// Usage:
//
//	snake                 - Start menu: new game, resume, level select, scores
//	snake play            - Play straight away
//	snake scores          - Show high scores
//	snake levels          - List the built-in levels
//	snake serve           - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--db <path>         - Set database path (default: ~/.snake/scores.db)
//	--player <name>     - Player name for high scores
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagPlayer   string
	flagSeed     int64
	flagLogLevel string

	// Shared by play and the menu
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - a walled, three-level snake game for your terminal",
	Long: `Snake is a classic snake game played across three walled levels.
Eat apples to grow and speed up, then leave through the gap in the
right-hand wall to reach the next level.

Running snake without a command opens the start menu.

Available commands:
  play     - Start a game directly
  scores   - View high scores
  levels   - List the levels
  serve    - Start SSH server for remote play

Examples:
  snake
  snake play --level 2
  snake play --resume
  snake scores --player alice
  snake serve --ssh :2222`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config: ~/.snake/scores.db)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for high scores (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(serveCmd)
}

// settings is the resolved configuration shared by all commands.
type settings struct {
	game   config.SnakeConfig
	player string
	dbPath string
	logger *log.Logger
}

// loadSettings loads the config file and applies command-line overrides.
func loadSettings() (settings, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return settings{}, err
	}

	preset, ok := config.ParseDifficultyPreset(flagDifficulty)
	if !ok {
		return settings{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	config.ApplySnakePreset(&cfg, preset)

	s := settings{
		game:   cfg,
		player: cfg.Player.Name,
		dbPath: cfg.Storage.DBPath,
	}
	if flagPlayer != "" {
		s.player = flagPlayer
	}
	if flagDBPath != "" {
		s.dbPath = flagDBPath
	}

	levelName := cfg.Log.Level
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	s.logger, err = newLogger(levelName)
	if err != nil {
		return settings{}, err
	}
	return s, nil
}

// newLogger creates the stderr logger used by every command.
func newLogger(levelName string) (*log.Logger, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})
	if levelName == "" {
		return logger, nil
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// useLogFile sends the logger to the configured log file while a local
// program owns the terminal. The returned func puts it back on stderr.
func useLogFile(s settings) func() {
	closeLog, err := tui.LogToFile(s.logger, s.game.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: logging disabled: %v\n", err)
	}
	return func() {
		closeLog() //nolint:errcheck
		s.logger.SetOutput(os.Stderr)
	}
}

// openStore opens the scores database. Games still run without one.
func openStore(s settings) *storage.Store {
	store, err := storage.Open(s.dbPath)
	if err != nil {
		s.logger.Warn("could not open scores database; scores will not be saved", "path", s.dbPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig reads the terminal size, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

// fatal prints err and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
