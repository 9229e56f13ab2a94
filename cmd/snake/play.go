package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagLevel  int
	flagResume bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game straight away, skipping the menu.

Controls:
  Up/W/K        - Start, resume, or steer north
  Arrows/WASD   - Steer
  Z/X           - Turn left/right relative to the heading
  P/Space       - Pause
  Esc/B         - Save and leave
  Q/Ctrl+C      - Save and quit

Difficulty options:
  easy   - 5 lives, gentle speed-up
  normal - 3 lives, 10% faster per apple
  hard   - 2 lives, 15% faster per apple
  fixed  - No speed-up, each level keeps its starting pace

Examples:
  snake play
  snake play --level 3
  snake play --difficulty hard
  snake play --resume
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level (1-3, 0 = from config)")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the player's saved game")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagLevel < 0 || flagLevel > snake.LevelCount() {
		fatal("level must be between 1 and %d", snake.LevelCount())
	}

	s, err := loadSettings()
	if err != nil {
		fatal("%v", err)
	}

	store := openStore(s)
	if flagResume && store == nil {
		fatal("cannot resume without a scores database")
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gameCfg := snake.ConfigFrom(s.game, seed)
	if flagLevel > 0 {
		gameCfg.StartLevel = flagLevel - 1
	}

	restoreLog := useLogFile(s)
	_, runErr := tui.Run(tui.GameOptions{
		Config:  gameCfg,
		Store:   store,
		Logger:  s.logger,
		Player:  s.player,
		Runtime: runtimeConfig(),
		Resume:  flagResume,
	})
	restoreLog()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}
