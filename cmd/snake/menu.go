package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

// runMenu loops between the start menu, games and the scoreboard until the
// player quits.
func runMenu(_ *cobra.Command, _ []string) {
	s, err := loadSettings()
	if err != nil {
		fatal("%v", err)
	}

	store := openStore(s)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	restoreLog := useLogFile(s)
	defer restoreLog()

	for {
		result, err := tui.RunMenu(store, s.player, cfg)
		if err != nil {
			s.logger.Error("menu failed", "error", err)
			return
		}
		cfg = result.Config

		switch result.Choice {
		case tui.MenuScores:
			goBack, sbErr := tui.RunScoreboard(store, s.player, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				s.logger.Error("scoreboard failed", "error", sbErr)
			}
			if !goBack {
				return
			}
			continue

		case tui.MenuNewGame, tui.MenuResume:
		default:
			return
		}

		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gameCfg := snake.ConfigFrom(s.game, seed)
		if result.Level > 0 {
			gameCfg.StartLevel = result.Level - 1
		}

		quit, err := tui.Run(tui.GameOptions{
			Config:  gameCfg,
			Store:   store,
			Logger:  s.logger,
			Player:  s.player,
			Runtime: cfg,
			Resume:  result.Choice == tui.MenuResume,
		})
		if err != nil {
			s.logger.Error("game failed", "error", err)
			return
		}
		if quit {
			return
		}
	}
}
