package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresMine  bool
	flagClear       bool
	flagClearAll    bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best finished games and the player's high-score record.

Examples:
  snake scores
  snake scores --mine --player alice
  snake scores --tui
  snake scores --clear --player alice
  snake scores --clear-all`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagScoresMine, "mine", false, "Only show the player's games")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the player's scores and high score")
	scoresCmd.Flags().BoolVar(&flagClearAll, "clear-all", false, "Delete every player's scores")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	s, err := loadSettings()
	if err != nil {
		fatal("%v", err)
	}

	store, err := storage.Open(s.dbPath)
	if err != nil {
		fatal("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClearAll:
		if err := store.ClearScores(""); err != nil {
			fatal("%v", err)
		}
		fmt.Println("All scores cleared.")
		return
	case flagClear:
		if err := store.ClearScores(s.player); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Scores cleared for %s.\n", s.player)
		return
	case flagScoresTUI:
		cfg := runtimeConfig()
		restoreLog := useLogFile(s)
		_, err := tui.RunScoreboard(store, s.player, cfg.ScreenW, cfg.ScreenH)
		restoreLog()
		if err != nil {
			fatal("%v", err)
		}
		return
	}

	var scores []storage.ScoreEntry
	if flagScoresMine {
		scores, err = store.AllScores(s.player)
		if len(scores) > flagScoresLimit && flagScoresLimit > 0 {
			scores = scores[:flagScoresLimit]
		}
	} else {
		scores, err = store.TopScores(flagScoresLimit)
	}
	if err != nil {
		fatal("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Snake")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-7s  %-11s  %s\n", "Rank", "Player", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-16s  %-7s  %-11s  %s\n", "----", "------", "-----", "-----", "----")

	for i, entry := range scores {
		level := fmt.Sprintf("%d", entry.Level+1)
		if l := snake.GetLevel(entry.Level); l != nil {
			level = fmt.Sprintf("%d %s", entry.Level+1, l.Name)
		}
		fmt.Printf("  %-4d  %-16s  %-7d  %-11s  %s\n",
			i+1, entry.Player, entry.Score, level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	rec, err := store.Player(s.player)
	if err == nil && rec.HighScore > 0 {
		fmt.Println()
		fmt.Printf("Best for %s: %d (at %dms per move)\n", s.player, rec.HighScore, rec.Speed)
	}
}
