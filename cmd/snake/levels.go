package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var flagShowLevel int

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long: `Shows the built-in levels with the pace each one starts at.

Examples:
  snake levels
  snake levels --show 3`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagShowLevel, "show", 0, "Draw the wall layout of a level (1-3)")
}

func runLevels(_ *cobra.Command, _ []string) {
	s, err := loadSettings()
	if err != nil {
		fatal("%v", err)
	}
	cfg := snake.ConfigFrom(s.game, 0)

	if flagShowLevel != 0 {
		level := snake.GetLevel(flagShowLevel - 1)
		if level == nil {
			fatal("level must be between 1 and %d", snake.LevelCount())
		}
		fmt.Print(drawLevel(*level, cfg.Width, cfg.Height))
		return
	}

	fmt.Printf("Levels (%dx%d grid, %d lives):\n", cfg.Width, cfg.Height, cfg.Lives)
	fmt.Println()
	fmt.Printf("  %-2s  %-8s  %-6s  %s\n", "#", "Name", "Delay", "Wall segments")
	fmt.Printf("  %-2s  %-8s  %-6s  %s\n", "-", "----", "-----", "-------------")

	for i, level := range snake.Levels {
		delay := level.MoveDelay
		if i < len(cfg.MoveDelays) && cfg.MoveDelays[i] > 0 {
			delay = cfg.MoveDelays[i]
		}
		fmt.Printf("  %-2d  %-8s  %-6s  %d\n", level.ID, level.Name, delay.Round(time.Millisecond), len(level.Segments))
	}

	fmt.Println()
	fmt.Println("Run 'snake play --level <n>' to start on a level.")
}

// drawLevel renders a level's walls as text, with the border gaps open.
func drawLevel(level snake.Level, width, height int) string {
	walls := snake.NewWallMap(width, height)
	walls.Build(level)

	var b strings.Builder
	for y := range height {
		for x := range width {
			if walls.Marked(snake.Cell{X: x, Y: y}) {
				b.WriteRune('#')
			} else {
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}
