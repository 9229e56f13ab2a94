package snake

import "fmt"

// Event drives the mode state machine.
type Event string

const (
	EventStart   Event = "start"
	EventPause   Event = "pause"
	EventWin     Event = "win"
	EventCrash   Event = "crash"
	EventRestore Event = "restore"
)

// transition is one row of the state table. Rows are matched in order;
// an empty from list matches every mode.
type transition struct {
	from  []Mode
	event Event
	guard func(*Game) bool
	via   Mode // Transient mode passed through on the way to "to"
	to    Mode
	apply func(*Game) []Effect
}

func (t transition) matches(mode Mode, ev Event) bool {
	if t.event != ev {
		return false
	}
	if len(t.from) == 0 {
		return true
	}
	for _, m := range t.from {
		if m == mode {
			return true
		}
	}
	return false
}

var transitions = []transition{
	{
		from:  []Mode{ModeReady, ModeLose, ModeGameOver},
		event: EventStart,
		to:    ModeRunning,
		apply: func(g *Game) []Effect {
			g.initNewGame()
			return []Effect{{Kind: EffectHideStatus}, g.labels()}
		},
	},
	{
		from:  []Mode{ModePaused},
		event: EventStart,
		to:    ModeRunning,
		apply: func(g *Game) []Effect {
			return []Effect{{Kind: EffectHideStatus}}
		},
	},
	{
		from:  []Mode{ModeRunning},
		event: EventPause,
		to:    ModePaused,
		apply: pausedStatus,
	},
	{
		from:  []Mode{ModeRunning},
		event: EventWin,
		guard: func(g *Game) bool { return g.level+1 >= LevelCount() },
		via:   ModeWin,
		to:    ModeGameOver,
		apply: func(g *Game) []Effect {
			return g.gameOver("You cleared every level!")
		},
	},
	{
		from:  []Mode{ModeRunning},
		event: EventWin,
		via:   ModeWin,
		to:    ModeLose,
		apply: func(g *Game) []Effect {
			g.level++
			return []Effect{
				statusEffect(
					fmt.Sprintf("Level cleared! %d lives left", g.lives),
					fmt.Sprintf("Press Up for level %d: %s", g.level+1, g.LevelName()),
				),
				g.labels(),
			}
		},
	},
	{
		from:  []Mode{ModeRunning},
		event: EventCrash,
		guard: func(g *Game) bool { return g.lives <= 0 },
		to:    ModeGameOver,
		apply: func(g *Game) []Effect {
			return g.gameOver("Out of lives!")
		},
	},
	{
		from:  []Mode{ModeRunning},
		event: EventCrash,
		to:    ModeLose,
		apply: func(g *Game) []Effect {
			status := statusEffect(
				fmt.Sprintf("Ouch! %d lives left", g.lives),
				"Press Up to retry this level",
			)
			if g.level == 0 {
				status = statusEffect(
					fmt.Sprintf("Game over: score %d", g.score),
					"Press Up to try again",
				)
			}
			return []Effect{status, g.labels()}
		},
	},
	{
		event: EventRestore,
		to:    ModePaused,
		apply: pausedStatus,
	},
}

func pausedStatus(g *Game) []Effect {
	return []Effect{statusEffect("Paused", "Press Up to continue"), g.labels()}
}

// fire applies the first transition row matching the current mode and event.
// Unmatched events are ignored.
func (g *Game) fire(ev Event) []Effect {
	for _, t := range transitions {
		if !t.matches(g.mode, ev) {
			continue
		}
		if t.guard != nil && !t.guard(g) {
			continue
		}

		from := g.mode
		var effects []Effect
		if t.via != "" {
			effects = append(effects,
				Effect{Kind: EffectMode, From: from, To: t.via},
				Effect{Kind: EffectMode, From: t.via, To: t.to},
			)
		} else {
			effects = append(effects, Effect{Kind: EffectMode, From: from, To: t.to})
		}
		if t.apply != nil {
			effects = append(effects, t.apply(g)...)
		}
		g.mode = t.to
		return effects
	}
	return nil
}

// gameOver records the finished game, hands its score to the high-score
// record (which keeps the better of the two) and resets the counters for a
// fresh campaign.
func (g *Game) gameOver(title string) []Effect {
	final := g.score
	effects := []Effect{
		{Kind: EffectRecordGame, Score: final, Level: g.level},
		{Kind: EffectSaveHighScore, Score: final, Speed: int(g.moveDelay.Milliseconds())},
	}
	g.SetHighScore(final)

	effects = append(effects, statusEffect(title,
		fmt.Sprintf("Final score %d - press Up for a new game", final)))

	g.level = 0
	g.lives = g.cfg.Lives
	g.score = 0
	return append(effects, g.labels())
}
