package snake

// EffectKind identifies a side effect the host must apply.
type EffectKind int

const (
	// EffectMode reports a mode change (From -> To).
	EffectMode EffectKind = iota
	// EffectStatus shows a status message (Title, Detail).
	EffectStatus
	// EffectHideStatus hides the status message.
	EffectHideStatus
	// EffectLabels refreshes the score/lives/level labels.
	EffectLabels
	// EffectSaveHighScore stores a finished game's result (Score, Speed) in the
	// player's record, raising the high score only if Score beats it.
	EffectSaveHighScore
	// EffectRecordGame records a finished game (Score, Level).
	EffectRecordGame
)

func (k EffectKind) String() string {
	switch k {
	case EffectMode:
		return "mode"
	case EffectStatus:
		return "status"
	case EffectHideStatus:
		return "hide_status"
	case EffectLabels:
		return "labels"
	case EffectSaveHighScore:
		return "save_high_score"
	case EffectRecordGame:
		return "record_game"
	default:
		return "unknown"
	}
}

// Effect is returned by state transitions instead of being executed inline.
// Only the fields relevant to Kind are set.
type Effect struct {
	Kind   EffectKind
	From   Mode
	To     Mode
	Title  string
	Detail string
	Score  int
	Lives  int
	Level  int // 0-indexed
	Speed  int // Move delay in milliseconds
}

func statusEffect(title, detail string) Effect {
	return Effect{Kind: EffectStatus, Title: title, Detail: detail}
}

// FindEffect returns the first effect of the given kind.
func FindEffect(effects []Effect, kind EffectKind) (Effect, bool) {
	for _, e := range effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}
