package core

// RuntimeConfig describes the terminal a game is hosted in.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// Fits reports whether a board of w x h cells plus hudRows of chrome fits on screen.
func (c RuntimeConfig) Fits(w, h, hudRows int) bool {
	return c.ScreenW >= w && c.ScreenH >= h+hudRows
}
