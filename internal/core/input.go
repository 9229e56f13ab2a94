package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - north, also start/resume
	ActionDown             // S, Down arrow - south
	ActionLeft             // A, Left arrow - west
	ActionRight            // D, Right arrow - east
	ActionTurnLeft         // Z, comma - rotate heading counter-clockwise
	ActionTurnRight        // X, period - rotate heading clockwise
	ActionConfirm          // Enter - menu select
	ActionPause            // P, Space
	ActionBack             // B, Escape - back to menu
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
