package core

// Action represents a semantic game action, abstracted from physical key presses.
// The platform maps keys to actions; the rules engine decodes actions into inputs.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // Left arrow, h - shift piece left
	ActionRight             // Right arrow, l - shift piece right
	ActionRotate            // Up arrow, k, x - rotate clockwise
	ActionSoftDrop          // Down arrow, j - accelerate gravity while held
	ActionHardDrop          // Space - drop and lock immediately
	ActionHold              // c, shift - swap with the hold slot
	ActionPause             // p, 1 - pause/unpause game
	ActionContinue          // Enter - restart after game over
	ActionQuit              // q, Ctrl+C - exit game/session
	ActionToggleHelp        // ? - show full key help
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotate:
		return "Rotate"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionHold:
		return "Hold"
	case ActionPause:
		return "Pause"
	case ActionContinue:
		return "Continue"
	case ActionQuit:
		return "Quit"
	case ActionToggleHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// KeyEdge tells whether an action comes from a key press or a key release.
type KeyEdge int

const (
	KeyDown KeyEdge = iota
	KeyUp
)

// String returns "down" or "up".
func (e KeyEdge) String() string {
	if e == KeyUp {
		return "up"
	}
	return "down"
}
