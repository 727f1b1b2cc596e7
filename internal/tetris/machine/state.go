// Package machine drives an engine in real time: gravity ticks, the
// lock-down grace period, soft drop, pause and game over.
//
// Everything happens through Dispatch on a single goroutine. Timer callbacks
// are expected to call back into Dispatch from that same goroutine.
package machine

// State is the top-level game state.
type State int

const (
	TickingDown State = iota
	SoftDropping
	LockingDown
	LockedDown
	Paused
	GameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case TickingDown:
		return "TickingDown"
	case SoftDropping:
		return "SoftDropping"
	case LockingDown:
		return "LockingDown"
	case LockedDown:
		return "LockedDown"
	case Paused:
		return "Paused"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Active reports whether the state accepts movement input.
func (s State) Active() bool {
	return s != Paused && s != GameOver
}
