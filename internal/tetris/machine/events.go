package machine

import "fmt"

// EventKind identifies what woke the machine.
type EventKind int

const (
	EventGravity  EventKind = iota + 1 // gravity timer fired
	EventLockDown                      // lock-down grace timer fired
	EventInput                         // player input
)

var eventNames = map[EventKind]string{
	EventGravity:  "gravity",
	EventLockDown: "lock-down",
	EventInput:    "input",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EventKind) UnmarshalText(b []byte) error {
	for kind, name := range eventNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("machine: unknown event %q", b)
}

// Event is one unit of work for Dispatch. Events are plain values so a game
// can be journaled and replayed.
type Event struct {
	Kind  EventKind `yaml:"kind"`
	Input Input     `yaml:"input,omitempty"`
}

// GravityEvent is delivered when the gravity timer fires.
func GravityEvent() Event { return Event{Kind: EventGravity} }

// LockDownEvent is delivered when the lock-down timer fires.
func LockDownEvent() Event { return Event{Kind: EventLockDown} }

// InputEvent wraps a player input.
func InputEvent(in Input) Event { return Event{Kind: EventInput, Input: in} }

func (e Event) String() string {
	if e.Kind == EventInput {
		return "input " + e.Input.String()
	}
	return e.Kind.String()
}

// Signal is sent from the machine to its owner after state changes.
type Signal interface {
	signal()
}

// RedrawSignal asks the renderer to redraw from a fresh snapshot.
type RedrawSignal struct{}

func (RedrawSignal) signal() {}

// LinesClearedSignal reports the rows about to be removed, bottom first.
type LinesClearedSignal struct {
	Rows []int
}

func (LinesClearedSignal) signal() {}

// PlacedSignal is sent after the cursor is stamped into the field.
type PlacedSignal struct{}

func (PlacedSignal) signal() {}

// GameOverSignal is sent once when the game ends.
type GameOverSignal struct {
	Score int
	Level int
	Lines int
}

func (GameOverSignal) signal() {}
