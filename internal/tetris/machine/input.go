package machine

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/tetris/piece"
)

// InputKind identifies a decoded player input.
type InputKind int

const (
	InputMove InputKind = iota + 1
	InputRotation
	InputSoftDropStart
	InputSoftDropStop
	InputHardDrop
	InputPause
	InputHold
	InputContinue
)

var inputNames = map[InputKind]string{
	InputMove:          "move",
	InputRotation:      "rotation",
	InputSoftDropStart: "soft-drop-start",
	InputSoftDropStop:  "soft-drop-stop",
	InputHardDrop:      "hard-drop",
	InputPause:         "pause",
	InputHold:          "hold",
	InputContinue:      "continue",
}

// String returns the input name.
func (k InputKind) String() string {
	if name, ok := inputNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k InputKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *InputKind) UnmarshalText(b []byte) error {
	for kind, name := range inputNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("machine: unknown input %q", b)
}

// Input is one discrete, already decoded player input.
// Move is set for InputMove and Rotation for InputRotation.
type Input struct {
	Kind     InputKind      `yaml:"kind"`
	Move     engine.Move    `yaml:"move,omitempty"`
	Rotation piece.Rotation `yaml:"rotation,omitempty"`
}

// MoveInput returns a horizontal move input.
func MoveInput(m engine.Move) Input {
	return Input{Kind: InputMove, Move: m}
}

// RotationInput returns an input turning the cursor to r.
func RotationInput(r piece.Rotation) Input {
	return Input{Kind: InputRotation, Rotation: r}
}

// Simple returns an input that carries no argument.
func Simple(k InputKind) Input {
	return Input{Kind: k}
}

// String returns a short description of the input.
func (in Input) String() string {
	switch in.Kind {
	case InputMove:
		return "move " + in.Move.String()
	case InputRotation:
		return "rotate " + in.Rotation.String()
	default:
		return in.Kind.String()
	}
}

// Decode turns a platform action into an input. next is the rotation a
// rotate key should produce, usually Engine.NextCursorRotation.
// Only soft drop reacts to key release. ok is false for actions the rules
// do not consume; those are ignored, not errors.
func Decode(action core.Action, edge core.KeyEdge, next piece.Rotation) (in Input, ok bool) {
	if edge == core.KeyUp {
		if action == core.ActionSoftDrop {
			return Simple(InputSoftDropStop), true
		}
		return Input{}, false
	}

	switch action {
	case core.ActionLeft:
		return MoveInput(engine.MoveLeft), true
	case core.ActionRight:
		return MoveInput(engine.MoveRight), true
	case core.ActionRotate:
		return RotationInput(next), true
	case core.ActionSoftDrop:
		return Simple(InputSoftDropStart), true
	case core.ActionHardDrop:
		return Simple(InputHardDrop), true
	case core.ActionPause:
		return Simple(InputPause), true
	case core.ActionHold:
		return Simple(InputHold), true
	case core.ActionContinue:
		return Simple(InputContinue), true
	default:
		return Input{}, false
	}
}
