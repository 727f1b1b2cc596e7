package piece

// Rotation is the facing of a piece. It cycles N → E → S → W → N.
type Rotation uint8

const (
	N Rotation = iota
	E
	S
	W
)

// Rotations lists every facing in cycle order.
var Rotations = [4]Rotation{N, E, S, W}

// Next returns the facing one clockwise step further.
func (r Rotation) Next() Rotation {
	switch r {
	case N:
		return E
	case E:
		return S
	case S:
		return W
	default:
		return N
	}
}

// IntrinsicOffset is the quadrant shift that moves a rotated shape back into
// its bounding box. Multiply by (grid size - 1) before use.
func (r Rotation) IntrinsicOffset() Offset {
	switch r {
	case E:
		return Offset{X: 0, Y: 1}
	case S:
		return Offset{X: 1, Y: 1}
	case W:
		return Offset{X: 1, Y: 0}
	default:
		return Offset{}
	}
}

// String returns the compass letter of the rotation.
func (r Rotation) String() string {
	switch r {
	case N:
		return "N"
	case E:
		return "E"
	case S:
		return "S"
	case W:
		return "W"
	default:
		return "?"
	}
}
