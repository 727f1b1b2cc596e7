package piece

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// CellCount is the number of cells in every tetrimino.
const CellCount = 4

// Kind is one of the seven tetrimino shapes.
type Kind uint8

const (
	KindO Kind = iota
	KindI
	KindT
	KindL
	KindJ
	KindS
	KindZ
)

// All lists every kind in declaration order.
var All = [7]Kind{KindO, KindI, KindT, KindL, KindJ, KindS, KindZ}

// shapes holds the north-facing cells of each kind, measured from the
// bottom-left corner of the kind's bounding box.
var shapes = [7][CellCount]Offset{
	KindO: {{1, 1}, {1, 2}, {2, 1}, {2, 2}},
	KindI: {{0, 2}, {1, 2}, {2, 2}, {3, 2}},
	KindT: {{0, 1}, {1, 1}, {2, 1}, {1, 2}},
	KindL: {{0, 1}, {1, 1}, {2, 1}, {2, 2}},
	KindJ: {{0, 2}, {0, 1}, {1, 1}, {2, 1}},
	KindS: {{0, 1}, {1, 1}, {1, 2}, {2, 2}},
	KindZ: {{0, 2}, {1, 2}, {1, 1}, {2, 1}},
}

// Cells returns the north-facing shape of the kind.
func (k Kind) Cells() [CellCount]Offset {
	return shapes[k]
}

// GridSize is the side of the square bounding box: 4 for I, 3 otherwise.
func (k Kind) GridSize() int {
	if k == KindI {
		return 4
	}
	return 3
}

// Width is the number of columns the north-facing shape occupies.
func (k Kind) Width() int {
	switch k {
	case KindO:
		return 2
	case KindI:
		return 4
	default:
		return 3
	}
}

// Height is the number of rows the north-facing shape occupies.
func (k Kind) Height() int {
	if k == KindI {
		return 1
	}
	return 2
}

// Color returns the fixed display color of the kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindO:
		return core.ColorYellow
	case KindI:
		return core.ColorCyan
	case KindT:
		return core.ColorMagenta
	case KindL:
		return core.ColorOrange
	case KindJ:
		return core.ColorBlue
	case KindS:
		return core.ColorGreen
	default:
		return core.ColorRed
	}
}

// String returns the letter naming the kind.
func (k Kind) String() string {
	switch k {
	case KindO:
		return "O"
	case KindI:
		return "I"
	case KindT:
		return "T"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// ParseKind parses a kind letter, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, k := range All {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("piece: unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
