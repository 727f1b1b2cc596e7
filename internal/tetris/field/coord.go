// Package field implements the fixed-size cell grid that pieces fall into.
//
// The same Field type backs the main playfield and every preview box (hold,
// next, queue); only the dimensions differ. Rows are numbered from the bottom.
package field

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris/piece"
)

// Coordinate is an absolute cell position with the origin at the bottom-left.
// Both components are never negative; PieceCells rejects pieces that would
// produce negative coordinates.
type Coordinate struct {
	X int
	Y int
}

// C is a convenience constructor for Coordinate.
func C(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Cell is the content of one grid square: empty, or filled with a color.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Empty returns an unoccupied cell.
func Empty() Cell {
	return Cell{}
}

// FilledCell returns a cell occupied by a block of color c.
func FilledCell(c core.Color) Cell {
	return Cell{Filled: true, Color: c}
}

// toCoordinate converts a piece-local offset into a coordinate.
// ok is false when either component is negative.
func toCoordinate(o piece.Offset) (Coordinate, bool) {
	if o.X < 0 || o.Y < 0 {
		return Coordinate{}, false
	}
	return Coordinate{X: o.X, Y: o.Y}, true
}
