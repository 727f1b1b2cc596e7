// Package piece defines tetrimino shapes, rotations and the pure geometric
// transforms that place a piece's cells relative to the field.
//
// Offsets are signed and piece-local; nothing here knows about field bounds.
package piece

import "fmt"

// Offset is a signed (x, y) vector: a piece-local cell, an anchor position or
// a movement delta. Y grows upwards.
type Offset struct {
	X int
	Y int
}

// O is a convenience constructor for Offset.
func O(x, y int) Offset {
	return Offset{X: x, Y: y}
}

// String returns a string representation of the offset.
func (o Offset) String() string {
	return fmt.Sprintf("(%d,%d)", o.X, o.Y)
}

// Add returns the component-wise sum of two offsets.
func Add(a, b Offset) Offset {
	return Offset{X: a.X + b.X, Y: a.Y + b.Y}
}

// Scale multiplies both components by k.
func Scale(o Offset, k int) Offset {
	return Offset{X: o.X * k, Y: o.Y * k}
}

// Rotate applies the pure 90° rotation of r about the origin.
func Rotate(o Offset, r Rotation) Offset {
	switch r {
	case S:
		return Offset{X: -o.X, Y: -o.Y}
	case E:
		return Offset{X: o.Y, Y: -o.X}
	case W:
		return Offset{X: -o.Y, Y: o.X}
	default:
		return o
	}
}
