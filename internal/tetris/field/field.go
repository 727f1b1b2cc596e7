package field

import (
	"errors"
	"iter"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/tetris/piece"
)

// Standard playfield dimensions.
const (
	StandardWidth  = 10
	StandardHeight = 20
)

// ErrUnplaceable is returned by PlacePiece when the piece leaves the field or
// overlaps a filled cell.
var ErrUnplaceable = errors.New("field: piece is not placeable")

// Field is a width×height grid of cells stored row-major from the bottom row.
type Field struct {
	width  int
	height int
	cells  []Cell
}

// New returns an empty field of the given size.
func New(width, height int) *Field {
	if width <= 0 || height <= 0 {
		panic("field: dimensions must be positive")
	}
	return &Field{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Standard returns an empty 10×20 playfield.
func Standard() *Field {
	return New(StandardWidth, StandardHeight)
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.width }

// Height returns the number of rows.
func (f *Field) Height() int { return f.height }

// IsOnField reports whether c lies inside the visible grid.
func (f *Field) IsOnField(c Coordinate) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < f.width && c.Y < f.height
}

// IsValidCoord reports whether c is inside the horizontal bounds.
// Positions above the top row are valid while a piece is still entering.
func (f *Field) IsValidCoord(c Coordinate) bool {
	return c.X >= 0 && c.X < f.width
}

// Index returns the linear index of an on-field coordinate.
func (f *Field) Index(c Coordinate) int {
	return c.Y*f.width + c.X
}

// Get returns the cell at c. Off-field coordinates read as empty.
func (f *Field) Get(c Coordinate) Cell {
	if !f.IsOnField(c) {
		return Empty()
	}
	return f.cells[f.Index(c)]
}

// Set writes the cell at c. Off-field writes are ignored.
func (f *Field) Set(c Coordinate, cell Cell) {
	if !f.IsOnField(c) {
		return
	}
	f.cells[f.Index(c)] = cell
}

// PieceCells converts the piece's cells into absolute coordinates.
// ok is false if any cell has a negative component or lies past the right edge.
// Cells above the top row are allowed.
func (f *Field) PieceCells(p piece.Piece) (cells [piece.CellCount]Coordinate, ok bool) {
	for i, o := range p.FieldOffsets() {
		c, valid := toCoordinate(o)
		if !valid || !f.IsValidCoord(c) {
			return cells, false
		}
		cells[i] = c
	}
	return cells, true
}

// IsClipping reports whether p is out of bounds or overlaps a filled cell.
// Cells above the visible field never clip.
func (f *Field) IsClipping(p piece.Piece) bool {
	cells, ok := f.PieceCells(p)
	if !ok {
		return true
	}
	for _, c := range cells {
		if f.IsOnField(c) && f.cells[f.Index(c)].Filled {
			return true
		}
	}
	return false
}

// IsPlaceable reports whether every cell of p is on the field and empty.
func (f *Field) IsPlaceable(p piece.Piece) bool {
	cells, ok := f.PieceCells(p)
	if !ok {
		return false
	}
	for _, c := range cells {
		if !f.IsOnField(c) || f.cells[f.Index(c)].Filled {
			return false
		}
	}
	return true
}

// HasOutOfBoundsOrOverlap validates a rotation: a cell left or right of the
// field, or one overlapping a filled on-field cell, fails. Negative y is
// tolerated.
func (f *Field) HasOutOfBoundsOrOverlap(p piece.Piece) bool {
	for _, o := range p.FieldOffsets() {
		if o.X < 0 || o.X >= f.width {
			return true
		}
		if o.Y < 0 {
			continue
		}
		c := Coordinate{X: o.X, Y: o.Y}
		if f.IsOnField(c) && f.cells[f.Index(c)].Filled {
			return true
		}
	}
	return false
}

// PlacePiece stamps the piece's color into the field. The field is left
// untouched and ErrUnplaceable is returned if the piece is not placeable.
func (f *Field) PlacePiece(p piece.Piece) error {
	if !f.IsPlaceable(p) {
		return ErrUnplaceable
	}
	cells, _ := f.PieceCells(p)
	color := p.Kind.Color()
	for _, c := range cells {
		f.cells[f.Index(c)] = FilledCell(color)
	}
	return nil
}

// FullLines returns the indices of completely filled rows in ascending order.
func (f *Field) FullLines() []int {
	var rows []int
	for y := range f.height {
		if f.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

func (f *Field) rowFull(y int) bool {
	for _, c := range f.row(y) {
		if !c.Filled {
			return false
		}
	}
	return true
}

func (f *Field) row(y int) []Cell {
	return f.cells[y*f.width : (y+1)*f.width]
}

// ClearLines removes the given rows and shifts everything above them down.
// rows must be ascending; they are processed from the highest down so the
// lower indices stay valid.
func (f *Field) ClearLines(rows []int) {
	if !slices.IsSorted(rows) {
		panic("field: ClearLines requires ascending row indices")
	}
	for _, y := range slices.Backward(rows) {
		if y < 0 || y >= f.height {
			panic("field: ClearLines row out of range")
		}
		copy(f.cells[y*f.width:], f.cells[(y+1)*f.width:])
		clear(f.row(f.height - 1))
	}
}

// Clear empties every cell.
func (f *Field) Clear() {
	clear(f.cells)
}

// Cells yields every coordinate and its cell, bottom row first and left to
// right within a row. The sequence can be ranged over repeatedly.
func (f *Field) Cells() iter.Seq2[Coordinate, Cell] {
	return func(yield func(Coordinate, Cell) bool) {
		for i, cell := range f.cells {
			if !yield(Coordinate{X: i % f.width, Y: i / f.width}, cell) {
				return
			}
		}
	}
}

// FilledCount returns the number of occupied cells.
func (f *Field) FilledCount() int {
	n := 0
	for _, c := range f.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the field.
func (f *Field) Clone() *Field {
	return &Field{
		width:  f.width,
		height: f.height,
		cells:  slices.Clone(f.cells),
	}
}

// Equal reports whether both fields have the same size and contents.
func (f *Field) Equal(other *Field) bool {
	return f.width == other.width && f.height == other.height &&
		slices.Equal(f.cells, other.cells)
}

// String draws the field top row first, '#' for filled and '.' for empty.
func (f *Field) String() string {
	var b strings.Builder
	for y := f.height - 1; y >= 0; y-- {
		for _, c := range f.row(y) {
			if c.Filled {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		if y > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
