package piece

// Piece is a tetrimino of a given kind anchored at a field-absolute position.
// Pieces are values; every transform returns a new Piece.
type Piece struct {
	Kind     Kind
	Position Offset
	Rotation Rotation
}

// New returns a north-facing piece of kind k at position pos.
func New(k Kind, pos Offset) Piece {
	return Piece{Kind: k, Position: pos, Rotation: N}
}

// LocalCells returns the rotated cells relative to the piece anchor.
// O is symmetric and never rotates.
func LocalCells(k Kind, r Rotation) [CellCount]Offset {
	cells := k.Cells()
	if k == KindO {
		return cells
	}

	shift := Scale(r.IntrinsicOffset(), k.GridSize()-1)
	for i, c := range cells {
		cells[i] = Add(Rotate(c, r), shift)
	}
	return cells
}

// FieldOffsets returns the signed field positions of the four cells.
func (p Piece) FieldOffsets() [CellCount]Offset {
	cells := LocalCells(p.Kind, p.Rotation)
	for i, c := range cells {
		cells[i] = Add(c, p.Position)
	}
	return cells
}

// MovedBy returns the piece translated by o.
func (p Piece) MovedBy(o Offset) Piece {
	p.Position = Add(p.Position, o)
	return p
}

// WithRotation returns the piece turned to face r about the same anchor.
func (p Piece) WithRotation(r Rotation) Piece {
	p.Rotation = r
	return p
}
