package piece

import "testing"

// fieldFixture holds the hand-computed cells of every kind and rotation for
// a piece anchored at (3, 5).
var fieldFixture = map[Kind][4][CellCount]Offset{
	KindO: {
		N: {{4, 6}, {4, 7}, {5, 6}, {5, 7}},
		E: {{4, 6}, {4, 7}, {5, 6}, {5, 7}},
		S: {{4, 6}, {4, 7}, {5, 6}, {5, 7}},
		W: {{4, 6}, {4, 7}, {5, 6}, {5, 7}},
	},
	KindI: {
		N: {{3, 7}, {4, 7}, {5, 7}, {6, 7}},
		E: {{5, 8}, {5, 7}, {5, 6}, {5, 5}},
		S: {{6, 6}, {5, 6}, {4, 6}, {3, 6}},
		W: {{4, 5}, {4, 6}, {4, 7}, {4, 8}},
	},
	KindT: {
		N: {{3, 6}, {4, 6}, {5, 6}, {4, 7}},
		E: {{4, 7}, {4, 6}, {4, 5}, {5, 6}},
		S: {{5, 6}, {4, 6}, {3, 6}, {4, 5}},
		W: {{4, 5}, {4, 6}, {4, 7}, {3, 6}},
	},
	KindL: {
		N: {{3, 6}, {4, 6}, {5, 6}, {5, 7}},
		E: {{4, 7}, {4, 6}, {4, 5}, {5, 5}},
		S: {{5, 6}, {4, 6}, {3, 6}, {3, 5}},
		W: {{4, 5}, {4, 6}, {4, 7}, {3, 7}},
	},
	KindJ: {
		N: {{3, 7}, {3, 6}, {4, 6}, {5, 6}},
		E: {{5, 7}, {4, 7}, {4, 6}, {4, 5}},
		S: {{5, 5}, {5, 6}, {4, 6}, {3, 6}},
		W: {{3, 5}, {4, 5}, {4, 6}, {4, 7}},
	},
	KindS: {
		N: {{3, 6}, {4, 6}, {4, 7}, {5, 7}},
		E: {{4, 7}, {4, 6}, {5, 6}, {5, 5}},
		S: {{5, 6}, {4, 6}, {4, 5}, {3, 5}},
		W: {{4, 5}, {4, 6}, {3, 6}, {3, 7}},
	},
	KindZ: {
		N: {{3, 7}, {4, 7}, {4, 6}, {5, 6}},
		E: {{5, 7}, {5, 6}, {4, 6}, {4, 5}},
		S: {{5, 5}, {4, 5}, {4, 6}, {3, 6}},
		W: {{3, 5}, {3, 6}, {4, 6}, {4, 7}},
	},
}

func TestFieldOffsetsFixture(t *testing.T) {
	for _, k := range All {
		for _, r := range Rotations {
			t.Run(k.String()+r.String(), func(t *testing.T) {
				p := Piece{Kind: k, Position: O(3, 5), Rotation: r}
				got := p.FieldOffsets()
				want := fieldFixture[k][r]
				if got != want {
					t.Errorf("FieldOffsets() = %v, expected %v", got, want)
				}
			})
		}
	}
}

func TestRotateTransforms(t *testing.T) {
	o := O(2, 1)
	tests := []struct {
		r    Rotation
		want Offset
	}{
		{N, O(2, 1)},
		{E, O(1, -2)},
		{S, O(-2, -1)},
		{W, O(-1, 2)},
	}

	for _, tc := range tests {
		if got := Rotate(o, tc.r); got != tc.want {
			t.Errorf("Rotate(%v, %v) = %v, expected %v", o, tc.r, got, tc.want)
		}
	}
}

func TestNextRotationCycle(t *testing.T) {
	expected := map[Rotation]Rotation{N: E, E: S, S: W, W: N}
	for from, to := range expected {
		if got := from.Next(); got != to {
			t.Errorf("%v.Next() = %v, expected %v", from, got, to)
		}
	}
}

func TestFourRotationsIsIdentity(t *testing.T) {
	for _, k := range All {
		for _, start := range Rotations {
			p := Piece{Kind: k, Position: O(4, 10), Rotation: start}
			q := p
			for range 4 {
				q = q.WithRotation(q.Rotation.Next())
			}
			if q.FieldOffsets() != p.FieldOffsets() {
				t.Errorf("%v from %v: four rotations changed cells %v -> %v",
					k, start, p.FieldOffsets(), q.FieldOffsets())
			}
		}
	}
}

func TestORotationIsNoOp(t *testing.T) {
	north := LocalCells(KindO, N)
	for _, r := range Rotations {
		if got := LocalCells(KindO, r); got != north {
			t.Errorf("O at %v = %v, expected unrotated %v", r, got, north)
		}
	}
}

func TestRotationStaysInBoundingBox(t *testing.T) {
	for _, k := range All {
		size := k.GridSize()
		for _, r := range Rotations {
			for _, c := range LocalCells(k, r) {
				if c.X < 0 || c.Y < 0 || c.X >= size || c.Y >= size {
					t.Errorf("%v at %v: cell %v escapes %dx%d box", k, r, c, size, size)
				}
			}
		}
	}
}

func TestMovedByIsPure(t *testing.T) {
	p := New(KindT, O(3, 19))
	moved := p.MovedBy(O(-1, 0))

	if p.Position != O(3, 19) {
		t.Errorf("MovedBy mutated the receiver: %v", p.Position)
	}
	if moved.Position != O(2, 19) {
		t.Errorf("moved.Position = %v, expected (2,19)", moved.Position)
	}
	if moved.Kind != p.Kind || moved.Rotation != p.Rotation {
		t.Error("MovedBy must keep kind and rotation")
	}
}

func TestKindGeometry(t *testing.T) {
	tests := []struct {
		kind       Kind
		grid, w, h int
	}{
		{KindO, 3, 2, 2},
		{KindI, 4, 4, 1},
		{KindT, 3, 3, 2},
		{KindL, 3, 3, 2},
		{KindJ, 3, 3, 2},
		{KindS, 3, 3, 2},
		{KindZ, 3, 3, 2},
	}

	for _, tc := range tests {
		if tc.kind.GridSize() != tc.grid || tc.kind.Width() != tc.w || tc.kind.Height() != tc.h {
			t.Errorf("%v: grid/width/height = %d/%d/%d, expected %d/%d/%d", tc.kind,
				tc.kind.GridSize(), tc.kind.Width(), tc.kind.Height(), tc.grid, tc.w, tc.h)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range All {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, err := ParseKind("t"); err != nil || k != KindT {
		t.Errorf("ParseKind is case sensitive: %v, %v", k, err)
	}
	if _, err := ParseKind("X"); err == nil {
		t.Error("ParseKind(\"X\") should fail")
	}
}
