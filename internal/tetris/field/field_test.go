package field

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris/piece"
)

// parse builds a field from rows drawn top row first ('#' filled, '.' empty).
func parse(t *testing.T, rows ...string) *Field {
	t.Helper()
	f := New(len(rows[0]), len(rows))
	for i, line := range rows {
		y := len(rows) - 1 - i
		for x, ch := range line {
			if ch == '#' {
				f.Set(C(x, y), FilledCell(core.ColorGray))
			}
		}
	}
	return f
}

func fillRow(f *Field, y int, skip ...int) {
	for x := range f.Width() {
		if !contains(skip, x) {
			f.Set(C(x, y), FilledCell(core.ColorGray))
		}
	}
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func TestBounds(t *testing.T) {
	f := Standard()
	tests := []struct {
		c       Coordinate
		onField bool
		valid   bool
	}{
		{C(0, 0), true, true},
		{C(9, 19), true, true},
		{C(10, 0), false, false},
		{C(0, 20), false, true},
		{C(9, 25), false, true},
		{C(-1, 0), false, false},
		{C(0, -1), false, true},
		{C(-3, -3), false, false},
	}

	for _, tc := range tests {
		if got := f.IsOnField(tc.c); got != tc.onField {
			t.Errorf("IsOnField(%v) = %v, expected %v", tc.c, got, tc.onField)
		}
		if got := f.IsValidCoord(tc.c); got != tc.valid {
			t.Errorf("IsValidCoord(%v) = %v, expected %v", tc.c, got, tc.valid)
		}
	}
}

func TestNegativeCoordinatesAreOffField(t *testing.T) {
	f := Standard()
	for _, c := range []Coordinate{C(-1, 0), C(0, -1), C(-1, -1)} {
		f.Set(c, FilledCell(core.ColorRed))
		if got := f.Get(c); got != Empty() {
			t.Errorf("Get(%v) = %v, expected empty", c, got)
		}
	}
	if n := f.FilledCount(); n != 0 {
		t.Errorf("FilledCount() = %d after off-field writes, expected 0", n)
	}
}

func TestIndex(t *testing.T) {
	f := Standard()
	if got := f.Index(C(3, 2)); got != 23 {
		t.Errorf("Index(3,2) = %d, expected 23", got)
	}
	if got := f.Index(C(9, 19)); got != 199 {
		t.Errorf("Index(9,19) = %d, expected 199", got)
	}
}

func TestPieceCells(t *testing.T) {
	f := Standard()
	tests := []struct {
		name string
		p    piece.Piece
		ok   bool
	}{
		{"spawn T", piece.New(piece.KindT, piece.O(3, 19)), true},
		{"above field", piece.New(piece.KindT, piece.O(3, 40)), true},
		{"past right edge", piece.New(piece.KindI, piece.O(7, 10)), false},
		{"past left edge", piece.New(piece.KindT, piece.O(-1, 10)), false},
		{"below floor", piece.New(piece.KindT, piece.O(3, -2)), false},
		{"negative anchor, cells on field", piece.New(piece.KindI, piece.O(0, -2)), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := f.PieceCells(tc.p)
			if ok != tc.ok {
				t.Errorf("PieceCells ok = %v, expected %v", ok, tc.ok)
			}
		})
	}

	cells, _ := f.PieceCells(piece.New(piece.KindT, piece.O(3, 19)))
	want := [4]Coordinate{C(3, 20), C(4, 20), C(5, 20), C(4, 21)}
	if cells != want {
		t.Errorf("spawn T cells = %v, expected %v", cells, want)
	}
}

func TestIsClippingAboveField(t *testing.T) {
	f := Standard()
	fillRow(f, 19)

	for _, k := range piece.All {
		p := piece.New(k, piece.O(3, 25))
		if f.IsClipping(p) {
			t.Errorf("%v above the field should not clip", k)
		}
		if f.IsPlaceable(p) {
			t.Errorf("%v above the field should not be placeable", k)
		}
	}
}

func TestIsClippingHorizontalBounds(t *testing.T) {
	f := Standard()
	for x := -3; x <= 10; x++ {
		p := piece.New(piece.KindO, piece.O(x, 5))
		cells := p.FieldOffsets()
		outside := false
		for _, c := range cells {
			if c.X < 0 || c.X >= f.Width() {
				outside = true
			}
		}
		if got := f.IsClipping(p); got != outside {
			t.Errorf("O at x=%d: IsClipping = %v, expected %v", x, got, outside)
		}
	}
}

func TestOverlapRejectsEveryKind(t *testing.T) {
	for _, k := range piece.All {
		for _, r := range piece.Rotations {
			f := Standard()
			p := piece.Piece{Kind: k, Position: piece.O(3, 8), Rotation: r}
			if !f.IsPlaceable(p) {
				t.Fatalf("%v%v should be placeable on an empty field", k, r)
			}

			cells, _ := f.PieceCells(p)
			for _, c := range cells {
				f.Set(c, FilledCell(core.ColorGray))
				if f.IsPlaceable(p) {
					t.Errorf("%v%v placeable over filled %v", k, r, c)
				}
				if !f.IsClipping(p) {
					t.Errorf("%v%v not clipping over filled %v", k, r, c)
				}
				if !f.HasOutOfBoundsOrOverlap(p) {
					t.Errorf("%v%v no overlap over filled %v", k, r, c)
				}
				f.Set(c, Empty())
			}
		}
	}
}

func TestHasOutOfBoundsOrOverlap(t *testing.T) {
	f := Standard()
	tests := []struct {
		name string
		p    piece.Piece
		want bool
	}{
		{"inside", piece.New(piece.KindT, piece.O(3, 5)), false},
		{"below floor is tolerated", piece.New(piece.KindT, piece.O(3, -3)), false},
		{"above field", piece.New(piece.KindT, piece.O(3, 30)), false},
		{"left", piece.New(piece.KindT, piece.O(-1, 5)), true},
		{"right", piece.Piece{Kind: piece.KindI, Position: piece.O(8, 5), Rotation: piece.E}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.HasOutOfBoundsOrOverlap(tc.p); got != tc.want {
				t.Errorf("HasOutOfBoundsOrOverlap = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestPlacePiece(t *testing.T) {
	f := Standard()
	p := piece.New(piece.KindS, piece.O(0, -1))
	if err := f.PlacePiece(p); err != nil {
		t.Fatalf("PlacePiece: %v", err)
	}

	if f.FilledCount() != 4 {
		t.Errorf("FilledCount = %d, expected 4", f.FilledCount())
	}
	cells, _ := f.PieceCells(p)
	for _, c := range cells {
		got := f.Get(c)
		if !got.Filled || got.Color != core.ColorGreen {
			t.Errorf("cell %v = %+v, expected green block", c, got)
		}
	}

	before := f.Clone()
	if err := f.PlacePiece(p); !errors.Is(err, ErrUnplaceable) {
		t.Errorf("second PlacePiece err = %v, expected ErrUnplaceable", err)
	}
	if !f.Equal(before) {
		t.Error("failed PlacePiece modified the field")
	}
}

func TestFullLinesAscending(t *testing.T) {
	f := parse(t,
		"....",
		"####",
		"#.##",
		"####",
		"####",
	)
	got := f.FullLines()
	want := []int{0, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("FullLines = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FullLines = %v, expected %v", got, want)
		}
	}
}

func TestClearLinesShiftsRows(t *testing.T) {
	f := parse(t,
		"#...",
		".#..",
		"####",
		"..#.",
		"####",
		"...#",
	)
	f.ClearLines([]int{1, 3})

	want := parse(t,
		"....",
		"....",
		"#...",
		".#..",
		"..#.",
		"...#",
	)
	if !f.Equal(want) {
		t.Errorf("after ClearLines:\n%s\nexpected:\n%s", f, want)
	}
}

func TestClearLinesFourRows(t *testing.T) {
	f := Standard()
	for y := range 4 {
		fillRow(f, y)
	}
	f.Set(C(2, 4), FilledCell(core.ColorRed))
	f.ClearLines(f.FullLines())

	if f.FilledCount() != 1 {
		t.Errorf("FilledCount = %d, expected 1", f.FilledCount())
	}
	if got := f.Get(C(2, 0)); !got.Filled || got.Color != core.ColorRed {
		t.Errorf("shifted cell = %+v, expected red block at (2,0)", got)
	}
	if len(f.FullLines()) != 0 {
		t.Error("cleared rows reappeared")
	}
}

func TestClearLinesUnsortedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ClearLines with descending input should panic")
		}
	}()
	Standard().ClearLines([]int{3, 1})
}

func TestCompleteBottomRow(t *testing.T) {
	f := Standard()
	fillRow(f, 0, 6, 7, 8, 9)

	if got := f.FullLines(); len(got) != 0 {
		t.Fatalf("FullLines before placement = %v, expected none", got)
	}

	// Flat I: its cells sit two rows above the anchor.
	i := piece.New(piece.KindI, piece.O(6, -2))
	if err := f.PlacePiece(i); err != nil {
		t.Fatalf("PlacePiece: %v", err)
	}

	rows := f.FullLines()
	if len(rows) != 1 || rows[0] != 0 {
		t.Fatalf("FullLines = %v, expected [0]", rows)
	}

	f.ClearLines(rows)
	for x := range f.Width() {
		if f.Get(C(x, 0)).Filled {
			t.Errorf("cell (%d,0) still filled after clear", x)
		}
	}
	if got := f.FullLines(); len(got) != 0 {
		t.Errorf("FullLines after clear = %v, expected none", got)
	}
	if f.FilledCount() != 0 {
		t.Errorf("FilledCount = %d, expected 0", f.FilledCount())
	}
}

func TestCellsOrder(t *testing.T) {
	f := New(3, 2)
	f.Set(C(2, 1), FilledCell(core.ColorBlue))

	var got []Coordinate
	for c, cell := range f.Cells() {
		got = append(got, c)
		if cell.Filled != (c == C(2, 1)) {
			t.Errorf("cell %v filled = %v", c, cell.Filled)
		}
	}

	want := []Coordinate{C(0, 0), C(1, 0), C(2, 0), C(0, 1), C(1, 1), C(2, 1)}
	if len(got) != len(want) {
		t.Fatalf("Cells yielded %d items, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %v, expected %v", i, got[i], want[i])
		}
	}

	// Restartable and stoppable.
	n := 0
	for range f.Cells() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("early break yielded %d items", n)
	}
	n = 0
	for range f.Cells() {
		n++
	}
	if n != 6 {
		t.Errorf("second pass yielded %d items, expected 6", n)
	}
}

func TestClearAndString(t *testing.T) {
	f := parse(t,
		"#.",
		".#",
	)
	if got := f.String(); got != strings.Join([]string{"#.", ".#"}, "\n") {
		t.Errorf("String() = %q", got)
	}

	f.Clear()
	if f.FilledCount() != 0 {
		t.Errorf("FilledCount after Clear = %d", f.FilledCount())
	}
}
