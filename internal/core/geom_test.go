package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 10, 6).Inset(1)
	if r != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v", r)
	}

	// Never negative
	tiny := NewRect(0, 0, 1, 1).Inset(2)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset on tiny rect should clamp to zero, got %+v", tiny)
	}
}

func TestRectCentered(t *testing.T) {
	r := NewRect(0, 0, 20, 10).Centered(4, 2)
	if r != NewRect(8, 4, 4, 2) {
		t.Errorf("Centered(4, 2) = %+v, expected (8,4,4,2)", r)
	}
}
