package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "touching right edge",
			a:        NewRect(0, 0, 16, 16),
			b:        NewRect(16, 0, 16, 16),
			expected: false,
		},
		{
			name:     "touching bottom edge",
			a:        NewRect(0, 0, 16, 16),
			b:        NewRect(0, 16, 16, 16),
			expected: false,
		},
		{
			name:     "touching corner only",
			a:        NewRect(0, 0, 16, 16),
			b:        NewRect(16, 16, 16, 16),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single unit overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
		{
			name:     "projections overlap on x only",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 20, 10, 10),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestCollisionTest(t *testing.T) {
	player := NewRect(10, 10, 16, 16)
	tiles := []Rect{
		NewRect(0, 0, 16, 16),   // overlaps top-left
		NewRect(26, 10, 16, 16), // touches right edge
		NewRect(16, 16, 16, 16), // overlaps bottom-right
		NewRect(100, 100, 16, 16),
	}

	hits := CollisionTest(player, tiles)
	if len(hits) != 2 {
		t.Fatalf("CollisionTest() returned %d hits, expected 2", len(hits))
	}
	if hits[0] != tiles[0] || hits[1] != tiles[2] {
		t.Errorf("CollisionTest() = %v, expected hits in input order", hits)
	}

	if CollisionTest(player, nil) != nil {
		t.Error("CollisionTest() with no tiles should return nil")
	}
	if !CollidesAny(player, tiles) {
		t.Error("CollidesAny() should report the overlap")
	}
	if CollidesAny(player, tiles[1:2]) {
		t.Error("CollidesAny() should ignore edge contact")
	}
}

func TestRectSetters(t *testing.T) {
	r := NewRect(5, 10, 12, 16)

	r.SetRight(32)
	if r.X != 20 || r.Right() != 32 {
		t.Errorf("SetRight(32) gave X=%d Right=%d", r.X, r.Right())
	}

	r.SetBottom(48)
	if r.Y != 32 || r.Bottom() != 48 {
		t.Errorf("SetBottom(48) gave Y=%d Bottom=%d", r.Y, r.Bottom())
	}

	moved := r.Translate(-4, 2)
	if moved.X != 16 || moved.Y != 34 || moved.W != 12 || moved.H != 16 {
		t.Errorf("Translate() = %+v", moved)
	}
}

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

func TestFit(t *testing.T) {
	tests := []struct {
		name           string
		cw, ch, ww, wh int
		expected       Rect
	}{
		{"exact ratio", 3, 2, 600, 400, NewRect(0, 0, 600, 400)},
		{"wide window letterboxes sides", 3, 2, 900, 400, NewRect(150, 0, 600, 400)},
		{"tall window letterboxes top", 3, 2, 600, 800, NewRect(0, 200, 600, 400)},
		{"zero window", 3, 2, 0, 400, Rect{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fit(tc.cw, tc.ch, tc.ww, tc.wh)
			if got != tc.expected {
				t.Errorf("Fit() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
