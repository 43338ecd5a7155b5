package geometry

import "testing"

func TestAABB_ExtendBy(t *testing.T) {
	testCases := []struct {
		name     string
		a        AABB
		b        AABB
		expected AABB
	}{
		{
			name:     "disjoint boxes grow the envelope",
			a:        AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}},
			b:        AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{2, 2, 2}},
			expected: AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{2, 2, 2}},
		},
		{
			name:     "nested box leaves the envelope unchanged",
			a:        AABB{Min: Vec3{-5, -5, -5}, Max: Vec3{5, 5, 5}},
			b:        AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}},
			expected: AABB{Min: Vec3{-5, -5, -5}, Max: Vec3{5, 5, 5}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.a
			a.ExtendBy(tc.b)
			if a != tc.expected {
				t.Errorf("got %+v, want %+v", a, tc.expected)
			}
		})
	}
}

func TestAABB_LimitBy(t *testing.T) {
	a := AABB{Min: Vec3{-1000, -1000, -1000}, Max: Vec3{1000, 1000, 1000}}
	a.LimitBy(MaxMapBounds)
	if a != MaxMapBounds {
		t.Errorf("got %+v, want clamp to %+v", a, MaxMapBounds)
	}
}

func TestAABB_Intersects(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     AABB
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        AABB{Min: Vec3{0, 0, 0}, Max: Vec3{2, 2, 2}},
			b:        AABB{Min: Vec3{1, 1, 1}, Max: Vec3{3, 3, 3}},
			expected: true,
		},
		{
			name:     "touching edges do not intersect (half-open)",
			a:        AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}},
			b:        AABB{Min: Vec3{1, 0, 0}, Max: Vec3{2, 1, 1}},
			expected: false,
		},
		{
			name:     "fully separated",
			a:        AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}},
			b:        AABB{Min: Vec3{5, 5, 5}, Max: Vec3{6, 6, 6}},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestAABB_Contains(t *testing.T) {
	box := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{10, 10, 10}}

	testCases := []struct {
		name     string
		point    Vec3
		expected bool
	}{
		{"center point", Vec3{5, 5, 5}, true},
		{"on the boundary", Vec3{0, 0, 0}, true},
		{"outside on x", Vec3{-1, 5, 5}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.Contains(tc.point); got != tc.expected {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestPositionToCellRoundTrip(t *testing.T) {
	bounds := AABB{Min: Vec3{-10, -10, -10}, Max: Vec3{10, 10, 10}}
	p := Vec3{X: 2.5, Y: -7.5, Z: 0}

	cell := PositionToCell(bounds, p)
	back := CellToPosition(bounds, cell)

	// The reconstructed position should land back within the same cell.
	if back.X < bounds.Min.X || back.X > bounds.Max.X {
		t.Errorf("reconstructed x %v out of bounds", back.X)
	}
	if PositionToCell(bounds, back) != cell {
		t.Errorf("cell_to_position(position_to_cell(p)) did not round-trip to the same cell: %+v", cell)
	}
}
