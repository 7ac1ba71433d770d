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
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectExpand(t *testing.T) {
	r := NewRect(10, 10, 20, 10).Expand(5)
	if r.X != 5 || r.Y != 5 || r.W != 30 || r.H != 20 {
		t.Errorf("Expand(5) = %+v, expected {5 5 30 20}", r)
	}

	// Expanded rect must contain points the original did not.
	if !r.Contains(7, 7) {
		t.Error("Expanded rect should contain (7, 7)")
	}
}

func TestEaseOutQuad(t *testing.T) {
	if EaseOutQuad(0) != 0 {
		t.Errorf("EaseOutQuad(0) = %v, expected 0", EaseOutQuad(0))
	}
	if EaseOutQuad(1) != 1 {
		t.Errorf("EaseOutQuad(1) = %v, expected 1", EaseOutQuad(1))
	}

	// Monotone increasing over [0, 1].
	prev := 0.0
	for i := 1; i <= 10; i++ {
		v := EaseOutQuad(float64(i) / 10)
		if v <= prev {
			t.Errorf("EaseOutQuad not monotone at t=%v: %v <= %v", float64(i)/10, v, prev)
		}
		prev = v
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Errorf("Lerp(0, 10, 0.5) = %v, expected 5", got)
	}
	if got := Lerp(-90, 0, 1); got != 0 {
		t.Errorf("Lerp(-90, 0, 1) = %v, expected 0", got)
	}
}
