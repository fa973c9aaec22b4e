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

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 40, 20)
	inner := outer.Centered(10, 4)

	if inner.X != 15 || inner.Y != 8 {
		t.Errorf("Centered() origin = (%d, %d), expected (15, 8)", inner.X, inner.Y)
	}
	if inner.Right() != 25 || inner.Bottom() != 12 {
		t.Errorf("Centered() edges = (%d, %d), expected (25, 12)", inner.Right(), inner.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampInvertedRangeAndAbs(t *testing.T) {
	// An empty range yields lo.
	if got := Clamp(7, 0, -3); got != 0 {
		t.Errorf("Clamp(7, 0, -3) = %d, expected 0", got)
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned wrong value")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		want Color
		ok   bool
	}{
		{"gold", ColorGold, true},
		{" Brown ", ColorBrown, true},
		{"forest", ColorForest, true},
		{"chartreuse", ColorDefault, false},
	}
	for _, tc := range tests {
		got, ok := ParseColor(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
	if ColorGold.String() != "gold" {
		t.Errorf("ColorGold.String() = %q", ColorGold.String())
	}
}

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionNone)
	f.Set(ActionRight)
	f.Set(ActionDown)

	if len(f.Actions) != 3 {
		t.Fatalf("expected 3 actions, got %v", f.Actions)
	}
	if !f.Has(ActionDown) || f.Has(ActionUp) {
		t.Error("Has reported wrong membership")
	}

	clone := f.Clone()
	f.Clear()
	if len(f.Actions) != 0 {
		t.Error("Clear should empty the frame")
	}
	if len(clone.Actions) != 3 {
		t.Error("Clone should not share storage with the original")
	}
	if !ActionLeft.IsMovement() || ActionAttack.IsMovement() {
		t.Error("IsMovement misclassified actions")
	}
}
