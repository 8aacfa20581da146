package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCenteredRect(t *testing.T) {
	tests := []struct {
		name         string
		outerW, outH int
		w, h         int
		want         Rect
	}{
		{"fits", 80, 24, 20, 10, Rect{X: 30, Y: 7, W: 20, H: 10}},
		{"exact", 10, 5, 10, 5, Rect{X: 0, Y: 0, W: 10, H: 5}},
		{"too big", 10, 5, 20, 8, Rect{X: 0, Y: 0, W: 20, H: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenteredRect(tt.outerW, tt.outH, tt.w, tt.h); got != tt.want {
				t.Errorf("CenteredRect() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionAccelerate)

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionLeft) {
		t.Error("Clear should drop all actions")
	}
	if !clone.Has(ActionLeft) || !clone.Has(ActionAccelerate) || clone.Has(ActionRight) {
		t.Errorf("clone should keep the original actions, got %v", clone.Actions)
	}

	var zero InputFrame
	if zero.Has(ActionStart) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionStart)
	if !zero.Has(ActionStart) {
		t.Error("Set on zero frame should work")
	}
}
