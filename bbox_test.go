package cursor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoundingBoxExtent(t *testing.T) {
	bb := BoundingBox{X: 10, Y: 20, W: 110, H: 70}
	if got := bb.Width(); got != 100 {
		t.Errorf("Width() = %v, want 100", got)
	}
	if got := bb.Height(); got != 50 {
		t.Errorf("Height() = %v, want 50", got)
	}
	if got := bb.Center(); got != Pt(60, 45) {
		t.Errorf("Center() = %v, want (60, 45)", got)
	}
	if got, want := bb.String(), "BB(x=10, y=20, w=110, h=70)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBoundingBoxContains(t *testing.T) {
	bb := BoundingBox{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{5, 5, true},
		{0.001, 9.999, true},
		{0, 5, false},
		{10, 5, false},
		{5, 0, false},
		{5, 10, false},
		{-1, 5, false},
		{11, 11, false},
	}
	for _, tt := range tests {
		if got := bb.Contains(TimedPosition{X: tt.x, Y: tt.y}); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBoundingBoxInside(t *testing.T) {
	bb := BoundingBox{X: 0, Y: 0, W: 100, H: 100}
	in := path(10, 10, 0, 90, 90, 1)
	out := path(10, 10, 0, 100, 50, 1)

	if !bb.Inside(in) {
		t.Error("Inside() = false for a path strictly inside")
	}
	if bb.Inside(out) {
		t.Error("Inside() = true for a path touching the edge")
	}

	pc := NewPathCollection(WithTimestamp(1))
	pc.Add(in)
	if !bb.InsideCollection(pc) {
		t.Error("InsideCollection() = false, want true")
	}
	pc.Add(out)
	if bb.InsideCollection(pc) {
		t.Error("InsideCollection() = true with one path outside")
	}
}

func TestBoundingBoxPath(t *testing.T) {
	bb := BoundingBox{X: 1, Y: 2, W: 3, H: 4}
	want := []TimedPosition{
		{X: 1, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 4}, {X: 1, Y: 4}, {X: 1, Y: 2},
	}
	if diff := cmp.Diff(want, bb.Path().Vertices()); diff != "" {
		t.Errorf("Path() mismatch (-want +got):\n%s", diff)
	}
}
