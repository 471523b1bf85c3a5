package cursor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type edge struct{ from, to Point }

func TestPathIteratorPoints(t *testing.T) {
	pc := NewPathCollection(WithTimestamp(1))
	pc.Add(path(0, 0, 0, 1, 1, 1))
	pc.Add(path(2, 2, 2))

	var got []Point
	for tp := range NewPathIterator(pc).Points() {
		got = append(got, tp.Pos())
	}
	want := []Point{{0, 0}, {1, 1}, {2, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%s", diff)
	}
}

func TestPathIteratorConnections(t *testing.T) {
	pc := NewPathCollection(WithTimestamp(1))
	pc.Add(path(0, 0, 0, 1, 0, 1))
	pc.Add(path(5, 5, 2))
	pc.Add(path(10, 10, 3, 11, 10, 4, 11, 11, 5))

	var got []edge
	for a, b := range NewPathIterator(pc).Connections() {
		got = append(got, edge{a.Pos(), b.Pos()})
	}
	// No edge bridges consecutive paths and a single vertex yields none.
	want := []edge{
		{Pt(0, 0), Pt(1, 0)},
		{Pt(10, 10), Pt(11, 10)},
		{Pt(11, 10), Pt(11, 11)},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(edge{})); diff != "" {
		t.Errorf("Connections() mismatch (-want +got):\n%s", diff)
	}
}

func TestPathIteratorEarlyStop(t *testing.T) {
	pc := NewPathCollection(WithTimestamp(1))
	pc.Add(path(0, 0, 0, 1, 0, 1, 2, 0, 2))
	pc.Add(path(5, 5, 3, 6, 6, 4))

	n := 0
	for range NewPathIterator(pc).Connections() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d edges, want 2", n)
	}

	n = 0
	for range NewPathIterator(pc).Points() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterated %d points, want 1", n)
	}
}

func TestPathIteratorPaths(t *testing.T) {
	pc := NewPathCollection(WithTimestamp(1))
	pc.Add(path(0, 0, 0, 1, 0, 1, 1, 1, 2))
	pc.Add(path(5, 5, 3))

	var lens, edges []int
	for p, conns := range NewPathIterator(pc).Paths() {
		lens = append(lens, p.Len())
		n := 0
		for range conns {
			n++
		}
		edges = append(edges, n)
	}
	if diff := cmp.Diff([]int{3, 1}, lens); diff != "" {
		t.Errorf("Paths() lengths mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 0}, edges); diff != "" {
		t.Errorf("Paths() edge counts mismatch (-want +got):\n%s", diff)
	}
}
