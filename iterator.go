package cursor

import "iter"

// PathIterator walks every path of a collection once. It is the shared
// traversal used by all backends.
type PathIterator struct {
	paths *PathCollection
}

// NewPathIterator returns an iterator over pc.
func NewPathIterator(pc *PathCollection) *PathIterator {
	return &PathIterator{paths: pc}
}

// Points yields every vertex of every path in order.
func (it *PathIterator) Points() iter.Seq[TimedPosition] {
	return func(yield func(TimedPosition) bool) {
		for _, p := range it.paths.paths {
			for _, v := range p.vertices {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Paths yields every path in order together with its edges. Backends that
// need per-path setup, such as lifting a pen, walk this form.
func (it *PathIterator) Paths() iter.Seq2[*Path, iter.Seq2[TimedPosition, TimedPosition]] {
	return func(yield func(*Path, iter.Seq2[TimedPosition, TimedPosition]) bool) {
		for _, p := range it.paths.paths {
			if !yield(p, p.Connections()) {
				return
			}
		}
	}
}

// Connections yields each pair of consecutive vertices as a (start, end)
// edge. Traversal restarts at every path, so no edge joins the last vertex
// of one path to the first vertex of the next.
func (it *PathIterator) Connections() iter.Seq2[TimedPosition, TimedPosition] {
	return func(yield func(TimedPosition, TimedPosition) bool) {
		for _, edges := range it.Paths() {
			for start, end := range edges {
				if !yield(start, end) {
					return
				}
			}
		}
	}
}

// Connections yields each pair of consecutive vertices of p as a
// (start, end) edge. A path with fewer than two vertices yields nothing.
func (p *Path) Connections() iter.Seq2[TimedPosition, TimedPosition] {
	return func(yield func(TimedPosition, TimedPosition) bool) {
		for i := 1; i < len(p.vertices); i++ {
			if !yield(p.vertices[i-1], p.vertices[i]) {
				return
			}
		}
	}
}
