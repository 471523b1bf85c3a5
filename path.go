package cursor

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"
)

// Path is an ordered sequence of timed positions representing one
// continuous stroke. Sequence order is capture order; timestamps are not
// guaranteed to be monotonic once a path has been interpolated.
//
// The plotter attributes are optional. Their zero values mean "unspecified"
// and backends substitute their own defaults.
//
// Path is not safe for concurrent mutation.
type Path struct {
	vertices []TimedPosition

	// Layer names the drawing layer the path belongs to. Backends that
	// support per-layer pens or line types look it up in their mappings.
	Layer string

	// Pen selects a plotter pen explicitly, overriding any layer mapping.
	Pen int

	// LineType is a plotter line pattern; empty means solid.
	LineType string

	// Velocity and Force are plotter pen speed and pressure.
	Velocity int
	Force    int

	// Polygon marks a closed, filled shape.
	Polygon bool
}

// NewPath creates a path holding a copy of the given vertices.
func NewPath(vertices ...TimedPosition) *Path {
	return &Path{vertices: slices.Clone(vertices)}
}

// Add appends a new vertex.
func (p *Path) Add(x, y, timestamp float64) {
	p.vertices = append(p.vertices, TimedPosition{X: x, Y: y, Timestamp: timestamp})
}

// Clear removes all vertices.
func (p *Path) Clear() {
	p.vertices = p.vertices[:0]
}

// Len returns the number of vertices.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.vertices)
}

// Empty reports whether the path has no vertices. A nil path is empty.
func (p *Path) Empty() bool {
	return p == nil || len(p.vertices) == 0
}

// At returns the i-th vertex.
func (p *Path) At(i int) (TimedPosition, error) {
	if i < 0 || i >= len(p.vertices) {
		return TimedPosition{}, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, len(p.vertices))
	}
	return p.vertices[i], nil
}

// Vertices returns a copy of the vertex sequence.
func (p *Path) Vertices() []TimedPosition {
	return slices.Clone(p.vertices)
}

// All returns an iterator over copies of the vertices in order.
func (p *Path) All() iter.Seq2[int, TimedPosition] {
	return func(yield func(int, TimedPosition) bool) {
		for i, v := range p.vertices {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Start returns the first vertex.
func (p *Path) Start() (TimedPosition, error) {
	if len(p.vertices) == 0 {
		return TimedPosition{}, ErrEmptyPath
	}
	return p.vertices[0], nil
}

// End returns the last vertex.
func (p *Path) End() (TimedPosition, error) {
	if len(p.vertices) == 0 {
		return TimedPosition{}, ErrEmptyPath
	}
	return p.vertices[len(p.vertices)-1], nil
}

// BoundingBox returns the box spanning the minimum and maximum coordinates
// of the path.
func (p *Path) BoundingBox() (BoundingBox, error) {
	if len(p.vertices) == 0 {
		return BoundingBox{}, ErrEmptyPath
	}
	bb := BoundingBox{
		X: math.Inf(1), Y: math.Inf(1),
		W: math.Inf(-1), H: math.Inf(-1),
	}
	for _, v := range p.vertices {
		bb = bb.extend(v)
	}
	return bb, nil
}

// Distance returns the travel distance of the path: the summed Euclidean
// distance between consecutive vertices after scaling each coordinate by
// the device resolution.
func (p *Path) Distance(res Resolution) float64 {
	device := func(tp TimedPosition) Point {
		return Point{X: tp.X * res.Width, Y: tp.Y * res.Height}
	}
	var dist float64
	for i := 0; i+1 < len(p.vertices); i++ {
		dist += device(p.vertices[i]).Distance(device(p.vertices[i+1]))
	}
	return dist
}

// Translate moves every vertex by (dx, dy).
func (p *Path) Translate(dx, dy float64) {
	for i := range p.vertices {
		p.vertices[i].Translate(dx, dy)
	}
}

// Scale multiplies every vertex by (sx, sy).
func (p *Path) Scale(sx, sy float64) {
	for i := range p.vertices {
		p.vertices[i].Scale(sx, sy)
	}
}

// Rotate rotates every vertex by theta radians about the origin.
func (p *Path) Rotate(theta float64) {
	for i := range p.vertices {
		p.vertices[i].Rotate(theta)
	}
}

// Clean removes vertices whose coordinates repeat the following vertex.
// Of a run of coordinate-identical vertices only the last one survives, so
// the final vertex of the path is always retained.
func (p *Path) Clean() {
	n := len(p.vertices)
	if n < 2 {
		return
	}
	kept := make([]TimedPosition, 0, n)
	for i := 0; i < n-1; i++ {
		cur, next := p.vertices[i], p.vertices[i+1]
		if cur.X == next.X && cur.Y == next.Y {
			continue
		}
		kept = append(kept, cur)
	}
	p.vertices = append(kept, p.vertices[n-1])
}

// Copy returns a deep copy of the path, attributes included.
func (p *Path) Copy() *Path {
	c := *p
	c.vertices = slices.Clone(p.vertices)
	return &c
}

// Reverse reverses the vertex order in place.
func (p *Path) Reverse() {
	slices.Reverse(p.vertices)
}

// Reversed returns a reversed copy of the path.
func (p *Path) Reversed() *Path {
	c := p.Copy()
	c.Reverse()
	return c
}

// Equal reports whether both paths hold the same vertex sequence.
// Plotter attributes are not compared.
func (p *Path) Equal(o *Path) bool {
	if p == nil || o == nil {
		return p == o
	}
	return slices.EqualFunc(p.vertices, o.vertices, TimedPosition.Equal)
}

// Hash returns a hex content fingerprint over the vertex sequence.
func (p *Path) Hash() string {
	h := md5.New()
	var buf [24]byte
	for _, v := range p.vertices {
		binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(v.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(v.Y))
		binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(v.Timestamp))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteString("Path[")
	for i, v := range p.vertices {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
