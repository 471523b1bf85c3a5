package cursor

import "math"

// Morph returns a new path with the shape of p whose endpoints are moved to
// start and end.
//
// Every vertex is scaled about the origin (not about the path start) by the
// ratio of the new and old start-to-end distances, rotated by the signed
// angle between the scaled and the requested start-to-end directions, and
// finally translated so that the first vertex lands on start. Timestamps are
// copied unchanged.
//
// A path whose start and end coincide cannot be measured; its scale ratio
// falls back to 1.0 and its rotation to zero.
func (p *Path) Morph(start, end Point) (*Path, error) {
	if p.Empty() {
		return nil, ErrEmptyPath
	}

	oldDir := p.vertices[len(p.vertices)-1].Pos().Sub(p.vertices[0].Pos())
	newDir := end.Sub(start)

	ratio := newDir.Length() / oldDir.Length()
	if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		ratio = 1.0
	}

	out := &Path{
		vertices: make([]TimedPosition, len(p.vertices)),
		Layer:    p.Layer,
		Pen:      p.Pen,
		LineType: p.LineType,
		Velocity: p.Velocity,
		Force:    p.Force,
		Polygon:  p.Polygon,
	}
	for i, v := range p.vertices {
		s := v.Pos().Mul(ratio)
		out.vertices[i] = TimedPosition{X: s.X, Y: s.Y, Timestamp: v.Timestamp}
	}

	current := out.vertices[len(out.vertices)-1].Pos().Sub(out.vertices[0].Pos())
	angle := signedAngle(current, newDir)
	for i := range out.vertices {
		out.vertices[i].Rotate(angle)
	}

	shift := start.Sub(out.vertices[0].Pos())
	out.Translate(shift.X, shift.Y)

	return out, nil
}

// signedAngle returns the counter-clockwise rotation in [0, 2π) that turns
// the direction of from into the direction of to. Zero-length inputs yield 0.
func signedAngle(from, to Point) float64 {
	if from.Length() == 0 || to.Length() == 0 {
		return 0
	}
	from = from.Normalize()
	to = to.Normalize()

	angle := math.Acos(clamp(from.Dot(to), -1, 1))
	// acos only covers [0, π]; a clockwise target needs the complement.
	if from.Cross(to) < 0 {
		angle = 2*math.Pi - angle
	}
	return angle
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Interp returns a path in between p and other. Both are resampled to
// max(p.Len(), other.Len()) vertices by proportional index and each of x, y
// and timestamp is mixed independently by t: t=0 yields p's samples, t=1
// yields other's. A nil or empty path on either side is ErrEmptyPath.
func (p *Path) Interp(other *Path, t float64) (*Path, error) {
	if p.Empty() || other.Empty() {
		return nil, ErrEmptyPath
	}

	n := max(len(p.vertices), len(other.vertices))
	out := &Path{vertices: make([]TimedPosition, n)}
	for i := range n {
		a := p.vertices[resampleIndex(i, n, len(p.vertices))]
		b := other.vertices[resampleIndex(i, n, len(other.vertices))]
		out.vertices[i] = TimedPosition{
			X:         Mix(a.X, b.X, t),
			Y:         Mix(a.Y, b.Y, t),
			Timestamp: Mix(a.Timestamp, b.Timestamp, t),
		}
	}
	return out, nil
}

// resampleIndex maps output index i of n onto a source of length size.
func resampleIndex(i, n, size int) int {
	return int(float64(i) / float64(n) * float64(size))
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float64) float64 {
	return (b-a)*t + a
}
