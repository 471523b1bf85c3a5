package cursor

import (
	"fmt"
	"math"
)

// BoundingBox is an axis-aligned rectangle.
//
// X and Y hold the minimum corner. W and H hold the maximum corner
// coordinates, not the extent: the box spans X..W horizontally and Y..H
// vertically. Use Width and Height for the extent.
type BoundingBox struct {
	X, Y float64
	W, H float64
}

// Width returns the horizontal extent W-X.
func (bb BoundingBox) Width() float64 {
	return bb.W - bb.X
}

// Height returns the vertical extent H-Y.
func (bb BoundingBox) Height() float64 {
	return bb.H - bb.Y
}

// Center returns the midpoint of the box.
func (bb BoundingBox) Center() Point {
	lo := Point{X: bb.X, Y: bb.Y}
	return Point{X: bb.W, Y: bb.H}.Sub(lo).Mul(0.5).Add(lo)
}

// Contains reports whether tp lies strictly inside the box.
func (bb BoundingBox) Contains(tp TimedPosition) bool {
	return bb.X < tp.X && tp.X < bb.W && bb.Y < tp.Y && tp.Y < bb.H
}

// Inside reports whether every vertex of p lies strictly inside the box.
func (bb BoundingBox) Inside(p *Path) bool {
	for _, v := range p.vertices {
		if !bb.Contains(v) {
			return false
		}
	}
	return true
}

// InsideCollection reports whether every vertex of every path in pc lies
// strictly inside the box.
func (bb BoundingBox) InsideCollection(pc *PathCollection) bool {
	for _, p := range pc.paths {
		if !bb.Inside(p) {
			return false
		}
	}
	return true
}

// Path returns the closed outline of the box, starting and ending at the
// minimum corner.
func (bb BoundingBox) Path() *Path {
	p := &Path{}
	p.Add(bb.X, bb.Y, 0)
	p.Add(bb.W, bb.Y, 0)
	p.Add(bb.W, bb.H, 0)
	p.Add(bb.X, bb.H, 0)
	p.Add(bb.X, bb.Y, 0)
	return p
}

// extend grows the box to include tp.
func (bb BoundingBox) extend(tp TimedPosition) BoundingBox {
	return BoundingBox{
		X: math.Min(bb.X, tp.X),
		Y: math.Min(bb.Y, tp.Y),
		W: math.Max(bb.W, tp.X),
		H: math.Max(bb.H, tp.Y),
	}
}

func (bb BoundingBox) String() string {
	return fmt.Sprintf("BB(x=%g, y=%g, w=%g, h=%g)", bb.X, bb.Y, bb.W, bb.H)
}
