package cursor

import (
	"cmp"
	"fmt"
	"math"
)

// TimedPosition is a single pointer sample: a 2D position and the time it
// was captured at.
//
// TimedPosition is a plain value; assigning it copies it. The transform
// methods mutate the receiver in place.
type TimedPosition struct {
	X, Y      float64
	Timestamp float64
}

// Pos returns the position without its timestamp.
func (tp TimedPosition) Pos() Point {
	return Point{X: tp.X, Y: tp.Y}
}

// Copy returns an independent copy of tp.
func (tp TimedPosition) Copy() TimedPosition {
	return tp
}

// Translate moves the position by (dx, dy).
func (tp *TimedPosition) Translate(dx, dy float64) {
	tp.X += dx
	tp.Y += dy
}

// Scale multiplies the coordinates by (sx, sy).
func (tp *TimedPosition) Scale(sx, sy float64) {
	tp.X *= sx
	tp.Y *= sy
}

// Rotate rotates the position counter-clockwise by theta radians about the
// origin.
func (tp *TimedPosition) Rotate(theta float64) {
	sin, cos := math.Sincos(theta)
	x := cos*tp.X - sin*tp.Y
	y := sin*tp.X + cos*tp.Y
	tp.X = x
	tp.Y = y
}

// Equal reports whether all three fields of tp and o are equal.
func (tp TimedPosition) Equal(o TimedPosition) bool {
	return tp.X == o.X && tp.Y == o.Y && tp.Timestamp == o.Timestamp
}

// Less orders positions by timestamp only.
func (tp TimedPosition) Less(o TimedPosition) bool {
	return tp.Timestamp < o.Timestamp
}

// Compare orders positions by timestamp only, for use with slices.SortFunc.
func (tp TimedPosition) Compare(o TimedPosition) int {
	return cmp.Compare(tp.Timestamp, o.Timestamp)
}

func (tp TimedPosition) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", tp.X, tp.Y, tp.Timestamp)
}
