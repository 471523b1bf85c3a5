package cursor

import "errors"

// Precondition violations. Geometry over an empty set is undefined, so these
// are returned instead of a zero value.
var (
	ErrEmptyPath       = errors.New("cursor: empty path")
	ErrEmptyCollection = errors.New("cursor: empty path collection")
	ErrIndexOutOfRange = errors.New("cursor: index out of range")
)

// Contract violations.
var (
	ErrUnsupportedOperand = errors.New("cursor: can only combine with a *PathCollection or []*Path")
	ErrInvalidFilter      = errors.New("cursor: invalid filter")
)
