package recording

import (
	"image"
	"io"

	"github.com/gogpu/cursor"
)

// Backend is the interface that all output backends must implement.
// Playback drives a backend through one Begin/End cycle per recording:
//
//	Begin
//	  BeginPath, Line*, EndPath   (once per path, in insertion order)
//	  Box*                        (once per recorded bounding box)
//	End
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Reset all output state in Begin so that it can be reused
//  3. Return ErrSkipped from Begin when it deliberately produces no output
type Backend interface {
	// Begin initializes the backend for the given recording.
	Begin(rec *Recording) error

	// BeginPath starts a new path. Backends that emit per-path headers
	// (pen selection, tool plunge) do so here.
	BeginPath(p *cursor.Path) error

	// Line draws one edge between consecutive vertices of the current path.
	Line(start, end cursor.TimedPosition)

	// EndPath finishes the current path.
	EndPath(p *cursor.Path) error

	// Box draws a recorded bounding box as a closed rectangle.
	Box(bb cursor.BoundingBox)

	// End finalizes the output. After End, WriteTo or Image may be used.
	End() error
}

// WriterBackend is a backend whose output is a file.
type WriterBackend interface {
	Backend

	// Extension returns the file extension, including the leading dot.
	Extension() string

	// WriteTo writes the rendered output to w.
	// This should only be called after End().
	WriteTo(w io.Writer) (int64, error)
}

// ImageBackend is a backend that rasterizes to an image.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil if nothing was rendered.
	// This should only be called after End().
	Image() image.Image
}
