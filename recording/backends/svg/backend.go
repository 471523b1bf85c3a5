// Package svg provides a vector graphics backend for the recording system.
//
// Every edge of every path becomes one <line> element; recorded bounding
// boxes become four lines each. The canvas is sized from the maximum corner
// of the recording bounds plus its minimum corner, so content offset from
// the origin keeps the same margin on the far side.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/cursor/recording/backends/svg"
//
//	backend, _ := recording.NewBackend("svg")
//	recording.Save(rec, backend, "out", "drawing") // out/drawing.svg
package svg

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/recording"
)

func init() {
	recording.Register("svg", func() recording.WriterBackend {
		return NewBackend()
	})
}

// DefaultStrokeWidth is the line width used unless WithStrokeWidth is given.
const DefaultStrokeWidth = 0.5

// Option configures a Backend.
type Option func(*Backend)

// WithStrokeWidth sets the stroke width of every line.
func WithStrokeWidth(w float64) Option {
	return func(b *Backend) {
		b.strokeWidth = w
	}
}

// WithStroke sets the stroke color as an SVG paint value.
func WithStroke(color string) Option {
	return func(b *Backend) {
		b.stroke = color
	}
}

// Backend renders recordings to SVG markup.
type Backend struct {
	strokeWidth float64
	stroke      string

	buf   bytes.Buffer
	lines int
}

// Ensure Backend implements the required interfaces.
var _ recording.WriterBackend = (*Backend)(nil)

// NewBackend creates a new SVG backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		strokeWidth: DefaultStrokeWidth,
		stroke:      "rgb(0%,0%,0%)",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Extension implements recording.WriterBackend.
func (b *Backend) Extension() string { return ".svg" }

// Begin writes the document header. The recording must not be empty.
func (b *Backend) Begin(rec *recording.Recording) error {
	b.buf.Reset()
	b.lines = 0

	bb, err := rec.Bounds()
	if err != nil {
		return fmt.Errorf("svg: %w", err)
	}

	b.buf.WriteString(`<?xml version="1.0" encoding="utf-8" ?>` + "\n")
	fmt.Fprintf(&b.buf,
		`<svg baseProfile="tiny" height="%s" version="1.2" width="%s" xmlns="http://www.w3.org/2000/svg">`+"\n",
		num(bb.H+bb.Y), num(bb.W+bb.X))
	return nil
}

// BeginPath implements recording.Backend.
func (b *Backend) BeginPath(_ *cursor.Path) error { return nil }

// Line writes one line element.
func (b *Backend) Line(start, end cursor.TimedPosition) {
	fmt.Fprintf(&b.buf,
		`<line stroke="%s" stroke-width="%s" x1="%s" x2="%s" y1="%s" y2="%s" />`+"\n",
		b.stroke, num(b.strokeWidth), num(start.X), num(end.X), num(start.Y), num(end.Y))
	b.lines++
}

// EndPath implements recording.Backend.
func (b *Backend) EndPath(_ *cursor.Path) error { return nil }

// Box writes the four sides of bb.
func (b *Backend) Box(bb cursor.BoundingBox) {
	for start, end := range bb.Path().Connections() {
		b.Line(start, end)
	}
}

// End closes the document.
func (b *Backend) End() error {
	b.buf.WriteString("</svg>\n")
	return nil
}

// Lines returns the number of line elements written by the last playback.
func (b *Backend) Lines() int {
	return b.lines
}

// WriteTo implements recording.WriterBackend.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// num formats v with the fewest digits that round-trip.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
