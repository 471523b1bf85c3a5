// Package gcode provides a numeric-control toolpath backend for the
// recording system.
//
// The output is line-oriented G-code for pen or drag-knife machines:
//
//	G01 Z0.0 F1000            raise, travel to the origin
//	G01 X0.00 Y0.00 F2000
//	G01 X10.00 Y-5.00 F2000   per path: travel to start
//	G01 Z3.5 F1000            plunge
//	G01 X10.00 Y-5.00 F2000   every vertex
//	...
//	G01 Z0.0 F1000            retract
//	...                       recorded boxes, same bracketing
//	G01 Z0.0 F1000            return to origin
//	G01 X0.00 Y0.00 F2000
//
// Coordinates are printed with two decimals. With InvertY (the default) the
// y axis is negated, matching machines whose y grows away from the operator.
package gcode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/recording"
)

func init() {
	recording.Register("gcode", func() recording.WriterBackend {
		return NewBackend()
	})
}

// Defaults.
const (
	DefaultFeedrateXY = 2000
	DefaultFeedrateZ  = 1000
	DefaultZDown      = 3.5
	DefaultZUp        = 0.0
)

// Option configures a Backend.
type Option func(*Backend)

// WithFeedrateXY sets the feed rate of x/y moves.
func WithFeedrateXY(f int) Option {
	return func(b *Backend) { b.feedrateXY = f }
}

// WithFeedrateZ sets the feed rate of z moves.
func WithFeedrateZ(f int) Option {
	return func(b *Backend) { b.feedrateZ = f }
}

// WithZDown sets the z position of the lowered tool.
func WithZDown(z float64) Option {
	return func(b *Backend) { b.zDown = z }
}

// WithZUp sets the z position of the raised tool.
func WithZUp(z float64) Option {
	return func(b *Backend) { b.zUp = z }
}

// WithInvertY sets whether y coordinates are negated.
func WithInvertY(invert bool) Option {
	return func(b *Backend) { b.invertY = invert }
}

// Backend renders recordings to G-code.
type Backend struct {
	feedrateXY int
	feedrateZ  int
	zDown      float64
	zUp        float64
	invertY    bool

	buf bytes.Buffer
}

// Ensure Backend implements the required interfaces.
var _ recording.WriterBackend = (*Backend)(nil)

// NewBackend creates a new G-code backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		feedrateXY: DefaultFeedrateXY,
		feedrateZ:  DefaultFeedrateZ,
		zDown:      DefaultZDown,
		zUp:        DefaultZUp,
		invertY:    true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Extension implements recording.WriterBackend.
func (b *Backend) Extension() string { return ".nc" }

// Begin raises the tool and travels to the origin.
func (b *Backend) Begin(_ *recording.Recording) error {
	b.buf.Reset()
	b.up()
	b.move(0, 0)
	return nil
}

// BeginPath travels to the path start and plunges.
func (b *Backend) BeginPath(p *cursor.Path) error {
	start, err := p.Start()
	if err != nil {
		return err
	}
	b.moveY(start.X, start.Y)
	b.down()
	b.moveY(start.X, start.Y)
	return nil
}

// Line moves to the end of the edge.
func (b *Backend) Line(_, end cursor.TimedPosition) {
	b.moveY(end.X, end.Y)
}

// EndPath retracts the tool.
func (b *Backend) EndPath(_ *cursor.Path) error {
	b.up()
	return nil
}

// Box draws bb as a closed rectangle.
func (b *Backend) Box(bb cursor.BoundingBox) {
	b.up()
	b.moveY(bb.X, bb.Y)
	b.down()
	b.moveY(bb.X, bb.H)
	b.moveY(bb.W, bb.H)
	b.moveY(bb.W, bb.Y)
	b.moveY(bb.X, bb.Y)
	b.up()
}

// End raises the tool and returns to the origin.
func (b *Backend) End() error {
	b.up()
	b.move(0, 0)
	return nil
}

// WriteTo implements recording.WriterBackend.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

func (b *Backend) up()   { b.z(b.zUp) }
func (b *Backend) down() { b.z(b.zDown) }

func (b *Backend) z(z float64) {
	fmt.Fprintf(&b.buf, "G01 Z%s F%d\n", formatZ(z), b.feedrateZ)
}

// moveY moves to (x, y) in drawing coordinates, applying InvertY.
func (b *Backend) moveY(x, y float64) {
	if b.invertY {
		y = 0 - y
	}
	b.move(x, y)
}

func (b *Backend) move(x, y float64) {
	fmt.Fprintf(&b.buf, "G01 X%.2f Y%.2f F%d\n", x, y, b.feedrateXY)
}

// formatZ prints z with the fewest digits that round-trip, always keeping
// a decimal point.
func formatZ(z float64) string {
	s := strconv.FormatFloat(z, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
