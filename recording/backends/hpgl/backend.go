// Package hpgl provides a pen-plotter backend for the recording system.
//
// The output is an HP-GL command stream. Each path gets a header selecting
// pen, line type, velocity and force, an absolute move to its start, a pen
// down, absolute moves to every following vertex and a pen up:
//
//	SP1;
//	PA0,0
//	PU;
//	SP1;          per path
//	LT;
//	VS110;
//	FS16;
//	PA10,20;
//	PD;
//	PA30,40;
//	PU;
//	PA0,0
//	SP0;
//
// Path attributes (cursor.Path Pen, LineType, Velocity, Force) take
// precedence; otherwise the path's Layer is looked up in the configured
// mappings; otherwise the defaults apply. Polygon paths are wrapped in
// polygon mode and filled.
package hpgl

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/cases"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/recording"
)

func init() {
	recording.Register("hpgl", func() recording.WriterBackend {
		return NewBackend()
	})
}

// Defaults.
const (
	DefaultPen      = 1
	DefaultVelocity = 110
	DefaultForce    = 16
)

// Option configures a Backend.
type Option func(*Backend)

// WithLayerPens maps layer names to pen numbers. Layer names match
// case-insensitively.
func WithLayerPens(m map[string]int) Option {
	return func(b *Backend) {
		b.layerPens = make(map[string]int, len(m))
		for k, v := range m {
			b.layerPens[b.fold.String(k)] = v
		}
	}
}

// WithLayerLineTypes maps layer names to HP-GL line type parameters, such
// as "2" or "2,4". Layer names match case-insensitively.
func WithLayerLineTypes(m map[string]string) Option {
	return func(b *Backend) {
		b.layerLineTypes = make(map[string]string, len(m))
		for k, v := range m {
			b.layerLineTypes[b.fold.String(k)] = v
		}
	}
}

// Backend renders recordings to HP-GL.
type Backend struct {
	layerPens      map[string]int
	layerLineTypes map[string]string
	fold           cases.Caser

	buf   bytes.Buffer
	first bool
}

// Ensure Backend implements the required interfaces.
var _ recording.WriterBackend = (*Backend)(nil)

// NewBackend creates a new HP-GL backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{fold: cases.Fold()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Extension implements recording.WriterBackend.
func (b *Backend) Extension() string { return ".hpgl" }

// Begin selects pen 1 and moves to the origin.
func (b *Backend) Begin(_ *recording.Recording) error {
	b.buf.Reset()
	b.first = true
	b.buf.WriteString("SP1;\n")
	b.buf.WriteString("PA0,0\n")
	return nil
}

// BeginPath writes the path header, moves to its start and lowers the pen.
func (b *Backend) BeginPath(p *cursor.Path) error {
	start, err := p.Start()
	if err != nil {
		return err
	}
	if b.first {
		b.buf.WriteString("PU;\n")
		b.first = false
	}

	fmt.Fprintf(&b.buf, "SP%d;\n", b.pen(p))
	fmt.Fprintf(&b.buf, "LT%s;\n", b.lineType(p))
	fmt.Fprintf(&b.buf, "VS%d;\n", orDefault(p.Velocity, DefaultVelocity))
	fmt.Fprintf(&b.buf, "FS%d;\n", orDefault(p.Force, DefaultForce))

	b.moveTo(start)
	if p.Polygon {
		b.buf.WriteString("PM0;\n")
	}
	b.buf.WriteString("PD;\n")
	return nil
}

// Line moves to the end of the edge with the pen down.
func (b *Backend) Line(_, end cursor.TimedPosition) {
	b.moveTo(end)
}

// EndPath lifts the pen and, for polygons, closes and fills the shape.
func (b *Backend) EndPath(p *cursor.Path) error {
	b.buf.WriteString("PU;\n")
	if p.Polygon {
		b.buf.WriteString("PM2;\n")
		b.buf.WriteString("FP;\n")
	}
	return nil
}

// Box draws bb as a closed outline with the default pen settings.
func (b *Backend) Box(bb cursor.BoundingBox) {
	outline := bb.Path()
	_ = b.BeginPath(outline)
	for start, end := range outline.Connections() {
		b.Line(start, end)
	}
	_ = b.EndPath(outline)
}

// End returns to the origin and stores the pen.
func (b *Backend) End() error {
	b.buf.WriteString("PA0,0\n")
	b.buf.WriteString("SP0;\n")
	return nil
}

// WriteTo implements recording.WriterBackend.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// String returns the command stream of the last playback.
func (b *Backend) String() string {
	return b.buf.String()
}

func (b *Backend) moveTo(tp cursor.TimedPosition) {
	fmt.Fprintf(&b.buf, "PA%d,%d;\n", int(tp.X), int(tp.Y))
}

func (b *Backend) pen(p *cursor.Path) int {
	if p.Pen != 0 {
		return p.Pen
	}
	if pen, ok := b.layerPens[b.fold.String(p.Layer)]; ok {
		return pen
	}
	return DefaultPen
}

func (b *Backend) lineType(p *cursor.Path) string {
	if p.LineType != "" {
		return p.LineType
	}
	return b.layerLineTypes[b.fold.String(p.Layer)]
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
