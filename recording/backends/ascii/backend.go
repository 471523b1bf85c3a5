// Package ascii provides a text-art backend for the recording system.
//
// The recording is first rasterized with the raster backend, then resized
// to a character grid and mapped through a brightness ramp from dark
// (space) to bright ('#').
package ascii

import (
	"bytes"
	"image"
	"io"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/recording"
	"github.com/gogpu/cursor/recording/backends/raster"
)

func init() {
	recording.Register("ascii", func() recording.WriterBackend {
		return NewBackend()
	})
}

// Ramp lists the output characters from darkest to brightest.
const Ramp = " .,:;i1tfLCG08#"

// Default grid size.
const (
	DefaultColumns = 100
	DefaultRows    = 50
)

// Option configures a Backend.
type Option func(*Backend)

// WithGrid sets the number of characters per line and the number of lines.
func WithGrid(columns, rows int) Option {
	return func(b *Backend) {
		b.columns, b.rows = columns, rows
	}
}

// WithRasterOptions configures the underlying raster backend.
func WithRasterOptions(opts ...raster.Option) Option {
	return func(b *Backend) {
		b.raster = raster.NewBackend(opts...)
	}
}

// Backend renders recordings to text art.
type Backend struct {
	raster        *raster.Backend
	columns, rows int

	buf bytes.Buffer
}

// Ensure Backend implements the required interfaces.
var _ recording.WriterBackend = (*Backend)(nil)

// NewBackend creates a new ascii backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		raster:  raster.NewBackend(),
		columns: DefaultColumns,
		rows:    DefaultRows,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Extension implements recording.WriterBackend.
func (b *Backend) Extension() string { return ".txt" }

// Begin implements recording.Backend. Skips from the raster stage are
// passed through.
func (b *Backend) Begin(rec *recording.Recording) error {
	b.buf.Reset()
	return b.raster.Begin(rec)
}

// BeginPath implements recording.Backend.
func (b *Backend) BeginPath(p *cursor.Path) error { return b.raster.BeginPath(p) }

// Line implements recording.Backend.
func (b *Backend) Line(start, end cursor.TimedPosition) { b.raster.Line(start, end) }

// EndPath implements recording.Backend.
func (b *Backend) EndPath(p *cursor.Path) error { return b.raster.EndPath(p) }

// Box implements recording.Backend.
func (b *Backend) Box(bb cursor.BoundingBox) { b.raster.Box(bb) }

// End rasterizes and converts the image to text.
func (b *Backend) End() error {
	if err := b.raster.End(); err != nil {
		return err
	}
	b.convert(b.raster.Image())
	return nil
}

func (b *Backend) convert(img image.Image) {
	small := transform.Resize(img, b.columns, b.rows, transform.Linear)
	gray := effect.Grayscale(small)

	r := gray.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.buf.WriteByte(char(gray.RGBAAt(x, y).R))
		}
		b.buf.WriteByte('\n')
	}
}

// char maps a brightness value to its ramp character.
func char(v uint8) byte {
	precision := 255.0 / float64(len(Ramp)-1)
	return Ramp[int(math.Round(float64(v)/precision))]
}

// String returns the text of the last playback.
func (b *Backend) String() string {
	return b.buf.String()
}

// WriteTo implements recording.WriterBackend.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}
