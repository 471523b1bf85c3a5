// Package raster provides a bitmap backend for the recording system.
//
// Edges are stroked as quads of the configured thickness with the
// golang.org/x/image/vector rasterizer and composited black over a white
// canvas, then encoded as JPEG. The canvas spans the recording bounds
// multiplied by the scale factor; content left of or above the origin is
// shifted into view.
//
// Degenerate recordings (empty, or bounds with no width or height) are
// skipped with recording.ErrSkipped, which recording.Save reports as a
// warning.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"log/slog"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/recording"
)

func init() {
	recording.Register("raster", func() recording.WriterBackend {
		return NewBackend()
	})
}

// MaxDimension is the largest width or height the backend will allocate.
const MaxDimension = 21000

// ErrImageTooLarge is returned when the scaled recording exceeds
// MaxDimension in either direction.
var ErrImageTooLarge = errors.New("raster: image too large")

// Defaults.
const (
	DefaultScale     = 1.0
	DefaultThickness = 1.0
	DefaultQuality   = 90
	frameWidth       = 2
)

// Option configures a Backend.
type Option func(*Backend)

// WithScale multiplies every coordinate by s.
func WithScale(s float64) Option {
	return func(b *Backend) { b.scale = s }
}

// WithThickness sets the stroke width in pixels.
func WithThickness(t float64) Option {
	return func(b *Backend) { b.thickness = t }
}

// WithFrame draws a border around the canvas.
func WithFrame(frame bool) Option {
	return func(b *Backend) { b.frame = frame }
}

// WithQuality sets the JPEG quality, 1 to 100.
func WithQuality(q int) Option {
	return func(b *Backend) { b.quality = q }
}

// WithLabel draws text in the top left corner.
func WithLabel(label string) Option {
	return func(b *Backend) { b.label = label }
}

// Backend renders recordings to a JPEG image.
type Backend struct {
	scale     float64
	thickness float64
	frame     bool
	quality   int
	label     string

	img        *image.RGBA
	r          *vector.Rasterizer
	offX, offY float64
}

// Ensure Backend implements the required interfaces.
var (
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// NewBackend creates a new raster backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		scale:     DefaultScale,
		thickness: DefaultThickness,
		quality:   DefaultQuality,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Extension implements recording.WriterBackend.
func (b *Backend) Extension() string { return ".jpg" }

// Begin sizes and clears the canvas.
func (b *Backend) Begin(rec *recording.Recording) error {
	b.img, b.r = nil, nil

	bb, err := rec.Bounds()
	if err != nil {
		cursor.Logger().Warn("raster: nothing to draw")
		return fmt.Errorf("%w: %w", recording.ErrSkipped, err)
	}

	b.offX, b.offY = 0, 0
	if bb.X < 0 {
		b.offX = -bb.X * b.scale
	}
	if bb.Y < 0 {
		b.offY = -bb.Y * b.scale
	}
	// Checked in float64 so huge bounds cannot overflow int.
	w := math.Ceil(bb.W*b.scale + b.offX)
	h := math.Ceil(bb.H*b.scale + b.offY)

	if w > MaxDimension || h > MaxDimension {
		return fmt.Errorf("%w: %gx%g exceeds %d", ErrImageTooLarge, w, h, MaxDimension)
	}
	if !(w > 0 && h > 0) {
		cursor.Logger().Warn("raster: degenerate bounds",
			slog.Float64("width", w),
			slog.Float64("height", h))
		return fmt.Errorf("%w: %gx%g image", recording.ErrSkipped, w, h)
	}
	width, height := int(w), int(h)

	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(b.img, b.img.Bounds(), image.White, image.Point{}, draw.Src)
	b.r = vector.NewRasterizer(width, height)
	return nil
}

// BeginPath implements recording.Backend.
func (b *Backend) BeginPath(_ *cursor.Path) error { return nil }

// Line adds the stroked edge to the canvas.
func (b *Backend) Line(start, end cursor.TimedPosition) {
	ax, ay := b.project(start.X, start.Y)
	bx, by := b.project(end.X, end.Y)
	b.quad(ax, ay, bx, by)
}

// EndPath implements recording.Backend.
func (b *Backend) EndPath(_ *cursor.Path) error { return nil }

// Box strokes the outline of bb.
func (b *Backend) Box(bb cursor.BoundingBox) {
	for start, end := range bb.Path().Connections() {
		b.Line(start, end)
	}
}

// End composites the strokes, then the frame and label.
func (b *Backend) End() error {
	b.r.Draw(b.img, b.img.Bounds(), image.Black, image.Point{})

	if b.frame {
		r := b.img.Bounds()
		for _, side := range []image.Rectangle{
			image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+frameWidth),
			image.Rect(r.Min.X, r.Max.Y-frameWidth, r.Max.X, r.Max.Y),
			image.Rect(r.Min.X, r.Min.Y, r.Min.X+frameWidth, r.Max.Y),
			image.Rect(r.Max.X-frameWidth, r.Min.Y, r.Max.X, r.Max.Y),
		} {
			draw.Draw(b.img, side.Intersect(r), image.Black, image.Point{}, draw.Src)
		}
	}

	if b.label != "" {
		face := basicfont.Face7x13
		d := &font.Drawer{
			Dst:  b.img,
			Src:  image.NewUniform(color.Black),
			Face: face,
			Dot:  fixed.P(frameWidth+2, frameWidth+2+face.Ascent),
		}
		d.DrawString(b.label)
	}

	cursor.Logger().Info("rendered image",
		slog.Int("width", b.img.Bounds().Dx()),
		slog.Int("height", b.img.Bounds().Dy()))
	return nil
}

// Image implements recording.ImageBackend. It returns nil before the first
// successful playback.
func (b *Backend) Image() image.Image {
	if b.img == nil {
		return nil
	}
	return b.img
}

// WriteTo encodes the image as JPEG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.img == nil {
		return 0, recording.ErrEmptyRecording
	}
	cw := &countingWriter{w: w}
	err := jpeg.Encode(cw, b.img, &jpeg.Options{Quality: b.quality})
	return cw.n, err
}

func (b *Backend) project(x, y float64) (float32, float32) {
	return float32(x*b.scale + b.offX), float32(y*b.scale + b.offY)
}

// quad adds a rectangle of the stroke thickness around the segment. All
// quads share one orientation so overlapping strokes never cancel.
func (b *Backend) quad(ax, ay, bx, by float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	h := float32(b.thickness) / 2
	nx, ny := -dy/l*h, dx/l*h

	b.r.MoveTo(ax+nx, ay+ny)
	b.r.LineTo(bx+nx, by+ny)
	b.r.LineTo(bx-nx, by-ny)
	b.r.LineTo(ax-nx, ay-ny)
	b.r.ClosePath()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
