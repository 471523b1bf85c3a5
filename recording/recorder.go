package recording

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/gogpu/cursor"
)

var (
	// ErrEmptyRecording is returned when a recording without paths or
	// boxes is played back to a backend that needs geometry.
	ErrEmptyRecording = errors.New("recording: nothing recorded")

	// ErrSkipped is returned by a backend that deliberately produced no
	// output. Save treats it as a warning.
	ErrSkipped = errors.New("recording: output skipped")
)

// State is the lifecycle state of a Recorder.
type State uint8

const (
	StateEmpty        State = iota // Nothing rendered yet
	StateAccumulating              // At least one path or box rendered
	StateFinished                  // FinishRecording called
)

var stateNames = [...]string{
	StateEmpty:        "Empty",
	StateAccumulating: "Accumulating",
	StateFinished:     "Finished",
}

// String returns the string representation of a State.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Recorder accumulates path collections and bounding boxes. Render appends,
// never replaces, and may be called any number of times. Use FinishRecording
// to obtain an immutable Recording.
//
// Example:
//
//	rec := recording.NewRecorder()
//	rec.Render(pc1)
//	rec.Render(pc2)
//	r := rec.FinishRecording()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	paths *cursor.PathCollection
	boxes []cursor.BoundingBox
	state State
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{paths: cursor.NewPathCollection()}
}

// Render appends every path of pc. A nil collection is ignored.
func (r *Recorder) Render(pc *cursor.PathCollection) *Recorder {
	if pc == nil {
		return r
	}
	for _, p := range pc.All() {
		r.paths.Add(p)
	}
	r.touch()
	cursor.Logger().Debug("rendered paths",
		slog.Int("paths", pc.Len()),
		slog.Int("total", r.paths.Len()))
	return r
}

// RenderPath appends a single path.
func (r *Recorder) RenderPath(p *cursor.Path) *Recorder {
	r.paths.Add(p)
	r.touch()
	return r
}

// RenderBoundingBox records a box to be drawn after all paths.
func (r *Recorder) RenderBoundingBox(bb cursor.BoundingBox) *Recorder {
	r.boxes = append(r.boxes, bb)
	r.touch()
	return r
}

func (r *Recorder) touch() {
	if r.state == StateEmpty && (r.paths.Len() > 0 || len(r.boxes) > 0) {
		r.state = StateAccumulating
	}
}

// State returns the lifecycle state.
func (r *Recorder) State() State {
	return r.state
}

// Len returns the number of accumulated paths.
func (r *Recorder) Len() int {
	return r.paths.Len()
}

// FinishRecording returns an immutable Recording of everything accumulated.
// After calling FinishRecording, the Recorder should not be used again.
func (r *Recorder) FinishRecording() *Recording {
	r.state = StateFinished
	return &Recording{
		paths: r.paths,
		boxes: r.boxes,
	}
}

// Recording is an immutable container of accumulated paths and boxes.
// It can be replayed to any Backend any number of times.
type Recording struct {
	paths *cursor.PathCollection
	boxes []cursor.BoundingBox
}

// Paths returns the recorded paths.
func (r *Recording) Paths() *cursor.PathCollection {
	return r.paths.Copy()
}

// Boxes returns the recorded bounding boxes.
func (r *Recording) Boxes() []cursor.BoundingBox {
	return slices.Clone(r.boxes)
}

// Empty reports whether nothing was recorded.
func (r *Recording) Empty() bool {
	return r.paths.Empty() && len(r.boxes) == 0
}

// Bounds returns the box spanning all recorded paths and boxes.
func (r *Recording) Bounds() (cursor.BoundingBox, error) {
	if r.Empty() {
		return cursor.BoundingBox{}, ErrEmptyRecording
	}
	bb := cursor.BoundingBox{
		X: math.Inf(1), Y: math.Inf(1),
		W: math.Inf(-1), H: math.Inf(-1),
	}
	if !r.paths.Empty() {
		bb, _ = r.paths.BoundingBox()
	}
	for _, b := range r.boxes {
		bb.X = math.Min(bb.X, b.X)
		bb.Y = math.Min(bb.Y, b.Y)
		bb.W = math.Max(bb.W, b.W)
		bb.H = math.Max(bb.H, b.H)
	}
	return bb, nil
}

// Playback replays the recording to the given backend.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r); err != nil {
		return err
	}

	i := 0
	for p, edges := range cursor.NewPathIterator(r.paths).Paths() {
		if err := backend.BeginPath(p); err != nil {
			return fmt.Errorf("recording: path %d: %w", i, err)
		}
		for start, end := range edges {
			backend.Line(start, end)
		}
		if err := backend.EndPath(p); err != nil {
			return fmt.Errorf("recording: path %d: %w", i, err)
		}
		i++
	}

	for _, bb := range r.boxes {
		backend.Box(bb)
	}

	return backend.End()
}
