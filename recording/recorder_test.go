package recording

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/cursor"
)

func TestRecorderState(t *testing.T) {
	rec := NewRecorder()
	if rec.State() != StateEmpty {
		t.Errorf("State() = %v, want Empty", rec.State())
	}

	rec.Render(cursor.NewPathCollection())
	if rec.State() != StateEmpty {
		t.Errorf("after empty Render, State() = %v, want Empty", rec.State())
	}

	rec.Render(collection(line(0, 0, 1, 1)))
	if rec.State() != StateAccumulating {
		t.Errorf("State() = %v, want Accumulating", rec.State())
	}

	rec.FinishRecording()
	if rec.State() != StateFinished {
		t.Errorf("State() = %v, want Finished", rec.State())
	}
}

func TestRecorderRenderAppends(t *testing.T) {
	rec := NewRecorder().
		Render(collection(line(0, 0, 1, 1))).
		Render(collection(line(2, 2, 3, 3), line(4, 4, 5, 5))).
		Render(nil)

	if rec.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", rec.Len())
	}
	r := rec.FinishRecording()
	if r.Paths().Len() != 3 {
		t.Errorf("Paths().Len() = %d, want 3", r.Paths().Len())
	}
}

func TestPlaybackOrder(t *testing.T) {
	r := NewRecorder().
		Render(collection(line(0, 0, 10, 0, 10, 10), line(20, 20, 30, 30))).
		RenderBoundingBox(cursor.BoundingBox{X: 0, Y: 0, W: 30, H: 30}).
		FinishRecording()

	b := newMockBackend("order")
	if err := r.Playback(b); err != nil {
		t.Fatalf("Playback failed: %v", err)
	}

	want := []string{
		"begin",
		"path 3",
		"line 0,0 10,0",
		"line 10,0 10,10",
		"endpath",
		// No edge joins (10,10) to (20,20).
		"path 2",
		"line 20,20 30,30",
		"endpath",
		"box BB(x=0, y=0, w=30, h=30)",
		"end",
	}
	if diff := cmp.Diff(want, b.events); diff != "" {
		t.Errorf("Playback events mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaybackSinglePointPath(t *testing.T) {
	r := NewRecorder().Render(collection(line(5, 5))).FinishRecording()

	b := newMockBackend("single")
	if err := r.Playback(b); err != nil {
		t.Fatalf("Playback failed: %v", err)
	}
	want := []string{"begin", "path 1", "endpath", "end"}
	if diff := cmp.Diff(want, b.events); diff != "" {
		t.Errorf("Playback events mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaybackBeginError(t *testing.T) {
	r := NewRecorder().Render(collection(line(0, 0, 1, 1))).FinishRecording()

	b := newMockBackend("fail")
	b.beginErr = ErrSkipped
	if err := r.Playback(b); !errors.Is(err, ErrSkipped) {
		t.Errorf("Playback() = %v, want ErrSkipped", err)
	}
}

func TestRecordingBounds(t *testing.T) {
	empty := NewRecorder().FinishRecording()
	if _, err := empty.Bounds(); !errors.Is(err, ErrEmptyRecording) {
		t.Errorf("empty Bounds() error = %v, want ErrEmptyRecording", err)
	}

	r := NewRecorder().
		Render(collection(line(-5, 2, 10, 8))).
		RenderBoundingBox(cursor.BoundingBox{X: 0, Y: 0, W: 20, H: 4}).
		FinishRecording()
	got, err := r.Bounds()
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	want := cursor.BoundingBox{X: -5, Y: 0, W: 20, H: 8}
	if got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}

	boxesOnly := NewRecorder().RenderBoundingBox(cursor.BoundingBox{X: 1, Y: 2, W: 3, H: 4}).FinishRecording()
	got, err = boxesOnly.Bounds()
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	if got != (cursor.BoundingBox{X: 1, Y: 2, W: 3, H: 4}) {
		t.Errorf("Bounds() = %v, want box itself", got)
	}
}

func TestRecordingReplayable(t *testing.T) {
	r := NewRecorder().Render(collection(line(0, 0, 1, 1))).FinishRecording()

	b := newMockBackend("replay")
	for i := range 2 {
		if err := r.Playback(b); err != nil {
			t.Fatalf("Playback #%d failed: %v", i, err)
		}
		if len(b.events) != 5 {
			t.Errorf("Playback #%d produced %d events, want 5", i, len(b.events))
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateEmpty, "Empty"},
		{StateAccumulating, "Accumulating"},
		{StateFinished, "Finished"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
