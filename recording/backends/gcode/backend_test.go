package gcode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/recording"
)

func TestBackendRegistration(t *testing.T) {
	if !recording.IsRegistered("gcode") {
		t.Fatal("gcode backend not registered")
	}
	if name, ok := recording.ForExtension(".nc"); !ok || name != "gcode" {
		t.Errorf("ForExtension(.nc) = %q, %v; want gcode", name, ok)
	}
}

func output(t *testing.T, b *Backend, r *recording.Recording) string {
	t.Helper()
	if err := r.Playback(b); err != nil {
		t.Fatalf("Playback failed: %v", err)
	}
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	return buf.String()
}

func TestBackendOutput(t *testing.T) {
	p := &cursor.Path{}
	p.Add(10, 5, 0)
	p.Add(20, 0, 1)
	r := recording.NewRecorder().RenderPath(p).FinishRecording()

	got := output(t, NewBackend(), r)
	want := strings.Join([]string{
		"G01 Z0.0 F1000",
		"G01 X0.00 Y0.00 F2000",
		"G01 X10.00 Y-5.00 F2000",
		"G01 Z3.5 F1000",
		"G01 X10.00 Y-5.00 F2000",
		"G01 X20.00 Y0.00 F2000",
		"G01 Z0.0 F1000",
		"G01 Z0.0 F1000",
		"G01 X0.00 Y0.00 F2000",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestBackendOptions(t *testing.T) {
	p := &cursor.Path{}
	p.Add(1.234, 5.678, 0)
	p.Add(2, 3, 0)
	r := recording.NewRecorder().RenderPath(p).FinishRecording()

	b := NewBackend(
		WithFeedrateXY(500),
		WithFeedrateZ(100),
		WithZDown(1.25),
		WithZUp(2),
		WithInvertY(false),
	)
	got := output(t, b, r)

	for _, want := range []string{
		"G01 Z2.0 F100\n",
		"G01 Z1.25 F100\n",
		"G01 X1.23 Y5.68 F500\n",
		"G01 X2.00 Y3.00 F500\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestBackendBox(t *testing.T) {
	r := recording.NewRecorder().
		RenderBoundingBox(cursor.BoundingBox{X: 1, Y: 2, W: 3, H: 4}).
		FinishRecording()

	moves, err := Parse(strings.NewReader(output(t, NewBackend(), r)))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var plunged bool
	var corners [][2]float64
	for _, m := range moves {
		if m.HasZ {
			plunged = m.Z == DefaultZDown
			continue
		}
		if plunged {
			corners = append(corners, [2]float64{m.X, m.Y})
		}
	}
	want := [][2]float64{{1, -4}, {3, -4}, {3, -2}, {1, -2}}
	if diff := cmp.Diff(want, corners); diff != "" {
		t.Errorf("box corners mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	src := []cursor.TimedPosition{
		{X: 12.344, Y: 67.891},
		{X: -3.5, Y: 0.004},
		{X: 100, Y: -42.42},
		{X: 0.1, Y: 0.2},
	}

	for _, invert := range []bool{true, false} {
		pc := cursor.NewPathCollection()
		pc.Add(cursor.NewPath(src[:2]...))
		pc.Add(cursor.NewPath(src[2:]...))
		r := recording.NewRecorder().Render(pc).FinishRecording()

		moves, err := Parse(strings.NewReader(output(t, NewBackend(WithInvertY(invert)), r)))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		// Collect the x/y moves made while the tool is down, and the travel
		// move made just before each plunge.
		var got, travel []cursor.TimedPosition
		var last cursor.TimedPosition
		down := false
		for _, m := range moves {
			if m.HasZ {
				plunge := m.Z == DefaultZDown
				if plunge && !down {
					travel = append(travel, last)
				}
				down = plunge
				continue
			}
			last = cursor.TimedPosition{X: m.X, Y: m.Y}
			if down {
				got = append(got, last)
			}
		}

		check := func(kind string, got, want []cursor.TimedPosition) {
			t.Helper()
			if len(got) != len(want) {
				t.Fatalf("invert=%v: got %d %s moves, want %d", invert, len(got), kind, len(want))
			}
			for i, w := range want {
				wy := w.Y
				if invert {
					wy = -wy
				}
				if math.Abs(got[i].X-w.X) > 0.005 || math.Abs(got[i].Y-wy) > 0.005 {
					t.Errorf("invert=%v: %s move %d = (%v, %v), want (%v, %v)", invert, kind, i, got[i].X, got[i].Y, w.X, wy)
				}
			}
		}
		check("drawn", got, src)
		check("travel", travel, []cursor.TimedPosition{src[0], src[2]})
	}
}

func TestParse(t *testing.T) {
	in := "; header\nG01 Z3.5 F1000\n\nG1 X1.50 Y-2 (inline) F200\n"
	moves, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []Move{
		{Z: 3.5, F: 1000, HasZ: true, HasF: true},
		{X: 1.5, Y: -2, F: 200, HasX: true, HasY: true, HasF: true},
	}
	if diff := cmp.Diff(want, moves); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"M3 S1000",
		"G01 X",
		"G01 X1.2.3",
		"G01 Q5",
	}
	for _, in := range tests {
		if _, err := Parse(strings.NewReader(in)); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error = %v, want ErrSyntax", in, err)
		}
	}
}
