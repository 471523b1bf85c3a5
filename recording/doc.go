// Package recording turns path collections into device output.
//
// The system follows a builder/playback split with three components:
//
//   - Recorder: accumulates collections and bounding boxes across any number
//     of Render calls
//   - Recording: the immutable result, replayable to any backend
//   - Backend: serializes a recording to one output format
//
// Accumulation state lives in the Recorder value the caller holds, so one
// Recorder per goroutine is safe by construction. Backends are reusable:
// every Playback starts with Begin, which resets them.
//
// # Basic Usage
//
//	rec := recording.NewRecorder().
//	    Render(strokes).
//	    Render(moreStrokes).
//	    RenderBoundingBox(frame).
//	    FinishRecording()
//
//	name, err := recording.Save(rec, gcode.NewBackend(gcode.WithInvertY(false)), "out", "drawing")
//
// Save creates the directory if needed and writes "out/drawing.nc". Saving
// the same recording again overwrites the file.
//
// # Traversal
//
// Playback walks every path with [cursor.Path.Connections], yielding
// (start, end) edges that restart at each path boundary: no edge is ever
// drawn between the last vertex of one path and the first of the next.
//
// # Backend Registration
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to register it:
//
//	import (
//	    "github.com/gogpu/cursor/recording"
//	    _ "github.com/gogpu/cursor/recording/backends/gcode" // "gcode"
//	    _ "github.com/gogpu/cursor/recording/backends/svg"   // "svg"
//	)
//
//	b, err := recording.NewBackend("svg")
//
// # Skipped Output
//
// A backend that cannot produce output for legitimate but degenerate input
// (the raster backend given an empty or zero-sized drawing) returns
// [ErrSkipped] from Begin. Save logs a warning and writes nothing.
package recording
