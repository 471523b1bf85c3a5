// Package cursor is a path geometry engine for pointer-motion recordings.
//
// # Overview
//
// A recording is a set of strokes, each an ordered sequence of timestamped
// 2D samples. cursor models them as [TimedPosition], [Path] and
// [PathCollection] and provides the transforms needed to turn them into
// drawing-machine output: translation, scaling, rotation, fitting to a page,
// shape-preserving endpoint morphing, time interpolation between two paths
// and entropy-based filtering.
//
// # Pipeline
//
//	pc := loader.Load(...)                      // external capture/load
//	_ = pc.Filter(filter.NewEntropyMin(1.2, 1.2)) // optional filter chain
//	_ = pc.Fit(cursor.Size{Width: 3300, Height: 2200}, 50)
//
//	rec := recording.NewRecorder().Render(pc).FinishRecording()
//	_, _ = recording.Save(rec, gcode.NewBackend(), "out", "drawing")
//
// Output formats live in the recording/backends sub-packages.
//
// # Coordinate System
//
// Coordinates are used as recorded: origin at top-left, X increases right,
// Y increases down. Rotation angles are in radians, counter-clockwise.
// [BoundingBox] stores its maximum corner in W and H.
//
// # Concurrency
//
// Paths and collections are not safe for concurrent mutation. Geometric
// transforms of independent paths may run in parallel.
package cursor
