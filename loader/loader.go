// Package loader reads and writes recordings as JSON.
//
// A recording is an array of paths; each path is an array of [x, y, t]
// triples:
//
//	[
//	  [[10, 20, 0.00], [12, 24, 0.01]],
//	  [[50, 60, 1.25], [50, 61, 1.26], [52, 61, 1.27]]
//	]
//
// Triples with fewer than three numbers are rejected. Empty paths are
// dropped, as PathCollection.Add does.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/cursor"
)

// ErrFormat is returned for input that is valid JSON but not a recording.
var ErrFormat = errors.New("loader: malformed recording")

// Read decodes a recording from r into a new collection.
func Read(r io.Reader, opts ...cursor.CollectionOption) (*cursor.PathCollection, error) {
	var raw [][][]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	pc := cursor.NewPathCollection(opts...)
	for i, rp := range raw {
		p := &cursor.Path{}
		for j, v := range rp {
			if len(v) != 3 {
				return nil, fmt.Errorf("%w: path %d point %d has %d values, want 3", ErrFormat, i, j, len(v))
			}
			p.Add(v[0], v[1], v[2])
		}
		pc.Add(p)
	}
	return pc, nil
}

// Load reads the recording stored at path.
func Load(path string, opts ...cursor.CollectionOption) (*cursor.PathCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	pc, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cursor.Logger().Info("loaded recording",
		slog.String("file", path),
		slog.Int("paths", pc.Len()))
	return pc, nil
}

// Write encodes pc to w.
func Write(w io.Writer, pc *cursor.PathCollection) error {
	raw := make([][][3]float64, 0, pc.Len())
	for _, p := range pc.All() {
		rp := make([][3]float64, 0, p.Len())
		for _, v := range p.All() {
			rp = append(rp, [3]float64{v.X, v.Y, v.Timestamp})
		}
		raw = append(raw, rp)
	}
	if err := json.NewEncoder(w).Encode(raw); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	return nil
}

// Save writes pc to path, replacing any existing file.
func Save(path string, pc *cursor.PathCollection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	if err := Write(f, pc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	return nil
}
