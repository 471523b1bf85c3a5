package recording

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/cursor"
)

// Save plays rec back to b and writes the output to dir/name plus the
// backend's extension, creating dir if needed. It returns the written file
// name. An existing file is overwritten.
//
// If the backend skips the output (see ErrSkipped), Save logs a warning and
// returns an empty file name and a nil error.
func Save(rec *Recording, b WriterBackend, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("recording: create output directory: %w", err)
	}

	if err := rec.Playback(b); err != nil {
		if errors.Is(err, ErrSkipped) {
			cursor.Logger().Warn("not saving, output skipped",
				slog.String("name", name),
				slog.String("reason", err.Error()))
			return "", nil
		}
		return "", err
	}

	fname := filepath.Join(dir, name+b.Extension())
	f, err := os.Create(fname)
	if err != nil {
		return "", fmt.Errorf("recording: %w", err)
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("recording: write %s: %w", fname, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("recording: close %s: %w", fname, err)
	}

	cursor.Logger().Info("finished saving", slog.String("file", fname))
	return fname, nil
}
