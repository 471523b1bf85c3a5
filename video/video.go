// Package video assembles rendered JPEG frames into a video with an
// external encoder.
//
// Frames are the *.jpg files in a directory, taken in lexical order. The
// assembler writes a concat manifest (list.txt) next to them and runs the
// encoder command, by default ffmpeg encoding H.264 at 25 frames per second.
//
//	a := video.NewAssembler("out/frames")
//	file, err := a.Assemble(ctx, "movie.mp4")
package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/gogpu/cursor"
)

// DefaultCommand is the encoder command template. {list} is replaced by
// the manifest path and {out} by the output file path.
const DefaultCommand = `ffmpeg -y -r 25 -f concat -safe 0 -i "{list}" -c:v libx264 ` +
	`-vf "fps=25,format=yuv420p,scale=trunc(iw/2)*2:trunc(ih/2)*2" "{out}"`

// ManifestName is the name of the concat manifest written to the frame
// directory.
const ManifestName = "list.txt"

var (
	// ErrNoFrames is returned when the frame directory holds no JPEG files.
	ErrNoFrames = errors.New("video: no frames")

	// ErrEmptyCommand is returned when the command template has no words.
	ErrEmptyCommand = errors.New("video: empty encoder command")
)

// Assembler turns a directory of frames into a video.
type Assembler struct {
	// Dir holds the frames. The manifest and, for relative names, the
	// output are written here too.
	Dir string

	// Command is the encoder command template. Empty means DefaultCommand.
	Command string

	// Stdout and Stderr receive the encoder's output. Nil discards it.
	Stdout, Stderr io.Writer
}

// NewAssembler returns an Assembler for the frames in dir.
func NewAssembler(dir string) *Assembler {
	return &Assembler{Dir: dir, Command: DefaultCommand}
}

// Frames returns the absolute paths of the frames in lexical order.
func (a *Assembler) Frames() ([]string, error) {
	dir, err := filepath.Abs(a.Dir)
	if err != nil {
		return nil, fmt.Errorf("video: %w", err)
	}
	frames, err := filepath.Glob(filepath.Join(dir, "*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("video: %w", err)
	}
	slices.Sort(frames)
	return frames, nil
}

// WriteManifest writes the concat manifest listing every frame and returns
// its path.
func (a *Assembler) WriteManifest() (string, error) {
	frames, err := a.Frames()
	if err != nil {
		return "", err
	}
	if len(frames) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoFrames, a.Dir)
	}

	var buf bytes.Buffer
	for _, f := range frames {
		fmt.Fprintf(&buf, "file '%s'\n", quote(filepath.ToSlash(f)))
	}

	list := filepath.Join(a.Dir, ManifestName)
	if err := os.WriteFile(list, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("video: write manifest: %w", err)
	}
	return list, nil
}

// Args returns the encoder argument vector for the given manifest and
// output paths.
func (a *Assembler) Args(list, out string) ([]string, error) {
	tmpl := a.Command
	if tmpl == "" {
		tmpl = DefaultCommand
	}
	args, err := shellwords.Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("video: parse command: %w", err)
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}
	r := strings.NewReplacer("{list}", list, "{out}", out)
	for i, arg := range args {
		args[i] = r.Replace(arg)
	}
	return args, nil
}

// Assemble writes the manifest and runs the encoder, producing name. A
// relative name is placed in Dir. It returns the output path.
func (a *Assembler) Assemble(ctx context.Context, name string) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("video: %w", err)
	}
	list, err := a.WriteManifest()
	if err != nil {
		return "", err
	}

	out := name
	if !filepath.IsAbs(out) {
		out = filepath.Join(a.Dir, name)
	}
	args, err := a.Args(list, out)
	if err != nil {
		return "", err
	}

	cursor.Logger().Info("running encoder",
		slog.String("command", strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = a.Stdout
	cmd.Stderr = a.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("video: %s: %w", args[0], err)
	}
	return out, nil
}

// quote escapes single quotes for the concat demuxer.
func quote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
