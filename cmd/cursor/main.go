// Command cursor renders recorded mouse paths to plotter, image and text
// formats.
//
// Usage:
//
//	cursor [flags] recording.json
//
// The recording is filtered, optionally fitted to the configured page and
// saved once per requested format:
//
//	cursor -formats svg,gcode,hpgl -min-points 10 -fit -out out rec.json
//
// With -video, every path is also rendered as its own frame and the frames
// are assembled by the configured encoder.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/config"
	"github.com/gogpu/cursor/filter"
	"github.com/gogpu/cursor/loader"
	"github.com/gogpu/cursor/recording"
)

func main() {
	var (
		configPath  = flag.String("config", "", "TOML or YAML settings file")
		outDir      = flag.String("out", "out", "output directory")
		formats     = flag.String("formats", "svg", "comma-separated backends: "+strings.Join(recording.Backends(), ", "))
		minPoints   = flag.Int("min-points", 0, "drop paths with fewer vertices")
		maxPoints   = flag.Int("max-points", 0, "drop paths with more vertices (0 = no limit)")
		minEntropy  = flag.Float64("min-entropy", 0, "drop paths whose x and y entropy are not both above this")
		maxDistance = flag.Float64("max-distance", 0, "drop paths longer than this, in pixels of -resolution (0 = no limit)")
		resolution  = flag.String("resolution", "1920x1080", "screen resolution for -max-distance")
		fit         = flag.Bool("fit", false, "fit the paths to the configured page")
		box         = flag.Bool("box", false, "draw the bounding box of the paths")
		videoName   = flag.String("video", "", "also render one frame per path and assemble them into this file")
		verbose     = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	cursor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	pc, err := loader.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load recording: %v", err)
	}
	pc.Clean()

	chain := filter.Chain{}
	if *minPoints > 0 {
		chain = append(chain, filter.NewMinPointCount(*minPoints))
	}
	if *maxPoints > 0 {
		chain = append(chain, filter.NewMaxPointCount(*maxPoints))
	}
	if *minEntropy > 0 {
		chain = append(chain, filter.NewEntropyMin(*minEntropy, *minEntropy))
	}
	if *maxDistance > 0 {
		res, err := parseResolution(*resolution)
		if err != nil {
			log.Fatalf("Invalid -resolution: %v", err)
		}
		chain = append(chain, filter.NewDistance(*maxDistance, res))
	}
	if err := pc.Filter(chain); err != nil {
		log.Fatalf("Failed to filter: %v", err)
	}
	if pc.Empty() {
		log.Fatal("No paths left after filtering")
	}

	if *fit {
		if err := pc.Fit(cfg.Fit.Page(), cfg.Fit.Padding); err != nil {
			log.Fatalf("Failed to fit: %v", err)
		}
	}

	rec := recording.NewRecorder().Render(pc)
	if *box {
		bb, _ := pc.BoundingBox()
		rec.RenderBoundingBox(bb)
	}
	r := rec.FinishRecording()

	name := strings.TrimSuffix(filepath.Base(flag.Arg(0)), filepath.Ext(flag.Arg(0)))
	for _, format := range strings.Split(*formats, ",") {
		format = strings.TrimSpace(format)
		if format == "" {
			continue
		}
		b, err := cfg.Backend(format)
		if err != nil {
			log.Fatalf("Unknown format %q: %v", format, err)
		}
		if _, err := recording.Save(r, b, *outDir, name); err != nil {
			log.Fatalf("Failed to save %s: %v", format, err)
		}
	}

	if *videoName != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := renderVideo(ctx, cfg, pc, filepath.Join(*outDir, "frames"), *videoName); err != nil {
			log.Fatalf("Failed to render video: %v", err)
		}
	}
}

// renderVideo saves each path as a numbered raster frame and assembles the
// frames in dir.
func renderVideo(ctx context.Context, cfg *config.Config, pc *cursor.PathCollection, dir, name string) error {
	for i, p := range pc.All() {
		b, err := cfg.Backend("raster")
		if err != nil {
			return err
		}
		r := recording.NewRecorder().RenderPath(p).FinishRecording()
		if _, err := recording.Save(r, b, dir, fmt.Sprintf("frame_%06d", i)); err != nil {
			return err
		}
	}

	out, err := cfg.Assembler(dir).Assemble(ctx, name)
	if err != nil {
		return err
	}
	log.Printf("Video saved to %s\n", out)
	return nil
}

func parseResolution(s string) (cursor.Resolution, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return cursor.Resolution{}, fmt.Errorf("%q is not WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return cursor.Resolution{}, err
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return cursor.Resolution{}, err
	}
	if width <= 0 || height <= 0 {
		return cursor.Resolution{}, errors.New("width and height must be positive")
	}
	return cursor.Resolution{Width: width, Height: height}, nil
}
