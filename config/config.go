// Package config loads renderer and pipeline settings from TOML or YAML
// files and builds configured backends from them.
//
// Files only need to name the settings they change; everything else keeps
// the value from Default.
//
//	[gcode]
//	feedrate_xy = 1500
//	invert_y = false
//
//	[hpgl.layer_pens]
//	outline = 2
//
//	[fit]
//	page_width = 297
//	page_height = 210
//	padding = 10
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/cursor"
	"github.com/gogpu/cursor/recording"
	"github.com/gogpu/cursor/recording/backends/ascii"
	"github.com/gogpu/cursor/recording/backends/gcode"
	"github.com/gogpu/cursor/recording/backends/hpgl"
	"github.com/gogpu/cursor/recording/backends/raster"
	"github.com/gogpu/cursor/recording/backends/svg"
	"github.com/gogpu/cursor/video"
)

var (
	// ErrFormat is returned for files that are neither TOML nor YAML.
	ErrFormat = errors.New("config: unknown format")

	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("config: invalid value")
)

// Format is a configuration file syntax.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatOf returns the format implied by a file name's extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, name)
}

// Config holds every configurable setting.
type Config struct {
	SVG    SVG    `toml:"svg" yaml:"svg"`
	GCode  GCode  `toml:"gcode" yaml:"gcode"`
	HPGL   HPGL   `toml:"hpgl" yaml:"hpgl"`
	Raster Raster `toml:"raster" yaml:"raster"`
	ASCII  ASCII  `toml:"ascii" yaml:"ascii"`
	Fit    Fit    `toml:"fit" yaml:"fit"`
	Video  Video  `toml:"video" yaml:"video"`
}

// SVG configures the svg backend.
type SVG struct {
	StrokeWidth float64 `toml:"stroke_width" yaml:"stroke_width"`
	Stroke      string  `toml:"stroke" yaml:"stroke"`
}

// GCode configures the gcode backend.
type GCode struct {
	FeedrateXY int     `toml:"feedrate_xy" yaml:"feedrate_xy"`
	FeedrateZ  int     `toml:"feedrate_z" yaml:"feedrate_z"`
	ZDown      float64 `toml:"z_down" yaml:"z_down"`
	ZUp        float64 `toml:"z_up" yaml:"z_up"`
	InvertY    bool    `toml:"invert_y" yaml:"invert_y"`
}

// HPGL configures the hpgl backend.
type HPGL struct {
	LayerPens      map[string]int    `toml:"layer_pens" yaml:"layer_pens"`
	LayerLineTypes map[string]string `toml:"layer_line_types" yaml:"layer_line_types"`
}

// Raster configures the raster backend.
type Raster struct {
	Scale     float64 `toml:"scale" yaml:"scale"`
	Frame     bool    `toml:"frame" yaml:"frame"`
	Thickness float64 `toml:"thickness" yaml:"thickness"`
	Quality   int     `toml:"quality" yaml:"quality"`
	Label     string  `toml:"label" yaml:"label"`
}

// ASCII configures the ascii backend.
type ASCII struct {
	Columns int `toml:"columns" yaml:"columns"`
	Rows    int `toml:"rows" yaml:"rows"`
}

// Fit describes the page collections are fitted to.
type Fit struct {
	PageWidth  float64 `toml:"page_width" yaml:"page_width"`
	PageHeight float64 `toml:"page_height" yaml:"page_height"`
	Padding    float64 `toml:"padding" yaml:"padding"`
}

// Page returns the page size.
func (f Fit) Page() cursor.Size {
	return cursor.Size{Width: f.PageWidth, Height: f.PageHeight}
}

// Video configures frame assembly.
type Video struct {
	Command string `toml:"command" yaml:"command"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		SVG: SVG{
			StrokeWidth: svg.DefaultStrokeWidth,
			Stroke:      "rgb(0%,0%,0%)",
		},
		GCode: GCode{
			FeedrateXY: gcode.DefaultFeedrateXY,
			FeedrateZ:  gcode.DefaultFeedrateZ,
			ZDown:      gcode.DefaultZDown,
			ZUp:        gcode.DefaultZUp,
			InvertY:    true,
		},
		Raster: Raster{
			Scale:     raster.DefaultScale,
			Thickness: raster.DefaultThickness,
			Quality:   raster.DefaultQuality,
		},
		ASCII: ASCII{
			Columns: ascii.DefaultColumns,
			Rows:    ascii.DefaultRows,
		},
		Fit: Fit{
			PageWidth:  297,
			PageHeight: 210,
			Padding:    10,
		},
		Video: Video{
			Command: video.DefaultCommand,
		},
	}
}

// Load reads the file at path over Default. The format follows the file
// extension.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	c := Default()
	switch format {
	case TOML:
		d := toml.NewDecoder(bytes.NewReader(data))
		d.DisallowUnknownFields()
		if err := d.Decode(c); err != nil {
			return nil, err
		}
	case YAML:
		d := yaml.NewDecoder(bytes.NewReader(data))
		d.KnownFields(true)
		if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first setting that no backend can use.
func (c *Config) Validate() error {
	switch {
	case c.SVG.StrokeWidth <= 0:
		return fmt.Errorf("%w: svg.stroke_width must be positive", ErrInvalid)
	case c.GCode.FeedrateXY <= 0 || c.GCode.FeedrateZ <= 0:
		return fmt.Errorf("%w: gcode feed rates must be positive", ErrInvalid)
	case c.Raster.Scale <= 0:
		return fmt.Errorf("%w: raster.scale must be positive", ErrInvalid)
	case c.Raster.Thickness <= 0:
		return fmt.Errorf("%w: raster.thickness must be positive", ErrInvalid)
	case c.Raster.Quality < 1 || c.Raster.Quality > 100:
		return fmt.Errorf("%w: raster.quality must be within 1..100", ErrInvalid)
	case c.ASCII.Columns <= 0 || c.ASCII.Rows <= 0:
		return fmt.Errorf("%w: ascii grid must be positive", ErrInvalid)
	case c.Fit.Padding < 0:
		return fmt.Errorf("%w: fit.padding must not be negative", ErrInvalid)
	case c.Fit.PageWidth <= 2*c.Fit.Padding || c.Fit.PageHeight <= 2*c.Fit.Padding:
		return fmt.Errorf("%w: fit page must be larger than twice the padding", ErrInvalid)
	}
	return nil
}

// Backend returns the named backend configured with c. Names without a
// section fall back to the backend registry.
func (c *Config) Backend(name string) (recording.WriterBackend, error) {
	switch name {
	case "svg":
		return svg.NewBackend(
			svg.WithStrokeWidth(c.SVG.StrokeWidth),
			svg.WithStroke(c.SVG.Stroke),
		), nil
	case "gcode":
		return gcode.NewBackend(
			gcode.WithFeedrateXY(c.GCode.FeedrateXY),
			gcode.WithFeedrateZ(c.GCode.FeedrateZ),
			gcode.WithZDown(c.GCode.ZDown),
			gcode.WithZUp(c.GCode.ZUp),
			gcode.WithInvertY(c.GCode.InvertY),
		), nil
	case "hpgl":
		return hpgl.NewBackend(
			hpgl.WithLayerPens(c.HPGL.LayerPens),
			hpgl.WithLayerLineTypes(c.HPGL.LayerLineTypes),
		), nil
	case "raster":
		return raster.NewBackend(c.rasterOptions()...), nil
	case "ascii":
		return ascii.NewBackend(
			ascii.WithGrid(c.ASCII.Columns, c.ASCII.Rows),
			ascii.WithRasterOptions(c.rasterOptions()...),
		), nil
	}
	return recording.NewBackend(name)
}

func (c *Config) rasterOptions() []raster.Option {
	return []raster.Option{
		raster.WithScale(c.Raster.Scale),
		raster.WithFrame(c.Raster.Frame),
		raster.WithThickness(c.Raster.Thickness),
		raster.WithQuality(c.Raster.Quality),
		raster.WithLabel(c.Raster.Label),
	}
}

// Assembler returns a video assembler for the frames in dir.
func (c *Config) Assembler(dir string) *video.Assembler {
	a := video.NewAssembler(dir)
	if c.Video.Command != "" {
		a.Command = c.Video.Command
	}
	return a
}
