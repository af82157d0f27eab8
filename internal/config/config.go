// Package config loads the optional geoascii TOML configuration file.
//
// A config file supplies defaults for the render command; flags given on the
// command line win over file values. Example:
//
//	width = 60
//	fill  = "."
//	char  = "+"
//	color = "auto"
//	bbox  = [-180.0, -90.0, 180.0, 90.0]
//
//	[colormap]
//	"+" = "green"
//	"." = "blue"
//
//	[[layer]]
//	path  = "coast.geojson"
//	style = "yellow"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	errs "geoascii/internal/errors"
	"geoascii/internal/geom"
	"geoascii/internal/raster"
	"geoascii/internal/style"
)

const DefaultWidth = 40

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Layer is one input file drawn with its own cell value or decoration.
type Layer struct {
	Path  string `toml:"path"`
	Style string `toml:"style"`
}

type Config struct {
	Width    int               `toml:"width"`
	Fill     string            `toml:"fill"`
	Char     string            `toml:"char"`
	BBox     []float64         `toml:"bbox"`
	Color    string            `toml:"color"`
	Colormap map[string]string `toml:"colormap"`
	Layers   []Layer           `toml:"layer"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width: DefaultWidth,
		Fill:  string(raster.DefaultFill),
		Char:  string(raster.DefaultChar),
		Color: ColorAuto,
	}
}

// DefaultPath is config.toml in the user's geoascii config directory
// ($XDG_CONFIG_HOME/geoascii on Linux).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "geoascii", "config.toml"), nil
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidConfiguration, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "config %s", path)
	}
	return cfg, nil
}

// LoadDefault loads DefaultPath when it exists. found is false when there is
// no file, in which case the defaults are returned.
func LoadDefault() (cfg Config, found bool, err error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), false, nil
	}
	cfg, err = Load(path)
	if errs.Is(err, errs.ErrCodeFileNotFound) {
		return Default(), false, nil
	}
	return cfg, err == nil, err
}

// Validate checks every setting the renderer would otherwise reject.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "width must be positive, got %d", c.Width)
	}
	if _, err := raster.Cell(c.Fill); err != nil && !style.IsDecoration(c.Fill) {
		return errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "fill")
	}
	if _, err := raster.Cell(c.Char); err != nil && !style.IsDecoration(c.Char) {
		return errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "char")
	}
	if _, err := c.Frame(); err != nil {
		return err
	}
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Color) {
		return errs.New(errs.ErrCodeInvalidConfiguration, "color must be auto, always or never, got %q", c.Color)
	}
	if _, err := style.ParseMap(c.Colormap); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "colormap")
	}
	for i, l := range c.Layers {
		if l.Path == "" {
			return errs.New(errs.ErrCodeInvalidConfiguration, "layer %d has no path", i)
		}
		if l.Style == "" {
			continue
		}
		if _, err := raster.Cell(l.Style); err != nil && !style.IsDecoration(l.Style) {
			return errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "layer %d style", i)
		}
	}
	return nil
}

// Frame returns the configured bounding box, or nil when none is set.
func (c Config) Frame() (*geom.BBox, error) {
	return ParseBBox(c.BBox)
}

// ParseBBox turns minx, miny, maxx, maxy into a box. An empty slice is no box.
func ParseBBox(v []float64) (*geom.BBox, error) {
	if len(v) == 0 {
		return nil, nil
	}
	if len(v) != 4 {
		return nil, errs.New(errs.ErrCodeInvalidConfiguration, "bbox needs 4 values (minx, miny, maxx, maxy), got %d", len(v))
	}
	b := geom.BBox{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return nil, errs.New(errs.ErrCodeInvalidConfiguration, "bbox min exceeds max: %v", v)
	}
	return &b, nil
}
