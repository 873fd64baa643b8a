// Package config loads the settings of the regionmask tools from a YAML
// file, optional .env files and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/regionmask/pkg/logging"
	"github.com/dd0wney/regionmask/pkg/mask"
	"github.com/dd0wney/regionmask/pkg/region"
	"github.com/dd0wney/regionmask/pkg/validation"
)

// Environment variables that override file settings.
const (
	EnvNumLayers  = "REGIONMASK_NUM_LAYERS"
	EnvStrategy   = "REGIONMASK_STRATEGY"
	EnvPathFinder = "REGIONMASK_PATHFINDER"
	EnvLogLevel   = "LOG_LEVEL"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// File is the on-disk configuration.
type File struct {
	Mask   mask.Config  `yaml:"mask"`
	Log    LogConfig    `yaml:"log"`
	Grid   GridConfig   `yaml:"grid"`
	Region RegionConfig `yaml:"region"`
}

// LogConfig configures the JSON logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GridConfig sizes the synthetic latitude/longitude mesh.
type GridConfig struct {
	Rows    int `yaml:"rows" validate:"min=2"`
	Columns int `yaml:"columns" validate:"min=3"`
}

// RegionConfig describes a region either as explicit boundary loops or as a
// circle. Boundaries are flat [lat0, lon0, lat1, lon1, ...] lists in degrees.
type RegionConfig struct {
	Name       string        `yaml:"name" validate:"required"`
	InPoint    []float64     `yaml:"in_point" validate:"omitempty,len=2"`
	Boundaries [][]float64   `yaml:"boundaries"`
	Circle     *CircleConfig `yaml:"circle"`
}

// CircleConfig is a small circle of Radius degrees around (Lat, Lon).
type CircleConfig struct {
	Lat    float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Lon    float64 `yaml:"lon"`
	Radius float64 `yaml:"radius" validate:"gt=0,lt=180"`
	Points int     `yaml:"points" validate:"min=3"`
}

// Default returns a configuration that runs out of the box.
func Default() *File {
	return &File{
		Mask:   mask.DefaultConfig(),
		Log:    LogConfig{Level: "info"},
		Grid:   GridConfig{Rows: 90, Columns: 180},
		Region: DefaultRegion(),
	}
}

// DefaultRegion is a 10 degree circle over the Colorado Rockies.
func DefaultRegion() RegionConfig {
	return RegionConfig{
		Name:   "circle",
		Circle: &CircleConfig{Lat: 40, Lon: -105, Radius: 10, Points: 36},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*File, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// A region section replaces the default region instead of merging with it.
		cfg.Region = RegionConfig{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if cfg.Region.Circle == nil && len(cfg.Region.Boundaries) == 0 {
			cfg.Region = DefaultRegion()
		}
		cfg.Region.Name = validation.DefaultOr(cfg.Region.Name, "region")
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads each existing .env file into the process environment.
// Variables already set are left alone.
func LoadDotEnv(paths ...string) {
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

// ApplyEnv overrides settings from the environment.
func (f *File) ApplyEnv() error {
	if v := os.Getenv(EnvNumLayers); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNumLayers, err)
		}
		f.Mask.NumLayers = n
	}
	if v := os.Getenv(EnvStrategy); v != "" {
		f.Mask.Strategy = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvPathFinder); v != "" {
		f.Mask.PathFinder = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		f.Log.Level = strings.TrimSpace(v)
	}
	return nil
}

// Validate checks every section and reports all failures together.
func (f *File) Validate() error {
	cv := validation.NewConfigValidator("config")
	cv.Custom("mask", f.Mask.Validate).
		OneOf("log.level", strings.ToLower(f.Log.Level), logLevels).
		Struct(&f.Grid).
		Struct(&f.Region).
		Custom("region", f.Region.check)
	return cv.Validate()
}

func (r RegionConfig) check() error {
	if r.Circle == nil && len(r.Boundaries) == 0 {
		return errors.New("either boundaries or circle is required")
	}
	if r.Circle == nil && len(r.InPoint) != 2 {
		return errors.New("in_point is required with explicit boundaries")
	}
	for i, b := range r.Boundaries {
		if len(b) == 0 || len(b)%2 != 0 {
			return fmt.Errorf("boundary %d must hold a non-empty list of lat/lon pairs", i)
		}
	}
	return nil
}

// LogLevel returns the configured logging level.
func (f *File) LogLevel() logging.Level {
	return logging.ParseLevel(f.Log.Level)
}

// Build converts the region section into a Region. Explicit boundaries take
// precedence over the circle; the interior point defaults to the circle center.
func (r RegionConfig) Build() (region.Region, error) {
	if err := r.check(); err != nil {
		return region.Region{}, err
	}

	var loops []region.Loop
	if len(r.Boundaries) > 0 {
		for i, flat := range r.Boundaries {
			loop, err := region.LoopFromDegrees(flat)
			if err != nil {
				return region.Region{}, fmt.Errorf("boundary %d: %w", i, err)
			}
			loops = append(loops, loop)
		}
	} else {
		c := r.Circle
		loops = append(loops, region.LoopFromRing(region.Circle(c.Lat, c.Lon, c.Radius, c.Points)))
	}

	lat, lon := 0.0, 0.0
	switch {
	case len(r.InPoint) == 2:
		lat, lon = r.InPoint[0], r.InPoint[1]
	case r.Circle != nil:
		lat, lon = r.Circle.Lat, r.Circle.Lon
	}
	return region.New(r.Name, lat, lon, loops...), nil
}
