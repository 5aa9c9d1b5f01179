package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/navigation"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Environment overrides, applied after the file
const (
	EnvAudioEnabled = "ASTAR_GRID_AUDIO_ENABLED"
	EnvVolume       = "ASTAR_GRID_VOLUME" // 0-100
	EnvMetricsAddr  = "ASTAR_GRID_METRICS_ADDR"
)

// Config is the full run configuration
type Config struct {
	Grid      GridConfig      `toml:"grid"`
	Points    PointsConfig    `toml:"points"`
	Walls     []WallConfig    `toml:"walls"`
	Maze      MazeConfig      `toml:"maze"`
	Search    SearchConfig    `toml:"search"`
	Audio     AudioConfig     `toml:"audio"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

type GridConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// PointsConfig holds endpoints as [x, y] pairs
type PointsConfig struct {
	Start []int `toml:"start"`
	End   []int `toml:"end"`
}

// WallConfig is a rectangular obstacle region
type WallConfig struct {
	X int `toml:"x"`
	Y int `toml:"y"`
	W int `toml:"w"`
	H int `toml:"h"`
}

type MazeConfig struct {
	Enabled  bool    `toml:"enabled"`
	Braiding float64 `toml:"braiding"`
	Seed     int64   `toml:"seed"` // 0 = random
}

type SearchConfig struct {
	Heuristic string `toml:"heuristic"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

type TelemetryConfig struct {
	MetricsAddr string `toml:"metrics_addr"` // empty disables the endpoint
}

// Default returns the built-in demo layout
func Default() *Config {
	return &Config{
		Grid:   GridConfig{Width: 40, Height: 30},
		Points: PointsConfig{Start: []int{30, 15}, End: []int{3, 3}},
		Maze:   MazeConfig{Braiding: 0.2},
		Search: SearchConfig{Heuristic: "octile"},
		Audio:  AudioConfig{Enabled: true, Volume: 0.5},
	}
}

// Load decodes a TOML file over the defaults, applies environment overrides and validates.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("load config %s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalidConfig)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides audio and telemetry settings from the environment, malformed values are ignored
func (c *Config) applyEnv() {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}

	if volume := os.Getenv(EnvVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.Volume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if addr := os.Getenv(EnvMetricsAddr); addr != "" {
		c.Telemetry.MetricsAddr = addr
	}
}

// Validate checks dimensions, endpoints, walls and enumerations
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("grid %dx%d: %w", c.Grid.Width, c.Grid.Height, ErrInvalidConfig)
	}
	if c.Maze.Enabled && (c.Grid.Width < 3 || c.Grid.Height < 3) {
		return fmt.Errorf("maze needs at least a 3x3 grid, got %dx%d: %w", c.Grid.Width, c.Grid.Height, ErrInvalidConfig)
	}

	for name, pair := range map[string][]int{"start": c.Points.Start, "end": c.Points.End} {
		if len(pair) != 2 {
			return fmt.Errorf("%s must be [x, y], got %v: %w", name, pair, ErrInvalidConfig)
		}
		if !core.Pt(pair[0], pair[1]).In(c.Grid.Width, c.Grid.Height) {
			return fmt.Errorf("%s %v outside %dx%d grid: %w", name, pair, c.Grid.Width, c.Grid.Height, ErrInvalidConfig)
		}
	}

	for i, w := range c.Walls {
		if w.W <= 0 || w.H <= 0 {
			return fmt.Errorf("wall %d has size %dx%d: %w", i, w.W, w.H, ErrInvalidConfig)
		}
	}

	if c.Maze.Braiding < 0 || c.Maze.Braiding > 1 {
		return fmt.Errorf("maze braiding %g outside [0,1]: %w", c.Maze.Braiding, ErrInvalidConfig)
	}
	if navigation.HeuristicByName(c.Search.Heuristic) == nil {
		return fmt.Errorf("unknown heuristic %q: %w", c.Search.Heuristic, ErrInvalidConfig)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %g outside [0,1]: %w", c.Audio.Volume, ErrInvalidConfig)
	}
	return nil
}

// Start returns the configured start point, callers must Validate first
func (c *Config) Start() core.Point {
	return core.Pt(c.Points.Start[0], c.Points.Start[1])
}

// End returns the configured end point, callers must Validate first
func (c *Config) End() core.Point {
	return core.Pt(c.Points.End[0], c.Points.End[1])
}

// SetStart stores p as the start pair
func (c *Config) SetStart(p core.Point) {
	c.Points.Start = []int{p.X, p.Y}
}

// SetEnd stores p as the end pair
func (c *Config) SetEnd(p core.Point) {
	c.Points.End = []int{p.X, p.Y}
}

// ParsePoint parses "x,y" as used by command-line flags
func ParsePoint(s string) (core.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return core.Point{}, fmt.Errorf("point %q: expected x,y: %w", s, ErrInvalidConfig)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return core.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return core.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return core.Pt(x, y), nil
}
