// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Heatmap   HeatmapConfig   `yaml:"heatmap"`
	Camera    CameraConfig    `yaml:"camera"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Presets   []PresetConfig  `yaml:"presets"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds the gravitational and collision parameters.
type PhysicsConfig struct {
	// G is the gravitational constant used in pairwise attraction.
	G float64 `yaml:"g"`
	// DT is the fixed simulation time step per tick.
	DT float64 `yaml:"dt"`
	// SystemScale divides integration steps and collision impulses.
	SystemScale float64 `yaml:"system_scale"`
	// CollisionDampening scales collision impulse magnitudes.
	CollisionDampening float64 `yaml:"collision_dampening"`
	// MergeAngleTolerance is the radians within 0 or pi that a deflection
	// counts as head-on and triggers a merge.
	MergeAngleTolerance float64 `yaml:"merge_angle_tolerance"`
	// MergeImpulseFloor merges any pair whose impulse falls below it.
	MergeImpulseFloor float64 `yaml:"merge_impulse_floor"`
	// AbsorbBias is the mass-ratio bias below which a body is absorbed.
	AbsorbBias float64 `yaml:"absorb_bias"`
	// DominantBias is the mass-ratio bias at or above which the pair is skipped.
	DominantBias float64 `yaml:"dominant_bias"`
}

// HeatmapConfig holds field sampler grid parameters.
type HeatmapConfig struct {
	CellSize       int     `yaml:"cell_size"`       // Grid cell edge in world units
	UpdateInterval float64 `yaml:"update_interval"` // Seconds between refreshes
}

// CameraConfig holds viewport parameters.
type CameraConfig struct {
	MinZoom     float64 `yaml:"min_zoom"`
	MaxZoom     float64 `yaml:"max_zoom"`
	ZoomInStep  float64 `yaml:"zoom_in_step"`  // Multiplier applied on wheel up
	ZoomOutStep float64 `yaml:"zoom_out_step"` // Multiplier applied on wheel down
}

// SpawnConfig holds interactive body placement parameters.
type SpawnConfig struct {
	// VelocityScale converts the drag vector between drop point and release
	// point into an initial velocity.
	VelocityScale float64 `yaml:"velocity_scale"`
	// DefaultPreset names the preset the drawer starts with. Falls back to
	// the first preset when absent.
	DefaultPreset string `yaml:"default_preset"`
}

// ParallelConfig holds worker pool parameters for the force pass.
type ParallelConfig struct {
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
	Threshold int `yaml:"threshold"` // Minimum body count before workers engage
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// PresetConfig defines a named body template for the spawn drawer.
type PresetConfig struct {
	Name   string  `yaml:"name"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"` // Hex RGB, e.g. "#1c42ad"
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PresetIndex map[string]int // name -> index for preset lookup
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PresetIndex = make(map[string]int, len(c.Presets))
	for i, p := range c.Presets {
		c.Derived.PresetIndex[p.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
