// Package config provides configuration loading and access for the fluid simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Neighbor query modes.
const (
	NeighborCells = "cells" // exact 3x3 integer-cell enumeration
	NeighborProbe = "probe" // continuous-position offset probes
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	SPH       SPHConfig       `yaml:"sph"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Domain    RectConfig      `yaml:"domain"`
	Lattice   LatticeConfig   `yaml:"lattice"`
	Neighbor  NeighborConfig  `yaml:"neighbor"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Render    RenderConfig    `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec is a 2D vector in YAML form.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SPHConfig holds the fluid model constants.
type SPHConfig struct {
	RestDensity     float64 `yaml:"rest_density"`     // Density at which pressure is zero
	Stiffness       float64 `yaml:"stiffness"`        // Pressure = stiffness * (density - rest)
	ParticleMass    float64 `yaml:"particle_mass"`
	SimScale        float64 `yaml:"sim_scale"`        // World units -> physical units
	SmoothingRadius float64 `yaml:"smoothing_radius"` // H, physical units
	Viscosity       float64 `yaml:"viscosity"`
	AccelLimit      float64 `yaml:"accel_limit"`      // Acceleration magnitude clamp
	ParticleRadius  float64 `yaml:"particle_radius"`  // Physical units, used by the boundary test
	MinDistance     float64 `yaml:"min_distance"`     // Floor on pair distance in the force pass
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT      float64 `yaml:"dt"`
	Gravity Vec     `yaml:"gravity"`
}

// BoundaryConfig holds penalty wall parameters.
type BoundaryConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Epsilon   float64 `yaml:"epsilon"` // Penetration below this is ignored
}

// RectConfig is an axis-aligned rectangle in world units.
type RectConfig struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

// LatticeConfig holds initial particle layout.
type LatticeConfig struct {
	Min           Vec     `yaml:"min"`
	Max           Vec     `yaml:"max"`
	SpacingFactor float64 `yaml:"spacing_factor"` // Multiplier on the rest spacing
}

// NeighborConfig selects the neighbor query strategy.
type NeighborConfig struct {
	Mode string `yaml:"mode"` // "cells" or "probe"
}

// ParallelConfig controls the per-pass worker pool.
type ParallelConfig struct {
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS, 1 = single-threaded
	Threshold int `yaml:"threshold"` // Below this particle count passes run inline
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsInterval int `yaml:"stats_interval"` // Ticks per stats window
	PerfWindow    int `yaml:"perf_window"`    // Ticks averaged by the perf collector
}

// RenderConfig holds viewer parameters.
type RenderConfig struct {
	GlyphRadius float64 `yaml:"glyph_radius"` // World units
	MaxSpeed    float64 `yaml:"max_speed"`    // Speed mapped to the hottest color
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	H2             float64
	Poly6          float64 // 315 / (64 pi h^9)
	Spiky          float64 // -45 / (pi h^6)
	Lap            float64 // 45 / (pi h^6)
	CellSize       float64 // World units
	LatticeSpacing float64 // World units
	DomainW        float64
	DomainH        float64
}

var global *Config

// Init loads configuration from the given path (or defaults if empty).
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit loads configuration and panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

// Cfg returns the global configuration.
// Panics if Init() has not been called.
func Cfg() *Config {
	if global == nil {
		panic("config.Init() must be called before config.Cfg()")
	}
	return global
}

// Load reads configuration from a YAML file, using embedded defaults for missing values.
// If path is empty, returns the embedded defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()
	return cfg, nil
}

// Validate checks that the configuration describes a usable simulation.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("sph.rest_density", c.SPH.RestDensity)
	positive("sph.particle_mass", c.SPH.ParticleMass)
	positive("sph.sim_scale", c.SPH.SimScale)
	positive("sph.smoothing_radius", c.SPH.SmoothingRadius)
	positive("physics.dt", c.Physics.DT)
	positive("lattice.spacing_factor", c.Lattice.SpacingFactor)

	if c.SPH.AccelLimit < 0 {
		errs = append(errs, fmt.Errorf("sph.accel_limit must not be negative, got %v", c.SPH.AccelLimit))
	}
	if c.SPH.MinDistance < 0 {
		errs = append(errs, fmt.Errorf("sph.min_distance must not be negative, got %v", c.SPH.MinDistance))
	}
	if c.Domain.Max.X <= c.Domain.Min.X || c.Domain.Max.Y <= c.Domain.Min.Y {
		errs = append(errs, errors.New("domain.max must exceed domain.min on both axes"))
	}
	if c.Lattice.Max.X < c.Lattice.Min.X || c.Lattice.Max.Y < c.Lattice.Min.Y {
		errs = append(errs, errors.New("lattice.max must not be below lattice.min"))
	}
	switch c.Neighbor.Mode {
	case NeighborCells, NeighborProbe:
	default:
		errs = append(errs, fmt.Errorf("neighbor.mode must be %q or %q, got %q", NeighborCells, NeighborProbe, c.Neighbor.Mode))
	}
	if c.Parallel.Workers < 0 {
		errs = append(errs, fmt.Errorf("parallel.workers must not be negative, got %d", c.Parallel.Workers))
	}

	return errors.Join(errs...)
}

// computeDerived calculates derived values from the loaded configuration.
func (c *Config) computeDerived() {
	h := c.SPH.SmoothingRadius
	c.Derived.H2 = h * h
	c.Derived.Poly6 = 315.0 / (64.0 * math.Pi * math.Pow(h, 9))
	c.Derived.Spiky = -45.0 / (math.Pi * math.Pow(h, 6))
	c.Derived.Lap = 45.0 / (math.Pi * math.Pow(h, 6))
	c.Derived.CellSize = h / c.SPH.SimScale

	// Rest spacing is the side of a cube holding one particle's mass at rest density.
	restSpacing := math.Cbrt(c.SPH.ParticleMass / c.SPH.RestDensity)
	c.Derived.LatticeSpacing = restSpacing / c.SPH.SimScale * c.Lattice.SpacingFactor

	c.Derived.DomainW = c.Domain.Max.X - c.Domain.Min.X
	c.Derived.DomainH = c.Domain.Max.Y - c.Domain.Min.Y
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
