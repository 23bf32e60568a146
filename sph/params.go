// Package sph implements a 2D weakly-compressible smoothed particle
// hydrodynamics stepper.
//
// A tick rebuilds the neighbor index from current positions, then runs three
// passes in strict sequence: density and pressure, pair forces, and
// integration with penalty boundaries. Positions are in world units;
// kernels are evaluated in physical units obtained by multiplying
// displacements by SimScale.
package sph

import (
	"fmt"

	"github.com/pthm-cable/sphfluid/config"
	"github.com/pthm-cable/sphfluid/vecmath"
)

// NeighborMode selects how the neighbor index answers queries.
type NeighborMode int

const (
	// NeighborCells enumerates the 3x3 block of integer cells around the
	// query cell. Every particle within one cell size is returned exactly once.
	NeighborCells NeighborMode = iota
	// NeighborProbe offsets the query position by {-d, 0, +d} on each axis
	// and reads the cell under each in-bounds probe. Near cell edges two
	// probes can hit the same cell (duplicates) and a neighbor just past
	// the domain edge can be missed.
	NeighborProbe
)

func (m NeighborMode) String() string {
	switch m {
	case NeighborCells:
		return config.NeighborCells
	case NeighborProbe:
		return config.NeighborProbe
	}
	return fmt.Sprintf("NeighborMode(%d)", int(m))
}

// ParseNeighborMode converts a config mode string.
func ParseNeighborMode(s string) (NeighborMode, error) {
	switch s {
	case config.NeighborCells, "":
		return NeighborCells, nil
	case config.NeighborProbe:
		return NeighborProbe, nil
	}
	return 0, fmt.Errorf("unknown neighbor mode %q", s)
}

// Params holds the physical and kernel constants for a run. It is built once
// and passed by value or pointer into every pass; nothing mutates it.
type Params struct {
	RestDensity    float64
	Stiffness      float64
	Mass           float64
	SimScale       float64
	H              float64
	H2             float64
	Viscosity      float64
	AccelLimit     float64
	ParticleRadius float64
	MinDistance    float64
	DT             float64
	Gravity        vecmath.Vec2

	BoundaryStiffness float64
	BoundaryDamping   float64
	BoundaryEpsilon   float64

	DomainMin vecmath.Vec2
	DomainMax vecmath.Vec2

	// Kernel normalization
	Poly6 float64
	Spiky float64
	Lap   float64

	CellSize float64 // World units
	Neighbor NeighborMode
}

// NewParams builds Params from a loaded configuration.
func NewParams(cfg *config.Config) (Params, error) {
	mode, err := ParseNeighborMode(cfg.Neighbor.Mode)
	if err != nil {
		return Params{}, fmt.Errorf("building params: %w", err)
	}

	p := Params{
		RestDensity:       cfg.SPH.RestDensity,
		Stiffness:         cfg.SPH.Stiffness,
		Mass:              cfg.SPH.ParticleMass,
		SimScale:          cfg.SPH.SimScale,
		H:                 cfg.SPH.SmoothingRadius,
		H2:                cfg.Derived.H2,
		Viscosity:         cfg.SPH.Viscosity,
		AccelLimit:        cfg.SPH.AccelLimit,
		ParticleRadius:    cfg.SPH.ParticleRadius,
		MinDistance:       cfg.SPH.MinDistance,
		DT:                cfg.Physics.DT,
		Gravity:           vecmath.New(cfg.Physics.Gravity.X, cfg.Physics.Gravity.Y),
		BoundaryStiffness: cfg.Boundary.Stiffness,
		BoundaryDamping:   cfg.Boundary.Damping,
		BoundaryEpsilon:   cfg.Boundary.Epsilon,
		DomainMin:         vecmath.New(cfg.Domain.Min.X, cfg.Domain.Min.Y),
		DomainMax:         vecmath.New(cfg.Domain.Max.X, cfg.Domain.Max.Y),
		Poly6:             cfg.Derived.Poly6,
		Spiky:             cfg.Derived.Spiky,
		Lap:               cfg.Derived.Lap,
		CellSize:          cfg.Derived.CellSize,
		Neighbor:          mode,
	}
	if err := p.validate(); err != nil {
		return Params{}, fmt.Errorf("building params: %w", err)
	}
	return p, nil
}

// DefaultParams returns Params for the embedded default configuration.
func DefaultParams() Params {
	cfg, err := config.Load("")
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	p, err := NewParams(cfg)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return p
}

func (p Params) validate() error {
	switch {
	case !(p.H > 0):
		return fmt.Errorf("smoothing radius must be positive, got %v", p.H)
	case !(p.SimScale > 0):
		return fmt.Errorf("sim scale must be positive, got %v", p.SimScale)
	case !(p.CellSize > 0):
		return fmt.Errorf("cell size must be positive, got %v", p.CellSize)
	case p.DomainMax.X <= p.DomainMin.X || p.DomainMax.Y <= p.DomainMin.Y:
		return fmt.Errorf("empty domain %v..%v", p.DomainMin, p.DomainMax)
	}
	return nil
}
