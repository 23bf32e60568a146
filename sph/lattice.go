package sph

import (
	"math"

	"github.com/pthm-cable/sphfluid/vecmath"
)

// LatticeSpacing returns the world-unit spacing at which particles of the
// configured mass fill space at rest density, scaled by factor.
func LatticeSpacing(p *Params, factor float64) float64 {
	return math.Cbrt(p.Mass/p.RestDensity) / p.SimScale * factor
}

// NewLattice lays particles out on a square lattice covering [min, max],
// row by row from min.Y upwards. All velocities, forces and pressures start at zero.
func NewLattice(p *Params, min, max vecmath.Vec2, factor float64) []Particle {
	d := LatticeSpacing(p, factor)
	if !(d > 0) {
		return nil
	}

	nx := int((max.X-min.X)/d) + 1
	ny := int((max.Y-min.Y)/d) + 1
	if nx <= 0 || ny <= 0 {
		return nil
	}

	ps := make([]Particle, 0, nx*ny)
	for y := min.Y; y <= max.Y; y += d {
		for x := min.X; x <= max.X; x += d {
			ps = append(ps, Particle{Position: vecmath.New(x, y)})
		}
	}
	return ps
}
