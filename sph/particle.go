package sph

import "github.com/pthm-cable/sphfluid/vecmath"

// Particle is the per-particle simulation state.
//
// InvDensity holds 1/density once the density pass has run. Every consumer
// after that pass reads it as a reciprocal. A particle whose density came out
// exactly zero stores 0 here instead of +Inf.
type Particle struct {
	Position vecmath.Vec2 // World units
	Velocity vecmath.Vec2 // Physical units per second
	Force    vecmath.Vec2

	InvDensity float64
	Pressure   float64
}

// Density returns the physical density recovered from InvDensity.
func (p *Particle) Density() float64 {
	if p.InvDensity == 0 {
		return 0
	}
	return 1 / p.InvDensity
}
