package sph

import (
	"math"

	"github.com/pthm-cable/sphfluid/vecmath"
)

// forceRange accumulates pressure and viscosity forces for particles [i0, i1).
// Reads every particle's position, velocity, pressure and InvDensity from the
// finished density pass; writes only Force of its own range.
func forceRange(ps []Particle, p *Params, idx *NeighborIndex, i0, i1 int, scratch []int) []int {
	for i := i0; i < i1; i++ {
		pi := &ps[i]
		scratch = idx.QueryInto(scratch[:0], pi.Position)

		var force vecmath.Vec2
		for _, j := range scratch {
			if j == i {
				continue
			}
			f, ok := pairForce(pi, &ps[j], p)
			if ok {
				force.AddInPlace(f)
			}
		}
		pi.Force = force
	}
	return scratch
}

// pairForce returns the force j exerts on i, and false when j is outside the
// smoothing radius.
func pairForce(pi, pj *Particle, p *Params) (vecmath.Vec2, bool) {
	dr := pi.Position.Sub(pj.Position).Scale(p.SimScale)
	r := dr.Len()
	if r >= p.H {
		return vecmath.Zero, false
	}

	c := p.H - r
	// Coincident particles have dr == 0: the pressure term is dropped and
	// viscosity still applies.
	var pterm float64
	if d := math.Max(r, p.MinDistance); d > 0 {
		pterm = -0.5 * c * p.Spiky * (pi.Pressure + pj.Pressure) / d
	}
	vterm := p.Lap * p.Viscosity

	f := dr.Scale(pterm)
	f.AddInPlace(pj.Velocity.Sub(pi.Velocity).Scale(vterm))
	f.ScaleInPlace(c * pi.InvDensity * pj.InvDensity)
	return f, true
}
