package sph

import (
	"math"

	"github.com/pthm-cable/sphfluid/vecmath"
)

// wall is one axis-aligned domain boundary with its inward normal.
type wall struct {
	normal vecmath.Vec2
	dist   func(pos vecmath.Vec2, p *Params) float64 // World units inside the wall
}

var walls = [4]wall{
	{vecmath.New(1, 0), func(x vecmath.Vec2, p *Params) float64 { return x.X - p.DomainMin.X }},
	{vecmath.New(-1, 0), func(x vecmath.Vec2, p *Params) float64 { return p.DomainMax.X - x.X }},
	{vecmath.New(0, 1), func(x vecmath.Vec2, p *Params) float64 { return x.Y - p.DomainMin.Y }},
	{vecmath.New(0, -1), func(x vecmath.Vec2, p *Params) float64 { return p.DomainMax.Y - x.Y }},
}

// integrateRange advances particles [i0, i1) by one time step.
func integrateRange(ps []Particle, p *Params, i0, i1 int) {
	for i := i0; i < i1; i++ {
		integrate(&ps[i], p)
	}
}

// acceleration converts a particle's accumulated force into acceleration,
// including boundary penalties and gravity.
//
// Acceleration is force times mass, not force over mass. An AccelLimit of 0
// disables the magnitude clamp.
func acceleration(pt *Particle, p *Params) vecmath.Vec2 {
	accel := pt.Force.Scale(p.Mass)

	if p.AccelLimit > 0 {
		if speed2 := accel.Len2(); speed2 > p.AccelLimit*p.AccelLimit {
			accel.ScaleInPlace(p.AccelLimit / math.Sqrt(speed2))
		}
	}

	for _, w := range walls {
		diff := 2*p.ParticleRadius - w.dist(pt.Position, p)*p.SimScale
		if diff > p.BoundaryEpsilon {
			adj := p.BoundaryStiffness*diff - p.BoundaryDamping*w.normal.Dot(pt.Velocity)
			accel.AddInPlace(w.normal.Scale(adj))
		}
	}

	accel.AddInPlace(p.Gravity)
	return accel
}

// integrate applies semi-implicit Euler. Positions are never clamped; the
// boundary penalty pushes escaped particles back over later ticks.
func integrate(pt *Particle, p *Params) {
	accel := acceleration(pt, p)
	pt.Velocity.AddInPlace(accel.Scale(p.DT))
	pt.Position.AddInPlace(pt.Velocity.Scale(p.DT).Div(p.SimScale))
}
