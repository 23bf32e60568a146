package sph

// densityRange computes density and pressure for particles [i0, i1).
// It reads only positions and writes only InvDensity and Pressure of its own
// range, so disjoint ranges may run concurrently.
func densityRange(ps []Particle, p *Params, idx *NeighborIndex, i0, i1 int, scratch []int) []int {
	for i := i0; i < i1; i++ {
		pi := &ps[i]
		scratch = idx.QueryInto(scratch[:0], pi.Position)

		var sum float64
		for _, j := range scratch {
			if j == i {
				continue
			}
			dr := pi.Position.Sub(ps[j].Position).Scale(p.SimScale)
			r2 := dr.Len2()
			if r2 < p.H2 {
				c := p.H2 - r2
				sum += c * c * c
			}
		}

		density := sum * p.Mass * p.Poly6
		pi.Pressure = p.Stiffness * (density - p.RestDensity)
		pi.InvDensity = reciprocal(density)
	}
	return scratch
}

// reciprocal returns 1/x, or 0 for x == 0.
func reciprocal(x float64) float64 {
	if x == 0 {
		return 0
	}
	return 1 / x
}
