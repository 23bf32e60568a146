package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sphfluid/sph"
)

// FrameStats summarizes the fluid state at the end of a stats window.
type FrameStats struct {
	Tick      int32   `csv:"tick"`
	SimTime   float64 `csv:"sim_time"`
	Particles int     `csv:"particles"`

	// Density over particles with at least one neighbor
	DensityMean float64 `csv:"density_mean"`
	DensityStd  float64 `csv:"density_std"`
	DensityMin  float64 `csv:"density_min"`
	DensityP50  float64 `csv:"density_p50"`
	DensityP90  float64 `csv:"density_p90"`
	DensityMax  float64 `csv:"density_max"`
	Isolated    int     `csv:"isolated"` // Particles with zero density

	PressureMean float64 `csv:"pressure_mean"`

	MeanSpeed     float64 `csv:"mean_speed"`
	MaxSpeed      float64 `csv:"max_speed"`
	KineticEnergy float64 `csv:"kinetic_energy"` // Sum of m*v^2/2, physical units

	CenterX     float64 `csv:"center_x"` // Center of mass, world units
	CenterY     float64 `csv:"center_y"`
	OutOfBounds int     `csv:"out_of_bounds"`
}

// ComputeFrameStats builds FrameStats from particles after a tick.
func ComputeFrameStats(tick int32, ps []sph.Particle, p *sph.Params) FrameStats {
	fs := FrameStats{
		Tick:      tick,
		SimTime:   float64(tick) * p.DT,
		Particles: len(ps),
	}
	if len(ps) == 0 {
		return fs
	}

	densities := make([]float64, 0, len(ps))
	pressures := make([]float64, len(ps))
	speeds := make([]float64, len(ps))
	xs := make([]float64, len(ps))
	ys := make([]float64, len(ps))

	for i := range ps {
		pt := &ps[i]
		if d := pt.Density(); d > 0 {
			densities = append(densities, d)
		} else {
			fs.Isolated++
		}
		pressures[i] = pt.Pressure
		speeds[i] = pt.Velocity.Len()
		xs[i] = pt.Position.X
		ys[i] = pt.Position.Y

		if !inDomain(pt, p) {
			fs.OutOfBounds++
		}
		fs.KineticEnergy += 0.5 * p.Mass * pt.Velocity.Len2()
	}

	if len(densities) > 0 {
		fs.DensityMean, fs.DensityStd = stat.MeanStdDev(densities, nil)
		if math.IsNaN(fs.DensityStd) {
			fs.DensityStd = 0
		}
		sort.Float64s(densities)
		fs.DensityMin = floats.Min(densities)
		fs.DensityMax = floats.Max(densities)
		fs.DensityP50 = stat.Quantile(0.5, stat.Empirical, densities, nil)
		fs.DensityP90 = stat.Quantile(0.9, stat.Empirical, densities, nil)
	}

	fs.PressureMean = stat.Mean(pressures, nil)
	fs.MeanSpeed = stat.Mean(speeds, nil)
	fs.MaxSpeed = floats.Max(speeds)
	fs.CenterX = stat.Mean(xs, nil)
	fs.CenterY = stat.Mean(ys, nil)
	return fs
}

func inDomain(pt *sph.Particle, p *sph.Params) bool {
	pos := pt.Position
	return pos.X >= p.DomainMin.X && pos.X <= p.DomainMax.X &&
		pos.Y >= p.DomainMin.Y && pos.Y <= p.DomainMax.Y
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(s.Tick)),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("particles", s.Particles),
		slog.Float64("density_mean", s.DensityMean),
		slog.Float64("density_std", s.DensityStd),
		slog.Float64("density_p50", s.DensityP50),
		slog.Float64("density_p90", s.DensityP90),
		slog.Float64("density_max", s.DensityMax),
		slog.Int("isolated", s.Isolated),
		slog.Float64("pressure_mean", s.PressureMean),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Int("out_of_bounds", s.OutOfBounds),
	)
}

// LogStats logs the frame stats using slog.
func (s FrameStats) LogStats() {
	slog.Info("stats", "fluid", s)
}
