// Package sim owns a running fluid simulation: its particles, stepper,
// telemetry and frame export. It has no rendering dependencies so the same
// driver serves the windowed viewer and headless runs.
package sim

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sphfluid/config"
	"github.com/pthm-cable/sphfluid/export"
	"github.com/pthm-cable/sphfluid/sph"
	"github.com/pthm-cable/sphfluid/telemetry"
	"github.com/pthm-cable/sphfluid/vecmath"
)

// Options holds run settings that come from the command line rather than
// the config file.
type Options struct {
	ExportDir string // Write a POV-Ray frame per tick when set
	OutputDir string // Write stats.csv, perf.csv and config.yaml when set
	LogStats  bool   // Log stats and perf every stats window
	Workers   int    // Overrides parallel.workers when > 0
}

// Simulation is the driver state for one run.
type Simulation struct {
	cfg     *config.Config
	params  sph.Params
	opts    Options
	ps      []sph.Particle
	stepper *sph.Stepper

	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
	exporter *export.POVExporter

	tick      int32
	lastStats telemetry.FrameStats
}

// New builds a simulation from a loaded configuration.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	params, err := sph.NewParams(cfg)
	if err != nil {
		return nil, err
	}

	workers := cfg.Parallel.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	s := &Simulation{
		cfg:     cfg,
		params:  params,
		opts:    opts,
		stepper: sph.NewStepper(params, workers),
		perf:    telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}
	if cfg.Parallel.Threshold > 0 {
		s.stepper.SetParallelThreshold(cfg.Parallel.Threshold)
	}
	s.stepper.SetRecorder(s.perf)

	if opts.ExportDir != "" {
		s.exporter, err = export.NewPOVExporter(opts.ExportDir)
		if err != nil {
			s.stepper.Close()
			return nil, err
		}
	}

	s.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.stepper.Close()
		return nil, err
	}
	if err := s.output.WriteConfig(cfg); err != nil {
		s.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	s.Reset()
	return s, nil
}

// Reset lays the particles out on the initial lattice and rewinds the tick
// counter.
func (s *Simulation) Reset() {
	lc := s.cfg.Lattice
	s.ps = sph.NewLattice(&s.params,
		vecmath.New(lc.Min.X, lc.Min.Y),
		vecmath.New(lc.Max.X, lc.Max.Y),
		lc.SpacingFactor,
	)
	s.tick = 0
	s.lastStats = telemetry.ComputeFrameStats(0, s.ps, &s.params)
}

// Tick advances the simulation one step, exports the frame if enabled and
// emits telemetry at window boundaries. An export error stops the run:
// frames form a numbered sequence and a gap would go unnoticed.
func (s *Simulation) Tick() error {
	s.perf.StartTick()
	s.stepper.Step(s.ps)

	if s.exporter != nil {
		s.perf.StartPhase(telemetry.PhaseExport)
		if _, err := s.exporter.Export(int(s.tick), s.ps); err != nil {
			return fmt.Errorf("exporting frame %d: %w", s.tick, err)
		}
	}
	s.tick++

	if interval := s.cfg.Telemetry.StatsInterval; interval > 0 && s.tick%int32(interval) == 0 {
		s.perf.StartPhase(telemetry.PhaseTelemetry)
		if err := s.flushWindow(); err != nil {
			return err
		}
	}
	s.perf.EndTick()
	return nil
}

// flushWindow computes stats for the window just finished.
func (s *Simulation) flushWindow() error {
	s.lastStats = telemetry.ComputeFrameStats(s.tick, s.ps, &s.params)
	perf := s.perf.Stats()

	if s.opts.LogStats {
		s.lastStats.LogStats()
		perf.LogStats()
	}
	if err := s.output.WriteStats(s.lastStats); err != nil {
		return err
	}
	return s.output.WritePerf(perf, s.tick)
}

// Update runs steps ticks unless paused. It is called once per rendered
// frame by the viewer.
func (s *Simulation) Update(steps int, paused bool) error {
	s.perf.RecordFrame()
	if paused {
		return nil
	}
	for i := 0; i < steps; i++ {
		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// RunHeadless runs maxTicks ticks without a window. maxTicks <= 0 runs
// until an error occurs.
func (s *Simulation) RunHeadless(maxTicks int32) error {
	slog.Info("running headless", "particles", len(s.ps), "max_ticks", maxTicks, "workers", s.stepper.Workers())
	for maxTicks <= 0 || s.tick < maxTicks {
		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Particles returns the live particle slice. Callers must treat it as
// read-only.
func (s *Simulation) Particles() []sph.Particle {
	return s.ps
}

// Params returns the physical parameters.
func (s *Simulation) Params() *sph.Params {
	return &s.params
}

// TickCount returns the number of completed ticks since the last reset.
func (s *Simulation) TickCount() int32 {
	return s.tick
}

// Perf returns the performance collector.
func (s *Simulation) Perf() *telemetry.PerfCollector {
	return s.perf
}

// Workers returns the stepper's worker count.
func (s *Simulation) Workers() int {
	return s.stepper.Workers()
}

// LastStats returns the stats of the most recent window.
func (s *Simulation) LastStats() telemetry.FrameStats {
	return s.lastStats
}

// RefreshStats recomputes LastStats from the current particles.
func (s *Simulation) RefreshStats() telemetry.FrameStats {
	s.lastStats = telemetry.ComputeFrameStats(s.tick, s.ps, &s.params)
	return s.lastStats
}

// Close stops the worker pool and closes output files.
func (s *Simulation) Close() error {
	s.stepper.Close()
	return s.output.Close()
}
