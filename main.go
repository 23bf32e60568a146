package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sphfluid/config"
	"github.com/pthm-cable/sphfluid/sim"
	"github.com/pthm-cable/sphfluid/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	exportDir := flag.String("export-dir", "", "Write a POV-Ray scene per tick into this directory")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	workers := flag.Int("workers", 0, "Stepper goroutines (0 = use config)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per rendered frame")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := sim.Options{
		ExportDir: *exportDir,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Workers:   *workers,
	}

	slog.Info("starting",
		"config", *configPath,
		"headless", *headless,
		"max_ticks", *maxTicks,
		"export_dir", *exportDir,
		"neighbor_mode", cfg.Neighbor.Mode,
	)

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		run(cfg, opts, func(s *sim.Simulation) error {
			return s.RunHeadless(int32(*maxTicks))
		})
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "fluid")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	run(cfg, opts, func(s *sim.Simulation) error {
		return viewer.New(s, cfg, *stepsPerUpdate).Run(int32(*maxTicks))
	})
}

// run builds the simulation, hands it to loop and exits non-zero on failure.
func run(cfg *config.Config, opts sim.Options, loop func(*sim.Simulation) error) {
	s, err := sim.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	loopErr := loop(s)
	closeErr := s.Close()
	if loopErr != nil {
		slog.Error("simulation failed", "tick", s.TickCount(), "error", loopErr)
		os.Exit(1)
	}
	if closeErr != nil {
		slog.Error("failed to close outputs", "error", closeErr)
		os.Exit(1)
	}
	slog.Info("done", "ticks", s.TickCount())
}
