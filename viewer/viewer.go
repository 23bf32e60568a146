// Package viewer runs the interactive raylib window around a Simulation.
package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sphfluid/camera"
	"github.com/pthm-cable/sphfluid/config"
	"github.com/pthm-cable/sphfluid/renderer"
	"github.com/pthm-cable/sphfluid/sim"
	"github.com/pthm-cable/sphfluid/ui"
)

// Viewer owns the window-side state: camera, renderers and pause control.
// The window must already be open when New is called.
type Viewer struct {
	sim *sim.Simulation
	cfg *config.Config

	camera   *camera.Camera
	fluid    *renderer.FluidRenderer
	hud      *ui.HUD
	controls *ui.ControlsPanel

	screenWidth    float32
	screenHeight   float32
	paused         bool
	stepOnce       bool // advance one tick while paused
	stepsPerUpdate int
}

// New creates a viewer for s sized to the current window.
func New(s *sim.Simulation, cfg *config.Config, stepsPerUpdate int) *Viewer {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	d := cfg.Domain
	return &Viewer{
		sim:            s,
		cfg:            cfg,
		camera:         camera.New(w, h, float32(d.Min.X), float32(d.Min.Y), float32(d.Max.X), float32(d.Max.Y)),
		fluid:          renderer.NewFluidRenderer(float32(cfg.Render.GlyphRadius), float32(cfg.Render.MaxSpeed)),
		hud:            ui.NewHUD(),
		controls:       ui.NewControlsPanel(180),
		screenWidth:    w,
		screenHeight:   h,
		stepsPerUpdate: ui.ClampSteps(stepsPerUpdate),
	}
}

// Run drives the frame loop until the window closes, maxTicks is reached
// (when > 0) or a tick fails.
func (v *Viewer) Run(maxTicks int32) error {
	for !rl.WindowShouldClose() {
		if err := v.Update(); err != nil {
			return err
		}
		v.Draw()

		if maxTicks > 0 && v.sim.TickCount() >= maxTicks {
			return nil
		}
	}
	return nil
}

// Update handles input and advances the simulation for one frame.
func (v *Viewer) Update() error {
	v.handleInput()
	if v.stepOnce && v.paused {
		v.stepOnce = false
		return v.sim.Update(1, false)
	}
	v.stepOnce = false
	return v.sim.Update(v.stepsPerUpdate, v.paused)
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	var fps float64
	if ft := rl.GetFrameTime(); ft > 0 {
		fps = 1 / float64(ft)
	}
	rl.SetWindowTitle(fmt.Sprintf("fluid fps:%.02f", fps))

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	ps := v.sim.Particles()
	v.fluid.DrawDomain(v.camera)
	v.fluid.Draw(ps, v.camera)

	stats := v.sim.RefreshStats()
	perf := v.sim.Perf().Stats()
	params := v.sim.Params()
	v.hud.Draw(ui.HUDData{
		Tick:           v.sim.TickCount(),
		SimTime:        float64(v.sim.TickCount()) * params.DT,
		Particles:      len(ps),
		StepsPerUpdate: v.stepsPerUpdate,
		FPS:            perf.FPS,
		TickTime:       perf.AvgTickDuration,
		DensityMean:    stats.DensityMean,
		RestDensity:    params.RestDensity,
		MaxSpeed:       stats.MaxSpeed,
		OutOfBounds:    stats.OutOfBounds,
		Workers:        v.sim.Workers(),
		NeighborMode:   params.Neighbor.String(),
		Paused:         v.paused,
	})
	v.hud.DrawControls(int32(v.screenHeight))

	act := v.controls.Draw(int32(v.screenWidth), v.paused, v.stepsPerUpdate)
	v.apply(act)

	rl.EndDrawing()
}

// apply carries out panel actions. Steps requested here run on the next
// Update.
func (v *Viewer) apply(act ui.Actions) {
	if act.TogglePause {
		v.paused = !v.paused
	}
	if act.Reset {
		v.sim.Reset()
	}
	if act.SingleStep {
		v.stepOnce = true
	}
	v.stepsPerUpdate = act.StepsPerUpdate
}
