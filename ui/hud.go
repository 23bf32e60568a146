package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick           int32
	SimTime        float64
	Particles      int
	StepsPerUpdate int
	FPS            float64
	TickTime       time.Duration
	DensityMean    float64
	RestDensity    float64
	MaxSpeed       float64
	OutOfBounds    int
	Workers        int
	NeighborMode   string
	Paused         bool
}

// Lines returns the HUD text, one entry per line.
func (d HUDData) Lines() []string {
	status := "running"
	if d.Paused {
		status = "PAUSED"
	}
	return []string{
		fmt.Sprintf("tick %d  t=%.2fs  %s", d.Tick, d.SimTime, status),
		fmt.Sprintf("particles %d  out %d", d.Particles, d.OutOfBounds),
		fmt.Sprintf("fps %.0f  tick %dus  x%d", d.FPS, d.TickTime.Microseconds(), d.StepsPerUpdate),
		fmt.Sprintf("density %.1f / %.0f", d.DensityMean, d.RestDensity),
		fmt.Sprintf("max speed %.3f m/s", d.MaxSpeed),
		fmt.Sprintf("workers %d  neighbors %s", d.Workers, d.NeighborMode),
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	th := h.renderer.Theme
	lines := data.Lines()

	h.renderer.DrawPanel(5, 5, 260, int32(len(lines)+1)*th.LineHeight+th.Padding+26)
	y := h.renderer.DrawSectionHeader(5+th.Padding, 5+th.Padding/2, "fluid")
	for _, line := range lines {
		rl.DrawText(line, 5+th.Padding, y, th.FontSize, th.ValueColor)
		y += th.LineHeight
	}

	if data.RestDensity > 0 {
		h.renderer.DrawBar(5+th.Padding, y, "compress", float32(data.DensityMean/data.RestDensity), 240)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText("space pause | S step | R reset | ,/. speed | arrows pan | wheel zoom | home view",
		10, screenHeight-22, 12, rl.Gray)
}
