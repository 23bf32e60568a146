// Package renderer draws the fluid with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sphfluid/camera"
	"github.com/pthm-cable/sphfluid/sph"
)

var (
	slowColor   = rl.Color{R: 60, G: 120, B: 220, A: 255}
	fastColor   = rl.Color{R: 240, G: 250, B: 255, A: 255}
	domainColor = rl.Color{R: 90, G: 90, B: 100, A: 255}
)

// FluidRenderer draws one outlined circle per particle.
type FluidRenderer struct {
	GlyphRadius float32 // World units
	MaxSpeed    float32 // Speed drawn with fastColor
}

// NewFluidRenderer creates a renderer.
func NewFluidRenderer(glyphRadius, maxSpeed float32) *FluidRenderer {
	if maxSpeed <= 0 {
		maxSpeed = 1
	}
	return &FluidRenderer{GlyphRadius: glyphRadius, MaxSpeed: maxSpeed}
}

// Draw renders all visible particles. It only reads ps.
func (r *FluidRenderer) Draw(ps []sph.Particle, cam *camera.Camera) {
	radius := r.GlyphRadius * cam.PixelsPerUnit()
	for i := range ps {
		p := &ps[i]
		wx, wy := float32(p.Position.X), float32(p.Position.Y)
		if !cam.IsVisible(wx, wy, r.GlyphRadius) {
			continue
		}
		sx, sy := cam.WorldToScreen(wx, wy)
		rl.DrawCircleLines(int32(sx), int32(sy), radius, r.speedColor(p))
	}
}

// DrawDomain outlines the domain rectangle.
func (r *FluidRenderer) DrawDomain(cam *camera.Camera) {
	x0, y0 := cam.WorldToScreen(cam.MinX, cam.MaxY)
	x1, y1 := cam.WorldToScreen(cam.MaxX, cam.MinY)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 2, domainColor)
}

func (r *FluidRenderer) speedColor(p *sph.Particle) rl.Color {
	t := float32(p.Velocity.Len()) / r.MaxSpeed
	if t > 1 {
		t = 1
	}
	return rl.Color{
		R: lerp8(slowColor.R, fastColor.R, t),
		G: lerp8(slowColor.G, fastColor.G, t),
		B: lerp8(slowColor.B, fastColor.B, t),
		A: 255,
	}
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t)
}
