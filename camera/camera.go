// Package camera provides a 2D camera mapping the bounded fluid domain to
// screen pixels.
package camera

// Camera controls the viewport into the simulation domain. World y points
// up; screen y points down.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom multiplies BaseScale (1.0 = home view)
	Zoom float32

	// Pixels per world unit at zoom 1
	BaseScale float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Domain bounds; the camera center never leaves them
	MinX, MinY, MaxX, MaxY float32

	MinZoom, MaxZoom float32

	homeX, homeY float32
}

// New creates a camera whose home view fits the domain width to the
// viewport and rests on the domain floor.
func New(viewportW, viewportH, minX, minY, maxX, maxY float32) *Camera {
	scale := viewportW / (maxX - minX)
	c := &Camera{
		Zoom:      1.0,
		BaseScale: scale,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinX:      minX,
		MinY:      minY,
		MaxX:      maxX,
		MaxY:      maxY,
		MinZoom:   0.25,
		MaxZoom:   8.0,
		homeX:     (minX + maxX) / 2,
		homeY:     minY + viewportH/(2*scale),
	}
	c.Reset()
	return c
}

// PixelsPerUnit returns the current world-to-screen scale.
func (c *Camera) PixelsPerUnit() float32 {
	return c.BaseScale * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.PixelsPerUnit()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 - (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.PixelsPerUnit()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y - (sy-c.ViewportH/2)/s
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with the given world radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions. The scale is kept so the view grows
// rather than stretches.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.PixelsPerUnit()
	c.X = clamp(c.X+dx/s, c.MinX, c.MaxX)
	c.Y = clamp(c.Y-dy/s, c.MinY, c.MaxY)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the home position and zoom.
func (c *Camera) Reset() {
	c.X = c.homeX
	c.Y = c.homeY
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.PixelsPerUnit()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
