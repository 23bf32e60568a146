package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func newDefault() *Camera {
	return New(800, 800, 0, 0, 20, 50)
}

func TestNewHomeView(t *testing.T) {
	cam := newDefault()

	if cam.BaseScale != 40 {
		t.Errorf("expected 40 px per unit, got %f", cam.BaseScale)
	}
	if cam.X != 10 || cam.Y != 10 {
		t.Errorf("expected camera at (10, 10), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenFlipsY(t *testing.T) {
	cam := newDefault()

	// Home view: sx = 40x, sy = 800 - 40y
	cases := []struct{ wx, wy, sx, sy float32 }{
		{0, 0, 0, 800},
		{20, 0, 800, 800},
		{10, 10, 400, 400},
		{5, 20, 200, 0},
	}
	for _, tc := range cases {
		sx, sy := cam.WorldToScreen(tc.wx, tc.wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("WorldToScreen(%v, %v): expected (%v, %v), got (%v, %v)",
				tc.wx, tc.wy, tc.sx, tc.sy, sx, sy)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newDefault()
	cam.SetZoom(2.5)
	cam.Pan(37, -12)

	for _, tc := range []struct{ sx, sy float32 }{{400, 400}, {10, 20}, {790, 700}} {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanIsClampedToDomain(t *testing.T) {
	cam := newDefault()

	cam.Pan(-100000, 0)
	if cam.X != 0 {
		t.Errorf("expected X clamped to 0, got %f", cam.X)
	}
	// Dragging the screen up moves the view up the domain.
	cam.Pan(0, -100000)
	if cam.Y != 50 {
		t.Errorf("expected Y clamped to 50, got %f", cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := newDefault()

	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.Reset()
	if cam.Zoom != 1 || cam.X != 10 || cam.Y != 10 {
		t.Errorf("expected home view after reset, got (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := newDefault()

	if !cam.IsVisible(10, 10, 0.5) {
		t.Error("expected center to be visible")
	}
	if cam.IsVisible(10, 30, 0.5) {
		t.Error("expected point above the home view to be culled")
	}
	if !cam.IsVisible(10, 20.3, 0.5) {
		t.Error("expected circle overlapping the top edge to be visible")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := newDefault()
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) || !near(maxX, 20) || !near(maxY, 20) {
		t.Errorf("expected (0,0)-(20,20), got (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}

	cam.Resize(1600, 800)
	minX, _, maxX, _ = cam.VisibleWorldBounds()
	if !near(maxX-minX, 40) {
		t.Errorf("expected 40 units visible after widening, got %f", maxX-minX)
	}
}
