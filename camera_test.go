package alder

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func screen800x600() Rect {
	return Rect{X: 0, Y: 0, Width: 800, Height: 600}
}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(screen800x600())
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if cam.MinZoom != defaultMinZoom || cam.MaxZoom != defaultMaxZoom {
		t.Errorf("zoom range = [%f,%f], want [%f,%f]", cam.MinZoom, cam.MaxZoom, defaultMinZoom, defaultMaxZoom)
	}
	v := cam.Viewport()
	if v.Width != 800 || v.Height != 600 || v.Zoom != 1.0 {
		t.Errorf("Viewport = %+v, want 800x600 at zoom 1", v)
	}
}

func TestCameraWorldToScreen(t *testing.T) {
	cam := NewCamera(screen800x600())
	cam.X, cam.Y = 100, 50

	// The camera center maps to the screen center.
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, 1e-9) || !approxEqual(sy, 300, 1e-9) {
		t.Errorf("WorldToScreen(center) = (%f,%f), want (400,300)", sx, sy)
	}

	// At zoom 2, one world unit is two screen pixels.
	cam.Zoom = 2.0
	sx1, _ := cam.WorldToScreen(101, 50)
	sx0, _ := cam.WorldToScreen(100, 50)
	if !approxEqual(sx1-sx0, 2.0, 1e-9) {
		t.Errorf("zoom 2: 1 world unit = %f screen pixels, want 2", sx1-sx0)
	}
}

func TestCameraScreenToWorldRoundtrip(t *testing.T) {
	cam := NewCamera(screen800x600())
	cam.X = 42
	cam.Y = -17
	cam.Zoom = 1.5

	origWX, origWY := 123.0, -456.0
	sx, sy := cam.WorldToScreen(origWX, origWY)
	wx, wy := cam.ScreenToWorld(sx, sy)

	if !approxEqual(wx, origWX, 1e-6) || !approxEqual(wy, origWY, 1e-6) {
		t.Errorf("roundtrip: got (%f,%f), want (%f,%f)", wx, wy, origWX, origWY)
	}
}

func TestCameraPan(t *testing.T) {
	cam := NewCamera(screen800x600())
	cam.Pan(10, -20)
	// Dragging content right/down moves the camera the opposite way.
	if cam.X != -10 || cam.Y != 20 {
		t.Errorf("after Pan: cam = (%f,%f), want (-10,20)", cam.X, cam.Y)
	}

	// Screen-pixel deltas shrink in world units when zoomed in.
	cam.X, cam.Y = 0, 0
	cam.Zoom = 2.0
	cam.Pan(10, 0)
	if cam.X != -5 {
		t.Errorf("pan at zoom 2: cam.X = %f, want -5", cam.X)
	}
}

func TestCameraPanCancelsScroll(t *testing.T) {
	cam := NewCamera(screen800x600())
	cam.ScrollTo(100, 100, 1.0, ease.Linear)
	cam.Pan(1, 1)

	x := cam.X
	cam.Update(0.5)
	if cam.X != x {
		t.Error("scroll animation survived a manual pan")
	}
}

func TestCameraSetZoomClamps(t *testing.T) {
	cam := NewCamera(screen800x600())

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("Zoom = %f, want clamped to %f", cam.Zoom, cam.MaxZoom)
	}
	cam.SetZoom(0.00001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("Zoom = %f, want clamped to %f", cam.Zoom, cam.MinZoom)
	}
}

func TestCameraZoomAtAnchorsScreenPoint(t *testing.T) {
	cam := NewCamera(screen800x600())
	cam.X, cam.Y = 50, 80

	// The world point under the cursor must stay under the cursor.
	const sx, sy = 600, 400
	wx, wy := cam.ScreenToWorld(sx, sy)
	cam.ZoomAt(2.0, sx, sy)
	gx, gy := cam.WorldToScreen(wx, wy)

	if !approxEqual(gx, sx, 1e-6) || !approxEqual(gy, sy, 1e-6) {
		t.Errorf("anchor drifted to (%f,%f), want (%f,%f)", gx, gy, float64(sx), float64(sy))
	}
	if cam.Zoom != 2.0 {
		t.Errorf("Zoom = %f, want 2.0", cam.Zoom)
	}
}

func TestCameraViewportAtZoom(t *testing.T) {
	cam := NewCamera(screen800x600())
	cam.X, cam.Y = 400, 300
	cam.Zoom = 2.0

	v := cam.Viewport()
	if !approxEqual(v.Width, 400, 1e-9) || !approxEqual(v.Height, 300, 1e-9) {
		t.Errorf("viewport size = %fx%f, want 400x300", v.Width, v.Height)
	}
	if !approxEqual(v.X, 200, 1e-9) || !approxEqual(v.Y, 150, 1e-9) {
		t.Errorf("viewport origin = (%f,%f), want (200,150)", v.X, v.Y)
	}
	if v.Zoom != 2.0 {
		t.Errorf("viewport zoom = %f, want 2", v.Zoom)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(screen800x600())
	cam.ScrollTo(100, 200, 1.0, ease.Linear)

	cam.Update(0.5)
	if !approxEqual(cam.X, 50, 1.0) || !approxEqual(cam.Y, 100, 1.0) {
		t.Errorf("scroll halfway: cam = (%f,%f), want ~(50,100)", cam.X, cam.Y)
	}

	cam.Update(0.5)
	if !approxEqual(cam.X, 100, 1.0) || !approxEqual(cam.Y, 200, 1.0) {
		t.Errorf("scroll end: cam = (%f,%f), want ~(100,200)", cam.X, cam.Y)
	}
	if cam.scrollTween != nil {
		t.Error("scrollTween not nil after completion")
	}
}

func TestCameraScrollToNode(t *testing.T) {
	cam := NewCamera(screen800x600())
	n := testNode("a", 100, 200) // 50x50, center (125, 225)

	cam.ScrollToNode(n, 0.0001, ease.Linear)
	cam.Update(1.0) // large dt finishes instantly

	if !approxEqual(cam.X, 125, 1.0) || !approxEqual(cam.Y, 225, 1.0) {
		t.Errorf("scrollToNode: cam = (%f,%f), want ~(125,225)", cam.X, cam.Y)
	}
}

func TestCameraZoomTo(t *testing.T) {
	cam := NewCamera(screen800x600())
	cam.ZoomTo(2.0, 1.0, ease.Linear)

	cam.Update(0.5)
	if !approxEqual(cam.Zoom, 1.5, 0.01) {
		t.Errorf("zoom halfway = %f, want ~1.5", cam.Zoom)
	}
	cam.Update(0.5)
	if !approxEqual(cam.Zoom, 2.0, 0.01) {
		t.Errorf("zoom end = %f, want ~2.0", cam.Zoom)
	}
	if cam.zoomTween != nil {
		t.Error("zoomTween not nil after completion")
	}
}

func TestCameraZoomToClampsTarget(t *testing.T) {
	cam := NewCamera(screen800x600())
	cam.ZoomTo(100, 0.0001, ease.Linear)
	cam.Update(1.0)

	if !approxEqual(cam.Zoom, cam.MaxZoom, 0.01) {
		t.Errorf("Zoom = %f, want clamped target %f", cam.Zoom, cam.MaxZoom)
	}
}
