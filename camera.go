package alder

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultMinZoom = 0.1
	defaultMaxZoom = 4.0
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view onto the canvas: the world-space point it centers
// on, the zoom factor, and the screen rectangle it projects into. A diagram
// canvas never rotates, so projection reduces to scale plus translate.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// MinZoom and MaxZoom bound every zoom mutation made through the camera's
	// methods. Direct writes to Zoom bypass the clamp.
	MinZoom, MaxZoom float64
	// Screen is the screen-space rectangle the camera projects into.
	Screen Rect

	scrollTween *scrollAnim
	zoomTween   *gween.Tween
}

// NewCamera creates a camera centered on the origin at zoom 1, projecting
// into the given screen rectangle.
func NewCamera(screen Rect) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: defaultMinZoom,
		MaxZoom: defaultMaxZoom,
		Screen:  screen,
	}
}

// Pan moves the camera by a screen-space drag of (dx, dy) pixels: dragging
// the canvas right moves the viewed world left. A manual pan cancels an
// active scroll animation.
func (c *Camera) Pan(dx, dy float64) {
	c.X -= dx / c.Zoom
	c.Y -= dy / c.Zoom
	c.scrollTween = nil
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(zoom, c.MaxZoom))
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// the screen position (sx, sy) stationary, the way wheel zoom behaves.
func (c *Camera) ZoomAt(factor, sx, sy float64) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.Zoom * factor)
	cx := c.Screen.X + c.Screen.Width/2
	cy := c.Screen.Y + c.Screen.Height/2
	c.X = wx - (sx-cx)/c.Zoom
	c.Y = wy - (sy-cy)/c.Zoom
}

// ScrollTo animates the camera center to the given world position over
// duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// ScrollToNode scrolls to the center of the given node.
func (c *Camera) ScrollToNode(n *Node, duration float32, easeFn ease.TweenFunc) {
	x, y := n.Center()
	c.ScrollTo(x, y, duration, easeFn)
}

// ZoomTo animates the zoom factor to the given value over duration seconds.
// The target is clamped to [MinZoom, MaxZoom] up front.
func (c *Camera) ZoomTo(zoom float64, duration float32, easeFn ease.TweenFunc) {
	target := math.Max(c.MinZoom, math.Min(zoom, c.MaxZoom))
	c.zoomTween = gween.New(float32(c.Zoom), float32(target), duration, easeFn)
}

// Update advances active scroll and zoom animations. Called once per tick by
// the editor.
func (c *Camera) Update(dt float32) {
	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
	if c.zoomTween != nil {
		val, done := c.zoomTween.Update(dt)
		c.Zoom = float64(val)
		if done {
			c.zoomTween = nil
		}
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	cx := c.Screen.X + c.Screen.Width/2
	cy := c.Screen.Y + c.Screen.Height/2
	return cx + (wx-c.X)*c.Zoom, cy + (wy-c.Y)*c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	cx := c.Screen.X + c.Screen.Width/2
	cy := c.Screen.Y + c.Screen.Height/2
	return c.X + (sx-cx)/c.Zoom, c.Y + (sy-cy)/c.Zoom
}

// Viewport returns the world-space view the camera currently sees: the
// visible rectangle plus the zoom it was captured at.
func (c *Camera) Viewport() Viewport {
	w := c.Screen.Width / c.Zoom
	h := c.Screen.Height / c.Zoom
	return Viewport{
		X:      c.X - w/2,
		Y:      c.Y - h/2,
		Width:  w,
		Height: h,
		Zoom:   c.Zoom,
	}
}
