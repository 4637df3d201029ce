// Package camera provides a 2D camera system for viewport control.
package camera

import "gonum.org/v1/gonum/spatial/r2"

// Camera controls the viewport into an unbounded simulation plane. World
// units pass through the system scale before zoom, so on-screen sizes stay
// commensurate with body radii.
type Camera struct {
	// Center is the camera position in world coordinates.
	Center r2.Vec

	// Zoom level (1.0 = 1:1 after system scale).
	Zoom float64

	// Scale is the fixed world-to-screen system scale.
	Scale float64

	// Viewport dimensions (screen size).
	ViewportW, ViewportH float64

	// Zoom constraints.
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the origin with 1:1 zoom.
func New(viewportW, viewportH, scale, minZoom, maxZoom float64) *Camera {
	return &Camera{
		Zoom:      1.0,
		Scale:     scale,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   minZoom,
		MaxZoom:   maxZoom,
	}
}

// factor is the combined world-to-screen multiplier.
func (c *Camera) factor() float64 {
	return c.Scale * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(w r2.Vec) r2.Vec {
	d := r2.Scale(c.factor(), r2.Sub(w, c.Center))
	return r2.Vec{X: c.ViewportW/2 + d.X, Y: c.ViewportH/2 + d.Y}
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	d := r2.Vec{X: s.X - c.ViewportW/2, Y: s.Y - c.ViewportH/2}
	return r2.Add(c.Center, r2.Scale(1/c.factor(), d))
}

// ScreenRadius converts a world-space radius to pixels.
func (c *Camera) ScreenRadius(r float64) float64 {
	return r * c.factor()
}

// IsVisible returns true if a circle at w with the given world-space radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(w r2.Vec, radius float64) bool {
	d := r2.Sub(w, c.Center)
	halfW := c.ViewportW/(2*c.factor()) + radius
	halfH := c.ViewportH/(2*c.factor()) + radius
	return absf(d.X) <= halfW && absf(d.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center = r2.Add(c.Center, r2.Scale(1/c.factor(), r2.Vec{X: dx, Y: dy}))
}

// LookAt centers the camera on a world-space point.
func (c *Camera) LookAt(w r2.Vec) {
	c.Center = w
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the origin and default zoom.
func (c *Camera) Reset() {
	c.Center = r2.Vec{}
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible
// area as (minX, minY, maxX, maxY).
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.factor())
	halfH := c.ViewportH / (2 * c.factor())

	minX = c.Center.X - halfW
	maxX = c.Center.X + halfW
	minY = c.Center.Y - halfH
	maxY = c.Center.Y + halfH
	return
}

// absf returns the absolute value of a float64.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
