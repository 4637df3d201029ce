package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func newTestCamera() *Camera {
	return New(1500, 900, 0.01, 0.05, 20.0)
}

func TestNew(t *testing.T) {
	cam := newTestCamera()

	if cam.Center != (r2.Vec{}) {
		t.Errorf("expected camera at origin, got %v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := newTestCamera()
	cam.LookAt(r2.Vec{X: 5000, Y: -3000})

	// Camera center should map to screen center
	s := cam.WorldToScreen(r2.Vec{X: 5000, Y: -3000})
	if math.Abs(s.X-750) > 0.01 || math.Abs(s.Y-450) > 0.01 {
		t.Errorf("expected screen center (750, 450), got %v", s)
	}
}

func TestWorldToScreenScale(t *testing.T) {
	cam := newTestCamera()

	// 1000 world units right of center is 1000*scale*zoom = 10 pixels.
	s := cam.WorldToScreen(r2.Vec{X: 1000})
	if math.Abs(s.X-760) > 0.01 {
		t.Errorf("expected x=760, got %f", s.X)
	}

	cam.SetZoom(2)
	s = cam.WorldToScreen(r2.Vec{X: 1000})
	if math.Abs(s.X-770) > 0.01 {
		t.Errorf("expected x=770 at 2x zoom, got %f", s.X)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.LookAt(r2.Vec{X: 12000, Y: 7000})
	cam.SetZoom(1.5)

	// Test roundtrip at various positions
	testCases := []r2.Vec{
		{X: 750, Y: 450},  // center
		{X: 100, Y: 100},  // top-left
		{X: 1400, Y: 800}, // near bottom-right
	}

	for _, tc := range testCases {
		w := cam.ScreenToWorld(tc)
		s := cam.WorldToScreen(w)
		if math.Abs(s.X-tc.X) > 0.01 || math.Abs(s.Y-tc.Y) > 0.01 {
			t.Errorf("roundtrip failed: %v -> %v -> %v", tc, w, s)
		}
	}
}

func TestScreenRadius(t *testing.T) {
	cam := newTestCamera()
	if r := cam.ScreenRadius(800); math.Abs(r-8) > 1e-9 {
		t.Errorf("expected radius 8, got %f", r)
	}
	cam.SetZoom(0.5)
	if r := cam.ScreenRadius(800); math.Abs(r-4) > 1e-9 {
		t.Errorf("expected radius 4 at 0.5x zoom, got %f", r)
	}
}

func TestPan(t *testing.T) {
	cam := newTestCamera()

	// Panning 100 pixels moves the center by 100/(scale*zoom) world units.
	cam.Pan(100, -50)
	if math.Abs(cam.Center.X-10000) > 1e-6 || math.Abs(cam.Center.Y+5000) > 1e-6 {
		t.Errorf("expected center (10000, -5000), got %v", cam.Center)
	}

	// At higher zoom the same pixel pan covers less world distance.
	cam.Reset()
	cam.SetZoom(2)
	cam.Pan(100, 0)
	if math.Abs(cam.Center.X-5000) > 1e-6 {
		t.Errorf("expected center x=5000 at 2x zoom, got %f", cam.Center.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := newTestCamera()

	cam.SetZoom(100)
	if cam.Zoom != 20.0 {
		t.Errorf("expected zoom clamped to 20, got %f", cam.Zoom)
	}

	cam.SetZoom(0.001)
	if cam.Zoom != 0.05 {
		t.Errorf("expected zoom clamped to 0.05, got %f", cam.Zoom)
	}
}

func TestZoomBy(t *testing.T) {
	cam := newTestCamera()

	cam.ZoomBy(0.9)
	if math.Abs(cam.Zoom-0.9) > 1e-9 {
		t.Errorf("expected zoom 0.9, got %f", cam.Zoom)
	}
	cam.ZoomBy(1.1)
	if math.Abs(cam.Zoom-0.99) > 1e-9 {
		t.Errorf("expected zoom 0.99, got %f", cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	cam.Pan(300, 300)
	cam.SetZoom(3)

	cam.Reset()
	if cam.Center != (r2.Vec{}) || cam.Zoom != 1.0 {
		t.Errorf("reset left camera at %v zoom %f", cam.Center, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := newTestCamera()

	// Visible half extents are viewport/(2*scale*zoom) = 75000 x 45000.
	tests := []struct {
		name   string
		pos    r2.Vec
		radius float64
		want   bool
	}{
		{"center", r2.Vec{}, 10, true},
		{"inside", r2.Vec{X: 70000, Y: 40000}, 10, true},
		{"outside right", r2.Vec{X: 80000, Y: 0}, 10, false},
		{"outside but large", r2.Vec{X: 80000, Y: 0}, 6000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.pos, tt.radius); got != tt.want {
				t.Errorf("IsVisible(%v, %v) = %v, want %v", tt.pos, tt.radius, got, tt.want)
			}
		})
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := newTestCamera()
	cam.LookAt(r2.Vec{X: 1000, Y: 2000})

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if math.Abs(minX-(1000-75000)) > 1e-6 || math.Abs(maxX-(1000+75000)) > 1e-6 {
		t.Errorf("x bounds = (%f, %f)", minX, maxX)
	}
	if math.Abs(minY-(2000-45000)) > 1e-6 || math.Abs(maxY-(2000+45000)) > 1e-6 {
		t.Errorf("y bounds = (%f, %f)", minY, maxY)
	}
}
