// Package field implements the gravitational field sampler: a screen-space
// grid of field strengths refreshed on a throttle and log-normalized into
// 8-bit intensities for rendering.
package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Source provides summed field strength at a world-space point.
type Source interface {
	FieldAt(p r2.Vec) float64
}

// View describes the viewport a refresh samples across.
type View struct {
	// Center is the world-space point under the middle of the viewport.
	Center r2.Vec
	// Zoom is the camera zoom factor.
	Zoom float64
	// Scale is the world-to-screen system scale.
	Scale float64
	// Width and Height are the viewport size in pixels.
	Width, Height int
}

// Sampler owns the field grid. Cells are laid out row-major over the
// viewport with CellSize-pixel squares; sample points sit at cell centers.
type Sampler struct {
	cellSize int
	interval float64

	active  bool
	elapsed float64

	cols, rows int
	samples    []float64
	cells      []uint8
	dirty      bool
}

// NewSampler creates an inactive grid with the given cell edge in pixels and
// refresh interval in seconds.
func NewSampler(cellSize int, interval float64) *Sampler {
	return &Sampler{
		cellSize: cellSize,
		interval: interval,
		active:   true,
	}
}

// SetActive toggles sampling. An inactive sampler ignores Update calls and
// keeps its last grid.
func (s *Sampler) SetActive(active bool) { s.active = active }

// Active reports whether the sampler refreshes.
func (s *Sampler) Active() bool { return s.active }

// CellSize returns the cell edge in pixels.
func (s *Sampler) CellSize() int { return s.cellSize }

// Cols returns the grid width in cells after the last refresh.
func (s *Sampler) Cols() int { return s.cols }

// Rows returns the grid height in cells after the last refresh.
func (s *Sampler) Rows() int { return s.rows }

// Intensities returns the normalized grid, row-major, one byte per cell.
// The slice is reused across refreshes.
func (s *Sampler) Intensities() []uint8 { return s.cells }

// Dirty reports whether the grid changed since the last TakeDirty call.
func (s *Sampler) Dirty() bool { return s.dirty }

// TakeDirty clears and returns the dirty flag. The renderer uses it to skip
// texture reuploads.
func (s *Sampler) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// Update accumulates dt and refreshes the grid once the interval has
// elapsed. It reports whether a refresh ran.
func (s *Sampler) Update(dt float64, src Source, view View) bool {
	if !s.active {
		return false
	}
	if s.elapsed < s.interval {
		s.elapsed += dt
		return false
	}
	s.elapsed = 0
	s.Refresh(src, view)
	return true
}

// Refresh samples the field at every cell center and renormalizes,
// regardless of the throttle.
func (s *Sampler) Refresh(src Source, view View) {
	half := s.cellSize / 2
	s.cols = 0
	s.rows = 0
	s.samples = s.samples[:0]

	worldPerPixel := 1 / (view.Scale * view.Zoom)
	halfW := float64(view.Width) / 2
	halfH := float64(view.Height) / 2

	for y := half; y < view.Height+half; y += s.cellSize {
		s.rows++
		cols := 0
		for x := half; x < view.Width+half; x += s.cellSize {
			cols++
			pt := r2.Vec{
				X: (float64(x)-halfW)*worldPerPixel + view.Center.X,
				Y: (float64(y)-halfH)*worldPerPixel + view.Center.Y,
			}
			s.samples = append(s.samples, src.FieldAt(pt))
		}
		s.cols = cols
	}

	if cap(s.cells) < len(s.samples) {
		s.cells = make([]uint8, len(s.samples))
	}
	s.cells = s.cells[:len(s.samples)]
	normalize(s.samples, s.cells)
	s.dirty = true
}

// normalize maps raw field strengths onto [0, 255] with a logarithmic
// transfer: v -> (ln(v) - min) / (max - min). A flat grid blanks to zero
// rather than dividing by a zero range.
func normalize(samples []float64, out []uint8) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, v := range samples {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if len(samples) == 0 || lo == hi {
		for i := range out {
			out[i] = 0
		}
		return
	}

	span := hi - lo
	for i, v := range samples {
		intensity := (math.Log(v) - lo) / span
		switch {
		case intensity <= 0 || math.IsNaN(intensity):
			out[i] = 0
		case intensity >= 1:
			out[i] = 255
		default:
			out[i] = uint8(intensity * 255)
		}
	}
}
