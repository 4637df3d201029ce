package body

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB builds an opaque color, clamping each channel to [0, 255].
func RGB(r, g, b int) color.RGBA {
	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return color.RGBA{R: clamp(r), G: clamp(g), B: clamp(b), A: 255}
}

// BlendColor mixes the two bodies' colors in HSV space. Each channel is
// interpolated linearly with bias as this body's weight, matching the mass
// share used during collision resolution.
func (b *Body) BlendColor(other *Body, bias float64) color.RGBA {
	c1, _ := colorful.MakeColor(b.Color)
	c2, _ := colorful.MakeColor(other.Color)

	h1, s1, v1 := c1.Hsv()
	h2, s2, v2 := c2.Hsv()

	h := h1*bias + h2*(1-bias)
	s := s1*bias + s2*(1-bias)
	v := v1*bias + v2*(1-bias)

	r, g, bb := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bb, A: 255}
}
