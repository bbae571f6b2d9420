// Package colormap maps normalized scalars to colors by piecewise linear
// interpolation over an ordered list of color stops.
package colormap

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/isogrid/interp"
)

// Color is a non-premultiplied RGBA color with components in [0,1].
type Color [4]float32

// RGBA implements color.Color. Components are clamped to [0,1].
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := clamp01(c[3])
	r = uint32(clamp01(c[0])*alpha*0xffff + 0.5)
	g = uint32(clamp01(c[1])*alpha*0xffff + 0.5)
	b = uint32(clamp01(c[2])*alpha*0xffff + 0.5)
	a = uint32(alpha*0xffff + 0.5)
	return r, g, b, a
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		float32(nc.R) / 0xffff,
		float32(nc.G) / 0xffff,
		float32(nc.B) / 0xffff,
		float32(nc.A) / 0xffff,
	}
}

// ScalarToColor samples a color ramp. The zero value has no stops and
// samples to grayscale.
type ScalarToColor struct {
	stops []Color
}

// New returns a ScalarToColor with the given stops.
func New(stops ...Color) *ScalarToColor {
	m := &ScalarToColor{}
	for _, c := range stops {
		m.Add(c)
	}
	return m
}

// Clear removes all color stops.
func (m *ScalarToColor) Clear() { m.stops = m.stops[:0] }

// Add appends a color stop to the end of the ramp.
func (m *ScalarToColor) Add(c Color) { m.stops = append(m.stops, c) }

// Len returns the number of color stops.
func (m *ScalarToColor) Len() int { return len(m.stops) }

// Stops returns a copy of the color stops.
func (m *ScalarToColor) Stops() []Color {
	return append([]Color(nil), m.stops...)
}

// Sample returns the ramp color at t. Values of t outside [0,1] return the
// end stops unchanged and NaN is treated as 0. Every t strictly inside (0,1)
// returns alpha 1, whatever the alpha of the stops, including t that lands
// exactly on an interior stop.
// Without stops Sample returns the opaque gray of intensity t. With a single
// stop it returns that stop.
func (m *ScalarToColor) Sample(t float32) Color {
	if math32.IsNaN(t) {
		t = 0
	}
	n := len(m.stops)
	switch {
	case n == 0:
		v := clamp01(t)
		return Color{v, v, v, 1}
	case n == 1:
		return m.stops[0]
	case t <= 0:
		return m.stops[0]
	case t >= 1:
		return m.stops[n-1]
	}
	span := float32(n - 1)
	left := int(math32.Floor(t * span))
	right := int(math32.Ceil(t * span))
	if left == right {
		// t lands exactly on an interior stop. Alpha is still forced.
		c := m.stops[left]
		c[3] = 1
		return c
	}
	lo := float32(left) / span
	hi := float32(right) / span
	local := (t - lo) / (hi - lo)
	a, b := m.stops[left], m.stops[right]
	return Color{
		interp.Linear(a[0], b[0], local),
		interp.Linear(a[1], b[1], local),
		interp.Linear(a[2], b[2], local),
		1,
	}
}

// Normalize maps v from [lo,hi] to [0,1]. If hi <= lo it returns 0.
func Normalize(v, lo, hi float64) float32 {
	if hi <= lo {
		return 0
	}
	return float32((v - lo) / (hi - lo))
}

func clamp01(x float32) float32 {
	return math32.Max(0, math32.Min(1, x))
}
