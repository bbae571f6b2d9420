package colormap_test

import (
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/isogrid"
	"github.com/soypat/isogrid/colormap"
	"gonum.org/v1/plot/vg"
)

var (
	red   = colormap.Color{1, 0, 0, 1}
	green = colormap.Color{0, 1, 0, 1}
	blue  = colormap.Color{0, 0, 1, 1}
)

func colorEqual(a, b colormap.Color, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestSampleRGB(t *testing.T) {
	m := colormap.New(red, green, blue)
	for _, test := range []struct {
		t    float32
		want colormap.Color
	}{
		{-1, red},
		{0, red},
		{0.25, colormap.Color{0.5, 0.5, 0, 1}},
		{0.5, green},
		{0.75, colormap.Color{0, 0.5, 0.5, 1}},
		{1, blue},
		{3, blue},
	} {
		got := m.Sample(test.t)
		if !colorEqual(got, test.want, 1e-6) {
			t.Errorf("Sample(%v)=%v, want %v", test.t, got, test.want)
		}
	}
}

func TestSampleEdgeCases(t *testing.T) {
	var empty colormap.ScalarToColor
	if got := empty.Sample(0.3); !colorEqual(got, colormap.Color{0.3, 0.3, 0.3, 1}, 1e-7) {
		t.Errorf("empty ramp Sample(0.3)=%v, want gray", got)
	}
	if got := empty.Sample(2); got != (colormap.Color{1, 1, 1, 1}) {
		t.Errorf("empty ramp Sample(2)=%v, want white", got)
	}

	single := colormap.New(colormap.Color{0.2, 0.4, 0.6, 0.5})
	for _, v := range []float32{-1, 0, 0.5, 1, 2} {
		if got := single.Sample(v); got != (colormap.Color{0.2, 0.4, 0.6, 0.5}) {
			t.Errorf("single stop Sample(%v)=%v", v, got)
		}
	}

	translucent := colormap.New(colormap.Color{0, 0, 0, 0.2}, colormap.Color{1, 1, 1, 0.4})
	if got := translucent.Sample(0.5); got[3] != 1 {
		t.Errorf("interpolated alpha=%v, want 1", got[3])
	}
	if got := translucent.Sample(0); got[3] != 0.2 {
		t.Errorf("end stop alpha=%v, want 0.2", got[3])
	}
}

func TestSampleInteriorStopAlpha(t *testing.T) {
	m := colormap.New(
		colormap.Color{1, 0, 0, 0.3},
		colormap.Color{0, 1, 0, 0.5},
		colormap.Color{0, 0, 1, 0.7},
	)
	if got := m.Sample(0.5); got != (colormap.Color{0, 1, 0, 1}) {
		t.Errorf("Sample(0.5)=%v, want interior stop with alpha 1", got)
	}
	if got := m.Sample(0); got != (colormap.Color{1, 0, 0, 0.3}) {
		t.Errorf("Sample(0)=%v, want first stop unchanged", got)
	}
	if got := m.Sample(1); got != (colormap.Color{0, 0, 1, 0.7}) {
		t.Errorf("Sample(1)=%v, want last stop unchanged", got)
	}
}

func TestSampleNaN(t *testing.T) {
	nan := math32.NaN()
	if got := colormap.New(red, green, blue).Sample(nan); got != red {
		t.Errorf("Sample(NaN)=%v, want first stop", got)
	}
	var empty colormap.ScalarToColor
	if got := empty.Sample(nan); got != (colormap.Color{0, 0, 0, 1}) {
		t.Errorf("empty ramp Sample(NaN)=%v, want black", got)
	}
}

func TestClearAdd(t *testing.T) {
	m := colormap.New(red, green)
	if m.Len() != 2 {
		t.Fatalf("Len=%d, want 2", m.Len())
	}
	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("Len after Clear=%d", m.Len())
	}
	m.Add(blue)
	if got := m.Sample(0.7); got != blue {
		t.Errorf("got %v after re-adding single stop, want %v", got, blue)
	}
	stops := m.Stops()
	stops[0] = red
	if m.Sample(0) != blue {
		t.Error("Stops did not return a copy")
	}
}

func TestSampleContinuous(t *testing.T) {
	m, err := colormap.Lookup("viridis")
	if err != nil {
		t.Fatal(err)
	}
	prev := m.Sample(0)
	const steps = 1000
	for i := 1; i <= steps; i++ {
		c := m.Sample(float32(i) / steps)
		if !colorEqual(c, prev, 0.02) {
			t.Fatalf("jump at step %d: %v -> %v", i, prev, c)
		}
		prev = c
	}
}

func TestLookup(t *testing.T) {
	names := colormap.Names()
	if len(names) == 0 {
		t.Fatal("no named palettes")
	}
	for _, name := range names {
		m, err := colormap.Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		if m.Len() < 2 {
			t.Errorf("palette %q has %d stops", name, m.Len())
		}
		p := m.Palette(16).Colors()
		if len(p) != 16 {
			t.Errorf("palette %q: got %d colors", name, len(p))
		}
	}
	if _, err := colormap.Lookup("does-not-exist"); err == nil {
		t.Error("expected error for unknown palette")
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := colormap.Color{1, 0.5, 0, 1}.RGBA()
	if r != 0xffff || g != 0x8000 || b != 0 || a != 0xffff {
		t.Errorf("got %x %x %x %x", r, g, b, a)
	}
	// Premultiplied output.
	r, _, _, a = colormap.Color{1, 1, 1, 0.5}.RGBA()
	if r != a {
		t.Errorf("premultiplied red %x != alpha %x", r, a)
	}
	back := colormap.FromColor(color.NRGBA{R: 255, G: 0, B: 255, A: 255})
	if back != (colormap.Color{1, 0, 1, 1}) {
		t.Errorf("FromColor=%v", back)
	}
}

func TestImage(t *testing.T) {
	g := isogrid.NewGrid2(isogrid.V2i{3, 2}, 1)
	g.Set(0, 0, -10)
	g.Set(1, 0, 5)
	g.Set(2, 0, 20)
	g.Set(2, 1, 10)
	img := colormap.Image(g, colormap.New(red, green, blue), 0, 10)
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds %v", img.Bounds())
	}
	for _, test := range []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{255, 0, 0, 255}},
		{1, 0, color.NRGBA{0, 255, 0, 255}},
		{2, 0, color.NRGBA{0, 0, 255, 255}},
		{2, 1, color.NRGBA{0, 0, 255, 255}},
		{0, 1, color.NRGBA{255, 0, 0, 255}},
	} {
		if got := img.NRGBAAt(test.x, test.y); got != test.want {
			t.Errorf("pixel (%d,%d)=%v, want %v", test.x, test.y, got, test.want)
		}
	}
}

func TestImageNaN(t *testing.T) {
	g, err := isogrid.NewGrid2FromData(isogrid.V2i{2, 1}, 1, []float64{0, math.NaN()})
	if err != nil {
		t.Fatal(err)
	}
	m, err := colormap.Lookup("viridis")
	if err != nil {
		t.Fatal(err)
	}
	img := colormap.Image(g, m, 0, 1)
	if got, want := img.NRGBAAt(1, 0), img.NRGBAAt(0, 0); got != want {
		t.Errorf("NaN pixel %v, want low end color %v", got, want)
	}
}

func TestHeatMapStrip(t *testing.T) {
	m, err := colormap.Lookup("coolwarm")
	if err != nil {
		t.Fatal(err)
	}
	strip := colormap.Strip(64)
	if lo, hi := strip.Range(); lo != 0 || hi != 1 {
		t.Fatalf("strip range [%v,%v], want [0,1]", lo, hi)
	}
	gxyz := colormap.GridXYZ(strip)
	if c, r := gxyz.Dims(); c != 64 || r != 1 {
		t.Fatalf("GridXYZ dims %d,%d", c, r)
	}
	p := colormap.HeatMap(strip, m, 32)
	p.HideAxes()
	out := filepath.Join(t.TempDir(), "coolwarm.png")
	if err := p.Save(4*vg.Inch, vg.Inch, out); err != nil {
		t.Fatal(err)
	}
}
