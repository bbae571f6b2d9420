package isogrid_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/soypat/isogrid"
)

func TestGridFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 255})
	img.SetGray(1, 0, color.Gray{Y: 51})
	g := isogrid.GridFromImage(img)
	if g.Channels != 1 || g.Dims != (isogrid.V2i{3, 2}) {
		t.Fatalf("got %d channels dims %v", g.Channels, g.Dims)
	}
	if g.At(2, 1) != 1 || math.Abs(g.At(1, 0)-0.2) > 1e-9 || g.At(0, 0) != 0 {
		t.Errorf("unexpected values %v", g.Data)
	}
}

func TestDecodeGrid2RGB(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{B: 255, A: 255})
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		t.Fatal(err)
	}
	g, format, err := isogrid.DecodeGrid2(&b)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" {
		t.Errorf("format %q", format)
	}
	if g.Channels != 3 {
		t.Fatalf("got %d channels", g.Channels)
	}
	if g.AtChannel(0, 0, 0) != 1 || g.AtChannel(0, 0, 2) != 0 || g.AtChannel(1, 1, 2) != 1 {
		t.Errorf("unexpected values %v", g.Data)
	}
}

func TestGray16RoundTrip(t *testing.T) {
	g := isogrid.NewGrid2(isogrid.V2i{4, 1}, 1)
	copy(g.Data, []float64{-1, 0.25, 0.5, 3})
	back := isogrid.GridFromImage(g.Gray16())
	want := []float64{0, 0.25, 0.5, 1}
	for i, w := range want {
		if math.Abs(back.Data[i]-w) > 1.0/math.MaxUint16 {
			t.Errorf("sample %d: got %v, want %v", i, back.Data[i], w)
		}
	}
}
