package isogrid_test

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/isogrid"
	"github.com/soypat/isogrid/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSampleSDF3(t *testing.T) {
	s, err := isogrid.Sphere(1)
	if err != nil {
		t.Fatal(err)
	}
	dims := isogrid.V3i{5, 6, 7}
	vol, err := isogrid.SampleSDF3(s, dims)
	if err != nil {
		t.Fatal(err)
	}
	if vol.Dims != dims || len(vol.Data) != dims.Prod() {
		t.Fatalf("dims %v with %d samples", vol.Dims, len(vol.Data))
	}
	bounds := d3.Box(s.Bounds()).ScaleAboutCenter(1.1 + 1e-9)
	// Every sample equals the distance at its transformed grid position.
	for z := 0; z < dims[2]; z++ {
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				u := r3.Vec{
					X: float64(x) / float64(dims[0]-1),
					Y: float64(y) / float64(dims[1]-1),
					Z: float64(z) / float64(dims[2]-1),
				}
				p := vol.Transform.Transform(u)
				if !bounds.Contains(p) {
					t.Fatalf("sample (%d,%d,%d) at %v outside sampled box %v", x, y, z, p, bounds)
				}
				want := s.Evaluate(p)
				if got := vol.At(x, y, z); math.Abs(got-want) > 1e-9 {
					t.Fatalf("sample (%d,%d,%d)=%v, want %v", x, y, z, got, want)
				}
			}
		}
	}
	if lo, hi := vol.Range(); lo >= 0 || hi <= 0 {
		t.Errorf("volume does not straddle the surface: [%v,%v]", lo, hi)
	}
	if _, err := isogrid.SampleSDF3(s, isogrid.V3i{1, 2, 2}); !errors.Is(err, isogrid.ErrDims) {
		t.Errorf("got %v, want ErrDims", err)
	}
}

func TestNamedShape(t *testing.T) {
	for _, name := range []string{"sphere", "box", "torus", "gyroid", "spheres"} {
		s, err := isogrid.NamedShape(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		bb := s.Bounds()
		if bb.Min.X >= bb.Max.X || bb.Min.Y >= bb.Max.Y || bb.Min.Z >= bb.Max.Z {
			t.Errorf("%s: empty bounds %v", name, bb)
		}
		center := r3.Scale(0.5, r3.Add(bb.Min, bb.Max))
		if name != "gyroid" && name != "torus" && s.Evaluate(center) >= 0 {
			t.Errorf("%s: center %v not inside", name, center)
		}
	}
	if _, err := isogrid.NamedShape("teapot"); err == nil {
		t.Error("expected error for unknown shape")
	}
}

func TestShapeDistances(t *testing.T) {
	b, _ := isogrid.Box(r3.Vec{X: 2, Y: 2, Z: 2}, 0)
	if d := b.Evaluate(r3.Vec{X: 3}); math.Abs(d-2) > 1e-12 {
		t.Errorf("box distance %v", d)
	}
	if d := b.Evaluate(r3.Vec{}); math.Abs(d+1) > 1e-12 {
		t.Errorf("box inside distance %v", d)
	}
	tor, _ := isogrid.Torus(1, 0.25)
	if d := tor.Evaluate(r3.Vec{X: 0.75}); math.Abs(d+0.25) > 1e-12 {
		t.Errorf("torus ring center distance %v", d)
	}
	if _, err := isogrid.Torus(1, 0.5); err == nil {
		t.Error("expected error for torus with no hole")
	}
	if _, err := isogrid.Sphere(0); err == nil {
		t.Error("expected error for zero radius sphere")
	}
}
