package isogrid

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/soypat/isogrid/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// 3D signed distance functions used as synthetic volume sources.

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}

// sampleMargin enlarges the sampled region so the surface does not
// coincide with the volume boundary.
const sampleMargin = 1.1

// SampleSDF3 evaluates s on a regular lattice of dims points spanning the
// bounds of s enlarged about its center. The returned volume's Transform maps
// normalized grid space [0,1]^3 back onto the sampled world box, so extracting
// the 0 isosurface and applying the transform recovers the SDF3 surface.
func SampleSDF3(s SDF3, dims V3i) (*Grid3, error) {
	if dims[0] < 2 || dims[1] < 2 || dims[2] < 2 {
		return nil, fmt.Errorf("need at least 2 samples per axis to sample SDF3, got %v: %w", dims, ErrDims)
	}
	bb := d3.Box(s.Bounds()).ScaleAboutCenter(sampleMargin)
	size := bb.Size()
	step := d3.DivElem(size, dims.SubScalar(1).ToR3())
	g := NewGrid3(dims)
	g.Transform = BoxTransform(r3.Box(bb))
	i := 0
	for z := 0; z < dims[2]; z++ {
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				p := r3.Vec{
					X: bb.Min.X + float64(x)*step.X,
					Y: bb.Min.Y + float64(y)*step.Y,
					Z: bb.Min.Z + float64(z)*step.Z,
				}
				g.Data[i] = s.Evaluate(p)
				i++
			}
		}
	}
	return g, nil
}

// sphere is a sphere.
type sphere struct {
	radius float64
	bb     r3.Box
}

// Sphere return an SDF3 for a sphere centered at the origin.
func Sphere(radius float64) (SDF3, error) {
	if radius <= 0 {
		return nil, errors.New("sphere radius <= 0")
	}
	d := d3.Elem(radius)
	return &sphere{
		radius: radius,
		bb:     r3.Box{Min: r3.Scale(-1, d), Max: d},
	}, nil
}

// Evaluate returns the minimum distance to a sphere.
func (s *sphere) Evaluate(p r3.Vec) float64 {
	return r3.Norm(p) - s.radius
}

// Bounds returns the bounding box for a sphere.
func (s *sphere) Bounds() r3.Box {
	return s.bb
}

// box is a 3d box.
type box struct {
	size  r3.Vec
	round float64
	bb    r3.Box
}

// Box return an SDF3 for a 3d box (rounded corners with round > 0).
func Box(size r3.Vec, round float64) (SDF3, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, errors.New("box size <= 0")
	}
	if round < 0 {
		return nil, errors.New("box round < 0")
	}
	size = r3.Scale(0.5, size)
	return &box{
		size:  r3.Sub(size, d3.Elem(round)),
		round: round,
		bb:    r3.Box{Min: r3.Scale(-1, size), Max: size},
	}, nil
}

// Evaluate returns the minimum distance to a 3d box.
func (s *box) Evaluate(p r3.Vec) float64 {
	d := r3.Sub(d3.AbsElem(p), s.size)
	outside := r3.Norm(d3.MaxElem(d, r3.Vec{}))
	inside := math.Min(d3.Max(d), 0)
	return outside + inside - s.round
}

// Bounds returns the bounding box for a 3d box.
func (s *box) Bounds() r3.Box {
	return s.bb
}

// torus lies in the XY plane.
type torus struct {
	rGreater, rRing float64
	bb              r3.Box
}

// Torus returns an SDF3 for a torus in the XY plane. greaterRadius is the
// distance from the center to the outer edge.
func Torus(greaterRadius, ringRadius float64) (SDF3, error) {
	if ringRadius <= 0 || greaterRadius <= 2*ringRadius {
		return nil, errors.New("torus requires 0 < 2*ringRadius < greaterRadius")
	}
	d := r3.Vec{X: greaterRadius, Y: greaterRadius, Z: ringRadius}
	return &torus{
		rGreater: greaterRadius,
		rRing:    ringRadius,
		bb:       r3.Box{Min: r3.Scale(-1, d), Max: d},
	}, nil
}

// Evaluate returns the minimum distance to a torus.
func (t *torus) Evaluate(p r3.Vec) float64 {
	q := math.Hypot(p.X, p.Y) - (t.rGreater - t.rRing)
	return math.Hypot(q, p.Z) - t.rRing
}

// Bounds returns the bounding box for a torus.
func (t *torus) Bounds() r3.Box {
	return t.bb
}

// gyroid is a triply periodic surface clipped to a cube.
type gyroid struct {
	k  float64
	bb r3.Box
}

// Gyroid returns an approximate SDF3 of a gyroid surface with the given
// period, bounded by a cube of the given side.
func Gyroid(period, side float64) (SDF3, error) {
	if period <= 0 || side <= 0 {
		return nil, errors.New("gyroid period and side must be positive")
	}
	d := d3.Elem(side / 2)
	return &gyroid{
		k:  2 * math.Pi / period,
		bb: r3.Box{Min: r3.Scale(-1, d), Max: d},
	}, nil
}

// Evaluate returns the gyroid implicit function scaled to approximate distance.
func (g *gyroid) Evaluate(p r3.Vec) float64 {
	x, y, z := g.k*p.X, g.k*p.Y, g.k*p.Z
	return (math.Sin(x)*math.Cos(y) + math.Sin(y)*math.Cos(z) + math.Sin(z)*math.Cos(x)) / g.k
}

// Bounds returns the bounding cube of the gyroid.
func (g *gyroid) Bounds() r3.Box {
	return g.bb
}

// union3 is a union of SDF3s.
type union3 struct {
	sdf []SDF3
	bb  r3.Box
}

// Union3D returns the union of multiple SDF3 objects.
// Union3D will panic if arguments list is empty or if
// an argument SDF3 is nil.
func Union3D(sdf ...SDF3) SDF3 {
	if len(sdf) == 0 {
		panic("union requires at least 1 sdf")
	}
	for i, x := range sdf {
		if x == nil {
			panic("nil sdf argument (" + strconv.Itoa(i) + ") to Union3D")
		}
	}
	bb := d3.Box(sdf[0].Bounds())
	for _, x := range sdf[1:] {
		bb = bb.Extend(d3.Box(x.Bounds()))
	}
	return &union3{sdf: sdf, bb: r3.Box(bb)}
}

// Evaluate returns the minimum distance to an SDF3 union.
func (s *union3) Evaluate(p r3.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = math.Min(d, x.Evaluate(p))
	}
	return d
}

// Bounds returns the bounding box of an SDF3 union.
func (s *union3) Bounds() r3.Box {
	return s.bb
}

// translate3 is an SDF3 moved by an offset.
type translate3 struct {
	sdf SDF3
	off r3.Vec
	bb  r3.Box
}

// Translate3D returns s translated by off.
func Translate3D(s SDF3, off r3.Vec) SDF3 {
	bb := s.Bounds()
	return &translate3{
		sdf: s,
		off: off,
		bb:  r3.Box{Min: r3.Add(bb.Min, off), Max: r3.Add(bb.Max, off)},
	}
}

// Evaluate returns the distance to the translated SDF3.
func (s *translate3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(r3.Sub(p, s.off))
}

// Bounds returns the translated bounding box.
func (s *translate3) Bounds() r3.Box {
	return s.bb
}

// NamedShape returns a unit-scale SDF3 by name, used by command line tools
// to build synthetic volumes: "sphere", "box", "torus", "gyroid" or "spheres"
// (two overlapping spheres).
func NamedShape(name string) (SDF3, error) {
	switch name {
	case "sphere":
		return Sphere(1)
	case "box":
		return Box(r3.Vec{X: 2, Y: 1.5, Z: 1}, 0.2)
	case "torus":
		return Torus(1, 0.3)
	case "gyroid":
		return Gyroid(1, 2)
	case "spheres":
		a, _ := Sphere(0.7)
		b, _ := Sphere(0.5)
		return Union3D(Translate3D(a, r3.Vec{X: -0.4}), Translate3D(b, r3.Vec{X: 0.6})), nil
	}
	return nil, fmt.Errorf("unknown shape %q", name)
}
