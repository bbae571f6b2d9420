package interp_test

import (
	"math"
	"testing"

	"github.com/soypat/isogrid/interp"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func TestLinear(t *testing.T) {
	const a, b = 3.0, -7.0
	for _, x := range []float64{-10, -1, -1e-9, 0} {
		if got := interp.Linear(a, b, x); got != a {
			t.Errorf("Linear(%v,%v,%v)=%v, want %v", a, b, x, got, a)
		}
	}
	for _, x := range []float64{1, 1 + 1e-9, 2, 100} {
		if got := interp.Linear(a, b, x); got != b {
			t.Errorf("Linear(%v,%v,%v)=%v, want %v", a, b, x, got, b)
		}
	}
	if got := interp.Linear(a, b, 0.5); !scalar.EqualWithinAbs(got, (a+b)/2, tol) {
		t.Errorf("Linear at midpoint=%v, want %v", got, (a+b)/2)
	}
	if got := interp.Linear[float32](2, 4, 0.25); got != 2.5 {
		t.Errorf("float32 Linear=%v, want 2.5", got)
	}
}

func TestBilinear(t *testing.T) {
	v := [4]float64{0, 1, 2, 3}
	for _, test := range []struct {
		x, y, want float64
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 2},
		{1, 1, 3},
		{0.5, 0.5, 1.5},
		{0.25, 0, 0.25},
		{0, 0.5, 1},
	} {
		got := interp.Bilinear(v, test.x, test.y)
		if !scalar.EqualWithinAbs(got, test.want, tol) {
			t.Errorf("Bilinear(%v, %v, %v)=%v, want %v", v, test.x, test.y, got, test.want)
		}
	}
}

func TestQuadratic(t *testing.T) {
	const a, b, c = 1.0, 5.0, -2.0
	for _, test := range []struct{ x, want float64 }{
		{0, a}, {0.5, b}, {1, c},
	} {
		got := interp.Quadratic(a, b, c, test.x)
		if !scalar.EqualWithinAbs(got, test.want, tol) {
			t.Errorf("Quadratic at %v=%v, want %v", test.x, got, test.want)
		}
	}
	// A quadratic reproduces any parabola exactly.
	f := func(s float64) float64 { return 3*s*s - 2*s + 1 }
	for x := 0.0; x <= 1; x += 0.05 {
		got := interp.Quadratic(f(0), f(1), f(2), x)
		if want := f(2 * x); !scalar.EqualWithinAbs(got, want, 1e-9) {
			t.Errorf("parabola at %v: got %v, want %v", x, got, want)
		}
	}
}

func TestBiQuadratic(t *testing.T) {
	var v [9]float64
	f := func(x, y float64) float64 { return x*x - 2*x*y + 0.5*y*y + y }
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			v[i+3*j] = f(float64(i), float64(j))
		}
	}
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			got := interp.BiQuadratic(v, float64(i)/2, float64(j)/2)
			if !scalar.EqualWithinAbs(got, v[i+3*j], 1e-9) {
				t.Errorf("node (%d,%d): got %v, want %v", i, j, got, v[i+3*j])
			}
		}
	}
	for _, p := range [][2]float64{{0.1, 0.7}, {0.33, 0.25}, {0.9, 0.9}} {
		got := interp.BiQuadratic(v, p[0], p[1])
		if want := f(2*p[0], 2*p[1]); !scalar.EqualWithinAbs(got, want, 1e-9) {
			t.Errorf("at %v: got %v, want %v", p, got, want)
		}
	}
}

func TestBarycentric(t *testing.T) {
	v := [4]float64{1, 2, 3, 4}
	for _, test := range []struct{ x, y, want float64 }{
		{0, 0, 1},
		{1, 0, 2},
		{0, 1, 3},
		{1, 1, 4},
	} {
		got := interp.Barycentric(v, test.x, test.y)
		if !scalar.EqualWithinAbs(got, test.want, tol) {
			t.Errorf("Barycentric at (%v,%v)=%v, want %v", test.x, test.y, got, test.want)
		}
	}
	// Both triangle formulas must agree on the diagonal x+y=1.
	for x := 0.0; x <= 1; x += 0.125 {
		y := 1 - x
		lower := (1-x-y)*v[0] + x*v[1] + y*v[2]
		upper := (x+y-1)*v[3] + (1-y)*v[1] + (1-x)*v[2]
		got := interp.Barycentric(v, x, y)
		if !scalar.EqualWithinAbs(lower, upper, tol) || !scalar.EqualWithinAbs(got, lower, tol) {
			t.Errorf("discontinuity on diagonal at x=%v: lower=%v upper=%v got=%v", x, lower, upper, got)
		}
	}
	if got := interp.Barycentric(v, 0.5, 0.5); !scalar.EqualWithinAbs(got, 2.5, tol) {
		t.Errorf("diagonal midpoint=%v, want 2.5", got)
	}
}

func TestBarycentricWeightsSum(t *testing.T) {
	for x := 0.0; x <= 1; x += 0.1 {
		for y := 0.0; y <= 1; y += 0.1 {
			a, b, g := interp.BarycentricWeights(x, y)
			if s := a + b + g; math.Abs(s-1) > 1e-12 {
				t.Fatalf("weights at (%v,%v) sum to %v", x, y, s)
			}
			if a < -1e-12 || b < -1e-12 || g < -1e-12 {
				t.Fatalf("negative weight at (%v,%v): %v %v %v", x, y, a, b, g)
			}
		}
	}
}

func TestVectorKernels(t *testing.T) {
	a := r3.Vec{X: 1, Y: 2, Z: 3}
	b := r3.Vec{X: -1, Y: 0, Z: 5}
	if got := interp.LinearVec(a, b, -1); got != a {
		t.Errorf("LinearVec below range=%v, want %v", got, a)
	}
	if got := interp.LinearVec(a, b, 2); got != b {
		t.Errorf("LinearVec above range=%v, want %v", got, b)
	}
	got := interp.LinearVec(a, b, 0.5)
	if want := (r3.Vec{X: 0, Y: 1, Z: 4}); r3.Norm(r3.Sub(got, want)) > tol {
		t.Errorf("LinearVec midpoint=%v, want %v", got, want)
	}

	// Component-wise kernels must agree with the scalar kernels per component.
	var vv [9]r3.Vec
	var vx, vy, vz [9]float64
	for i := range vv {
		vv[i] = r3.Vec{X: float64(i), Y: float64(i * i), Z: math.Sin(float64(i))}
		vx[i], vy[i], vz[i] = vv[i].X, vv[i].Y, vv[i].Z
	}
	const x, y = 0.3, 0.8
	gotQ := interp.BiQuadraticVec(vv, x, y)
	wantQ := r3.Vec{X: interp.BiQuadratic(vx, x, y), Y: interp.BiQuadratic(vy, x, y), Z: interp.BiQuadratic(vz, x, y)}
	if r3.Norm(r3.Sub(gotQ, wantQ)) > 1e-9 {
		t.Errorf("BiQuadraticVec=%v, want %v", gotQ, wantQ)
	}
	v4 := [4]r3.Vec{vv[0], vv[1], vv[2], vv[3]}
	x4 := [4]float64{vx[0], vx[1], vx[2], vx[3]}
	for _, p := range [][2]float64{{0.2, 0.3}, {0.7, 0.9}} {
		gotB := interp.BarycentricVec(v4, p[0], p[1])
		if want := interp.Barycentric(x4, p[0], p[1]); !scalar.EqualWithinAbs(gotB.X, want, tol) {
			t.Errorf("BarycentricVec.X at %v=%v, want %v", p, gotB.X, want)
		}
		gotL := interp.BilinearVec(v4, p[0], p[1])
		if want := interp.Bilinear(x4, p[0], p[1]); !scalar.EqualWithinAbs(gotL.X, want, tol) {
			t.Errorf("BilinearVec.X at %v=%v, want %v", p, gotL.X, want)
		}
	}
}
