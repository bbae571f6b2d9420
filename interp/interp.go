// Package interp implements the small fixed-stencil interpolation kernels
// used to reconstruct a continuous field from grid samples.
//
// Scalar kernels are generic over float32 and float64. Kernels suffixed with
// Vec operate component-wise on vector types such as r2.Vec and r3.Vec.
package interp

import "golang.org/x/exp/constraints"

// Linear interpolates between a (x=0) and b (x=1). It returns a for x <= 0
// and b for x >= 1 so rounding error in x never overshoots the endpoints.
func Linear[T constraints.Float](a, b, x T) T {
	if x <= 0 {
		return a
	}
	if x >= 1 {
		return b
	}
	return a*(1-x) + b*x
}

// Bilinear interpolates a unit square. v holds the corner values in the order
//  2------3
//  |      |
//  |      |
//  0------1
// that is bottom-left, bottom-right, top-left, top-right.
func Bilinear[T constraints.Float](v [4]T, x, y T) T {
	return Linear(Linear(v[0], v[1], x), Linear(v[2], v[3], x), y)
}

// Quadratic evaluates the Lagrange polynomial through a, b and c sampled at
// 0, 0.5 and 1 of the parameter x, that is at grid positions 0, 1 and 2 with
// x spanning two grid cells:
//  a-------b-------c
//  0      0.5      1
func Quadratic[T constraints.Float](a, b, c, x T) T {
	return (1-x)*(1-2*x)*a + 4*x*(1-x)*b + x*(2*x-1)*c
}

// BiQuadratic interpolates a 3x3 stencil given row-major with rows at y=0,1,2:
//  6---7---8
//  |   |   |
//  3---4---5
//  |   |   |
//  0---1---2
// Quadratic is applied along x for each row, then along y across the rows.
func BiQuadratic[T constraints.Float](v [9]T, x, y T) T {
	r0 := Quadratic(v[0], v[1], v[2], x)
	r1 := Quadratic(v[3], v[4], v[5], x)
	r2 := Quadratic(v[6], v[7], v[8], x)
	return Quadratic(r0, r1, r2, y)
}

// Barycentric interpolates a unit square split along the diagonal from B to G
// into two triangles. v holds the values at A(0,0), B(1,0), G(0,1) and A2(1,1):
//  G---------A2
//  |'-.      |
//  |   '-.   |
//  |      '-.|
//  A---------B
// Points with x+y < 1 are weighted within ABG, the rest within A2BG. The
// result is continuous across the diagonal but creased along it.
func Barycentric[T constraints.Float](v [4]T, x, y T) T {
	alpha, beta, gamma := BarycentricWeights(x, y)
	a := v[0]
	if x+y >= 1 {
		a = v[3]
	}
	return alpha*a + beta*v[1] + gamma*v[2]
}

// BarycentricWeights returns the weights Barycentric applies to the A (or A2),
// B and G corners. The weights always sum to 1.
func BarycentricWeights[T constraints.Float](x, y T) (alpha, beta, gamma T) {
	if x+y < 1 {
		return 1 - x - y, x, y
	}
	return x + y - 1, 1 - y, 1 - x
}
