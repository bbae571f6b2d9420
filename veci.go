/*

Integer 2D/3D Vectors

*/

package isogrid

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// V2i is a 2D integer vector. Used for grid dimensions and coordinates.
type V2i [2]int

// V3i is a 3D integer vector. Used for volume dimensions and coordinates.
type V3i [3]int

// Add adds two vectors. Return v = a + b.
func (a V2i) Add(b V2i) V2i {
	return V2i{a[0] + b[0], a[1] + b[1]}
}

// Add adds two vectors. Return v = a + b.
func (a V3i) Add(b V3i) V3i {
	return V3i{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// AddScalar adds a scalar to each component of the vector.
func (a V2i) AddScalar(b int) V2i {
	return V2i{a[0] + b, a[1] + b}
}

// AddScalar adds a scalar to each component of the vector.
func (a V3i) AddScalar(b int) V3i {
	return V3i{a[0] + b, a[1] + b, a[2] + b}
}

// SubScalar subtracts a scalar from each component of the vector.
func (a V3i) SubScalar(b int) V3i {
	return V3i{a[0] - b, a[1] - b, a[2] - b}
}

// Prod returns the product of the components.
func (a V2i) Prod() int { return a[0] * a[1] }

// Prod returns the product of the components.
func (a V3i) Prod() int { return a[0] * a[1] * a[2] }

// Clamp clamps each component of a to the closed range [lo, hi].
func (a V2i) Clamp(lo, hi V2i) V2i {
	return V2i{clampi(a[0], lo[0], hi[0]), clampi(a[1], lo[1], hi[1])}
}

// Clamp clamps each component of a to the closed range [lo, hi].
func (a V3i) Clamp(lo, hi V3i) V3i {
	return V3i{clampi(a[0], lo[0], hi[0]), clampi(a[1], lo[1], hi[1]), clampi(a[2], lo[2], hi[2])}
}

// ToR2 converts V2i (integer) to r2.Vec (float).
func (a V2i) ToR2() r2.Vec {
	return r2.Vec{X: float64(a[0]), Y: float64(a[1])}
}

// ToR3 converts V3i (integer) to r3.Vec (float).
func (a V3i) ToR3() r3.Vec {
	return r3.Vec{X: float64(a[0]), Y: float64(a[1]), Z: float64(a[2])}
}

func clampi(x, a, b int) int {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
