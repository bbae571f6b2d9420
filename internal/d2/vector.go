package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// R2 element-wise helpers used for continuous grid coordinates.

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func MulElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{
		X: a.X * b.X,
		Y: a.Y * b.Y,
	}
}

func DivElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{
		X: a.X / b.X,
		Y: a.Y / b.Y,
	}
}

// FloorElem returns the floor of each component.
func FloorElem(a r2.Vec) r2.Vec {
	return r2.Vec{
		X: math.Floor(a.X),
		Y: math.Floor(a.Y),
	}
}
