package isogrid

import (
	"errors"

	"github.com/soypat/isogrid/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrDims is returned when a grid is created with a non-positive dimension
	// or channel count.
	ErrDims = errors.New("grid dimensions and channel count must be positive")
	// ErrDataLength is returned when the length of the data backing a grid
	// does not match the product of its dimensions and channel count.
	ErrDataLength = errors.New("grid data length does not match dimensions")
)

// Clamp x between a and b, assume a <= b
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// ConvertCoordinate maps an integer coordinate of an output grid with
// dimensions outDims to the continuous coordinate of an input grid with
// dimensions inDims, component-wise:
//  in = out * inDims / outDims
// Coordinate (0,0) always maps to (0,0). Other output pixels land on input
// pixel centers only when the scale is an integer ratio.
func ConvertCoordinate(out, inDims, outDims V2i) r2.Vec {
	return d2.DivElem(d2.MulElem(out.ToR2(), inDims.ToR2()), outDims.ToR2())
}
