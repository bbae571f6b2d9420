package upsample

import (
	"fmt"
	"strings"

	"github.com/soypat/isogrid"
	"github.com/soypat/isogrid/internal/d2"
	"github.com/soypat/isogrid/interp"
	"gonum.org/v1/gonum/spatial/r2"
)

// Method selects the interpolation kernel used to reconstruct the input field.
type Method int

const (
	// PiecewiseConstant replicates the input sample at the truncated coordinate.
	PiecewiseConstant Method = iota
	// Bilinear blends the 2x2 neighbourhood.
	Bilinear
	// Biquadratic fits a quadratic through the 3x3 neighbourhood centred on the sample.
	Biquadratic
	// Barycentric splits the 2x2 neighbourhood into two triangles.
	Barycentric
	methodCount
)

var methodNames = [methodCount]string{
	PiecewiseConstant: "piecewiseconstant",
	Bilinear:          "bilinear",
	Biquadratic:       "biquadratic",
	Barycentric:       "barycentric",
}

func (m Method) String() string {
	if m < 0 || m >= methodCount {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod returns the Method whose String matches s, ignoring case.
// "nearest" is accepted as an alias of piecewiseconstant.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "nearest" {
		return PiecewiseConstant, nil
	}
	for m, name := range methodNames {
		if name == s {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
}

// Sample reconstructs the first channel of in at the continuous coordinate p.
// Neighbour reads clamp to the grid edge. Sample panics on an unknown method.
func (m Method) Sample(in *isogrid.Grid2, p r2.Vec) float64 {
	switch m {
	case PiecewiseConstant:
		return in.At(int(p.X), int(p.Y))
	case Bilinear:
		ix, iy, x, y := cellOf(p)
		return interp.Bilinear(quad(in, ix, iy), x, y)
	case Barycentric:
		ix, iy, x, y := cellOf(p)
		return interp.Barycentric(quad(in, ix, iy), x, y)
	case Biquadratic:
		ix, iy, x, y := cellOf(r2.Vec{X: p.X - 0.5, Y: p.Y - 0.5})
		var v [9]float64
		for j := 0; j < 3; j++ {
			for i := 0; i < 3; i++ {
				v[i+3*j] = in.At(ix+i, iy+j)
			}
		}
		return interp.BiQuadratic(v, x/2, y/2)
	}
	panic("upsample: unknown method " + m.String())
}

// cellOf returns the integer origin of the cell holding p and the offset of p
// within that cell.
func cellOf(p r2.Vec) (ix, iy int, x, y float64) {
	f := d2.FloorElem(p)
	return int(f.X), int(f.Y), p.X - f.X, p.Y - f.Y
}

// quad returns the 2x2 neighbourhood with origin (x,y) ordered bottom-left,
// bottom-right, top-left, top-right.
func quad(in *isogrid.Grid2, x, y int) [4]float64 {
	return [4]float64{
		in.At(x, y),
		in.At(x+1, y),
		in.At(x, y+1),
		in.At(x+1, y+1),
	}
}
