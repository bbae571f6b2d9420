package isogrid

import (
	"github.com/soypat/isogrid/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a 4x4 affine/projective transform whose zero value is the
// identity. Volumes and meshes use it as their local-to-world transform.
type Transform = d3.Transform

// NewTransform returns a Transform populated with 16 values in row-major order.
func NewTransform(rowMajor []float64) Transform {
	return d3.NewTransform(rowMajor)
}

// BoxTransform returns the transform mapping the unit cube [0,1]^3 onto box.
func BoxTransform(box r3.Box) Transform {
	return d3.ComposeTransform(box.Min, d3.Box(box).Size(), r3.Rotation{})
}
