// Package render extracts triangle meshes from scalar volumes using marching
// tetrahedra and writes them out as STL files or shaded previews.
package render

import (
	"github.com/soypat/isogrid/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles. ReadTriangles fills t and returns the number
// of triangles written. It returns io.EOF once there is nothing left to read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle with counter clockwise winding.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle. The normal of a degenerate
// triangle is the zero vector.
func (t Triangle3) Normal() r3.Vec {
	n := d3.TriangleNormal(t.V[0], t.V[1], t.V[2])
	n2 := r3.Norm2(n)
	if !(n2 > 0) {
		return r3.Vec{}
	}
	return r3.Scale(1/r3.Norm(n), n)
}

// Degenerate returns true if the triangle has no area.
func (t Triangle3) Degenerate() bool {
	return !(r3.Norm2(d3.TriangleNormal(t.V[0], t.V[1], t.V[2])) > 0)
}

// Centroid returns the mean of the triangle vertices.
func (t Triangle3) Centroid() r3.Vec {
	return r3.Scale(1./3., r3.Add(r3.Add(t.V[0], t.V[1]), t.V[2]))
}
