package render

import (
	"math"

	"github.com/soypat/isogrid"
	"github.com/soypat/isogrid/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ isogrid.SDF3     = (*KDMesh)(nil)
	_ kdtree.Interface = kdTriangles{}
)

// KDMesh answers nearest triangle queries over a triangle soup using a k-d
// tree of triangle centroids. It implements isogrid.SDF3 so a mesh can be
// resampled into a volume.
type KDMesh struct {
	tree kdtree.Tree
	bb   r3.Box
}

// NewKDMesh builds a KDMesh from model. model is not modified.
func NewKDMesh(model []Triangle3) (*KDMesh, error) {
	if len(model) == 0 {
		return nil, ErrEmptyMesh
	}
	tris := make(kdTriangles, len(model))
	bb := d3.EmptyBox()
	for i, t := range model {
		tris[i] = kdTriangle{t: t, c: t.Centroid()}
		for _, v := range t.V {
			bb = bb.Include(v)
		}
	}
	tree := kdtree.New(tris, false)
	return &KDMesh{tree: *tree, bb: r3.Box(bb)}, nil
}

// Nearest returns the triangle whose centroid is closest to p.
func (k *KDMesh) Nearest(p r3.Vec) Triangle3 {
	got, _ := k.tree.Nearest(kdTriangle{c: p})
	return got.(kdTriangle).t
}

// Evaluate returns the distance from p to the triangle nearest to p, positive
// on the side the triangle normal points to.
func (k *KDMesh) Evaluate(p r3.Vec) float64 {
	t := k.Nearest(p)
	closest := closestOnTriangle(p, t)
	d := r3.Sub(p, closest)
	dist := r3.Norm(d)
	if r3.Dot(d, d3.TriangleNormal(t.V[0], t.V[1], t.V[2])) < 0 {
		return -dist
	}
	return dist
}

// Bounds returns the bounding box of all triangles.
func (k *KDMesh) Bounds() r3.Box { return k.bb }

// closestOnTriangle returns the point of t closest to p by classifying p
// against the Voronoi regions of the triangle's vertices and edges.
func closestOnTriangle(p r3.Vec, t Triangle3) r3.Vec {
	a, b, c := t.V[0], t.V[1], t.V[2]
	ab, ac, ap := r3.Sub(b, a), r3.Sub(c, a), r3.Sub(p, a)
	s1, s2 := r3.Dot(ab, ap), r3.Dot(ac, ap)
	if s1 <= 0 && s2 <= 0 {
		return a
	}
	bp := r3.Sub(p, b)
	s3, s4 := r3.Dot(ab, bp), r3.Dot(ac, bp)
	if s3 >= 0 && s4 <= s3 {
		return b
	}
	vc := s1*s4 - s3*s2
	if vc <= 0 && s1 >= 0 && s3 <= 0 {
		return r3.Add(a, r3.Scale(s1/(s1-s3), ab))
	}
	cp := r3.Sub(p, c)
	s5, s6 := r3.Dot(ab, cp), r3.Dot(ac, cp)
	if s6 >= 0 && s5 <= s6 {
		return c
	}
	vb := s5*s2 - s1*s6
	if vb <= 0 && s2 >= 0 && s6 <= 0 {
		return r3.Add(a, r3.Scale(s2/(s2-s6), ac))
	}
	va := s3*s6 - s5*s4
	if va <= 0 && s4-s3 >= 0 && s5-s6 >= 0 {
		return r3.Add(b, r3.Scale((s4-s3)/((s4-s3)+(s5-s6)), r3.Sub(c, b)))
	}
	denom := va + vb + vc
	if denom == 0 {
		// Degenerate triangle.
		return a
	}
	v, w := vb/denom, vc/denom
	return r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac)))
}

type kdTriangles []kdTriangle

// kdTriangle is a triangle keyed by its centroid c.
type kdTriangle struct {
	t Triangle3
	c r3.Vec
}

func (k kdTriangles) Index(i int) kdtree.Comparable {
	return k[i]
}

// Len returns the length of the list.
func (k kdTriangles) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdTriangles) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), triangles: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdTriangles) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//  c = a_d - b_d
func (a kdTriangle) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a.c, b.(kdTriangle).c, int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdTriangle) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the centroids.
func (a kdTriangle) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.c, b.(kdTriangle).c))
}

// c = a.dim - b.dim
func kdComp(a, b r3.Vec, dim int) float64 {
	switch dim {
	case 0:
		return a.X - b.X
	case 1:
		return a.Y - b.Y
	case 2:
		return a.Z - b.Z
	}
	return math.NaN()
}

type kdPlane struct {
	dim       int
	triangles kdTriangles
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.triangles[i].c, p.triangles[j].c, p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.triangles[i], p.triangles[j] = p.triangles[j], p.triangles[i]
}
func (p kdPlane) Len() int {
	return len(p.triangles)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.triangles = p.triangles[start:end]
	return p
}
