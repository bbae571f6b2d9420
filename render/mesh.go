package render

import (
	"io"

	"github.com/soypat/isogrid"
	"github.com/soypat/isogrid/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a mesh vertex.
type Vertex struct {
	Pos r3.Vec
	// Normal is the normalized sum of the face normals of every triangle
	// that uses the vertex. It is the zero vector for isolated vertices.
	Normal r3.Vec
	// Extra is a secondary position, usable as a 3D texture coordinate.
	// The extractor sets it to the normalized grid position.
	Extra r3.Vec
	Color [4]float32
}

// edgeKey identifies a grid edge by its two grid point indices, smallest first.
type edgeKey [2]int

func makeEdgeKey(i, j int) edgeKey {
	if i == j {
		panic("bug: edge with equal endpoints")
	}
	if i > j {
		i, j = j, i
	}
	return edgeKey{i, j}
}

// MeshBuilder accumulates vertices shared between triangles and their normals.
// Vertices are deduplicated by the grid edge they lie on. A MeshBuilder
// must not be used after Finalize.
type MeshBuilder struct {
	vertices   []Vertex
	indices    []uint32
	edges      map[edgeKey]uint32
	degenerate int
	finalized  bool
}

// NewMeshBuilder returns a builder with room for about capacityHint vertices.
func NewMeshBuilder(capacityHint int) *MeshBuilder {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &MeshBuilder{
		vertices: make([]Vertex, 0, capacityHint),
		indices:  make([]uint32, 0, 6*capacityHint),
		edges:    make(map[edgeKey]uint32, capacityHint),
	}
}

// AddVertex returns the index of the vertex lying on the grid edge between
// grid points i and j. The edge is unordered. If the edge has no vertex yet one
// is created at pos with the given color, otherwise pos and color are ignored.
// AddVertex panics if i == j.
func (b *MeshBuilder) AddVertex(i, j int, pos r3.Vec, color [4]float32) uint32 {
	b.mustBuild()
	key := makeEdgeKey(i, j)
	if idx, ok := b.edges[key]; ok {
		return idx
	}
	idx := uint32(len(b.vertices))
	b.vertices = append(b.vertices, Vertex{Pos: pos, Extra: pos, Color: color})
	b.edges[key] = idx
	return idx
}

// AddTriangle adds the triangle with vertex indices v0, v1, v2 in counter
// clockwise order and adds its face normal to each vertex. Zero area triangles
// are not added; AddTriangle reports whether the triangle was added.
// It panics if an index is out of range or repeated.
func (b *MeshBuilder) AddTriangle(v0, v1, v2 uint32) bool {
	b.mustBuild()
	n := uint32(len(b.vertices))
	if v0 >= n || v1 >= n || v2 >= n {
		panic("bug: triangle vertex index out of range")
	}
	if v0 == v1 || v1 == v2 || v0 == v2 {
		panic("bug: triangle with repeated vertex")
	}
	// Face normal is not normalized so larger triangles weigh more.
	fn := d3.TriangleNormal(b.vertices[v0].Pos, b.vertices[v1].Pos, b.vertices[v2].Pos)
	if !(r3.Norm2(fn) > 0) {
		b.degenerate++
		return false
	}
	for _, v := range [3]uint32{v0, v1, v2} {
		b.vertices[v].Normal = r3.Add(b.vertices[v].Normal, fn)
	}
	b.indices = append(b.indices, v0, v1, v2)
	return true
}

// NumVertices returns the number of vertices added so far.
func (b *MeshBuilder) NumVertices() int { return len(b.vertices) }

// NumTriangles returns the number of triangles added so far.
func (b *MeshBuilder) NumTriangles() int { return len(b.indices) / 3 }

// Degenerate returns the number of zero area triangles rejected by AddTriangle.
func (b *MeshBuilder) Degenerate() int { return b.degenerate }

// Finalize normalizes the accumulated vertex normals and returns the mesh.
// The builder is unusable afterwards; calling any mutating method or
// Finalize again panics.
func (b *MeshBuilder) Finalize(t isogrid.Transform) *Mesh {
	b.mustBuild()
	b.finalized = true
	for i := range b.vertices {
		n := b.vertices[i].Normal
		if norm := r3.Norm(n); norm > 0 {
			b.vertices[i].Normal = r3.Scale(1/norm, n)
		}
	}
	m := &Mesh{
		Vertices:  b.vertices,
		Indices:   b.indices,
		Transform: t,
	}
	b.vertices, b.indices, b.edges = nil, nil, nil
	return m
}

func (b *MeshBuilder) mustBuild() {
	if b.finalized {
		panic("bug: MeshBuilder used after Finalize")
	}
}

// Mesh is an indexed triangle mesh. Vertex positions are in normalized grid
// space; Transform maps them to world space.
type Mesh struct {
	Vertices []Vertex
	// Indices holds three vertex indices per triangle.
	Indices   []uint32
	Transform isogrid.Transform
}

// TriangleMesh returns an unindexed mesh of model with an identity transform,
// as read from an STL file. Each triangle gets three vertices of its own
// with the face normal and color c. Degenerate triangles are skipped.
func TriangleMesh(model []Triangle3, c [4]float32) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, 3*len(model)),
		Indices:  make([]uint32, 0, 3*len(model)),
	}
	for _, t := range model {
		if t.Degenerate() {
			continue
		}
		n := t.Normal()
		for _, p := range t.V {
			m.Indices = append(m.Indices, uint32(len(m.Vertices)))
			m.Vertices = append(m.Vertices, Vertex{Pos: p, Normal: n, Extra: p, Color: c})
		}
	}
	return m
}

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int { return len(m.Indices) / 3 }

// Triangle returns the ith triangle in normalized grid space.
func (m *Mesh) Triangle(i int) Triangle3 {
	idx := m.Indices[3*i : 3*i+3]
	return Triangle3{V: [3]r3.Vec{
		m.Vertices[idx[0]].Pos,
		m.Vertices[idx[1]].Pos,
		m.Vertices[idx[2]].Pos,
	}}
}

// Triangles returns all triangles in normalized grid space.
func (m *Mesh) Triangles() []Triangle3 {
	tris := make([]Triangle3, m.NumTriangles())
	for i := range tris {
		tris[i] = m.Triangle(i)
	}
	return tris
}

// WorldTriangles returns all triangles with Transform applied.
func (m *Mesh) WorldTriangles() []Triangle3 {
	tris := m.Triangles()
	for i := range tris {
		for j := range tris[i].V {
			tris[i].V[j] = m.Transform.Transform(tris[i].V[j])
		}
	}
	return tris
}

// Bounds returns the bounding box of the vertices in world space.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	bb := d3.EmptyBox()
	for _, v := range m.Vertices {
		bb = bb.Include(m.Transform.Transform(v.Pos))
	}
	return r3.Box(bb)
}

// Renderer returns a Renderer streaming the world space triangles of the mesh.
func (m *Mesh) Renderer() Renderer {
	return &meshRenderer{m: m}
}

type meshRenderer struct {
	m    *Mesh
	next int
}

func (r *meshRenderer) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	nt := r.m.NumTriangles()
	for n < len(dst) && r.next < nt {
		tri := r.m.Triangle(r.next)
		for j := range tri.V {
			tri.V[j] = r.m.Transform.Transform(tri.V[j])
		}
		dst[n] = tri
		n++
		r.next++
	}
	if r.next == nt {
		err = io.EOF
	}
	return n, err
}
