package render

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soypat/isogrid"
	"github.com/soypat/isogrid/internal/d3"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultColor is the vertex color used when Extractor.Color is the zero value.
var DefaultColor = [4]float32{0.7, 0.7, 0.7, 1}

// cornerOffsets holds the offset of each cell corner. Corner i is at
// offset (x,y,z) where i = x + 2y + 4z.
var cornerOffsets = [8]isogrid.V3i{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// cellTetrahedra splits a cell into 6 tetrahedra around the 2-5 diagonal.
// Neighbouring cells split their shared faces along the same diagonal.
var cellTetrahedra = [6][4]int{
	{0, 1, 2, 5},
	{1, 3, 2, 5},
	{3, 2, 5, 7},
	{0, 2, 4, 5},
	{6, 4, 2, 5},
	{6, 7, 5, 2},
}

// Extractor extracts isosurfaces from volumes with marching tetrahedra.
// Vertices are placed by linear interpolation along grid edges and the
// surface normals point towards increasing values.
type Extractor struct {
	// Iso is the surface level. Samples strictly below Iso are inside.
	Iso float64
	// Color is assigned to every vertex. The zero value uses DefaultColor.
	Color [4]float32
	// Workers is the number of goroutines classifying cells. Values <= 1
	// extract on the calling goroutine. The resulting mesh does not depend
	// on Workers.
	Workers int
	// Logger receives a debug entry per extraction when non-nil.
	Logger logrus.FieldLogger
}

// cellCorner is a grid sample at a cell corner.
type cellCorner struct {
	pos   r3.Vec // normalized grid position
	value float64
	index int // grid sample index
}

// crossing is the point where the surface crosses a grid edge.
type crossing struct {
	edge edgeKey
	pos  r3.Vec
}

// isoTriangle is a counter clockwise triangle of edge crossings.
type isoTriangle [3]crossing

// Extract returns the isosurface of vol at e.Iso as an indexed mesh.
// Mesh positions are normalized to [0,1] per axis and the mesh
// carries vol.Transform unchanged.
func (e *Extractor) Extract(vol *isogrid.Grid3) (*Mesh, error) {
	if err := e.check(vol); err != nil {
		return nil, err
	}
	start := time.Now()
	cells := vol.Dims.SubScalar(1)
	b := NewMeshBuilder(2 * (cells[0]*cells[1] + cells[1]*cells[2] + cells[2]*cells[0]))
	color := e.color()
	workers := e.Workers
	if workers <= 1 {
		workers = 1
		var tris []isoTriangle
		for z := 0; z < cells[2]; z++ {
			tris = e.slab(tris[:0], vol, z, z+1)
			addTriangles(b, tris, color)
		}
	} else if err := e.extractParallel(b, vol, workers, color); err != nil {
		return nil, err
	}
	degenerate := b.Degenerate()
	mesh := b.Finalize(vol.Transform)
	if e.Logger != nil {
		e.Logger.WithFields(logrus.Fields{
			"dims":       vol.Dims,
			"iso":        e.Iso,
			"cells":      cells.Prod(),
			"vertices":   len(mesh.Vertices),
			"triangles":  mesh.NumTriangles(),
			"degenerate": degenerate,
			"workers":    workers,
			"elapsed":    time.Since(start),
		}).Debug("extracted isosurface")
	}
	return mesh, nil
}

// extractParallel classifies z slabs concurrently. A single writer then adds
// the slabs to b in z order so vertex numbering matches a serial run.
func (e *Extractor) extractParallel(b *MeshBuilder, vol *isogrid.Grid3, workers int, color [4]float32) error {
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}
	nz := vol.Dims[2] - 1
	slabSize := max(1, nz/(4*workers))
	slabs := make([][]isoTriangle, (nz+slabSize-1)/slabSize)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range slabs {
		i := i
		z0 := i * slabSize
		z1 := min(z0+slabSize, nz)
		g.Go(func() error {
			slabs[i] = e.slab(nil, vol, z0, z1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range slabs {
		addTriangles(b, slabs[i], color)
		slabs[i] = nil
	}
	return nil
}

// ExtractCell adds the surface inside the cell with origin cell to b.
// Cells with origin at the last sample of any axis do not exist and
// cause a panic.
func (e *Extractor) ExtractCell(b *MeshBuilder, vol *isogrid.Grid3, cell isogrid.V3i) {
	for k := range cell {
		if cell[k] < 0 || cell[k] >= vol.Dims[k]-1 {
			panic(fmt.Sprintf("cell %v out of range for volume dims %v", cell, vol.Dims))
		}
	}
	addTriangles(b, e.cellTriangles(nil, vol, cell), e.color())
}

func (e *Extractor) check(vol *isogrid.Grid3) error {
	switch {
	case vol == nil:
		return errors.New("nil volume")
	case math.IsNaN(e.Iso):
		return errors.New("isovalue is NaN")
	case vol.Dims[0] < 2 || vol.Dims[1] < 2 || vol.Dims[2] < 2:
		return fmt.Errorf("need at least 2 samples per axis, got %v: %w", vol.Dims, isogrid.ErrDims)
	case len(vol.Data) != vol.Dims.Prod():
		return fmt.Errorf("volume dims %v: %w", vol.Dims, isogrid.ErrDataLength)
	}
	return nil
}

func (e *Extractor) color() [4]float32 {
	if e.Color == ([4]float32{}) {
		return DefaultColor
	}
	return e.Color
}

func addTriangles(b *MeshBuilder, tris []isoTriangle, color [4]float32) {
	for _, tri := range tris {
		var idx [3]uint32
		for k, c := range tri {
			idx[k] = b.AddVertex(c.edge[0], c.edge[1], c.pos, color)
		}
		b.AddTriangle(idx[0], idx[1], idx[2])
	}
}

// slab appends the triangles of all cells with z in [z0,z1) to dst,
// visiting cells with x varying fastest.
func (e *Extractor) slab(dst []isoTriangle, vol *isogrid.Grid3, z0, z1 int) []isoTriangle {
	for z := z0; z < z1; z++ {
		for y := 0; y < vol.Dims[1]-1; y++ {
			for x := 0; x < vol.Dims[0]-1; x++ {
				dst = e.cellTriangles(dst, vol, isogrid.V3i{x, y, z})
			}
		}
	}
	return dst
}

func (e *Extractor) cellTriangles(dst []isoTriangle, vol *isogrid.Grid3, cell isogrid.V3i) []isoTriangle {
	var corners [8]cellCorner
	scale := vol.Dims.SubScalar(1).ToR3()
	var below int
	for i, off := range cornerOffsets {
		p := cell.Add(off)
		corners[i] = cellCorner{
			pos:   d3.DivElem(p.ToR3(), scale),
			value: vol.At(p[0], p[1], p[2]),
			index: vol.Index(p[0], p[1], p[2]),
		}
		if corners[i].value < e.Iso {
			below++
		}
	}
	if below == 0 || below == 8 {
		return dst
	}
	for _, tet := range cellTetrahedra {
		dst = e.tetraTriangles(dst, [4]cellCorner{
			corners[tet[0]], corners[tet[1]], corners[tet[2]], corners[tet[3]],
		})
	}
	return dst
}

// tetraCode returns the case of a tetrahedron: bit i is set when
// corner i is below iso.
func tetraCode(tet [4]cellCorner, iso float64) uint {
	var code uint
	for i, c := range tet {
		if c.value < iso {
			code |= 1 << i
		}
	}
	return code
}

// tetraTriangles appends the 0, 1 or 2 triangles where the surface crosses tet.
func (e *Extractor) tetraTriangles(dst []isoTriangle, tet [4]cellCorner) []isoTriangle {
	code := tetraCode(tet, e.Iso)
	switch bits.OnesCount(code) {
	case 1, 3:
		// One corner is separated from the other three.
		lone := code
		if bits.OnesCount(code) == 3 {
			lone = ^code & 0xf
		}
		s := bits.TrailingZeros(lone)
		tri := isoTriangle{}
		k := 0
		for i := range tet {
			if i != s {
				tri[k] = e.cross(tet[s], tet[i])
				k++
			}
		}
		return append(dst, orient(tri, tet, code))
	case 2:
		// Corners a,b below and c,d above. The surface is the quad through
		// the crossings on edges ac, ad, bd, bc, split along ac-bd.
		var lo, hi [2]int
		nl, nh := 0, 0
		for i := range tet {
			if code&(1<<i) != 0 {
				lo[nl] = i
				nl++
			} else {
				hi[nh] = i
				nh++
			}
		}
		ac := e.cross(tet[lo[0]], tet[hi[0]])
		ad := e.cross(tet[lo[0]], tet[hi[1]])
		bd := e.cross(tet[lo[1]], tet[hi[1]])
		bc := e.cross(tet[lo[1]], tet[hi[0]])
		return append(dst,
			orient(isoTriangle{ac, ad, bd}, tet, code),
			orient(isoTriangle{ac, bd, bc}, tet, code),
		)
	}
	// Cases 0 and 15: the tetrahedron is entirely on one side.
	return dst
}

// cross returns the surface crossing on the edge between a and b,
// where exactly one of them is below iso. Equal or NaN endpoint values
// place the crossing on the corner below.
func (e *Extractor) cross(a, b cellCorner) crossing {
	lo, hi := a, b
	if !(lo.value < e.Iso) {
		lo, hi = b, a
	}
	var t float64
	if d := hi.value - lo.value; d > 0 {
		t = (e.Iso - lo.value) / d
	}
	return crossing{
		edge: makeEdgeKey(lo.index, hi.index),
		pos:  d3.Lerp(lo.pos, hi.pos, t),
	}
}

// orient winds tri so its normal points from the corners below iso towards
// the corners above. This is exact for the linear field over the tetrahedron.
func orient(tri isoTriangle, tet [4]cellCorner, code uint) isoTriangle {
	var loC, hiC r3.Vec
	for i, c := range tet {
		if code&(1<<i) != 0 {
			loC = r3.Add(loC, c.pos)
		} else {
			hiC = r3.Add(hiC, c.pos)
		}
	}
	nlo := float64(bits.OnesCount(code))
	dir := r3.Sub(r3.Scale(1/(4-nlo), hiC), r3.Scale(1/nlo, loC))
	n := d3.TriangleNormal(tri[0].pos, tri[1].pos, tri[2].pos)
	if r3.Dot(n, dir) < 0 {
		tri[1], tri[2] = tri[2], tri[1]
	}
	return tri
}
