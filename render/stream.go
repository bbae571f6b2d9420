package render

import (
	"io"

	"github.com/soypat/isogrid"
	"gonum.org/v1/gonum/spatial/r3"
)

// cellRenderer streams the isosurface cell by cell. Triangles that do not
// fit in the caller's buffer wait in unwritten for the next call.
type cellRenderer struct {
	e         Extractor
	vol       *isogrid.Grid3
	cells     isogrid.V3i
	next      int // linear index of the next cell to process.
	scratch   []isoTriangle
	unwritten triangle3Buffer
}

// Renderer returns a Renderer streaming the world space isosurface triangles
// of vol without building a shared vertex list. The triangles and their
// order match Mesh.WorldTriangles of Extract. Workers and Logger are ignored.
func (e *Extractor) Renderer(vol *isogrid.Grid3) (Renderer, error) {
	if err := e.check(vol); err != nil {
		return nil, err
	}
	return &cellRenderer{
		e:         *e,
		vol:       vol,
		cells:     vol.Dims.SubScalar(1),
		unwritten: triangle3Buffer{buf: make([]Triangle3, 0, 64)},
	}, nil
}

// ReadTriangles writes isosurface triangles into dst.
// returns number of triangles written and io.EOF once all cells are done.
func (r *cellRenderer) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if r.unwritten.Len() > 0 {
		n += r.unwritten.Read(dst[n:])
		if n == len(dst) {
			return n, nil
		}
	}
	total := r.cells.Prod()
	nx, ny := r.cells[0], r.cells[1]
	for n < len(dst) && r.next < total {
		cell := isogrid.V3i{r.next % nx, (r.next / nx) % ny, r.next / (nx * ny)}
		r.next++
		r.scratch = r.e.cellTriangles(r.scratch[:0], r.vol, cell)
		for _, tri := range r.scratch {
			t := Triangle3{V: [3]r3.Vec{tri[0].pos, tri[1].pos, tri[2].pos}}
			if t.Degenerate() {
				continue
			}
			for j := range t.V {
				t.V[j] = r.vol.Transform.Transform(t.V[j])
			}
			if n < len(dst) {
				dst[n] = t
				n++
			} else {
				r.unwritten.Write([]Triangle3{t})
			}
		}
	}
	if r.next == total && r.unwritten.Len() == 0 {
		err = io.EOF
	}
	return n, err
}
