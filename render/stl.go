package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrEmptyMesh is returned when writing an STL file with no triangles.
	ErrEmptyMesh = errors.New("no triangles to write")
	// ErrNormalMismatch is returned by ReadSTL alongside the triangles read when
	// stored normals disagree with the vertex winding.
	ErrNormalMismatch = errors.New("STL normal does not match vertex winding")
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
	stlHeaderText   = "binary STL isosurface"
	// trianglesInBuffer is the number of triangles read from a Renderer at a time.
	trianglesInBuffer = 1 << 10
)

// stlHeader defines the STL file header.
type stlHeader struct {
	Text  [80]uint8
	Count uint32 // Number of triangles
}

func newSTLHeader(count int) stlHeader {
	h := stlHeader{Count: uint32(count)}
	copy(h.Text[:], stlHeaderText)
	return h
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

// WriteSTL writes model to w in binary STL format. Stored normals are
// computed from the float32 vertices so they agree with the vertex winding.
func WriteSTL(w io.Writer, model []Triangle3) error {
	if len(model) == 0 {
		return ErrEmptyMesh
	}
	bw := bufio.NewWriter(w)
	header := newSTLHeader(len(model))
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [stlTriangleSize]byte
	for _, triangle := range model {
		stlFromTriangle(triangle).put(b[:])
		if _, err := bw.Write(b[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CreateSTL creates path and writes all triangles of r to it in binary STL
// format. The file is removed if r has no triangles.
func CreateSTL(path string, r Renderer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// Triangle count is known only once r is drained. Write header last.
	_, err = file.Seek(stlHeaderSize, io.SeekStart)
	if err != nil {
		return err
	}
	n, err := io.CopyBuffer(file, &stlReader{r: r}, make([]byte, stlTriangleSize*trianglesInBuffer))
	if err != nil {
		return err
	}
	if n == 0 {
		file.Close()
		os.Remove(path)
		return ErrEmptyMesh
	}
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	header := newSTLHeader(int(n / stlTriangleSize))
	return binary.Write(file, binary.LittleEndian, &header)
}

// stlReader encodes the triangles of a Renderer as STL triangle records.
type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]Triangle3
	eof bool
}

func (s *stlReader) Read(b []byte) (int, error) {
	ntMax := min(len(b)/stlTriangleSize, len(s.buf))
	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}
	if s.eof {
		return 0, io.EOF
	}
	var (
		err error
		it  int // Number of triangles written to byte buffer
		nt  int // number of triangles read during ReadTriangles
	)
	for it < ntMax && err == nil {
		nt, err = s.r.ReadTriangles(s.buf[:ntMax-it])
		if nt > ntMax-it {
			panic("bug: ReadTriangles read more triangles than available in buffer")
		}
		for _, triangle := range s.buf[:nt] {
			stlFromTriangle(triangle).put(b[it*stlTriangleSize:])
			it++
		}
	}
	if err == io.EOF {
		s.eof = true
		if it > 0 {
			err = nil
		}
	}
	return it * stlTriangleSize, err
}

// ReadSTL reads a binary STL file. If some stored normals disagree with the
// vertex winding the triangles are returned along with ErrNormalMismatch.
func ReadSTL(r io.Reader) (output []Triangle3, readErr error) {
	br := bufio.NewReader(r)
	var header stlHeader
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, fmt.Errorf("STL header read failed: %w", err)
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf            [stlTriangleSize]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, ErrNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	output = make([]Triangle3, 0, header.Count)
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if !errors.Is(err, ErrNormalMismatch) {
				return nil, err
			}
			normMismatches++
		}
		output = append(output, d.toTriangle3())
	}
	if normMismatches > 0 {
		return output, fmt.Errorf("%d triangles: %w", normMismatches, ErrNormalMismatch)
	}
	return output, nil
}

func stlFromTriangle(t Triangle3) stlTriangle {
	d := stlTriangle{
		Vertex1: f32From3(t.V[0]),
		Vertex2: f32From3(t.V[1]),
		Vertex3: f32From3(t.V[2]),
	}
	d.Normal = d.normalFromVertices()
	return d
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

// validate checks for non-finite values and normals pointing away from the
// vertex winding. Zero normals and degenerate triangles are accepted.
func (t stlTriangle) validate() error {
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	calc := t.normalFromVertices()
	if t.Normal == ([3]float32{}) || calc == ([3]float32{}) {
		return nil
	}
	if !equalWithin3F32(calc, t.Normal, normTol) {
		return ErrNormalMismatch
	}
	return nil
}

func f32From3(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

// normalFromVertices returns the unit normal of the triangle or the zero
// vector if it is degenerate.
func (t stlTriangle) normalFromVertices() [3]float32 {
	n := Triangle3{V: [3]r3.Vec{
		r3From3F32(t.Vertex1),
		r3From3F32(t.Vertex2),
		r3From3F32(t.Vertex3),
	}}.Normal()
	return f32From3(n)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func (d stlTriangle) toTriangle3() Triangle3 {
	return Triangle3{V: [3]r3.Vec{
		r3From3F32(d.Vertex1),
		r3From3F32(d.Vertex2),
		r3From3F32(d.Vertex3),
	}}
}
