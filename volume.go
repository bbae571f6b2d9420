package isogrid

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Raw volume files start with a 16 byte header: the magic "ISOV" followed by
// the uint32 dimensions nx, ny, nz. Then nx*ny*nz float32 samples follow with
// x varying fastest. Everything is little endian.
const rawMagic = "ISOV"

// maxRawSamples bounds the allocation made from an untrusted header.
const maxRawSamples = 1 << 30

// ErrRawMagic is returned by ReadRawVolume when the header magic is missing.
var ErrRawMagic = errors.New("not a raw volume: bad magic")

type rawHeader struct {
	Magic [4]byte
	Dims  [3]uint32
}

// WriteRawVolume writes g to w in raw volume format. Samples are stored as float32.
func WriteRawVolume(w io.Writer, g *Grid3) error {
	bw := bufio.NewWriter(w)
	header := rawHeader{Dims: [3]uint32{uint32(g.Dims[0]), uint32(g.Dims[1]), uint32(g.Dims[2])}}
	copy(header.Magic[:], rawMagic)
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return err
	}
	var buf [4]byte
	for _, v := range g.Data {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadRawVolume reads a volume written by WriteRawVolume.
func ReadRawVolume(r io.Reader) (*Grid3, error) {
	var header rawHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading raw volume header")
		}
		return nil, fmt.Errorf("raw volume header read failed: %w", err)
	}
	if string(header.Magic[:]) != rawMagic {
		return nil, ErrRawMagic
	}
	dims := V3i{int(header.Dims[0]), int(header.Dims[1]), int(header.Dims[2])}
	if dims[0] <= 0 || dims[1] <= 0 || dims[2] <= 0 {
		return nil, fmt.Errorf("raw volume dims %v: %w", dims, ErrDims)
	}
	n := uint64(header.Dims[0]) * uint64(header.Dims[1]) * uint64(header.Dims[2])
	if n > maxRawSamples {
		return nil, fmt.Errorf("raw volume of %d samples exceeds limit of %d", n, maxRawSamples)
	}
	samples := make([]float32, n)
	if err := binary.Read(bufio.NewReader(r), binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("reading %d raw volume samples: %w", n, err)
	}
	data := make([]float64, n)
	for i, v := range samples {
		data[i] = float64(v)
	}
	return NewGrid3FromData(dims, data)
}
