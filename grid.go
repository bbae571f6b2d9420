// Package isogrid holds dense scalar grid types shared by the image upsampler
// and the isosurface extractor, together with grid sources (images, raw
// volumes and signed distance functions).
package isogrid

import (
	"fmt"
	"math"
)

// Grid2 is a dense 2D grid of samples with Channels values per sample, stored
// row-major with x varying fastest. Out of range reads clamp to the edge.
type Grid2 struct {
	Dims     V2i
	Channels int
	Data     []float64
}

// NewGrid2 allocates a zeroed grid. It panics if dims or channels are not positive.
func NewGrid2(dims V2i, channels int) *Grid2 {
	if dims[0] <= 0 || dims[1] <= 0 || channels <= 0 {
		panic(ErrDims)
	}
	return &Grid2{
		Dims:     dims,
		Channels: channels,
		Data:     make([]float64, dims.Prod()*channels),
	}
}

// NewGrid2FromData wraps data in a Grid2 without copying it.
func NewGrid2FromData(dims V2i, channels int, data []float64) (*Grid2, error) {
	if dims[0] <= 0 || dims[1] <= 0 || channels <= 0 {
		return nil, fmt.Errorf("dims %v, %d channels: %w", dims, channels, ErrDims)
	}
	if len(data) != dims.Prod()*channels {
		return nil, fmt.Errorf("got %d values for dims %v with %d channels: %w", len(data), dims, channels, ErrDataLength)
	}
	return &Grid2{Dims: dims, Channels: channels, Data: data}, nil
}

// Index returns the sample index of (x,y) after clamping to the grid. The
// first channel of the sample is at Data[Index(x,y)*Channels].
func (g *Grid2) Index(x, y int) int {
	x = clampi(x, 0, g.Dims[0]-1)
	y = clampi(y, 0, g.Dims[1]-1)
	return x + y*g.Dims[0]
}

// At returns the first channel at (x,y) using clamp-to-edge addressing.
func (g *Grid2) At(x, y int) float64 {
	return g.Data[g.Index(x, y)*g.Channels]
}

// AtChannel returns channel c at (x,y) using clamp-to-edge addressing.
func (g *Grid2) AtChannel(x, y, c int) float64 {
	return g.Data[g.Index(x, y)*g.Channels+c]
}

// Set sets the first channel at (x,y). Set does not clamp.
func (g *Grid2) Set(x, y int, v float64) {
	if uint(x) >= uint(g.Dims[0]) || uint(y) >= uint(g.Dims[1]) {
		panic("Grid2.Set out of range")
	}
	g.Data[(x+y*g.Dims[0])*g.Channels] = v
}

// Range returns the minimum and maximum value over all channels.
func (g *Grid2) Range() (min, max float64) {
	return valueRange(g.Data)
}

// Grid3 is a dense single channel 3D grid stored with x varying fastest,
// then y, then z. Out of range reads clamp to the edge.
type Grid3 struct {
	Dims V3i
	Data []float64
	// Transform maps normalized [0,1]^3 grid space to world space. It is not
	// used by the grid itself and is carried through to extracted meshes.
	Transform Transform
}

// NewGrid3 allocates a zeroed volume. It panics if a dimension is not positive.
func NewGrid3(dims V3i) *Grid3 {
	if dims[0] <= 0 || dims[1] <= 0 || dims[2] <= 0 {
		panic(ErrDims)
	}
	return &Grid3{
		Dims: dims,
		Data: make([]float64, dims.Prod()),
	}
}

// NewGrid3FromData wraps data in a Grid3 without copying it.
func NewGrid3FromData(dims V3i, data []float64) (*Grid3, error) {
	if dims[0] <= 0 || dims[1] <= 0 || dims[2] <= 0 {
		return nil, fmt.Errorf("dims %v: %w", dims, ErrDims)
	}
	if len(data) != dims.Prod() {
		return nil, fmt.Errorf("got %d values for dims %v: %w", len(data), dims, ErrDataLength)
	}
	return &Grid3{Dims: dims, Data: data}, nil
}

// Index returns the linear index of (x,y,z) after clamping to the volume.
// For in-range points it equals x + nx*(y + ny*z).
func (g *Grid3) Index(x, y, z int) int {
	x = clampi(x, 0, g.Dims[0]-1)
	y = clampi(y, 0, g.Dims[1]-1)
	z = clampi(z, 0, g.Dims[2]-1)
	return x + g.Dims[0]*(y+g.Dims[1]*z)
}

// At returns the value at (x,y,z) using clamp-to-edge addressing.
func (g *Grid3) At(x, y, z int) float64 {
	return g.Data[g.Index(x, y, z)]
}

// Set sets the value at (x,y,z). Set does not clamp.
func (g *Grid3) Set(x, y, z int, v float64) {
	if uint(x) >= uint(g.Dims[0]) || uint(y) >= uint(g.Dims[1]) || uint(z) >= uint(g.Dims[2]) {
		panic("Grid3.Set out of range")
	}
	g.Data[x+g.Dims[0]*(y+g.Dims[1]*z)] = v
}

// Range returns the minimum and maximum value of the volume.
func (g *Grid3) Range() (min, max float64) {
	return valueRange(g.Data)
}

func valueRange(data []float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}
