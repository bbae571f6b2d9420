// Package upsample resamples single channel 2D grids to a new resolution
// using a selectable interpolation kernel.
package upsample

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soypat/isogrid"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrMultiChannel is returned when the input grid has more than one channel.
	ErrMultiChannel = errors.New("upsample only supports single channel grids")
	// ErrUnknownMethod is returned for an interpolation method that does not exist.
	ErrUnknownMethod = errors.New("unknown interpolation method")
)

// rowsPerTask is the number of output rows computed by a single goroutine.
const rowsPerTask = 16

// Upsampler resamples grids. The zero value uses piecewise constant
// interpolation and one worker per CPU.
type Upsampler struct {
	Method Method
	// Workers limits the number of goroutines computing output rows.
	// Zero or negative uses runtime.NumCPU.
	Workers int
	// Logger receives a debug entry per call when non-nil.
	Logger logrus.FieldLogger
}

// Upsample is shorthand for an Upsampler with the given method.
func Upsample(method Method, in *isogrid.Grid2, outDims isogrid.V2i) (*isogrid.Grid2, error) {
	u := Upsampler{Method: method}
	return u.Upsample(in, outDims)
}

// Upsample returns a new grid of outDims where every output pixel is the input
// field reconstructed at isogrid.ConvertCoordinate of that pixel.
// in is only read and may be shared with concurrent callers.
func (u *Upsampler) Upsample(in *isogrid.Grid2, outDims isogrid.V2i) (*isogrid.Grid2, error) {
	switch {
	case in == nil:
		return nil, errors.New("nil input grid")
	case in.Channels != 1:
		return nil, fmt.Errorf("got %d channels: %w", in.Channels, ErrMultiChannel)
	case u.Method < 0 || u.Method >= methodCount:
		return nil, fmt.Errorf("%v: %w", u.Method, ErrUnknownMethod)
	case in.Dims[0] <= 0 || in.Dims[1] <= 0:
		return nil, fmt.Errorf("input dims %v: %w", in.Dims, isogrid.ErrDims)
	case outDims[0] <= 0 || outDims[1] <= 0:
		return nil, fmt.Errorf("output dims %v: %w", outDims, isogrid.ErrDims)
	}
	if len(in.Data) != in.Dims.Prod() {
		return nil, fmt.Errorf("input dims %v: %w", in.Dims, isogrid.ErrDataLength)
	}
	start := time.Now()
	out := isogrid.NewGrid2(outDims, 1)
	workers := u.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < outDims[1]; y0 += rowsPerTask {
		y0 := y0
		y1 := min(y0+rowsPerTask, outDims[1])
		g.Go(func() error {
			u.rows(out, in, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if u.Logger != nil {
		u.Logger.WithFields(logrus.Fields{
			"method":  u.Method.String(),
			"in":      in.Dims,
			"out":     outDims,
			"workers": workers,
			"elapsed": time.Since(start),
		}).Debug("upsampled grid")
	}
	return out, nil
}

// rows fills output rows [y0,y1). Each row is written by one goroutine only.
func (u *Upsampler) rows(out, in *isogrid.Grid2, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < out.Dims[0]; x++ {
			p := isogrid.ConvertCoordinate(isogrid.V2i{x, y}, in.Dims, out.Dims)
			out.Data[x+y*out.Dims[0]] = u.Method.Sample(in, p)
		}
	}
}
