package colormap

import (
	"image"
	"image/color"

	"github.com/soypat/isogrid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// Image colors channel 0 of g by normalizing values from [lo,hi] and
// sampling m. Row y of the grid becomes row y of the image.
func Image(g *isogrid.Grid2, m *ScalarToColor, lo, hi float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Dims[0], g.Dims[1]))
	for y := 0; y < g.Dims[1]; y++ {
		for x := 0; x < g.Dims[0]; x++ {
			c := m.Sample(Normalize(g.At(x, y), lo, hi))
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(clamp01(c[0])*0xff + 0.5),
				G: uint8(clamp01(c[1])*0xff + 0.5),
				B: uint8(clamp01(c[2])*0xff + 0.5),
				A: uint8(clamp01(c[3])*0xff + 0.5),
			})
		}
	}
	return img
}

// GridXYZ adapts channel 0 of g to a gonum/plot grid. Columns map to x and rows
// map to y at unit spacing.
func GridXYZ(g *isogrid.Grid2) plotter.GridXYZ { return gridXYZ{g: g} }

type gridXYZ struct{ g *isogrid.Grid2 }

func (gx gridXYZ) Dims() (c, r int)   { return gx.g.Dims[0], gx.g.Dims[1] }
func (gx gridXYZ) Z(c, r int) float64 { return gx.g.At(c, r) }
func (gx gridXYZ) X(c int) float64    { return float64(c) }
func (gx gridXYZ) Y(r int) float64    { return float64(r) }

// HeatMap returns a plot of g drawn with n colors sampled from m.
func HeatMap(g *isogrid.Grid2, m *ScalarToColor, n int) *plot.Plot {
	p := plot.New()
	h := plotter.NewHeatMap(GridXYZ(g), m.Palette(n))
	p.Add(h)
	return p
}

// Strip returns a 1 row grid sampling [0,1] in n steps, suitable for drawing a
// palette with HeatMap.
func Strip(n int) *isogrid.Grid2 {
	g := isogrid.NewGrid2(isogrid.V2i{n, 1}, 1)
	for i := 0; i < n; i++ {
		g.Set(i, 0, float64(i)/float64(max(n-1, 1)))
	}
	return g
}
