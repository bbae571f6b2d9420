package isogrid

import (
	"image"
	"image/color"
	_ "image/gif"  // register gif decoding
	_ "image/jpeg" // register jpeg decoding
	_ "image/png"  // register png decoding
	"io"
	"math"

	_ "golang.org/x/image/bmp"  // register bmp decoding
	_ "golang.org/x/image/tiff" // register tiff decoding
)

// DecodeGrid2 decodes an image in any registered format (png, jpeg, gif,
// tiff, bmp) and returns it as a grid along with the format name.
// See GridFromImage for the channel layout.
func DecodeGrid2(r io.Reader) (*Grid2, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return GridFromImage(img), format, nil
}

// GridFromImage converts img to a grid with values in [0,1]. Grayscale images
// produce a single channel grid. Every other color model produces 3 channels
// holding R, G and B; alpha is dropped.
func GridFromImage(img image.Image) *Grid2 {
	b := img.Bounds()
	channels := 3
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		channels = 1
	}
	g := NewGrid2(V2i{b.Dx(), b.Dy()}, channels)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			if channels == 1 {
				gray := color.Gray16Model.Convert(c).(color.Gray16)
				g.Data[i] = float64(gray.Y) / math.MaxUint16
				i++
				continue
			}
			r, gr, bl, _ := c.RGBA()
			g.Data[i] = float64(r) / math.MaxUint16
			g.Data[i+1] = float64(gr) / math.MaxUint16
			g.Data[i+2] = float64(bl) / math.MaxUint16
			i += 3
		}
	}
	return g
}

// Gray16 returns the first channel of the grid as a 16 bit grayscale image.
// Values are clamped to [0,1].
func (g *Grid2) Gray16() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, g.Dims[0], g.Dims[1]))
	for y := 0; y < g.Dims[1]; y++ {
		for x := 0; x < g.Dims[0]; x++ {
			v := Clamp(g.At(x, y), 0, 1)
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(v * math.MaxUint16))})
		}
	}
	return img
}
