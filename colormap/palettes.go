package colormap

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// stopsPerPalette is the number of stops sampled from continuous gonum color maps.
const stopsPerPalette = 9

var named = map[string]func() []Color{
	"gray": func() []Color {
		return []Color{{0, 0, 0, 1}, {1, 1, 1, 1}}
	},
	"viridis": func() []Color {
		return hexStops(0x440154, 0x472d7b, 0x3b528b, 0x2c728e, 0x21918c, 0x28ae80, 0x5ec962, 0xaddc30, 0xfde725)
	},
	"rgb": func() []Color {
		return []Color{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}}
	},
	"heat": func() []Color {
		return fromPalette(palette.Heat(stopsPerPalette, 1))
	},
	"coolwarm": func() []Color {
		return fromColorMap(moreland.SmoothBlueRed())
	},
	"kindlmann": func() []Color {
		return fromColorMap(moreland.Kindlmann())
	},
}

// Lookup returns a new ScalarToColor holding the named palette's stops.
func Lookup(name string) (*ScalarToColor, error) {
	stops, ok := named[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q, available: %v", name, Names())
	}
	return New(stops()...), nil
}

// Names returns the sorted names accepted by Lookup.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palette samples n evenly spaced colors from the ramp for use with gonum/plot.
func (m *ScalarToColor) Palette(n int) palette.Palette {
	if n < 2 {
		panic("colormap: palette needs at least 2 colors")
	}
	colors := make(plotPalette, n)
	for i := range colors {
		colors[i] = m.Sample(float32(i) / float32(n-1))
	}
	return colors
}

type plotPalette []color.Color

func (p plotPalette) Colors() []color.Color { return p }

func hexStops(hex ...uint32) []Color {
	stops := make([]Color, len(hex))
	for i, h := range hex {
		stops[i] = Color{
			float32(h>>16&0xff) / 0xff,
			float32(h>>8&0xff) / 0xff,
			float32(h&0xff) / 0xff,
			1,
		}
	}
	return stops
}

func fromPalette(p palette.Palette) []Color {
	colors := p.Colors()
	stops := make([]Color, len(colors))
	for i, c := range colors {
		stops[i] = FromColor(c)
	}
	return stops
}

func fromColorMap(cm palette.ColorMap) []Color {
	cm.SetMin(0)
	cm.SetMax(1)
	return fromPalette(cm.Palette(stopsPerPalette))
}
