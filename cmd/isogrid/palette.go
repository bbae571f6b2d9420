package main

import (
	"fmt"
	"strings"

	"github.com/soypat/isogrid/colormap"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"
)

type paletteConfig struct {
	Colors int     `koanf:"colors"`
	Width  float64 `koanf:"width"`
	Height float64 `koanf:"height"`
}

func (a *app) paletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette NAME OUT",
		Short: "Draw a named palette as a color strip",
		Long: "Draw a named palette as a color strip. The output format follows the file\n" +
			"extension (png, svg, pdf...). Palettes: " + strings.Join(colormap.Names(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg paletteConfig
			if err := a.section(cmd, "palette", &cfg); err != nil {
				return err
			}
			if cfg.Colors < 2 {
				return fmt.Errorf("need at least 2 colors, got %d", cfg.Colors)
			}
			m, err := colormap.Lookup(args[0])
			if err != nil {
				return err
			}
			p := colormap.HeatMap(colormap.Strip(cfg.Colors), m, cfg.Colors)
			p.Title.Text = args[0]
			p.HideAxes()
			if err := p.Save(vg.Length(cfg.Width)*vg.Inch, vg.Length(cfg.Height)*vg.Inch, args[1]); err != nil {
				return err
			}
			a.log.WithField("palette", args[0]).WithField("output", args[1]).Info("wrote palette")
			return nil
		},
	}
	paletteFlags(cmd.Flags())
	return cmd
}

func paletteFlags(f *pflag.FlagSet) {
	f.Int("colors", 256, "number of colors sampled from the palette")
	f.Float64("width", 6, "output width in inches")
	f.Float64("height", 1.5, "output height in inches")
}
