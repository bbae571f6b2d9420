package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
	"github.com/soypat/isogrid"
	"github.com/soypat/isogrid/colormap"
	"github.com/soypat/isogrid/upsample"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type upsampleConfig struct {
	Method    string `koanf:"method"`
	Width     int    `koanf:"width"`
	Height    int    `koanf:"height"`
	Workers   int    `koanf:"workers"`
	Palette   string `koanf:"palette"`
	Reference string `koanf:"reference"`
}

func (a *app) upsampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upsample IN OUT.png",
		Short: "Resample a grayscale image to a new size",
		Long: `Resample a grayscale image (png, jpeg, gif, tiff or bmp) and write it as PNG.
Methods: piecewiseconstant, bilinear, biquadratic, barycentric.
Without --palette the output is 16 bit grayscale.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg upsampleConfig
			if err := a.section(cmd, "upsample", &cfg); err != nil {
				return err
			}
			return a.upsample(cfg, args[0], args[1])
		},
	}
	upsampleFlags(cmd.Flags())
	return cmd
}

func upsampleFlags(f *pflag.FlagSet) {
	f.String("method", upsample.Bilinear.String(), "interpolation method")
	f.Int("width", 512, "output width in pixels")
	f.Int("height", 512, "output height in pixels")
	f.Int("workers", 0, "goroutines computing output rows, 0 uses all CPUs")
	f.String("palette", "", "color the output with a named palette")
	f.String("reference", "", "also write a Lanczos3 resize of the input to this path")
}

func (a *app) upsample(cfg upsampleConfig, inPath, outPath string) error {
	method, err := upsample.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}
	var m *colormap.ScalarToColor
	if cfg.Palette != "" {
		m, err = colormap.Lookup(cfg.Palette)
		if err != nil {
			return err
		}
	}
	fp, err := os.Open(inPath)
	if err != nil {
		return err
	}
	in, format, err := isogrid.DecodeGrid2(fp)
	fp.Close()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}
	log := a.log.WithFields(logrus.Fields{
		"input":  inPath,
		"format": format,
		"dims":   in.Dims,
	})
	u := upsample.Upsampler{
		Method:  method,
		Workers: cfg.Workers,
		Logger:  log,
	}
	start := time.Now()
	out, err := u.Upsample(in, isogrid.V2i{cfg.Width, cfg.Height})
	if errors.Is(err, upsample.ErrMultiChannel) {
		log.WithField("channels", in.Channels).Error("input must be a grayscale image")
	}
	if err != nil {
		return err
	}
	var img image.Image = out.Gray16()
	if m != nil {
		img = colormap.Image(out, m, 0, 1)
	}
	if err := writePNG(outPath, img); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"output":  outPath,
		"method":  method.String(),
		"outDims": out.Dims,
		"elapsed": time.Since(start),
	}).Info("upsampled")

	if cfg.Reference != "" {
		ref := resize.Resize(uint(cfg.Width), uint(cfg.Height), in.Gray16(), resize.Lanczos3)
		if err := writePNG(cfg.Reference, ref); err != nil {
			return err
		}
		log.WithField("reference", cfg.Reference).Info("wrote Lanczos3 reference")
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(fp, img); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
