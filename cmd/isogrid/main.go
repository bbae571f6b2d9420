// Command isogrid upsamples grayscale images and extracts isosurfaces from
// scalar volumes.
//
// Settings come from command line flags, optionally layered over a TOML file
// given with --config. Each subcommand reads the table of the same name:
//
//	[upsample]
//	method = "biquadratic"
//	width = 1024
//
//	[isosurface]
//	iso = 0.5
//	dims = [64, 64, 64]
//
// Flags set explicitly on the command line take precedence over the file.
package main

import (
	"os"
)

func main() {
	if err := newApp().execute(); err != nil {
		os.Exit(1)
	}
}
