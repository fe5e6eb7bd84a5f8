package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/mosaic-tools-mcp/internal/matcher"
	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
)

// addSettingsFlags registers the mosaic settings flags on fs and binds them
// to their viper keys.
func addSettingsFlags(fs *pflag.FlagSet) {
	d := mosaic.DefaultSettings()

	fs.Float64("canvas-width", d.CanvasWidth, "canvas width in inches (1-20)")
	fs.Float64("canvas-height", d.CanvasHeight, "canvas height in inches (1-20)")
	fs.Float64("tile-size", d.TileSize, "tile edge in millimetres (1-20)")
	fs.String("tile-shape", d.TileShape.String(), "tile shape (square|circle|triangle|hexagon)")
	fs.String("color-matching", d.ColorMatching.String(), "color metric (nearest|perceptual|lab)")
	fs.String("sampling", d.Sampling.String(), "how tile colors are sampled (point|area)")
	fs.Bool("anti-aliasing", d.AntiAliasing, "smooth tile edges")
	fs.Bool("dithering", d.Dithering, "dither tile colors")

	for _, key := range []string{
		"canvas-width", "canvas-height", "tile-size", "tile-shape",
		"color-matching", "sampling", "anti-aliasing", "dithering",
	} {
		viper.BindPFlag(key, fs.Lookup(key))
	}
}

// settingsFrom reads mosaic settings from v. Unset keys keep the defaults.
func settingsFrom(v *viper.Viper) (mosaic.Settings, error) {
	s := mosaic.DefaultSettings()

	if v.IsSet("canvas-width") {
		s.CanvasWidth = v.GetFloat64("canvas-width")
	}
	if v.IsSet("canvas-height") {
		s.CanvasHeight = v.GetFloat64("canvas-height")
	}
	if v.IsSet("tile-size") {
		s.TileSize = v.GetFloat64("tile-size")
	}
	if v.IsSet("anti-aliasing") {
		s.AntiAliasing = v.GetBool("anti-aliasing")
	}
	if v.IsSet("dithering") {
		s.Dithering = v.GetBool("dithering")
	}

	var err error
	if name := v.GetString("tile-shape"); name != "" {
		if s.TileShape, err = mosaic.ParseShape(name); err != nil {
			return s, err
		}
	}
	if name := v.GetString("color-matching"); name != "" {
		if s.ColorMatching, err = matcher.ParseMetric(name); err != nil {
			return s, err
		}
	}
	if name := v.GetString("sampling"); name != "" {
		if s.Sampling, err = mosaic.ParseSampling(name); err != nil {
			return s, err
		}
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// paletteFrom returns the explicit palette in v. Entries may be comma or
// space separated, as they are when set through MOSAIC_PALETTE.
func paletteFrom(v *viper.Viper) []string {
	var hexes []string
	for _, entry := range v.GetStringSlice("palette") {
		for _, h := range strings.FieldsFunc(entry, func(r rune) bool { return r == ',' || r == ' ' }) {
			hexes = append(hexes, h)
		}
	}
	return hexes
}

// colorsFrom returns the number of colors to extract, or 0 for none.
func colorsFrom(v *viper.Viper) (int, error) {
	n := v.GetInt("colors")
	if n < 0 {
		return 0, fmt.Errorf("--colors must not be negative, got %d", n)
	}
	return n, nil
}
