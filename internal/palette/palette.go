// Package palette holds the index-addressed color palettes used by the mosaic
// engine and the median-cut quantizer that derives them from photographs.
package palette

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
)

// MaxColors is the largest palette the engine accepts.
const MaxColors = 64

// DefaultSize is the number of colors in [Default] and in auto-derived
// palettes when the caller does not ask for a specific count.
const DefaultSize = 24

// ErrPaletteSize is returned when a palette has fewer than 1 or more than
// MaxColors entries.
var ErrPaletteSize = errors.New("palette size out of range")

// Palette is an ordered, index-addressed list of colors.
//
// Index i always denotes the same color for the lifetime of one mosaic
// computation; callers must not mutate a palette after handing it to the
// grid builder or the rasterizer.
type Palette []colorspace.RGB

var defaultHex = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD",
	"#FFA07A", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9", "#F8C471",
	"#82E0AA", "#F1948A", "#85929E", "#D5A6BD", "#A9CCE3", "#F9E79F",
	"#ABEBC6", "#F5B7B1", "#AEB6BF", "#E8DAEF", "#D6EAF8", "#FCF3CF",
}

// Default returns a fresh copy of the built-in 24-color pastel palette.
func Default() Palette {
	return Parse(defaultHex)
}

// Parse converts hex strings to a palette. Malformed entries become black,
// following [colorspace.HexToRGB]; Parse never fails.
func Parse(hexes []string) Palette {
	p := make(Palette, len(hexes))
	for i, h := range hexes {
		p[i] = colorspace.HexToRGB(h)
	}
	return p
}

// Validate reports ErrPaletteSize unless 1 <= len(p) <= MaxColors.
func (p Palette) Validate() error {
	if len(p) < 1 || len(p) > MaxColors {
		return fmt.Errorf("%w: %d colors (want 1-%d)", ErrPaletteSize, len(p), MaxColors)
	}
	return nil
}

// Hex returns the palette as lowercase "#rrggbb" strings in index order.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// Clone returns an independent copy of p.
func (p Palette) Clone() Palette {
	return slices.Clone(p)
}

// Resize returns a palette of exactly n colors: p truncated, or padded with
// black when shorter.
func (p Palette) Resize(n int) Palette {
	out := make(Palette, n)
	copy(out, p)
	return out
}

// SortByLuminance returns a copy of p ordered from darkest to brightest by
// relative luminance (Rec. 709 weights on linear RGB). Ties keep their
// original order.
//
// Sorting changes which index denotes which color, so it must happen before
// a grid is built with the palette.
func SortByLuminance(p Palette) Palette {
	out := p.Clone()
	slices.SortStableFunc(out, func(a, b colorspace.RGB) int {
		ya, yb := luminance(a), luminance(b)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	})
	return out
}

func luminance(c colorspace.RGB) float64 {
	r, g, b := colorspace.SRGBToLinear(c.R, c.G, c.B)
	return 0.2126*r + 0.7152*g + 0.0722*b
}
