package colorspace

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents an sRGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Black is the fallback color for unparseable hex strings.
var Black = RGB{}

// White is the background color of rendered mosaics.
var White = RGB{R: 255, G: 255, B: 255}

// RGBA implements color.Color so an RGB can be handed to image and drawing APIs.
// The color is always fully opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return RGBToHex(c.R, c.G, c.B)
}

// FromColor converts any color.Color to RGB, dropping alpha.
//
// 16-bit components are scaled down by right-shifting 8 bits. The input is
// treated as already composited; premultiplied values are not un-premultiplied.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// HexToRGB parses a 6-digit hex color with an optional leading '#'.
//
// Parsing is lenient: a string of the wrong length or with non-hex characters
// yields black (0,0,0) instead of an error. Both upper and lower case digits
// are accepted.
//
// # Example
//
//	colorspace.HexToRGB("#FF8040") // RGB{255, 128, 64}
//	colorspace.HexToRGB("FF8040")  // RGB{255, 128, 64}
//	colorspace.HexToRGB("#F84")    // RGB{0, 0, 0}
func HexToRGB(s string) RGB {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Black
	}
	val, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black
	}
	return RGB{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val)}
}

// RGBToHex formats 8-bit components as a lowercase "#rrggbb" string.
//
// HexToRGB(RGBToHex(r, g, b)) always returns the original triple.
func RGBToHex(r, g, b uint8) string {
	return toColorful(r, g, b).Hex()
}

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}
