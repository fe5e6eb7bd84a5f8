package colorspace

// HSL represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSL struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// Description contains one color in every representation the tools report.
type Description struct {
	Hex string `json:"hex"` // Hex format "#rrggbb"
	RGB RGB    `json:"rgb"` // RGB components
	HSL HSL    `json:"hsl"` // HSL representation
	Lab Lab    `json:"lab"` // Lab coordinates used by the lab metric
}

// Describe returns c in hex, RGB, HSL and Lab form.
func Describe(c RGB) Description {
	return Description{
		Hex: c.Hex(),
		RGB: c,
		HSL: RGBToHSL(c.R, c.G, c.B),
		Lab: c.Lab(),
	}
}

// RGBToHSL converts 8-bit RGB values to HSL color space.
//
// The conversion follows the standard algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Find min and max components
//  3. Calculate Lightness as (max + min) / 2
//  4. Calculate Saturation based on lightness
//  5. Calculate Hue based on which component is max
func RGBToHSL(r, g, b uint8) HSL {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	hi := max(rf, gf, bf)
	lo := min(rf, gf, bf)

	l := (hi + lo) / 2.0

	if hi == lo {
		return HSL{H: 0, S: 0, L: int(l * 100)}
	}

	var s float64
	if l < 0.5 {
		s = (hi - lo) / (hi + lo)
	} else {
		s = (hi - lo) / (2.0 - hi - lo)
	}

	var h float64
	switch hi {
	case rf:
		h = (gf - bf) / (hi - lo)
		if gf < bf {
			h += 6
		}
	case gf:
		h = 2.0 + (bf-rf)/(hi-lo)
	case bf:
		h = 4.0 + (rf-gf)/(hi-lo)
	}
	h *= 60

	return HSL{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
