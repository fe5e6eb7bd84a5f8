package colorspace

import "math"

// D65 reference white, scaled so that Y of white is 100.
const (
	whiteX = 95.047
	whiteY = 100.000
	whiteZ = 108.883
)

const (
	labEpsilon = 0.008856
	labKappa   = 7.787
	labOffset  = 16.0 / 116.0
)

// XYZ holds tristimulus values relative to the D65 white (Y of white = 100).
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lab holds a color in Lab space.
//
// L is lightness in roughly [0,100]; A and B are signed chromaticity axes.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// SRGBToLinear gamma-decodes 8-bit sRGB components to linear light in [0,1].
//
// Values at or below 0.04045 (after normalizing to [0,1]) are divided by
// 12.92; larger values use ((v+0.055)/1.055)^2.4.
func SRGBToLinear(r, g, b uint8) (lr, lg, lb float64) {
	return toColorful(r, g, b).LinearRgb()
}

// RGBToXYZ converts sRGB to XYZ.
//
// Each linear channel is scaled by the matching D65 white component:
// red by 95.047, green by 100 and blue by 108.883. There is no primaries
// matrix; Lab distances used for palette matching depend on this exact form.
func RGBToXYZ(r, g, b uint8) XYZ {
	lr, lg, lb := SRGBToLinear(r, g, b)
	return XYZ{X: lr * whiteX, Y: lg * whiteY, Z: lb * whiteZ}
}

// RGBToLab converts sRGB to Lab via [RGBToXYZ].
//
// Each XYZ component is normalized by the white point and passed through
//
//	f(t) = t^(1/3)              if t >= 0.008856
//	f(t) = 7.787*t + 16/116     otherwise
//
// giving L = 116*f(y) - 16, a = 500*(f(x)-f(y)), b = 200*(f(y)-f(z)).
// White maps to (100, 0, 0) and black to (0, 0, 0).
func RGBToLab(r, g, b uint8) Lab {
	return XYZToLab(RGBToXYZ(r, g, b))
}

// XYZToLab converts D65-relative XYZ to Lab.
func XYZToLab(c XYZ) Lab {
	fx := labPivot(c.X / whiteX)
	fy := labPivot(c.Y / whiteY)
	fz := labPivot(c.Z / whiteZ)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// Lab returns the Lab coordinates of c.
func (c RGB) Lab() Lab {
	return RGBToLab(c.R, c.G, c.B)
}

// Distance returns the Euclidean distance between two Lab colors (CIE76).
func (l Lab) Distance(o Lab) float64 {
	dl := l.L - o.L
	da := l.A - o.A
	db := l.B - o.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

func labPivot(t float64) float64 {
	if t >= labEpsilon {
		return math.Cbrt(t)
	}
	return labKappa*t + labOffset
}
