// Package colorspace provides the pure color math used by the mosaic engine.
//
// All functions are deterministic and stateless. Colors enter and leave the
// package as 8-bit sRGB triples ([RGB]); intermediate values are float64.
//
// # Conversions
//
//   - Hex: "#RRGGBB" or "RRGGBB" strings, parsed leniently (see [HexToRGB])
//   - Linear RGB: sRGB gamma decode, threshold 0.04045
//   - XYZ: linear channels scaled by the D65 reference white (95.047, 100, 108.883)
//   - Lab: piecewise cube-root transform, threshold 0.008856
//   - HSL: hue in degrees, saturation and lightness in percent
//
// # Lenient Parsing
//
// Malformed hex strings never produce an error. They decode to black
// (0,0,0) so that a bad palette entry degrades a mosaic instead of aborting it.
package colorspace
