package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
)

// SampleColor reads the color at a pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns the color in hex, RGB, HSL and Lab form, or an error if the
// coordinates are outside the image bounds. Alpha is dropped.
func SampleColor(img image.Image, x, y int) (*colorspace.Description, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	d := colorspace.Describe(colorspace.FromColor(img.At(x, y)))
	return &d, nil
}

// LabeledPoint is a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledColorResult combines a color sample with its location and label.
type LabeledColorResult struct {
	Label string                 `json:"label,omitempty"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Color colorspace.Description `json:"color"`
}

// SampleColorsMulti samples several points in one call.
//
// Results are returned in input order. If any point is outside the image no
// partial results are returned.
func SampleColorsMulti(img image.Image, points []LabeledPoint) ([]LabeledColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return results, nil
}
