package mosaic

import (
	"fmt"

	"github.com/ironsheep/mosaic-tools-mcp/internal/matcher"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
)

// Result is the grid produced by Build with its summary counts.
type Result struct {
	Grid *Grid `json:"grid"`

	// UsedColors counts the distinct palette indices present in Grid.
	UsedColors int `json:"usedColors"`

	// TotalTiles is GridDimensions.Width * GridDimensions.Height.
	TotalTiles int `json:"totalTiles"`

	GridDimensions GridDimensions `json:"gridDimensions"`
}

// Build computes the palette-index grid for pixels.
//
// Parameters:
//   - pixels: The decoded source image. Only read.
//   - settings: Canvas size, tile size, matching metric and sampling mode.
//     Ranges are the caller's responsibility (see Settings.Validate), but
//     a grid side of zero is always rejected.
//   - p: The palette to match against, 1 to palette.MaxColors colors.
//
// Returns:
//   - *Result: The grid and its summary.
//   - error: ErrInvalidSettings or ErrDegenerateGrid for unusable settings,
//     palette.ErrPaletteSize for an empty or oversized palette,
//     ErrInvalidPixels for an empty buffer.
func Build(pixels *PixelBuffer, settings Settings, p palette.Palette) (*Result, error) {
	dims, err := Dimensions(settings)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := pixels.Validate(); err != nil {
		return nil, err
	}

	cells := pixels.Resample(dims.Width, dims.Height, settings.Sampling)
	if cells.Width != dims.Width || cells.Height != dims.Height {
		return nil, fmt.Errorf("failed to resample %dx%d image to %dx%d", pixels.Width, pixels.Height, dims.Width, dims.Height)
	}

	m := matcher.New(p, settings.ColorMatching)
	grid := NewGrid(dims.Width, dims.Height)
	used := make([]bool, len(p))
	usedColors := 0

	for row := 0; row < dims.Height; row++ {
		for col := 0; col < dims.Width; col++ {
			idx := m.ClosestIndex(cells.At(col, row))
			grid.Set(row, col, idx)
			if !used[idx] {
				used[idx] = true
				usedColors++
			}
		}
	}

	return &Result{
		Grid:           grid,
		UsedColors:     usedColors,
		TotalTiles:     dims.Tiles(),
		GridDimensions: dims,
	}, nil
}
