package render

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
)

// Numeral size as a fraction of min(tileWidth, tileHeight). Export tiles are
// small on paper, so their numbers are set smaller.
const (
	PreviewTextScale = 0.6
	ExportTextScale  = 0.4
)

// OutlineWidth is the tile outline width in surface units.
const OutlineWidth = 1.0

// ErrGridMismatch is returned when a grid's cells do not match its
// dimensions or reference colors outside the palette.
var ErrGridMismatch = errors.New("grid does not match palette")

// Options controls a Render call.
type Options struct {
	Mode Mode

	// Legend adds the used-color panel at the top right.
	Legend bool

	// TextScale sizes tile numbers relative to the tile. Zero means
	// PreviewTextScale.
	TextScale float64
}

// PreviewOptions returns options for on-screen rendering in mode m.
func PreviewOptions(m Mode) Options {
	return Options{Mode: m, TextScale: PreviewTextScale}
}

// ExportOptions returns options for print rendering in mode m.
func ExportOptions(m Mode, legend bool) Options {
	return Options{Mode: m, Legend: legend, TextScale: ExportTextScale}
}

// Render draws grid onto s.
//
// Parameters:
//   - s: The target surface. Its whole area is first filled white.
//   - grid: Palette indices, one per cell.
//   - p: The palette the grid was built with.
//   - settings: Only TileShape is used.
//   - opts: Render mode, legend and numeral scale.
//
// Cells are drawn in row-major order, each occupying
// s.Width()/grid.Width by s.Height()/grid.Height units, followed by the
// legend when requested.
//
// # Errors
//
//   - ErrGridMismatch if the grid is empty, inconsistent, or holds an index
//     outside the palette
//   - Any error returned by the surface
func Render(s Surface, grid *mosaic.Grid, p palette.Palette, settings mosaic.Settings, opts Options) error {
	if err := checkGrid(grid, p); err != nil {
		return err
	}
	if opts.Mode < ModeColored || opts.Mode > ModeSplit {
		return fmt.Errorf("unknown render mode %v", opts.Mode)
	}
	scale := opts.TextScale
	if scale <= 0 {
		scale = PreviewTextScale
	}

	width, height := float64(s.Width()), float64(s.Height())
	if err := s.FillPath(Rect(0, 0, width, height), colorspace.White); err != nil {
		return fmt.Errorf("failed to clear surface: %w", err)
	}

	tw := width / float64(grid.Width)
	th := height / float64(grid.Height)

	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			idx := grid.At(row, col)
			cell := Cell{Row: row, Col: col, X: float64(col) * tw, Y: float64(row) * th, W: tw, H: th}
			if err := drawTile(s, settings.TileShape, cell, idx, p[idx], opts.Mode, scale); err != nil {
				return fmt.Errorf("failed to draw tile %d,%d: %w", row, col, err)
			}
		}
	}

	if opts.Legend {
		if err := Legend(s, grid, p); err != nil {
			return err
		}
	}
	return nil
}

func drawTile(s Surface, shape mosaic.Shape, cell Cell, idx int, c colorspace.RGB, mode Mode, scale float64) error {
	path := TileGeometry(shape, cell)

	switch mode {
	case ModeColored:
		if err := s.FillPath(path, c); err != nil {
			return err
		}
		return s.StrokePath(path, colorspace.Black, OutlineWidth)

	case ModeNumbered:
		if err := s.StrokePath(path, colorspace.Black, OutlineWidth); err != nil {
			return err
		}
		return drawNumber(s, cell, idx, scale)

	case ModeSplit:
		if err := s.FillPath(path, c); err != nil {
			return err
		}
		if err := s.StrokePath(path, colorspace.Black, OutlineWidth); err != nil {
			return err
		}
		return drawNumber(s, cell, idx, scale)
	}
	return nil
}

func drawNumber(s Surface, cell Cell, idx int, scale float64) error {
	center := cell.Center()
	size := scale * min(cell.W, cell.H)
	return s.DrawText(strconv.Itoa(idx+1), center.X, center.Y, size, colorspace.Black, AlignCenter)
}

func checkGrid(grid *mosaic.Grid, p palette.Palette) error {
	if grid == nil || grid.Width < 1 || grid.Height < 1 {
		return fmt.Errorf("%w: empty grid", ErrGridMismatch)
	}
	if len(grid.Cells) != grid.Width*grid.Height {
		return fmt.Errorf("%w: %d cells for %dx%d grid", ErrGridMismatch, len(grid.Cells), grid.Width, grid.Height)
	}
	for i, idx := range grid.Cells {
		if idx < 0 || idx >= len(p) {
			return fmt.Errorf("%w: cell %d uses index %d, palette has %d colors", ErrGridMismatch, i, idx, len(p))
		}
	}
	return nil
}
