package render

import (
	"fmt"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
)

// Legend layout in surface units.
const (
	legendMargin     = 20.0
	legendPadding    = 10.0
	legendItemWidth  = 200.0
	legendItemHeight = 30.0
	legendSwatch     = 20.0
	legendTextOffset = 30.0
	legendFontSize   = 14.0
)

// LegendEntry describes one palette color used in a grid.
type LegendEntry struct {
	Index  int            `json:"index"`
	Number int            `json:"number"`
	Hex    string         `json:"hex"`
	Color  colorspace.RGB `json:"rgb"`
	Tiles  int            `json:"tiles"`
}

// Label is the legend text for the entry, "{number}: {hex}".
func (e LegendEntry) Label() string {
	return fmt.Sprintf("%d: %s", e.Number, e.Hex)
}

// LegendEntries lists the palette indices present in grid in ascending
// order with their tile counts. Indices outside the palette are skipped.
func LegendEntries(grid *mosaic.Grid, p palette.Palette) []LegendEntry {
	counts := grid.Counts(len(p))
	var entries []LegendEntry
	for _, idx := range grid.UsedIndices() {
		if idx < 0 || idx >= len(p) {
			continue
		}
		entries = append(entries, LegendEntry{
			Index:  idx,
			Number: idx + 1,
			Hex:    p[idx].Hex(),
			Color:  p[idx],
			Tiles:  counts[idx],
		})
	}
	return entries
}

// LegendBounds returns the panel rectangle for n entries on a surface of
// the given width.
func LegendBounds(surfaceWidth float64, n int) (x, y, w, h float64) {
	itemX := surfaceWidth - legendItemWidth - legendMargin
	return itemX - legendPadding, legendMargin - legendPadding,
		legendItemWidth + 2*legendPadding, float64(n)*legendItemHeight + 2*legendPadding
}

// Legend draws the used-color panel: a white bordered box with one row per
// used index showing a swatch and "{index+1}: {hex}".
func Legend(s Surface, grid *mosaic.Grid, p palette.Palette) error {
	entries := LegendEntries(grid, p)
	if len(entries) == 0 {
		return nil
	}

	px, py, pw, ph := LegendBounds(float64(s.Width()), len(entries))
	panel := Rect(px, py, pw, ph)
	if err := s.FillPath(panel, colorspace.White); err != nil {
		return fmt.Errorf("failed to draw legend: %w", err)
	}
	if err := s.StrokePath(panel, colorspace.Black, OutlineWidth); err != nil {
		return fmt.Errorf("failed to draw legend: %w", err)
	}

	itemX := px + legendPadding
	for i, e := range entries {
		y := legendMargin + float64(i)*legendItemHeight
		swatch := Rect(itemX, y, legendSwatch, legendSwatch)
		if err := s.FillPath(swatch, e.Color); err != nil {
			return fmt.Errorf("failed to draw legend swatch %d: %w", e.Number, err)
		}
		if err := s.StrokePath(swatch, colorspace.Black, OutlineWidth); err != nil {
			return fmt.Errorf("failed to draw legend swatch %d: %w", e.Number, err)
		}
		if err := s.DrawText(e.Label(), itemX+legendTextOffset, y+legendSwatch/2, legendFontSize, colorspace.Black, AlignLeft); err != nil {
			return fmt.Errorf("failed to draw legend label %d: %w", e.Number, err)
		}
	}
	return nil
}
