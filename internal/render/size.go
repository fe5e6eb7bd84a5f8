package render

import (
	"math"

	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
)

// DPI is the print resolution used for exports.
const DPI = 300

// ExportSize returns the print surface size for the physical canvas:
// round(inches * DPI) on each side.
func ExportSize(s mosaic.Settings) (width, height int) {
	return int(math.Round(s.CanvasWidth * DPI)), int(math.Round(s.CanvasHeight * DPI))
}

// MaxPreviewSide bounds both sides of a preview surface.
const MaxPreviewSide = 4096

// PreviewSize returns a surface viewportWidth pixels wide with the grid's
// aspect ratio. The height is truncated and never below 1. When the height
// would exceed MaxPreviewSide the surface is scaled down to MaxPreviewSide
// high instead, keeping the aspect ratio.
func PreviewSize(d mosaic.GridDimensions, viewportWidth int) (width, height int) {
	viewportWidth = min(max(viewportWidth, 1), MaxPreviewSide)
	if d.Width < 1 || d.Height < 1 {
		return viewportWidth, viewportWidth
	}
	aspect := float64(d.Width) / float64(d.Height)
	h := float64(viewportWidth) / aspect
	if h > MaxPreviewSide {
		return max(int(MaxPreviewSide*aspect), 1), MaxPreviewSide
	}
	return viewportWidth, max(int(h), 1)
}
