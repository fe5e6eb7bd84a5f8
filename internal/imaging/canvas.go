package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// DefaultDPI is the print resolution of prepared canvases.
const DefaultDPI = 300

// CanvasPixels converts a physical canvas size to pixels:
// round(inches*dpi) on each side.
func CanvasPixels(widthIn, heightIn float64, dpi int) (width, height int) {
	return int(math.Round(widthIn * float64(dpi))), int(math.Round(heightIn * float64(dpi)))
}

// FitToCanvas letterboxes img onto a white canvas of the given physical
// size.
//
// Parameters:
//   - img: The source photo.
//   - widthIn, heightIn: Canvas size in inches.
//   - dpi: Pixels per inch; values below 1 use DefaultDPI.
//
// The photo is scaled with a Lanczos filter so that it fits entirely inside
// the canvas with its aspect ratio preserved, then centered. Uncovered
// margins stay white.
func FitToCanvas(img image.Image, widthIn, heightIn float64, dpi int) (*image.NRGBA, error) {
	if dpi < 1 {
		dpi = DefaultDPI
	}
	cw, ch := CanvasPixels(widthIn, heightIn, dpi)
	if cw < 1 || ch < 1 {
		return nil, fmt.Errorf("invalid canvas size %vx%v in at %d dpi", widthIn, heightIn, dpi)
	}

	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("empty source image")
	}

	scale := math.Min(float64(cw)/float64(b.Dx()), float64(ch)/float64(b.Dy()))
	fw := max(int(math.Round(float64(b.Dx())*scale)), 1)
	fh := max(int(math.Round(float64(b.Dy())*scale)), 1)

	fitted := imaging.Resize(img, min(fw, cw), min(fh, ch), imaging.Lanczos)
	canvas := imaging.New(cw, ch, color.White)
	return imaging.PasteCenter(canvas, fitted), nil
}
