package mosaic

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
)

// ErrInvalidPixels is returned for an empty or inconsistent pixel buffer.
var ErrInvalidPixels = errors.New("invalid pixel buffer")

// PixelBuffer is a decoded source image: non-premultiplied RGBA samples,
// four bytes per pixel, rows packed without padding.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer copies img into a PixelBuffer.
func NewPixelBuffer(img image.Image) *PixelBuffer {
	n := imaging.Clone(img)
	return &PixelBuffer{Width: n.Rect.Dx(), Height: n.Rect.Dy(), Pix: n.Pix}
}

// Validate reports ErrInvalidPixels when the buffer is empty or Pix does
// not hold exactly Width*Height*4 bytes.
func (p *PixelBuffer) Validate() error {
	if p == nil || p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: empty image", ErrInvalidPixels)
	}
	if want := p.Width * p.Height * 4; len(p.Pix) != want {
		return fmt.Errorf("%w: %d bytes for %dx%d, want %d", ErrInvalidPixels, len(p.Pix), p.Width, p.Height, want)
	}
	return nil
}

// Image views the buffer as an *image.NRGBA without copying.
func (p *PixelBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    p.Pix,
		Stride: p.Width * 4,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}
}

// At returns the color of the pixel at x, y, ignoring alpha.
func (p *PixelBuffer) At(x, y int) colorspace.RGB {
	i := (y*p.Width + x) * 4
	return colorspace.RGB{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2]}
}

// Pixels returns every pixel color in row-major order.
func (p *PixelBuffer) Pixels() []colorspace.RGB {
	out := make([]colorspace.RGB, 0, p.Width*p.Height)
	for i := 0; i+3 < len(p.Pix); i += 4 {
		out = append(out, colorspace.RGB{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2]})
	}
	return out
}

// Resample scales the buffer to exactly width x height, one pixel per grid
// cell.
func (p *PixelBuffer) Resample(width, height int, s Sampling) *PixelBuffer {
	filter := imaging.NearestNeighbor
	if s == SamplingArea {
		filter = imaging.Box
	}
	small := imaging.Resize(p.Image(), width, height, filter)
	return &PixelBuffer{Width: small.Rect.Dx(), Height: small.Rect.Dy(), Pix: small.Pix}
}
