package render

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
)

// Canvas is a raster Surface backed by a gg drawing context.
//
// A Canvas is not safe for concurrent use. Call Close when done.
type Canvas struct {
	dc    *gg.Context
	font  *text.FontSource
	faces map[float64]text.Face
}

// NewCanvas creates a white canvas of width x height pixels.
func NewCanvas(width, height int) (*Canvas, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	font, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.White)
	return &Canvas{dc: dc, font: font, faces: make(map[float64]text.Face)}, nil
}

func (c *Canvas) Width() int  { return c.dc.Width() }
func (c *Canvas) Height() int { return c.dc.Height() }

func (c *Canvas) trace(p Path) bool {
	c.dc.ClearPath()
	switch p.Kind {
	case PathEllipse:
		if p.RX <= 0 || p.RY <= 0 {
			return false
		}
		c.dc.DrawEllipse(p.Center.X, p.Center.Y, p.RX, p.RY)
	default:
		if len(p.Points) < 3 {
			return false
		}
		for i, pt := range p.Points {
			if i == 0 {
				c.dc.MoveTo(pt.X, pt.Y)
			} else {
				c.dc.LineTo(pt.X, pt.Y)
			}
		}
		c.dc.ClosePath()
	}
	return true
}

// FillPath fills p with col. Degenerate paths draw nothing.
func (c *Canvas) FillPath(p Path, col colorspace.RGB) error {
	if !c.trace(p) {
		return nil
	}
	c.dc.SetColor(col)
	return c.dc.Fill()
}

// StrokePath outlines p with col.
func (c *Canvas) StrokePath(p Path, col colorspace.RGB, lineWidth float64) error {
	if !c.trace(p) {
		return nil
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	return c.dc.Stroke()
}

// DrawText draws s in Go Regular at the given pixel size.
func (c *Canvas) DrawText(s string, x, y, size float64, col colorspace.RGB, align Align) error {
	if size <= 0 || s == "" {
		return nil
	}
	face, ok := c.faces[size]
	if !ok {
		face = c.font.Face(size)
		c.faces[size] = face
	}
	c.dc.SetFont(face)
	c.dc.SetColor(col)

	ax := 0.5
	if align == AlignLeft {
		ax = 0
	}
	c.dc.DrawStringAnchored(s, x, y, ax, 0.5)
	return nil
}

// Image returns the rendered pixels.
func (c *Canvas) Image() image.Image {
	_ = c.dc.FlushGPU()
	return c.dc.Image()
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	_ = c.dc.FlushGPU()
	return c.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
