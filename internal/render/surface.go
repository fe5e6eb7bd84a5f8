package render

import (
	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
)

// Point is a position in surface units.
type Point struct {
	X, Y float64
}

// PathKind distinguishes polygon paths from ellipses.
type PathKind int

const (
	PathPolygon PathKind = iota
	PathEllipse
)

// Path is a closed shape: either a polygon or an axis-aligned ellipse.
type Path struct {
	Kind PathKind

	// Points holds polygon vertices; the last vertex joins the first.
	Points []Point

	// Center, RX and RY describe an ellipse.
	Center Point
	RX, RY float64
}

// Polygon returns a closed polygon path through pts.
func Polygon(pts ...Point) Path {
	return Path{Kind: PathPolygon, Points: pts}
}

// Rect returns an axis-aligned rectangle path.
func Rect(x, y, w, h float64) Path {
	return Polygon(
		Point{x, y},
		Point{x + w, y},
		Point{x + w, y + h},
		Point{x, y + h},
	)
}

// Ellipse returns an ellipse path centered on c.
func Ellipse(c Point, rx, ry float64) Path {
	return Path{Kind: PathEllipse, Center: c, RX: rx, RY: ry}
}

// Circle returns a circle path centered on c.
func Circle(c Point, r float64) Path {
	return Ellipse(c, r, r)
}

// Align controls horizontal text placement relative to the anchor point.
// Text is always vertically centered on the anchor.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
)

// Surface is a caller-owned 2-D drawing target.
//
// Render only draws onto a surface; it never keeps a reference after
// returning.
type Surface interface {
	// Width and Height are the surface size in pixels.
	Width() int
	Height() int

	FillPath(p Path, c colorspace.RGB) error
	StrokePath(p Path, c colorspace.RGB, lineWidth float64) error

	// DrawText draws s with a font of the given pixel size, anchored at
	// x, y.
	DrawText(s string, x, y, size float64, c colorspace.RGB, align Align) error
}
