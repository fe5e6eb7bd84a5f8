package render

import (
	"math"

	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
)

// Shape proportions, as fractions of min(tileWidth, tileHeight)/2.
const (
	circleRadiusFactor  = 0.85
	hexagonRadiusFactor = 0.9

	// squareInset is in surface units, like the outline width.
	squareInset = 1.0
)

var sqrt3 = math.Sqrt(3)

// Cell locates one grid cell on the surface.
type Cell struct {
	Row, Col int

	// X and Y are the top-left corner of the cell, W and H its size.
	X, Y, W, H float64
}

// Center returns the middle of the cell rectangle.
func (c Cell) Center() Point {
	return Point{c.X + c.W/2, c.Y + c.H/2}
}

// TileGeometry returns the path outlining cell for the given shape.
func TileGeometry(shape mosaic.Shape, c Cell) Path {
	switch shape {
	case mosaic.ShapeCircle:
		return circleTile(c)
	case mosaic.ShapeTriangle:
		return triangleTile(c)
	case mosaic.ShapeHexagon:
		return hexagonTile(c)
	default:
		return squareTile(c)
	}
}

func squareTile(c Cell) Path {
	w := math.Max(c.W-2*squareInset, 0)
	h := math.Max(c.H-2*squareInset, 0)
	return Rect(c.X+squareInset, c.Y+squareInset, w, h)
}

func circleTile(c Cell) Path {
	r := circleRadiusFactor * math.Min(c.W, c.H) / 2
	center := c.Center()
	if c.Row%2 == 1 {
		center.X += r
	}
	return Circle(center, r)
}

// ApexUp reports whether the triangle tile at row, col points up.
// Horizontally adjacent cells always alternate.
func ApexUp(row, col int) bool {
	return (row+col)%2 == 0
}

func triangleTile(c Cell) Path {
	th := sqrt3 / 2 * c.W
	if ApexUp(c.Row, c.Col) {
		return Polygon(
			Point{c.X + c.W/2, c.Y},
			Point{c.X, c.Y + th},
			Point{c.X + c.W, c.Y + th},
		)
	}
	return Polygon(
		Point{c.X, c.Y},
		Point{c.X + c.W, c.Y},
		Point{c.X + c.W/2, c.Y + th},
	)
}

// hexagonTile places flat-top hexagons on an axial lattice derived from the
// row and column; the cell origin only contributes its size.
func hexagonTile(c Cell) Path {
	r := hexagonRadiusFactor * math.Min(c.W, c.H) / 2
	hexW := 2 * r
	hexH := sqrt3 * r

	cx := float64(c.Col)*0.75*hexW + hexW/2
	if c.Row%2 == 1 {
		cx += hexW / 2
	}
	cy := float64(c.Row)*(sqrt3/2)*hexH + hexH/2

	pts := make([]Point, 6)
	for i := range pts {
		angle := float64(i) * math.Pi / 3
		pts[i] = Point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return Polygon(pts...)
}
