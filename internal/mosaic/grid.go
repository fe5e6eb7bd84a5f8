package mosaic

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// GridDimensions is the size of a grid in tiles.
type GridDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Tiles returns Width*Height.
func (d GridDimensions) Tiles() int {
	return d.Width * d.Height
}

// Dimensions derives the grid size from the physical settings.
//
// The tile count per inch is 25.4/tileSize, and each side is the floor of
// the canvas side times that count. A non-positive or non-finite tile size
// or canvas side is reported as ErrInvalidSettings; a side that floors to
// zero is reported as ErrDegenerateGrid.
func Dimensions(s Settings) (GridDimensions, error) {
	for _, v := range []float64{s.CanvasWidth, s.CanvasHeight, s.TileSize} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return GridDimensions{}, fmt.Errorf("%w: canvas %vx%v in, tile %v mm",
				ErrInvalidSettings, s.CanvasWidth, s.CanvasHeight, s.TileSize)
		}
	}

	tilesPerInch := MMPerInch / s.TileSize
	d := GridDimensions{
		Width:  int(math.Floor(s.CanvasWidth * tilesPerInch)),
		Height: int(math.Floor(s.CanvasHeight * tilesPerInch)),
	}
	if d.Width < 1 || d.Height < 1 {
		return d, fmt.Errorf("%w: %dx%d tiles for %v mm tiles on %vx%v in",
			ErrDegenerateGrid, d.Width, d.Height, s.TileSize, s.CanvasWidth, s.CanvasHeight)
	}
	return d, nil
}

// Grid is a row-major array of palette indices, Height rows by Width
// columns.
//
// JSON encodes a grid as nested arrays, one inner array per row.
type Grid struct {
	Width  int
	Height int
	Cells  []int
}

// NewGrid returns a zero-filled grid.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Cells: make([]int, width*height)}
}

// At returns the palette index of the cell at row, col.
func (g *Grid) At(row, col int) int {
	return g.Cells[row*g.Width+col]
}

// Set stores a palette index for the cell at row, col.
func (g *Grid) Set(row, col, idx int) {
	g.Cells[row*g.Width+col] = idx
}

// Dimensions returns the grid size.
func (g *Grid) Dimensions() GridDimensions {
	return GridDimensions{Width: g.Width, Height: g.Height}
}

// Rows returns the grid as one slice per row. The rows share no memory with
// the grid.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.Height)
	for r := range rows {
		rows[r] = slices.Clone(g.Cells[r*g.Width : (r+1)*g.Width])
	}
	return rows
}

// UsedIndices returns the distinct palette indices present in the grid in
// ascending order.
func (g *Grid) UsedIndices() []int {
	seen := make(map[int]struct{})
	for _, idx := range g.Cells {
		seen[idx] = struct{}{}
	}
	used := make([]int, 0, len(seen))
	for idx := range seen {
		used = append(used, idx)
	}
	slices.Sort(used)
	return used
}

// Counts returns how many cells use each palette index, for a palette of n
// colors. Indices outside [0,n) are ignored.
func (g *Grid) Counts(n int) []int {
	counts := make([]int, n)
	for _, idx := range g.Cells {
		if idx >= 0 && idx < n {
			counts[idx]++
		}
	}
	return counts
}

func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

// UnmarshalJSON decodes nested arrays. Every row must have the same length.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	cells := make([]int, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("grid row %d has %d cells, want %d", i, len(row), width)
		}
		cells = append(cells, row...)
	}
	*g = Grid{Width: width, Height: len(rows), Cells: cells}
	return nil
}
