package mosaic

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/mosaic-tools-mcp/internal/matcher"
)

// Accepted ranges for the physical settings.
const (
	MinCanvasInches = 1.0
	MaxCanvasInches = 20.0
	MinTileMM       = 1.0
	MaxTileMM       = 20.0

	// MMPerInch converts the canvas size in inches to tile counts.
	MMPerInch = 25.4
)

var (
	// ErrInvalidSettings is returned when a settings field is out of range,
	// not finite, or names an unknown variant.
	ErrInvalidSettings = errors.New("invalid mosaic settings")

	// ErrDegenerateGrid is returned when the tile size is too large for the
	// canvas and a grid side computes to zero.
	ErrDegenerateGrid = errors.New("degenerate grid dimensions")
)

// Shape is the tile shape used when the grid is rasterized.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeTriangle
	ShapeHexagon
)

var shapeNames = [...]string{
	ShapeSquare:   "square",
	ShapeCircle:   "circle",
	ShapeTriangle: "triangle",
	ShapeHexagon:  "hexagon",
}

// Shapes lists every tile shape in declaration order.
func Shapes() []Shape {
	return []Shape{ShapeSquare, ShapeCircle, ShapeTriangle, ShapeHexagon}
}

func (s Shape) String() string {
	if !s.valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

func (s Shape) valid() bool {
	return s >= 0 && int(s) < len(shapeNames)
}

// ParseShape accepts a shape name, case-insensitively.
func ParseShape(s string) (Shape, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return ShapeSquare, fmt.Errorf("unknown tile shape %q (want square, circle, triangle or hexagon)", s)
}

func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Shape) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, err := ParseShape(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Sampling selects how one representative color per cell is taken from the
// source image.
type Sampling int

const (
	// SamplingPoint picks the nearest source pixel (nearest-neighbor resize).
	SamplingPoint Sampling = iota
	// SamplingArea averages the source pixels under the cell (box filter).
	SamplingArea
)

var samplingNames = [...]string{
	SamplingPoint: "point",
	SamplingArea:  "area",
}

func (s Sampling) String() string {
	if !s.valid() {
		return fmt.Sprintf("Sampling(%d)", int(s))
	}
	return samplingNames[s]
}

func (s Sampling) valid() bool {
	return s >= 0 && int(s) < len(samplingNames)
}

// ParseSampling accepts "point" or "area", case-insensitively.
func ParseSampling(s string) (Sampling, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range samplingNames {
		if n == name {
			return Sampling(i), nil
		}
	}
	return SamplingPoint, fmt.Errorf("unknown sampling %q (want point or area)", s)
}

func (s Sampling) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Sampling) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, err := ParseSampling(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Settings describes the physical canvas and how tiles are drawn and
// matched.
type Settings struct {
	// CanvasWidth is the canvas width in inches, 1 to 20.
	CanvasWidth float64 `json:"canvasWidth"`

	// CanvasHeight is the canvas height in inches, 1 to 20.
	CanvasHeight float64 `json:"canvasHeight"`

	// TileSize is the tile edge in millimetres, 1 to 20.
	TileSize float64 `json:"tileSize"`

	TileShape     Shape          `json:"tileShape"`
	ColorMatching matcher.Metric `json:"colorMatching"`
	Sampling      Sampling       `json:"sampling"`

	AntiAliasing bool `json:"antiAliasing"`
	Dithering    bool `json:"dithering"`
}

// DefaultSettings returns a letter-size canvas with 4 mm square tiles and
// nearest RGB matching.
func DefaultSettings() Settings {
	return Settings{
		CanvasWidth:   8.5,
		CanvasHeight:  11,
		TileSize:      4,
		TileShape:     ShapeSquare,
		ColorMatching: matcher.Nearest,
		Sampling:      SamplingPoint,
		AntiAliasing:  true,
		Dithering:     false,
	}
}

// Validate checks every field against its documented range. All problems
// are reported together, each wrapping ErrInvalidSettings.
func (s Settings) Validate() error {
	var errs []error
	check := func(name string, v, lo, hi float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < lo || v > hi {
			errs = append(errs, fmt.Errorf("%w: %s %v outside %v-%v", ErrInvalidSettings, name, v, lo, hi))
		}
	}
	check("canvasWidth", s.CanvasWidth, MinCanvasInches, MaxCanvasInches)
	check("canvasHeight", s.CanvasHeight, MinCanvasInches, MaxCanvasInches)
	check("tileSize", s.TileSize, MinTileMM, MaxTileMM)

	if !s.TileShape.valid() {
		errs = append(errs, fmt.Errorf("%w: tileShape %v", ErrInvalidSettings, s.TileShape))
	}
	if s.ColorMatching < matcher.Nearest || s.ColorMatching > matcher.Lab {
		errs = append(errs, fmt.Errorf("%w: colorMatching %v", ErrInvalidSettings, s.ColorMatching))
	}
	if !s.Sampling.valid() {
		errs = append(errs, fmt.Errorf("%w: sampling %v", ErrInvalidSettings, s.Sampling))
	}
	return errors.Join(errs...)
}
