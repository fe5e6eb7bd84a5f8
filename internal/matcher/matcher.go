// Package matcher finds the palette entry closest to a color under one of
// three distance metrics.
package matcher

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
)

// Metric selects how color distance is measured.
type Metric int

const (
	// Nearest is plain Euclidean distance in RGB.
	Nearest Metric = iota
	// Perceptual is the weighted "red-mean" RGB distance.
	Perceptual
	// Lab is Euclidean distance between Lab coordinates.
	Lab
)

var metricNames = [...]string{
	Nearest:    "nearest",
	Perceptual: "perceptual",
	Lab:        "lab",
}

// Metrics lists every metric in declaration order.
func Metrics() []Metric {
	return []Metric{Nearest, Perceptual, Lab}
}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

// ParseMetric accepts a metric name, case-insensitively.
func ParseMetric(s string) (Metric, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range metricNames {
		if n == name {
			return Metric(i), nil
		}
	}
	return Nearest, fmt.Errorf("unknown color matching %q (want nearest, perceptual or lab)", s)
}

// MarshalJSON encodes the metric by name.
func (m Metric) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a metric name.
func (m *Metric) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseMetric(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Distance measures how far apart a and b are under metric m.
//
// Perceptual uses rmean = (r1+r2)/2 and weights 2+rmean/256, 4 and
// 2+(255-rmean)/256 for the red, green and blue squared deltas.
func Distance(a, b colorspace.RGB, m Metric) float64 {
	switch m {
	case Perceptual:
		rmean := (float64(a.R) + float64(b.R)) / 2
		dr := float64(a.R) - float64(b.R)
		dg := float64(a.G) - float64(b.G)
		db := float64(a.B) - float64(b.B)
		wr := 2 + rmean/256
		wg := 4.0
		wb := 2 + (255-rmean)/256
		return math.Sqrt(wr*dr*dr + wg*dg*dg + wb*db*db)
	case Lab:
		return a.Lab().Distance(b.Lab())
	default:
		return rgbDistance(a, b)
	}
}

func rgbDistance(a, b colorspace.RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ClosestIndex returns the index of the palette entry nearest to c.
//
// The scan runs in index order and only a strictly smaller distance
// replaces the current best, so exact ties resolve to the lowest index.
// The palette must not be empty; an empty palette yields 0.
func ClosestIndex(c colorspace.RGB, p palette.Palette, m Metric) int {
	if m == Lab {
		return New(p, m).ClosestIndex(c)
	}
	best := 0
	bestDist := math.Inf(1)
	for i, entry := range p {
		if d := Distance(c, entry, m); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Matcher answers repeated ClosestIndex queries against one palette.
//
// For the Lab metric the palette's Lab coordinates are computed once up
// front. A Matcher holds no mutable state after construction.
type Matcher struct {
	palette palette.Palette
	metric  Metric
	lab     []colorspace.Lab
}

// New prepares a Matcher for p under metric m.
func New(p palette.Palette, m Metric) *Matcher {
	mt := &Matcher{palette: p, metric: m}
	if m == Lab {
		mt.lab = make([]colorspace.Lab, len(p))
		for i, c := range p {
			mt.lab[i] = c.Lab()
		}
	}
	return mt
}

// Metric reports the metric the matcher was built with.
func (mt *Matcher) Metric() Metric {
	return mt.metric
}

// ClosestIndex returns the palette index nearest to c, ties to the lowest
// index.
func (mt *Matcher) ClosestIndex(c colorspace.RGB) int {
	best := 0
	bestDist := math.Inf(1)

	if mt.metric == Lab {
		target := c.Lab()
		for i, l := range mt.lab {
			if d := target.Distance(l); d < bestDist {
				best, bestDist = i, d
			}
		}
		return best
	}

	for i, entry := range mt.palette {
		if d := Distance(c, entry, mt.metric); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Match is the result of matching one color against a palette.
type Match struct {
	Index    int     `json:"index"`
	Number   int     `json:"number"`
	Hex      string  `json:"hex"`
	Distance float64 `json:"distance"`
	Metric   Metric  `json:"metric"`
}

// Describe matches c against the palette and reports the chosen entry with
// its 1-based number and distance. It returns ok=false for an empty palette.
func (mt *Matcher) Describe(c colorspace.RGB) (m Match, ok bool) {
	if len(mt.palette) == 0 {
		return Match{}, false
	}
	idx := mt.ClosestIndex(c)
	entry := mt.palette[idx]
	return Match{
		Index:    idx,
		Number:   idx + 1,
		Hex:      entry.Hex(),
		Distance: Distance(c, entry, mt.metric),
		Metric:   mt.metric,
	}, true
}
