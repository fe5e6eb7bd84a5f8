package matcher

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in      string
		want    Metric
		wantErr bool
	}{
		{"nearest", Nearest, false},
		{"perceptual", Perceptual, false},
		{"lab", Lab, false},
		{" LAB ", Lab, false},
		{"Perceptual", Perceptual, false},
		{"ciede2000", Nearest, true},
		{"", Nearest, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMetric(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMetric(%q): err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMetric(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetric_String(t *testing.T) {
	for _, m := range Metrics() {
		back, err := ParseMetric(m.String())
		if err != nil || back != m {
			t.Errorf("ParseMetric(%q): got %v, %v", m.String(), back, err)
		}
	}
	if got := Metric(9).String(); got != "Metric(9)" {
		t.Errorf("String of unknown metric: got %q", got)
	}
}

func TestMetric_JSON(t *testing.T) {
	var v struct {
		M Metric `json:"m"`
	}
	if err := json.Unmarshal([]byte(`{"m":"perceptual"}`), &v); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if v.M != Perceptual {
		t.Errorf("Unmarshal: got %v, want perceptual", v.M)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"m":"perceptual"}` {
		t.Errorf("Marshal: got %s", data)
	}

	if err := json.Unmarshal([]byte(`{"m":"bogus"}`), &v); err == nil {
		t.Error("Unmarshal of unknown metric should fail")
	}
}

func TestDistance(t *testing.T) {
	black := colorspace.Black
	white := colorspace.White

	tests := []struct {
		name   string
		a, b   colorspace.RGB
		metric Metric
		want   float64
	}{
		{"nearest identical", white, white, Nearest, 0},
		{"nearest black-white", black, white, Nearest, math.Sqrt(3 * 255 * 255)},
		{"nearest one axis", black, colorspace.RGB{G: 3}, Nearest, 3},
		// rmean = 0: wr = 2, wb = 2 + 255/256
		{"perceptual blue", black, colorspace.RGB{B: 10}, Perceptual, math.Sqrt((2 + 255.0/256) * 100)},
		{"perceptual green", black, colorspace.RGB{G: 10}, Perceptual, 20},
		{"lab black-white", black, white, Lab, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b, tt.metric)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Distance: got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := colorspace.RGB{R: 200, G: 30, B: 90}
	b := colorspace.RGB{R: 15, G: 160, B: 240}
	for _, m := range Metrics() {
		if d1, d2 := Distance(a, b, m), Distance(b, a, m); math.Abs(d1-d2) > 1e-9 {
			t.Errorf("%v: Distance not symmetric: %f vs %f", m, d1, d2)
		}
	}
}

func TestClosestIndex_DarkGray(t *testing.T) {
	p := palette.Palette{colorspace.Black, colorspace.White}
	c := colorspace.RGB{R: 10, G: 10, B: 10}

	for _, m := range Metrics() {
		t.Run(m.String(), func(t *testing.T) {
			if got := ClosestIndex(c, p, m); got != 0 {
				t.Errorf("ClosestIndex: got %d, want 0", got)
			}
		})
	}
}

func TestClosestIndex_TieBreak(t *testing.T) {
	red := colorspace.RGB{R: 255}
	// Duplicate entries are exact ties.
	p := palette.Palette{colorspace.White, red, red, colorspace.Black, red}

	for _, m := range Metrics() {
		t.Run(m.String(), func(t *testing.T) {
			if got := ClosestIndex(red, p, m); got != 1 {
				t.Errorf("ClosestIndex: got %d, want 1", got)
			}
		})
	}

	// Mid gray sits equally far from two grays under Nearest.
	grays := palette.Palette{{R: 100, G: 100, B: 100}, {R: 120, G: 120, B: 120}}
	if got := ClosestIndex(colorspace.RGB{R: 110, G: 110, B: 110}, grays, Nearest); got != 0 {
		t.Errorf("equidistant: got %d, want 0", got)
	}
}

func TestClosestIndex_Idempotent(t *testing.T) {
	p := palette.Default()
	colors := []colorspace.RGB{{R: 12, G: 200, B: 99}, {R: 250, G: 250, B: 10}, {R: 77, G: 77, B: 77}}

	for _, m := range Metrics() {
		for _, c := range colors {
			first := ClosestIndex(c, p, m)
			for i := 0; i < 5; i++ {
				if got := ClosestIndex(c, p, m); got != first {
					t.Fatalf("%v %+v: got %d then %d", m, c, first, got)
				}
			}
		}
	}
}

func TestMatcher_AgreesWithClosestIndex(t *testing.T) {
	p := palette.Default()
	for _, m := range Metrics() {
		mt := New(p, m)
		if mt.Metric() != m {
			t.Errorf("Metric: got %v, want %v", mt.Metric(), m)
		}
		for r := 0; r < 256; r += 51 {
			for g := 0; g < 256; g += 51 {
				for b := 0; b < 256; b += 51 {
					c := colorspace.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
					want := bruteForce(c, p, m)
					if got := mt.ClosestIndex(c); got != want {
						t.Errorf("%v %+v: got %d, want %d", m, c, got, want)
					}
				}
			}
		}
	}
}

func bruteForce(c colorspace.RGB, p palette.Palette, m Metric) int {
	best := 0
	for i := range p {
		if Distance(c, p[i], m) < Distance(c, p[best], m) {
			best = i
		}
	}
	return best
}

func TestMatcher_Describe(t *testing.T) {
	p := palette.Palette{colorspace.Black, colorspace.White}

	got, ok := New(p, Nearest).Describe(colorspace.RGB{R: 250, G: 250, B: 250})
	if !ok {
		t.Fatal("Describe: ok = false")
	}
	if got.Index != 1 || got.Number != 2 || got.Hex != "#ffffff" {
		t.Errorf("Describe: got %+v", got)
	}
	if math.Abs(got.Distance-math.Sqrt(75)) > 1e-9 {
		t.Errorf("Distance: got %f, want %f", got.Distance, math.Sqrt(75))
	}

	if _, ok := New(nil, Lab).Describe(colorspace.White); ok {
		t.Error("Describe on empty palette: ok = true")
	}
}
