package mosaic

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/mosaic-tools-mcp/internal/matcher"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("DefaultSettings invalid: %v", err)
	}
	if s.CanvasWidth != 8.5 || s.CanvasHeight != 11 || s.TileSize != 4 {
		t.Errorf("DefaultSettings: got %+v", s)
	}
	if s.TileShape != ShapeSquare || s.ColorMatching != matcher.Nearest || s.Sampling != SamplingPoint {
		t.Errorf("DefaultSettings variants: got %v %v %v", s.TileShape, s.ColorMatching, s.Sampling)
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		valid  bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"min bounds", func(s *Settings) { s.CanvasWidth, s.CanvasHeight, s.TileSize = 1, 1, 1 }, true},
		{"max bounds", func(s *Settings) { s.CanvasWidth, s.CanvasHeight, s.TileSize = 20, 20, 20 }, true},
		{"canvas too small", func(s *Settings) { s.CanvasWidth = 0.5 }, false},
		{"canvas too large", func(s *Settings) { s.CanvasHeight = 20.5 }, false},
		{"tile zero", func(s *Settings) { s.TileSize = 0 }, false},
		{"tile NaN", func(s *Settings) { s.TileSize = math.NaN() }, false},
		{"canvas Inf", func(s *Settings) { s.CanvasWidth = math.Inf(1) }, false},
		{"bad shape", func(s *Settings) { s.TileShape = Shape(7) }, false},
		{"bad metric", func(s *Settings) { s.ColorMatching = matcher.Metric(-1) }, false},
		{"bad sampling", func(s *Settings) { s.Sampling = Sampling(3) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate: unexpected error %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Validate: got %v, want ErrInvalidSettings", err)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range Shapes() {
		got, err := ParseShape(s.String())
		if err != nil || got != s {
			t.Errorf("ParseShape(%q): got %v, %v", s.String(), got, err)
		}
	}
	if got, err := ParseShape("Hexagon"); err != nil || got != ShapeHexagon {
		t.Errorf("ParseShape(Hexagon): got %v, %v", got, err)
	}
	if _, err := ParseShape("star"); err == nil {
		t.Error("ParseShape(star): expected error")
	}
}

func TestParseSampling(t *testing.T) {
	if got, err := ParseSampling("AREA"); err != nil || got != SamplingArea {
		t.Errorf("ParseSampling(AREA): got %v, %v", got, err)
	}
	if _, err := ParseSampling("bilinear"); err == nil {
		t.Error("ParseSampling(bilinear): expected error")
	}
}

func TestSettings_JSON(t *testing.T) {
	s := DefaultSettings()
	in := `{"canvasWidth":12,"tileShape":"hexagon","colorMatching":"lab","sampling":"area"}`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.CanvasWidth != 12 || s.CanvasHeight != 11 {
		t.Errorf("canvas: got %vx%v, want 12x11", s.CanvasWidth, s.CanvasHeight)
	}
	if s.TileShape != ShapeHexagon || s.ColorMatching != matcher.Lab || s.Sampling != SamplingArea {
		t.Errorf("variants: got %v %v %v", s.TileShape, s.ColorMatching, s.Sampling)
	}

	data, err := json.Marshal(DefaultSettings())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw failed: %v", err)
	}
	if raw["tileShape"] != "square" || raw["colorMatching"] != "nearest" || raw["antiAliasing"] != true {
		t.Errorf("Marshal: got %s", data)
	}

	if err := json.Unmarshal([]byte(`{"tileShape":"star"}`), &s); err == nil {
		t.Error("Unmarshal of unknown shape should fail")
	}
}
