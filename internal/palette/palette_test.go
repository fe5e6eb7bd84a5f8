package palette

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
)

func TestDefault(t *testing.T) {
	p := Default()
	if len(p) != DefaultSize {
		t.Fatalf("Default: got %d colors, want %d", len(p), DefaultSize)
	}
	if got, want := p[0], (colorspace.RGB{R: 0xFF, G: 0x6B, B: 0x6B}); got != want {
		t.Errorf("Default()[0]: got %+v, want %+v", got, want)
	}
	if got, want := p[23].Hex(), "#fcf3cf"; got != want {
		t.Errorf("Default()[23]: got %s, want %s", got, want)
	}

	// Callers get their own copy.
	p[0] = colorspace.Black
	if Default()[0] == colorspace.Black {
		t.Error("Default: mutation of a returned palette leaked into later calls")
	}
}

func TestParse(t *testing.T) {
	got := Parse([]string{"#ff0000", "00FF00", "nope", "#0000ff"})
	want := Palette{
		{R: 255},
		{G: 255},
		colorspace.Black,
		{B: 255},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestPalette_Hex(t *testing.T) {
	p := Palette{{R: 255, G: 107, B: 107}, colorspace.White}
	want := []string{"#ff6b6b", "#ffffff"}
	if diff := cmp.Diff(want, p.Hex()); diff != "" {
		t.Errorf("Hex mismatch (-want +got):\n%s", diff)
	}
}

func TestPalette_Validate(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, true},
		{"single", 1, false},
		{"default size", DefaultSize, false},
		{"max", MaxColors, false},
		{"too many", MaxColors + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := make(Palette, tt.size).Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrPaletteSize) {
					t.Errorf("Validate(%d): got %v, want ErrPaletteSize", tt.size, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate(%d): unexpected error %v", tt.size, err)
			}
		})
	}
}

func TestPalette_Resize(t *testing.T) {
	p := Palette{colorspace.White, {R: 1}, {R: 2}}

	if got := p.Resize(2); len(got) != 2 || got[1] != (colorspace.RGB{R: 1}) {
		t.Errorf("Resize(2): got %+v", got)
	}
	got := p.Resize(5)
	want := Palette{colorspace.White, {R: 1}, {R: 2}, colorspace.Black, colorspace.Black}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resize(5) mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByLuminance(t *testing.T) {
	red := colorspace.RGB{R: 255}
	green := colorspace.RGB{G: 255}
	p := Palette{colorspace.White, green, colorspace.Black, red}

	got := SortByLuminance(p)
	want := Palette{colorspace.Black, red, green, colorspace.White}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortByLuminance mismatch (-want +got):\n%s", diff)
	}

	// Input order is untouched.
	if p[0] != colorspace.White {
		t.Errorf("SortByLuminance modified its input: %+v", p)
	}
}
