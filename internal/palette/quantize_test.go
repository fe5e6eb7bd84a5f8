package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
)

func repeat(c colorspace.RGB, n int) []colorspace.RGB {
	out := make([]colorspace.RGB, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestQuantize_SingleColor(t *testing.T) {
	c := colorspace.RGB{R: 100, G: 150, B: 200}

	got := Quantize([]colorspace.RGB{c}, 4)
	want := Palette{c, c, c, c}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Quantize single pixel mismatch (-want +got):\n%s", diff)
	}

	got = Quantize(repeat(c, 4), 2)
	if diff := cmp.Diff(Palette{c, c}, got); diff != "" {
		t.Errorf("Quantize uniform population mismatch (-want +got):\n%s", diff)
	}
}

func TestQuantize_Empty(t *testing.T) {
	got := Quantize(nil, 8)
	if diff := cmp.Diff(Palette{colorspace.Black}, got); diff != "" {
		t.Errorf("Quantize(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestQuantize_ExactCount(t *testing.T) {
	var pixels []colorspace.RGB
	for i := 0; i < 97; i++ {
		pixels = append(pixels, colorspace.RGB{R: uint8(i * 2), G: uint8(255 - i), B: uint8(i * 7 % 256)})
	}

	for k := 1; k <= MaxColors; k++ {
		if got := Quantize(pixels, k); len(got) != k {
			t.Errorf("Quantize(97 pixels, %d): got %d colors", k, len(got))
		}
	}

	// More colors than pixels still yields exactly k.
	few := pixels[:3]
	if got := Quantize(few, 10); len(got) != 10 {
		t.Errorf("Quantize(3 pixels, 10): got %d colors", len(got))
	}
}

func TestQuantize_Split(t *testing.T) {
	pixels := []colorspace.RGB{
		{R: 210}, {R: 0}, {R: 200}, {R: 10},
	}

	tests := []struct {
		name  string
		count int
		want  Palette
	}{
		{"one", 1, Palette{{R: 105}}},
		{"two", 2, Palette{{R: 5}, {R: 205}}},
		{"three", 3, Palette{{R: 0}, {R: 10}, {R: 205}}},
		{"four", 4, Palette{{R: 0}, {R: 10}, {R: 200}, {R: 210}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantize(pixels, tt.count)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Quantize(%d) mismatch (-want +got):\n%s", tt.count, diff)
			}
		})
	}

	// The caller's slice keeps its order.
	if pixels[0] != (colorspace.RGB{R: 210}) {
		t.Errorf("Quantize reordered its input: %+v", pixels)
	}
}

func TestQuantize_RoundsHalfUp(t *testing.T) {
	got := Quantize([]colorspace.RGB{{}, {R: 1, G: 1, B: 1}}, 1)
	want := Palette{{R: 1, G: 1, B: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Quantize average mismatch (-want +got):\n%s", diff)
	}
}

func TestQuantize_Deterministic(t *testing.T) {
	var pixels []colorspace.RGB
	for i := 0; i < 300; i++ {
		pixels = append(pixels, colorspace.RGB{R: uint8(i * 31), G: uint8(i * 17), B: uint8(i * 13)})
	}
	first := Quantize(pixels, 12)
	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(first, Quantize(pixels, 12)); diff != "" {
			t.Fatalf("Quantize is not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestWidestChannel(t *testing.T) {
	tests := []struct {
		name   string
		bucket []colorspace.RGB
		want   channel
	}{
		{"red widest", []colorspace.RGB{{}, {R: 90, G: 10, B: 10}}, channelR},
		{"green widest", []colorspace.RGB{{}, {R: 10, G: 90, B: 10}}, channelG},
		{"blue widest", []colorspace.RGB{{}, {R: 10, G: 10, B: 90}}, channelB},
		{"all equal prefers red", []colorspace.RGB{{}, {R: 50, G: 50, B: 50}}, channelR},
		{"green ties blue", []colorspace.RGB{{}, {R: 5, G: 50, B: 50}}, channelG},
		{"no range", repeat(colorspace.RGB{R: 9, G: 9, B: 9}, 3), channelR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := widestChannel(tt.bucket); got != tt.want {
				t.Errorf("widestChannel: got %d, want %d", got, tt.want)
			}
		})
	}
}

// createSplitImage fills the left half with left and the right half with right.
func createSplitImage(width, height int, left, right color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func TestSamplePixels(t *testing.T) {
	img := createSplitImage(100, 100, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})

	all := SamplePixels(img, 0)
	if len(all) != 10000 {
		t.Errorf("SamplePixels(unbounded): got %d, want 10000", len(all))
	}

	some := SamplePixels(img, 2500)
	if len(some) == 0 || len(some) > 2500 {
		t.Errorf("SamplePixels(2500): got %d samples", len(some))
	}

	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if got := SamplePixels(empty, 10); got != nil {
		t.Errorf("SamplePixels(empty): got %d samples, want none", len(got))
	}
}

func TestFromImage(t *testing.T) {
	img := createSplitImage(10, 10, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})

	got := FromImage(img, 2)
	want := Palette{{B: 255}, {R: 255}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromImage mismatch (-want +got):\n%s", diff)
	}
}
