package render

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
)

var (
	red   = colorspace.RGB{R: 255}
	green = colorspace.RGB{G: 255}
	blue  = colorspace.RGB{B: 255}
)

func testGrid() (*mosaic.Grid, palette.Palette) {
	g := &mosaic.Grid{Width: 2, Height: 2, Cells: []int{0, 2, 2, 0}}
	return g, palette.Palette{red, green, blue}
}

func squareSettings() mosaic.Settings {
	s := mosaic.DefaultSettings()
	s.TileShape = mosaic.ShapeSquare
	return s
}

func TestRender_Colored(t *testing.T) {
	g, p := testGrid()
	r := newRecorder(100, 80)

	if err := Render(r, g, p, squareSettings(), PreviewOptions(ModeColored)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// background + (fill, stroke) per cell
	if len(r.ops) != 1+2*4 {
		t.Fatalf("ops: got %d, want 9", len(r.ops))
	}
	bg := r.ops[0]
	if bg.kind != opFill || bg.color != colorspace.White {
		t.Errorf("first op: got %+v, want white fill", bg)
	}
	if diff := cmp.Diff(Rect(0, 0, 100, 80), bg.path); diff != "" {
		t.Errorf("background mismatch (-want +got):\n%s", diff)
	}

	wantFills := []colorspace.RGB{red, blue, blue, red}
	for i, want := range wantFills {
		fill, stroke := r.ops[1+2*i], r.ops[2+2*i]
		if fill.kind != opFill || fill.color != want {
			t.Errorf("cell %d fill: got %+v, want %+v", i, fill, want)
		}
		if stroke.kind != opStroke || stroke.color != colorspace.Black || stroke.width != OutlineWidth {
			t.Errorf("cell %d stroke: got %+v", i, stroke)
		}
	}

	// Row-major: second cell sits at x=50, y=0 with the 1-unit inset.
	if diff := cmp.Diff(Rect(51, 1, 48, 38), r.ops[3].path); diff != "" {
		t.Errorf("cell (0,1) path mismatch (-want +got):\n%s", diff)
	}
	if r.count(opText) != 0 {
		t.Errorf("colored mode drew %d texts", r.count(opText))
	}
}

func TestRender_Numbered(t *testing.T) {
	g, p := testGrid()
	r := newRecorder(100, 80)

	if err := Render(r, g, p, squareSettings(), PreviewOptions(ModeNumbered)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if got := r.count(opFill); got != 1 {
		t.Errorf("numbered mode fills: got %d, want only the background", got)
	}
	if got := r.count(opStroke); got != 4 {
		t.Errorf("strokes: got %d, want 4", got)
	}

	texts := r.texts()
	wantText := []string{"1", "3", "3", "1"}
	wantAt := []Point{{25, 20}, {75, 20}, {25, 60}, {75, 60}}
	if len(texts) != 4 {
		t.Fatalf("texts: got %d, want 4", len(texts))
	}
	for i, o := range texts {
		if o.text != wantText[i] || o.at != wantAt[i] {
			t.Errorf("text %d: got %q at %+v, want %q at %+v", i, o.text, o.at, wantText[i], wantAt[i])
		}
		if math.Abs(o.size-0.6*40) > 1e-9 {
			t.Errorf("text %d size: got %v, want 24", i, o.size)
		}
		if o.color != colorspace.Black || o.align != AlignCenter {
			t.Errorf("text %d style: got %+v", i, o)
		}
	}
}

func TestRender_Split(t *testing.T) {
	g, p := testGrid()
	r := newRecorder(100, 100)

	opts := Options{Mode: ModeSplit, TextScale: ExportTextScale}
	if err := Render(r, g, p, squareSettings(), opts); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if got := r.count(opFill); got != 5 {
		t.Errorf("fills: got %d, want 5", got)
	}
	if got := r.count(opStroke); got != 4 {
		t.Errorf("strokes: got %d, want 4", got)
	}
	for _, o := range r.texts() {
		if o.color != colorspace.Black {
			t.Errorf("split numeral color: got %+v, want black", o.color)
		}
		if math.Abs(o.size-0.4*50) > 1e-9 {
			t.Errorf("split numeral size: got %v, want 20", o.size)
		}
	}
	// Per-cell order is fill, stroke, text.
	if r.ops[1].kind != opFill || r.ops[2].kind != opStroke || r.ops[3].kind != opText {
		t.Errorf("cell op order: got %v %v %v", r.ops[1].kind, r.ops[2].kind, r.ops[3].kind)
	}
}

func TestRender_DefaultTextScale(t *testing.T) {
	g, p := testGrid()
	r := newRecorder(100, 100)
	if err := Render(r, g, p, squareSettings(), Options{Mode: ModeNumbered}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := r.texts()[0].size; math.Abs(got-PreviewTextScale*50) > 1e-9 {
		t.Errorf("default text size: got %v, want %v", got, PreviewTextScale*50)
	}
}

func TestRender_ShapesUseGeometry(t *testing.T) {
	g, p := testGrid()
	for _, shape := range mosaic.Shapes() {
		t.Run(shape.String(), func(t *testing.T) {
			s := squareSettings()
			s.TileShape = shape
			r := newRecorder(60, 60)
			if err := Render(r, g, p, s, PreviewOptions(ModeColored)); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			want := TileGeometry(shape, Cell{Row: 1, Col: 0, X: 0, Y: 30, W: 30, H: 30})
			if diff := cmp.Diff(want, r.ops[5].path); diff != "" {
				t.Errorf("cell (1,0) path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_Legend(t *testing.T) {
	g, p := testGrid()
	r := newRecorder(1000, 800)

	if err := Render(r, g, p, squareSettings(), ExportOptions(ModeNumbered, true)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	texts := r.texts()
	labels := texts[len(texts)-2:]
	if labels[0].text != "1: #ff0000" || labels[1].text != "3: #0000ff" {
		t.Errorf("legend labels: got %q, %q", labels[0].text, labels[1].text)
	}
	for i, o := range labels {
		want := Point{1000 - 220 + 30, 20 + float64(i)*30 + 10}
		if o.at != want || o.align != AlignLeft || o.size != 14 {
			t.Errorf("legend label %d: got %+v, want at %+v", i, o, want)
		}
	}

	x, y, w, h := LegendBounds(1000, 2)
	if x != 770 || y != 10 || w != 220 || h != 80 {
		t.Errorf("LegendBounds: got %v,%v %vx%v", x, y, w, h)
	}

	// Panel fill, panel stroke, then swatch fill/stroke per entry.
	panelAt := len(r.ops) - (2 + 3*2)
	if diff := cmp.Diff(Rect(770, 10, 220, 80), r.ops[panelAt].path); diff != "" {
		t.Errorf("panel mismatch (-want +got):\n%s", diff)
	}
	swatch := r.ops[panelAt+2]
	if swatch.color != red {
		t.Errorf("first swatch: got %+v, want red", swatch.color)
	}
	if diff := cmp.Diff(Rect(780, 20, 20, 20), swatch.path); diff != "" {
		t.Errorf("swatch mismatch (-want +got):\n%s", diff)
	}
}

func TestLegendEntries(t *testing.T) {
	g := &mosaic.Grid{Width: 3, Height: 2, Cells: []int{2, 0, 2, 2, 0, 2}}
	p := palette.Palette{red, green, blue}

	got := LegendEntries(g, p)
	want := []LegendEntry{
		{Index: 0, Number: 1, Hex: "#ff0000", Color: red, Tiles: 2},
		{Index: 2, Number: 3, Hex: "#0000ff", Color: blue, Tiles: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LegendEntries mismatch (-want +got):\n%s", diff)
	}
	if got[1].Label() != "3: #0000ff" {
		t.Errorf("Label: got %q", got[1].Label())
	}
}

func TestRender_GridMismatch(t *testing.T) {
	p := palette.Palette{red, green}

	tests := []struct {
		name string
		grid *mosaic.Grid
	}{
		{"nil", nil},
		{"empty", &mosaic.Grid{}},
		{"short cells", &mosaic.Grid{Width: 2, Height: 2, Cells: []int{0, 1, 0}}},
		{"index out of palette", &mosaic.Grid{Width: 2, Height: 1, Cells: []int{0, 2}}},
		{"negative index", &mosaic.Grid{Width: 1, Height: 1, Cells: []int{-1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder(10, 10)
			err := Render(r, tt.grid, p, squareSettings(), PreviewOptions(ModeColored))
			if !errors.Is(err, ErrGridMismatch) {
				t.Errorf("Render: got %v, want ErrGridMismatch", err)
			}
			if len(r.ops) != 0 {
				t.Errorf("Render drew %d ops before failing", len(r.ops))
			}
		})
	}
}

func TestRender_SurfaceError(t *testing.T) {
	g, p := testGrid()
	r := newRecorder(10, 10)
	r.failAt = 4

	err := Render(r, g, p, squareSettings(), PreviewOptions(ModeColored))
	if !errors.Is(err, errSurface) {
		t.Errorf("Render: got %v, want surface error", err)
	}
}

func TestRender_UnknownMode(t *testing.T) {
	g, p := testGrid()
	if err := Render(newRecorder(10, 10), g, p, squareSettings(), Options{Mode: Mode(9)}); err == nil {
		t.Error("Render with unknown mode should fail")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q): got %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("outline"); err == nil {
		t.Error("ParseMode(outline): expected error")
	}

	var v struct {
		M Mode `json:"m"`
	}
	if err := json.Unmarshal([]byte(`{"m":"split"}`), &v); err != nil || v.M != ModeSplit {
		t.Errorf("Unmarshal: got %v, %v", v.M, err)
	}
}

func TestSizes(t *testing.T) {
	w, h := ExportSize(mosaic.DefaultSettings())
	if w != 2550 || h != 3300 {
		t.Errorf("ExportSize: got %dx%d, want 2550x3300", w, h)
	}

	s := mosaic.DefaultSettings()
	s.CanvasWidth = 8.333
	if w, _ := ExportSize(s); w != 2500 {
		t.Errorf("ExportSize rounding: got %d, want 2500", w)
	}

	tests := []struct {
		dims         mosaic.GridDimensions
		viewport     int
		wantW, wantH int
	}{
		{mosaic.GridDimensions{Width: 53, Height: 69}, 800, 800, 1041},
		{mosaic.GridDimensions{Width: 20, Height: 10}, 800, 800, 400},
		{mosaic.GridDimensions{Width: 100, Height: 1}, 50, 50, 1},
		{mosaic.GridDimensions{}, 300, 300, 300},
		{mosaic.GridDimensions{Width: 25, Height: 508}, 4096, 201, MaxPreviewSide},
		{mosaic.GridDimensions{Width: 1, Height: 100000}, 4096, 1, MaxPreviewSide},
		{mosaic.GridDimensions{Width: 10, Height: 10}, 100000, MaxPreviewSide, MaxPreviewSide},
	}
	for _, tt := range tests {
		w, h := PreviewSize(tt.dims, tt.viewport)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("PreviewSize(%+v, %d): got %dx%d, want %dx%d", tt.dims, tt.viewport, w, h, tt.wantW, tt.wantH)
		}
	}
}
