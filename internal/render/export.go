package render

import (
	"encoding/json"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
)

// ExportKind selects which print files an export produces.
type ExportKind int

const (
	// ExportColored is the colored reference sheet.
	ExportColored ExportKind = iota
	// ExportNumbered is the numbered outline sheet with its legend.
	ExportNumbered
	// ExportBoth produces both sheets, colored first.
	ExportBoth
)

var exportNames = [...]string{
	ExportColored:  "colored",
	ExportNumbered: "numbered",
	ExportBoth:     "both",
}

func (k ExportKind) String() string {
	if k < 0 || int(k) >= len(exportNames) {
		return fmt.Sprintf("ExportKind(%d)", int(k))
	}
	return exportNames[k]
}

// ParseExportKind accepts "colored", "numbered" or "both".
func ParseExportKind(s string) (ExportKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range exportNames {
		if n == name {
			return ExportKind(i), nil
		}
	}
	return ExportColored, fmt.Errorf("unknown export %q (want colored, numbered or both)", s)
}

func (k ExportKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ExportKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseExportKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Sheet is one rendered export page.
type Sheet struct {
	// Name is the suggested file name, e.g. "mosaic-colored.png".
	Name  string
	Mode  Mode
	Image image.Image
}

// Export renders print sheets at ExportSize(settings).
//
// The colored sheet uses ModeColored without a legend; the numbered sheet
// uses ModeNumbered with the legend. Both use ExportTextScale.
func Export(grid *mosaic.Grid, p palette.Palette, settings mosaic.Settings, kind ExportKind) ([]Sheet, error) {
	var modes []Mode
	switch kind {
	case ExportColored:
		modes = []Mode{ModeColored}
	case ExportNumbered:
		modes = []Mode{ModeNumbered}
	case ExportBoth:
		modes = []Mode{ModeColored, ModeNumbered}
	default:
		return nil, fmt.Errorf("unknown export %v", kind)
	}

	width, height := ExportSize(settings)
	sheets := make([]Sheet, 0, len(modes))
	for _, m := range modes {
		img, err := RenderImage(width, height, grid, p, settings, ExportOptions(m, m == ModeNumbered))
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, Sheet{Name: "mosaic-" + m.String() + ".png", Mode: m, Image: img})
	}
	return sheets, nil
}

// RenderImage renders grid onto a fresh Canvas of width x height and
// returns the pixels.
func RenderImage(width, height int, grid *mosaic.Grid, p palette.Palette, settings mosaic.Settings, opts Options) (image.Image, error) {
	canvas, err := NewCanvas(width, height)
	if err != nil {
		return nil, err
	}
	defer canvas.Close()

	if err := Render(canvas, grid, p, settings, opts); err != nil {
		return nil, err
	}
	return canvas.Image(), nil
}
