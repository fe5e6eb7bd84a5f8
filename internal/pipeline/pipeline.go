// Package pipeline runs the photo-to-mosaic steps shared by the MCP server,
// the HTTP API and the command line: palette selection, canvas fitting,
// grid building, rendering and export.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/mosaic-tools-mcp/internal/imaging"
	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
	"github.com/ironsheep/mosaic-tools-mcp/internal/render"
)

// ErrNoMosaic is returned when a render or export is asked for without a grid.
var ErrNoMosaic = errors.New("no mosaic grid")

// Options configures Generate.
type Options struct {
	Settings mosaic.Settings

	// Palette is an explicit list of hex colors. It takes precedence over
	// Colors.
	Palette []string

	// Colors, when positive, extracts that many colors from the photo by
	// median cut. With neither Palette nor Colors the default palette is used.
	Colors int

	// DPI of the canvas the photo is fitted onto before sampling. Zero means
	// imaging.DefaultDPI.
	DPI int
}

// Mosaic is a built grid together with everything needed to render it
// again later: the palette as hex strings and the settings.
type Mosaic struct {
	mosaic.Result
	Palette  []string        `json:"palette"`
	Settings mosaic.Settings `json:"settings"`
}

// Colors returns the mosaic palette.
func (m *Mosaic) Colors() palette.Palette {
	return palette.Parse(m.Palette)
}

// DecodeSettings reads JSON settings over mosaic.DefaultSettings, so
// omitted fields keep their defaults. Empty input gives the defaults.
func DecodeSettings(data []byte) (mosaic.Settings, error) {
	s := mosaic.DefaultSettings()
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// DecodeMosaic reads a Mosaic as produced by Generate. Settings missing from
// the input take their defaults.
func DecodeMosaic(data []byte) (*Mosaic, error) {
	if len(data) == 0 {
		return nil, ErrNoMosaic
	}
	m := &Mosaic{Settings: mosaic.DefaultSettings()}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("invalid mosaic: %w", err)
	}
	return m, nil
}

// ResolvePalette picks the palette for a generation: hexes when given,
// otherwise colors extracted from img, otherwise palette.Default().
func ResolvePalette(img image.Image, hexes []string, colors int) (palette.Palette, error) {
	var p palette.Palette
	switch {
	case len(hexes) > 0:
		p = palette.Parse(hexes)
	case colors > palette.MaxColors:
		return nil, fmt.Errorf("%w: %d colors requested, max %d", palette.ErrPaletteSize, colors, palette.MaxColors)
	case colors > 0:
		if img == nil {
			return nil, fmt.Errorf("%w: no image to extract colors from", mosaic.ErrInvalidPixels)
		}
		p = palette.FromImage(img, colors)
	default:
		p = palette.Default()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Generate fits img onto the physical canvas and builds its mosaic grid.
func Generate(img image.Image, opts Options) (*Mosaic, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", mosaic.ErrInvalidPixels)
	}
	s := opts.Settings
	if err := s.Validate(); err != nil {
		return nil, err
	}

	p, err := ResolvePalette(img, opts.Palette, opts.Colors)
	if err != nil {
		return nil, err
	}

	fitted, err := imaging.FitToCanvas(img, s.CanvasWidth, s.CanvasHeight, opts.DPI)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare canvas: %w", err)
	}

	res, err := mosaic.Build(mosaic.NewPixelBuffer(fitted), s, p)
	if err != nil {
		return nil, err
	}
	return &Mosaic{Result: *res, Palette: p.Hex(), Settings: s}, nil
}

// RenderOptions configures Render.
type RenderOptions struct {
	Mode   render.Mode
	Legend bool

	// PreviewWidth, when positive, renders a screen preview that many
	// pixels wide. Otherwise the image is rendered at print size.
	PreviewWidth int
}

// Render draws m as a single image.
func Render(m *Mosaic, opts RenderOptions) (image.Image, error) {
	if err := check(m); err != nil {
		return nil, err
	}
	if opts.PreviewWidth > 0 {
		w, h := render.PreviewSize(m.Grid.Dimensions(), opts.PreviewWidth)
		ro := render.PreviewOptions(opts.Mode)
		ro.Legend = opts.Legend
		return render.RenderImage(w, h, m.Grid, m.Colors(), m.Settings, ro)
	}
	w, h := render.ExportSize(m.Settings)
	return render.RenderImage(w, h, m.Grid, m.Colors(), m.Settings, render.ExportOptions(opts.Mode, opts.Legend))
}

// Export renders the print sheets of m.
func Export(m *Mosaic, kind render.ExportKind) ([]render.Sheet, error) {
	if err := check(m); err != nil {
		return nil, err
	}
	return render.Export(m.Grid, m.Colors(), m.Settings, kind)
}

// SheetName returns the file name of a sheet written in format f.
func SheetName(sh render.Sheet, f imaging.Format) string {
	return strings.TrimSuffix(sh.Name, filepath.Ext(sh.Name)) + f.Ext()
}

// WriteSheets saves sheets into dir, creating it if needed, and returns the
// written paths in sheet order.
func WriteSheets(dir string, sheets []render.Sheet, f imaging.Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	paths := make([]string, 0, len(sheets))
	for _, sh := range sheets {
		path := filepath.Join(dir, SheetName(sh, f))
		if err := imaging.Save(path, sh.Image, f); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// check rejects a missing grid, invalid settings and a grid whose size is
// not the one the settings imply.
func check(m *Mosaic) error {
	if m == nil || m.Grid == nil {
		return ErrNoMosaic
	}
	if err := m.Settings.Validate(); err != nil {
		return err
	}
	want, err := mosaic.Dimensions(m.Settings)
	if err != nil {
		return err
	}
	if got := m.Grid.Dimensions(); got != want {
		return fmt.Errorf("%w: grid is %dx%d, settings imply %dx%d",
			render.ErrGridMismatch, got.Width, got.Height, want.Width, want.Height)
	}
	return nil
}
