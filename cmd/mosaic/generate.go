package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/mosaic-tools-mcp/internal/imaging"
	"github.com/ironsheep/mosaic-tools-mcp/internal/pipeline"
	"github.com/ironsheep/mosaic-tools-mcp/internal/render"
)

// mosaicFile is the name of the grid written by generate --json.
const mosaicFile = "mosaic.json"

var generateCmd = &cobra.Command{
	Use:   "generate PHOTO",
	Short: "Build a mosaic from a photo and write its print sheets",
	Long: `Build a mosaic from a photo and write its print sheets.

The photo is fitted onto the canvas at 300 DPI, reduced to one palette color
per tile and rendered as a colored sheet, a numbered sheet with a color
legend, or both.

Examples:
  mosaic generate photo.jpg
  mosaic generate photo.jpg --mode numbered --format jpeg -o sheets/
  mosaic generate photo.jpg --palette '#000000,#ffffff' --tile-shape circle --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(viper.GetViper(), args[0], cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addSettingsFlags(generateCmd.Flags())

	generateCmd.Flags().StringP("mode", "m", render.ExportBoth.String(), "sheets to write (colored|numbered|both)")
	generateCmd.Flags().Bool("legend", true, "draw the color legend on the numbered sheet")
	generateCmd.Flags().StringP("format", "f", string(imaging.FormatPNG), "image format (png|jpeg|bmp)")
	generateCmd.Flags().StringP("output", "o", ".", "output directory")
	generateCmd.Flags().Bool("json", false, "also write the grid and palette as "+mosaicFile)

	viper.BindPFlag("mode", generateCmd.Flags().Lookup("mode"))
	viper.BindPFlag("legend", generateCmd.Flags().Lookup("legend"))
	viper.BindPFlag("format", generateCmd.Flags().Lookup("format"))
	viper.BindPFlag("output", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("json", generateCmd.Flags().Lookup("json"))
}

func runGenerate(v *viper.Viper, photo string, stderr io.Writer) error {
	settings, err := settingsFrom(v)
	if err != nil {
		return err
	}
	colors, err := colorsFrom(v)
	if err != nil {
		return err
	}
	kind, err := render.ParseExportKind(v.GetString("mode"))
	if err != nil {
		return err
	}
	format, err := imaging.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}
	outDir := v.GetString("output")
	if outDir == "" {
		outDir = "."
	}
	verbose := v.GetBool("verbose")

	img, err := imaging.NewImageCache().Load(photo)
	if err != nil {
		return err
	}
	if verbose {
		b := img.Bounds()
		log.Printf("loaded %s (%dx%d)", photo, b.Dx(), b.Dy())
	}

	m, err := pipeline.Generate(img, pipeline.Options{
		Settings: settings,
		Palette:  paletteFrom(v),
		Colors:   colors,
	})
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("grid %dx%d, %d of %d colors used", m.GridDimensions.Width, m.GridDimensions.Height, m.UsedColors, len(m.Palette))
	}

	sheets, err := pipeline.Export(m, kind)
	if err != nil {
		return err
	}
	if v.IsSet("legend") && !v.GetBool("legend") {
		if err := dropLegend(m, sheets); err != nil {
			return err
		}
	}

	paths, err := pipeline.WriteSheets(outDir, sheets, format)
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		path, err := writeMosaicJSON(outDir, m)
		if err != nil {
			return err
		}
		paths = append(paths, path)
	}

	fmt.Fprintf(stderr, "Mosaic %dx%d (%d tiles, %d colors)\n",
		m.GridDimensions.Width, m.GridDimensions.Height, m.TotalTiles, m.UsedColors)
	for _, p := range paths {
		fmt.Fprintf(stderr, "  wrote %s\n", p)
	}
	return nil
}

// dropLegend re-renders the numbered sheets without the legend panel.
func dropLegend(m *pipeline.Mosaic, sheets []render.Sheet) error {
	for i, sh := range sheets {
		if sh.Mode != render.ModeNumbered {
			continue
		}
		img, err := pipeline.Render(m, pipeline.RenderOptions{Mode: render.ModeNumbered})
		if err != nil {
			return err
		}
		sheets[i].Image = img
	}
	return nil
}

func writeMosaicJSON(dir string, m *pipeline.Mosaic) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode mosaic: %w", err)
	}
	path := filepath.Join(dir, mosaicFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
