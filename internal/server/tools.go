package server

import (
	"github.com/ironsheep/mosaic-tools-mcp/internal/imaging"
	"github.com/ironsheep/mosaic-tools-mcp/internal/matcher"
	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
	"github.com/ironsheep/mosaic-tools-mcp/internal/render"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var regionNames = []string{"full", "top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"}

func names[T interface{ String() string }](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image (PNG, JPEG or BMP)",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        regionNames,
		"description": "Optional named region of the image to use. Default full",
	}
}

func paletteProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"maxItems":    palette.MaxColors,
		"description": "Palette as hex colors (#rrggbb). Defaults to the built-in 24-color palette",
	}
}

func settingsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Mosaic settings. Omitted fields keep their defaults (8.5 x 11 in, 4 mm square tiles, nearest matching)",
		"properties": map[string]interface{}{
			"canvasWidth": map[string]interface{}{
				"type":        "number",
				"minimum":     mosaic.MinCanvasInches,
				"maximum":     mosaic.MaxCanvasInches,
				"description": "Canvas width in inches",
			},
			"canvasHeight": map[string]interface{}{
				"type":        "number",
				"minimum":     mosaic.MinCanvasInches,
				"maximum":     mosaic.MaxCanvasInches,
				"description": "Canvas height in inches",
			},
			"tileSize": map[string]interface{}{
				"type":        "number",
				"minimum":     mosaic.MinTileMM,
				"maximum":     mosaic.MaxTileMM,
				"description": "Tile edge in millimetres",
			},
			"tileShape": map[string]interface{}{
				"type": "string",
				"enum": names(mosaic.Shapes()),
			},
			"colorMatching": map[string]interface{}{
				"type": "string",
				"enum": names(matcher.Metrics()),
			},
			"sampling": map[string]interface{}{
				"type":        "string",
				"enum":        []string{mosaic.SamplingPoint.String(), mosaic.SamplingArea.String()},
				"description": "point takes one pixel per tile, area averages the tile's pixels",
			},
			"antiAliasing": map[string]interface{}{"type": "boolean"},
			"dithering":    map[string]interface{}{"type": "boolean"},
		},
	}
}

func mosaicProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "A mosaic as returned by mosaic_generate (grid, palette and settings)",
		"properties": map[string]interface{}{
			"grid": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}},
				"description": "Rows of 0-based palette indices",
			},
			"palette":  paletteProperty(),
			"settings": settingsProperty(),
		},
		"required": []string{"grid", "palette"},
	}
}

func formatProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{string(imaging.FormatPNG), string(imaging.FormatJPEG), string(imaging.FormatBMP)},
		"description": "Image format. Default png",
		"default":     string(imaging.FormatPNG),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source images
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and aspect ratio. The image is cached for subsequent mosaic calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Palette and color matching
		{
			Name:        "mosaic_quantize_palette",
			Description: "Extract a palette of representative colors from an image with median-cut quantization. Returns exactly count colors as hex strings.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     palette.MaxColors,
						"description": "Number of colors to extract. Default 24",
						"default":     palette.DefaultSize,
					},
					"region": regionProperty(),
					"sort": map[string]interface{}{
						"type":        "boolean",
						"description": "Sort the palette from dark to light",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "mosaic_match_color",
			Description: "Find the closest palette entry for a color, or for pixels sampled from an image. Reports the 1-based paint number and the distance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color to match (#rrggbb). Either color or path with points is required",
					},
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Pixels of the image at path to sample and match",
					},
					"palette": paletteProperty(),
					"metric": map[string]interface{}{
						"type":        "string",
						"enum":        names(matcher.Metrics()),
						"description": "Distance metric. Default nearest",
						"default":     matcher.Nearest.String(),
					},
				},
			},
		},

		// Mosaic generation and output
		{
			Name:        "mosaic_generate",
			Description: "Convert an image into a paint-by-numbers grid. The photo is fitted onto the physical canvas, divided into tiles and each tile is matched to a palette color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"region":   regionProperty(),
					"settings": settingsProperty(),
					"palette":  paletteProperty(),
					"colors": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     palette.MaxColors,
						"description": "Extract this many colors from the image instead of using palette",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "mosaic_render",
			Description: "Render a mosaic as an image and return it as base64. Without preview_width the image is rendered at print size (300 dpi).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mosaic": mosaicProperty(),
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        names(render.Modes()),
						"description": "colored fills tiles, numbered draws outlines with paint numbers, split does both. Default colored",
						"default":     render.ModeColored.String(),
					},
					"legend": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the color legend at the top right",
						"default":     false,
					},
					"preview_width": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     maxPreviewWidth,
						"description": "Render a screen preview this many pixels wide",
					},
					"format": formatProperty(),
				},
				"required": []string{"mosaic"},
			},
		},
		{
			Name:        "mosaic_export",
			Description: "Render print sheets of a mosaic at 300 dpi: the colored picture, the numbered template with its legend, or both. Files are written to output_dir, or returned as base64 when no directory is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mosaic": mosaicProperty(),
					"kind": map[string]interface{}{
						"type":    "string",
						"enum":    []string{render.ExportColored.String(), render.ExportNumbered.String(), render.ExportBoth.String()},
						"default": render.ExportBoth.String(),
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write the sheets to",
					},
					"format": formatProperty(),
				},
				"required": []string{"mosaic"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
