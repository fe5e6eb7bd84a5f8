package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/mosaic-tools-mcp/internal/colorspace"
	"github.com/ironsheep/mosaic-tools-mcp/internal/imaging"
	"github.com/ironsheep/mosaic-tools-mcp/internal/matcher"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
	"github.com/ironsheep/mosaic-tools-mcp/internal/pipeline"
	"github.com/ironsheep/mosaic-tools-mcp/internal/render"
)

// maxPreviewWidth bounds mosaic_render previews.
const maxPreviewWidth = render.MaxPreviewSide

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "mosaic_generate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	if s.debug {
		log.Printf("tools/call %s (%d bytes of arguments)", params.Name, len(params.Arguments))
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tools/call %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the pipeline, palette or matcher packages
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	case "mosaic_quantize_palette":
		return s.handleQuantizePalette(args)
	case "mosaic_match_color":
		return s.handleMatchColor(args)

	case "mosaic_generate":
		return s.handleGenerate(args)
	case "mosaic_render":
		return s.handleRender(args)
	case "mosaic_export":
		return s.handleExport(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadSource returns the cached image at path, cropped to region when one
// is named.
func (s *Server) loadSource(path, region string) (image.Image, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if region == "" {
		return img, nil
	}
	return imaging.CropNamed(img, region)
}

func resolvePalette(hexes []string) (palette.Palette, error) {
	if len(hexes) == 0 {
		return palette.Default(), nil
	}
	p := palette.Parse(hexes)
	return p, p.Validate()
}

// === Source Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Palette and Matching Handlers ===

type quantizePaletteArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Region string `json:"region"`
	Sort   bool   `json:"sort"`
}

type paletteResult struct {
	Colors []string `json:"colors"`
	Count  int      `json:"count"`
}

func (s *Server) handleQuantizePalette(args json.RawMessage) (interface{}, error) {
	var a quantizePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = palette.DefaultSize
	}
	if a.Count < 1 || a.Count > palette.MaxColors {
		return nil, fmt.Errorf("%w: count %d (want 1-%d)", palette.ErrPaletteSize, a.Count, palette.MaxColors)
	}
	img, err := s.loadSource(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	p := palette.FromImage(img, a.Count)
	if a.Sort {
		p = palette.SortByLuminance(p)
	}
	return &paletteResult{Colors: p.Hex(), Count: len(p)}, nil
}

type matchColorArgs struct {
	Color   string                 `json:"color"`
	Path    string                 `json:"path"`
	Points  []imaging.LabeledPoint `json:"points"`
	Palette []string               `json:"palette"`
	Metric  string                 `json:"metric"`
}

// pointMatch is a sampled pixel with its closest palette entry.
type pointMatch struct {
	imaging.LabeledColorResult
	Match matcher.Match `json:"match"`
}

func (s *Server) handleMatchColor(args json.RawMessage) (interface{}, error) {
	var a matchColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	metric := matcher.Nearest
	if a.Metric != "" {
		m, err := matcher.ParseMetric(a.Metric)
		if err != nil {
			return nil, err
		}
		metric = m
	}
	p, err := resolvePalette(a.Palette)
	if err != nil {
		return nil, err
	}
	mt := matcher.New(p, metric)

	if a.Color != "" {
		match, _ := mt.Describe(colorspace.HexToRGB(a.Color))
		return match, nil
	}

	if a.Path == "" || len(a.Points) == 0 {
		return nil, errors.New("either color or path with points is required")
	}
	img, err := s.loadSource(a.Path, "")
	if err != nil {
		return nil, err
	}
	samples, err := imaging.SampleColorsMulti(img, a.Points)
	if err != nil {
		return nil, err
	}
	out := make([]pointMatch, len(samples))
	for i, sample := range samples {
		match, _ := mt.Describe(sample.Color.RGB)
		out[i] = pointMatch{LabeledColorResult: sample, Match: match}
	}
	return out, nil
}

// === Mosaic Handlers ===

type generateArgs struct {
	Path     string          `json:"path"`
	Region   string          `json:"region"`
	Settings json.RawMessage `json:"settings"`
	Palette  []string        `json:"palette"`
	Colors   int             `json:"colors"`
}

func (s *Server) handleGenerate(args json.RawMessage) (interface{}, error) {
	var a generateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	settings, err := pipeline.DecodeSettings(a.Settings)
	if err != nil {
		return nil, err
	}
	img, err := s.loadSource(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	return pipeline.Generate(img, pipeline.Options{
		Settings: settings,
		Palette:  a.Palette,
		Colors:   a.Colors,
	})
}

type renderArgs struct {
	Mosaic       json.RawMessage `json:"mosaic"`
	Mode         string          `json:"mode"`
	Legend       bool            `json:"legend"`
	PreviewWidth int             `json:"preview_width"`
	Format       string          `json:"format"`
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PreviewWidth < 0 || a.PreviewWidth > maxPreviewWidth {
		return nil, fmt.Errorf("preview_width %d outside 0-%d", a.PreviewWidth, maxPreviewWidth)
	}
	mode := render.ModeColored
	if a.Mode != "" {
		m, err := render.ParseMode(a.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	format, err := imaging.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	m, err := pipeline.DecodeMosaic(a.Mosaic)
	if err != nil {
		return nil, err
	}

	img, err := pipeline.Render(m, pipeline.RenderOptions{Mode: mode, Legend: a.Legend, PreviewWidth: a.PreviewWidth})
	if err != nil {
		return nil, err
	}
	return imaging.EncodeBase64(img, format)
}

type exportArgs struct {
	Mosaic    json.RawMessage `json:"mosaic"`
	Kind      string          `json:"kind"`
	OutputDir string          `json:"output_dir"`
	Format    string          `json:"format"`
}

type exportedSheet struct {
	Name string      `json:"name"`
	Mode render.Mode `json:"mode"`
	*imaging.EncodedImage
}

type exportResult struct {
	Files  []string        `json:"files,omitempty"`
	Sheets []exportedSheet `json:"sheets,omitempty"`
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind := render.ExportBoth
	if a.Kind != "" {
		k, err := render.ParseExportKind(a.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	format, err := imaging.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	m, err := pipeline.DecodeMosaic(a.Mosaic)
	if err != nil {
		return nil, err
	}

	sheets, err := pipeline.Export(m, kind)
	if err != nil {
		return nil, err
	}

	if a.OutputDir != "" {
		files, err := pipeline.WriteSheets(a.OutputDir, sheets, format)
		if err != nil {
			return nil, err
		}
		return &exportResult{Files: files}, nil
	}

	out := &exportResult{Sheets: make([]exportedSheet, 0, len(sheets))}
	for _, sh := range sheets {
		enc, err := imaging.EncodeBase64(sh.Image, format)
		if err != nil {
			return nil, err
		}
		out.Sheets = append(out.Sheets, exportedSheet{Name: pipeline.SheetName(sh, format), Mode: sh.Mode, EncodedImage: enc})
	}
	return out, nil
}
