// Package api serves mosaic generation and rendering over HTTP.
//
// Routes, mounted under /api/v1 by NewRouter:
//
//	GET  /health   liveness, version and uptime
//	POST /mosaics  photo (base64) to palette-index grid
//	POST /render   grid to a PNG, JPEG or BMP image
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ironsheep/mosaic-tools-mcp/internal/imaging"
	"github.com/ironsheep/mosaic-tools-mcp/internal/mosaic"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
	"github.com/ironsheep/mosaic-tools-mcp/internal/pipeline"
	"github.com/ironsheep/mosaic-tools-mcp/internal/render"
)

// MaxRequestBytes bounds request bodies. Photos arrive base64 encoded.
const MaxRequestBytes = 32 << 20

// MaxPreviewWidth bounds RenderRequest.PreviewWidth.
const MaxPreviewWidth = render.MaxPreviewSide

// Server implements the HTTP handlers.
type Server struct {
	startTime time.Time
	version   string
	maxBytes  int64
}

// NewServer creates a new server instance
func NewServer(version string) *Server {
	return &Server{
		startTime: time.Now(),
		version:   version,
		maxBytes:  MaxRequestBytes,
	}
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	uptime := int(time.Since(s.startTime).Seconds())

	response := HealthResponse{
		Status:    Healthy,
		Timestamp: time.Now(),
		Uptime:    &uptime,
		Version:   &s.version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// CreateMosaic builds the mosaic grid for an uploaded photo.
func (s *Server) CreateMosaic(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req MosaicRequest
	if !s.decodeRequest(w, r, &req, requestID) {
		return
	}
	if req.Image == "" {
		s.writeValidationErrorResponse(w, "image is required", requestID)
		return
	}

	img, err := imaging.DecodeBase64(req.Image)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_IMAGE", err.Error(), requestID, nil)
		return
	}
	settings, err := pipeline.DecodeSettings(req.Settings)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_SETTINGS", err.Error(), requestID, nil)
		return
	}

	m, err := pipeline.Generate(img, pipeline.Options{
		Settings: settings,
		Palette:  req.Palette,
		Colors:   req.Colors,
	})
	if err != nil {
		s.handlePipelineError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if requestID != nil {
		w.Header().Set("X-Request-ID", *requestID)
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(m); err != nil {
		log.Printf("Error encoding mosaic response: %v", err)
	}
}

// RenderMosaic draws a mosaic and returns the encoded image.
func (s *Server) RenderMosaic(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req RenderRequest
	if !s.decodeRequest(w, r, &req, requestID) {
		return
	}

	opts, format, err := s.validateRenderRequest(&req)
	if err != nil {
		s.writeValidationErrorResponse(w, err.Error(), requestID)
		return
	}

	m, err := pipeline.DecodeMosaic(req.Mosaic)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_MOSAIC", err.Error(), requestID, nil)
		return
	}

	img, err := pipeline.Render(m, opts)
	if err != nil {
		s.handlePipelineError(w, err, requestID)
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		s.handlePipelineError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", format.MimeType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if requestID != nil {
		w.Header().Set("X-Request-ID", *requestID)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// decodeRequest reads a JSON body of at most s.maxBytes into v. On failure
// it writes the error response and returns false.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}, requestID *string) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBytes)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeErrorResponse(w, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE",
			fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), requestID, nil)
		return false
	}
	s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON",
		"Invalid JSON in request body", requestID, nil)
	return false
}

// validateRenderRequest checks the render options and resolves defaults.
func (s *Server) validateRenderRequest(req *RenderRequest) (pipeline.RenderOptions, imaging.Format, error) {
	opts := pipeline.RenderOptions{Mode: render.ModeColored, Legend: req.Legend}
	if req.Mode != "" {
		m, err := render.ParseMode(req.Mode)
		if err != nil {
			return opts, "", err
		}
		opts.Mode = m
	}
	if req.PreviewWidth < 0 || req.PreviewWidth > MaxPreviewWidth {
		return opts, "", fmt.Errorf("previewWidth must be between 0 and %d", MaxPreviewWidth)
	}
	opts.PreviewWidth = req.PreviewWidth

	format, err := imaging.ParseFormat(req.Format)
	if err != nil {
		return opts, "", err
	}
	return opts, format, nil
}

// handlePipelineError maps configuration errors to 400 and everything else
// to 500.
func (s *Server) handlePipelineError(w http.ResponseWriter, err error, requestID *string) {
	switch {
	case errors.Is(err, mosaic.ErrInvalidSettings), errors.Is(err, mosaic.ErrDegenerateGrid):
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_SETTINGS", err.Error(), requestID, nil)
	case errors.Is(err, palette.ErrPaletteSize):
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_PALETTE", err.Error(), requestID, nil)
	case errors.Is(err, render.ErrGridMismatch), errors.Is(err, pipeline.ErrNoMosaic):
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_MOSAIC", err.Error(), requestID, nil)
	case errors.Is(err, mosaic.ErrInvalidPixels):
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_IMAGE", err.Error(), requestID, nil)
	default:
		log.Printf("Internal error: %v", err)
		s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Internal server error", requestID, nil)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, requestID *string, details map[string]interface{}) {
	response := ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestId: requestID,
	}

	if details != nil {
		response.Details = &details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

func (s *Server) writeValidationErrorResponse(w http.ResponseWriter, message string, requestID *string) {
	s.writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", message, requestID, nil)
}

// requestIDFrom returns the id set by middleware.RequestID, or nil.
func requestIDFrom(r *http.Request) *string {
	id := middleware.GetReqID(r.Context())
	if id == "" {
		return nil
	}
	return &id
}
