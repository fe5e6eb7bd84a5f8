package api

import (
	"encoding/json"
	"time"
)

// HealthStatus is the status reported by GET /health.
type HealthStatus string

const (
	Healthy HealthStatus = "healthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    HealthStatus `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Uptime    *int         `json:"uptime,omitempty"`
	Version   *string      `json:"version,omitempty"`
}

// MosaicRequest is the body of POST /mosaics.
type MosaicRequest struct {
	// Image is the photo, base64 encoded, optionally as a data URL.
	Image string `json:"image"`

	// Settings are merged over the defaults.
	Settings json.RawMessage `json:"settings,omitempty"`

	// Palette lists hex colors. When empty, Colors or the default palette
	// is used.
	Palette []string `json:"palette,omitempty"`

	// Colors extracts that many colors from the photo.
	Colors int `json:"colors,omitempty"`
}

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	// Mosaic is a POST /mosaics response.
	Mosaic json.RawMessage `json:"mosaic"`

	Mode   string `json:"mode,omitempty"`
	Legend bool   `json:"legend,omitempty"`

	// PreviewWidth renders a screen preview that many pixels wide instead
	// of the print-size image.
	PreviewWidth int `json:"previewWidth,omitempty"`

	// Format is png (default), jpeg or bmp.
	Format string `json:"format,omitempty"`
}

// ErrorResponse is the body of every 4xx and 5xx response.
type ErrorResponse struct {
	Error     string                  `json:"error"`
	Message   string                  `json:"message"`
	RequestId *string                 `json:"request_id,omitempty"`
	Details   *map[string]interface{} `json:"details,omitempty"`
}
