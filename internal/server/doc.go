// Package server implements the MCP (Model Context Protocol) server for the
// paint-by-numbers mosaic tools.
//
// This package provides a JSON-RPC 2.0 server that exposes mosaic generation
// through the MCP protocol, so an MCP client can turn a photo into a
// numbered painting template step by step.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Source images:
//   - image_load: Load an image and report its metadata
//
// Palette and color matching:
//   - mosaic_quantize_palette: Median-cut palette extraction
//   - mosaic_match_color: Closest palette entry for a color or sampled pixels
//
// Mosaic generation and output:
//   - mosaic_generate: Photo to palette-index grid
//   - mosaic_render: Grid to a preview or print-size image (base64)
//   - mosaic_export: Print sheets written to disk or returned as base64
//
// mosaic_render and mosaic_export take the JSON object returned by
// mosaic_generate unchanged, so a client can regenerate with new settings
// and re-render without the server holding any mosaic state.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
