// Package server implements the MCP (Model Context Protocol) server
// exposing the analysis pipeline.
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
// The pipeline is exposed whole and as individual stages:
//
//   - image_load: Load an image and get metadata
//   - image_analyze: Full pipeline (palette + elements + layout)
//   - image_extract_palette: Color analysis only
//   - image_detect_edges: Sobel edge map statistics
//   - image_detect_regions: Raw candidate rectangles
//   - image_analyze_layout: Layout inference only
//   - image_crop: Extract a region as base64 PNG
//   - image_render_overlay: Element bounds drawn over the image
//
// Exposing the edge detector and region detector separately is deliberate:
// the two stages use independent contrast signals and each must stay
// independently exercisable.
//
// # Buffer Caching
//
// The server keeps an in-memory cache of decoded pixel buffers keyed by
// path, so one image can feed several tool calls without redundant decode
// work. The cache persists for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with
// code -32000 and the Go error string in the data field. An image that
// yields no detectable elements is not an error: the result is an empty
// element list with an absolute layout.
package server
