package server

import (
	"encoding/json"
	"fmt"

	"github.com/uiscan/uiscan/internal/analyze"
	"github.com/uiscan/uiscan/internal/detection"
	"github.com/uiscan/uiscan/internal/imaging"
	"github.com/uiscan/uiscan/internal/layout"
	"github.com/uiscan/uiscan/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_analyze").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_analyze":
		return s.handleImageAnalyze(args)
	case "image_extract_palette":
		return s.handleImageExtractPalette(args)
	case "image_detect_edges":
		return s.handleImageDetectEdges(args)
	case "image_detect_regions":
		return s.handleImageDetectRegions(args)
	case "image_analyze_layout":
		return s.handleImageAnalyzeLayout(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_render_overlay":
		return s.handleImageRenderOverlay(args)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// pathArgs is the single-argument form shared by most tools.
type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageAnalyze(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return analyze.Buffer(buf, s.cfg)
}

func (s *Server) handleImageExtractPalette(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ExtractPalette(buf, s.cfg.Palette), nil
}

type detectEdgesArgs struct {
	Path   string `json:"path"`
	Render bool   `json:"render"`
}

// edgeStatsResult summarizes an edge map; the rendered image is included
// only on request since it dominates the payload size.
type edgeStatsResult struct {
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Edges    int            `json:"edges"`
	Density  float64        `json:"density"`
	Rendered *render.Result `json:"rendered,omitempty"`
}

func (s *Server) handleImageDetectEdges(args json.RawMessage) (interface{}, error) {
	var a detectEdgesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	m := imaging.DetectEdges(buf, s.cfg.Edges)
	result := &edgeStatsResult{
		Width:   m.Width(),
		Height:  m.Height(),
		Edges:   m.Count(),
		Density: m.Density(),
	}
	if a.Render {
		rendered, err := render.EdgeMap(m)
		if err != nil {
			return nil, err
		}
		result.Rendered = rendered
	}
	return result, nil
}

type regionsResult struct {
	Regions []detection.Rectangle `json:"regions"`
	Count   int                   `json:"count"`
}

func (s *Server) handleImageDetectRegions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	regions := detection.FindRegions(buf, s.cfg.Regions)
	return &regionsResult{Regions: regions, Count: len(regions)}, nil
}

func (s *Server) handleImageAnalyzeLayout(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	regions := detection.FindRegions(buf, s.cfg.Regions)
	elements := detection.ClassifyAll(buf, regions, s.cfg)
	return layout.Analyze(elements, buf.Width(), buf.Height(), s.cfg.Layout), nil
}

type cropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a cropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(buf, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type renderOverlayArgs struct {
	Path     string `json:"path"`
	MaxWidth int    `json:"max_width"`
}

func (s *Server) handleImageRenderOverlay(args json.RawMessage) (interface{}, error) {
	var a renderOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxWidth == 0 {
		a.MaxWidth = 1024
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	regions := detection.FindRegions(buf, s.cfg.Regions)
	elements := detection.ClassifyAll(buf, regions, s.cfg)
	return render.Overlay(buf, elements, a.MaxWidth)
}
