package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/image-segment-mcp/internal/imaging"
	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_segment").
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
		if s.debug {
			log.Printf("Tool %s failed: %v", params.Name, err)
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_color_distance":
		return s.handleImageColorDistance(args)

	// Segmentation
	case "image_segment":
		return s.handleImageSegment(args)
	case "image_cluster_palette":
		return s.handleImageClusterPalette(args)
	case "image_cluster_at":
		return s.handleImageClusterAt(args)
	case "image_cluster_image":
		return s.handleImageClusterImage(args)
	case "image_export_clusters":
		return s.handleImageExportClusters(args)

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

// === Basic Image Information Handlers ===

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

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageColorDistanceArgs struct {
	ColorA    string   `json:"color_a"`
	ColorB    string   `json:"color_b"`
	Tolerance *float64 `json:"tolerance"`
}

func (s *Server) handleImageColorDistance(args json.RawMessage) (interface{}, error) {
	var a imageColorDistanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tolerance := segment.DefaultTolerance
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}
	return imaging.CompareColors(a.ColorA, a.ColorB, tolerance)
}

// === Segmentation Handlers ===

// segmentArgs are embedded by every tool that runs the segmenter.
// Tolerance is a pointer because 0 is a meaningful value.
type segmentArgs struct {
	Path           string   `json:"path"`
	Tolerance      *float64 `json:"tolerance"`
	BlurRadius     float64  `json:"blur_radius"`
	RescanRejected bool     `json:"rescan_rejected"`
}

func (a segmentArgs) options() (imaging.SegmentOptions, error) {
	opts := imaging.SegmentOptions{
		Tolerance:      segment.DefaultTolerance,
		BlurRadius:     a.BlurRadius,
		RescanRejected: a.RescanRejected,
	}
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	if opts.BlurRadius < 0 {
		return opts, fmt.Errorf("blur_radius must not be negative, got %v", opts.BlurRadius)
	}
	return opts, nil
}

// segment runs (or reuses) the segmentation described by a.
func (s *Server) segment(a segmentArgs) (*segment.Result, imaging.SegmentOptions, error) {
	opts, err := a.options()
	if err != nil {
		return nil, opts, err
	}
	res, err := s.segments.Segment(a.Path, opts)
	if err != nil {
		return nil, opts, err
	}
	if s.debug {
		log.Printf("Segmented %s (tolerance %v): %d clusters, %d before merge, %v",
			a.Path, opts.Tolerance, len(res.Clusters), res.Initial, res.Elapsed)
	}
	return res, opts, nil
}

type imageSegmentArgs struct {
	segmentArgs
	MaxClusters *int `json:"max_clusters"`
}

func (s *Server) handleImageSegment(args json.RawMessage) (interface{}, error) {
	var a imageSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	limit := 100
	if a.MaxClusters != nil {
		limit = *a.MaxClusters
	}
	res, opts, err := s.segment(a.segmentArgs)
	if err != nil {
		return nil, err
	}
	return imaging.Summarize(res, opts.Tolerance, limit), nil
}

type imageClusterPaletteArgs struct {
	segmentArgs
	Count int `json:"count"`
}

func (s *Server) handleImageClusterPalette(args json.RawMessage) (interface{}, error) {
	var a imageClusterPaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	res, _, err := s.segment(a.segmentArgs)
	if err != nil {
		return nil, err
	}
	return imaging.Palette(res, a.Count), nil
}

type imageClusterAtArgs struct {
	segmentArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageClusterAt(args json.RawMessage) (interface{}, error) {
	var a imageClusterAtArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, _, err := s.segment(a.segmentArgs)
	if err != nil {
		return nil, err
	}
	c, idx, ok := res.ClusterAt(segment.Position{X: a.X, Y: a.Y})
	if !ok {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", a.X, a.Y)
	}
	return imaging.SummarizeCluster(c, idx), nil
}

type imageClusterImageArgs struct {
	segmentArgs
	Index int  `json:"index"`
	Trim  bool `json:"trim"`
}

func (s *Server) handleImageClusterImage(args json.RawMessage) (interface{}, error) {
	var a imageClusterImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, _, err := s.segment(a.segmentArgs)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeCluster(res, a.Index, imaging.ExportOptions{Trim: a.Trim})
}

type imageExportClustersArgs struct {
	segmentArgs
	OutputDir string `json:"output_dir"`
	Trim      bool   `json:"trim"`
}

// exportResult lists the files written by image_export_clusters.
type exportResult struct {
	OutputDir string   `json:"output_dir"`
	Files     []string `json:"files"`
	Count     int      `json:"count"`
}

func (s *Server) handleImageExportClusters(args json.RawMessage) (interface{}, error) {
	var a imageExportClustersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}
	res, _, err := s.segment(a.segmentArgs)
	if err != nil {
		return nil, err
	}
	files, err := imaging.SaveClusters(res, a.OutputDir, imaging.ExportOptions{Trim: a.Trim})
	if err != nil {
		return nil, err
	}
	return &exportResult{OutputDir: a.OutputDir, Files: files, Count: len(files)}, nil
}
