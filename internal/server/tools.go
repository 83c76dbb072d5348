package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// segmentProperties are the arguments shared by every tool that runs the
// segmenter.
func segmentProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"tolerance": map[string]interface{}{
			"type":        "number",
			"description": "Maximum redmean color distance for two colors to be treated as similar (default 10; practical range 0-100). Larger values give fewer, larger clusters.",
			"default":     10,
		},
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Optional Gaussian blur radius applied before segmenting. Default 0 (no smoothing).",
			"default":     0,
		},
		"rescan_rejected": map[string]interface{}{
			"type":        "boolean",
			"description": "Allow a pixel rejected by one cluster to be reconsidered by later clusters. Default false.",
			"default":     false,
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and pixel count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_color_distance",
			Description: "Score two hex colors with the redmean distance the segmenter uses, and report whether they fall within a tolerance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color_a": map[string]interface{}{
						"type":        "string",
						"description": "First color, \"#rrggbb\" or \"#rgb\"",
					},
					"color_b": map[string]interface{}{
						"type":        "string",
						"description": "Second color, \"#rrggbb\" or \"#rgb\"",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Tolerance to compare against (default 10)",
						"default":     10,
					},
				},
				"required": []string{"color_a", "color_b"},
			},
		},

		// Segmentation
		{
			Name:        "image_segment",
			Description: "Partition an image into clusters of similar color and merge adjacent clusters with close colors. Returns one summary per cluster (color, pixel count, bounding box).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(segmentProperties(), map[string]interface{}{
					"max_clusters": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of cluster summaries to list (default 100, 0 for all)",
						"default":     100,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_cluster_palette",
			Description: "Segment an image and return the N largest clusters by coverage.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(segmentProperties(), map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of clusters to return (default 5)",
						"default":     5,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_cluster_at",
			Description: "Segment an image and describe the cluster that owns a pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(segmentProperties(), map[string]interface{}{
					"x": map[string]interface{}{"type": "integer", "description": "X coordinate (0-based)"},
					"y": map[string]interface{}{"type": "integer", "description": "Y coordinate (0-based)"},
				}),
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_cluster_image",
			Description: "Render one cluster as a base64-encoded PNG: member pixels in their original color, everything else transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(segmentProperties(), map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Cluster index as listed by image_segment",
					},
					"trim": map[string]interface{}{
						"type":        "boolean",
						"description": "Crop the raster to the cluster's bounding box. Default false.",
						"default":     false,
					},
				}),
				"required": []string{"path", "index"},
			},
		},
		{
			Name:        "image_export_clusters",
			Description: "Segment an image and write one PNG per cluster (cluster(N).png) into an output directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(segmentProperties(), map[string]interface{}{
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the directory to write into (created if missing)",
					},
					"trim": map[string]interface{}{
						"type":        "boolean",
						"description": "Crop each raster to its cluster's bounding box. Default false.",
						"default":     false,
					},
				}),
				"required": []string{"path", "output_dir"},
			},
		},
	}
}
