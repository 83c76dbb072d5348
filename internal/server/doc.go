// Package server implements the MCP (Model Context Protocol) server for color
// segmentation tools.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_color_distance: Redmean score of two colors against a tolerance
//
// Segmentation:
//   - image_segment: Cluster summaries for an image
//   - image_cluster_palette: Largest clusters by coverage
//   - image_cluster_at: Cluster owning a pixel
//   - image_cluster_image: One cluster as base64 PNG
//   - image_export_clusters: Write cluster(N).png files
//
// Every segmentation tool accepts tolerance (default 10), blur_radius and
// rescan_rejected. Results are cached per file and option set for the
// lifetime of the server process, so follow-up calls with the same
// arguments see the same cluster indices.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
