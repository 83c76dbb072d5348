// Package imaging connects decoded image files to the segment package.
//
// It loads and caches images, turns them into random-access pixel sources
// for segmentation, and renders the resulting clusters back into rasters.
// All coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Ingestion
//
// NewSource copies a decoded image into a non-premultiplied NRGBA buffer
// rebased to (0,0). An optional Gaussian pre-blur smooths noisy photographs
// before clustering; it is off by default so results match the plain
// segmenter exactly.
//
// # Export
//
// RenderCluster produces one raster per cluster with the source dimensions:
// member pixels carry their stored color and every other position is
// transparent. SaveClusters writes these rasters as "cluster(N).png" files;
// EncodeCluster returns one as base64 PNG. Both can trim the raster to the
// cluster's bounding box.
//
// # Color Representation
//
// Colors are reported as:
//   - Hex: "#rrggbb" (alpha excluded)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Thread Safety
//
// ImageCache and SegmentCache are safe for concurrent use. Segmentation
// results returned from SegmentCache are shared and must be treated as
// read-only.
package imaging
