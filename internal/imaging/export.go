package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// RenderCluster draws c onto a transparent width x height canvas. Member
// pixels keep their stored color; positions outside the canvas are skipped.
func RenderCluster(c *segment.Cluster, width, height int) *image.NRGBA {
	dst := imaging.New(width, height, color.Transparent)
	for p, px := range c.Pixels {
		if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
			continue
		}
		dst.SetNRGBA(p.X, p.Y, color.NRGBA{R: px.Color.R, G: px.Color.G, B: px.Color.B, A: px.Color.A})
	}
	return dst
}

// RenderClusters renders every cluster of res at the source dimensions, in
// result order.
func RenderClusters(res *segment.Result) []*image.NRGBA {
	out := make([]*image.NRGBA, len(res.Clusters))
	for i, c := range res.Clusters {
		out[i] = RenderCluster(c, res.Width, res.Height)
	}
	return out
}

// ExportOptions controls how cluster rasters are written.
type ExportOptions struct {
	// Trim crops each raster to its cluster's bounding box instead of
	// keeping the source dimensions.
	Trim bool
}

// ClusterFileName returns the file name used for the i-th cluster.
func ClusterFileName(i int) string {
	return fmt.Sprintf("cluster(%d).png", i)
}

// SaveClusters writes one PNG per cluster of res into dir, creating dir if
// needed, and returns the written paths in result order.
func SaveClusters(res *segment.Result, dir string, opts ExportOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(res.Clusters))
	for i, c := range res.Clusters {
		img := clusterRaster(c, res.Width, res.Height, opts)
		path := filepath.Join(dir, ClusterFileName(i))
		if err := imaging.Save(img, path); err != nil {
			return paths, fmt.Errorf("failed to save cluster %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ClusterImage is a single cluster raster encoded as base64 PNG.
type ClusterImage struct {
	Index       int    `json:"index"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	OffsetX     int    `json:"offset_x"` // Left edge in source coordinates
	OffsetY     int    `json:"offset_y"` // Top edge in source coordinates
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeCluster renders the i-th cluster of res as base64 PNG.
func EncodeCluster(res *segment.Result, i int, opts ExportOptions) (*ClusterImage, error) {
	if i < 0 || i >= len(res.Clusters) {
		return nil, fmt.Errorf("cluster index %d out of range (0-%d)", i, len(res.Clusters)-1)
	}
	c := res.Clusters[i]
	img := clusterRaster(c, res.Width, res.Height, opts)

	var offset image.Point
	if opts.Trim {
		offset = c.Bounds().Min
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode cluster image: %w", err)
	}

	return &ClusterImage{
		Index:       i,
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		OffsetX:     offset.X,
		OffsetY:     offset.Y,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func clusterRaster(c *segment.Cluster, width, height int, opts ExportOptions) *image.NRGBA {
	img := RenderCluster(c, width, height)
	if opts.Trim {
		if b := c.Bounds(); !b.Empty() {
			return imaging.Crop(img, b)
		}
	}
	return img
}
