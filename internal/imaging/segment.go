package imaging

import (
	"fmt"
	"math"
	"sync"

	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// Region represents a rectangular region within an image.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive).
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// SegmentOptions configures SegmentCache.Segment.
type SegmentOptions struct {
	Tolerance      float64
	RescanRejected bool
	BlurRadius     float64
}

// ClusterSummary describes one surviving cluster.
type ClusterSummary struct {
	Index  int         `json:"index"`
	Color  ColorResult `json:"color"`
	Pixels int         `json:"pixels"`
	Bounds Region      `json:"bounds"`
}

// SegmentResult summarizes a segmentation run.
type SegmentResult struct {
	Width           int              `json:"width"`
	Height          int              `json:"height"`
	Tolerance       float64          `json:"tolerance"`
	InitialClusters int              `json:"initial_clusters"` // Before merging
	ClusterCount    int              `json:"cluster_count"`
	ElapsedMs       float64          `json:"elapsed_ms"`
	Clusters        []ClusterSummary `json:"clusters,omitempty"`
}

// Summarize describes res. At most limit clusters are listed; limit <= 0
// lists them all.
func Summarize(res *segment.Result, tolerance float64, limit int) *SegmentResult {
	n := len(res.Clusters)
	if limit > 0 && limit < n {
		n = limit
	}

	clusters := make([]ClusterSummary, n)
	for i := 0; i < n; i++ {
		clusters[i] = SummarizeCluster(res.Clusters[i], i)
	}

	return &SegmentResult{
		Width:           res.Width,
		Height:          res.Height,
		Tolerance:       tolerance,
		InitialClusters: res.Initial,
		ClusterCount:    len(res.Clusters),
		ElapsedMs:       math.Round(float64(res.Elapsed.Microseconds())/10) / 100,
		Clusters:        clusters,
	}
}

// SummarizeCluster describes c, the index-th cluster of a result.
func SummarizeCluster(c *segment.Cluster, index int) ClusterSummary {
	b := c.Bounds()
	return ClusterSummary{
		Index:  index,
		Color:  NewColorResult(c.Color),
		Pixels: c.Len(),
		Bounds: Region{X1: b.Min.X, Y1: b.Min.Y, X2: b.Max.X, Y2: b.Max.Y},
	}
}

type segmentKey struct {
	path string
	opts SegmentOptions
}

// MaxResultsPerPath bounds how many option sets are cached for one file.
// Each result holds a full grid, so a session sweeping tolerances would
// otherwise grow without limit.
const MaxResultsPerPath = 8

// SegmentCache memoizes segmentation results per file and options on top of
// an ImageCache. It is safe for concurrent use; cached results are never
// mutated after they are stored.
//
// At most MaxResultsPerPath results are kept per path; the oldest is dropped
// first. Segmentation is deterministic, so a dropped result is recomputed
// with the same cluster indices.
type SegmentCache struct {
	images *ImageCache

	mu      sync.Mutex
	results map[segmentKey]*segment.Result
	order   map[string][]SegmentOptions // insertion order per path
}

// NewSegmentCache returns an empty cache that loads images through images.
func NewSegmentCache(images *ImageCache) *SegmentCache {
	return &SegmentCache{
		images:  images,
		results: make(map[segmentKey]*segment.Result),
		order:   make(map[string][]SegmentOptions),
	}
}

// Segment returns the segmentation of the image at path, computing it on
// first use.
func (c *SegmentCache) Segment(path string, opts SegmentOptions) (*segment.Result, error) {
	key := segmentKey{path: path, opts: opts}

	c.mu.Lock()
	res, ok := c.results[key]
	c.mu.Unlock()
	if ok {
		return res, nil
	}

	img, err := c.images.Load(path)
	if err != nil {
		return nil, err
	}

	src := NewSource(img, SourceOptions{BlurRadius: opts.BlurRadius})
	res, err = segment.Segment(src, segment.Options{
		Tolerance:      opts.Tolerance,
		RescanRejected: opts.RescanRejected,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to segment %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.results[key]; ok {
		// Computed concurrently by another caller.
		return cached, nil
	}
	order := c.order[path]
	if len(order) >= MaxResultsPerPath {
		delete(c.results, segmentKey{path: path, opts: order[0]})
		order = order[1:]
	}
	c.results[key] = res
	c.order[path] = append(order, opts)
	return res, nil
}

// Evict drops every cached result and the decoded image for path.
func (c *SegmentCache) Evict(path string) {
	c.mu.Lock()
	for _, opts := range c.order[path] {
		delete(c.results, segmentKey{path: path, opts: opts})
	}
	delete(c.order, path)
	c.mu.Unlock()
	c.images.Evict(path)
}
