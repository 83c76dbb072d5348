package segment

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultTolerance is the tolerance used when none is configured.
const DefaultTolerance = 10.0

// ErrInvalidTolerance is returned for a NaN tolerance, which would make every
// color comparison succeed.
var ErrInvalidTolerance = errors.New("invalid tolerance")

// Options configures a segmentation run.
type Options struct {
	// Tolerance is the largest Distance at which two colors count as
	// similar. Larger values give fewer, larger clusters.
	Tolerance float64

	// RescanRejected disables the run-wide visited-candidate set, so a
	// position rejected while growing one cluster can still be picked up by
	// a later cluster's expansion.
	RescanRejected bool
}

// DefaultOptions returns Options with DefaultTolerance.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// Validate checks that the options can drive a run.
func (o Options) Validate() error {
	if math.IsNaN(o.Tolerance) {
		return fmt.Errorf("%w: NaN", ErrInvalidTolerance)
	}
	return nil
}

// Result is the outcome of one segmentation run.
type Result struct {
	Width    int
	Height   int
	Clusters []*Cluster

	// Initial is the number of clusters produced by flood-fill, before
	// merging.
	Initial int

	// Elapsed is the time spent building the grid, clustering and merging.
	Elapsed time.Duration

	grid *Grid
	byID map[int]*Cluster
}

// Segment builds a grid from src, partitions it with FloodFill and condenses
// the partition with Merge.
func Segment(src Source, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	g, err := NewGrid(src)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}

	res := run(g, opts)
	res.Elapsed = time.Since(start)
	return res, nil
}

// SegmentGrid runs FloodFill and Merge on an existing grid. Ownership from
// any previous run on g is discarded.
func SegmentGrid(g *Grid, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	res := run(g, opts)
	res.Elapsed = time.Since(start)
	return res, nil
}

func run(g *Grid, opts Options) *Result {
	clusters := FloodFill(g, opts)
	initial := len(clusters)
	clusters = Merge(g, clusters, opts.Tolerance)

	byID := make(map[int]*Cluster, len(clusters))
	for _, c := range clusters {
		byID[c.ID] = c
	}

	return &Result{
		Width:    g.Width(),
		Height:   g.Height(),
		Clusters: clusters,
		Initial:  initial,
		grid:     g,
		byID:     byID,
	}
}

// Grid returns the grid the result was computed on.
func (r *Result) Grid() *Grid {
	return r.grid
}

// ClusterAt returns the surviving cluster that owns p and its index in
// r.Clusters.
func (r *Result) ClusterAt(p Position) (c *Cluster, index int, ok bool) {
	id, ok := r.grid.Owner(p)
	if !ok {
		return nil, 0, false
	}
	c, ok = r.byID[id]
	if !ok {
		return nil, 0, false
	}
	for i, rc := range r.Clusters {
		if rc == c {
			return c, i, true
		}
	}
	return nil, 0, false
}
