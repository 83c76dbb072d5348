package segment

import (
	"image"
	"sort"
)

// Cluster is a group of grid positions reached from one seed pixel.
//
// Color is the seed pixel's color. It is fixed when the cluster is created
// and never recomputed as the cluster grows or absorbs other clusters.
type Cluster struct {
	// ID is the cluster's index in the flood-fill arena. Grid ownership
	// entries refer to clusters by this value.
	ID     int
	Color  Color
	Pixels map[Position]Pixel
}

func newCluster(id int, seed Pixel) *Cluster {
	return &Cluster{
		ID:     id,
		Color:  seed.Color,
		Pixels: map[Position]Pixel{seed.Pos: seed},
	}
}

// Len returns the number of pixels in the cluster.
func (c *Cluster) Len() int {
	return len(c.Pixels)
}

// Contains reports whether p is a member of the cluster.
func (c *Cluster) Contains(p Position) bool {
	_, ok := c.Pixels[p]
	return ok
}

// Bounds returns the smallest rectangle containing every member position.
// An empty cluster has an empty rectangle.
func (c *Cluster) Bounds() image.Rectangle {
	if len(c.Pixels) == 0 {
		return image.Rectangle{}
	}
	first := true
	var r image.Rectangle
	for p := range c.Pixels {
		if first {
			r = image.Rect(p.X, p.Y, p.X+1, p.Y+1)
			first = false
			continue
		}
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X+1 > r.Max.X {
			r.Max.X = p.X + 1
		}
		if p.Y+1 > r.Max.Y {
			r.Max.Y = p.Y + 1
		}
	}
	return r
}

// Positions returns the member positions ordered by x, then y.
func (c *Cluster) Positions() []Position {
	out := make([]Position, 0, len(c.Pixels))
	for p := range c.Pixels {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}
