package segment

// forwardOffsets are the neighbors examined while growing a cluster, in
// order: right, right-down, down, left-down, left. Up and the upper
// diagonals are never examined, so a cluster cannot grow through a path
// that only continues upward from the expansion frontier.
var forwardOffsets = [...]Position{
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
}

// visitedSet records every candidate position examined during one
// flood-fill run, across all clusters. A candidate is examined at most once
// per run, even if it was rejected by an earlier cluster that it would not
// have matched.
//
// Out-of-bounds candidates are never stored; they are rejected before any
// other check so their membership is unobservable.
type visitedSet struct {
	seen     []bool
	disabled bool
}

func newVisitedSet(g *Grid, disabled bool) *visitedSet {
	v := &visitedSet{disabled: disabled}
	if !disabled {
		v.seen = make([]bool, g.Len())
	}
	return v
}

// mark records i and reports whether it had not been seen before.
func (v *visitedSet) mark(i int) bool {
	if v.disabled {
		return true
	}
	if v.seen[i] {
		return false
	}
	v.seen[i] = true
	return true
}

// frame is one level of the depth-first expansion: the pixel being expanded
// and the index of the next offset to examine.
type frame struct {
	pixel Pixel
	next  int
}

// FloodFill partitions g into clusters.
//
// Positions are scanned with x in the outer loop and y in the inner loop.
// Every position not yet owned seeds a new cluster, which then grows
// depth-first through forwardOffsets. A candidate joins the cluster when it
// is inside the grid, unowned, and within opts.Tolerance of the pixel being
// expanded (not of the cluster's seed color), so colors can drift along a
// chain of similar pixels.
//
// Any ownership recorded in g by a previous run is discarded. The returned
// clusters are in creation order and their IDs are their indices.
func FloodFill(g *Grid, opts Options) []*Cluster {
	g.Reset()

	var clusters []*Cluster
	visited := newVisitedSet(g, opts.RescanRejected)
	stack := make([]frame, 0, 64)

	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			seed := Position{X: x, Y: y}
			if g.owned(seed) {
				continue
			}

			c := newCluster(len(clusters), g.pixelAt(seed))
			clusters = append(clusters, c)
			g.setOwner(seed, c.ID)

			stack = append(stack[:0], frame{pixel: g.pixelAt(seed)})
			for len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.next == len(forwardOffsets) {
					stack = stack[:len(stack)-1]
					continue
				}
				off := forwardOffsets[top.next]
				top.next++
				current := top.pixel

				cand := current.Pos.Add(off.X, off.Y)
				if !g.Contains(cand) {
					continue
				}
				if !visited.mark(g.index(cand)) {
					continue
				}
				if g.owned(cand) {
					continue
				}
				px := g.pixelAt(cand)
				if Distance(px.Color, current.Color) > opts.Tolerance {
					continue
				}

				g.setOwner(cand, c.ID)
				c.Pixels[cand] = px
				stack = append(stack, frame{pixel: px})
			}
		}
	}

	return clusters
}
