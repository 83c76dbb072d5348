package segment

// adjacentOffsets is the full 8-neighborhood used when testing whether two
// clusters touch.
var adjacentOffsets = [...]Position{
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
	{X: 0, Y: -1},
	{X: 1, Y: -1},
}

// Merge joins spatially adjacent clusters whose colors are within tolerance.
//
// Every ordered pair (i, j), i != j, is visited once against the current
// state of the list: when cluster i's color is within tolerance of cluster
// j's color and some pixel of i has one of its eight neighbors in j, all of
// j's pixels move into i and j is left empty. Later pairs see the result of
// earlier merges. The pass is not repeated, so chains of merges can be left
// partially resolved depending on list order.
//
// When g is non-nil its ownership table is updated for every moved pixel.
// Empty clusters are dropped from the result; survivors keep their relative
// order.
func Merge(g *Grid, clusters []*Cluster, tolerance float64) []*Cluster {
	for i := range clusters {
		for j := range clusters {
			ci, cj := clusters[i], clusters[j]
			if Distance(ci.Color, cj.Color) > tolerance {
				continue
			}
			if ci == cj {
				continue
			}
			if !touches(ci, cj) {
				continue
			}
			absorb(g, ci, cj)
		}
	}

	out := make([]*Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c.Pixels) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// touches reports whether any pixel of a has an 8-neighbor in b. The
// relation is symmetric, so the smaller cluster is scanned.
func touches(a, b *Cluster) bool {
	if len(a.Pixels) == 0 || len(b.Pixels) == 0 {
		return false
	}
	if len(b.Pixels) < len(a.Pixels) {
		a, b = b, a
	}
	for p := range a.Pixels {
		for _, off := range adjacentOffsets {
			if _, ok := b.Pixels[p.Add(off.X, off.Y)]; ok {
				return true
			}
		}
	}
	return false
}

// absorb moves every pixel of src into dst.
func absorb(g *Grid, dst, src *Cluster) {
	for p, px := range src.Pixels {
		if _, ok := dst.Pixels[p]; ok {
			continue
		}
		dst.Pixels[p] = px
		if g != nil && g.Contains(p) {
			g.setOwner(p, dst.ID)
		}
	}
	src.Pixels = make(map[Position]Pixel)
}
