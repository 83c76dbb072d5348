package segment

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

// membership returns each cluster's positions ordered by x then y, in
// cluster order.
func membership(clusters []*Cluster) [][]Position {
	out := make([][]Position, len(clusters))
	for i, c := range clusters {
		out[i] = c.Positions()
	}
	return out
}

// checkPartition fails the test unless every grid position belongs to
// exactly one cluster and the grid ownership table agrees.
func checkPartition(t *testing.T, g *Grid, clusters []*Cluster) {
	t.Helper()
	seen := make(map[Position]int)
	for _, c := range clusters {
		for p, px := range c.Pixels {
			if px.Pos != p {
				t.Errorf("cluster %d: pixel keyed %v has position %v", c.ID, p, px.Pos)
			}
			if !g.Contains(p) {
				t.Errorf("cluster %d holds out-of-grid position %v", c.ID, p)
			}
			if prev, dup := seen[p]; dup {
				t.Errorf("position %v in clusters %d and %d", p, prev, c.ID)
			}
			seen[p] = c.ID
			if id, ok := g.Owner(p); !ok || id != c.ID {
				t.Errorf("position %v: owner %d (%v), want %d", p, id, ok, c.ID)
			}
		}
	}
	if len(seen) != g.Len() {
		t.Errorf("clusters cover %d positions, grid has %d", len(seen), g.Len())
	}
}

// randomRows returns a w x h image with colors drawn from a small palette
// plus jitter, so both exact and tolerance matches occur.
func randomRows(rng *rand.Rand, w, h int) [][]Color {
	palette := []Color{red, blue, white, black, {R: 120, G: 200, B: 40, A: 255}}
	rows := make([][]Color, h)
	for y := range rows {
		rows[y] = make([]Color, w)
		for x := range rows[y] {
			c := palette[rng.Intn(len(palette))]
			j := uint8(rng.Intn(12))
			if c.G < 200 {
				c.G += j
			} else {
				c.G -= j
			}
			rows[y][x] = c
		}
	}
	return rows
}

// recursiveFloodFill is a direct recursive rendering of the clustering
// rules, used as the parity reference for the work-stack implementation.
func recursiveFloodFill(g *Grid, opts Options) [][]Position {
	owner := make(map[Position]int)
	visited := make(map[Position]bool)
	var clusters [][]Position

	var grow func(id int, cur Pixel)
	grow = func(id int, cur Pixel) {
		for _, off := range forwardOffsets {
			n := cur.Pos.Add(off.X, off.Y)
			if !opts.RescanRejected {
				if visited[n] {
					continue
				}
				visited[n] = true
			}
			if !g.Contains(n) {
				continue
			}
			if _, ok := owner[n]; ok {
				continue
			}
			px, _ := g.Pixel(n)
			if Distance(px.Color, cur.Color) > opts.Tolerance {
				continue
			}
			owner[n] = id
			clusters[id] = append(clusters[id], n)
			grow(id, px)
		}
	}

	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			p := Position{X: x, Y: y}
			if _, ok := owner[p]; ok {
				continue
			}
			id := len(clusters)
			clusters = append(clusters, []Position{p})
			owner[p] = id
			px, _ := g.Pixel(p)
			grow(id, px)
		}
	}

	for _, c := range clusters {
		sort.Slice(c, func(i, j int) bool {
			if c[i].X != c[j].X {
				return c[i].X < c[j].X
			}
			return c[i].Y < c[j].Y
		})
	}
	return clusters
}

func TestFloodFill_TwoByTwo(t *testing.T) {
	rows := [][]Color{
		{red, red},
		{blue, blue},
	}

	t.Run("run-wide visited set", func(t *testing.T) {
		g := gridFromRows(t, rows)
		clusters := FloodFill(g, Options{Tolerance: 10})
		checkPartition(t, g, clusters)

		// (1,1) is rejected while growing the red cluster and is not
		// examined again when (0,1) seeds the blue cluster.
		want := [][]Position{
			{{X: 0, Y: 0}, {X: 1, Y: 0}},
			{{X: 0, Y: 1}},
			{{X: 1, Y: 1}},
		}
		if got := membership(clusters); !reflect.DeepEqual(got, want) {
			t.Errorf("clusters: got %v, want %v", got, want)
		}
	})

	t.Run("rescan rejected", func(t *testing.T) {
		g := gridFromRows(t, rows)
		clusters := FloodFill(g, Options{Tolerance: 10, RescanRejected: true})
		checkPartition(t, g, clusters)

		want := [][]Position{
			{{X: 0, Y: 0}, {X: 1, Y: 0}},
			{{X: 0, Y: 1}, {X: 1, Y: 1}},
		}
		if got := membership(clusters); !reflect.DeepEqual(got, want) {
			t.Errorf("clusters: got %v, want %v", got, want)
		}
	})
}

func TestFloodFill_SeedColorFixed(t *testing.T) {
	rows := [][]Color{
		{{R: 100, G: 100, B: 100, A: 255}, {R: 100, G: 110, B: 100, A: 255}, {R: 100, G: 120, B: 100, A: 255}},
	}
	g := gridFromRows(t, rows)
	clusters := FloodFill(g, Options{Tolerance: 3})

	if len(clusters) != 1 {
		t.Fatalf("clusters: got %d, want 1", len(clusters))
	}
	if clusters[0].Color != rows[0][0] {
		t.Errorf("cluster color: got %+v, want seed color %+v", clusters[0].Color, rows[0][0])
	}
}

func TestFloodFill_ChainedSimilarity(t *testing.T) {
	a := Color{R: 100, G: 100, B: 100, A: 255}
	b := Color{R: 100, G: 110, B: 100, A: 255}
	c := Color{R: 100, G: 120, B: 100, A: 255}
	const tolerance = 3

	if Distance(a, b) > tolerance || Distance(b, c) > tolerance {
		t.Fatal("fixture: neighbors should be within tolerance")
	}
	if Distance(a, c) <= tolerance {
		t.Fatal("fixture: ends should differ by more than tolerance")
	}

	g := gridFromRows(t, [][]Color{{a, b, c}})
	clusters := FloodFill(g, Options{Tolerance: tolerance})
	checkPartition(t, g, clusters)

	if len(clusters) != 1 || clusters[0].Len() != 3 {
		t.Errorf("clusters: got %v, want one cluster of 3", membership(clusters))
	}
}

func TestFloodFill_NoUpwardGrowth(t *testing.T) {
	// (1,0) is up-right of (0,1), a direction flood-fill never examines.
	rows := [][]Color{
		{black, white},
		{white, white},
	}
	g := gridFromRows(t, rows)
	clusters := FloodFill(g, Options{Tolerance: 10, RescanRejected: true})
	checkPartition(t, g, clusters)

	want := [][]Position{
		{{X: 0, Y: 0}},
		{{X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 1, Y: 0}},
	}
	if got := membership(clusters); !reflect.DeepEqual(got, want) {
		t.Errorf("clusters: got %v, want %v", got, want)
	}
}

func TestFloodFill_ZeroTolerance(t *testing.T) {
	near := Color{R: 255, G: 1, A: 255}
	g := gridFromRows(t, [][]Color{
		{red, red, near},
		{red, near, near},
	})
	clusters := FloodFill(g, Options{Tolerance: 0})
	checkPartition(t, g, clusters)

	for _, c := range clusters {
		for _, px := range c.Pixels {
			if px.Color != c.Color {
				t.Errorf("cluster %d mixes %+v with %+v at tolerance 0", c.ID, c.Color, px.Color)
			}
		}
	}

	// Identical, forward-adjacent pixels share a cluster.
	id1, _ := g.Owner(Position{X: 0, Y: 0})
	id2, _ := g.Owner(Position{X: 1, Y: 0})
	if id1 != id2 {
		t.Errorf("(0,0) and (1,0) should share a cluster")
	}
}

func TestFloodFill_SinglePixel(t *testing.T) {
	g := gridFromRows(t, [][]Color{{red}})
	clusters := FloodFill(g, Options{Tolerance: 10})
	checkPartition(t, g, clusters)

	if len(clusters) != 1 || !clusters[0].Contains(Position{}) {
		t.Errorf("clusters: got %v, want one cluster holding (0,0)", membership(clusters))
	}
}

func TestFloodFill_ZeroArea(t *testing.T) {
	src, _ := NewMemorySource(0, 7)
	g, err := NewGrid(src)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if clusters := FloodFill(g, Options{Tolerance: 10}); len(clusters) != 0 {
		t.Errorf("clusters: got %d, want 0", len(clusters))
	}
}

func TestFloodFill_LargeUniformRegion(t *testing.T) {
	const w, h = 400, 300
	src, _ := NewMemorySource(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			_ = src.Set(x, y, blue)
		}
	}
	g, err := NewGrid(src)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	clusters := FloodFill(g, Options{Tolerance: 0})
	if len(clusters) != 1 {
		t.Fatalf("clusters: got %d, want 1", len(clusters))
	}
	if clusters[0].Len() != w*h {
		t.Errorf("cluster size: got %d, want %d", clusters[0].Len(), w*h)
	}
}

func TestFloodFill_MatchesRecursiveReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 40; i++ {
		w, h := 1+rng.Intn(12), 1+rng.Intn(12)
		rows := randomRows(rng, w, h)
		for _, opts := range []Options{
			{Tolerance: 0},
			{Tolerance: 5},
			{Tolerance: 30},
			{Tolerance: 5, RescanRejected: true},
		} {
			g := gridFromRows(t, rows)
			got := membership(FloodFill(g, opts))
			want := recursiveFloodFill(g, opts)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("%dx%d %+v: got %v, want %v", w, h, opts, got, want)
			}
		}
	}
}

func TestFloodFill_RerunResetsOwnership(t *testing.T) {
	g := gridFromRows(t, [][]Color{{red, blue}, {blue, red}})
	first := membership(FloodFill(g, Options{Tolerance: 10}))
	second := FloodFill(g, Options{Tolerance: 10})
	checkPartition(t, g, second)

	if !reflect.DeepEqual(first, membership(second)) {
		t.Errorf("rerun differs: %v vs %v", first, membership(second))
	}
}
