package segment

import (
	"math/rand"
	"reflect"
	"testing"
)

func clusterOf(id int, c Color, ps ...Position) *Cluster {
	cl := &Cluster{ID: id, Color: c, Pixels: make(map[Position]Pixel)}
	for _, p := range ps {
		cl.Pixels[p] = Pixel{Pos: p, Color: c}
	}
	return cl
}

func TestMerge_AdjacentSimilar(t *testing.T) {
	g := gridFromRows(t, [][]Color{{white, white}, {white, black}})
	clusters := FloodFill(g, Options{Tolerance: 10})
	if len(clusters) < 2 {
		t.Fatalf("fixture: got %d flood clusters, want at least 2", len(clusters))
	}

	merged := Merge(g, clusters, 10)
	checkPartition(t, g, merged)
	if len(merged) != 2 {
		t.Errorf("merged clusters: got %v, want 2", membership(merged))
	}
}

func TestMerge_DiagonalAdjacency(t *testing.T) {
	a := clusterOf(0, red, Position{X: 0, Y: 0})
	b := clusterOf(1, red, Position{X: 1, Y: 1})

	merged := Merge(nil, []*Cluster{a, b}, 0)
	if len(merged) != 1 || merged[0] != a || a.Len() != 2 {
		t.Errorf("merged: got %v, want a single cluster of 2", membership(merged))
	}
}

func TestMerge_UpwardAdjacency(t *testing.T) {
	// Merge uses all eight neighbors, including those flood-fill skips.
	a := clusterOf(0, red, Position{X: 0, Y: 1})
	b := clusterOf(1, red, Position{X: 1, Y: 0})

	merged := Merge(nil, []*Cluster{a, b}, 0)
	if len(merged) != 1 {
		t.Errorf("merged: got %v, want 1 cluster", membership(merged))
	}
}

func TestMerge_NotAdjacent(t *testing.T) {
	a := clusterOf(0, red, Position{X: 0, Y: 0})
	b := clusterOf(1, red, Position{X: 2, Y: 0})

	merged := Merge(nil, []*Cluster{a, b}, 100)
	if len(merged) != 2 {
		t.Errorf("merged: got %v, want 2 clusters", membership(merged))
	}
}

func TestMerge_ColorsTooFar(t *testing.T) {
	a := clusterOf(0, red, Position{X: 0, Y: 0})
	b := clusterOf(1, blue, Position{X: 1, Y: 0})

	merged := Merge(nil, []*Cluster{a, b}, 10)
	if len(merged) != 2 {
		t.Errorf("merged: got %v, want 2 clusters", membership(merged))
	}
	if a.Color != red || b.Color != blue {
		t.Error("cluster colors changed")
	}
}

func TestMerge_SeesEarlierMerges(t *testing.T) {
	// a only touches c through b; absorbing b first lets a reach c in the
	// same pass.
	a := clusterOf(0, red, Position{X: 0, Y: 0})
	b := clusterOf(1, red, Position{X: 1, Y: 0})
	c := clusterOf(2, red, Position{X: 2, Y: 0})

	merged := Merge(nil, []*Cluster{a, b, c}, 0)
	if len(merged) != 1 || merged[0] != a || a.Len() != 3 {
		t.Errorf("merged: got %v, want a single cluster of 3", membership(merged))
	}
}

func TestMerge_SinglePass(t *testing.T) {
	x := Color{R: 100, G: 100, B: 100, A: 255}
	y := Color{R: 100, G: 110, B: 100, A: 255}
	z := Color{R: 100, G: 120, B: 100, A: 255}
	const tolerance = 3

	// a absorbs b. c is similar to b but not to a, and b is empty by the
	// time it could have absorbed c, so c stays separate.
	a := clusterOf(0, x, Position{X: 0, Y: 0})
	b := clusterOf(1, y, Position{X: 1, Y: 0})
	c := clusterOf(2, z, Position{X: 2, Y: 0})

	merged := Merge(nil, []*Cluster{a, b, c}, tolerance)
	want := [][]Position{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 2, Y: 0}},
	}
	if got := membership(merged); !reflect.DeepEqual(got, want) {
		t.Errorf("merged: got %v, want %v", got, want)
	}
}

func TestMerge_StableOrder(t *testing.T) {
	a := clusterOf(0, blue, Position{X: 5, Y: 5})
	b := clusterOf(1, red, Position{X: 0, Y: 0})
	c := clusterOf(2, white, Position{X: 9, Y: 9})
	d := clusterOf(3, red, Position{X: 1, Y: 0})

	merged := Merge(nil, []*Cluster{a, b, c, d}, 1)
	if len(merged) != 3 {
		t.Fatalf("merged: got %d clusters, want 3", len(merged))
	}
	if merged[0] != a || merged[1] != b || merged[2] != c {
		t.Errorf("survivor order changed: %v", membership(merged))
	}
	if d.Len() != 0 {
		t.Errorf("absorbed cluster should be empty, has %d pixels", d.Len())
	}
}

func TestMerge_LeavesInputSlice(t *testing.T) {
	a := clusterOf(0, red, Position{X: 0, Y: 0})
	b := clusterOf(1, red, Position{X: 1, Y: 0})
	in := []*Cluster{a, b}

	Merge(nil, in, 0)
	if in[0] != a || in[1] != b {
		t.Error("Merge modified the input slice")
	}
}

func TestMerge_UpdatesOwnership(t *testing.T) {
	g := gridFromRows(t, [][]Color{
		{red, red},
		{blue, blue},
	})
	clusters := FloodFill(g, Options{Tolerance: 10})
	if len(clusters) != 3 {
		t.Fatalf("fixture: got %d flood clusters, want 3", len(clusters))
	}

	merged := Merge(g, clusters, 10)
	checkPartition(t, g, merged)

	id, ok := g.Owner(Position{X: 1, Y: 1})
	if !ok || id != clusters[1].ID {
		t.Errorf("owner of (1,1): got %d (%v), want %d", id, ok, clusters[1].ID)
	}
}

func TestMerge_PartitionOnRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 30; i++ {
		w, h := 1+rng.Intn(16), 1+rng.Intn(16)
		rows := randomRows(rng, w, h)
		for _, tol := range []float64{0, 4, 20, 80} {
			g := gridFromRows(t, rows)
			clusters := FloodFill(g, Options{Tolerance: tol})
			checkPartition(t, g, clusters)

			merged := Merge(g, clusters, tol)
			checkPartition(t, g, merged)
			if len(merged) > len(clusters) {
				t.Errorf("merge grew cluster count %d -> %d", len(clusters), len(merged))
			}
		}
	}
}

func TestMerge_Empty(t *testing.T) {
	if merged := Merge(nil, nil, 10); len(merged) != 0 {
		t.Errorf("merged: got %d, want 0", len(merged))
	}
}
