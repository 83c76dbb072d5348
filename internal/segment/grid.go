package segment

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a position outside a grid or source
	// extent is queried.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrInvalidDimensions is returned for negative widths or heights.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// Position is an integer grid coordinate. It is a comparable value and is
// used directly as a map key.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Pixel is a grid position together with its color.
type Pixel struct {
	Pos   Position `json:"pos"`
	Color Color    `json:"color"`
}

// Source supplies the colors a Grid is built from. Implementations must
// return an error wrapping ErrOutOfBounds for coordinates outside
// 0 <= x < Width(), 0 <= y < Height().
type Source interface {
	Width() int
	Height() int
	ColorAt(x, y int) (Color, error)
}

// unowned marks a grid position that no cluster has claimed yet.
const unowned = -1

// Grid is a fixed-size table of pixel colors plus the ownership table that
// maps each position to the arena index of the cluster holding it.
type Grid struct {
	width  int
	height int
	colors []Color
	owner  []int
}

// NewGrid reads every color of src once and returns a grid of the same
// dimensions with no position owned.
func NewGrid(src Source) (*Grid, error) {
	w, h := src.Width(), src.Height()
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}

	g := &Grid{
		width:  w,
		height: h,
		colors: make([]Color, w*h),
		owner:  make([]int, w*h),
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c, err := src.ColorAt(x, y)
			if err != nil {
				return nil, fmt.Errorf("failed to read source at (%d,%d): %w", x, y, err)
			}
			i := g.index(Position{X: x, Y: y})
			g.colors[i] = c
			g.owner[i] = unowned
		}
	}
	return g, nil
}

// Width returns the grid width in pixels.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in pixels.
func (g *Grid) Height() int { return g.height }

// Len returns the number of positions in the grid.
func (g *Grid) Len() int { return g.width * g.height }

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// ColorAt returns the color stored at p.
func (g *Grid) ColorAt(p Position) (Color, error) {
	if !g.Contains(p) {
		return Color{}, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, p.X, p.Y, g.width, g.height)
	}
	return g.colors[g.index(p)], nil
}

// Pixel returns the pixel at p.
func (g *Grid) Pixel(p Position) (Pixel, error) {
	c, err := g.ColorAt(p)
	if err != nil {
		return Pixel{}, err
	}
	return Pixel{Pos: p, Color: c}, nil
}

// Owner returns the arena index of the cluster that owns p. ok is false when
// p is outside the grid or not yet owned.
func (g *Grid) Owner(p Position) (id int, ok bool) {
	if !g.Contains(p) {
		return 0, false
	}
	id = g.owner[g.index(p)]
	if id == unowned {
		return 0, false
	}
	return id, true
}

// Reset clears every ownership entry so the grid can be clustered again.
func (g *Grid) Reset() {
	for i := range g.owner {
		g.owner[i] = unowned
	}
}

// pixelAt is the unchecked variant of Pixel for callers that already
// verified p with Contains.
func (g *Grid) pixelAt(p Position) Pixel {
	return Pixel{Pos: p, Color: g.colors[g.index(p)]}
}

func (g *Grid) owned(p Position) bool {
	return g.owner[g.index(p)] != unowned
}

func (g *Grid) setOwner(p Position, id int) {
	g.owner[g.index(p)] = id
}

func (g *Grid) index(p Position) int {
	return p.X*g.height + p.Y
}

// MemorySource is an in-memory Source, useful for generated buffers and
// test fixtures. The zero-area MemorySource is valid.
type MemorySource struct {
	width  int
	height int
	pix    []Color
}

// NewMemorySource returns a width x height source with every color set to
// the zero Color.
func NewMemorySource(width, height int) (*MemorySource, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &MemorySource{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}, nil
}

// Width implements Source.
func (m *MemorySource) Width() int { return m.width }

// Height implements Source.
func (m *MemorySource) Height() int { return m.height }

// ColorAt implements Source.
func (m *MemorySource) ColorAt(x, y int) (Color, error) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Color{}, fmt.Errorf("%w: (%d,%d) in %dx%d source", ErrOutOfBounds, x, y, m.width, m.height)
	}
	return m.pix[y*m.width+x], nil
}

// Set stores c at (x, y).
func (m *MemorySource) Set(x, y int, c Color) error {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return fmt.Errorf("%w: (%d,%d) in %dx%d source", ErrOutOfBounds, x, y, m.width, m.height)
	}
	m.pix[y*m.width+x] = c
	return nil
}
