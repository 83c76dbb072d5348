package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in several representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#rrggbb" (no alpha)
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// NewColorResult describes c in every supported representation.
func NewColorResult(c segment.Color) ColorResult {
	h, s, l := toColorful(c).Hsl()
	return ColorResult{
		Hex:  c.Hex(),
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

// SampleColor returns the color at (x, y) as the segmenter sees it, that is
// converted to 8-bit non-premultiplied components.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r := NewColorResult(segment.FromColor(img.At(x, y)))
	return &r, nil
}

// DistanceResult compares two colors.
type DistanceResult struct {
	A ColorResult `json:"a"`
	B ColorResult `json:"b"`

	// Redmean is the score the segmenter compares against its tolerance.
	Redmean float64 `json:"redmean"`

	// CIEDE2000 is the perceptual Delta E, for reference only.
	CIEDE2000 float64 `json:"ciede2000"`

	// WithinTolerance reports Redmean <= tolerance.
	WithinTolerance bool    `json:"within_tolerance"`
	Tolerance       float64 `json:"tolerance"`
}

// CompareColors parses two hex colors ("#rrggbb" or "#rgb") and scores them.
func CompareColors(hexA, hexB string, tolerance float64) (*DistanceResult, error) {
	a, err := parseHexColor(hexA)
	if err != nil {
		return nil, err
	}
	b, err := parseHexColor(hexB)
	if err != nil {
		return nil, err
	}

	redmean := segment.Distance(a, b)
	return &DistanceResult{
		A:               NewColorResult(a),
		B:               NewColorResult(b),
		Redmean:         math.Round(redmean*1000) / 1000,
		CIEDE2000:       math.Round(toColorful(a).DistanceCIEDE2000(toColorful(b))*1000) / 1000,
		WithinTolerance: redmean <= tolerance,
		Tolerance:       tolerance,
	}, nil
}

// ClusterShare is one entry of a segmentation palette.
type ClusterShare struct {
	Index      int     `json:"index"`      // Position in the segmentation result
	Hex        string  `json:"hex"`        // Cluster color "#rrggbb"
	Pixels     int     `json:"pixels"`     // Number of member pixels
	Percentage float64 `json:"percentage"` // Share of the image (0-100)
}

// PaletteResult lists cluster colors by coverage, largest first.
type PaletteResult struct {
	Colors []ClusterShare `json:"colors"`
}

// Palette returns up to count cluster colors of res ordered by coverage.
// Ties keep result order. A count <= 0 returns every cluster.
func Palette(res *segment.Result, count int) *PaletteResult {
	total := res.Width * res.Height
	colors := make([]ClusterShare, 0, len(res.Clusters))
	for i, c := range res.Clusters {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(c.Len())/float64(total)*10000) / 100
		}
		colors = append(colors, ClusterShare{
			Index:      i,
			Hex:        c.Color.Hex(),
			Pixels:     c.Len(),
			Percentage: pct,
		})
	}

	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Pixels > colors[j].Pixels
	})

	if count > 0 && len(colors) > count {
		colors = colors[:count]
	}
	return &PaletteResult{Colors: colors}
}

// parseHexColor accepts "#rgb" and "#rrggbb". colorful.Hex alone scans
// other lengths without error.
func parseHexColor(hex string) (segment.Color, error) {
	if !strings.HasPrefix(hex, "#") || (len(hex) != 4 && len(hex) != 7) {
		return segment.Color{}, fmt.Errorf("invalid hex color %q: want #rgb or #rrggbb", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return segment.Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return segment.Color{R: r, G: g, B: b, A: 255}, nil
}

func toColorful(c segment.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
