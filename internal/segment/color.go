package segment

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// distanceScale converts the raw redmean magnitude into tolerance units.
// Practical tolerances fall roughly in the 0-100 range.
const distanceScale = 7.64

// Color is an 8-bit, non-premultiplied RGBA color.
//
// Color implements color.Color so clusters can be drawn onto any
// draw.Image without conversion.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex returns the color as "#rrggbb". Alpha is not included.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// FromColor converts any color.Color to an 8-bit non-premultiplied Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Distance returns the redmean difference score between two colors.
//
// The score is a cheap approximation of perceptual difference:
//
//	rmean = (a.R + b.R) / 2
//	raw   = floor(sqrt(((512+rmean)*dr*dr >> 8) + 4*dg*dg + ((767-rmean)*db*db >> 8)))
//	score = raw / 7.64
//
// Everything up to the division is integer arithmetic; the square root is
// truncated, so scores move in steps of 1/7.64. Alpha is ignored.
// Identical colors score 0. The formula weights channels by the mean red of
// both colors, so callers should not rely on exact symmetry.
func Distance(a, b Color) float64 {
	rmean := (int64(a.R) + int64(b.R)) / 2
	dr := int64(a.R) - int64(b.R)
	dg := int64(a.G) - int64(b.G)
	db := int64(a.B) - int64(b.B)

	sum := (((512 + rmean) * dr * dr) >> 8) +
		4*dg*dg +
		(((767 - rmean) * db * db) >> 8)

	return math.Floor(math.Sqrt(float64(sum))) / distanceScale
}
