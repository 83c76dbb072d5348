package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// SourceOptions controls how a decoded image is turned into a segment.Source.
type SourceOptions struct {
	// BlurRadius applies a Gaussian blur of this radius before sampling.
	// Zero disables smoothing, which keeps the segmentation exact.
	BlurRadius float64
}

// ImageSource is a random-access, non-premultiplied pixel buffer that
// implements segment.Source. The buffer origin is always (0,0) regardless of
// the decoded image's bounds.
type ImageSource struct {
	pix *image.NRGBA
}

// NewSource copies img into an ImageSource.
func NewSource(img image.Image, opts SourceOptions) *ImageSource {
	if opts.BlurRadius > 0 {
		img = blur.Gaussian(img, opts.BlurRadius)
	}
	return &ImageSource{pix: imaging.Clone(img)}
}

// Width implements segment.Source.
func (s *ImageSource) Width() int { return s.pix.Rect.Dx() }

// Height implements segment.Source.
func (s *ImageSource) Height() int { return s.pix.Rect.Dy() }

// ColorAt implements segment.Source.
func (s *ImageSource) ColorAt(x, y int) (segment.Color, error) {
	if x < 0 || y < 0 || x >= s.Width() || y >= s.Height() {
		return segment.Color{}, fmt.Errorf("%w: (%d,%d) in %dx%d image",
			segment.ErrOutOfBounds, x, y, s.Width(), s.Height())
	}
	i := s.pix.PixOffset(x, y)
	p := s.pix.Pix[i : i+4 : i+4]
	return segment.Color{R: p[0], G: p[1], B: p[2], A: p[3]}, nil
}
