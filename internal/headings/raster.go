package headings

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rasterizer renders heading titles to images in the Go Bold face.
// Not safe for concurrent use.
type Rasterizer struct {
	face  font.Face
	upper cases.Caser
	pad   int
}

// NewRasterizer parses the embedded Go Bold font at the given size in
// pixels.
func NewRasterizer(size float64) (*Rasterizer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("headings: invalid font size %v", size)
	}
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("headings: failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("headings: failed to create face: %w", err)
	}
	return &Rasterizer{
		face:  face,
		upper: cases.Upper(language.Und),
		pad:   max(1, int(size/8)),
	}, nil
}

// Render draws title upper-cased, white on transparent, into a tightly
// cropped image with a small padding.
func (r *Rasterizer) Render(title string) *image.RGBA {
	text := r.upper.String(title)

	metrics := r.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil() + 2*r.pad
	width := font.MeasureString(r.face, text).Ceil() + 2*r.pad

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(r.pad, r.pad+ascent),
	}
	d.DrawString(text)
	return img
}

// RenderSet renders all titles of s.
func (r *Rasterizer) RenderSet(s *Set) [Count]*image.RGBA {
	var out [Count]*image.RGBA
	for i, title := range s.Titles {
		out[i] = r.Render(title)
	}
	return out
}

// Close releases the font face.
func (r *Rasterizer) Close() error {
	return r.face.Close()
}
