// Package draw implements the shape rasterizer.
//
// Every shape is decomposed into the four primitives of a [Target]: single
// pixels, horizontal and vertical spans, and filled rectangles. The
// rasterizer never clips; that is left to the target.
package draw

import (
	"image"
	"image/draw"

	"github.com/BeatGlow/ssd1351/pixel"
)

// Target receives the primitives a shape is decomposed into.
type Target interface {
	// DrawPixel paints a single pixel.
	DrawPixel(x, y int, c pixel.CRGB16) error

	// DrawFastHLine paints w pixels to the right of (x, y), inclusive.
	DrawFastHLine(x, y, w int, c pixel.CRGB16) error

	// DrawFastVLine paints h pixels below (x, y), inclusive.
	DrawFastVLine(x, y, h int, c pixel.CRGB16) error

	// FillRect paints a w by h rectangle with its top left corner at (x, y).
	FillRect(x, y, w, h int, c pixel.CRGB16) error
}

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// On returns a Target that paints into img. Pixels outside of the image
// bounds are dropped.
func On(img Image) Target {
	return imageTarget{img}
}

type imageTarget struct {
	img Image
}

func (t imageTarget) DrawPixel(x, y int, c pixel.CRGB16) error {
	t.img.Set(x, y, c)
	return nil
}

func (t imageTarget) DrawFastHLine(x, y, w int, c pixel.CRGB16) error {
	return t.FillRect(x, y, w, 1, c)
}

func (t imageTarget) DrawFastVLine(x, y, h int, c pixel.CRGB16) error {
	return t.FillRect(x, y, 1, h, c)
}

func (t imageTarget) FillRect(x, y, w, h int, c pixel.CRGB16) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(t.img.Bounds())
	if i, ok := t.img.(*pixel.CRGB16Image); ok {
		i.FillRect(r, c)
		return nil
	}
	draw.Draw(t.img, r, image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

// plotter forwards primitives to a Target until the first error.
type plotter struct {
	dst Target
	c   pixel.CRGB16
	err error
}

func (p *plotter) pixel(x, y int) {
	if p.err == nil {
		p.err = p.dst.DrawPixel(x, y, p.c)
	}
}

func (p *plotter) hline(x, y, w int) {
	if p.err == nil {
		p.err = p.dst.DrawFastHLine(x, y, w, p.c)
	}
}

func (p *plotter) vline(x, y, h int) {
	if p.err == nil {
		p.err = p.dst.DrawFastVLine(x, y, h, p.c)
	}
}

func (p *plotter) rect(x, y, w, h int) {
	if p.err == nil {
		p.err = p.dst.FillRect(x, y, w, h, p.c)
	}
}
