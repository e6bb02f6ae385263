// Package framebuffer keeps the last known contents of the panel.
//
// The driver updates the [Buffer] after every confirmed write, and consults it
// before single pixel writes to skip pixels that already have the requested
// color. Rectangle and line fills always write through.
//
// On Linux the shadow buffer can additionally be mirrored to the operating
// system's native framebuffer device with [OpenDevice], which is handy for
// previewing output without the panel attached.
package framebuffer

import (
	"fmt"
	"image"

	"github.com/BeatGlow/ssd1351/pixel"
)

// Buffer is a dense grid of 5-6-5 colors with dirty-check support.
//
// Out of range coordinates are a programming error: callers clip first, so
// Buffer panics instead of silently ignoring them.
type Buffer struct {
	img      *pixel.CRGB16Image
	optimize bool
}

// New returns an all black buffer of w by h pixels.
func New(w, h int) *Buffer {
	return &Buffer{img: pixel.NewCRGB16Image(w, h)}
}

func (b *Buffer) Bounds() image.Rectangle {
	return b.img.Rect
}

// Image returns the backing image. Mutating it bypasses the dirty-check
// bookkeeping.
func (b *Buffer) Image() *pixel.CRGB16Image {
	return b.img
}

func (b *Buffer) check(x, y int) {
	if !(image.Point{X: x, Y: y}).In(b.img.Rect) {
		panic(fmt.Sprintf("framebuffer: pixel (%d,%d) outside of %s", x, y, b.img.Rect))
	}
}

// At returns the color at (x, y).
func (b *Buffer) At(x, y int) pixel.CRGB16 {
	b.check(x, y)
	return b.img.CRGB16At(x, y)
}

// Set records the color at (x, y).
func (b *Buffer) Set(x, y int, c pixel.CRGB16) {
	b.check(x, y)
	b.img.SetCRGB16(x, y, c)
}

// Fill records c for every pixel in r.
func (b *Buffer) Fill(r image.Rectangle, c pixel.CRGB16) {
	if r.Empty() {
		return
	}
	if !r.In(b.img.Rect) {
		panic(fmt.Sprintf("framebuffer: fill %s outside of %s", r, b.img.Rect))
	}
	b.img.FillRect(r, c)
}

// Blit records src with its origin at p.
func (b *Buffer) Blit(p image.Point, src *pixel.CRGB16Image) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(p)
	if r.Empty() {
		return
	}
	if !r.In(b.img.Rect) {
		panic(fmt.Sprintf("framebuffer: blit %s outside of %s", r, b.img.Rect))
	}
	sp := src.Bounds().Min
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			b.img.SetCRGB16(r.Min.X+x, r.Min.Y+y, src.CRGB16At(sp.X+x, sp.Y+y))
		}
	}
}

// Reset zeroes the buffer without touching the optimization flag.
func (b *Buffer) Reset() {
	b.img.Clear()
}

// SetOptimize toggles the dirty-check.
func (b *Buffer) SetOptimize(enabled bool) {
	b.optimize = enabled
}

func (b *Buffer) Optimize() bool {
	return b.optimize
}

// ShouldSkip reports whether writing c at (x, y) can be skipped because the
// dirty-check is enabled and the pixel already has that color.
func (b *Buffer) ShouldSkip(x, y int, c pixel.CRGB16) bool {
	return b.optimize && b.At(x, y) == c
}
