package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image.
//
// Every byte holds one column of 8 vertically stacked pixels, least
// significant bit on top. This is the layout of the glcd font tables.
type MonoVerticalLSBImage struct {
	Buffer
}

func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	bands := ((h + 7) & ^7) / 8 // round up to whole bytes
	return &MonoVerticalLSBImage{
		Buffer: makeBuffer(w, h, w, bands*w),
	}
}

// NewMonoVerticalLSBImageFrom wraps pix without copying it.
func NewMonoVerticalLSBImageFrom(w, h int, pix []byte) *MonoVerticalLSBImage {
	return &MonoVerticalLSBImage{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    pix,
			Stride: w,
		},
	}
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.BitAt(x, y)}
}

// BitAt reports whether the pixel at (x, y) is lit. Out of bounds pixels are off.
func (p *MonoVerticalLSBImage) BitAt(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return false
	}
	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	return p.Pix[pos]&bit != 0
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	if monoModel(c).(Mono).On {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// CRGB16Image is a 16-bits per pixel 5-6-5-bit RGB image.
type CRGB16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCRGB16Image(w, h int) *CRGB16Image {
	return &CRGB16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CRGB16Image) ColorModel() color.Model {
	return CRGB16Model
}

func (p *CRGB16Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *CRGB16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.CRGB16At(x, y)
}

// CRGB16At returns the packed color at (x, y), or black when out of bounds.
func (p *CRGB16Image) CRGB16At(x, y int) CRGB16 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return CRGB16{}
	}
	return CRGB16{p.Order.Uint16(p.Pix[p.PixOffset(x, y):])}
}

func (p *CRGB16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := crgb16Model(c).(CRGB16).V
	p.Order.PutUint16(p.Pix[p.PixOffset(x, y):], v)
}

// SetCRGB16 stores a packed color without going through the color model.
func (p *CRGB16Image) SetCRGB16(x, y int, c CRGB16) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Order.PutUint16(p.Pix[p.PixOffset(x, y):], c.V)
}

func (p *CRGB16Image) Fill(c color.Color) {
	value := crgb16Model(c).(CRGB16).V
	bytes := make([]byte, 2)
	p.Order.PutUint16(bytes, value)
	for i, l := 0, len(p.Pix); i < l; i += 2 {
		copy(p.Pix[i:], bytes)
	}
}

// FillRect fills the part of r inside the image with c.
func (p *CRGB16Image) FillRect(r image.Rectangle, c CRGB16) {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return
	}
	var bytes [2]byte
	p.Order.PutUint16(bytes[:], c.V)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := p.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			copy(p.Pix[i:], bytes[:])
			i += 2
		}
	}
}

// RowBytes returns the big endian wire encoding of the row segment
// [x0, x1) at y, appended to dst.
func (p *CRGB16Image) RowBytes(dst []byte, x0, x1, y int) []byte {
	for x := x0; x < x1; x++ {
		v := p.CRGB16At(x, y).V
		dst = append(dst, byte(v>>8), byte(v))
	}
	return dst
}

// Convert returns a copy of img in the 5-6-5 format, with its origin moved
// to (0, 0).
func Convert(img image.Image) *CRGB16Image {
	b := img.Bounds()
	out := NewCRGB16Image(b.Dx(), b.Dy())
	if src, ok := img.(*CRGB16Image); ok && src.Order == binary.BigEndian && src.Rect.Min == (image.Point{}) && src.Stride == b.Dx()*2 {
		copy(out.Pix, src.Pix)
		return out
	}
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}

// Interface checks.
var (
	_ Image = (*MonoVerticalLSBImage)(nil)
	_ Image = (*CRGB16Image)(nil)
)
