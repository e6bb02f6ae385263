package pixel

import "image/color"

// Models for the standard color types.
var (
	MonoModel   color.Model = color.ModelFunc(monoModel)
	CRGB16Model color.Model = color.ModelFunc(crgb16Model)
)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, _ := c.RGBA()

	// These coefficients (the fractions 0.299, 0.587 and 0.114) are the same
	// as those given by the JFIF specification and used by func RGBToYCbCr in
	// ycbcr.go.
	//
	// Note that 19595 + 38470 + 7471 equals 65536.
	//
	// The 31 is 16 + 15. The 16 is the same as used in RGBToYCbCr. The 15 is
	// because the return value is 1 bit color, not 16 bit color.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{On: y != 0}
}

// CRGB16 represents a 16-bit 5-6-5 RGB color, the native pixel format of
// the SSD1351 in 65k color mode.
type CRGB16 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

// RGB565 packs 8-bit channels into a 5-6-5 color by truncating the low bits.
func RGB565(r, g, b uint8) CRGB16 {
	return CRGB16{V: uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)}
}

// Channels returns the 8-bit channel values with the truncated low bits
// cleared.
func (c CRGB16) Channels() (r, g, b uint8) {
	return uint8(c.V>>11) << 3, uint8(c.V>>5&0x3f) << 2, uint8(c.V&0x1f) << 3
}

// Bytes returns the wire encoding, high byte first.
func (c CRGB16) Bytes() [2]byte {
	return [2]byte{byte(c.V >> 8), byte(c.V)}
}

func (c CRGB16) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

func crgb16Model(c color.Color) color.Color {
	switch c := c.(type) {
	case Mono:
		if c.On {
			return CRGB16{0xffff}
		}
		return CRGB16{}
	case CRGB16:
		return c
	default:
		r, g, b, _ := c.RGBA()
		r = (r & 0xF800)
		g = (g & 0xFC00) >> 5
		b = (b & 0xF800) >> 11
		return CRGB16{uint16(r | g | b)}
	}
}
