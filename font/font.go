// Package font holds the fixed 5x8 glyph table used for text on the panel.
package font

import "github.com/BeatGlow/ssd1351/pixel"

// Glyph cell dimensions.
const (
	Width   = 5
	Height  = 8
	Advance = Width + 1 // one blank column between characters
)

// Degree is the table index of the degree sign.
const Degree uint8 = 0xF8

// GlyphRef selects a glyph either by character or by raw table index.
type GlyphRef struct {
	index uint8
	raw   bool
}

// Char references the glyph for r. Only the low 7 bits of the code are
// used, so anything outside ASCII folds back into the first half of the
// table. Use [Index] for the extended glyphs.
func Char(r rune) GlyphRef {
	return GlyphRef{index: uint8(r) & 0x7F}
}

// Index references the glyph stored at table index i.
func Index(i uint8) GlyphRef {
	return GlyphRef{index: i, raw: true}
}

// Index returns the resolved table index.
func (g GlyphRef) Index() uint8 {
	return g.index
}

// IsRaw reports whether g was created with [Index].
func (g GlyphRef) IsRaw() bool {
	return g.raw
}

// Lookup returns a read-only view of the glyph bitmap.
func Lookup(g GlyphRef) *pixel.MonoVerticalLSBImage {
	i := int(g.index) * Width
	return pixel.NewMonoVerticalLSBImageFrom(Width, Height, glcd[i:i+Width:i+Width])
}

// Columns returns the raw column bytes of the glyph, bit 0 at the top.
func Columns(g GlyphRef) [Width]byte {
	var out [Width]byte
	i := int(g.index) * Width
	copy(out[:], glcd[i:i+Width])
	return out
}

// For maps a rune as typed in text to its glyph. The degree sign is the only
// rune outside ASCII with a dedicated glyph.
func For(r rune) GlyphRef {
	if r == '°' {
		return Index(Degree)
	}
	return Char(r)
}
