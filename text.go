package ssd1351

import (
	"image/color"

	"github.com/BeatGlow/ssd1351/font"
	"github.com/BeatGlow/ssd1351/pixel"
)

// SetCursor moves the text cursor to column x, row y of the character grid.
// Positions outside of the grid are clamped.
func (d *Display) SetCursor(x, y int) {
	d.cursorX = max(0, min(x, d.width/font.Advance-1))
	d.cursorY = max(0, min(y, d.height/font.Height-1))
}

// Cursor returns the text cursor position in characters.
func (d *Display) Cursor() (x, y int) {
	return d.cursorX, d.cursorY
}

// DrawChar draws a glyph with its top left corner at (x, y) in pixels.
//
// With a transparent (or nil) background only the glyph pixels are painted.
// Otherwise the full 6x8 cell is sent as one bitmap, which is dropped when
// the cell doesn't fit on the panel.
func (d *Display) DrawChar(x, y int, g font.GlyphRef, fg pixel.CRGB16, bg color.Color) error {
	if x >= d.width || y >= d.height || x+font.Advance-1 < 0 || y+font.Height-1 < 0 {
		return nil
	}

	glyph := font.Lookup(g)
	if isTransparent(bg) {
		for col := 0; col < font.Width; col++ {
			for row := 0; row < font.Height; row++ {
				if !glyph.BitAt(col, row) {
					continue
				}
				if err := d.DrawPixel(x+col, y+row, fg); err != nil {
					return err
				}
			}
		}
		return nil
	}

	cell := pixel.NewCRGB16Image(font.Advance, font.Height)
	cell.Fill(bg)
	for col := 0; col < font.Width; col++ {
		for row := 0; row < font.Height; row++ {
			if glyph.BitAt(col, row) {
				cell.SetCRGB16(col, row, fg)
			}
		}
	}
	return d.DrawBitmap(cell, x, y)
}

func isTransparent(c color.Color) bool {
	if c == nil {
		return true
	}
	_, _, _, a := c.RGBA()
	return a == 0
}

// Write prints text at the cursor and advances it. Lines wrap at the right
// edge, and the cursor returns to the top left corner after the last row;
// there is no scrolling. A newline moves the cursor to the start of the next
// row.
func (d *Display) Write(text string, fg pixel.CRGB16, bg color.Color) error {
	for _, r := range text {
		if r == '\n' {
			d.newline()
			continue
		}
		if err := d.WriteGlyph(font.For(r), fg, bg); err != nil {
			return err
		}
	}
	return nil
}

// WriteGlyph prints a single glyph at the cursor and advances it.
func (d *Display) WriteGlyph(g font.GlyphRef, fg pixel.CRGB16, bg color.Color) error {
	if err := d.DrawChar(d.cursorX*font.Advance, d.cursorY*font.Height, g, fg, bg); err != nil {
		return err
	}
	d.cursorX++
	if d.cursorX*font.Advance > d.width-font.Advance {
		d.newline()
	}
	return nil
}

func (d *Display) newline() {
	d.cursorX = 0
	d.cursorY++
	if d.cursorY*font.Height > d.height-font.Height {
		d.cursorY = 0
	}
}
