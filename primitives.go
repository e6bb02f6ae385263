package ssd1351

import (
	"image"

	"github.com/BeatGlow/ssd1351/pixel"
)

// SetWindow sets the inclusive column and row range that receives the pixel
// data sent next, and starts a memory write.
func (d *Display) SetWindow(x0, y0, x1, y1 int) error {
	return d.commands([][]byte{
		{ssd1351SETCOLUMN, byte(x0), byte(x1)}, // Column address
		{ssd1351SETROW, byte(y0), byte(y1)},    // Row address
		{ssd1351WRITERAM},                      // Write to RAM
	})
}

// clip applies the edge policy to a span or rectangle. It reports false if
// nothing is left to paint.
//
// Shapes starting beyond the panel are dropped. Shapes crossing the far edge
// lose their last row or column as well, unless ExactClip is set.
func (d *Display) clip(x, y, w, h int) (int, int, int, int, bool) {
	if x >= d.width || y >= d.height {
		return x, y, w, h, false
	}
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}

	edge := 1
	if d.exactClip {
		edge = 0
	}
	if x+w > d.width {
		w = d.width - x - edge
	}
	if y+h > d.height {
		h = d.height - y - edge
	}
	return x, y, w, h, w > 0 && h > 0
}

// DrawPixel paints a single pixel. Pixels outside of the panel are ignored.
func (d *Display) DrawPixel(x, y int, c pixel.CRGB16) error {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return nil
	}
	if d.fb.ShouldSkip(x, y, c) {
		return nil
	}

	if err := d.SetWindow(x, y, x, y); err != nil {
		return err
	}
	b := c.Bytes()
	if err := d.c.Data(b[:]...); err != nil {
		return err
	}
	d.fb.Set(x, y, c)
	return nil
}

// FillRect paints a w by h rectangle with its top left corner at (x, y).
func (d *Display) FillRect(x, y, w, h int, c pixel.CRGB16) error {
	cx, cy, cw, ch, ok := d.clip(x, y, w, h)
	if !ok {
		d.logf("fill (%d,%d) %dx%d outside of panel", x, y, w, h)
		return nil
	}
	return d.fill(cx, cy, cw, ch, c)
}

// FillScreen paints the whole panel.
func (d *Display) FillScreen(c pixel.CRGB16) error {
	return d.FillRect(0, 0, d.width, d.height, c)
}

// DrawFastHLine paints a horizontal line of w pixels starting at (x, y).
func (d *Display) DrawFastHLine(x, y, w int, c pixel.CRGB16) error {
	cx, cy, cw, ch, ok := d.clip(x, y, w, 1)
	if !ok {
		return nil
	}
	return d.fill(cx, cy, cw, ch, c)
}

// DrawFastVLine paints a vertical line of h pixels starting at (x, y).
func (d *Display) DrawFastVLine(x, y, h int, c pixel.CRGB16) error {
	cx, cy, cw, ch, ok := d.clip(x, y, 1, h)
	if !ok {
		return nil
	}
	return d.fill(cx, cy, cw, ch, c)
}

// fill writes an already clipped rectangle. Fills always write through, the
// shadow buffer is only updated once the panel accepted all data.
func (d *Display) fill(x, y, w, h int, c pixel.CRGB16) error {
	if err := d.SetWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	if err := d.batch.Repeat(d.c, c.Bytes(), w*h); err != nil {
		return err
	}
	d.fb.Fill(image.Rect(x, y, x+w, y+h), c)
	return nil
}

// DrawBitmap copies img to the panel with its top left corner at (x, y). An
// image that doesn't fit on the panel entirely is not drawn.
func (d *Display) DrawBitmap(img *pixel.CRGB16Image, x, y int) error {
	if img == nil {
		return nil
	}
	var (
		r = img.Bounds()
		w = r.Dx()
		h = r.Dy()
	)
	if w == 0 || h == 0 {
		return nil
	}
	if x < 0 || y < 0 || x+w > d.width || y+h > d.height {
		d.logf("bitmap %dx%d at (%d,%d) does not fit", w, h, x, y)
		return nil
	}

	if err := d.SetWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	data := d.row[:0]
	for row := r.Min.Y; row < r.Max.Y; row++ {
		data = img.RowBytes(data, r.Min.X, r.Max.X, row)
	}
	d.row = data
	if err := d.batch.Write(d.c, data); err != nil {
		return err
	}
	d.fb.Blit(image.Pt(x, y), img)
	return nil
}

// DrawImage converts img to the panel color format and draws it with its top
// left corner at (x, y), see DrawBitmap.
func (d *Display) DrawImage(img image.Image, x, y int) error {
	return d.DrawBitmap(pixel.Convert(img), x, y)
}
