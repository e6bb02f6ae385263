package ssd1351

import (
	"github.com/BeatGlow/ssd1351/draw"
	"github.com/BeatGlow/ssd1351/pixel"
)

// DrawLine draws a line between (x0, y0) and (x1, y1).
func (d *Display) DrawLine(x0, y0, x1, y1 int, c pixel.CRGB16) error {
	return draw.Line(d, x0, y0, x1, y1, c)
}

// DrawCircle draws a circle outline with radius r around (x0, y0).
func (d *Display) DrawCircle(x0, y0, r int, c pixel.CRGB16) error {
	return draw.Circle(d, x0, y0, r, c)
}

// FillCircle draws a filled circle with radius r around (x0, y0).
func (d *Display) FillCircle(x0, y0, r int, c pixel.CRGB16) error {
	return draw.FilledCircle(d, x0, y0, r, c)
}

// DrawRect draws a rectangle outline.
func (d *Display) DrawRect(x, y, w, h int, c pixel.CRGB16) error {
	return draw.Rectangle(d, x, y, w, h, c)
}

// DrawRoundRect draws a rectangle outline with radius r rounded corners.
func (d *Display) DrawRoundRect(x, y, w, h, r int, c pixel.CRGB16) error {
	return draw.RoundedRectangle(d, x, y, w, h, r, c)
}

// FillRoundRect draws a filled rectangle with radius r rounded corners.
func (d *Display) FillRoundRect(x, y, w, h, r int, c pixel.CRGB16) error {
	return draw.RoundedBox(d, x, y, w, h, r, c)
}

func (d *Display) DrawTriangle(x0, y0, x1, y1, x2, y2 int, c pixel.CRGB16) error {
	return draw.Triangle(d, x0, y0, x1, y1, x2, y2, c)
}

func (d *Display) FillTriangle(x0, y0, x1, y1, x2, y2 int, c pixel.CRGB16) error {
	return draw.FilledTriangle(d, x0, y0, x1, y1, x2, y2, c)
}

// Interface checks.
var _ draw.Target = (*Display)(nil)
