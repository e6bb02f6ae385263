package draw

import "github.com/BeatGlow/ssd1351/pixel"

// Corner masks for the quarter circle helpers.
const (
	cornerTopLeft     = 1
	cornerTopRight    = 2
	cornerBottomRight = 4
	cornerBottomLeft  = 8
)

// Line draws a line between (x0, y0) and (x1, y1), both inclusive.
func Line(dst Target, x0, y0, x1, y1 int, c pixel.CRGB16) error {
	p := &plotter{dst: dst, c: c}
	bresenham(p, x0, y0, x1, y1)
	return p.err
}

func bresenham(p *plotter, x0, y0, x1, y1 int) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	var (
		dx    = x1 - x0
		dy    = abs(y1 - y0)
		e     = dx / 2
		ystep = -1
	)
	if y0 < y1 {
		ystep = 1
	}

	for ; x0 <= x1 && p.err == nil; x0++ {
		if steep {
			p.pixel(y0, x0)
		} else {
			p.pixel(x0, y0)
		}
		e -= dy
		if e < 0 {
			y0 += ystep
			e += dx
		}
	}
}

// Circle draws the outline of a circle with radius r around (x0, y0).
func Circle(dst Target, x0, y0, r int, c pixel.CRGB16) error {
	if r < 0 {
		return nil
	}

	p := &plotter{dst: dst, c: c}
	p.pixel(x0, y0+r)
	p.pixel(x0, y0-r)
	p.pixel(x0+r, y0)
	p.pixel(x0-r, y0)

	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)
	for x < y && p.err == nil {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		p.pixel(x0+x, y0+y)
		p.pixel(x0-x, y0+y)
		p.pixel(x0+x, y0-y)
		p.pixel(x0-x, y0-y)
		p.pixel(x0+y, y0+x)
		p.pixel(x0-y, y0+x)
		p.pixel(x0+y, y0-x)
		p.pixel(x0-y, y0-x)
	}
	return p.err
}

// FilledCircle draws a filled circle with radius r around (x0, y0).
func FilledCircle(dst Target, x0, y0, r int, c pixel.CRGB16) error {
	if r < 0 {
		return nil
	}

	p := &plotter{dst: dst, c: c}
	p.vline(x0, y0-r, 2*r+1)
	filledRoundedCorner(p, x0, y0, r, 3, 0)
	return p.err
}

// Rectangle draws the outline of a w by h rectangle.
func Rectangle(dst Target, x, y, w, h int, c pixel.CRGB16) error {
	p := &plotter{dst: dst, c: c}
	p.hline(x, y, w)
	p.hline(x, y+h-1, w)
	p.vline(x, y, h)
	p.vline(x+w-1, y, h)
	return p.err
}

// RoundedRectangle draws a rectangle outline with radius r rounded corners.
func RoundedRectangle(dst Target, x, y, w, h, r int, c pixel.CRGB16) error {
	if r < 0 {
		return nil
	}

	p := &plotter{dst: dst, c: c}
	p.hline(x+r, y, w-2*r)
	p.hline(x+r, y+h-1, w-2*r)
	p.vline(x, y+r, h-2*r)
	p.vline(x+w-1, y+r, h-2*r)
	roundedCorner(p, x+r, y+r, r, cornerTopLeft)
	roundedCorner(p, x+w-r-1, y+r, r, cornerTopRight)
	roundedCorner(p, x+w-r-1, y+h-r-1, r, cornerBottomRight)
	roundedCorner(p, x+r, y+h-r-1, r, cornerBottomLeft)
	return p.err
}

// RoundedBox draws a filled rectangle with radius r rounded corners.
func RoundedBox(dst Target, x, y, w, h, r int, c pixel.CRGB16) error {
	if r < 0 {
		return nil
	}

	p := &plotter{dst: dst, c: c}
	p.rect(x+r, y, w-2*r, h)
	filledRoundedCorner(p, x+w-r-1, y+r, r, 1, h-2*r-1)
	filledRoundedCorner(p, x+r, y+r, r, 2, h-2*r-1)
	return p.err
}

// Triangle draws the outline of the triangle with the given corners.
func Triangle(dst Target, x0, y0, x1, y1, x2, y2 int, c pixel.CRGB16) error {
	p := &plotter{dst: dst, c: c}
	bresenham(p, x0, y0, x1, y1)
	bresenham(p, x1, y1, x2, y2)
	bresenham(p, x2, y2, x0, y0)
	return p.err
}

// FilledTriangle fills the triangle with the given corners using horizontal
// spans.
func FilledTriangle(dst Target, x0, y0, x1, y1, x2, y2 int, c pixel.CRGB16) error {
	// Sort by y, y0 <= y1 <= y2.
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	p := &plotter{dst: dst, c: c}

	// All on one line.
	if y0 == y2 {
		a, b := min(x0, x1, x2), max(x0, x1, x2)
		p.hline(a, y0, b-a+1)
		return p.err
	}

	var (
		dx01 = x1 - x0
		dy01 = y1 - y0
		dx02 = x2 - x0
		dy02 = y2 - y0
		dx12 = x2 - x1
		dy12 = y2 - y1
		sa   int
		sb   int
	)

	// Upper part, edges 0-1 and 0-2. The y1 scanline belongs here only for
	// a flat bottom, otherwise the lower part starts on it.
	last := y1 - 1
	if y1 == y2 {
		last = y1
	}
	for y := y0; y <= last && p.err == nil; y++ {
		if dy01 == 0 || dy02 == 0 {
			continue
		}
		a := x0 + sa/dy01
		b := x0 + sb/dy02
		sa += dx01
		sb += dx02
		if a > b {
			a, b = b, a
		}
		p.hline(a, y, b-a+1)
	}
	if y1 == y2 {
		return p.err
	}

	// Lower part, edges 1-2 and 0-2.
	sa = 0
	sb = dx02 * (y1 - y0)
	for y := y1; y <= y2 && p.err == nil; y++ {
		if dy12 == 0 || dy02 == 0 {
			continue
		}
		a := x1 + sa/dy12
		b := x0 + sb/dy02
		sa += dx12
		sb += dx02
		if a > b {
			a, b = b, a
		}
		p.hline(a, y, b-a+1)
	}
	return p.err
}

// roundedCorner draws the quarter circle arcs selected by mask.
func roundedCorner(p *plotter, x0, y0, r, mask int) {
	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)
	for x < y && p.err == nil {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		if mask&cornerBottomRight != 0 {
			p.pixel(x0+x, y0+y)
			p.pixel(x0+y, y0+x)
		}
		if mask&cornerTopRight != 0 {
			p.pixel(x0+x, y0-y)
			p.pixel(x0+y, y0-x)
		}
		if mask&cornerBottomLeft != 0 {
			p.pixel(x0-y, y0+x)
			p.pixel(x0-x, y0+y)
		}
		if mask&cornerTopLeft != 0 {
			p.pixel(x0-y, y0-x)
			p.pixel(x0-x, y0-y)
		}
	}
}

// filledRoundedCorner fills the right (mask 1) and/or left (mask 2) half of
// a circle with vertical spans, each stretched by delta pixels downwards.
func filledRoundedCorner(p *plotter, x0, y0, r, mask, delta int) {
	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)
	for x < y && p.err == nil {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		if mask&1 != 0 {
			p.vline(x0+x, y0-y, 2*y+1+delta)
			p.vline(x0+y, y0-x, 2*x+1+delta)
		}
		if mask&2 != 0 {
			p.vline(x0-x, y0-y, 2*y+1+delta)
			p.vline(x0-y, y0-x, 2*x+1+delta)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
