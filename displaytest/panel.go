package displaytest

import (
	"github.com/BeatGlow/ssd1351/pixel"
)

// SSD1351 addressing commands.
const (
	setColumn = 0x15
	setRow    = 0x75
	writeRAM  = 0x5C
)

// Panel simulates the SSD1351 display memory.
//
// Column and row windows are inclusive, and pixel data written after the
// write RAM command fills the window left to right, top to bottom,
// wrapping back to the window origin.
type Panel struct {
	Recorder

	img            *pixel.CRGB16Image
	col0, col1     int
	row0, row1     int
	x, y           int
	writing        bool
	pending        []byte
	OutsideWindow  int // pixels written outside of the memory
	DataNotWriting int // data bytes received while not in write mode
}

// NewPanel returns a simulated panel of w by h pixels.
func NewPanel(w, h int) *Panel {
	return &Panel{
		img:  pixel.NewCRGB16Image(w, h),
		col1: w - 1,
		row1: h - 1,
	}
}

// Image returns the simulated panel memory.
func (p *Panel) Image() *pixel.CRGB16Image {
	return p.img
}

func (p *Panel) Command(cmd byte, args ...byte) error {
	if err := p.Recorder.Command(cmd, args...); err != nil {
		return err
	}

	p.writing = false
	p.pending = p.pending[:0]
	switch cmd {
	case setColumn:
		if len(args) >= 2 {
			p.col0, p.col1 = int(args[0]), int(args[1])
		}
	case setRow:
		if len(args) >= 2 {
			p.row0, p.row1 = int(args[0]), int(args[1])
		}
	case writeRAM:
		p.writing = true
		p.x, p.y = p.col0, p.row0
	}
	return nil
}

func (p *Panel) Data(data ...byte) error {
	if err := p.Recorder.Data(data...); err != nil {
		return err
	}

	if !p.writing {
		p.DataNotWriting += len(data)
		return nil
	}

	p.pending = append(p.pending, data...)
	for len(p.pending) >= 2 {
		c := pixel.CRGB16{V: uint16(p.pending[0])<<8 | uint16(p.pending[1])}
		p.pending = p.pending[2:]
		p.put(c)
	}
	return nil
}

func (p *Panel) put(c pixel.CRGB16) {
	if p.x < p.img.Rect.Dx() && p.y < p.img.Rect.Dy() {
		p.img.SetCRGB16(p.x, p.y, c)
	} else {
		p.OutsideWindow++
	}
	p.x++
	if p.x > p.col1 {
		p.x = p.col0
		p.y++
		if p.y > p.row1 {
			p.y = p.row0
		}
	}
}
