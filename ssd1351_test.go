package ssd1351

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"testing"
	"time"

	"github.com/BeatGlow/ssd1351/displaytest"
	"github.com/BeatGlow/ssd1351/font"
	"github.com/BeatGlow/ssd1351/pixel"
)

var errTest = errors.New("test error")

func TestMain(m *testing.M) {
	sleep = func(time.Duration) {}
	os.Exit(m.Run())
}

func newTestDisplay(t *testing.T, config *Config) (*Display, *displaytest.Panel) {
	t.Helper()
	h := DefaultHeight
	if config != nil && config.Height != 0 {
		h = config.Height
	}
	p := displaytest.NewPanel(DefaultWidth, h)
	d, err := New(p, config)
	if err != nil {
		t.Fatal(err)
	}
	p.Clear()
	return d, p
}

// window returns the last addressed window as a rectangle.
func window(ops []displaytest.Op) image.Rectangle {
	var r image.Rectangle
	for _, op := range ops {
		switch op.Cmd {
		case ssd1351SETCOLUMN:
			r.Min.X, r.Max.X = int(op.Bytes[0]), int(op.Bytes[1])+1
		case ssd1351SETROW:
			r.Min.Y, r.Max.Y = int(op.Bytes[0]), int(op.Bytes[1])+1
		}
	}
	return r
}

// painted returns the bounding box of all pixels in the buffer that have
// color c.
func painted(d *Display, c pixel.CRGB16) (r image.Rectangle, n int) {
	b := d.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if d.fb.At(x, y) == c {
				r = r.Union(image.Rect(x, y, x+1, y+1))
				n++
			}
		}
	}
	return
}

func TestNew(t *testing.T) {
	p := displaytest.NewPanel(DefaultWidth, DefaultHeight)
	d, err := New(p, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(p.Ops) < 2 || p.Ops[0].Kind != displaytest.Reset || p.Ops[1].Kind != displaytest.Reset {
		t.Fatalf("expected reset pulse first, got %v", p.Ops)
	}
	if p.Ops[0].Level != false || p.Ops[1].Level != true {
		t.Errorf("expected reset low then high, got %s then %s", p.Ops[0].Level, p.Ops[1].Level)
	}

	want := []byte{
		0xFD, 0xFD, 0xAE, 0xB3, 0xCA, 0xA0, 0x15, 0x75, 0xA1, 0xA2,
		0xB5, 0xAB, 0xB1, 0xBE, 0xA6, 0xC1, 0xC7, 0xB4, 0xB6, 0xAF,
		0x15, 0x75, 0x5C,
	}
	if v := p.Commands(); !bytes.Equal(v, want) {
		t.Errorf("expected commands\n% x\ngot\n% x", want, v)
	}

	payload := p.Payload()
	if len(payload) != DefaultWidth*DefaultHeight*2 {
		t.Errorf("expected full screen clear of %d bytes, got %d", DefaultWidth*DefaultHeight*2, len(payload))
	}
	if v := p.Count(displaytest.Data); v != len(payload)/DefaultMaxTransfer {
		t.Errorf("expected %d transfers, got %d", len(payload)/DefaultMaxTransfer, v)
	}
	if !d.Optimization() {
		t.Error("expected optimization enabled by default")
	}
	if _, n := painted(d, Black); n != DefaultWidth*DefaultHeight {
		t.Errorf("expected black buffer, got %d black pixels", n)
	}
}

func TestNewMuxRatio(t *testing.T) {
	for _, h := range []int{128, 96} {
		p := displaytest.NewPanel(DefaultWidth, h)
		if _, err := New(p, &Config{Height: h}); err != nil {
			t.Fatal(err)
		}
		for _, op := range p.Ops {
			if op.Kind == displaytest.Command && op.Cmd == ssd1351MUXRATIO {
				if op.Bytes[0] != byte(h-1) {
					t.Errorf("height %d: expected mux ratio %d, got %d", h, h-1, op.Bytes[0])
				}
			}
		}
	}
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   error
	}{
		{"width", Config{Width: 96}, ErrSize},
		{"height", Config{Height: 64}, ErrSize},
		{"transfer", Config{MaxTransfer: 1}, ErrTransferSize},
		{"negative transfer", Config{MaxTransfer: -4}, ErrTransferSize},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			c := new(displaytest.Recorder)
			if _, err := New(c, &test.config); !errors.Is(err, test.want) {
				it.Errorf("expected %v, got %v", test.want, err)
			}
			if len(c.Ops) != 0 {
				it.Errorf("expected no bus traffic, got %v", c.Ops)
			}
		})
	}
}

func TestNewError(t *testing.T) {
	for _, kind := range []displaytest.Kind{displaytest.Reset, displaytest.Command, displaytest.Data} {
		t.Run(kind.String(), func(it *testing.T) {
			c := new(displaytest.Recorder)
			c.FailOn(kind, errTest)
			if _, err := New(c, nil); !errors.Is(err, errTest) {
				it.Errorf("expected %v, got %v", errTest, err)
			}
		})
	}
}

func TestDrawPixel(t *testing.T) {
	d, p := newTestDisplay(t, nil)

	if err := d.DrawPixel(10, 20, Red); err != nil {
		t.Fatal(err)
	}
	if v := p.Commands(); !bytes.Equal(v, []byte{0x15, 0x75, 0x5C}) {
		t.Errorf("expected address and write commands, got % x", v)
	}
	if v := window(p.Ops); v != image.Rect(10, 20, 11, 21) {
		t.Errorf("expected single pixel window, got %s", v)
	}
	if v := p.Count(displaytest.Data); v != 1 {
		t.Errorf("expected 1 data transfer, got %d", v)
	}
	if v := p.Payload(); !bytes.Equal(v, []byte{0xF8, 0x00}) {
		t.Errorf("expected payload f8 00, got % x", v)
	}
	if v := d.fb.At(10, 20); v != Red {
		t.Errorf("expected buffer %#04x, got %#04x", Red.V, v.V)
	}
	if v := p.Image().CRGB16At(10, 20); v != Red {
		t.Errorf("expected panel %#04x, got %#04x", Red.V, v.V)
	}
}

func TestDrawPixelSkip(t *testing.T) {
	d, p := newTestDisplay(t, nil)

	if err := d.DrawPixel(3, 3, Green); err != nil {
		t.Fatal(err)
	}
	p.Clear()
	if err := d.DrawPixel(3, 3, Green); err != nil {
		t.Fatal(err)
	}
	if len(p.Ops) != 0 {
		t.Errorf("expected unchanged pixel to be skipped, got %v", p.Ops)
	}

	d.SetOptimization(false)
	if d.Optimization() {
		t.Fatal("expected optimization disabled")
	}
	if err := d.DrawPixel(3, 3, Green); err != nil {
		t.Fatal(err)
	}
	if v := p.Count(displaytest.Data); v != 1 {
		t.Errorf("expected pixel write without optimization, got %d transfers", v)
	}
}

func TestDrawPixelSkipAfterInit(t *testing.T) {
	d, p := newTestDisplay(t, nil)
	if err := d.DrawPixel(0, 0, Black); err != nil {
		t.Fatal(err)
	}
	if len(p.Ops) != 0 {
		t.Errorf("expected black pixel on cleared panel to be skipped, got %v", p.Ops)
	}
}

func TestDrawPixelOutside(t *testing.T) {
	d, p := newTestDisplay(t, nil)
	for _, pt := range []image.Point{{-1, 0}, {0, -1}, {128, 0}, {0, 128}, {500, 500}} {
		if err := d.DrawPixel(pt.X, pt.Y, White); err != nil {
			t.Errorf("%s: %v", pt, err)
		}
	}
	if len(p.Ops) != 0 {
		t.Errorf("expected no bus traffic, got %v", p.Ops)
	}
}

func TestFillRect(t *testing.T) {
	tests := []struct {
		name       string
		exact      bool
		x, y, w, h int
		want       image.Rectangle
	}{
		{"inside", false, 10, 10, 20, 5, image.Rect(10, 10, 30, 15)},
		{"touching edge", false, 100, 100, 28, 28, image.Rect(100, 100, 128, 128)},
		{"overflow right", false, 120, 0, 20, 4, image.Rect(120, 0, 127, 4)},
		{"overflow bottom", false, 0, 120, 4, 20, image.Rect(0, 120, 4, 127)},
		{"overflow exact", true, 120, 120, 20, 20, image.Rect(120, 120, 128, 128)},
		{"negative", false, -5, -3, 10, 10, image.Rect(0, 0, 5, 7)},
		{"single", false, 127, 127, 1, 1, image.Rect(127, 127, 128, 128)},
		{"one past edge", false, 127, 0, 2, 1, image.Rectangle{}},
		{"one past edge exact", true, 127, 0, 2, 1, image.Rect(127, 0, 128, 1)},
		{"start beyond", false, 128, 0, 4, 4, image.Rectangle{}},
		{"left of panel", false, -10, 0, 10, 4, image.Rectangle{}},
		{"zero width", false, 10, 10, 0, 4, image.Rectangle{}},
		{"negative height", false, 10, 10, 4, -4, image.Rectangle{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			d, p := newTestDisplay(it, &Config{ExactClip: test.exact})
			if err := d.FillRect(test.x, test.y, test.w, test.h, Blue); err != nil {
				it.Fatal(err)
			}

			if test.want.Empty() {
				if len(p.Ops) != 0 {
					it.Errorf("expected no bus traffic, got %v", p.Ops)
				}
				return
			}

			if v := window(p.Ops); v != test.want {
				it.Errorf("expected window %s, got %s", test.want, v)
			}
			if v := len(p.Payload()); v != 2*test.want.Dx()*test.want.Dy() {
				it.Errorf("expected %d bytes, got %d", 2*test.want.Dx()*test.want.Dy(), v)
			}
			r, n := painted(d, Blue)
			if r != test.want || n != test.want.Dx()*test.want.Dy() {
				it.Errorf("expected buffer to cover %s, got %s (%d pixels)", test.want, r, n)
			}
			if p.OutsideWindow != 0 {
				it.Errorf("expected no pixels outside of the panel, got %d", p.OutsideWindow)
			}
		})
	}
}

func TestFillScreen(t *testing.T) {
	d, p := newTestDisplay(t, nil)
	if err := d.FillScreen(Yellow); err != nil {
		t.Fatal(err)
	}
	if v := window(p.Ops); v != d.Bounds() {
		t.Errorf("expected full screen window, got %s", v)
	}
	if _, n := painted(d, Yellow); n != DefaultWidth*DefaultHeight {
		t.Errorf("expected all pixels painted, got %d", n)
	}
}

func TestFastLines(t *testing.T) {
	d, p := newTestDisplay(t, nil)

	if err := d.DrawFastHLine(0, 5, 200, Cyan); err != nil {
		t.Fatal(err)
	}
	if v := window(p.Ops); v != image.Rect(0, 5, 127, 6) {
		t.Errorf("expected clipped horizontal window, got %s", v)
	}

	p.Clear()
	if err := d.DrawFastVLine(7, -3, 10, Cyan); err != nil {
		t.Fatal(err)
	}
	if v := window(p.Ops); v != image.Rect(7, 0, 8, 7) {
		t.Errorf("expected clipped vertical window, got %s", v)
	}

	p.Clear()
	if err := d.DrawFastHLine(0, 128, 10, Cyan); err != nil {
		t.Fatal(err)
	}
	if err := d.DrawFastVLine(-1, 0, 10, Cyan); err != nil {
		t.Fatal(err)
	}
	if len(p.Ops) != 0 {
		t.Errorf("expected no bus traffic, got %v", p.Ops)
	}
}

func TestFillWritesThrough(t *testing.T) {
	d, p := newTestDisplay(t, nil)
	for i := 0; i < 2; i++ {
		p.Clear()
		if err := d.FillRect(0, 0, 4, 4, Magenta); err != nil {
			t.Fatal(err)
		}
		if err := d.DrawFastHLine(0, 0, 4, Magenta); err != nil {
			t.Fatal(err)
		}
		if v := p.Count(displaytest.Data); v != 2 {
			t.Errorf("pass %d: expected 2 transfers, got %d", i, v)
		}
	}
}

func TestFillRectChunks(t *testing.T) {
	d, p := newTestDisplay(t, &Config{MaxTransfer: 7})
	if err := d.FillRect(0, 0, 5, 1, White); err != nil {
		t.Fatal(err)
	}
	var sizes []int
	for _, op := range p.Ops {
		if op.Kind == displaytest.Data {
			sizes = append(sizes, len(op.Bytes))
		}
	}
	if len(sizes) != 2 || sizes[0] != 6 || sizes[1] != 4 {
		t.Errorf("expected transfers of 6 and 4 bytes, got %v", sizes)
	}
}

func TestTransportError(t *testing.T) {
	tests := []struct {
		name string
		kind displaytest.Kind
		draw func(*Display) error
	}{
		{"pixel data", displaytest.Data, func(d *Display) error { return d.DrawPixel(1, 1, Red) }},
		{"pixel address", displaytest.Command, func(d *Display) error { return d.DrawPixel(1, 1, Red) }},
		{"fill data", displaytest.Data, func(d *Display) error { return d.FillRect(0, 0, 10, 10, Red) }},
		{"fill address", displaytest.Command, func(d *Display) error { return d.FillRect(0, 0, 10, 10, Red) }},
		{"hline", displaytest.Data, func(d *Display) error { return d.DrawFastHLine(0, 0, 10, Red) }},
		{"vline", displaytest.Data, func(d *Display) error { return d.DrawFastVLine(0, 0, 10, Red) }},
		{"bitmap", displaytest.Data, func(d *Display) error {
			img := pixel.NewCRGB16Image(4, 4)
			img.Fill(Red)
			return d.DrawBitmap(img, 2, 2)
		}},
		{"line", displaytest.Data, func(d *Display) error { return d.DrawLine(0, 0, 20, 7, Red) }},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			d, p := newTestDisplay(it, nil)
			p.FailOn(test.kind, errTest)
			if err := test.draw(d); !errors.Is(err, errTest) {
				it.Fatalf("expected %v, got %v", errTest, err)
			}
			if _, n := painted(d, Red); n != 0 {
				it.Errorf("expected buffer unchanged, got %d red pixels", n)
			}
		})
	}
}

func TestTransportErrorMidFill(t *testing.T) {
	d, p := newTestDisplay(t, &Config{MaxTransfer: 8})
	// Three address commands and one data transfer succeed.
	p.FailAfter(4, errTest)
	if err := d.FillRect(0, 0, 8, 8, Red); !errors.Is(err, errTest) {
		t.Fatalf("expected %v, got %v", errTest, err)
	}
	if _, n := painted(d, Red); n != 0 {
		t.Errorf("expected buffer unchanged, got %d red pixels", n)
	}
}

func TestDrawBitmap(t *testing.T) {
	img := pixel.NewCRGB16Image(2, 2)
	img.SetCRGB16(0, 0, Red)
	img.SetCRGB16(1, 0, Green)
	img.SetCRGB16(0, 1, Blue)
	img.SetCRGB16(1, 1, White)

	t.Run("fits", func(it *testing.T) {
		d, p := newTestDisplay(it, nil)
		if err := d.DrawBitmap(img, 10, 20); err != nil {
			it.Fatal(err)
		}
		if v := window(p.Ops); v != image.Rect(10, 20, 12, 22) {
			it.Errorf("expected window, got %s", v)
		}
		want := []byte{0xF8, 0x00, 0x07, 0xE0, 0x00, 0x1F, 0xFF, 0xFF}
		if v := p.Payload(); !bytes.Equal(v, want) {
			it.Errorf("expected payload % x, got % x", want, v)
		}
		for _, test := range []struct {
			x, y int
			c    pixel.CRGB16
		}{{10, 20, Red}, {11, 20, Green}, {10, 21, Blue}, {11, 21, White}} {
			if v := d.fb.At(test.x, test.y); v != test.c {
				it.Errorf("(%d,%d): expected %#04x, got %#04x", test.x, test.y, test.c.V, v.V)
			}
		}
	})

	for _, pt := range []image.Point{{127, 0}, {0, 127}, {-1, 0}, {0, -1}, {200, 200}} {
		t.Run("reject "+pt.String(), func(it *testing.T) {
			d, p := newTestDisplay(it, nil)
			if err := d.DrawBitmap(img, pt.X, pt.Y); err != nil {
				it.Fatal(err)
			}
			if len(p.Ops) != 0 {
				it.Errorf("expected no bus traffic, got %v", p.Ops)
			}
		})
	}

	t.Run("corner", func(it *testing.T) {
		d, p := newTestDisplay(it, nil)
		if err := d.DrawBitmap(img, 126, 126); err != nil {
			it.Fatal(err)
		}
		if v := window(p.Ops); v != image.Rect(126, 126, 128, 128) {
			it.Errorf("expected window, got %s", v)
		}
	})
}

func TestDrawImage(t *testing.T) {
	d, p := newTestDisplay(t, nil)
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	for y := 5; y < 7; y++ {
		for x := 5; x < 8; x++ {
			src.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
		}
	}
	if err := d.DrawImage(src, 0, 0); err != nil {
		t.Fatal(err)
	}
	r, n := painted(d, Red)
	if r != image.Rect(0, 0, 3, 2) || n != 6 {
		t.Errorf("expected 3x2 red block at origin, got %s (%d pixels)", r, n)
	}
	if !bytes.Equal(p.Image().Pix, d.fb.Image().Pix) {
		t.Error("expected panel and buffer to agree")
	}
}

func TestPanelMatchesBuffer(t *testing.T) {
	for _, exact := range []bool{false, true} {
		d, p := newTestDisplay(t, &Config{ExactClip: exact, MaxTransfer: 64})

		steps := []func() error{
			func() error { return d.FillScreen(Color565(10, 20, 30)) },
			func() error { return d.DrawLine(0, 0, 127, 127, Red) },
			func() error { return d.DrawLine(127, 0, -20, 90, Green) },
			func() error { return d.DrawCircle(64, 64, 40, Blue) },
			func() error { return d.FillCircle(120, 120, 20, Yellow) },
			func() error { return d.DrawRect(-5, 100, 40, 40, White) },
			func() error { return d.DrawRoundRect(10, 10, 50, 30, 8, Cyan) },
			func() error { return d.FillRoundRect(70, 5, 70, 30, 6, Magenta) },
			func() error { return d.DrawTriangle(5, 120, 60, 70, 127, 127, Red) },
			func() error { return d.FillTriangle(30, 40, 90, 60, 50, 110, Green) },
			func() error { return d.Write("Hello\nWorld 23°C", White, nil) },
			func() error { return d.Write("opaque", Black, White) },
			func() error { return d.DrawPixel(127, 127, Red) },
		}
		for i, step := range steps {
			if err := step(); err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
		}

		if !bytes.Equal(p.Image().Pix, d.fb.Image().Pix) {
			t.Errorf("exact=%t: expected panel memory to match buffer", exact)
		}
		if p.OutsideWindow != 0 || p.DataNotWriting != 0 {
			t.Errorf("exact=%t: expected all data inside a write window, got %d outside and %d stray bytes",
				exact, p.OutsideWindow, p.DataNotWriting)
		}
	}
}

func TestRefresh(t *testing.T) {
	d, p := newTestDisplay(t, nil)
	if err := d.FillRect(20, 20, 10, 10, Green); err != nil {
		t.Fatal(err)
	}

	// Simulate the panel losing its memory.
	p.Image().Fill(White)
	p.Clear()

	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if v := window(p.Ops); v != d.Bounds() {
		t.Errorf("expected full screen window, got %s", v)
	}
	if !bytes.Equal(p.Image().Pix, d.fb.Image().Pix) {
		t.Error("expected panel memory restored from buffer")
	}
}

func TestControl(t *testing.T) {
	tests := []struct {
		name string
		call func(*Display) error
		cmd  byte
		args []byte
	}{
		{"show", func(d *Display) error { return d.Show(true) }, 0xAF, nil},
		{"hide", func(d *Display) error { return d.Show(false) }, 0xAE, nil},
		{"invert", func(d *Display) error { return d.Invert(true) }, 0xA7, nil},
		{"normal", func(d *Display) error { return d.Invert(false) }, 0xA6, nil},
		{"contrast max", func(d *Display) error { return d.SetContrast(0xFF) }, 0xC7, []byte{0x0F}},
		{"contrast min", func(d *Display) error { return d.SetContrast(0x0F) }, 0xC7, []byte{0x00}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			d, p := newTestDisplay(it, nil)
			if err := test.call(d); err != nil {
				it.Fatal(err)
			}
			if len(p.Ops) != 1 {
				it.Fatalf("expected 1 operation, got %v", p.Ops)
			}
			op := p.Ops[0]
			if op.Cmd != test.cmd || !bytes.Equal(op.Bytes, test.args) {
				it.Errorf("expected command %#02x % x, got %s", test.cmd, test.args, op)
			}
		})
	}
}

func TestClose(t *testing.T) {
	d, p := newTestDisplay(t, nil)
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if v := p.Commands(); !bytes.Equal(v, []byte{0xAE}) {
		t.Errorf("expected display off, got % x", v)
	}
	if !p.Closed {
		t.Error("expected connection closed")
	}
}

func TestCloseError(t *testing.T) {
	d, p := newTestDisplay(t, nil)
	p.FailOn(displaytest.Command, errTest)
	if err := d.Close(); !errors.Is(err, errTest) {
		t.Errorf("expected %v, got %v", errTest, err)
	}
	if !p.Closed {
		t.Error("expected connection closed")
	}
}

func TestImage(t *testing.T) {
	d, _ := newTestDisplay(t, &Config{Height: 96})
	if v := d.Bounds(); v != image.Rect(0, 0, 128, 96) {
		t.Errorf("expected bounds, got %s", v)
	}
	if err := d.DrawPixel(4, 5, Magenta); err != nil {
		t.Fatal(err)
	}
	if v := d.At(4, 5); v != Magenta {
		t.Errorf("expected %v, got %v", Magenta, v)
	}
	if v := d.At(0, 96); v != color.Transparent {
		t.Errorf("expected transparent outside of panel, got %v", v)
	}
	if d.ColorModel() != pixel.CRGB16Model {
		t.Error("expected 5-6-5 color model")
	}
	if v := d.String(); v != "SSD1351 128x96" {
		t.Errorf("expected name, got %q", v)
	}
}

func TestColor565(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    pixel.CRGB16
	}{
		{0, 0, 0, Black},
		{0xff, 0xff, 0xff, White},
		{0xff, 0, 0, Red},
		{0, 0xff, 0, Green},
		{0, 0, 0xff, Blue},
		{0x08, 0x04, 0x08, pixel.CRGB16{V: 0x0821}},
	}
	for _, test := range tests {
		if v := Color565(test.r, test.g, test.b); v != test.want {
			t.Errorf("Color565(%d, %d, %d): expected %#04x, got %#04x", test.r, test.g, test.b, test.want.V, v.V)
		}
	}
}

func TestStartAtWidth(t *testing.T) {
	img := pixel.NewCRGB16Image(2, 2)
	tests := []struct {
		name string
		draw func(*Display) error
	}{
		{"pixel", func(d *Display) error { return d.DrawPixel(128, 0, Red) }},
		{"fill", func(d *Display) error { return d.FillRect(128, 0, 10, 10, Red) }},
		{"hline", func(d *Display) error { return d.DrawFastHLine(128, 0, 10, Red) }},
		{"vline", func(d *Display) error { return d.DrawFastVLine(128, 0, 10, Red) }},
		{"bitmap", func(d *Display) error { return d.DrawBitmap(img, 128, 0) }},
		{"line", func(d *Display) error { return d.DrawLine(128, 0, 140, 20, Red) }},
		{"rect", func(d *Display) error { return d.DrawRect(128, 0, 10, 10, Red) }},
		{"round rect", func(d *Display) error { return d.FillRoundRect(128, 0, 20, 20, 4, Red) }},
		{"circle", func(d *Display) error { return d.FillCircle(140, 64, 10, Red) }},
		{"triangle", func(d *Display) error { return d.FillTriangle(128, 0, 140, 10, 130, 20, Red) }},
		{"char", func(d *Display) error { return d.DrawChar(128, 0, font.Char('A'), Red, Black) }},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			d, p := newTestDisplay(it, nil)
			if err := test.draw(d); err != nil {
				it.Fatal(err)
			}
			if len(p.Ops) != 0 {
				it.Errorf("expected no bus traffic, got %v", p.Ops)
			}
			if _, n := painted(d, Red); n != 0 {
				it.Errorf("expected buffer unchanged, got %d pixels", n)
			}
		})
	}
}
