// Package ssd1351 drives SSD1351 based RGB OLED panels.
//
// The driver keeps a shadow copy of the panel memory, which is used to skip
// single pixel writes that would not change anything. All drawing happens
// directly on the panel; there is no separate flush step.
//
// A Display is not safe for concurrent use.
package ssd1351

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ssd1351/framebuffer"
	"github.com/BeatGlow/ssd1351/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// sleep is replaced in tests.
var sleep = time.Sleep

const (
	DefaultWidth       = 128
	DefaultHeight      = 128
	DefaultMaxTransfer = 4096
)

// Registers (from SSD1351.pdf).
const (
	ssd1351SETCOLUMN      = 0x15 // Set Column Address
	ssd1351SETROW         = 0x75 // Set Row Address
	ssd1351WRITERAM       = 0x5C // Write RAM
	ssd1351READRAM        = 0x5D
	ssd1351SETREMAP       = 0xA0 // Set Re-map / Color Depth
	ssd1351STARTLINE      = 0xA1 // Set Display Start Line
	ssd1351DISPLAYOFFSET  = 0xA2 // Set Display Offset
	ssd1351DISPLAYALLOFF  = 0xA4
	ssd1351DISPLAYALLON   = 0xA5
	ssd1351NORMALDISPLAY  = 0xA6 // Normal Display
	ssd1351INVERTDISPLAY  = 0xA7 // Inverse Display
	ssd1351FUNCTIONSELECT = 0xAB // Function Selection
	ssd1351DISPLAYOFF     = 0xAE // Sleep mode On
	ssd1351DISPLAYON      = 0xAF // Sleep mode Off
	ssd1351PRECHARGE      = 0xB1 // Set Reset / Pre-charge period
	ssd1351DISPLAYENHANCE = 0xB2
	ssd1351CLOCKDIV       = 0xB3 // Front Clock Divider / Oscillator Frequency
	ssd1351SETVSL         = 0xB4 // Set Segment Low Voltage
	ssd1351SETGPIO        = 0xB5 // Set GPIO
	ssd1351PRECHARGE2     = 0xB6 // Set Second Pre-charge period
	ssd1351SETGRAY        = 0xB8
	ssd1351USELUT         = 0xB9
	ssd1351PRECHARGELEVEL = 0xBB
	ssd1351VCOMH          = 0xBE // Set VCOMH Voltage
	ssd1351CONTRASTABC    = 0xC1 // Set Contrast Current for Color A, B, C
	ssd1351CONTRASTMASTER = 0xC7 // Master Contrast Current Control
	ssd1351MUXRATIO       = 0xCA // Set MUX Ratio
	ssd1351COMMANDLOCK    = 0xFD // Set Command Lock
	ssd1351HORIZSCROLL    = 0x96
	ssd1351STOPSCROLL     = 0x9E
	ssd1351STARTSCROLL    = 0x9F
)

// Colors in the panel's 5-6-5 format.
var (
	Black   = pixel.CRGB16{V: 0x0000}
	Blue    = pixel.CRGB16{V: 0x001F}
	Red     = pixel.CRGB16{V: 0xF800}
	Green   = pixel.CRGB16{V: 0x07E0}
	Cyan    = pixel.CRGB16{V: 0x07FF}
	Magenta = pixel.CRGB16{V: 0xF81F}
	Yellow  = pixel.CRGB16{V: 0xFFE0}
	White   = pixel.CRGB16{V: 0xFFFF}
)

// Color565 packs 8-bit channels into the panel color format.
func Color565(r, g, b uint8) pixel.CRGB16 {
	return pixel.RGB565(r, g, b)
}

// Errors
var (
	ErrSize         = errors.New("ssd1351: invalid display size")
	ErrTransferSize = errors.New("ssd1351: maximum transfer size must be at least 2 bytes")
)

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels, defaults to 128.
	Width int

	// Height of the display in pixels, defaults to 128.
	Height int

	// MaxTransfer is the largest data transfer in bytes, defaults to 4096.
	MaxTransfer int

	// DisableOptimization turns off skipping of unchanged pixels.
	DisableOptimization bool

	// ExactClip clips shapes crossing the far edge of the panel at the
	// edge. By default the last row or column is left unpainted, matching
	// the behaviour of the classic driver.
	ExactClip bool

	// Debug enables logging, also enabled by the DISPLAY_DEBUG environment
	// variable.
	Debug bool
}

// DefaultConfig is used when New is called without config.
var DefaultConfig = Config{
	Width:       DefaultWidth,
	Height:      DefaultHeight,
	MaxTransfer: DefaultMaxTransfer,
}

func (config *Config) normalize() error {
	if config.Width == 0 {
		config.Width = DefaultWidth
	}
	if config.Height == 0 {
		config.Height = DefaultHeight
	}
	if config.MaxTransfer == 0 {
		config.MaxTransfer = DefaultMaxTransfer
	}
	if config.Width != 128 || (config.Height != 128 && config.Height != 96) {
		return fmt.Errorf("%w %dx%d, supported sizes are 128x128 and 128x96", ErrSize, config.Width, config.Height)
	}
	if config.MaxTransfer < 2 {
		return fmt.Errorf("%w, got %d", ErrTransferSize, config.MaxTransfer)
	}
	return nil
}

// Display is an SSD1351 panel.
type Display struct {
	c         Conn
	width     int
	height    int
	fb        *framebuffer.Buffer
	batch     Batcher
	exactClip bool
	debug     bool
	cursorX   int
	cursorY   int
	row       []byte
}

// New initializes the panel behind c. A nil config uses DefaultConfig.
//
// The panel is cleared to black and the shadow buffer is zeroed.
func New(c Conn, config *Config) (*Display, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	if err := config.normalize(); err != nil {
		return nil, err
	}

	// Commands with DC low, data with DC high
	if spi, ok := c.(SPI); ok {
		spi.SetDataLow(false)
	}

	d := &Display{
		c:         c,
		width:     config.Width,
		height:    config.Height,
		fb:        framebuffer.New(config.Width, config.Height),
		batch:     Batcher{Max: config.MaxTransfer},
		exactClip: config.ExactClip,
		debug:     config.Debug || debug,
	}
	if err := d.init(config); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Display) init(config *Config) (err error) {
	d.logf("init %dx%d on %s", d.width, d.height, d.c)

	// reset the device.
	sleep(time.Millisecond)
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	sleep(10 * time.Millisecond)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}

	// init display
	if err = d.commands([][]byte{
		{ssd1351COMMANDLOCK, 0x12},                  // Unlock IC MCU interface
		{ssd1351COMMANDLOCK, 0xB1},                  // Make A2, B1, B3, BB, BE, C1 accessible
		{ssd1351DISPLAYOFF},                         // Sleep mode on
		{ssd1351CLOCKDIV, 0xF1},                     // Divide by 2, fastest oscillator
		{ssd1351MUXRATIO, byte(d.height - 1)},       // Multiplex ratio
		{ssd1351SETREMAP, 0x74},                     // 65k colors, COM split, scan from COM[N-1] to COM0
		{ssd1351SETCOLUMN, 0x00, byte(d.width - 1)}, // Full column window
		{ssd1351SETROW, 0x00, byte(d.height - 1)},   // Full row window
		{ssd1351STARTLINE, 0x00},                    // Start line 0
		{ssd1351DISPLAYOFFSET, 0x00},                // No vertical offset
		{ssd1351SETGPIO, 0x00},                      // GPIO0 and GPIO1 disabled
		{ssd1351FUNCTIONSELECT, 0x01},               // Internal VDD regulator
		{ssd1351PRECHARGE, 0x32},                    // Phase 1: 5 DCLKs, phase 2: 3 DCLKs
		{ssd1351VCOMH, 0x05},                        // 0.82 x VCC
		{ssd1351NORMALDISPLAY},                      // Normal display
		{ssd1351CONTRASTABC, 0xC8, 0x80, 0xC8},      // Color A, B, C contrast current
		{ssd1351CONTRASTMASTER, 0x0F},               // Maximum master contrast
		{ssd1351SETVSL, 0xA0, 0xB5, 0x55},           // External VSL
		{ssd1351PRECHARGE2, 0x01},                   // Second pre-charge: 1 DCLK
		{ssd1351DISPLAYON},                          // Sleep mode off
	}); err != nil {
		return
	}

	if err = d.FillScreen(Black); err != nil {
		return
	}
	d.fb.Reset()
	d.fb.SetOptimize(!config.DisableOptimization)
	return nil
}

func (d *Display) commands(commands [][]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *Display) logf(format string, args ...any) {
	if d.debug {
		log.Printf("ssd1351: "+format, args...)
	}
}

func (d *Display) String() string {
	return fmt.Sprintf("SSD1351 %dx%d", d.width, d.height)
}

// Close turns the panel off and closes the connection.
func (d *Display) Close() error {
	if err := d.Show(false); err != nil {
		_ = d.c.Close()
		return err
	}
	return d.c.Close()
}

// Show toggles the display on or off.
func (d *Display) Show(show bool) error {
	var command byte = ssd1351DISPLAYOFF
	if show {
		command = ssd1351DISPLAYON
	}
	return d.c.Command(command)
}

// Invert toggles inverted colors.
func (d *Display) Invert(invert bool) error {
	var command byte = ssd1351NORMALDISPLAY
	if invert {
		command = ssd1351INVERTDISPLAY
	}
	return d.c.Command(command)
}

// SetContrast adjusts the master contrast current, the panel has 16 steps.
func (d *Display) SetContrast(level uint8) error {
	return d.c.Command(ssd1351CONTRASTMASTER, level>>4)
}

// SetOptimization toggles skipping of single pixel writes that would not
// change the panel.
func (d *Display) SetOptimization(enabled bool) {
	d.fb.SetOptimize(enabled)
}

// Optimization reports whether unchanged pixels are skipped.
func (d *Display) Optimization() bool {
	return d.fb.Optimize()
}

// Clear paints the panel black.
func (d *Display) Clear() error {
	return d.FillScreen(Black)
}

// Refresh sets the window to full screen and redraws using the shadow buffer,
// restoring the panel after it lost its memory.
func (d *Display) Refresh() error {
	if err := d.SetWindow(0, 0, d.width-1, d.height-1); err != nil {
		return err
	}
	return d.batch.Write(d.c, d.fb.Image().Pix)
}

// Bounds is the display bounding box (dimensions).
func (d *Display) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// ColorModel used by the display.
func (d *Display) ColorModel() color.Model {
	return pixel.CRGB16Model
}

// At returns the last color written at (x, y).
func (d *Display) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(d.Bounds()) {
		return color.Transparent
	}
	return d.fb.At(x, y)
}

// Buffer returns the shadow copy of the panel memory.
func (d *Display) Buffer() *framebuffer.Buffer {
	return d.fb
}
