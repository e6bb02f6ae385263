//go:build !linux

package framebuffer

import (
	"errors"
	"image"

	"github.com/BeatGlow/ssd1351/pixel"
)

var ErrNotSupported = errors.New("framebuffer: not supported")

// Device is a framebuffer device; it is only available on Linux.
type Device struct{}

func OpenDevice(_ string) (*Device, error) {
	return nil, ErrNotSupported
}

func (d *Device) String() string                  { return "framebuffer" }
func (d *Device) Bounds() image.Rectangle         { return image.Rectangle{} }
func (d *Device) Draw(_ *pixel.CRGB16Image) error { return ErrNotSupported }
func (d *Device) Close() error                    { return nil }
