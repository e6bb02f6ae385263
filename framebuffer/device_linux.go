package framebuffer

import (
	"image"
	"os"
	"syscall"

	"github.com/BeatGlow/ssd1351/internal/ioctl"
	"github.com/BeatGlow/ssd1351/pixel"
)

// Device is a Linux framebuffer device (fbdev) mirroring the panel contents.
type Device struct {
	f      *os.File
	fd     uintptr
	pix    []byte
	info   fixScreenInfo
	screen varScreenInfo
	format pixelFormat
}

// OpenDevice opens a Linux framebuffer device by name, typically /dev/fb[0..x].
func OpenDevice(name string) (*Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	d := &Device{
		f:  f,
		fd: f.Fd(),
	}
	if err = ioctl.Do(d.fd, ioctl.Command(fbioGetFScreenInfo), &d.info); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Do(d.fd, ioctl.Command(fbioGetVScreenInfo), &d.screen); err != nil {
		_ = f.Close()
		return nil, err
	}
	if d.format, err = parseFormat(&d.screen); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	if d.pix, err = syscall.Mmap(int(d.fd), 0, int(d.info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED); err != nil {
		_ = f.Close()
		return nil, err
	}

	return d, nil
}

func (d *Device) String() string {
	return "framebuffer " + d.f.Name()
}

func (d *Device) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(d.screen.Xres), int(d.screen.Yres))
}

// Draw copies src to the top left corner of the device.
func (d *Device) Draw(src *pixel.CRGB16Image) error {
	mirror(d.format, d.pix, int(d.info.LineLength), d.Bounds().Size(), src)
	return nil
}

// Close the framebuffer device
func (d *Device) Close() error {
	if err := syscall.Munmap(d.pix); err != nil {
		return err
	}
	return d.f.Close()
}
