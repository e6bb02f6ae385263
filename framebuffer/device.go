package framebuffer

import (
	"encoding/binary"
	"errors"
	"image"

	"github.com/BeatGlow/ssd1351/pixel"
)

// From <linux/fb.h>
const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

// ErrFormat is returned for framebuffer devices in a pixel format we can't mirror to.
var ErrFormat = errors.New("framebuffer: unsupported pixel format")

// fixScreenInfo is struct fb_fix_screeninfo.
type fixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

type bitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// varScreenInfo is struct fb_var_screeninfo.
type varScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha bitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

type pixelFormat int

const (
	unknownFormat pixelFormat = iota
	rgb565                    // red in the high bits
	bgr565                    // blue in the high bits
	xrgb8888                  // 32 bits, blue in the low byte
)

func (f pixelFormat) bytesPerPixel() int {
	switch f {
	case rgb565, bgr565:
		return 2
	case xrgb8888:
		return 4
	default:
		return 0
	}
}

func parseFormat(info *varScreenInfo) (pixelFormat, error) {
	if info == nil {
		return unknownFormat, errors.New("framebuffer: invalid screen info")
	}

	switch info.BitsPerPixel {
	case 16:
		switch {
		case info.Red.Offset == 11 && info.Red.Length == 5 &&
			info.Green.Offset == 5 && info.Green.Length == 6 &&
			info.Blue.Offset == 0 && info.Blue.Length == 5:
			return rgb565, nil

		case info.Blue.Offset == 11 && info.Blue.Length == 5 &&
			info.Green.Offset == 5 && info.Green.Length == 6 &&
			info.Red.Offset == 0 && info.Red.Length == 5:
			return bgr565, nil
		}

	case 32:
		if info.Red.Offset == 16 && info.Red.Length == 8 &&
			info.Green.Offset == 8 && info.Green.Length == 8 &&
			info.Blue.Offset == 0 && info.Blue.Length == 8 {
			return xrgb8888, nil
		}
	}

	return unknownFormat, ErrFormat
}

// putPixel encodes c in the device's native (little endian) layout.
func putPixel(f pixelFormat, dst []byte, c pixel.CRGB16) {
	switch f {
	case rgb565:
		binary.LittleEndian.PutUint16(dst, c.V)
	case bgr565:
		v := c.V&0x07E0 | c.V>>11 | c.V<<11
		binary.LittleEndian.PutUint16(dst, v)
	case xrgb8888:
		r, g, b := c.Channels()
		dst[0], dst[1], dst[2], dst[3] = b, g, r, 0xff
	}
}

// mirror copies src into pix, top left aligned and clipped to size.
func mirror(f pixelFormat, pix []byte, stride int, size image.Point, src *pixel.CRGB16Image) {
	var (
		bpp = f.bytesPerPixel()
		r   = src.Bounds()
		w   = min(r.Dx(), size.X)
		h   = min(r.Dy(), size.Y)
	)
	for y := 0; y < h; y++ {
		o := y * stride
		for x := 0; x < w; x++ {
			if o+bpp > len(pix) {
				return
			}
			putPixel(f, pix[o:], src.CRGB16At(r.Min.X+x, r.Min.Y+y))
			o += bpp
		}
	}
}
