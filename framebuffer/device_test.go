package framebuffer

import (
	"errors"
	"image"
	"testing"

	"github.com/BeatGlow/ssd1351/pixel"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		info varScreenInfo
		want pixelFormat
		err  error
	}{
		{
			"rgb565",
			varScreenInfo{BitsPerPixel: 16, Red: bitField{Offset: 11, Length: 5}, Green: bitField{Offset: 5, Length: 6}, Blue: bitField{Length: 5}},
			rgb565, nil,
		},
		{
			"bgr565",
			varScreenInfo{BitsPerPixel: 16, Blue: bitField{Offset: 11, Length: 5}, Green: bitField{Offset: 5, Length: 6}, Red: bitField{Length: 5}},
			bgr565, nil,
		},
		{
			"xrgb8888",
			varScreenInfo{BitsPerPixel: 32, Red: bitField{Offset: 16, Length: 8}, Green: bitField{Offset: 8, Length: 8}, Blue: bitField{Length: 8}},
			xrgb8888, nil,
		},
		{
			"rgb555",
			varScreenInfo{BitsPerPixel: 15, Red: bitField{Offset: 10, Length: 5}, Green: bitField{Offset: 5, Length: 5}, Blue: bitField{Length: 5}},
			unknownFormat, ErrFormat,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			v, err := parseFormat(&test.info)
			if !errors.Is(err, test.err) {
				it.Fatalf("expected error %v, got %v", test.err, err)
			}
			if v != test.want {
				it.Errorf("expected format %d, got %d", test.want, v)
			}
		})
	}

	if _, err := parseFormat(nil); err == nil {
		t.Error("expected error for missing screen info")
	}
}

func TestPutPixel(t *testing.T) {
	tests := []struct {
		name   string
		format pixelFormat
		c      uint16
		want   []byte
	}{
		{"rgb565 red", rgb565, 0xF800, []byte{0x00, 0xF8}},
		{"bgr565 red", bgr565, 0xF800, []byte{0x1F, 0x00}},
		{"bgr565 green", bgr565, 0x07E0, []byte{0xE0, 0x07}},
		{"xrgb8888 white", xrgb8888, 0xFFFF, []byte{0xF8, 0xFC, 0xF8, 0xFF}},
		{"xrgb8888 blue", xrgb8888, 0x001F, []byte{0xF8, 0x00, 0x00, 0xFF}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			dst := make([]byte, test.format.bytesPerPixel())
			putPixel(test.format, dst, pixel.CRGB16{V: test.c})
			if string(dst) != string(test.want) {
				it.Errorf("expected %#02x, got %#02x", test.want, dst)
			}
		})
	}
}

func TestMirror(t *testing.T) {
	src := pixel.NewCRGB16Image(3, 3)
	src.Fill(pixel.CRGB16{V: 0xFFFF})

	// A 2x2 device with padding at the end of each line.
	const stride = 6
	pix := make([]byte, stride*2)
	mirror(rgb565, pix, stride, image.Pt(2, 2), src)

	want := []byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00,
	}
	if string(pix) != string(want) {
		t.Errorf("expected %#02x, got %#02x", want, pix)
	}
}
