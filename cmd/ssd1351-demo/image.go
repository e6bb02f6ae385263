package main

import (
	"context"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"github.com/BeatGlow/ssd1351/pixel"
)

// fit scales img to fit inside size, keeping the aspect ratio, and converts
// it to the panel color format.
func fit(img image.Image, size image.Point) *pixel.CRGB16Image {
	b := img.Bounds()
	if b.Dx() <= size.X && b.Dy() <= size.Y {
		return pixel.Convert(img)
	}

	w, h := size.X, b.Dy()*size.X/b.Dx()
	if h > size.Y {
		w, h = b.Dx()*size.Y/b.Dy(), size.Y
	}
	out := pixel.NewCRGB16Image(max(w, 1), max(h, 1))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}

// centered returns the offset that centers an image of size inner.
func centered(outer, inner image.Point) image.Point {
	return outer.Sub(inner).Div(2)
}

func showImage(ctx context.Context, p *player, name string) error {
	if strings.EqualFold(filepath.Ext(name), ".gif") {
		return showAnimation(ctx, p, name)
	}

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	size := p.d.Bounds().Size()
	bitmap := fit(img, size)
	at := centered(size, bitmap.Bounds().Size())
	if err = p.d.DrawBitmap(bitmap, at.X, at.Y); err != nil {
		return err
	}
	return p.pause(ctx)
}

// showAnimation plays all frames of a GIF once, with the file name as title.
func showAnimation(ctx context.Context, p *player, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	anim, err := gif.DecodeAll(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	d := p.d
	title := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if err = d.Write(title, pixel.CRGB16{V: 0xffff}, nil); err != nil {
		return err
	}

	var (
		size   = d.Bounds().Size()
		area   = image.Pt(size.X, size.Y-16)
		canvas = image.NewRGBA(image.Rect(0, 0, anim.Config.Width, anim.Config.Height))
		frames = make([]*pixel.CRGB16Image, len(anim.Image))
	)
	// Frames may only cover part of the canvas, so compose them first.
	for i, frame := range anim.Image {
		xdraw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, xdraw.Over)
		frames[i] = fit(canvas, area)
	}

	for i, frame := range frames {
		at := centered(area, frame.Bounds().Size()).Add(image.Pt(0, 16))
		if err = d.DrawBitmap(frame, at.X, at.Y); err != nil {
			return err
		}
		if delay := time.Duration(anim.Delay[i]) * 10 * time.Millisecond; delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return p.pause(ctx)
}
