package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/BeatGlow/ssd1351"
	"github.com/BeatGlow/ssd1351/framebuffer"
	"github.com/BeatGlow/ssd1351/pixel"
)

// player shows scenes on the display and pauses between steps.
type player struct {
	d      *ssd1351.Display
	name   string
	step   int
	delay  time.Duration
	dump   string
	mirror *framebuffer.Device
}

// pause publishes the current panel contents and waits for the scene delay.
func (p *player) pause(ctx context.Context) error {
	p.step++
	if p.mirror != nil {
		if err := p.mirror.Draw(p.d.Buffer().Image()); err != nil {
			return err
		}
	}
	if p.dump != "" {
		if err := p.writePNG(); err != nil {
			return err
		}
	}

	if p.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *player) writePNG() error {
	if err := os.MkdirAll(p.dump, 0o755); err != nil {
		return err
	}
	name := filepath.Join(p.dump, fmt.Sprintf("%s-%d.png", p.name, p.step))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = png.Encode(f, p.d); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

type scene struct {
	name string
	play func(context.Context, *player) error
}

var scenes = []scene{
	{"bars", colorBars},
	{"target", shootingTarget},
	{"lines", radiatingLines},
	{"triforce", triforce},
	{"text", text},
}

// selectScenes returns the named scenes, or all of them when no names are
// given. A non-empty image path adds the image scene.
func selectScenes(names []string, imagePath string) ([]scene, error) {
	var selected []scene
	if len(names) == 0 {
		selected = append(selected, scenes...)
	}
	for _, name := range names {
		var found bool
		for _, s := range scenes {
			if s.name == name {
				selected = append(selected, s)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown scene %q", name)
		}
	}
	if imagePath != "" {
		selected = append(selected, scene{"image", func(ctx context.Context, p *player) error {
			return showImage(ctx, p, imagePath)
		}})
	}
	return selected, nil
}

// colorBars draws TV test bars.
func colorBars(ctx context.Context, p *player) error {
	d := p.d
	top := []pixel.CRGB16{
		ssd1351.White, ssd1351.Yellow, ssd1351.Cyan, ssd1351.Green,
		ssd1351.Magenta, ssd1351.Red, ssd1351.Blue, ssd1351.Black,
	}
	for i, c := range top {
		if err := d.FillRect(i*16, 0, 16, 100, c); err != nil {
			return err
		}
	}
	for i, level := range []uint8{0, 80, 170, 255} {
		if err := d.FillRect(i*32, 100, 32, 28, ssd1351.Color565(level, level, level)); err != nil {
			return err
		}
	}
	return p.pause(ctx)
}

func shootingTarget(ctx context.Context, p *player) error {
	for r := 60; r > 0; r -= 10 {
		c := ssd1351.Red
		if r%20 == 10 {
			c = ssd1351.White
		}
		if err := p.d.FillCircle(64, 64, r, c); err != nil {
			return err
		}
	}
	return p.pause(ctx)
}

func radiatingLines(ctx context.Context, p *player) error {
	for i := 0; i < 8; i++ {
		if err := p.d.DrawLine(0, 0, i*16, 128, ssd1351.Cyan); err != nil {
			return err
		}
	}
	for i := 0; i < 8; i++ {
		if err := p.d.DrawLine(0, 0, 128, i*16, ssd1351.Cyan); err != nil {
			return err
		}
	}
	return p.pause(ctx)
}

func triforce(ctx context.Context, p *player) error {
	d := p.d
	if err := d.FillTriangle(64, 0, 32, 64, 96, 64, ssd1351.Yellow); err != nil {
		return err
	}
	if err := d.FillTriangle(0, 128, 32, 64, 64, 128, ssd1351.Yellow); err != nil {
		return err
	}
	if err := d.FillTriangle(64, 128, 128, 128, 96, 64, ssd1351.Yellow); err != nil {
		return err
	}
	return p.pause(ctx)
}

func text(ctx context.Context, p *player) error {
	d := p.d
	if err := d.Write("Hello, world!", ssd1351.White, nil); err != nil {
		return err
	}
	if err := p.pause(ctx); err != nil {
		return err
	}

	d.SetCursor(8, 8)
	if err := d.Write("This is the center", ssd1351.Cyan, ssd1351.Magenta); err != nil {
		return err
	}
	if err := p.pause(ctx); err != nil {
		return err
	}

	d.SetCursor(0, 0)
	if err := d.Write("Oops! overwriting\n", ssd1351.Green, nil); err != nil {
		return err
	}
	if err := d.Write("second line! 21°C", ssd1351.Green, nil); err != nil {
		return err
	}
	if err := p.pause(ctx); err != nil {
		return err
	}

	d.SetCursor(0, 0)
	if err := d.Write(lorem, ssd1351.White, ssd1351.Black); err != nil {
		return err
	}
	return p.pause(ctx)
}

const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. " +
	"Phasellus placerat diam tincidunt purus imperdiet, nec maximus orci posuere. " +
	"Duis egestas mattis nunc. In ultricies nunc vel elit imperdiet mollis. " +
	"Donec pulvinar mollis odio pellentesque pharetra. " +
	"Vestibulum ante ipsum primis in faucibus orci luctus et ultrices posuere cubilia"
