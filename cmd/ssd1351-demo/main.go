// Command ssd1351-demo draws test scenes on an SSD1351 panel.
//
// Without arguments all scenes are shown in order: colour bars, shooting
// target, radiating lines, triforce and text. Scene names may be given as
// arguments to pick a subset; the image scene is added by -image.
//
// Wiring, as used by the default configuration:
//
//	Panel      Raspberry Pi
//	GND        GND
//	VCC        3.3V
//	CLK        GPIO11 (SPI0 CLK)
//	DIN        GPIO10 (SPI0 MOSI)
//	DC         GPIO24
//	RST        GPIO25
//	CS         GPIO8 (SPI0 CE0)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/ssd1351"
	"github.com/BeatGlow/ssd1351/conn"
	"github.com/BeatGlow/ssd1351/displaytest"
	"github.com/BeatGlow/ssd1351/framebuffer"
	"github.com/BeatGlow/ssd1351/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "YAML configuration file, created with defaults when missing")
	driverFlag := flag.String("driver", "", "SPI driver: spidev or periph (overrides config)")
	portFlag := flag.String("port", "", "periph SPI port name (overrides config)")
	speedFlag := flag.Uint("speed", 0, "SPI speed in Hz (overrides config)")
	dryRunFlag := flag.Bool("dry-run", false, "Draw on a simulated panel instead of hardware")
	dumpFlag := flag.String("dump", "", "Directory to write a PNG of every scene to")
	mirrorFlag := flag.String("mirror", "", "Mirror the panel to a framebuffer device, such as /dev/fb0")
	imageFlag := flag.String("image", "", "Image file to show (PNG, JPEG, GIF or BMP)")
	delayFlag := flag.Duration("delay", 5*time.Second, "Time to show each scene")
	loopFlag := flag.Bool("loop", false, "Repeat the scenes until interrupted")
	contrastFlag := flag.Uint("contrast", 0xff, "Master contrast (0-255)")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			log.Fatalln("config failed:", err)
		}
	}
	if *driverFlag != "" {
		cfg.SPI.Driver = *driverFlag
	}
	if *portFlag != "" {
		cfg.SPI.Port = *portFlag
	}
	if *speedFlag != 0 {
		cfg.SPI.SpeedHz = uint32(*speedFlag)
	}
	if *debugFlag {
		cfg.Display.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	selected, err := selectScenes(flag.Args(), *imageFlag)
	if err != nil {
		fatal(err)
	}

	c, err := openConn(cfg, *dryRunFlag)
	if err != nil {
		fatal(err)
	}
	fmt.Println("using connection:", c)

	d, err := ssd1351.New(c, cfg.DisplayConfig())
	if err != nil {
		_ = c.Close()
		fatal(err)
	}
	defer d.Close()
	fmt.Println("using driver:", d)

	if err = d.SetContrast(uint8(*contrastFlag)); err != nil {
		fatal(err)
	}

	p := &player{
		d:     d,
		delay: *delayFlag,
		dump:  *dumpFlag,
	}
	if *dryRunFlag {
		p.delay = 0
	}
	if *mirrorFlag != "" {
		if p.mirror, err = framebuffer.OpenDevice(*mirrorFlag); err != nil {
			fatal(err)
		}
		defer p.mirror.Close()
		fmt.Println("mirroring to:", p.mirror)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Println("hit control-c to stop...")
	for {
		for _, s := range selected {
			fmt.Println("scene:", s.name)
			p.name, p.step = s.name, 0
			if err = s.play(ctx, p); err != nil {
				if ctx.Err() != nil {
					return
				}
				fatal(err)
			}
			if err = d.Clear(); err != nil {
				fatal(err)
			}
			d.SetCursor(0, 0)
		}
		if !*loopFlag {
			return
		}
	}
}

// openConn opens the transport selected by the configuration.
func openConn(cfg *config.Config, dryRun bool) (ssd1351.Conn, error) {
	if dryRun {
		return displaytest.NewPanel(cfg.Display.Width, cfg.Display.Height), nil
	}

	if _, err := host.Init(); err != nil {
		return nil, err
	}

	var (
		reset = gpioreg.ByName(cfg.SPI.Reset)
		dc    = gpioreg.ByName(cfg.SPI.DC)
	)
	switch cfg.SPI.Driver {
	case config.DriverPeriph:
		port, err := spireg.Open(cfg.SPI.Port)
		if err != nil {
			return nil, err
		}
		c, err := ssd1351.NewSPI(port, dc, reset, physic.Frequency(cfg.SPI.SpeedHz)*physic.Hertz)
		if err != nil {
			_ = port.Close()
			return nil, err
		}
		return c, nil

	default:
		spiConfig := &ssd1351.SPIConfig{
			Bus:       cfg.SPI.Bus,
			Device:    cfg.SPI.Device,
			Mode:      conn.SPIMode0,
			SpeedHz:   cfg.SPI.SpeedHz,
			BatchSize: uint(cfg.Display.MaxTransfer),
			Reset:     reset,
			DC:        dc,
		}
		if cfg.SPI.CS != "" {
			spiConfig.CE = gpioreg.ByName(cfg.SPI.CS)
		}
		return ssd1351.OpenSPI(spiConfig)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
