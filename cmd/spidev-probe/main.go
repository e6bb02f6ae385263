// Command spidev-probe checks that a spidev device can be opened and
// configured the way the SSD1351 driver needs it.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/BeatGlow/ssd1351"
	"github.com/BeatGlow/ssd1351/conn"
)

func main() {
	busFlag := flag.Int("bus", 0, "SPI bus")
	deviceFlag := flag.Int("device", 0, "SPI device")
	modeFlag := flag.Uint("mode", uint(conn.SPIMode0), "SPI mode (0-3)")
	speedFlag := flag.Int("speed", int(ssd1351.DefaultSPIConfig.SpeedHz), "SPI speed in Hz")
	flag.Parse()

	if *modeFlag > 3 {
		log.Fatalln("invalid SPI mode", *modeFlag)
	}

	c, err := conn.OpenSPI(*busFlag, *deviceFlag)
	if err != nil {
		log.Fatalln("open failed:", err)
	}
	fmt.Println("opened", c)

	if err = c.SetMode(conn.SPIMode(*modeFlag)); err != nil {
		log.Fatalln("set mode failed:", err)
	}
	if err = c.SetBitsPerWord(8); err != nil {
		log.Fatalln("set bits per word failed:", err)
	}
	if err = c.SetMaxSpeed(*speedFlag); err != nil {
		log.Fatalln("set speed failed:", err)
	}
	fmt.Println("configured", c)

	if err = c.Close(); err != nil {
		log.Fatalln("close failed:", err)
	}
}
