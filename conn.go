package ssd1351

import (
	"errors"
	"fmt"
	"log"

	pconn "periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/ssd1351/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("ssd1351: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("ssd1351: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments. The arguments
	// are sent in data mode.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

type SPI interface {
	Conn

	// SetDataLow changes the data/command direction behaviour.
	SetDataLow(bool)

	// SetMode requests a SPI mode.
	SetMode(mode conn.SPIMode) error

	// SetMaxSpeed requests a SPI speed.
	SetMaxSpeed(hz int) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus       int
	Device    int
	Mode      conn.SPIMode
	SpeedHz   uint32
	DataLow   bool
	BatchSize uint
	Reset     gpio.PinOut
	DC        gpio.PinOut
	CE        gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	Mode:      conn.SPIMode0,
	SpeedHz:   8_000_000,
	BatchSize: DefaultMaxTransfer,
	Reset:     gpioreg.ByName("GPIO25"),
	DC:        gpioreg.ByName("GPIO24"),
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	16_000_000,
	20_000_000,
}

type spiConn struct {
	bus       *conn.SPI
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	dcSet     bool
	cs        gpio.PinOut
	dataLow   bool
	batchSize uint
}

// OpenSPI opens a spidev device. A nil config uses DefaultSPIConfig.
func OpenSPI(config *SPIConfig) (SPI, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}

	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}
	if !validSPISpeed(config.SpeedHz) {
		return nil, fmt.Errorf("ssd1351: invalid SPI speed %dHz", config.SpeedHz)
	}

	c, err := conn.OpenSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}
	if err = c.SetMode(config.Mode); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = c.Close()
		return nil, err
	}

	return &spiConn{
		bus:       c,
		batchSize: config.BatchSize,
		dataLow:   config.DataLow,
		reset:     config.Reset,
		dc:        config.DC,
		cs:        config.CE,
	}, nil
}

func validSPISpeed(hz uint32) bool {
	for _, speed := range ValidSPISpeeds {
		if speed == hz {
			return true
		}
	}
	return false
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if !c.dcSet || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel, c.dcSet = level, true
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.updateDC(gpio.Level(c.dataLow)); err != nil {
		return
	}
	if _, err = c.bus.Write([]byte{cmnd}); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
			return
		}
		if err = c.writeChunked(data); err != nil {
			return
		}
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) error {
	if debug && len(data) > int(c.batchSize) {
		log.Printf("ssd1351: write %d bytes of data in %d chunks", len(data), (len(data)+int(c.batchSize)-1)/int(c.batchSize))
	}
	for _, chunk := range (Batcher{Max: int(c.batchSize)}).Chunks(data) {
		if _, err := c.bus.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

func (c *spiConn) SetDataLow(v bool) {
	c.dataLow = v
}

func (c *spiConn) SetMode(mode conn.SPIMode) error {
	return c.bus.SetMode(mode)
}

func (c *spiConn) SetMaxSpeed(hz int) error {
	return c.bus.SetMaxSpeed(hz)
}

// periphConn is a Conn on top of a periph.io SPI port.
type periphConn struct {
	port    spi.Port
	conn    spi.Conn
	reset   gpio.PinOut
	dc      gpio.PinOut
	dcLevel gpio.Level
	dcSet   bool
	maxTx   int
}

// NewSPI returns a Conn using an opened periph.io SPI port, such as one
// returned by spireg.Open. The port is connected in mode 0 with 8 bit words.
func NewSPI(port spi.Port, dc, reset gpio.PinOut, speed physic.Frequency) (Conn, error) {
	if reset == nil || reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if dc == nil || dc == gpio.INVALID {
		return nil, ErrDCPin
	}
	if speed == 0 {
		speed = physic.Frequency(DefaultSPIConfig.SpeedHz) * physic.Hertz
	}

	c, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	maxTx := DefaultMaxTransfer
	if l, ok := c.(pconn.Limits); ok && l.MaxTxSize() > 0 {
		maxTx = l.MaxTxSize()
	}

	return &periphConn{
		port:  port,
		conn:  c,
		reset: reset,
		dc:    dc,
		maxTx: maxTx,
	}, nil
}

func (c *periphConn) String() string {
	return fmt.Sprintf("SPI port %s", c.conn)
}

// Close closes the port if it supports closing.
func (c *periphConn) Close() error {
	if closer, ok := c.port.(spi.PortCloser); ok {
		return closer.Close()
	}
	return nil
}

func (c *periphConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *periphConn) updateDC(level gpio.Level) error {
	if !c.dcSet || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel, c.dcSet = level, true
	}
	return nil
}

func (c *periphConn) Command(cmnd byte, data ...byte) error {
	if err := c.updateDC(gpio.Low); err != nil {
		return err
	}
	if err := c.conn.Tx([]byte{cmnd}, nil); err != nil {
		return err
	}
	return c.Data(data...)
}

func (c *periphConn) Data(data ...byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := c.updateDC(gpio.High); err != nil {
		return err
	}
	for _, chunk := range (Batcher{Max: c.maxTx}).Chunks(data) {
		if err := c.conn.Tx(chunk, nil); err != nil {
			return err
		}
	}
	return nil
}

// Interface checks.
var (
	_ SPI  = (*spiConn)(nil)
	_ Conn = (*periphConn)(nil)
)
