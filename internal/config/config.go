// Package config loads the YAML configuration of the ssd1351 demo.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/BeatGlow/ssd1351"
)

// Transport drivers.
const (
	DriverSPIDev = "spidev"
	DriverPeriph = "periph"
)

// DisplayConfig describes the panel.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// MaxTransfer is the largest data transfer in bytes.
	MaxTransfer int `yaml:"max_transfer"`

	DisableOptimization bool `yaml:"disable_optimization"`
	ExactClip           bool `yaml:"exact_clip"`
	Debug               bool `yaml:"debug"`
}

// SPIConfig describes how the panel is wired.
type SPIConfig struct {
	// Driver is either "spidev" (raw device access) or "periph" (periph.io
	// SPI registry).
	Driver string `yaml:"driver"`

	// Bus and Device select /dev/spidev<bus>.<device>.
	Bus    int `yaml:"bus"`
	Device int `yaml:"device"`

	// Port is the periph.io port name, empty for the first available port.
	Port string `yaml:"port"`

	SpeedHz uint32 `yaml:"speed_hz"`

	// Pin names as known to gpioreg, such as "GPIO24".
	DC    string `yaml:"dc"`
	Reset string `yaml:"reset"`
	CS    string `yaml:"cs,omitempty"`
}

// Config is the top-level demo configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	SPI     SPIConfig     `yaml:"spi"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:       ssd1351.DefaultWidth,
			Height:      ssd1351.DefaultHeight,
			MaxTransfer: ssd1351.DefaultMaxTransfer,
		},
		SPI: SPIConfig{
			Driver:  DriverSPIDev,
			SpeedHz: ssd1351.DefaultSPIConfig.SpeedHz,
			DC:      "GPIO24",
			Reset:   "GPIO25",
		},
	}
}

// Normalize fills in missing values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Display.Width == 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height == 0 {
		c.Display.Height = def.Display.Height
	}
	if c.Display.MaxTransfer == 0 {
		c.Display.MaxTransfer = def.Display.MaxTransfer
	}
	if c.SPI.Driver == "" {
		c.SPI.Driver = def.SPI.Driver
	}
	if c.SPI.SpeedHz == 0 {
		c.SPI.SpeedHz = def.SPI.SpeedHz
	}
	if c.SPI.DC == "" {
		c.SPI.DC = def.SPI.DC
	}
	if c.SPI.Reset == "" {
		c.SPI.Reset = def.SPI.Reset
	}
}

// Validate reports configuration values that can never work.
func (c *Config) Validate() error {
	switch c.SPI.Driver {
	case DriverSPIDev, DriverPeriph:
	default:
		return fmt.Errorf("config: unknown SPI driver %q", c.SPI.Driver)
	}
	if c.SPI.Bus < 0 || c.SPI.Device < 0 {
		return fmt.Errorf("config: invalid SPI device %d.%d", c.SPI.Bus, c.SPI.Device)
	}
	return nil
}

// DisplayConfig returns the driver configuration.
func (c *Config) DisplayConfig() *ssd1351.Config {
	return &ssd1351.Config{
		Width:               c.Display.Width,
		Height:              c.Display.Height,
		MaxTransfer:         c.Display.MaxTransfer,
		DisableOptimization: c.Display.DisableOptimization,
		ExactClip:           c.Display.ExactClip,
		Debug:               c.Display.Debug,
	}
}

// Load reads the configuration at path. A missing file is created with the
// default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			return cfg, Save(path, cfg)
		}
		return nil, err
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path, replacing any existing file atomically.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ssd1351-*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer os.Remove(name)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(name, 0o644); err != nil {
		return err
	}
	return os.Rename(name, path)
}
