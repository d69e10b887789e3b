// Package config loads terrareach settings from a TOML file layered over
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/terrareach/units"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full terrareach configuration, one field per TOML table.
type Config struct {
	Raster  RasterConfig  `toml:"raster"`
	Search  SearchConfig  `toml:"search"`
	Server  ServerConfig  `toml:"server"`
	Batch   BatchConfig   `toml:"batch"`
	Logging LoggingConfig `toml:"logging"`
}

// RasterConfig names the elevation raster to load.
type RasterConfig struct {
	Path string `toml:"path"` // .asc or .yaml descriptor
}

// SearchConfig holds request defaults; CLI flags and HTTP bodies override them.
type SearchConfig struct {
	MaxElevation float64       `toml:"max_elevation"` // metres, exclusive
	Speed        float64       `toml:"speed"`
	SpeedUnit    string        `toml:"speed_unit"` // kn, km/h, m/s, mph
	Time         time.Duration `toml:"time"`
	MarkOrigin   bool          `toml:"mark_origin"`
	MaxAccepted  int           `toml:"max_accepted"` // 0 = unlimited
}

// ServerConfig configures the HTTP listener of the serve command.
type ServerConfig struct {
	BindAddress  string        `toml:"bind_address"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	Debug        bool          `toml:"debug"` // gin debug mode
}

// BatchConfig bounds how many batch searches run at once.
type BatchConfig struct {
	Concurrency int `toml:"concurrency"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path and decodes it over Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			MaxElevation: 3000,
			Speed:        120,
			SpeedUnit:    "kn",
			Time:         30 * time.Minute,
			MarkOrigin:   true,
		},
		Server: ServerConfig{
			BindAddress:  "127.0.0.1:8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks values that the decoder cannot.
func (c *Config) Validate() error {
	if _, err := units.ParseSpeedUnit(c.Search.SpeedUnit); err != nil {
		return fmt.Errorf("%w: search.speed_unit: %w", ErrInvalid, err)
	}
	if c.Search.Time < 0 {
		return fmt.Errorf("%w: search.time must be non-negative", ErrInvalid)
	}
	if c.Search.MaxAccepted < 0 {
		return fmt.Errorf("%w: search.max_accepted must be non-negative", ErrInvalid)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("%w: batch.concurrency must be at least 1", ErrInvalid)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}
