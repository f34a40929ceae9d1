// Package config handles loading and managing application configuration
// from YAML files, an optional .env file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/openclaw/qrkit/qrcode"
)

// Config holds all application configuration values.
type Config struct {
	Port             int      `yaml:"port"`
	LogLevel         string   `yaml:"log_level"`
	ErrorCorrection  string   `yaml:"error_correction"`
	Margin           int      `yaml:"margin"`
	DefaultSize      int      `yaml:"default_size"`
	MaxSize          int      `yaml:"max_size"`
	MaxContentLength int      `yaml:"max_content_length"`
	MaxASCIIModules  int      `yaml:"max_ascii_modules"`
	ReadTimeout      Duration `yaml:"read_timeout"`
	WriteTimeout     Duration `yaml:"write_timeout"`
}

// Duration is a wrapper around time.Duration that supports YAML unmarshalling
// from human-readable strings like "30s", "5m", "1h".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns a Config populated with sensible default values.
func Defaults() *Config {
	return &Config{
		Port:             8556,
		LogLevel:         "info",
		ErrorCorrection:  "M",
		Margin:           qrcode.DefaultMargin,
		DefaultSize:      256,
		MaxSize:          4096,
		MaxContentLength: 2048,
		MaxASCIIModules:  100,
		ReadTimeout:      Duration{10 * time.Second},
		WriteTimeout:     Duration{30 * time.Second},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. Environment variables with the
// QRKIT_ prefix override any file or default values.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs from path into the process environment
// without overwriting variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies QRKIT_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	ints := map[string]*int{
		"QRKIT_PORT":               &cfg.Port,
		"QRKIT_MARGIN":             &cfg.Margin,
		"QRKIT_DEFAULT_SIZE":       &cfg.DefaultSize,
		"QRKIT_MAX_SIZE":           &cfg.MaxSize,
		"QRKIT_MAX_CONTENT_LENGTH": &cfg.MaxContentLength,
		"QRKIT_MAX_ASCII_MODULES":  &cfg.MaxASCIIModules,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	if v := os.Getenv("QRKIT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QRKIT_ERROR_CORRECTION"); v != "" {
		cfg.ErrorCorrection = v
	}
	if v := os.Getenv("QRKIT_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReadTimeout = Duration{d}
		}
	}
	if v := os.Getenv("QRKIT_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WriteTimeout = Duration{d}
		}
	}
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	if _, err := qrcode.ParseLevel(c.ErrorCorrection); err != nil {
		return fmt.Errorf("error_correction: %w", err)
	}
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("port %d out of range", c.Port)
	case c.Margin < 0:
		return fmt.Errorf("margin must not be negative, got %d", c.Margin)
	case c.DefaultSize <= 0 || c.MaxSize <= 0:
		return fmt.Errorf("default_size and max_size must be positive")
	case c.DefaultSize > c.MaxSize:
		return fmt.Errorf("default_size %d exceeds max_size %d", c.DefaultSize, c.MaxSize)
	case c.MaxContentLength <= 0:
		return fmt.Errorf("max_content_length must be positive, got %d", c.MaxContentLength)
	case c.MaxASCIIModules < 0:
		return fmt.Errorf("max_ascii_modules must not be negative, got %d", c.MaxASCIIModules)
	}
	return nil
}

// EncodeOptions returns the qrcode options the configuration describes.
func (c *Config) EncodeOptions() qrcode.Options {
	level, _ := qrcode.ParseLevel(c.ErrorCorrection)
	margin := c.Margin
	return qrcode.Options{Level: level, Margin: &margin}
}
