// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/career-coach/internal/raster"
)

// Defaults for export settings
const (
	DefaultCaptureWidthPx = 794
	DefaultPaddingPx      = 32
	DefaultSettleTimeout  = 10 * time.Second
	DefaultCaptureTimeout = 30 * time.Second
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Export
	PageFormat     string `json:"page_format,omitempty"`      // A4, Letter or Legal
	CaptureWidthPx int    `json:"capture_width_px,omitempty"` // Preview surface width in CSS pixels
	PaddingPx      *int   `json:"padding_px,omitempty"`       // Preview surface padding in CSS pixels
	SettleTimeout  string `json:"settle_timeout,omitempty"`   // Max wait for the layout-complete signal, e.g. "10s"
	SettleDelay    string `json:"settle_delay,omitempty"`     // Extra fixed wait after the signal, e.g. "250ms"
	CaptureTimeout string `json:"capture_timeout,omitempty"`  // Max duration of one capture
	ChromePath     string `json:"chrome_path,omitempty"`      // Chrome/Chromium binary

	// Services
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.PageFormat != "" {
		if _, err := raster.ParsePageFormat(c.PageFormat); err != nil {
			return fmt.Errorf("config error: 'page_format': %w", err)
		}
	}
	if c.CaptureWidthPx < 0 {
		return fmt.Errorf("config error: 'capture_width_px' must be non-negative")
	}
	if c.PaddingPx != nil && *c.PaddingPx < 0 {
		return fmt.Errorf("config error: 'padding_px' must be non-negative")
	}

	durations := []struct {
		name  string
		value string
	}{
		{"settle_timeout", c.SettleTimeout},
		{"settle_delay", c.SettleDelay},
		{"capture_timeout", c.CaptureTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("config error: '%s' is not a duration: %w", d.name, err)
		}
		if v < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", d.name)
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.PageFormat == "" {
		result.PageFormat = defaults.PageFormat
	}
	if result.CaptureWidthPx == 0 {
		result.CaptureWidthPx = defaults.CaptureWidthPx
	}
	if result.PaddingPx == nil {
		result.PaddingPx = defaults.PaddingPx
	}
	if result.SettleTimeout == "" {
		result.SettleTimeout = defaults.SettleTimeout
	}
	if result.SettleDelay == "" {
		result.SettleDelay = defaults.SettleDelay
	}
	if result.CaptureTimeout == "" {
		result.CaptureTimeout = defaults.CaptureTimeout
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ExportSettings is the resolved, typed form of the export fields.
type ExportSettings struct {
	Format         raster.PageFormat
	CaptureWidthPx int
	PaddingPx      int
	SettleTimeout  time.Duration
	SettleDelay    time.Duration
	CaptureTimeout time.Duration
	ChromePath     string
}

// Export resolves the export fields, applying package defaults to anything unset.
// Call Validate first; malformed values fall back to defaults here.
func (c *Config) Export() ExportSettings {
	s := ExportSettings{
		Format:         raster.FormatA4,
		CaptureWidthPx: DefaultCaptureWidthPx,
		PaddingPx:      DefaultPaddingPx,
		SettleTimeout:  DefaultSettleTimeout,
		CaptureTimeout: DefaultCaptureTimeout,
		ChromePath:     c.ChromePath,
	}
	if f, err := raster.ParsePageFormat(c.PageFormat); err == nil {
		s.Format = f
	}
	if c.CaptureWidthPx > 0 {
		s.CaptureWidthPx = c.CaptureWidthPx
	}
	if c.PaddingPx != nil && *c.PaddingPx >= 0 {
		s.PaddingPx = *c.PaddingPx
	}
	if d, ok := parseDuration(c.SettleTimeout); ok && d > 0 {
		s.SettleTimeout = d
	}
	if d, ok := parseDuration(c.SettleDelay); ok {
		s.SettleDelay = d
	}
	if d, ok := parseDuration(c.CaptureTimeout); ok && d > 0 {
		s.CaptureTimeout = d
	}
	return s
}

func parseDuration(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}
