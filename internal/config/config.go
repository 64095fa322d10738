// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geoconv/internal/crs"
	"github.com/woozymasta/geoconv/internal/geo"
	"github.com/woozymasta/geoconv/internal/wkt"
)

// Config represents the root configuration file structure.
type Config struct {
	CRS               CRSPair `yaml:"crs" json:"crs"`
	Source            string  `yaml:"source" json:"source"`                           // tag written into parsed features
	Tolerance         float64 `yaml:"tolerance" json:"tolerance"`                     // default simplify tolerance, degrees
	PrecisionDigits   int     `yaml:"precision_digits" json:"precision_digits"`       // fraction digits before a warning
	MaxDepth          int     `yaml:"max_depth" json:"max_depth"`                     // recursion bound of coordinate walks
	MaxReportedIssues int     `yaml:"max_reported_issues" json:"max_reported_issues"` // findings listed in a summary
}

// CRSPair is the default transform direction.
type CRSPair struct {
	From crs.CRS `yaml:"from" json:"from"`
	To   crs.CRS `yaml:"to" json:"to"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source:            wkt.DefaultSource,
		Tolerance:         0.01,
		CRS:               CRSPair{From: crs.WGS84, To: crs.GCJ02},
		PrecisionDigits:   10,
		MaxDepth:          geo.DefaultMaxDepth,
		MaxReportedIssues: 5,
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Missing fields keep their defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if _, err := crs.Parse(string(c.CRS.From)); err != nil {
		return fmt.Errorf("crs.from: %w", err)
	}
	if _, err := crs.Parse(string(c.CRS.To)); err != nil {
		return fmt.Errorf("crs.to: %w", err)
	}
	if !(c.Tolerance > 0) {
		return fmt.Errorf("tolerance must be positive, got %v", c.Tolerance)
	}
	if c.PrecisionDigits <= 0 || c.MaxDepth <= 0 || c.MaxReportedIssues <= 0 {
		return errors.New("precision_digits, max_depth and max_reported_issues must be positive")
	}
	return nil
}
