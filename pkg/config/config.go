// Package config loads the optional YAML defaults file layered under
// command-line flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iconsmith/iconsmith/pkg/icon/spec"
)

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Packs    []string       `yaml:"packs"`
	Archive  ArchiveConfig  `yaml:"archive"`
}

// DefaultsConfig carries global placement defaults.
type DefaultsConfig struct {
	Fit        string  `yaml:"fit"`
	Padding    float64 `yaml:"padding"`
	Background string  `yaml:"background"`
}

type ArchiveConfig struct {
	Format string `yaml:"format"`
}

// Default returns the built-in configuration: contain fit, no padding,
// transparent background, zip output.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{Fit: "contain"},
		Archive:  ArchiveConfig{Format: "zip"},
	}
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Placement resolves the configured defaults into validated placement
// parameters. Invalid values are rejected, not clamped.
func (c *Config) Placement() (spec.Placement, error) {
	fit, err := spec.ParseFit(c.Defaults.Fit)
	if err != nil {
		return spec.Placement{}, err
	}
	bg, err := spec.ParseBackground(c.Defaults.Background)
	if err != nil {
		return spec.Placement{}, err
	}

	p := spec.Placement{Fit: fit, Padding: c.Defaults.Padding, Background: bg}
	if err := p.Validate(); err != nil {
		return spec.Placement{}, err
	}
	return p, nil
}
