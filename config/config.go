// Package config loads and validates the mixplan application configuration
// from TOML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains filesystem locations
type Paths struct {
	Database  string `toml:"database"`   // SQLite cache location
	ModelPath string `toml:"model_path"` // Embedding model artifact; empty disables the embedding stage
}

// Analysis configures the per-track pipeline
type Analysis struct {
	Workers        int `toml:"workers"`         // Parallel track analyses; 0 means CPU count
	Version        int `toml:"version"`         // Analysis version tag on produced results
	WaveformPoints int `toml:"waveform_points"` // Preview envelope resolution
}

// Planner configures set planning defaults
type Planner struct {
	DefaultMode string `toml:"default_mode"` // warmUp, peakTime or openFormat
}

// Config is the root application configuration
type Config struct {
	Paths    Paths    `toml:"paths"`
	Analysis Analysis `toml:"analysis"`
	Planner  Planner  `toml:"planner"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Paths: Paths{
			Database: "mixplan.db",
		},
		Analysis: Analysis{
			Workers:        0,
			Version:        1,
			WaveformPoints: 1024,
		},
		Planner: Planner{
			DefaultMode: "openFormat",
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file yields
// the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot honor, naming the
// offending field.
func (c *Config) Validate() error {
	if c.Paths.Database == "" {
		return errors.New("paths.database must not be empty")
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative, got %d", c.Analysis.Workers)
	}
	if c.Analysis.Version < 1 {
		return fmt.Errorf("analysis.version must be at least 1, got %d", c.Analysis.Version)
	}
	if c.Analysis.WaveformPoints < 1 {
		return fmt.Errorf("analysis.waveform_points must be at least 1, got %d", c.Analysis.WaveformPoints)
	}
	switch c.Planner.DefaultMode {
	case "warmUp", "peakTime", "openFormat":
	default:
		return fmt.Errorf("planner.default_mode must be warmUp, peakTime or openFormat, got %q", c.Planner.DefaultMode)
	}
	return nil
}

// SampleConfig returns the annotated sample TOML shipped with the binary
func SampleConfig() string {
	return sampleConfig
}
