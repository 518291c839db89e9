package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	API     APIConfig    `yaml:"api" json:"api"`
	Output  OutputConfig `yaml:"output" json:"output"`
	Charts  ChartsConfig `yaml:"charts" json:"charts"`
}

// APIConfig configures the analysis backend connection
type APIConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`               // backend endpoint
	HealthTimeout  time.Duration `yaml:"health_timeout" json:"health_timeout"`   // health probe bound
	AnalyzeTimeout time.Duration `yaml:"analyze_timeout" json:"analyze_timeout"` // analyze request bound
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// ChartsConfig configures where decoded chart images are written
type ChartsConfig struct {
	Dir  string `yaml:"dir" json:"dir"`
	Save bool   `yaml:"save" json:"save"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL:        "http://localhost:5000/api",
			HealthTimeout:  5 * time.Second,
			AnalyzeTimeout: 30 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		Charts: ChartsConfig{
			Dir:  "./charts",
			Save: false,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAPIConfig(); err != nil {
		return err
	}
	return c.validateOutputConfig()
}

func (c *Config) validateAPIConfig() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.HealthTimeout <= 0 {
		return fmt.Errorf("api.health_timeout must be positive")
	}
	if c.API.AnalyzeTimeout <= 0 {
		return fmt.Errorf("api.analyze_timeout must be positive")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"json":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}
