// Package hostconfig loads the host's own run-time configuration: the
// settings embedding code needs that the interpreter core itself has
// no business knowing, such as where to write a step trace and how
// diagnostics should be rendered. It is grounded on funxy's own
// internal/ext config loader
// (internal/ext/config.go's Config/LoadConfig/ParseConfig), carrying
// over its yaml.v3-based load-then-validate-then-default shape while
// dropping everything specific to funxy's Go-binding generation.
package hostconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional carbon.yaml a host may load before compiling
// and running a source file.
type Config struct {
	// Trace, if non-empty, is a file path the interpreter's step tracer
	// writes to while running (see internal/interp.Tracer); cmd/carbon
	// creates the file, truncating any existing one. Empty disables
	// tracing.
	Trace string `yaml:"trace,omitempty"`

	// Color controls whether diagnostics are rendered with ANSI color.
	// "auto" (the default) defers to the host's TTY detection.
	Color string `yaml:"color,omitempty"`
}

// Load reads and parses a carbon.yaml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses carbon.yaml content already read into memory. The path
// argument is used only to annotate error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) validate(path string) error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%s: color: must be one of auto, always, never, got %q", path, c.Color)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = "auto"
	}
}
