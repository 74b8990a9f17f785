// Package config loads the optional rc file, a small YAML document that
// remaps action keys and bounds the widget height.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config is the root of the rc file schema.
type Config struct {
	Keys    Keys    `yaml:"keys"`
	Display Display `yaml:"display"`
}

// Keys remaps the action keys of the calculator. Each field holds a single
// character; an empty string keeps the built-in key.
type Keys struct {
	Clear  string `yaml:"clear"`
	Equals string `yaml:"equals"`
	Exit   string `yaml:"exit"`
}

// Display configures the rendering of the widget.
type Display struct {
	// MaxHeight limits the number of lines the widget may use. Zero means no
	// limit.
	MaxHeight int `yaml:"max-height"`
}

// Default returns the default configuration.
func Default() Config { return Config{} }

// Load reads the configuration from the file at path. A non-existent or
// empty file is not an error and yields the default configuration. Unknown
// fields are rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return Default(), nil
		}
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for _, key := range []struct{ name, value string }{
		{"keys.clear", c.Keys.Clear},
		{"keys.equals", c.Keys.Equals},
		{"keys.exit", c.Keys.Exit},
	} {
		if key.value != "" && utf8.RuneCountInString(key.value) != 1 {
			return fmt.Errorf(
				"%s must be a single character, got %q", key.name, key.value)
		}
	}
	if c.Display.MaxHeight < 0 {
		return fmt.Errorf(
			"display.max-height must be non-negative, got %d", c.Display.MaxHeight)
	}
	return nil
}
