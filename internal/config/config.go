// Package config loads the optional segbufgen.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the config file when --config is not given.
const EnvVar = "SEGBUFGEN_CONFIG"

// Config is the generator configuration.
type Config struct {
	// Suffix replaces ".go" in the input name to form the output name.
	Suffix string `yaml:"suffix"`

	// BuildTags are ANDed into a //go:build line on every generated file.
	BuildTags []string `yaml:"build_tags"`

	// DefaultElem is the element type for annotations without elem=.
	DefaultElem string `yaml:"default_elem"`

	// Header is copied as comment lines below the generated-code notice.
	Header string `yaml:"header"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Suffix: "_segbuf.go",
	}
}

// Load reads path, or the file named by SEGBUFGEN_CONFIG when path is
// empty. With neither set it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasSuffix(c.Suffix, ".go") {
		errs = append(errs, fmt.Errorf("suffix %q must end in .go", c.Suffix))
	} else if strings.HasSuffix(c.Suffix, "_test.go") {
		errs = append(errs, fmt.Errorf("suffix %q would generate a test file", c.Suffix))
	} else if c.Suffix == ".go" {
		errs = append(errs, errors.New("suffix .go would overwrite the input"))
	}

	for _, tag := range c.BuildTags {
		if tag == "" || strings.ContainsAny(tag, " \t&|()") {
			errs = append(errs, fmt.Errorf("build tag %q must be a single term", tag))
		}
	}

	if c.DefaultElem != "" && strings.ContainsAny(c.DefaultElem, " \t\n") {
		errs = append(errs, fmt.Errorf("default_elem %q is not a type name", c.DefaultElem))
	}

	return errors.Join(errs...)
}

// OutputName returns the generated file name for input.
func (c *Config) OutputName(input string) string {
	return strings.TrimSuffix(input, ".go") + c.Suffix
}
