// Package config loads the optional pcc.yaml file that sets defaults for a
// directory of sources.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

const (
	Filename       = "pcc.yaml"
	CurrentVersion = 1
)

// Config mirrors pcc.yaml. Zero values mean "not set"; command-line flags
// take precedence over anything set here.
type Config struct {
	Version int    `yaml:"version"`
	Target  string `yaml:"target,omitempty"`
	Strict  bool   `yaml:"strict,omitempty"`
	// Requires is the minimum pcc version, as a semver string ("v0.1.0").
	Requires string `yaml:"requires,omitempty"`
}

func (c *Config) normalize() {
	if c.Version == 0 {
		c.Version = CurrentVersion
	}
}

// Find returns the pcc.yaml that sits next to sourcePath, if there is one.
func Find(sourcePath string) (string, bool) {
	path := filepath.Join(filepath.Dir(sourcePath), Filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Load reads and validates the config file at path. Unknown keys are an
// error so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes config data; name is only used in error messages.
func Parse(name string, data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse %s: %w", name, err)
	}
	cfg.normalize()

	if cfg.Version > CurrentVersion {
		return Config{}, fmt.Errorf("parse %s: unsupported config version %d", name, cfg.Version)
	}
	if cfg.Requires != "" && !semver.IsValid(cfg.Requires) {
		return Config{}, fmt.Errorf("parse %s: requires %q is not a semantic version", name, cfg.Requires)
	}
	return cfg, nil
}

// CheckVersion reports whether the running pcc satisfies Requires.
// Development builds whose version is not valid semver always pass.
func (c Config) CheckVersion(current string) error {
	if c.Requires == "" || !semver.IsValid(current) {
		return nil
	}
	if semver.Compare(current, c.Requires) < 0 {
		return fmt.Errorf("config requires pcc %s or later (running %s)", c.Requires, current)
	}
	return nil
}
