// Package config loads the ambient settings shared by the pipecache CLI
// subcommands from a YAML file, the way the teacher loads its own
// configuration (§4.8).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level on-disk configuration shape.
type Config struct {
	ArchivePath string `yaml:"archivePath"`
	Compress    bool   `yaml:"compress"`
	LogLevel    string `yaml:"logLevel"`
}

// Default returns a Config populated with the values pipecache runs with
// when no config file is given.
func Default() Config {
	return Config{
		ArchivePath: "pipecache.foz",
		Compress:    true,
		LogLevel:    "info",
	}
}

// applyDefaults fills any zero-valued field of c with Default()'s value.
// Idempotent: calling it twice on an already-defaulted Config changes
// nothing.
func (c Config) applyDefaults() Config {
	d := Default()
	if c.ArchivePath == "" {
		c.ArchivePath = d.ArchivePath
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// Load reads and decodes the YAML config at path, applying defaults to any
// field the file leaves unset. A missing file is not an error: Load returns
// Default() instead, so a bare pipecache invocation with no config works.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c.applyDefaults(), nil
}
