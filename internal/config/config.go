// Package config loads the settings of the jtab command from a YAML file.
//
// Settings are applied in this order, later ones winning:
//  1. Built-in defaults
//  2. The configuration file
//  3. Environment variables (JTAB_DRIVER, JTAB_DSN)
//  4. Command-line flags (applied by the command itself)
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arnodel/jsontable"
	"github.com/arnodel/jsontable/cell"
)

type Config struct {
	NotifyInterval int            `yaml:"notify_interval"`
	Color          string         `yaml:"color"`
	Parse          ParseConfig    `yaml:"parse"`
	Database       DatabaseConfig `yaml:"database"`
}

// ParseConfig selects which strings are turned into richer cell types.
type ParseConfig struct {
	Dates     bool `yaml:"dates"`
	UUIDs     bool `yaml:"uuids"`
	URIs      bool `yaml:"uris"`
	Durations bool `yaml:"durations"`
	Bytes     bool `yaml:"bytes"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		NotifyInterval: jsontable.DefaultNotifyInterval,
		Color:          "auto",
		Parse:          ParseConfig{Dates: true},
	}
}

// Load returns the defaults overridden by the file at path, if path is not
// empty, and by the environment.  The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if driver := os.Getenv("JTAB_DRIVER"); driver != "" {
		cfg.Database.Driver = driver
	}
	if dsn := os.Getenv("JTAB_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q (use auto, always or never)", c.Color)
	}
	switch c.Database.Driver {
	case "", "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q (use sqlite, mysql or postgres)", c.Database.Driver)
	}
	return nil
}

// Inference returns the string parsing settings.
func (c *Config) Inference() cell.Inference {
	return cell.Inference{
		Dates:     c.Parse.Dates,
		UUIDs:     c.Parse.UUIDs,
		URIs:      c.Parse.URIs,
		Durations: c.Parse.Durations,
		Bytes:     c.Parse.Bytes,
	}
}

// ReaderOptions returns the options to create a jsontable.Reader with.
func (c *Config) ReaderOptions() []jsontable.Option {
	return []jsontable.Option{
		jsontable.WithNotifyInterval(c.NotifyInterval),
		jsontable.WithInference(c.Inference()),
	}
}
