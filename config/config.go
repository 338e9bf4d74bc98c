// Package config loads the oliva configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/etnz/oliveprice"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Path       string `yaml:"path"`
		Layout     string `yaml:"layout"`
		Convention string `yaml:"convention"`
	} `yaml:"log"`
	Snapshot struct {
		Path       string `yaml:"path"`
		Convention string `yaml:"convention"`
	} `yaml:"snapshot"`
	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`
	Source struct {
		URL   string `yaml:"url"`
		Cache bool   `yaml:"cache"`
	} `yaml:"source"`
	Schedule struct {
		Cron        string `yaml:"cron"`
		MetricsAddr string `yaml:"metrics_addr"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// DefaultSourceURL is the public page with today's prices.
const DefaultSourceURL = "https://aove.net/precio-aceite-de-oliva-hoy-poolred/"

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is an empty configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("OLIVA_LOG"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("OLIVA_LOG_CONVENTION"); v != "" {
		cfg.Log.Convention = v
	}
	if v := os.Getenv("OLIVA_SNAPSHOT"); v != "" {
		cfg.Snapshot.Path = v
	}
	if v := os.Getenv("OLIVA_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("OLIVA_SOURCE_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("OLIVA_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("OLIVA_METRICS_ADDR"); v != "" {
		cfg.Schedule.MetricsAddr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Log.Path == "" {
		cfg.Log.Path = "precios2015.txt"
	}
	if cfg.Log.Layout == "" {
		cfg.Log.Layout = oliveprice.LayoutBlock.String()
	}
	if cfg.Log.Convention == "" {
		cfg.Log.Convention = oliveprice.CommaDecimal.String()
	}
	if cfg.Snapshot.Path == "" {
		cfg.Snapshot.Path = "precio-aceite.json"
	}
	if cfg.Snapshot.Convention == "" {
		cfg.Snapshot.Convention = oliveprice.CommaDecimal.String()
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "precio-aceite-historico.json"
	}
	if cfg.Source.URL == "" {
		cfg.Source.URL = DefaultSourceURL
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 30 19 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all fields can be used.
func (c *Config) Validate() error {
	if _, err := c.LogLayout(); err != nil {
		return fmt.Errorf("log.layout: %w", err)
	}
	if _, err := c.LogConvention(); err != nil {
		return fmt.Errorf("log.convention: %w", err)
	}
	if _, err := c.SnapshotConvention(); err != nil {
		return fmt.Errorf("snapshot.convention: %w", err)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.Output.Path == c.Log.Path || c.Output.Path == c.Snapshot.Path {
		return fmt.Errorf("output.path %q would overwrite an input", c.Output.Path)
	}
	return nil
}

// LogLayout returns the configured text log layout.
func (c *Config) LogLayout() (oliveprice.Layout, error) { return oliveprice.ParseLayout(c.Log.Layout) }

// LogConvention returns the decimal convention of the text log.
func (c *Config) LogConvention() (oliveprice.Convention, error) {
	return oliveprice.ParseConvention(c.Log.Convention)
}

// SnapshotConvention returns the decimal convention of string prices in snapshots.
func (c *Config) SnapshotConvention() (oliveprice.Convention, error) {
	return oliveprice.ParseConvention(c.Snapshot.Convention)
}
