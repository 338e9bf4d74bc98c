package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/oliveprice"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	if cfg.Log.Path != "precios2015.txt" {
		t.Errorf("Log.Path = %q, want precios2015.txt", cfg.Log.Path)
	}
	if c, _ := cfg.LogConvention(); c != oliveprice.CommaDecimal {
		t.Errorf("LogConvention() = %v, want comma", c)
	}
	if l, _ := cfg.LogLayout(); l != oliveprice.LayoutBlock {
		t.Errorf("LogLayout() = %v, want block", l)
	}
	if cfg.Source.URL != DefaultSourceURL {
		t.Errorf("Source.URL = %q, want %q", cfg.Source.URL, DefaultSourceURL)
	}
}

// TestLoad_DefaultConventionRejectsDots checks that a dotted price is not
// read as a decimal unless a convention asks for it.
func TestLoad_DefaultConventionRejectsDots(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	conv, err := cfg.LogConvention()
	if err != nil {
		t.Fatalf("LogConvention() unexpected error: %v", err)
	}
	if _, err := oliveprice.NormalizePrice("Aceite de oliva virgen extra 2.345", conv); !errors.Is(err, oliveprice.ErrInvalidPrice) {
		t.Errorf("NormalizePrice(2.345, %v) error = %v, want %v", conv, err, oliveprice.ErrInvalidPrice)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oliva.yaml")
	data := `
log:
  path: data/precios.txt
  layout: free
  convention: comma
snapshot:
  convention: dot
output:
  path: public/historico.json
schedule:
  cron: "0 0 20 * * *"
  metrics_addr: ":9100"
database:
  sqlite_path: data/oliva.db
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OLIVA_OUTPUT", "out.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	tests := []struct {
		name, got, want string
	}{
		{"log.path", cfg.Log.Path, "data/precios.txt"},
		{"log.layout", cfg.Log.Layout, "free"},
		{"snapshot.path", cfg.Snapshot.Path, "precio-aceite.json"},
		{"snapshot.convention", cfg.Snapshot.Convention, "dot"},
		{"output.path", cfg.Output.Path, "out.json"}, // env wins
		{"schedule.cron", cfg.Schedule.Cron, "0 0 20 * * *"},
		{"schedule.metrics_addr", cfg.Schedule.MetricsAddr, ":9100"},
		{"database.sqlite_path", cfg.Database.SQLitePath, "data/oliva.db"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Config)
	}{
		{"layout", func(c *Config) { c.Log.Layout = "csv" }},
		{"log convention", func(c *Config) { c.Log.Convention = "auto" }},
		{"snapshot convention", func(c *Config) { c.Snapshot.Convention = "guess" }},
		{"output overwrites log", func(c *Config) { c.Output.Path = c.Log.Path }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.setup(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() expected an error")
			}
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oliva.yaml")
	if err := os.WriteFile(path, []byte("log: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load() expected a parse error")
	}
}
