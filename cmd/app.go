// Package cmd implements the oliva CLI to maintain the olive oil price history.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/oliveprice/config"
	"github.com/etnz/oliveprice/recorder"
	"github.com/etnz/oliveprice/runner"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reconcileCmd{}, "history")
	c.Register(&todayCmd{}, "history")
	c.Register(&summaryCmd{}, "history")
	c.Register(&checkCmd{}, "history")

	c.Register(&fetchCmd{}, "source")
	c.Register(&appendCmd{}, "source")
	c.Register(&updateCmd{}, "source")

	c.Register(&scheduleCmd{}, "daemon")
	c.Register(&runsCmd{}, "daemon")

	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", defaultConfigFile(), "Path to the configuration file (YAML). Defaults to $"+EnvConfigFile+" or oliva.yaml.")

func defaultConfigFile() string {
	if v := os.Getenv(EnvConfigFile); v != "" {
		return v
	}
	return "oliva.yaml"
}

// Verbose prints the run summaries.
var Verbose = flag.Bool("v", false, "Verbose output")

// loadConfig loads and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", *configFile, err)
	}
	return cfg, nil
}

// openRecorder opens the run history, or a no-op one if none is configured.
func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	r, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run history disabled: %v\n", err)
		return recorder.NewNoopRecorder()
	}
	return r
}

// newRunner loads the configuration and opens the run history. The caller
// must close the returned runner's Recorder.
func newRunner() (*runner.Runner, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	rec := openRecorder(cfg)
	r, err := runner.New(cfg, rec)
	if err != nil {
		rec.Close()
		return nil, err
	}
	return r, nil
}

// renderMarkdown formats markdown for the terminal.
func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// printMarkdown prints markdown to the terminal, raw if it cannot be rendered.
func printMarkdown(md string) {
	out, err := renderMarkdown(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
