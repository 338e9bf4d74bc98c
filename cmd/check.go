package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/oliveprice"
	"github.com/google/subcommands"
)

type checkCmd struct {
	layout     string
	convention string
	strict     bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "report the lines of a text log that cannot be read" }
func (*checkCmd) Usage() string {
	return `oliva check [-layout <layout>] [-convention <conv>] [-strict] [<file>...]

  Extracts the prices of each text log (log.path by default) and reports
  every skipped line with its number and the reason: invalid date, invalid
  price, unclassified grade or unexpected line.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.layout, "layout", "", "Layout of the text log: block, free or inline. Defaults to log.layout.")
	f.StringVar(&c.convention, "convention", "", "Decimal convention: comma, dot or lenient. Defaults to log.convention.")
	f.BoolVar(&c.strict, "strict", false, "Fail if any line is skipped.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.layout != "" {
		cfg.Log.Layout = c.layout
	}
	if c.convention != "" {
		cfg.Log.Convention = c.convention
	}
	layout, err := cfg.LogLayout()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	conv, err := cfg.LogConvention()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	files := f.Args()
	if len(files) == 0 {
		files = []string{cfg.Log.Path}
	}

	x := oliveprice.Extractor{Layout: layout, Convention: conv}
	skipped := 0
	for _, name := range files {
		n, err := checkFile(x, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		skipped += n
	}

	if skipped > 0 && c.strict {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// checkFile prints the warnings of a text log and returns their count.
func checkFile(x oliveprice.Extractor, name string) (int, error) {
	file, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	obs, warnings, err := x.Extract(file)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", name, err)
	}
	for _, w := range warnings {
		fmt.Printf("%s:%d: %v\n", name, w.Line, w.Err)
	}
	book := oliveprice.NewBook().Merge(obs...)
	fmt.Printf("%s: %d observations, %d lines skipped, days %s\n", name, len(obs), len(warnings), book.Counts())
	return len(warnings), nil
}
