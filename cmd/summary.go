package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/oliveprice"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	output string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the price history summary" }
func (*summaryCmd) Usage() string {
	return `oliva summary [-o <file>]

  Displays, for each grade, the number of days in the history, its first
  and last day and the latest price.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Canonical history file. Defaults to output.path.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		cfg.Output.Path = c.output
	}

	book, err := decodeHistory(cfg.Output.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(oliveprice.Summary(&oliveprice.Result{Book: book}))
	return subcommands.ExitSuccess
}

// decodeHistory reads a canonical history file.
func decodeHistory(path string) (oliveprice.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open history %q: %w", path, err)
	}
	defer file.Close()

	book, warnings, err := oliveprice.DecodeBook(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode history %q: %w", path, err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", path, w)
	}
	return book, nil
}
