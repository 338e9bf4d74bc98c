package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/oliveprice"
	"github.com/google/subcommands"
)

type reconcileCmd struct {
	log        string
	layout     string
	convention string
	snapshot   string
	noSnapshot bool
	output     string
	end        string
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "rebuild the gap free price history from every source" }
func (*reconcileCmd) Usage() string {
	return `oliva reconcile [-log <file>] [-layout <layout>] [-convention <conv>] [-snapshot <file> | -no-snapshot] [-o <file>] [-end <date>]

  Reads the text log, the previous history and today's snapshot, and writes
  one continuous daily series per grade, missing days carrying the last
  known price.

  Flags default to the configuration file. A missing log or snapshot aborts
  the run and leaves the previous history untouched.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.log, "log", "", "Text log of daily prices. Defaults to log.path.")
	f.StringVar(&c.layout, "layout", "", "Layout of the text log: block, free or inline. Defaults to log.layout.")
	f.StringVar(&c.convention, "convention", "", "Decimal convention of the text log: comma, dot or lenient. Defaults to log.convention.")
	f.StringVar(&c.snapshot, "snapshot", "", "Today's JSON snapshot. Defaults to snapshot.path.")
	f.BoolVar(&c.noSnapshot, "no-snapshot", false, "Do not merge today's snapshot.")
	f.StringVar(&c.output, "o", "", "Canonical history file, read as the base then overwritten. Defaults to output.path.")
	f.StringVar(&c.end, "end", "", "Last day of the series. Defaults to the latest known day of each grade.")
}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := newRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.Recorder.Close()

	cfg := r.Config
	if c.log != "" {
		cfg.Log.Path = c.log
	}
	if c.layout != "" {
		cfg.Log.Layout = c.layout
	}
	if c.convention != "" {
		cfg.Log.Convention = c.convention
	}
	if c.snapshot != "" {
		cfg.Snapshot.Path = c.snapshot
	}
	if c.output != "" {
		cfg.Output.Path = c.output
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rc, err := r.Reconciler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.noSnapshot {
		rc.Snapshot = ""
	}
	if c.end != "" {
		if rc.End, err = oliveprice.ParseDate(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	res, err := r.Reconcile(rc, "cli")
	if errors.Is(err, oliveprice.ErrSourceUnavailable) {
		fmt.Fprintf(os.Stderr, "Error: %v\nThe history %q was not modified.\n", err, cfg.Output.Path)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return report(res, cfg.Output.Path)
}

// report prints the outcome of a run. Grades that could not be filled are
// reported on stderr but do not fail the run.
func report(res *oliveprice.Result, output string) subcommands.ExitStatus {
	if *Verbose {
		printMarkdown(oliveprice.Summary(res))
	}
	if err := res.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(os.Stderr, "%d lines skipped, run 'oliva check' for details.\n", n)
	}
	fmt.Printf("Wrote %s: %s\n", output, res.Book.Counts())
	return subcommands.ExitSuccess
}
