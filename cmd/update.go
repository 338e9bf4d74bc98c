package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/oliveprice"
	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch, append and reconcile once" }
func (*updateCmd) Usage() string {
	return `oliva update

  Runs the daily job once: downloads today's prices into the snapshot,
  appends them to the text log, then reconciles the history. A failed
  download still reconciles from the existing files.
`
}

func (*updateCmd) SetFlags(_ *flag.FlagSet) {}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := newRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.Recorder.Close()

	res, err := r.Update(ctx, "cli")
	if res == nil || res.State != oliveprice.Done {
		fmt.Fprintf(os.Stderr, "Error: %v\nThe history %q was not modified.\n", err, r.Config.Output.Path)
		return subcommands.ExitFailure
	}
	if err != nil {
		// The history was written, only the download failed.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return report(res, r.Config.Output.Path)
}
