package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type todayCmd struct {
	snapshot string
}

func (*todayCmd) Name() string     { return "today" }
func (*todayCmd) Synopsis() string { return "merge today's snapshot into the price history" }
func (*todayCmd) Usage() string {
	return `oliva today [-snapshot <file>]

  Merges today's JSON snapshot into the canonical history without reading
  the text log. Days between the history's last day and the snapshot carry
  the last known price. Merging the same snapshot twice changes nothing.
`
}

func (c *todayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshot, "snapshot", "", "Today's JSON snapshot. Defaults to snapshot.path.")
}

func (c *todayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := newRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.Recorder.Close()

	if c.snapshot != "" {
		r.Config.Snapshot.Path = c.snapshot
	}
	rc, err := r.Reconciler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rc.Log = ""

	res, err := r.Reconcile(rc, "cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nThe history %q was not modified.\n", err, r.Config.Output.Path)
		return subcommands.ExitFailure
	}
	return report(res, r.Config.Output.Path)
}
