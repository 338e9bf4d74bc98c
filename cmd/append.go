package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/oliveprice"
	"github.com/google/subcommands"
)

type appendCmd struct {
	snapshot string
	log      string
}

func (*appendCmd) Name() string     { return "append" }
func (*appendCmd) Synopsis() string { return "append a snapshot to the text log" }
func (*appendCmd) Usage() string {
	return `oliva append [-snapshot <file>] [-log <file>]

  Appends the snapshot's prices to the text log as a block: a DD-MM-YYYY
  line followed by one line per grade. Nothing is written if the log
  already holds that date.
`
}

func (c *appendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshot, "snapshot", "", "JSON snapshot to append. Defaults to snapshot.path.")
	f.StringVar(&c.log, "log", "", "Text log to append to. Defaults to log.path.")
}

func (c *appendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := newRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.Recorder.Close()

	if c.snapshot != "" {
		r.Config.Snapshot.Path = c.snapshot
	}
	if c.log != "" {
		r.Config.Log.Path = c.log
	}

	data, err := os.ReadFile(r.Config.Snapshot.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	conv, _ := r.Config.SnapshotConvention()
	s, warnings, err := oliveprice.DecodeSnapshot(data, conv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding snapshot %q: %v\n", r.Config.Snapshot.Path, err)
		return subcommands.ExitFailure
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", r.Config.Snapshot.Path, w)
	}

	appended, err := r.Append(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !appended {
		fmt.Printf("%s already has %s, nothing appended.\n", r.Config.Log.Path, s.Date)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Appended %s to %s\n", s.Date, r.Config.Log.Path)
	return subcommands.ExitSuccess
}
