package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/oliveprice"
	"github.com/etnz/oliveprice/recorder"
	"github.com/google/subcommands"
)

type runsCmd struct {
	limit int
}

func (*runsCmd) Name() string     { return "runs" }
func (*runsCmd) Synopsis() string { return "list the recorded runs" }
func (*runsCmd) Usage() string {
	return `oliva runs [-n <count>]

  Lists the latest runs recorded in database.sqlite_path, most recent first.
`
}

func (c *runsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of runs to list.")
}

func (c *runsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if cfg.Database.SQLitePath == "" {
		fmt.Fprintln(os.Stderr, "Error: no run history, set database.sqlite_path in the configuration.")
		return subcommands.ExitFailure
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rec.Close()

	runs, err := rec.Runs(c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(runsMarkdown(runs))
	return subcommands.ExitSuccess
}

// runsMarkdown renders runs as a markdown table.
func runsMarkdown(runs []*recorder.Run) string {
	var sb strings.Builder
	sb.WriteString("| Started | Trigger | State | Observations | Skipped | Days | Error |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	for _, run := range runs {
		var days []string
		for _, g := range oliveprice.Grades() {
			if n, ok := run.Days[g.String()]; ok {
				days = append(days, fmt.Sprintf("%s=%d", g, n))
			}
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %d | %d | %s | %s |\n",
			run.Started.Format("2006-01-02 15:04:05"), run.Trigger, run.State,
			run.Observations, run.Warnings, strings.Join(days, " "), strings.ReplaceAll(run.Err, "\n", "; "))
	}
	return sb.String()
}
