package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/oliveprice"
	"github.com/etnz/oliveprice/aove"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	date   string
	url    string
	output string
	cache  bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download today's prices into a snapshot" }
func (*fetchCmd) Usage() string {
	return `oliva fetch [-d <date>] [-url <url>] [-o <file>] [-cache]

  Downloads the public page of origin prices (Poolred) and writes the
  prices it finds as a JSON snapshot, dated with -d.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the prices. Defaults to today.")
	f.StringVar(&c.url, "url", "", "Page to read the prices from. Defaults to source.url.")
	f.StringVar(&c.output, "o", "", "Snapshot file to write. Defaults to snapshot.path.")
	f.BoolVar(&c.cache, "cache", false, "Cache the page for the day.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := newRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.Recorder.Close()

	day := oliveprice.Today()
	if c.date != "" {
		if day, err = oliveprice.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.url != "" {
		r.Fetcher.URL = c.url
	}
	if c.output != "" {
		r.Config.Snapshot.Path = c.output
	}
	if c.cache {
		r.Fetcher.Client = aove.Daily("")
	}

	s, err := r.Fetch(ctx, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices from %s: %v\n", r.Fetcher.URL, err)
		return subcommands.ExitFailure
	}
	for _, o := range s.Observations() {
		fmt.Printf("%s %s\n", o.Grade.Label(), oliveprice.FormatPrice(o.Price))
	}
	fmt.Printf("Wrote %s\n", r.Config.Snapshot.Path)
	return subcommands.ExitSuccess
}
