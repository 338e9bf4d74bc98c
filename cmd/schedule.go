package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/oliveprice/runner"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type scheduleCmd struct {
	now bool
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "run the daily update on a schedule" }
func (*scheduleCmd) Usage() string {
	return `oliva schedule [-now]

  Runs as a daemon: on schedule.cron it downloads today's prices, appends
  them to the text log and reconciles the history. Runs are recorded in
  database.sqlite_path when set, and Prometheus metrics are served on
  schedule.metrics_addr when set.

  Stops on SIGINT or SIGTERM.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.now, "now", false, "Run the update once at start.")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := newRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.Recorder.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := runner.NewScheduler(ctx, r)
	if err := sched.Register(r.Config.Schedule.Cron); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if addr := r.Config.Schedule.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Printf("serve-metrics addr=%q", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("serve-metrics-failed addr=%q err=%q", addr, err)
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	if c.now {
		sched.RunNow()
	}

	sched.Start()
	defer sched.Stop()

	log.Printf("schedule cron=%q", r.Config.Schedule.Cron)
	<-ctx.Done()
	log.Println("shutdown")
	return subcommands.ExitSuccess
}
