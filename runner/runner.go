// Package runner runs the reconciliation pipeline configured by a config
// file: it fetches today's prices, appends them to the text log, reconciles
// every source and writes the canonical output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/etnz/oliveprice"
	"github.com/etnz/oliveprice/aove"
	"github.com/etnz/oliveprice/config"
	"github.com/etnz/oliveprice/metrics"
	"github.com/etnz/oliveprice/recorder"
)

// Runner holds what a run needs.
type Runner struct {
	Config   *config.Config
	Fetcher  *aove.Fetcher     // nil disables Update's fetch step
	Recorder recorder.Recorder // never nil, use recorder.NewNoopRecorder()
}

// New returns a Runner for a validated config.
func New(cfg *config.Config, rec recorder.Recorder) (*Runner, error) {
	conv, err := cfg.SnapshotConvention()
	if err != nil {
		return nil, err
	}
	f := &aove.Fetcher{URL: cfg.Source.URL, Convention: conv}
	if cfg.Source.Cache {
		f.Client = aove.Daily("")
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Runner{Config: cfg, Fetcher: f, Recorder: rec}, nil
}

// Reconciler returns the reconciler described by the configuration. The
// previous canonical output is the base.
func (r *Runner) Reconciler() (oliveprice.Reconciler, error) {
	cfg := r.Config
	layout, err := cfg.LogLayout()
	if err != nil {
		return oliveprice.Reconciler{}, err
	}
	logConv, err := cfg.LogConvention()
	if err != nil {
		return oliveprice.Reconciler{}, err
	}
	snapConv, err := cfg.SnapshotConvention()
	if err != nil {
		return oliveprice.Reconciler{}, err
	}
	return oliveprice.Reconciler{
		Log:                cfg.Log.Path,
		Layout:             layout,
		LogConvention:      logConv,
		Base:               cfg.Output.Path,
		Snapshot:           cfg.Snapshot.Path,
		SnapshotConvention: snapConv,
	}, nil
}

// Reconcile runs rc and writes the canonical output atomically. Nothing is
// written if the run fails. Every run is recorded, failed ones included.
func (r *Runner) Reconcile(rc oliveprice.Reconciler, trigger string) (*oliveprice.Result, error) {
	run := recorder.NewRun(trigger)
	res, err := r.reconcile(rc)
	r.record(run, res, err)
	return res, err
}

func (r *Runner) reconcile(rc oliveprice.Reconciler) (*oliveprice.Result, error) {
	res, err := rc.Run()
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		log.Printf("skip-line line=%d text=%q err=%q", w.Line, w.Text, w.Err)
	}

	var buf bytes.Buffer
	if err := res.Encode(&buf); err != nil {
		return res, err
	}
	if err := oliveprice.WriteFileAtomically(r.Config.Output.Path, &buf); err != nil {
		return res, fmt.Errorf("write %s: %w", r.Config.Output.Path, err)
	}
	log.Printf("write-output path=%q days=%q", r.Config.Output.Path, res.Book.Counts())
	return res, nil
}

// Fetch downloads today's prices and writes them to the snapshot file.
func (r *Runner) Fetch(ctx context.Context, day oliveprice.Date) (oliveprice.Snapshot, error) {
	if r.Fetcher == nil {
		return oliveprice.Snapshot{}, errors.New("no source configured")
	}
	s, warnings, err := r.Fetcher.Fetch(ctx, day)
	if err != nil {
		return s, err
	}
	for _, w := range warnings {
		log.Printf("skip-price url=%q text=%q err=%q", r.Fetcher.URL, w.Text, w.Err)
	}

	var buf bytes.Buffer
	if err := oliveprice.EncodeSnapshot(&buf, s); err != nil {
		return s, err
	}
	if err := oliveprice.WriteFileAtomically(r.Config.Snapshot.Path, &buf); err != nil {
		return s, fmt.Errorf("write %s: %w", r.Config.Snapshot.Path, err)
	}
	log.Printf("write-snapshot path=%q date=%s grades=%d", r.Config.Snapshot.Path, s.Date, len(s.Prices))
	return s, nil
}

// Append appends a snapshot to the text log, unless its date is already there.
func (r *Runner) Append(s oliveprice.Snapshot) (bool, error) {
	conv, err := r.Config.LogConvention()
	if err != nil {
		return false, err
	}
	if conv == oliveprice.Lenient {
		// Lenient reads back what dot decimals write.
		conv = oliveprice.DotDecimal
	}
	appended, err := oliveprice.AppendBlock(r.Config.Log.Path, s, conv)
	if err != nil {
		return false, fmt.Errorf("append to %s: %w", r.Config.Log.Path, err)
	}
	log.Printf("append-log path=%q date=%s appended=%t", r.Config.Log.Path, s.Date, appended)
	return appended, nil
}

// Update is the daily job: fetch today's prices, append them to the log
// and reconcile. A failed fetch still reconciles from the existing sources.
func (r *Runner) Update(ctx context.Context, trigger string) (*oliveprice.Result, error) {
	run := recorder.NewRun(trigger)

	var fetchErr error
	if s, err := r.Fetch(ctx, oliveprice.Today()); err != nil {
		fetchErr = fmt.Errorf("fetch: %w", err)
		log.Printf("fetch-failed err=%q", err)
	} else if _, err := r.Append(s); err != nil {
		fetchErr = err
		log.Printf("append-failed err=%q", err)
	}

	rc, err := r.Reconciler()
	if err != nil {
		r.record(run, nil, err)
		return nil, err
	}
	res, err := r.reconcile(rc)
	err = errors.Join(fetchErr, err)
	r.record(run, res, err)
	return res, err
}

// record saves the run and publishes its metrics.
func (r *Runner) record(run *recorder.Run, res *oliveprice.Result, err error) {
	run.Finished = time.Now()
	run.State = oliveprice.Reading.String()
	warnings := 0
	if res != nil {
		run.State = res.State.String()
		run.Observations = res.Observations
		warnings = len(res.Warnings)
		run.Warnings = warnings
		for g, h := range res.Book {
			run.Days[g.String()] = h.Len()
		}
		metrics.UpdateBookMetrics(res.Book)
		if err == nil {
			err = res.Err()
		}
	}
	if err != nil {
		run.Err = err.Error()
	}
	metrics.UpdateRunMetrics(run.Trigger, run.Started, warnings, err)
	if rerr := r.Recorder.RecordRun(run); rerr != nil {
		log.Printf("record-run id=%s err=%q", run.ID, rerr)
	}
}
