// Package metrics exposes prometheus metrics about reconciliation runs.
package metrics

import (
	"time"

	"github.com/etnz/oliveprice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oliva_runs_total",
			Help: "Total number of reconciliation runs per trigger",
		},
		[]string{"trigger"},
	)

	RunFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oliva_run_failures_total",
			Help: "Total number of failed reconciliation runs per trigger",
		},
		[]string{"trigger"},
	)

	RunLastTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "oliva_run_last_timestamp",
			Help: "Unix timestamp of the last completed run per trigger",
		},
		[]string{"trigger"},
	)

	RunLastDurationSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "oliva_run_last_duration_seconds",
			Help: "Duration of the last completed run per trigger",
		},
		[]string{"trigger"},
	)

	WarningsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "oliva_skipped_lines_total",
			Help: "Total number of source lines skipped with a warning",
		},
	)
)

var (
	LatestPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "oliva_latest_price_eur_per_kg",
			Help: "Latest reconciled price per grade in EUR/kg",
		},
		[]string{"grade"},
	)

	HistoryDays = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "oliva_history_days",
			Help: "Number of days in the reconciled history per grade",
		},
		[]string{"grade"},
	)
)

// UpdateRunMetrics records the completion of a run.
func UpdateRunMetrics(trigger string, startedAt time.Time, warnings int, err error) {
	RunsTotal.WithLabelValues(trigger).Inc()
	RunLastDurationSeconds.WithLabelValues(trigger).Set(time.Since(startedAt).Seconds())
	RunLastTimestamp.WithLabelValues(trigger).Set(float64(time.Now().Unix()))
	WarningsTotal.Add(float64(warnings))
	if err != nil {
		RunFailuresTotal.WithLabelValues(trigger).Inc()
	}
}

// UpdateBookMetrics publishes the latest price and the length of each grade history.
func UpdateBookMetrics(book oliveprice.Book) {
	for _, g := range oliveprice.Grades() {
		h := book[g]
		if h == nil || h.Len() == 0 {
			HistoryDays.WithLabelValues(g.String()).Set(0)
			LatestPrice.DeleteLabelValues(g.String())
			continue
		}
		HistoryDays.WithLabelValues(g.String()).Set(float64(h.Len()))
		_, p := h.Latest()
		LatestPrice.WithLabelValues(g.String()).Set(p.InexactFloat64())
	}
}
