// SPDX-License-Identifier: MIT
// Package metrics exposes solver progress as Prometheus metrics.
//
// Recorder implements minimize.Observer on a private registry, so several
// recorders (one per test, one per CLI run) never collide. A batch run writes
// the registry once at the end with WriteTextfile, in the format read by the
// node-exporter textfile collector.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/almanac/chain"
	"github.com/katalvlaran/almanac/minimize"
)

const (
	metricsNamespace = "almanac"
	solverSubsystem  = "solver"
)

// Recorder counts traces, runs and ranges.
// Thread Safety: safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	tracesTotal *prometheus.CounterVec
	runsTotal   *prometheus.CounterVec
	rangesTotal *prometheus.CounterVec
	runLength   prometheus.Histogram
	bestMinimum prometheus.Gauge

	mu    sync.Mutex
	best  int64
	found bool
}

var _ minimize.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		tracesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "traces_total",
				Help:      "Chain traces performed, by stop category",
			},
			[]string{"category"},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "runs_total",
				Help:      "Runs visited, by status",
			},
			[]string{"status"},
		),
		rangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "ranges_total",
				Help:      "Seed ranges minimized, by outcome",
			},
			[]string{"outcome"},
		),
		runLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "run_length",
				Help:      "Number of inputs covered by one run",
				Buckets:   prometheus.ExponentialBuckets(1, 10, 10),
			},
		),
		bestMinimum: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "best_minimum",
				Help:      "Smallest terminal value seen by a completed range",
			},
		),
	}
	r.registry.MustRegister(r.tracesTotal, r.runsTotal, r.rangesTotal, r.runLength, r.bestMinimum)

	return r
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// OnTrace counts one trace.
func (r *Recorder) OnTrace(tr chain.Trace) {
	r.tracesTotal.WithLabelValues(tr.Category).Inc()
}

// OnRun counts one run and observes its length.
func (r *Recorder) OnRun(run minimize.Run, skipped bool) {
	status := "ok"
	if skipped {
		status = "skipped"
	}
	r.runsTotal.WithLabelValues(status).Inc()
	r.runLength.Observe(float64(run.Len()))
}

// OnRange counts one range and lowers best_minimum when beaten.
func (r *Recorder) OnRange(_ minimize.SeedRange, out minimize.Outcome) {
	if !out.Found {
		r.rangesTotal.WithLabelValues("empty").Inc()
		return
	}
	r.rangesTotal.WithLabelValues("found").Inc()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.found || out.Min < r.best {
		r.best, r.found = out.Min, true
		r.bestMinimum.Set(float64(out.Min))
	}
}

// Best returns the smallest value recorded by OnRange.
func (r *Recorder) Best() (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.best, r.found
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}
