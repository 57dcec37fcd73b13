// internal/metrics/prom.go
// Package metrics centralises Prometheus metric registration for the
// covmerge binary.  It exposes typed collectors and helper update functions
// so that core merge code can remain import-cycle-free; only cmd/covmerge's
// serve subcommand touches prometheus.DefaultRegisterer directly, via the
// /metrics HTTP handler from the Prometheus client library.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// Counter metrics -------------------------------------------------------
	MergesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "covmerge",
		Subsystem: "merge",
		Name:      "operations_total",
		Help:      "Total number of merge operations performed, by level (process, script, function).",
	}, []string{"level"})

	FunctionsMergedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "covmerge",
		Subsystem: "merge",
		Name:      "functions_merged_total",
		Help:      "Total number of FunctionCov values folded into a merged result.",
	})

	SplitOpsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "covmerge",
		Subsystem: "merge",
		Name:      "split_operations_total",
		Help:      "Total number of range-tree node splits performed while sweeping.",
	})

	// Histogram metrics -------------------------------------------------------
	MergeDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "covmerge",
		Subsystem: "merge",
		Name:      "duration_seconds",
		Help:      "Wall-clock duration of a merge operation, by level.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"level"})

	// Gauge metrics -------------------------------------------------------
	InputReportsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "covmerge",
		Subsystem: "io",
		Name:      "input_reports_loaded",
		Help:      "Number of ProcessCov reports read in the current merge run.",
	})
)

// Register exports all metrics; safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			MergesTotal,
			FunctionsMergedTotal,
			SplitOpsTotal,
			MergeDurationSeconds,
			InputReportsLoaded,
		)
	})
}

// ObserveMerge records one merge operation at the given level ("process",
// "script", or "function") and its duration in seconds.
func ObserveMerge(level string, seconds float64) {
	MergesTotal.WithLabelValues(level).Inc()
	MergeDurationSeconds.WithLabelValues(level).Observe(seconds)
}
