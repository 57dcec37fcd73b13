// internal/store/store.go
// Package store holds process-wide atomic counters describing covmerge's
// own activity, how many merge runs it has performed and how many coverage
// functions it has folded, so that `covmerge watch` and `covmerge serve`
// can report liveness without reaching into the Prometheus registry.
package store

import "go.uber.org/atomic"

// Stats is the set of counters tracked for the lifetime of one covmerge
// process.
type Stats struct {
	Runs      atomic.Int64
	Functions atomic.Int64
	Errors    atomic.Int64
}

// Global is the process-wide counter set. covmerge has no need for more
// than one instance per process; tests that want isolation construct their
// own *Stats instead of touching Global.
var Global = &Stats{}

// RecordRun increments the run counter and adds n merged functions to the
// running total.
func (s *Stats) RecordRun(n int64) {
	s.Runs.Inc()
	s.Functions.Add(n)
}

// RecordError increments the error counter, used by `covmerge watch` when a
// directory poll or merge attempt fails and falls back to backoff.
func (s *Stats) RecordError() {
	s.Errors.Inc()
}

// Snapshot is a point-in-time, non-atomic copy of Stats for reporting (log
// lines, /healthz).
type Snapshot struct {
	Runs      int64
	Functions int64
	Errors    int64
}

// Snapshot reads the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Runs:      s.Runs.Load(),
		Functions: s.Functions.Load(),
		Errors:    s.Errors.Load(),
	}
}
