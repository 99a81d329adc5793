// Package sink accumulates call outcomes from concurrent workers. A single
// mutex guards the append path; the completed counter is atomic so progress
// polling never contends with workers. The final outcome list is read only
// after all workers have stopped.
package sink

import (
	"sync"
	"sync/atomic"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
)

// Sink is a thread-safe append-only accumulator for call outcomes.
type Sink struct {
	mu        sync.Mutex
	outcomes  []result.Outcome
	hist      *hdrhistogram.Histogram
	successes int64
	failures  int64
	completed atomic.Int64
}

// LiveStats is a cheap point-in-time view for progress display. The final
// aggregate is always recomputed exactly from the outcome list; the histogram
// here only serves interactive snapshots.
type LiveStats struct {
	Completed int64
	Successes int64
	Failures  int64
	P50Ms     float64
	P90Ms     float64
	P99Ms     float64
}

// New creates a Sink sized for the expected number of outcomes.
func New(expected int64) *Sink {
	capacity := int(expected)
	if capacity < 0 {
		capacity = 0
	}
	// Track latencies from 1µs up to 60s with 3 significant figures.
	return &Sink{
		outcomes: make([]result.Outcome, 0, capacity),
		hist:     hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Append records one outcome. Safe for concurrent use; no outcome is ever
// lost, duplicated, or mutated after append.
func (s *Sink) Append(o result.Outcome) {
	s.mu.Lock()
	s.outcomes = append(s.outcomes, o)
	if success, ok := o.(result.Success); ok {
		s.successes++
		us := success.ResponseTime.Microseconds()
		if us < s.hist.LowestTrackableValue() {
			us = s.hist.LowestTrackableValue()
		}
		if us > s.hist.HighestTrackableValue() {
			us = s.hist.HighestTrackableValue()
		}
		_ = s.hist.RecordValue(us)
	} else {
		s.failures++
	}
	s.mu.Unlock()
	s.completed.Add(1)
}

// Completed returns the number of outcomes recorded so far.
func (s *Sink) Completed() int64 {
	return s.completed.Load()
}

// Live returns a snapshot of counters and latency percentiles for display.
func (s *Sink) Live() LiveStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	live := LiveStats{
		Completed: s.successes + s.failures,
		Successes: s.successes,
		Failures:  s.failures,
	}
	if s.hist.TotalCount() > 0 {
		live.P50Ms = float64(s.hist.ValueAtQuantile(50)) / 1000.0
		live.P90Ms = float64(s.hist.ValueAtQuantile(90)) / 1000.0
		live.P99Ms = float64(s.hist.ValueAtQuantile(99)) / 1000.0
	}
	return live
}

// Outcomes returns a copy of everything recorded. Call only after all workers
// have finished or been cancelled.
func (s *Sink) Outcomes() []result.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]result.Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}
