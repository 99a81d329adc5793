// Package stats turns a final outcome set into the aggregate result of a run.
// Aggregation is a pure function of its inputs: recomputing over the same
// outcome list always yields identical statistics.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/zhangpjbo/HttpPal-sub003/internal/request"
	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
)

// Input carries everything aggregation needs besides the outcomes themselves.
type Input struct {
	Outcomes   []result.Outcome
	StartTime  time.Time
	EndTime    time.Time
	Threads    int
	Iterations int
	Descriptor request.Descriptor
	Cancelled  bool
	RunID      string
}

// Aggregate computes the final statistics for a run. Success and failure lists
// preserve outcome order as recorded; status-code classification of 4xx/5xx
// responses happens only here, in the distribution view, and never reclassifies
// a completed exchange as a failure.
func Aggregate(in Input) result.Aggregate {
	agg := result.Aggregate{
		RunID:      in.RunID,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Threads:    in.Threads,
		Iterations: in.Iterations,
		Descriptor: in.Descriptor,
		Cancelled:  in.Cancelled,
	}
	if agg.RunID == "" {
		agg.RunID = ulid.Make().String()
	}

	for _, o := range in.Outcomes {
		switch v := o.(type) {
		case result.Success:
			agg.Successes = append(agg.Successes, v)
		case result.Failure:
			agg.Failures = append(agg.Failures, v)
		}
	}
	agg.SuccessfulRequests = int64(len(agg.Successes))
	agg.FailedRequests = int64(len(agg.Failures))
	agg.TotalRequests = agg.SuccessfulRequests + agg.FailedRequests

	agg.ResponseTimes = responseTimeStats(agg.Successes)
	agg.Throughput = throughputStats(agg.Successes, agg.TotalRequests, in.EndTime.Sub(in.StartTime))
	agg.StatusCodes = statusCodeDistribution(agg.Successes)
	agg.Errors = errorDistribution(agg.Failures)
	agg.CaptureSamples = captureSamples(agg.Successes)

	return agg
}

// responseTimeStats computes latency statistics over success outcomes only,
// using nearest-rank selection: for percentile p over n sorted samples the
// index is floor(p*n) clamped to [0, n-1]. An empty success set yields zeros.
func responseTimeStats(successes []result.Success) result.ResponseTimeStats {
	n := len(successes)
	if n == 0 {
		return result.ResponseTimeStats{}
	}

	latencies := make([]float64, n)
	var sum float64
	for i, s := range successes {
		ms := float64(s.ResponseTime) / float64(time.Millisecond)
		latencies[i] = ms
		sum += ms
	}
	sort.Float64s(latencies)

	return result.ResponseTimeStats{
		MinMs:     latencies[0],
		MaxMs:     latencies[n-1],
		AverageMs: sum / float64(n),
		MedianMs:  nearestRank(latencies, 0.50),
		P95Ms:     nearestRank(latencies, 0.95),
		P99Ms:     nearestRank(latencies, 0.99),
	}
}

func nearestRank(sorted []float64, p float64) float64 {
	idx := int(math.Floor(p * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// throughputStats derives rates from wall-clock elapsed time, not the sum of
// individual response times, since calls run in parallel.
func throughputStats(successes []result.Success, total int64, elapsed time.Duration) result.ThroughputStats {
	var stats result.ThroughputStats
	for _, s := range successes {
		stats.TotalBytes += s.BodySize
	}
	if len(successes) > 0 {
		stats.AvgResponseBytes = float64(stats.TotalBytes) / float64(len(successes))
	}
	if elapsed > 0 {
		stats.RequestsPerSec = float64(total) / elapsed.Seconds()
		stats.BytesPerSec = float64(stats.TotalBytes) / elapsed.Seconds()
	}
	return stats
}

func statusCodeDistribution(successes []result.Success) map[int]int64 {
	if len(successes) == 0 {
		return nil
	}
	codes := make(map[int]int64)
	for _, s := range successes {
		codes[s.StatusCode]++
	}
	return codes
}

func errorDistribution(failures []result.Failure) map[string]int64 {
	if len(failures) == 0 {
		return nil
	}
	errs := make(map[string]int64)
	for _, f := range failures {
		errs[f.Err.Error()]++
	}
	return errs
}

// captureSamples keeps the first non-empty value seen per capture name.
func captureSamples(successes []result.Success) map[string]string {
	var samples map[string]string
	for _, s := range successes {
		for name, value := range s.Captures {
			if value == "" {
				continue
			}
			if samples == nil {
				samples = make(map[string]string)
			}
			if _, seen := samples[name]; !seen {
				samples[name] = value
			}
		}
	}
	return samples
}
