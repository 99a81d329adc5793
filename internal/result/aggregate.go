package result

import (
	"time"

	"github.com/zhangpjbo/HttpPal-sub003/internal/request"
)

// ResponseTimeStats summarizes success response times. All values are milliseconds
// and are computed over Success outcomes only; an empty success set yields all zeros.
type ResponseTimeStats struct {
	MinMs     float64 `json:"min_ms"`
	MaxMs     float64 `json:"max_ms"`
	AverageMs float64 `json:"average_ms"`
	MedianMs  float64 `json:"median_ms"`
	P95Ms     float64 `json:"p95_ms"`
	P99Ms     float64 `json:"p99_ms"`
}

// ThroughputStats summarizes data volume over the wall-clock window of a run.
type ThroughputStats struct {
	RequestsPerSec   float64 `json:"requests_per_sec"`
	BytesPerSec      float64 `json:"bytes_per_sec"`
	TotalBytes       int64   `json:"total_bytes"`
	AvgResponseBytes float64 `json:"avg_response_bytes"`
}

// Aggregate is the immutable statistical summary of one run, produced exactly once
// when the run completes or is cancelled. SuccessfulRequests + FailedRequests always
// equals TotalRequests; TotalRequests equals Threads*Iterations unless cancelled early.
type Aggregate struct {
	RunID              string             `json:"run_id"`
	TotalRequests      int64              `json:"total"`
	SuccessfulRequests int64              `json:"successes"`
	FailedRequests     int64              `json:"failures"`
	StartTime          time.Time          `json:"start_time"`
	EndTime            time.Time          `json:"end_time"`
	Threads            int                `json:"threads"`
	Iterations         int                `json:"iterations"`
	Cancelled          bool               `json:"cancelled,omitempty"`
	ResponseTimes      ResponseTimeStats  `json:"response_times"`
	Throughput         ThroughputStats    `json:"throughput"`
	StatusCodes        map[int]int64      `json:"status_codes,omitempty"`
	Errors             map[string]int64   `json:"errors,omitempty"`
	CaptureSamples     map[string]string  `json:"capture_samples,omitempty"`
	Descriptor         request.Descriptor `json:"-"`
	Successes          []Success          `json:"-"`
	Failures           []Failure          `json:"-"`
}

// Elapsed returns the wall-clock duration of the run.
func (a Aggregate) Elapsed() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// SuccessRate returns the fraction of calls that completed, in [0, 1].
func (a Aggregate) SuccessRate() float64 {
	if a.TotalRequests == 0 {
		return 0
	}
	return float64(a.SuccessfulRequests) / float64(a.TotalRequests)
}
