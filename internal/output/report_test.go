package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/zhangpjbo/HttpPal-sub003/internal/output"
	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
)

func sampleAggregate() result.Aggregate {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return result.Aggregate{
		RunID:              "01K01TESTRUN",
		TotalRequests:      10,
		SuccessfulRequests: 8,
		FailedRequests:     2,
		StartTime:          start,
		EndTime:            start.Add(2 * time.Second),
		Threads:            2,
		Iterations:         5,
		ResponseTimes: result.ResponseTimeStats{
			MinMs: 1, MaxMs: 90, AverageMs: 42.5, MedianMs: 40, P95Ms: 85, P99Ms: 90,
		},
		Throughput: result.ThroughputStats{
			RequestsPerSec: 5, BytesPerSec: 1000, TotalBytes: 2000, AvgResponseBytes: 250,
		},
		StatusCodes:    map[int]int64{200: 7, 503: 1},
		Errors:         map[string]int64{"timeout: context deadline exceeded": 2},
		CaptureSamples: map[string]string{"token": "abc123"},
		Failures: []result.Failure{
			{Err: result.ExecutionError{Cause: "*url.Error", Kind: result.KindTimeout}},
			{Err: result.ExecutionError{Cause: "*url.Error", Kind: result.KindTimeout}},
		},
	}
}

func TestPrintReportContainsKeyFields(t *testing.T) {
	var buf bytes.Buffer
	output.PrintReport(&buf, sampleAggregate())
	text := buf.String()

	for _, want := range []string{
		"Run ID:            01K01TESTRUN",
		"Total Requests:    10",
		"Successful:        8",
		"Failed:            2",
		"Workers:           2 x 5 iterations",
		"Requests/sec:      5.00",
		"Median:          40.00ms",
		"P95:             85.00ms",
		"200: 7",
		"503: 1",
		"timeout: context deadline exceeded: 2",
		"Failure Types:",
		"Timeout: Request URL error: 2",
		"token: abc123",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Cancelled:") {
		t.Error("non-cancelled run must not print a cancellation line")
	}
}

func TestPrintReportMarksCancelledRuns(t *testing.T) {
	agg := sampleAggregate()
	agg.Cancelled = true
	var buf bytes.Buffer
	output.PrintReport(&buf, agg)
	if !strings.Contains(buf.String(), "Cancelled:         yes") {
		t.Fatalf("expected cancellation line:\n%s", buf.String())
	}
}

func TestPrintJSONReportSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := output.PrintJSONReport(&buf, sampleAggregate()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	for _, key := range []string{
		"run_id", "total", "successes", "failures",
		"response_times", "throughput", "status_codes", "errors",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON report missing key %q", key)
		}
	}

	rt, ok := decoded["response_times"].(map[string]any)
	if !ok {
		t.Fatal("response_times should be an object")
	}
	if rt["median_ms"] != 40.0 || rt["p95_ms"] != 85.0 {
		t.Errorf("unexpected response time fields: %v", rt)
	}
}
