// Package output renders run results for interactive callers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
	"github.com/zhangpjbo/HttpPal-sub003/internal/stats"
)

// PrintReport outputs a human-readable summary of a run.
func PrintReport(w io.Writer, agg result.Aggregate) {
	fmt.Fprintln(w, "\n--- Run Results ---")
	fmt.Fprintf(w, "Run ID:            %s\n", agg.RunID)
	fmt.Fprintf(w, "Total Requests:    %d\n", agg.TotalRequests)
	fmt.Fprintf(w, "Successful:        %d\n", agg.SuccessfulRequests)
	fmt.Fprintf(w, "Failed:            %d\n", agg.FailedRequests)
	if agg.Cancelled {
		fmt.Fprintf(w, "Cancelled:         yes (%d of %d calls resolved)\n",
			agg.TotalRequests, int64(agg.Threads)*int64(agg.Iterations))
	}
	fmt.Fprintf(w, "Workers:           %d x %d iterations\n", agg.Threads, agg.Iterations)
	fmt.Fprintf(w, "Duration:          %s\n", agg.Elapsed())
	fmt.Fprintf(w, "Requests/sec:      %.2f\n", agg.Throughput.RequestsPerSec)
	fmt.Fprintf(w, "Bytes/sec:         %.2f\n", agg.Throughput.BytesPerSec)

	fmt.Fprintln(w, "\nResponse Times (successes):")
	fmt.Fprintf(w, "  Min:             %.2fms\n", agg.ResponseTimes.MinMs)
	fmt.Fprintf(w, "  Max:             %.2fms\n", agg.ResponseTimes.MaxMs)
	fmt.Fprintf(w, "  Average:         %.2fms\n", agg.ResponseTimes.AverageMs)
	fmt.Fprintf(w, "  Median:          %.2fms\n", agg.ResponseTimes.MedianMs)
	fmt.Fprintf(w, "  P95:             %.2fms\n", agg.ResponseTimes.P95Ms)
	fmt.Fprintf(w, "  P99:             %.2fms\n", agg.ResponseTimes.P99Ms)

	if rows := stats.SortedStatusRows(agg.StatusCodes); len(rows) > 0 {
		fmt.Fprintln(w, "\nStatus Codes:")
		for _, row := range rows {
			fmt.Fprintf(w, "  %d: %d\n", row.Code, row.Count)
		}
	}

	if rows := stats.SortedErrorRows(agg.Errors); len(rows) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, row := range rows {
			fmt.Fprintf(w, "  %s: %d\n", row.Message, row.Count)
		}
	}

	if len(agg.Failures) > 0 {
		fmt.Fprintln(w, "\nFailure Types:")
		for _, row := range stats.SortedErrorRows(failureTypes(agg.Failures)) {
			fmt.Fprintf(w, "  %s: %d\n", row.Message, row.Count)
		}
	}

	if len(agg.CaptureSamples) > 0 {
		fmt.Fprintln(w, "\nCaptured Values (first seen):")
		names := make([]string, 0, len(agg.CaptureSamples))
		for name := range agg.CaptureSamples {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %s\n", name, agg.CaptureSamples[name])
		}
	}
}

// failureTypes groups failures by kind and a readable label for the
// originating Go error type.
func failureTypes(failures []result.Failure) map[string]int64 {
	types := make(map[string]int64, len(failures))
	for _, f := range failures {
		key := result.KindLabel(f.Err.Kind) + ": " + result.FriendlyErrorName(f.Err.Cause)
		types[key]++
	}
	return types
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, agg result.Aggregate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(agg)
}
