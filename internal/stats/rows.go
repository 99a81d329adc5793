package stats

import "sort"

// StatusRow is one status-code distribution entry prepared for display.
type StatusRow struct {
	Code  int
	Count int64
}

// ErrorRow is one error distribution entry prepared for display.
type ErrorRow struct {
	Message string
	Count   int64
}

// SortedStatusRows flattens a status-code distribution into rows sorted by
// descending count, then ascending code for stability.
func SortedStatusRows(codes map[int]int64) []StatusRow {
	if len(codes) == 0 {
		return nil
	}
	rows := make([]StatusRow, 0, len(codes))
	for code, count := range codes {
		rows = append(rows, StatusRow{Code: code, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}

// SortedErrorRows flattens an error distribution into rows sorted by
// descending count, then message for stability.
func SortedErrorRows(errs map[string]int64) []ErrorRow {
	if len(errs) == 0 {
		return nil
	}
	rows := make([]ErrorRow, 0, len(errs))
	for message, count := range errs {
		rows = append(rows, ErrorRow{Message: message, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Message < rows[j].Message
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}
