package scheduler

import (
	"sort"

	"github.com/alexanderramin/pilot/internal/domain"
)

// Overlaps reports whether two half-open intervals share any minute.
func Overlaps(a, b domain.Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Subtract returns the ordered sub-intervals of free not covered by any busy
// interval. busy need not be sorted; overlapping busy intervals are merged by
// the sweep and zero-length pieces are dropped.
func Subtract(free domain.Interval, busy []domain.Interval) []domain.Interval {
	sorted := sortedCopy(busy)

	var out []domain.Interval
	cursor := free.Start
	for _, b := range sorted {
		if b.End <= cursor {
			continue
		}
		if b.Start >= free.End {
			break
		}
		if b.Start > cursor {
			out = append(out, domain.Interval{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < free.End {
		out = append(out, domain.Interval{Start: cursor, End: free.End})
	}
	return out
}

// Merge sorts intervals and coalesces overlapping or touching ones.
func Merge(intervals []domain.Interval) []domain.Interval {
	sorted := sortedCopy(intervals)
	var out []domain.Interval
	for _, iv := range sorted {
		if n := len(out); n > 0 && iv.Start <= out[n-1].End {
			if iv.End > out[n-1].End {
				out[n-1].End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// TotalMinutes sums the lengths of the given intervals.
func TotalMinutes(intervals []domain.Interval) int {
	total := 0
	for _, iv := range intervals {
		total += iv.Minutes()
	}
	return total
}

func sortedCopy(intervals []domain.Interval) []domain.Interval {
	out := make([]domain.Interval, len(intervals))
	copy(out, intervals)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}
