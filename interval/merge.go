package interval

import "sort"

// Merge collapses intervals into the minimal sorted set of disjoint,
// non-adjacent intervals. The input is not modified.
func Merge(intervals []Interval) []Interval {
	if len(intervals) <= 1 {
		return append([]Interval(nil), intervals...)
	}

	sorted := append([]Interval(nil), intervals...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]

	for _, next := range sorted[1:] {
		if touches(current, next) {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}
