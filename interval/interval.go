// Package interval implements parsing and set algebra over closed integer ranges.
package interval

import (
	"fmt"
	"math"
)

// Interval represents an end-inclusive integer range.
type Interval struct {
	// Start is the lowest integer of the range.
	Start int64

	// End is the highest integer of the range.
	End int64
}

// New returns the interval covering a and b, whichever order they come in.
func New(a, b int64) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{Start: a, End: b}
}

// String formats the interval as "{start}-{end}".
func (i Interval) String() string {
	return fmt.Sprintf("%d-%d", i.Start, i.End)
}

// Contains returns whether n lies within the interval.
func (i Interval) Contains(n int64) bool {
	return i.Start <= n && n <= i.End
}

// Len returns the number of integers covered by the interval.
// It saturates at math.MaxUint64 for the full int64 range.
func (i Interval) Len() uint64 {
	span := uint64(i.End) - uint64(i.Start)
	if span == math.MaxUint64 {
		return span
	}
	return span + 1
}

// touches reports whether next overlaps or is directly adjacent to cur.
// Callers guarantee cur.Start <= next.Start.
func touches(cur, next Interval) bool {
	// next.Start-1 only wraps at math.MinInt64, where the first clause already holds.
	return next.Start <= cur.End || next.Start-1 <= cur.End
}

// FormatAll formats every interval with String, preserving order.
func FormatAll(intervals []Interval) []string {
	out := make([]string, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.String()
	}
	return out
}
