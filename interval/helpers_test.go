package interval_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/menmos/intervals-go/interval"
)

func iv(start, end int64) interval.Interval {
	return interval.Interval{Start: start, End: end}
}

func randomIntervals(rng *rand.Rand, n int, span int64) []interval.Interval {
	out := make([]interval.Interval, n)
	for i := range out {
		out[i] = interval.New(rng.Int63n(2*span)-span, rng.Int63n(2*span)-span)
	}
	return out
}

// requireMerged fails unless intervals are sorted, disjoint and non-adjacent.
func requireMerged(t *testing.T, intervals []interval.Interval) {
	t.Helper()
	for i, cur := range intervals {
		require.LessOrEqual(t, cur.Start, cur.End, "interval %d is reversed: %v", i, cur)
		if i > 0 {
			prev := intervals[i-1]
			require.Greater(t, cur.Start, prev.End+1, "intervals %v and %v touch", prev, cur)
		}
	}
}

func covered(intervals []interval.Interval, n int64) bool {
	for _, i := range intervals {
		if i.Contains(n) {
			return true
		}
	}
	return false
}
