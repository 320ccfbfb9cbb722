package interval

import "math"

// Subtract removes every integer covered by excludes from includes.
// Both inputs must be merged collections (see Merge); the result is sorted
// and disjoint. Pieces left on either side of an exclude are not re-joined.
func Subtract(includes, excludes []Interval) []Interval {
	if len(includes) == 0 {
		return []Interval{}
	}
	if len(excludes) == 0 {
		return append([]Interval(nil), includes...)
	}

	result := make([]Interval, 0, len(includes))
	cursor := 0

	for _, include := range includes {
		// Excludes ending before this include can't reach any later include either.
		for cursor < len(excludes) && excludes[cursor].End < include.Start {
			cursor++
		}

		remaining := include.Start
		consumed := false

		for j := cursor; j < len(excludes) && excludes[j].Start <= include.End; j++ {
			exclude := excludes[j]

			if exclude.Start > remaining {
				result = append(result, Interval{Start: remaining, End: min(exclude.Start-1, include.End)})
			}

			if exclude.End == math.MaxInt64 || exclude.End+1 > include.End {
				consumed = true
				break
			}
			remaining = max(remaining, exclude.End+1)
		}

		if !consumed {
			result = append(result, Interval{Start: remaining, End: include.End})
		}
	}

	return result
}

// Process merges includes and excludes independently and subtracts the
// merged excludes from the merged includes.
func Process(includes, excludes []Interval) []Interval {
	return Subtract(Merge(includes), Merge(excludes))
}
