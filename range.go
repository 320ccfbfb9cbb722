package intervals

import (
	"github.com/pkg/errors"

	"github.com/menmos/intervals-go/interval"
)

// Range represents an end-inclusive integer range.
type Range = interval.Interval

// ParseRanges decodes the result strings of a processing call.
func ParseRanges(result []string) ([]Range, error) {
	ranges, err := interval.ParseMany(result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse result")
	}
	return ranges, nil
}
