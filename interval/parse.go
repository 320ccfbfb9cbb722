package interval

import (
	"regexp"
	"strconv"
	"strings"
)

var integerPattern = regexp.MustCompile(`^-?\d+$`)

// ParseOne decodes a range expression into an Interval.
//
// A hyphen is either the separator or the sign of the bound that follows it.
// The recognized shapes are:
//
//	"N-M"    both bounds non-negative
//	"-N-M"   negative start
//	"N--M"   negative end
//	"-N--M"  both negative
//
// Reversed bounds are swapped, so "20-10" yields [10, 20]. A shape that matches
// none of the above returns a *FormatError and a bound that is not an int64
// returns a *ValueError.
func ParseOne(s string) (Interval, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Interval{}, &FormatError{Input: s, Reason: "Empty interval string"}
	}

	parts := strings.Split(trimmed, "-")

	var start, end string
	if strings.HasPrefix(trimmed, "-") {
		// parts[0] is the empty fragment before the sign.
		if len(parts) < 3 {
			return Interval{}, &FormatError{Input: s}
		}
		start = "-" + parts[1]
		end = strings.Join(parts[2:], "-")
	} else {
		switch {
		case len(parts) == 3 && parts[1] == "":
			start = parts[0]
			end = "-" + parts[2]
		case len(parts) == 2:
			start = parts[0]
			end = parts[1]
		default:
			return Interval{}, &FormatError{Input: s}
		}
	}

	a, err := parseBound(s, start)
	if err != nil {
		return Interval{}, err
	}
	b, err := parseBound(s, end)
	if err != nil {
		return Interval{}, err
	}

	return New(a, b), nil
}

func parseBound(input, fragment string) (int64, error) {
	fragment = strings.TrimSpace(fragment)
	if !integerPattern.MatchString(fragment) {
		return 0, &ValueError{Input: input, Fragment: fragment}
	}

	n, err := strconv.ParseInt(fragment, 10, 64)
	if err != nil {
		return 0, &ValueError{Input: input, Fragment: fragment, Err: err}
	}
	return n, nil
}

// ParseMany parses every expression in order and stops at the first failure.
func ParseMany(exprs []string) ([]Interval, error) {
	intervals := make([]Interval, 0, len(exprs))
	for _, e := range exprs {
		iv, err := ParseOne(e)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}
