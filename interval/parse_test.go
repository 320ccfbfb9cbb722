package interval_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menmos/intervals-go/interval"
)

func Test_ParseOne(t *testing.T) {
	type testCase struct {
		name     string
		src      string
		expected interval.Interval
	}

	cases := []testCase{
		{"positive", "10-20", interval.Interval{Start: 10, End: 20}},
		{"positive reversed", "20-10", interval.Interval{Start: 10, End: 20}},
		{"single point", "7-7", interval.Interval{Start: 7, End: 7}},
		{"zero", "0-0", interval.Interval{Start: 0, End: 0}},
		{"negative start", "-5-15", interval.Interval{Start: -5, End: 15}},
		{"negative end reversed", "5--15", interval.Interval{Start: -15, End: 5}},
		{"negative end", "10--5", interval.Interval{Start: -5, End: 10}},
		{"both negative", "-5--15", interval.Interval{Start: -15, End: -5}},
		{"both negative ordered", "-15--5", interval.Interval{Start: -15, End: -5}},
		{"surrounding whitespace", "  10-20\t", interval.Interval{Start: 10, End: 20}},
		{"whitespace around separator", "10 - 20", interval.Interval{Start: 10, End: 20}},
		{"whitespace negative start", "-5 - 15", interval.Interval{Start: -5, End: 15}},
		{"whitespace before double hyphen", "10 --5", interval.Interval{Start: -5, End: 10}},
		{"leading zeros", "007-010", interval.Interval{Start: 7, End: 10}},
		{"int64 limits", "-9223372036854775808-9223372036854775807", interval.Interval{Start: math.MinInt64, End: math.MaxInt64}},
	}

	for _, tCase := range cases {
		t.Run(tCase.name, func(t *testing.T) {
			actual, err := interval.ParseOne(tCase.src)
			require.NoError(t, err)
			assert.Equal(t, tCase.expected, actual)
		})
	}
}

func Test_ParseOne_AllSignShapes(t *testing.T) {
	for a := int64(-3); a <= 3; a++ {
		for b := int64(-3); b <= 3; b++ {
			// A negative b renders as "a--b", the double-hyphen shape.
			src := strconv.FormatInt(a, 10) + "-" + strconv.FormatInt(b, 10)

			actual, err := interval.ParseOne(src)
			require.NoError(t, err, src)
			assert.Equal(t, interval.Interval{Start: min(a, b), End: max(a, b)}, actual, src)
		}
	}
}

func Test_ParseOne_Errors(t *testing.T) {
	type testCase struct {
		name       string
		src        string
		wantFormat bool
	}

	cases := []testCase{
		{"empty", "", true},
		{"blank", "   ", true},
		{"no hyphen", "42", true},
		{"negative without separator", "-42", true},
		{"too many hyphens", "1-2-3", true},
		{"triple hyphen", "1---2", true},
		{"words", "invalid-format", false},
		{"decimal", "1.5-2", false},
		{"exponent", "1e3-2", false},
		{"missing end", "10-", false},
		{"missing start after sign", "--5", false},
		{"negative start double negative end", "-5---15", false},
		{"overflow", "1-9223372036854775808", false},
	}

	for _, tCase := range cases {
		t.Run(tCase.name, func(t *testing.T) {
			_, err := interval.ParseOne(tCase.src)
			require.Error(t, err)
			assert.True(t, interval.IsInputError(err))

			var formatErr *interval.FormatError
			var valueErr *interval.ValueError
			if tCase.wantFormat {
				assert.True(t, errors.As(err, &formatErr), "expected FormatError, got %T", err)
			} else {
				assert.True(t, errors.As(err, &valueErr), "expected ValueError, got %T", err)
			}
		})
	}
}

func Test_ParseOne_OverflowUnwraps(t *testing.T) {
	_, err := interval.ParseOne("0-99999999999999999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, strconv.ErrRange))
}

func Test_ParseMany(t *testing.T) {
	intervals, err := interval.ParseMany([]string{"200-300", "-5-15", "10--5"})
	require.NoError(t, err)
	assert.Equal(t, []interval.Interval{iv(200, 300), iv(-5, 15), iv(-5, 10)}, intervals)

	intervals, err = interval.ParseMany(nil)
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func Test_ParseMany_StopsAtFirstFailure(t *testing.T) {
	_, err := interval.ParseMany([]string{"1-2", "1-2-3", "a-b"})
	require.Error(t, err)

	var formatErr *interval.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "1-2-3", formatErr.Input)
}
