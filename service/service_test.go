package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menmos/intervals-go/interval"
	"github.com/menmos/intervals-go/payload"
)

func TestProcessScenarios(t *testing.T) {
	tests := []struct {
		name     string
		includes []string
		excludes []string
		expected []string
	}{
		{"basic subtraction", []string{"10-100"}, []string{"20-30"}, []string{"10-19", "31-100"}},
		{"no excludes with merging", []string{"50-5000", "10-100"}, []string{}, []string{"10-5000"}},
		{"complex overlap", []string{"200-300", "50-150"}, []string{"95-205"}, []string{"50-94", "206-300"}},
		{
			"multiple intervals",
			[]string{"200-300", "10-100", "400-500"},
			[]string{"410-420", "95-205", "100-150"},
			[]string{"10-94", "206-300", "400-409", "421-500"},
		},
		{"negative bounds", []string{"-20--10", "-5-5"}, []string{"0-0", "-12--11"}, []string{"-20--13", "-10--10", "-5--1", "1-5"}},
		{"reversed and adjacent", []string{"20-11", "1-10"}, nil, []string{"1-20"}},
		{"nothing left", []string{"1-10"}, []string{"0-20"}, []string{}},
		{"empty", nil, nil, []string{}},
	}

	svc := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Process(&payload.IntervalRequest{Includes: tt.includes, Excludes: tt.excludes})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.Result)
			assert.GreaterOrEqual(t, resp.ExecutionTime, 0.0)
		})
	}
}

func TestProcessNilRequest(t *testing.T) {
	resp, err := New(nil).Process(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, resp.Result)
}

func TestProcessRejectsInput(t *testing.T) {
	tests := []struct {
		name     string
		req      *payload.IntervalRequest
		target   interface{}
		expected string
	}{
		{
			"invalid includes",
			payload.NewIntervalRequest().Include("invalid-format"),
			new(*interval.ValidationError),
			"Invalid includes: Invalid input interval format: invalid-format. Expected format: 'start-end'",
		},
		{
			"invalid excludes",
			payload.NewIntervalRequest().Include("1-2").Exclude("", "3"),
			new(*interval.ValidationError),
			"Invalid excludes: Invalid interval: , Invalid input interval format: 3. Expected format: 'start-end'",
		},
		{
			"spaced double hyphen",
			payload.NewIntervalRequest().Include("10 - -5"),
			new(*interval.FormatError),
			"Invalid interval format: 10 - -5",
		},
		{
			"overflow",
			payload.NewIntervalRequest().Include("1-2").Exclude("1-99999999999999999999"),
			new(*interval.ValueError),
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := New(nil).Process(tt.req)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, interval.IsInputError(err))
			assert.True(t, errors.As(err, tt.target), "unexpected error type %T", err)
			if tt.expected != "" {
				assert.Equal(t, tt.expected, err.Error())
			}
		})
	}
}

func TestProcessValidatesBeforeParsing(t *testing.T) {
	// The includes would fail to parse, but the excludes are structurally invalid.
	_, err := New(nil).Process(payload.NewIntervalRequest().Include("10 - -5").Exclude("nope"))

	var validationErr *interval.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "excludes", validationErr.Field)
}

func TestProcessExecutionTime(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	svc := New(logger)
	ticks := []time.Time{time.Unix(100, 0), time.Unix(100, int64(1500*time.Microsecond))}
	svc.now = func() time.Time {
		next := ticks[0]
		ticks = ticks[1:]
		return next
	}

	resp, err := svc.Process(payload.NewIntervalRequest().Include("1-5"))
	require.NoError(t, err)
	assert.Equal(t, 1.5, resp.ExecutionTime)
	assert.Empty(t, hook.AllEntries())

	_, err = New(logger).Process(payload.NewIntervalRequest().Include("x"))
	require.Error(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "includes", hook.LastEntry().Data["field"])
}
