package payload_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menmos/intervals-go/interval"
	"github.com/menmos/intervals-go/payload"
)

func decode(t *testing.T, body string) interface{} {
	t.Helper()
	var raw interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func Test_ParseIntervalRequest(t *testing.T) {

	type testCase struct {
		name     string
		src      string
		expected *payload.IntervalRequest
		wantErr  string
	}

	cases := []testCase{
		{
			"both lists",
			`{"includes": ["10-100"], "excludes": ["20-30"]}`,
			payload.NewIntervalRequest().Include("10-100").Exclude("20-30"),
			"",
		},
		{"missing excludes", `{"includes": ["1-2"]}`, payload.NewIntervalRequest().Include("1-2"), ""},
		{"null fields", `{"includes": null, "excludes": null}`, payload.NewIntervalRequest(), ""},
		{"empty object", `{}`, payload.NewIntervalRequest(), ""},
		{"not an object", `["1-2"]`, nil, payload.ErrNotAnObject.Error()},
		{"string body", `"1-2"`, nil, payload.ErrNotAnObject.Error()},
		{"includes not array", `{"includes": "1-2"}`, nil, "Invalid includes: Intervals must be an array"},
		{"includes empty string", `{"includes": ""}`, nil, "Invalid includes: Intervals must be an array"},
		{"excludes false", `{"includes": ["1-2"], "excludes": false}`, nil, "Invalid excludes: Intervals must be an array"},
		{"includes zero", `{"includes": 0}`, nil, "Invalid includes: Intervals must be an array"},
		{"non-string element", `{"includes": [5]}`, nil, "Invalid includes: Invalid interval: 5"},
		{"object element", `{"includes": [{"a": "1-2"}]}`, nil, "Invalid includes: Invalid interval: map[a:1-2]"},
		{"array element", `{"includes": [["a"]]}`, nil, "Invalid includes: Invalid interval: [a]"},
		{
			"invalid excludes",
			`{"includes": ["1-2"], "excludes": ["x-y", "3-4"]}`,
			nil,
			"Invalid excludes: Invalid input interval format: x-y. Expected format: 'start-end'",
		},
		{
			"includes reported before excludes",
			`{"includes": ["bad"], "excludes": ["worse"]}`,
			nil,
			"Invalid includes: Invalid input interval format: bad. Expected format: 'start-end'",
		},
	}

	for _, tCase := range cases {
		t.Run(tCase.name, func(t *testing.T) {
			actual, err := payload.ParseIntervalRequest(decode(t, tCase.src))
			if tCase.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tCase.wantErr, err.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tCase.expected, actual)
		})
	}
}

func Test_ParseIntervalRequest_ValidationErrorType(t *testing.T) {
	_, err := payload.ParseIntervalRequest(decode(t, `{"includes": ["invalid-format", ""]}`))

	var validationErr *interval.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "includes", validationErr.Field)
	assert.Len(t, validationErr.Errors, 2)
}

func TestIntervalRequestBuilder(t *testing.T) {
	req := payload.NewIntervalRequest().Include("1-2", "3-4").Exclude("2-3")
	assert.Equal(t, []string{"1-2", "3-4"}, req.Includes)
	assert.Equal(t, []string{"2-3"}, req.Excludes)

	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"includes":["1-2","3-4"],"excludes":["2-3"]}`, string(body))
}
