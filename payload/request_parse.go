package payload

import (
	"errors"

	"github.com/menmos/intervals-go/interval"
)

const (
	includesField = "includes"
	excludesField = "excludes"
)

// ErrNotAnObject is returned when a request body is not a JSON object.
var ErrNotAnObject = errors.New("Expected object with includes and excludes arrays")

func loadExpressionList(field string, data interface{}) ([]string, error) {
	if data == nil {
		return []string{}, nil
	}

	values, ok := data.([]interface{})
	if !ok {
		return nil, &interval.ValidationError{Field: field, Errors: []string{"Intervals must be an array"}}
	}

	if err := interval.ValidateValues(values).Err(field); err != nil {
		return nil, err
	}

	exprs := make([]string, len(values))
	for i, v := range values {
		exprs[i] = v.(string)
	}
	return exprs, nil
}

// ParseIntervalRequest loads a request from a decoded JSON value.
// Missing or null fields are treated as empty lists. Elements that are not
// strings, or that are not shaped like range expressions, are reported in a
// single *interval.ValidationError per field; includes are checked first.
func ParseIntervalRequest(rawData interface{}) (*IntervalRequest, error) {
	data, ok := rawData.(map[string]interface{})
	if !ok {
		return nil, ErrNotAnObject
	}

	includes, err := loadExpressionList(includesField, data[includesField])
	if err != nil {
		return nil, err
	}

	excludes, err := loadExpressionList(excludesField, data[excludesField])
	if err != nil {
		return nil, err
	}

	return &IntervalRequest{Includes: includes, Excludes: excludes}, nil
}
