package interval

import (
	"fmt"
	"regexp"
)

var expressionPattern = regexp.MustCompile(`^\s*-?\d+\s*-\s*-?\d+\s*$`)

// ValidationResult holds the outcome of a structural check over a list of
// range expressions.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Err returns nil for a valid result and a *ValidationError naming field otherwise.
func (r ValidationResult) Err(field string) error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Field: field, Errors: r.Errors}
}

// IsValidFormat returns whether s has the gross shape of two signed integers
// separated by a hyphen. It does not decide which hyphens are signs.
func IsValidFormat(s string) bool {
	return expressionPattern.MatchString(s)
}

// Validate checks every expression and collects one message per invalid element.
func Validate(exprs []string) ValidationResult {
	values := make([]interface{}, len(exprs))
	for i, e := range exprs {
		values[i] = e
	}
	return ValidateValues(values)
}

// ValidateValues is Validate for untyped elements, as produced by decoding JSON
// into interface{}. Elements that are not strings are rejected.
func ValidateValues(values []interface{}) ValidationResult {
	var errs []string
	for _, v := range values {
		s, ok := v.(string)
		if !ok || s == "" {
			errs = append(errs, fmt.Sprintf("Invalid interval: %s", describe(v)))
			continue
		}

		if !IsValidFormat(s) {
			errs = append(errs, fmt.Sprintf("Invalid input interval format: %s. Expected format: 'start-end'", s))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func describe(v interface{}) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
