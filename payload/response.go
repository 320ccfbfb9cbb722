package payload

// IntervalResponse is the data returned by a successful processing call.
type IntervalResponse struct {
	Result []string `json:"result"`

	// ExecutionTime is expressed in milliseconds.
	ExecutionTime float64 `json:"executionTime"`
}

// ErrorResponse is returned for rejected input.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

// Detail returns the most specific description carried by the response.
func (e ErrorResponse) Detail() string {
	if e.Details != "" {
		return e.Details
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// HealthResponse is the data returned by the health check.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}
