package payload

// IntervalRequest is the body of an interval processing call.
type IntervalRequest struct {
	Includes []string `json:"includes"`
	Excludes []string `json:"excludes"`
}

// NewIntervalRequest returns an empty request.
func NewIntervalRequest() *IntervalRequest {
	return &IntervalRequest{Includes: []string{}, Excludes: []string{}}
}

// Include appends range expressions to the includes.
func (r *IntervalRequest) Include(exprs ...string) *IntervalRequest {
	r.Includes = append(r.Includes, exprs...)
	return r
}

// Exclude appends range expressions to the excludes.
func (r *IntervalRequest) Exclude(exprs ...string) *IntervalRequest {
	r.Excludes = append(r.Excludes, exprs...)
	return r
}
