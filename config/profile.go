package config

// A Profile contains all information for connecting to an interval service.
type Profile struct {
	Host string `json:"host,omitempty"`

	// MaxRetries bounds how many times a failed call is retried. Zero uses the client default.
	MaxRetries uint64 `json:"max_retries,omitempty"`
}
