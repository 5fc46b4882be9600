// Package stats keeps per-resource NEIS fetch statistics in Redis.
// Every process that shares the Redis instance contributes to the same
// counters, so the proxy can report totals across replicas.
package stats

import (
	"time"
)

// Redis key layout. Each resource has one hash under KeyPrefix+resource;
// KeyIndex is the set of resources that have been recorded.
const (
	KeyPrefix = "neis:stats:"
	KeyIndex  = "neis:stats:resources"
)

// Hash fields.
const (
	fieldFetches      = "fetches"
	fieldErrors       = "errors"
	fieldRows         = "rows"
	fieldLastRows     = "last_rows"
	fieldLastStatus   = "last_status"
	fieldLastDuration = "last_duration_ms"
	fieldUpdatedAt    = "updated_at"
)

// StatusOK is the LastStatus of a successful fetch. Failed fetches record
// their error class instead.
const StatusOK = "ok"

// Snapshot is the recorded state of one resource.
type Snapshot struct {
	Resource string `json:"resource"`

	// Fetches and Errors count complete calls, not pages.
	Fetches int64 `json:"fetches"`
	Errors  int64 `json:"errors"`

	// Rows is the sum of rows returned by successful fetches.
	Rows int64 `json:"rows"`

	LastRows     int           `json:"last_rows"`
	LastStatus   string        `json:"last_status"`
	LastDuration time.Duration `json:"last_duration"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// IsStale returns true if nothing was recorded within maxAge.
func (s *Snapshot) IsStale(maxAge time.Duration) bool {
	return time.Since(s.UpdatedAt) > maxAge
}

// ErrorRate returns Errors/Fetches, or 0 before the first fetch.
func (s *Snapshot) ErrorRate() float64 {
	if s.Fetches == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Fetches)
}

// Outcome describes one finished fetch.
type Outcome struct {
	Resource string
	Rows     int
	Duration time.Duration

	// Class is the error class of a failed fetch, empty on success.
	Class string
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Class != ""
}
