package models

import "time"

// Aggregate holds the statistics of the numeric calc field across rows
type Aggregate struct {
	Count   int     `json:"count"` // rows with a numeric value
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

// Report is the current table contents plus their statistics
type Report struct {
	Rows        []Row     `json:"rows"`
	Aggregate   Aggregate `json:"aggregate"`
	GeneratedAt time.Time `json:"generated_at"`
}

// CreateResult is returned by a successful create
type CreateResult struct {
	ID    int64   `json:"id"`
	Ratio float64 `json:"ratio"`
}

// UpdateResult is returned by a successful update
type UpdateResult struct {
	ID      int64 `json:"id"`
	Updated int64 `json:"updated"`
}

// DeleteResult is returned by a successful delete.
// AuditWritten is false when the history entry could not be appended.
type DeleteResult struct {
	Snapshot     Row  `json:"snapshot"`
	AuditWritten bool `json:"audit_written"`
}
