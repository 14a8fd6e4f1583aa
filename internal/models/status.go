package models

import "time"

// StatusKind is the outcome reported after every poll cycle and history load.
type StatusKind string

const (
	StatusFreshData        StatusKind = "fresh_data"
	StatusNoData           StatusKind = "no_data"
	StatusHistoricalLoaded StatusKind = "historical_loaded"
	StatusHistoricalEmpty  StatusKind = "historical_empty"
)

// Status is the only channel through which the acquisition core reports outcomes.
type Status struct {
	Kind   StatusKind `json:"kind"`
	Sample *Sample    `json:"sample,omitempty"`
	Count  int        `json:"count,omitempty"`
	LoadID string     `json:"load_id,omitempty"`
	Err    string     `json:"error,omitempty"`
	At     time.Time  `json:"at"`
}
