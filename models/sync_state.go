package models

import "time"

// Strategy is the reconciliation path taken for a resource run.
type Strategy string

const (
	StrategyFull        Strategy = "full"
	StrategyIncremental Strategy = "incremental"
	StrategyExport      Strategy = "export"
)

// RunStatus is the outcome recorded for the last run of a resource.
type RunStatus string

const (
	RunStatusOK     RunStatus = "ok"
	RunStatusFailed RunStatus = "failed"
)

// SyncState is the persisted bookkeeping row of one resource.
//
// LastSyncAt is nil until the first successful run, which forces the next
// run to take the full path.
type SyncState struct {
	ResourceName  string     `json:"resource_name"`
	LastSyncAt    *time.Time `json:"last_sync_at,omitempty"`
	LastStrategy  Strategy   `json:"last_strategy,omitempty"`
	RecordsSynced int64      `json:"records_synced"`
	LastStatus    RunStatus  `json:"last_status,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
