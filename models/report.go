package models

import "time"

// SkipReason explains why a write left the table untouched.
type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipEmpty     SkipReason = "empty"
	SkipMissingID SkipReason = "missing_id"
	SkipNoTable   SkipReason = "no_table"
	SkipCancelled SkipReason = "cancelled"
)

// WriteResult is the outcome of a replicator call.
type WriteResult struct {
	Rows    int64
	Skipped SkipReason
}

// ResourceResult is the outcome of one resource within a run.
type ResourceResult struct {
	Resource string        `json:"resource"`
	Strategy Strategy      `json:"strategy,omitempty"`
	Records  int64         `json:"records"`
	Deleted  int64         `json:"deleted,omitempty"`
	Skipped  SkipReason    `json:"skipped,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
}

func (r ResourceResult) OK() bool { return r.Err == nil && r.Skipped != SkipCancelled }

// RunReport summarizes one synchronization run.
type RunReport struct {
	RunID      string           `json:"run_id"`
	Forced     bool             `json:"forced"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Results    []ResourceResult `json:"results"`
}

// OK reports whether every resource of the run succeeded.
func (r RunReport) OK() bool {
	for _, res := range r.Results {
		if !res.OK() {
			return false
		}
	}
	return true
}

func (r RunReport) Failed() []ResourceResult {
	var failed []ResourceResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

func (r RunReport) Succeeded() int {
	return len(r.Results) - len(r.Failed())
}

func (r RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
