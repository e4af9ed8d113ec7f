package models

import "strings"

type ExportStatus string

const (
	ExportSubmitted ExportStatus = "submitted"
	ExportRunning   ExportStatus = "running"
	ExportCompleted ExportStatus = "completed"
	ExportFailed    ExportStatus = "failed"
)

// ParseExportStatus maps the many spellings used by the remote onto [ExportStatus].
// Unknown values are treated as still running.
func ParseExportStatus(s string) ExportStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed", "complete", "done", "ready", "success", "succeeded", "finished":
		return ExportCompleted
	case "failed", "failure", "error", "errored", "cancelled", "canceled":
		return ExportFailed
	case "pending", "queued", "submitted", "created", "":
		return ExportSubmitted
	default:
		return ExportRunning
	}
}

func (s ExportStatus) Terminal() bool {
	return s == ExportCompleted || s == ExportFailed
}

// ExportJob is a server-side export request. DownloadURL is set once the job completes.
type ExportJob struct {
	ID          string
	Status      ExportStatus
	DownloadURL string
}
