package service

import (
	"context"

	"github.com/MKhiriev/penny-sync/models"
)

// TableReplicator writes remote records into local tables. Skips are
// reported through [models.WriteResult] rather than errors.
type TableReplicator interface {
	// FullReplace recreates table from records. An empty set leaves the table untouched.
	FullReplace(ctx context.Context, table string, records []models.Record) (models.WriteResult, error)
	// Upsert inserts or updates records by id, falling back to FullReplace
	// when the table does not exist yet.
	Upsert(ctx context.Context, table string, records []models.Record) (models.WriteResult, error)
	// Delete removes rows by id and reports how many actually existed.
	Delete(ctx context.Context, table string, ids []int64) (models.WriteResult, error)
}

// SyncService runs reconciliation over the resource catalog.
type SyncService interface {
	// Run synchronizes the selected resources in catalog order. Per-resource
	// failures are reported in the returned report, not as an error.
	Run(ctx context.Context, opts SyncOptions) (models.RunReport, error)
	States(ctx context.Context) ([]models.SyncState, error)
	// LastReport returns the report of the most recent completed run.
	LastReport() (models.RunReport, bool)
}

// SyncJob runs the sync service on a schedule.
type SyncJob interface {
	// Run blocks until ctx is cancelled.
	Run(ctx context.Context) error
	Start(ctx context.Context)
	Stop()
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// SyncOptions selects what a run does.
type SyncOptions struct {
	// Force takes the full path for every resource regardless of state.
	Force bool
	// Resources limits the run to these names. Empty means the whole catalog.
	Resources []string
}

// ConnectionService verifies that the remote API is reachable with the configured token.
type ConnectionService interface {
	// Check returns the profile of the authenticated account.
	Check(ctx context.Context) (models.Record, error)
}
