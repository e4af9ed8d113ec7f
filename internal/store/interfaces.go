package store

import (
	"context"

	"github.com/MKhiriev/penny-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TableStore is the write interface of the local store used by the replicator.
//
// Every batch method runs in its own transaction. Table and column names are
// quoted by the implementation.
type TableStore interface {
	TableExists(ctx context.Context, table string) (bool, error)
	// Columns returns the column names of table in ordinal order.
	Columns(ctx context.Context, table string) ([]string, error)
	DropTable(ctx context.Context, table string) error
	// CreateTable creates table with the given layout, adding a primary key
	// on the id column when the schema has one.
	CreateTable(ctx context.Context, table string, schema models.Schema) error
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	// UpsertBatch inserts rows, updating every other column on a conflictKey collision.
	UpsertBatch(ctx context.Context, table, conflictKey string, columns []string, rows [][]any) (int64, error)
	// DeleteByIDs returns the number of rows actually removed.
	DeleteByIDs(ctx context.Context, table string, ids []int64) (int64, error)
	// MaxParams is the bind-parameter limit of a single statement.
	MaxParams() int
}

// SyncStateRepository persists one bookkeeping row per resource.
type SyncStateRepository interface {
	// Get returns ErrSyncStateNotFound for a resource without a row.
	Get(ctx context.Context, resource string) (models.SyncState, error)
	Save(ctx context.Context, state models.SyncState) error
	// List returns all rows ordered by resource name.
	List(ctx context.Context) ([]models.SyncState, error)
}

// ErrorClassificator decides whether a failed database operation may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
