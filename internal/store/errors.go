package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrSyncStateNotFound is returned when a resource has never been synchronized.
	ErrSyncStateNotFound = errors.New("sync state was not found")

	// ErrEmptySchema is returned when a table would be created without columns.
	ErrEmptySchema = errors.New("table schema has no columns")

	// ErrColumnCountMismatch is returned when a row does not match the column list.
	ErrColumnCountMismatch = errors.New("row does not match column count")

	// ErrSchemaDrift is returned when a batch no longer fits the table it is
	// written to. The next full reload recreates the table.
	ErrSchemaDrift = errors.New("record shape no longer matches the table")

	// ErrUnsupportedDriver is returned for database drivers other than sqlite3 and pgx.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors, wrapped around the driver error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
