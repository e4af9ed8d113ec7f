package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/migrations"
)

// DB is the local store connection together with its dialect and error classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate creates the bookkeeping tables.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.GooseDialect)
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

// withRetry runs op and runs it once more when the first failure is
// classified as retryable (connection loss, serialization failure, busy).
func (db *DB) withRetry(ctx context.Context, funcName string, op func(ctx context.Context) (int64, error)) (int64, error) {
	n, err := op(ctx)
	if err == nil || db.classify(err) != Retryable {
		return n, err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return n, err
	}

	logger.FromContext(ctx).Warn().Err(err).
		Str("func", funcName).
		Msg("retryable database error, retrying once")

	return op(ctx)
}

// execInTx runs a single statement in its own transaction and returns the
// number of affected rows.
func (db *DB) execInTx(ctx context.Context, query string, args ...any) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return affected, nil
}
