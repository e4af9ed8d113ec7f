// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/models"
)

// tableRepository is the [TableStore] implementation shared by both dialects.
type tableRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewTableRepository(db *DB, logger *logger.Logger) TableStore {
	logger.Debug().Msg("creating table repository")
	return &tableRepository{
		db:     db,
		logger: logger,
	}
}

func (r *tableRepository) MaxParams() int {
	return r.db.dialect.MaxParams
}

func (r *tableRepository) TableExists(ctx context.Context, table string) (bool, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := r.db.QueryRowContext(ctx, r.db.dialect.tableExistsQuery, table).Scan(&count); err != nil {
		log.Err(err).Str("func", "*tableRepository.TableExists").Str("table", table).Msg("error checking table existence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}

func (r *tableRepository) Columns(ctx context.Context, table string) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, r.db.dialect.columnsQuery, table)
	if err != nil {
		log.Err(err).Str("func", "*tableRepository.Columns").Str("table", table).Msg("error reading table columns")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			log.Err(err).Str("func", "*tableRepository.Columns").Msg("error scanning column name")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		columns = append(columns, name)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*tableRepository.Columns").Msg("error iterating column names")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return columns, nil
}

func (r *tableRepository) DropTable(ctx context.Context, table string) error {
	_, err := r.db.withRetry(ctx, "*tableRepository.DropTable", func(ctx context.Context) (int64, error) {
		return r.db.execInTx(ctx, buildDropTableQuery(table))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tableRepository.DropTable").Str("table", table).Msg("error dropping table")
		return err
	}
	return nil
}

func (r *tableRepository) CreateTable(ctx context.Context, table string, schema models.Schema) error {
	log := logger.FromContext(ctx)

	query, err := buildCreateTableQuery(r.db.dialect, table, schema)
	if err != nil {
		log.Err(err).Str("func", "*tableRepository.CreateTable").Str("table", table).Msg("error building create table query")
		return err
	}

	_, err = r.db.withRetry(ctx, "*tableRepository.CreateTable", func(ctx context.Context) (int64, error) {
		return r.db.execInTx(ctx, query)
	})
	if err != nil {
		log.Err(err).Str("func", "*tableRepository.CreateTable").Str("table", table).Msg("error creating table")
		return err
	}

	log.Debug().Str("func", "*tableRepository.CreateTable").
		Str("table", table).
		Int("columns", len(schema.Columns)).
		Msg("table created")
	return nil
}

func (r *tableRepository) InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query, args, err := buildInsertQuery(r.db.dialect, table, columns, rows)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tableRepository.InsertBatch").Str("table", table).Msg("error building insert query")
		return 0, err
	}

	return r.exec(ctx, "*tableRepository.InsertBatch", table, query, args)
}

func (r *tableRepository) UpsertBatch(ctx context.Context, table, conflictKey string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query, args, err := buildUpsertQuery(r.db.dialect, table, conflictKey, columns, rows)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tableRepository.UpsertBatch").Str("table", table).Msg("error building upsert query")
		return 0, err
	}

	return r.exec(ctx, "*tableRepository.UpsertBatch", table, query, args)
}

func (r *tableRepository) DeleteByIDs(ctx context.Context, table string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := buildDeleteByIDsQuery(r.db.dialect, table, ids)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tableRepository.DeleteByIDs").Str("table", table).Msg("error building delete query")
		return 0, err
	}

	return r.exec(ctx, "*tableRepository.DeleteByIDs", table, query, args)
}

func (r *tableRepository) exec(ctx context.Context, funcName, table, query string, args []any) (int64, error) {
	n, err := r.db.withRetry(ctx, funcName, func(ctx context.Context) (int64, error) {
		return r.db.execInTx(ctx, query, args...)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Str("table", table).Msg("error executing batch")
		if r.db.classify(err) == SchemaDrift {
			return 0, fmt.Errorf("%w: %s: %w", ErrSchemaDrift, table, err)
		}
		return 0, err
	}
	return n, nil
}
