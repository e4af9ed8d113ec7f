// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/internal/store"
	"github.com/MKhiriev/penny-sync/models"
)

// DefaultBatchSize is the number of rows written per statement and transaction.
const DefaultBatchSize = 500

type tableReplicator struct {
	tables    store.TableStore
	batchSize int
	logger    *logger.Logger
}

func NewTableReplicator(tables store.TableStore, logger *logger.Logger) TableReplicator {
	return &tableReplicator{
		tables:    tables,
		batchSize: DefaultBatchSize,
		logger:    logger,
	}
}

// FullReplace implements [TableReplicator].
//
// The layout comes from [models.InferSchema]. When the records carry an id
// the column becomes the primary key, records with a missing or null id
// are dropped and duplicates keep the last version. The id is stored as an
// integer only when every id is integral; otherwise the inferred type is kept.
func (r *tableReplicator) FullReplace(ctx context.Context, table string, records []models.Record) (models.WriteResult, error) {
	log := logger.FromContext(ctx)

	if len(records) == 0 {
		log.Info().Str("func", "*tableReplicator.FullReplace").Str("table", table).Msg("no records, table left untouched")
		return models.WriteResult{Skipped: models.SkipEmpty}, nil
	}

	schema := models.InferSchema(records)
	keyed := schema.Has(models.IDField)
	if keyed {
		var dropped int
		records, dropped = dedupeByID(records)
		if dropped > 0 {
			log.Warn().Str("func", "*tableReplicator.FullReplace").Str("table", table).Int("dropped", dropped).Msg("records without id dropped")
		}
		if len(records) == 0 {
			return models.WriteResult{Skipped: models.SkipMissingID}, nil
		}
		if integralIDs(records) {
			schema = withIntegerID(schema)
		}
	}

	if err := r.tables.DropTable(ctx, table); err != nil {
		return models.WriteResult{}, fmt.Errorf("full replace %s: %w", table, err)
	}
	if err := r.tables.CreateTable(ctx, table, schema); err != nil {
		return models.WriteResult{}, fmt.Errorf("full replace %s: %w", table, err)
	}

	columns := schema.Names()
	var written int64
	for _, batch := range chunk(records, r.rowsPerBatch(len(columns))) {
		n, err := r.tables.InsertBatch(ctx, table, columns, rowsFor(schema, batch))
		if err != nil {
			return models.WriteResult{Rows: written}, fmt.Errorf("full replace %s: %w", table, err)
		}
		written += n
	}

	log.Info().Str("func", "*tableReplicator.FullReplace").
		Str("table", table).
		Int("columns", len(columns)).
		Int64("rows", written).
		Msg("table replaced")

	return models.WriteResult{Rows: written}, nil
}

// Upsert implements [TableReplicator]. A single record without id skips the
// whole call. Keys that are not columns of the existing table are ignored.
func (r *tableReplicator) Upsert(ctx context.Context, table string, records []models.Record) (models.WriteResult, error) {
	log := logger.FromContext(ctx)

	if len(records) == 0 {
		return models.WriteResult{Skipped: models.SkipEmpty}, nil
	}
	for _, rec := range records {
		if _, ok := rec.IDKey(); !ok {
			log.Warn().Str("func", "*tableReplicator.Upsert").Str("table", table).Int("records", len(records)).Msg("record without id, upsert skipped")
			return models.WriteResult{Skipped: models.SkipMissingID}, nil
		}
	}

	exists, err := r.tables.TableExists(ctx, table)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("upsert %s: %w", table, err)
	}
	if !exists {
		log.Info().Str("func", "*tableReplicator.Upsert").Str("table", table).Msg("table missing, falling back to full replace")
		return r.FullReplace(ctx, table, records)
	}

	existing, err := r.tables.Columns(ctx, table)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("upsert %s: %w", table, err)
	}

	records, _ = dedupeByID(records)
	schema, unknown := upsertSchema(records, existing)
	if !schema.Has(models.IDField) {
		return models.WriteResult{}, fmt.Errorf("upsert %s: %w", table, ErrTableWithoutID)
	}
	if len(unknown) > 0 {
		log.Warn().Str("func", "*tableReplicator.Upsert").Str("table", table).Strs("columns", unknown).Msg("unknown columns ignored")
	}

	columns := schema.Names()
	var written int64
	for _, batch := range chunk(records, r.rowsPerBatch(len(columns))) {
		n, err := r.tables.UpsertBatch(ctx, table, models.IDField, columns, rowsFor(schema, batch))
		if err != nil {
			return models.WriteResult{Rows: written}, fmt.Errorf("upsert %s: %w", table, err)
		}
		written += n
	}

	log.Info().Str("func", "*tableReplicator.Upsert").Str("table", table).Int64("rows", written).Msg("records upserted")
	return models.WriteResult{Rows: written}, nil
}

// Delete implements [TableReplicator].
func (r *tableReplicator) Delete(ctx context.Context, table string, ids []int64) (models.WriteResult, error) {
	if len(ids) == 0 {
		return models.WriteResult{Skipped: models.SkipEmpty}, nil
	}

	exists, err := r.tables.TableExists(ctx, table)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("delete %s: %w", table, err)
	}
	if !exists {
		return models.WriteResult{Skipped: models.SkipNoTable}, nil
	}

	var deleted int64
	for _, batch := range chunk(ids, r.rowsPerBatch(1)) {
		n, err := r.tables.DeleteByIDs(ctx, table, batch)
		if err != nil {
			return models.WriteResult{Rows: deleted}, fmt.Errorf("delete %s: %w", table, err)
		}
		deleted += n
	}

	logger.FromContext(ctx).Info().Str("func", "*tableReplicator.Delete").
		Str("table", table).
		Int("requested", len(ids)).
		Int64("deleted", deleted).
		Msg("records deleted")

	return models.WriteResult{Rows: deleted}, nil
}

// rowsPerBatch shrinks the batch so one statement stays under the
// driver's bind-parameter limit.
func (r *tableReplicator) rowsPerBatch(columns int) int {
	size := r.batchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	if limit := r.tables.MaxParams(); columns > 0 && limit > 0 && size*columns > limit {
		size = limit / columns
	}
	if size < 1 {
		size = 1
	}
	return size
}

// dedupeByID keeps the first position and the last version of every id.
// Records with a missing or null id are dropped and counted.
func dedupeByID(records []models.Record) ([]models.Record, int) {
	out := make([]models.Record, 0, len(records))
	pos := make(map[string]int, len(records))
	dropped := 0

	for _, rec := range records {
		id, ok := rec.IDKey()
		if !ok {
			dropped++
			continue
		}
		if i, seen := pos[id]; seen {
			out[i] = rec
			continue
		}
		pos[id] = len(out)
		out = append(out, rec)
	}
	return out, dropped
}

func integralIDs(records []models.Record) bool {
	for _, rec := range records {
		if _, ok := rec.ID(); !ok {
			return false
		}
	}
	return true
}

func withIntegerID(schema models.Schema) models.Schema {
	cols := make([]models.Column, len(schema.Columns))
	copy(cols, schema.Columns)
	for i := range cols {
		if cols[i].Name == models.IDField {
			cols[i].Type = models.ColumnInteger
		}
	}
	return models.Schema{Columns: cols}
}

// upsertSchema is the inferred layout of records restricted to the columns
// that exist in the table, plus the keys that had to be dropped.
func upsertSchema(records []models.Record, existing []string) (models.Schema, []string) {
	known := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		known[c] = struct{}{}
	}

	var (
		keys    []string
		seen    = make(map[string]struct{})
		unknown []string
	)
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if _, ok := known[k]; ok {
				keys = append(keys, k)
			} else {
				unknown = append(unknown, k)
			}
		}
	}

	inferred := models.InferSchema(records)
	types := make(map[string]models.ColumnType, len(inferred.Columns))
	for _, c := range inferred.Columns {
		types[c.Name] = c.Type
	}

	cols := make([]models.Column, len(keys))
	for i, k := range keys {
		t, ok := types[k]
		if !ok {
			t = inferTypeOf(records, k)
		}
		cols[i] = models.Column{Name: k, Type: t}
	}
	schema := models.Schema{Columns: cols}
	if integralIDs(records) {
		schema = withIntegerID(schema)
	}
	return schema, unknown
}

// inferTypeOf types a column absent from the first record.
func inferTypeOf(records []models.Record, name string) models.ColumnType {
	subset := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if v, ok := rec.Get(name); ok {
			subset = append(subset, models.NewRecord(models.Field{Name: name, Value: v}))
		}
	}
	s := models.InferSchema(subset)
	if len(s.Columns) == 0 {
		return models.ColumnText
	}
	return s.Columns[0].Type
}

// rowsFor renders records in schema column order. Missing fields are NULL.
func rowsFor(schema models.Schema, records []models.Record) [][]any {
	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(schema.Columns))
		for j, col := range schema.Columns {
			if col.Name == models.IDField && col.Type == models.ColumnInteger {
				if id, ok := rec.ID(); ok {
					row[j] = id
					continue
				}
			}
			if v, ok := rec.Get(col.Name); ok {
				row[j] = models.Coerce(col.Type, v)
			}
		}
		rows[i] = row
	}
	return rows
}

func chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
