// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/penny-sync/models"
)

const syncStateTable = "sync_state"

var syncStateColumns = []string{
	"resource_name",
	"last_sync_at",
	"last_strategy",
	"records_synced",
	"last_status",
	"last_error",
	"updated_at",
}

// quoteIdent quotes a table or column name for both supported dialects.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteIdents(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = quoteIdent(n)
	}
	return out
}

func buildDropTableQuery(table string) string {
	return "DROP TABLE IF EXISTS " + quoteIdent(table)
}

// buildCreateTableQuery renders CREATE TABLE with a primary key on
// models.IDField when the schema contains it.
func buildCreateTableQuery(d Dialect, table string, schema models.Schema) (string, error) {
	if len(schema.Columns) == 0 {
		return "", ErrEmptySchema
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" (")
	for i, col := range schema.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(col.Name))
		b.WriteByte(' ')
		b.WriteString(d.ColumnType(col.Type))
	}
	if schema.Has(models.IDField) {
		b.WriteString(", PRIMARY KEY (")
		b.WriteString(quoteIdent(models.IDField))
		b.WriteByte(')')
	}
	b.WriteByte(')')

	return b.String(), nil
}

func buildInsertQuery(d Dialect, table string, columns []string, rows [][]any) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, ErrEmptySchema
	}

	q := d.builder().Insert(quoteIdent(table)).Columns(quoteIdents(columns)...)
	for _, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("%w: %d values for %d columns", ErrColumnCountMismatch, len(row), len(columns))
		}
		q = q.Values(row...)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpsertQuery is an INSERT with ON CONFLICT (conflictKey) DO UPDATE SET
// col = excluded.col for every other column. Both PostgreSQL and SQLite
// accept this form.
func buildUpsertQuery(d Dialect, table, conflictKey string, columns []string, rows [][]any) (string, []any, error) {
	query, args, err := buildInsertQuery(d, table, columns, rows)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == conflictKey {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", quoteIdent(c), quoteIdent(c)))
	}

	suffix := " ON CONFLICT (" + quoteIdent(conflictKey) + ")"
	if len(sets) == 0 {
		suffix += " DO NOTHING"
	} else {
		suffix += " DO UPDATE SET " + strings.Join(sets, ", ")
	}

	return query + suffix, args, nil
}

func buildDeleteByIDsQuery(d Dialect, table string, ids []int64) (string, []any, error) {
	query, args, err := d.builder().
		Delete(quoteIdent(table)).
		Where(sq.Eq{quoteIdent(models.IDField): ids}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectSyncStateQuery(d Dialect, resource string) (string, []any, error) {
	q := d.builder().Select(syncStateColumns...).From(syncStateTable)
	if resource != "" {
		q = q.Where(sq.Eq{"resource_name": resource})
	}

	query, args, err := q.OrderBy("resource_name").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSaveSyncStateQuery(d Dialect, s models.SyncState) (string, []any, error) {
	var lastSyncAt any
	if s.LastSyncAt != nil {
		lastSyncAt = s.LastSyncAt.UTC()
	}

	query, args, err := d.builder().
		Insert(syncStateTable).
		Columns(syncStateColumns...).
		Values(
			s.ResourceName,
			lastSyncAt,
			nullString(string(s.LastStrategy)),
			s.RecordsSynced,
			nullString(string(s.LastStatus)),
			nullString(s.LastError),
			s.UpdatedAt.UTC(),
		).
		Suffix(`ON CONFLICT (resource_name) DO UPDATE SET
			last_sync_at = excluded.last_sync_at,
			last_strategy = excluded.last_strategy,
			records_synced = excluded.records_synced,
			last_status = excluded.last_status,
			last_error = excluded.last_error,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
