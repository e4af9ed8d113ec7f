// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/internal/mock"
	"github.com/MKhiriev/penny-sync/internal/store"
	"github.com/MKhiriev/penny-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSQLiteReplicator(t *testing.T) (TableReplicator, *store.DB) {
	t.Helper()
	db, err := store.NewConnectSQLite(context.Background(), config.DB{Driver: config.DriverSQLite, DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	return NewTableReplicator(store.NewTableRepository(db, logger.Nop()), logger.Nop()), db
}

func invoice(id int64, label string, amount float64) models.Record {
	return models.NewRecord(
		models.Field{Name: "id", Value: models.IntValue(id)},
		models.Field{Name: "label", Value: models.StringValue(label)},
		models.Field{Name: "amount", Value: models.FloatValue(amount)},
	)
}

func tableRows(t *testing.T, db *store.DB, table string) map[int64]string {
	t.Helper()
	rows, err := db.Query(`SELECT id, label FROM "` + table + `" ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	out := make(map[int64]string)
	for rows.Next() {
		var (
			id    int64
			label string
		)
		require.NoError(t, rows.Scan(&id, &label))
		out[id] = label
	}
	require.NoError(t, rows.Err())
	return out
}

func TestTableReplicator_FullReplace(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	res, err := r.FullReplace(ctx, "invoices", []models.Record{
		invoice(1, "a", 10), invoice(2, "b", 20), invoice(3, "c", 30),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Rows)
	assert.Equal(t, map[int64]string{1: "a", 2: "b", 3: "c"}, tableRows(t, db, "invoices"))

	// the table holds exactly the latest set
	res, err = r.FullReplace(ctx, "invoices", []models.Record{invoice(2, "b2", 20), invoice(4, "d", 40)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Rows)
	assert.Equal(t, map[int64]string{2: "b2", 4: "d"}, tableRows(t, db, "invoices"))

	// same input, same table
	_, err = r.FullReplace(ctx, "invoices", []models.Record{invoice(2, "b2", 20), invoice(4, "d", 40)})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{2: "b2", 4: "d"}, tableRows(t, db, "invoices"))
}

func TestTableReplicator_FullReplace_EmptyLeavesTable(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	_, err := r.FullReplace(ctx, "invoices", []models.Record{invoice(1, "a", 10)})
	require.NoError(t, err)

	res, err := r.FullReplace(ctx, "invoices", nil)
	require.NoError(t, err)
	assert.Equal(t, models.SkipEmpty, res.Skipped)
	assert.Equal(t, map[int64]string{1: "a"}, tableRows(t, db, "invoices"))
}

func TestTableReplicator_FullReplace_DuplicatesKeepLastVersion(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	res, err := r.FullReplace(ctx, "invoices", []models.Record{
		invoice(1, "old", 10), invoice(2, "b", 20), invoice(1, "new", 11),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Rows)
	assert.Equal(t, map[int64]string{1: "new", 2: "b"}, tableRows(t, db, "invoices"))
}

func TestTableReplicator_FullReplace_DropsRecordsWithoutID(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	noID := models.NewRecord(models.Field{Name: "label", Value: models.StringValue("orphan")})
	res, err := r.FullReplace(ctx, "invoices", []models.Record{invoice(1, "a", 10), noID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Rows)
	assert.Equal(t, map[int64]string{1: "a"}, tableRows(t, db, "invoices"))
}

func TestTableReplicator_FullReplace_StringIDsStoredAsIntegers(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	_, err := r.FullReplace(ctx, "ledger", []models.Record{
		models.NewRecord(
			models.Field{Name: "id", Value: models.StringValue("42")},
			models.Field{Name: "label", Value: models.StringValue("x")},
		),
	})
	require.NoError(t, err)

	var typ string
	require.NoError(t, db.QueryRow(`SELECT typeof(id) FROM ledger`).Scan(&typ))
	assert.Equal(t, "integer", typ)
}

func TestTableReplicator_FullReplace_NonNumericIDsKeptAsText(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	entry := func(id models.Value, label string) models.Record {
		return models.NewRecord(
			models.Field{Name: "id", Value: id},
			models.Field{Name: "label", Value: models.StringValue(label)},
		)
	}

	res, err := r.FullReplace(ctx, "fec", []models.Record{
		entry(models.StringValue("EC-0001"), "first"),
		entry(models.StringValue("EC-0002"), "second"),
		entry(models.StringValue("EC-0001"), "first, amended"),
		entry(models.NullValue(), "no id"),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, int64(2), res.Rows)

	rows, err := db.Query(`SELECT id, typeof(id), label FROM fec ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	got := make(map[string]string)
	for rows.Next() {
		var id, typ, label string
		require.NoError(t, rows.Scan(&id, &typ, &label))
		assert.Equal(t, "text", typ)
		got[id] = label
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]string{"EC-0001": "first, amended", "EC-0002": "second"}, got)

	// the id is still the primary key
	_, err = db.Exec(`INSERT INTO fec (id, label) VALUES ('EC-0002', 'dup')`)
	assert.Error(t, err)
}

func TestTableReplicator_Upsert(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	_, err := r.FullReplace(ctx, "invoices", []models.Record{invoice(1, "a", 10), invoice(2, "b", 20)})
	require.NoError(t, err)

	withExtra := invoice(3, "c", 30)
	withExtra.Set("brand_new_column", models.StringValue("ignored"))

	res, err := r.Upsert(ctx, "invoices", []models.Record{invoice(2, "b2", 21), withExtra})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Rows)
	assert.Equal(t, map[int64]string{1: "a", 2: "b2", 3: "c"}, tableRows(t, db, "invoices"))

	// upserting the same set again changes nothing
	_, err = r.Upsert(ctx, "invoices", []models.Record{invoice(2, "b2", 21), withExtra})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "a", 2: "b2", 3: "c"}, tableRows(t, db, "invoices"))
}

func TestTableReplicator_Upsert_MissingIDSkipsCall(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	_, err := r.FullReplace(ctx, "invoices", []models.Record{invoice(1, "a", 10)})
	require.NoError(t, err)

	noID := models.NewRecord(models.Field{Name: "label", Value: models.StringValue("orphan")})
	res, err := r.Upsert(ctx, "invoices", []models.Record{invoice(1, "changed", 10), noID})
	require.NoError(t, err)
	assert.Equal(t, models.SkipMissingID, res.Skipped)
	assert.Equal(t, map[int64]string{1: "a"}, tableRows(t, db, "invoices"))
}

func TestTableReplicator_Upsert_MissingTableFallsBackToFullReplace(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	res, err := r.Upsert(ctx, "invoices", []models.Record{invoice(5, "e", 50)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Rows)
	assert.Equal(t, map[int64]string{5: "e"}, tableRows(t, db, "invoices"))
}

func TestTableReplicator_Upsert_Empty(t *testing.T) {
	r, _ := newSQLiteReplicator(t)

	res, err := r.Upsert(context.Background(), "invoices", nil)
	require.NoError(t, err)
	assert.Equal(t, models.SkipEmpty, res.Skipped)
}

func TestTableReplicator_Delete(t *testing.T) {
	ctx := context.Background()
	r, db := newSQLiteReplicator(t)

	res, err := r.Delete(ctx, "invoices", []int64{1})
	require.NoError(t, err)
	assert.Equal(t, models.SkipNoTable, res.Skipped)

	_, err = r.FullReplace(ctx, "invoices", []models.Record{invoice(1, "a", 10), invoice(2, "b", 20)})
	require.NoError(t, err)

	res, err = r.Delete(ctx, "invoices", []int64{1, 99})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Rows)
	assert.Equal(t, map[int64]string{2: "b"}, tableRows(t, db, "invoices"))

	res, err = r.Delete(ctx, "invoices", nil)
	require.NoError(t, err)
	assert.Equal(t, models.SkipEmpty, res.Skipped)
}

func TestTableReplicator_BatchesRespectParamLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	tables := mock.NewMockTableStore(ctrl)
	r := NewTableReplicator(tables, logger.Nop())

	records := make([]models.Record, 7)
	for i := range records {
		records[i] = invoice(int64(i+1), "x", 1)
	}

	tables.EXPECT().MaxParams().Return(10).AnyTimes()
	tables.EXPECT().DropTable(gomock.Any(), "invoices").Return(nil)
	tables.EXPECT().CreateTable(gomock.Any(), "invoices", gomock.Any()).Return(nil)

	var sizes []int
	tables.EXPECT().InsertBatch(gomock.Any(), "invoices", []string{"id", "label", "amount"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ []string, rows [][]any) (int64, error) {
			sizes = append(sizes, len(rows))
			return int64(len(rows)), nil
		}).Times(3)

	res, err := r.FullReplace(context.Background(), "invoices", records)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Rows)
	assert.Equal(t, []int{3, 3, 1}, sizes)
}

func TestTableReplicator_StoreErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	tables := mock.NewMockTableStore(ctrl)
	r := NewTableReplicator(tables, logger.Nop())
	boom := errors.New("disk full")

	tables.EXPECT().MaxParams().Return(32766).AnyTimes()
	tables.EXPECT().TableExists(gomock.Any(), "invoices").Return(true, nil)
	tables.EXPECT().Columns(gomock.Any(), "invoices").Return([]string{"id", "label", "amount"}, nil)
	tables.EXPECT().UpsertBatch(gomock.Any(), "invoices", "id", gomock.Any(), gomock.Any()).Return(int64(0), boom)

	_, err := r.Upsert(context.Background(), "invoices", []models.Record{invoice(1, "a", 1)})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "upsert invoices")
}

func TestTableReplicator_Upsert_TableWithoutIDColumn(t *testing.T) {
	ctrl := gomock.NewController(t)
	tables := mock.NewMockTableStore(ctrl)
	r := NewTableReplicator(tables, logger.Nop())

	tables.EXPECT().TableExists(gomock.Any(), "legacy").Return(true, nil)
	tables.EXPECT().Columns(gomock.Any(), "legacy").Return([]string{"label"}, nil)

	_, err := r.Upsert(context.Background(), "legacy", []models.Record{invoice(1, "a", 1)})
	require.ErrorIs(t, err, ErrTableWithoutID)
}

func TestRowsPerBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	tables := mock.NewMockTableStore(ctrl)
	r := &tableReplicator{tables: tables, batchSize: 500}

	tests := []struct {
		name    string
		limit   int
		columns int
		want    int
	}{
		{name: "under limit", limit: 65535, columns: 10, want: 500},
		{name: "wide table", limit: 32766, columns: 100, want: 327},
		{name: "wider than limit", limit: 10, columns: 50, want: 1},
		{name: "no limit", limit: 0, columns: 50, want: 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables.EXPECT().MaxParams().Return(tt.limit)
			assert.Equal(t, tt.want, r.rowsPerBatch(tt.columns))
		})
	}
}
