package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStateRepository_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSyncStateRepository(newMemoryDB(t), logger.Nop())

	_, err := repo.Get(ctx, "invoices")
	require.ErrorIs(t, err, ErrSyncStateNotFound)

	at := time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, models.SyncState{
		ResourceName:  "invoices",
		LastSyncAt:    &at,
		LastStrategy:  models.StrategyFull,
		RecordsSynced: 42,
		LastStatus:    models.RunStatusOK,
		UpdatedAt:     at,
	}))

	got, err := repo.Get(ctx, "invoices")
	require.NoError(t, err)
	require.NotNil(t, got.LastSyncAt)
	assert.True(t, at.Equal(*got.LastSyncAt))
	assert.Equal(t, models.StrategyFull, got.LastStrategy)
	assert.Equal(t, int64(42), got.RecordsSynced)
	assert.Equal(t, models.RunStatusOK, got.LastStatus)
	assert.Empty(t, got.LastError)

	// a failed run keeps the previous watermark and records the error
	require.NoError(t, repo.Save(ctx, models.SyncState{
		ResourceName: "invoices",
		LastSyncAt:   &at,
		LastStrategy: models.StrategyIncremental,
		LastStatus:   models.RunStatusFailed,
		LastError:    "remote error",
		UpdatedAt:    at.Add(time.Hour),
	}))

	got, err = repo.Get(ctx, "invoices")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusFailed, got.LastStatus)
	assert.Equal(t, "remote error", got.LastError)
	assert.True(t, at.Equal(*got.LastSyncAt))

	require.NoError(t, repo.Save(ctx, models.SyncState{ResourceName: "customers", UpdatedAt: at}))

	states, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "customers", states[0].ResourceName)
	assert.Nil(t, states[0].LastSyncAt)
	assert.Equal(t, "invoices", states[1].ResourceName)
}

func TestSyncStateRepository_GetQueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewSyncStateRepository(&DB{DB: sqlDB, dialect: PostgresDialect, logger: logger.Nop()}, logger.Nop())
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT (.+) FROM sync_state WHERE resource_name = \\$1").
		WithArgs("invoices").
		WillReturnError(boom)

	_, err = repo.Get(context.Background(), "invoices")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrSyncStateNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncStateRepository_ListScansNulls(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewSyncStateRepository(&DB{DB: sqlDB, dialect: PostgresDialect, logger: logger.Nop()}, logger.Nop())
	now := time.Now().UTC()

	rows := sqlmock.NewRows(syncStateColumns).
		AddRow("fec", nil, nil, int64(0), nil, nil, now).
		AddRow("invoices", now, "incremental", int64(5), "ok", nil, now)
	mock.ExpectQuery("SELECT (.+) FROM sync_state ORDER BY resource_name").WillReturnRows(rows)

	states, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Nil(t, states[0].LastSyncAt)
	assert.Empty(t, states[0].LastStrategy)
	require.NotNil(t, states[1].LastSyncAt)
	assert.Equal(t, models.StrategyIncremental, states[1].LastStrategy)
	require.NoError(t, mock.ExpectationsWereMet())
}
