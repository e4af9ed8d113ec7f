package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/models"
)

// syncStateRepository stores [models.SyncState] rows in the sync_state table.
type syncStateRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	logger.Debug().Msg("creating sync state repository")
	return &syncStateRepository{
		db:     db,
		logger: logger,
	}
}

func (r *syncStateRepository) Get(ctx context.Context, resource string) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSyncStateQuery(r.db.dialect, resource)
	if err != nil {
		log.Err(err).Str("func", "*syncStateRepository.Get").Msg("error building select query")
		return models.SyncState{}, err
	}

	state, err := scanSyncState(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncState{}, ErrSyncStateNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*syncStateRepository.Get").Str("resource", resource).Msg("error reading sync state")
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return state, nil
}

func (r *syncStateRepository) Save(ctx context.Context, state models.SyncState) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveSyncStateQuery(r.db.dialect, state)
	if err != nil {
		log.Err(err).Str("func", "*syncStateRepository.Save").Msg("error building save query")
		return err
	}

	_, err = r.db.withRetry(ctx, "*syncStateRepository.Save", func(ctx context.Context) (int64, error) {
		return r.db.execInTx(ctx, query, args...)
	})
	if err != nil {
		log.Err(err).Str("func", "*syncStateRepository.Save").Str("resource", state.ResourceName).Msg("error saving sync state")
		return err
	}

	return nil
}

func (r *syncStateRepository) List(ctx context.Context) ([]models.SyncState, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSyncStateQuery(r.db.dialect, "")
	if err != nil {
		log.Err(err).Str("func", "*syncStateRepository.List").Msg("error building select query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*syncStateRepository.List").Msg("error listing sync state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var states []models.SyncState
	for rows.Next() {
		state, err := scanSyncState(rows)
		if err != nil {
			log.Err(err).Str("func", "*syncStateRepository.List").Msg("error scanning sync state")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		states = append(states, state)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return states, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSyncState(row rowScanner) (models.SyncState, error) {
	var (
		state        models.SyncState
		lastSyncAt   sql.NullTime
		lastStrategy sql.NullString
		lastStatus   sql.NullString
		lastError    sql.NullString
	)

	err := row.Scan(
		&state.ResourceName,
		&lastSyncAt,
		&lastStrategy,
		&state.RecordsSynced,
		&lastStatus,
		&lastError,
		&state.UpdatedAt,
	)
	if err != nil {
		return models.SyncState{}, err
	}

	if lastSyncAt.Valid {
		t := lastSyncAt.Time.UTC()
		state.LastSyncAt = &t
	}
	state.LastStrategy = models.Strategy(lastStrategy.String)
	state.LastStatus = models.RunStatus(lastStatus.String)
	state.LastError = lastError.String
	state.UpdatedAt = state.UpdatedAt.UTC()

	return state, nil
}
