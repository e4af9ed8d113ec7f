package store

import (
	"context"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
)

// Storages bundles the repositories backed by one database connection.
type Storages struct {
	TableStore          TableStore
	SyncStateRepository SyncStateRepository

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		log.Err(err).Str("func", "store.NewStorages").Msg("error applying migrations")
		return nil, err
	}

	return &Storages{
		TableStore:          NewTableRepository(db, log),
		SyncStateRepository: NewSyncStateRepository(db, log),
		db:                  db,
	}, nil
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
