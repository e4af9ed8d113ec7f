package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/penny-sync/internal/adapter"
	"github.com/MKhiriev/penny-sync/internal/archive"
	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/internal/store"
	"github.com/MKhiriev/penny-sync/models"
)

type Services struct {
	SyncService       SyncService
	SyncJob           SyncJob
	ConnectionService ConnectionService
	AppInfoService    AppInfoService

	Catalog config.Catalog
}

// NewServices builds the API client stack and every service on top of storages.
func NewServices(ctx context.Context, storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	logger.Info().Msg("creating new services...")

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	client, err := adapter.NewClient(cfg.Remote, logger)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	archiver, err := archive.New(ctx, cfg.Storage.Archive, logger)
	if err != nil {
		return nil, fmt.Errorf("creating export archiver: %w", err)
	}

	pages := adapter.NewPaginator(client, cfg.Remote.PerPage, logger)

	syncService := NewSyncService(SyncDeps{
		Catalog:    catalog,
		Client:     client,
		Pages:      pages,
		Changelog:  adapter.NewChangelogReader(pages, logger),
		Exports:    adapter.NewExportPoller(client, cfg.Export, logger),
		Replicator: NewTableReplicator(storages.TableStore, logger),
		States:     storages.SyncStateRepository,
		Archiver:   archiver,
	}, logger)

	syncJob, err := NewSyncJob(syncService, cfg.Workers, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		SyncService:       syncService,
		SyncJob:           syncJob,
		ConnectionService: NewConnectionService(client, logger),
		AppInfoService:    appInfoService,
		Catalog:           catalog,
	}, nil
}
