// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/handler"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/internal/server"
	"github.com/MKhiriev/penny-sync/internal/service"
	"github.com/MKhiriev/penny-sync/internal/store"
	"github.com/MKhiriev/penny-sync/internal/workers"
	"github.com/MKhiriev/penny-sync/models"
)

type App struct {
	cfg      *config.StructuredConfig
	storages *store.Storages
	services *service.Services
	logger   *logger.Logger
}

// NewApp opens the local store and builds every service on top of it.
// The caller owns the returned App and must Close it.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	services, err := service.NewServices(ctx, storages, cfg, buildInfo, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create services: %w", err)
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		services: services,
		logger:   log,
	}, nil
}

func (a *App) Services() *service.Services {
	return a.services
}

// Sync performs a single run and returns its report.
func (a *App) Sync(ctx context.Context, opts service.SyncOptions) (models.RunReport, error) {
	return a.services.SyncService.Run(ctx, opts)
}

// Run starts the scheduler, plus the status server when an address is
// configured, and blocks until ctx is cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	runners := []workers.Worker{a.services.SyncJob}

	if a.cfg.Server.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(a.services, a.cfg.Server, a.logger)
		if err != nil {
			return fmt.Errorf("create handlers: %w", err)
		}
		srv, err := server.NewServer(handlers, a.cfg.Server, a.logger)
		if err != nil {
			return fmt.Errorf("create server: %w", err)
		}
		runners = append(runners, srv)
		a.logger.Info().Str("address", a.cfg.Server.HTTPAddress).Msg("status server enabled")
	}

	err := workers.NewWorkers(a.logger, runners...).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) Close() error {
	return a.storages.Close()
}
