// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/MKhiriev/penny-sync/internal/adapter"
	"github.com/MKhiriev/penny-sync/internal/archive"
	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/internal/store"
	"github.com/MKhiriev/penny-sync/internal/utils"
	"github.com/MKhiriev/penny-sync/models"
)

// SyncDeps are the collaborators of the sync service.
type SyncDeps struct {
	Catalog    config.Catalog
	Client     adapter.RemoteClient
	Pages      adapter.Paginator
	Changelog  adapter.ChangelogReader
	Exports    adapter.ExportPoller
	Replicator TableReplicator
	States     store.SyncStateRepository
	Archiver   archive.Archiver
}

type syncService struct {
	catalog    config.Catalog
	client     adapter.RemoteClient
	pages      adapter.Paginator
	changelog  adapter.ChangelogReader
	exports    adapter.ExportPoller
	replicator TableReplicator
	states     store.SyncStateRepository
	archiver   archive.Archiver
	ids        *utils.UUIDGenerator
	now        func() time.Time

	// runMu keeps runs from overlapping.
	runMu sync.Mutex

	lastMu sync.RWMutex
	last   *models.RunReport

	logger *logger.Logger
}

func NewSyncService(deps SyncDeps, logger *logger.Logger) SyncService {
	archiver := deps.Archiver
	if archiver == nil {
		archiver = archive.Nop{}
	}

	return &syncService{
		catalog:    deps.Catalog,
		client:     deps.Client,
		pages:      deps.Pages,
		changelog:  deps.Changelog,
		exports:    deps.Exports,
		replicator: deps.Replicator,
		states:     deps.States,
		archiver:   archiver,
		ids:        utils.NewUUIDGenerator(),
		now:        time.Now,
		logger:     logger,
	}
}

// Run implements [SyncService].
func (s *syncService) Run(ctx context.Context, opts SyncOptions) (models.RunReport, error) {
	resources, err := s.catalog.Select(opts.Resources)
	if err != nil {
		return models.RunReport{}, err
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	runID := s.ids.Generate()
	ctx, log := s.logger.WithRunID(ctx, runID)
	ctx = utils.WithRunID(ctx, runID)

	report := models.RunReport{
		RunID:     runID,
		Forced:    opts.Force,
		StartedAt: s.now().UTC(),
		Results:   make([]models.ResourceResult, 0, len(resources)),
	}
	log.Info().Str("func", "*syncService.Run").Bool("forced", opts.Force).Int("resources", len(resources)).Msg("sync run started")

	for i, res := range resources {
		if ctx.Err() != nil {
			for _, skipped := range resources[i:] {
				report.Results = append(report.Results, models.ResourceResult{
					Resource: skipped.Name,
					Skipped:  models.SkipCancelled,
				})
			}
			log.Warn().Str("func", "*syncService.Run").Int("skipped", len(resources)-i).Msg("sync run cancelled")
			break
		}
		report.Results = append(report.Results, s.syncResource(ctx, res, opts.Force))
	}

	report.FinishedAt = s.now().UTC()
	s.remember(report)

	failed := report.Failed()
	event := log.Info()
	if len(failed) > 0 {
		event = log.Warn()
		names := make([]string, len(failed))
		for i, f := range failed {
			names[i] = f.Resource
		}
		event = event.Strs("failed", names)
	}
	event.Str("func", "*syncService.Run").
		Dur("duration", report.Duration()).
		Int("succeeded", report.Succeeded()).
		Int("total", len(report.Results)).
		Msg("sync run finished")

	return report, nil
}

func (s *syncService) States(ctx context.Context) ([]models.SyncState, error) {
	return s.states.List(ctx)
}

func (s *syncService) LastReport() (models.RunReport, bool) {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()
	if s.last == nil {
		return models.RunReport{}, false
	}
	return *s.last, true
}

func (s *syncService) remember(report models.RunReport) {
	s.lastMu.Lock()
	s.last = &report
	s.lastMu.Unlock()
}

// chooseStrategy picks the reconciliation path of a resource.
func chooseStrategy(res models.Resource, state models.SyncState, force bool) models.Strategy {
	switch {
	case res.Class == models.ClassExport:
		return models.StrategyExport
	case force || state.LastSyncAt == nil:
		return models.StrategyFull
	case res.Class == models.ClassChangelog:
		return models.StrategyIncremental
	default:
		return models.StrategyFull
	}
}

// syncResource runs one resource and records its state whatever the outcome.
func (s *syncService) syncResource(ctx context.Context, res models.Resource, force bool) models.ResourceResult {
	log := logger.FromContext(ctx)
	started := s.now().UTC()

	state, err := s.states.Get(ctx, res.Name)
	if err != nil && !errors.Is(err, store.ErrSyncStateNotFound) {
		log.Err(err).Str("func", "*syncService.syncResource").Str("resource", res.Name).Msg("failed to read sync state")
		return s.finish(ctx, res, state, models.StrategyFull, started, outcome{err: err})
	}

	strategy := chooseStrategy(res, state, force)
	log.Info().Str("func", "*syncService.syncResource").
		Str("resource", res.Name).
		Str("class", string(res.Class)).
		Str("strategy", string(strategy)).
		Msg("syncing resource")

	var out outcome
	switch strategy {
	case models.StrategyIncremental:
		out = s.incremental(ctx, res, *state.LastSyncAt)
	case models.StrategyExport:
		out = s.export(ctx, res)
	default:
		out = s.full(ctx, res)
	}

	return s.finish(ctx, res, state, strategy, started, out)
}

type outcome struct {
	records int64
	deleted int64
	skipped models.SkipReason
	err     error
}

func (s *syncService) full(ctx context.Context, res models.Resource) outcome {
	records, err := s.pages.FetchAll(ctx, res.ListPath(), nil, res.Headers)
	if err != nil {
		return outcome{err: err}
	}

	result, err := s.replicator.FullReplace(ctx, res.Name, records)
	return outcome{records: result.Rows, skipped: result.Skipped, err: err}
}

func (s *syncService) incremental(ctx context.Context, res models.Resource, since time.Time) outcome {
	log := logger.FromContext(ctx)

	events, err := s.changelog.ChangesSince(ctx, res.ChangelogName(), since, res.Headers)
	if err != nil {
		return outcome{err: err}
	}

	upserts, deletes := Partition(events)
	log.Info().Str("func", "*syncService.incremental").
		Str("resource", res.Name).
		Int("events", len(events)).
		Int("upserts", len(upserts)).
		Int("deletes", len(deletes)).
		Msg("changelog partitioned")

	var out outcome

	if len(upserts) > 0 {
		var records []models.Record
		for _, ids := range chunk(upserts, FetchBatchSize) {
			batch, err := s.pages.FetchAll(ctx, res.ListPath(), idFilterQuery(ids), res.Headers)
			if err != nil {
				out.err = err
				return out
			}
			records = append(records, batch...)
		}

		result, err := s.replicator.Upsert(ctx, res.Name, records)
		out.records, out.skipped = result.Rows, result.Skipped
		if err != nil {
			out.err = err
			return out
		}
	}

	if len(deletes) > 0 {
		result, err := s.replicator.Delete(ctx, res.Name, deletes)
		out.deleted = result.Rows
		if err != nil {
			out.err = err
			return out
		}
	}

	return out
}

func (s *syncService) export(ctx context.Context, res models.Resource) outcome {
	log := logger.FromContext(ctx)

	body := make(map[string]any, len(res.ExportBody)+2)
	maps.Copy(body, res.ExportBody)
	if res.ExportCurrentYear {
		maps.Copy(body, adapter.CurrentYearPeriod(s.now()))
	}

	job, err := s.exports.Export(ctx, res.ExportName(), body, res.Headers)
	if err != nil {
		return outcome{err: err}
	}

	payload, err := s.client.Download(ctx, job.DownloadURL)
	if err != nil {
		return outcome{err: fmt.Errorf("download export %s: %w", job.ID, err)}
	}

	runID, _ := utils.GetRunIDFromContext(ctx)
	if location, err := s.archiver.Store(ctx, res.Name, runID, payload.Data, payload.ContentType); err != nil {
		log.Warn().Err(err).Str("func", "*syncService.export").Str("resource", res.Name).Msg("export archiving failed")
	} else if location != "" {
		log.Info().Str("func", "*syncService.export").Str("resource", res.Name).Str("location", location).Msg("export archived")
	}

	records, err := adapter.ParseTabular(payload)
	if err != nil {
		return outcome{err: fmt.Errorf("parse export %s: %w", job.ID, err)}
	}

	result, err := s.replicator.FullReplace(ctx, res.Name, records)
	return outcome{records: result.Rows, skipped: result.Skipped, err: err}
}

// finish saves the state row and builds the resource result. A failed run
// keeps the previous watermark, so the same window is read again next time.
func (s *syncService) finish(ctx context.Context, res models.Resource, prev models.SyncState, strategy models.Strategy, started time.Time, out outcome) models.ResourceResult {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	state := models.SyncState{
		ResourceName:  res.Name,
		LastSyncAt:    prev.LastSyncAt,
		LastStrategy:  strategy,
		RecordsSynced: out.records,
		UpdatedAt:     now,
	}
	if out.err == nil {
		state.LastSyncAt = &started
		state.LastStatus = models.RunStatusOK
	} else {
		state.LastStatus = models.RunStatusFailed
		state.LastError = out.err.Error()
	}

	// the state row is written even when the run was cancelled mid-resource
	if err := s.states.Save(context.WithoutCancel(ctx), state); err != nil {
		log.Err(err).Str("func", "*syncService.finish").Str("resource", res.Name).Msg("failed to save sync state")
		if out.err == nil {
			out.err = err
		}
	}

	result := models.ResourceResult{
		Resource: res.Name,
		Strategy: strategy,
		Records:  out.records,
		Deleted:  out.deleted,
		Skipped:  out.skipped,
		Duration: now.Sub(started),
		Err:      out.err,
	}
	if out.err != nil {
		result.Error = out.err.Error()
		log.Err(out.err).Str("func", "*syncService.finish").
			Str("resource", res.Name).
			Str("strategy", string(strategy)).
			Msg("resource sync failed")
		return result
	}

	log.Info().Str("func", "*syncService.finish").
		Str("resource", res.Name).
		Str("strategy", string(strategy)).
		Int64("records", out.records).
		Int64("deleted", out.deleted).
		Str("skipped", string(out.skipped)).
		Dur("duration", result.Duration).
		Msg("resource synced")
	return result
}
