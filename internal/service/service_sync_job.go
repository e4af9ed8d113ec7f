package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

type syncJob struct {
	syncService SyncService
	interval    time.Duration

	dailyEnabled bool
	dailyHour    int
	dailyMinute  int

	now func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a job that runs a forced full sync on start, an
// incremental sync every cfg.SyncInterval and a forced full sync daily at
// cfg.FullReloadAt (local time). The job is idle until Run or Start is called.
func NewSyncJob(syncService SyncService, cfg config.Workers, logger *logger.Logger) (SyncJob, error) {
	hour, minute, enabled, err := cfg.DailyReload()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	interval := cfg.SyncInterval
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	return &syncJob{
		syncService:  syncService,
		interval:     interval,
		dailyEnabled: enabled,
		dailyHour:    hour,
		dailyMinute:  minute,
		now:          time.Now,
		logger:       logger,
	}, nil
}

// Run implements [SyncJob]. Runs happen on this goroutine only, so they never overlap.
func (j *syncJob) Run(ctx context.Context) error {
	log := j.logger
	ctx = log.WithContext(ctx)

	j.runOnce(ctx, true)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	var (
		daily      <-chan time.Time
		dailyTimer *time.Timer
	)
	if j.dailyEnabled {
		next := nextDailyRun(j.now(), j.dailyHour, j.dailyMinute)
		dailyTimer = time.NewTimer(next.Sub(j.now()))
		defer dailyTimer.Stop()
		daily = dailyTimer.C
		log.Info().Str("func", "*syncJob.Run").Time("next_full_reload", next).Msg("daily full reload scheduled")
	}

	log.Info().Str("func", "*syncJob.Run").Dur("interval", j.interval).Msg("sync job started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("func", "*syncJob.Run").Msg("sync job stopped")
			return nil
		case <-ticker.C:
			j.runOnce(ctx, false)
		case <-daily:
			j.runOnce(ctx, true)
			next := nextDailyRun(j.now(), j.dailyHour, j.dailyMinute)
			dailyTimer.Reset(next.Sub(j.now()))
			log.Info().Str("func", "*syncJob.Run").Time("next_full_reload", next).Msg("daily full reload scheduled")
		}
	}
}

func (j *syncJob) runOnce(ctx context.Context, force bool) {
	if ctx.Err() != nil {
		return
	}
	if _, err := j.syncService.Run(ctx, SyncOptions{Force: force}); err != nil {
		j.logger.Err(err).Str("func", "*syncJob.runOnce").Bool("forced", force).Msg("sync run could not start")
	}
}

// Start implements [SyncJob]. It stops any previously running job, then
// launches Run on a background goroutine.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		_ = j.Run(jobCtx)
	}()
}

// Stop implements [SyncJob]. It cancels the background goroutine and blocks
// until the current run has returned. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// nextDailyRun returns the next occurrence of hour:minute in now's location,
// strictly after now.
func nextDailyRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
