package workers

import (
	"context"

	"github.com/MKhiriev/penny-sync/internal/logger"
	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker

	logger *logger.Logger
}

func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	return &Workers{
		workers: workers,
		logger:  logger,
	}
}

// Run starts all workers and waits for them. The first failure cancels the
// others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	w.logger.Info().Int("workers", len(w.workers)).Msg("workers started")
	err := g.Wait()
	if err != nil {
		w.logger.Err(err).Str("func", "*Workers.Run").Msg("worker failed")
		return err
	}

	w.logger.Info().Msg("workers stopped")
	return nil
}
