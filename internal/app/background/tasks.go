package background

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/announcement"
	dealusecase "github.com/LavaJover/shvark-deal-service/internal/usecase/deal"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	ReconcileInterval time.Duration
	StuckAfter        time.Duration
}

type BackgroundTasks struct {
	Scheduler   *announcement.Scheduler
	DealUsecase dealusecase.DealUsecase
	metrics     *metrics.DealMetrics
	log         zerolog.Logger
	opts        Options
}

func NewBackgroundTasks(
	scheduler *announcement.Scheduler,
	dealUC dealusecase.DealUsecase,
	m *metrics.DealMetrics,
	log zerolog.Logger,
	opts Options,
) *BackgroundTasks {
	return &BackgroundTasks{
		Scheduler:   scheduler,
		DealUsecase: dealUC,
		metrics:     m,
		log:         log.With().Str("component", "background").Logger(),
		opts:        opts,
	}
}

// Run blocks until ctx is done.
func (bt *BackgroundTasks) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bt.Scheduler.Start(ctx)
		return nil
	})
	g.Go(func() error {
		bt.startStuckPayoutMonitor(ctx)
		return nil
	})
	return g.Wait()
}

func (bt *BackgroundTasks) startStuckPayoutMonitor(ctx context.Context) {
	ticker := time.NewTicker(bt.opts.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.checkStuckPayouts(ctx)
		}
	}
}

func (bt *BackgroundTasks) checkStuckPayouts(ctx context.Context) int {
	stuck, err := bt.DealUsecase.FindStuckPayouts(ctx, bt.opts.StuckAfter)
	if err != nil {
		bt.log.Error().Err(err).Msg("stuck payout check failed")
		return 0
	}
	bt.metrics.StuckPayouts.Set(float64(len(stuck)))
	for _, d := range stuck {
		bt.log.Error().
			Int64("deal_id", d.ID).
			Time("claimed_since", d.UpdatedAt).
			Bool("reconciliation_required", true).
			Msg("payout claim held too long")
	}
	return len(stuck)
}
