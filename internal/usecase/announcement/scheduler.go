// Package announcement publishes newly submitted deals to the review group, one per tick.
package announcement

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/messages"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

type Scheduler struct {
	deals    domain.DealRepository
	notifier domain.Notifier
	events   domain.EventPublisher
	metrics  *metrics.DealMetrics
	log      zerolog.Logger
	interval time.Duration

	// Held for the whole of a tick or an admin operation.
	running *semaphore.Weighted
}

func NewScheduler(
	deals domain.DealRepository,
	notifier domain.Notifier,
	events domain.EventPublisher,
	m *metrics.DealMetrics,
	log zerolog.Logger,
	interval time.Duration,
) *Scheduler {
	return &Scheduler{
		deals:    deals,
		notifier: notifier,
		events:   events,
		metrics:  m,
		log:      log.With().Str("component", "announcement").Logger(),
		interval: interval,
		running:  semaphore.NewWeighted(1),
	}
}

// Start ticks immediately and then every interval until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("announcement scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("announcement scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick announces at most one deal. It returns false without doing anything when
// another tick or admin operation is still running.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.running.TryAcquire(1) {
		s.metrics.TicksSkippedTotal.Inc()
		return false
	}
	defer s.running.Release(1)

	if _, err := s.announceNext(ctx); err != nil {
		s.log.Error().Err(err).Msg("announcement check failed")
	}
	return true
}

// RunNow performs one check, waiting for a running tick to finish first.
// It returns the announced deal, or nil when nothing was waiting.
func (s *Scheduler) RunNow(ctx context.Context) (*domain.Deal, error) {
	if err := s.running.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.running.Release(1)

	return s.announceNext(ctx)
}

func (s *Scheduler) announceNext(ctx context.Context) (*domain.Deal, error) {
	waiting, err := s.deals.ListByStatusAndAnnounced(ctx, domain.DealPending, false)
	if err != nil {
		s.metrics.AnnouncementsTotal.WithLabelValues("store_error").Inc()
		return nil, fmt.Errorf("failed to list unannounced deals: %w", err)
	}
	if len(waiting) == 0 {
		return nil, nil
	}

	// The rest are picked up by later ticks.
	deal := waiting[0]
	marked, err := s.announce(ctx, deal)
	if err != nil || !marked {
		return nil, err
	}
	return deal, nil
}

// announce publishes the deal and marks it. It reports false when the deal was decided
// or announced by someone else in between.
func (s *Scheduler) announce(ctx context.Context, deal *domain.Deal) (bool, error) {
	if err := s.notifier.Publish(ctx, domain.ReviewGroup(), messages.Announcement(deal)); err != nil {
		s.metrics.AnnouncementsTotal.WithLabelValues("publish_error").Inc()
		return false, fmt.Errorf("failed to announce deal %d: %w", deal.ID, err)
	}

	marked, err := s.deals.MarkAnnounced(ctx, deal.ID)
	if err != nil {
		// The message is out; the deal may be announced again on a later tick.
		s.metrics.AnnouncementsTotal.WithLabelValues("mark_error").Inc()
		return false, fmt.Errorf("deal %d announced but not marked: %w", deal.ID, err)
	}
	if !marked {
		s.log.Warn().Int64("deal_id", deal.ID).Msg("deal changed while being announced")
		s.metrics.AnnouncementsTotal.WithLabelValues("stale").Inc()
		return false, nil
	}
	deal.Announced = true

	s.metrics.AnnouncementsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Int64("deal_id", deal.ID).Str("project", deal.ProjectName()).Msg("deal announced")

	if err := s.events.PublishDealEvent(ctx, domain.DealEvent{Type: domain.EventDealAnnounced, Deal: deal}); err != nil {
		s.metrics.SideEffectErrorsTotal.WithLabelValues("event").Inc()
		s.log.Error().Err(err).Int64("deal_id", deal.ID).Msg("failed to publish announced event")
	}
	return true, nil
}

// ForceAnnounce publishes a specific pending deal right away.
func (s *Scheduler) ForceAnnounce(ctx context.Context, dealID int64) (*domain.Deal, error) {
	if err := s.running.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.running.Release(1)

	deal, err := s.deals.GetDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.Status != domain.DealPending {
		return nil, fmt.Errorf("%w: deal %d is %s", domain.ErrAlreadyDecided, deal.ID, deal.Status)
	}
	if deal.Announced {
		return nil, fmt.Errorf("%w: deal %d", domain.ErrAlreadyAnnounced, deal.ID)
	}

	marked, err := s.announce(ctx, deal)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, fmt.Errorf("%w: deal %d changed while being announced", domain.ErrAlreadyDecided, deal.ID)
	}
	return deal, nil
}

// ForceUnannounce queues a deal for the next tick again.
func (s *Scheduler) ForceUnannounce(ctx context.Context, dealID int64) (*domain.Deal, error) {
	if err := s.running.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.running.Release(1)

	if err := s.deals.UpdateDealField(ctx, dealID, domain.FieldAnnounced, false); err != nil {
		return nil, err
	}
	s.log.Info().Int64("deal_id", dealID).Msg("deal marked as unannounced")
	return s.deals.GetDealByID(ctx, dealID)
}
