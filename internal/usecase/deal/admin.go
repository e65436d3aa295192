package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
)

// ResetToPending reopens a decided deal for review. The deal stays announced and an
// existing tx hash is kept for the record. A payout claim is only dropped once it is
// old enough to be reported as stuck; a younger one may still have a send in flight.
func (uc *DefaultDealUsecase) ResetToPending(ctx context.Context, dealID, actorID int64) (*domain.Deal, error) {
	before, err := uc.deals.GetDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	if before.PayoutClaim != "" {
		if age := time.Since(before.UpdatedAt); age < uc.stuckAfter {
			return nil, fmt.Errorf("%w: deal %d was claimed %s ago", domain.ErrPayoutInProgress, dealID, age.Round(time.Second))
		}
	}

	deal, err := uc.deals.ResetDeal(ctx, dealID, before.PayoutClaim)
	if err != nil {
		return nil, fmt.Errorf("failed to reset deal %d: %w", dealID, err)
	}

	logEvent := uc.log.Warn().
		Int64("deal_id", dealID).
		Int64("actor_id", actorID).
		Str("previous_status", string(before.Status))
	if before.PayoutClaim != "" {
		logEvent = logEvent.Str("dropped_claim", before.PayoutClaim)
	}
	logEvent.Msg("deal reset to pending")

	uc.publishEvent(ctx, domain.DealEvent{
		Type:    domain.EventDealReset,
		Deal:    deal,
		ActorID: actorID,
		Reason:  "previous status " + string(before.Status),
	})
	return deal, nil
}

// FindStuckPayouts lists pending deals whose payout claim has not moved for at least
// olderThan. Such a deal may have been paid without the status being committed.
func (uc *DefaultDealUsecase) FindStuckPayouts(ctx context.Context, olderThan time.Duration) ([]*domain.Deal, error) {
	pending, err := uc.deals.ListByStatus(ctx, domain.DealPending)
	if err != nil {
		return nil, err
	}
	var stuck []*domain.Deal
	for _, d := range pending {
		if d.PayoutClaim != "" && time.Since(d.UpdatedAt) >= olderThan {
			stuck = append(stuck, d)
		}
	}
	return stuck, nil
}
