package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/google/uuid"
)

// approve pays the deal out at most once: claim the payout slot, send, then commit the
// status under the same claim. Secondary effects only run after the commit.
func (uc *DefaultDealUsecase) approve(ctx context.Context, p domain.Proposal) (*domain.DecisionOutcome, error) {
	deal, err := uc.deals.GetDealByID(ctx, p.DealID)
	if err != nil {
		return nil, err
	}
	if err := checkPending(deal); err != nil {
		return nil, err
	}
	if err := domain.ValidateAddress(deal.Address); err != nil {
		return nil, fmt.Errorf("deal %d: %w", deal.ID, err)
	}
	if err := domain.ValidateAmount(deal.Amount); err != nil {
		return nil, fmt.Errorf("deal %d: %w", deal.ID, err)
	}

	balance, err := uc.payments.GetTreasuryBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch treasury balance: %w", asPaymentErr(err))
	}
	if balance.LessThan(deal.Amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", domain.ErrInsufficientFunds, balance, deal.Amount)
	}

	token := uuid.NewString()
	claimed, err := uc.deals.ClaimPayout(ctx, deal.ID, token)
	if err != nil {
		return nil, fmt.Errorf("failed to claim payout: %w", err)
	}
	if !claimed {
		return nil, uc.explainLostClaim(ctx, deal.ID)
	}

	log := uc.log.With().Int64("deal_id", deal.ID).Str("claim", token).Logger()

	// Past this point the transfer may go out, so the rest of the pipeline must not
	// be cut short by the caller going away.
	ctx = context.WithoutCancel(ctx)

	started := time.Now()
	txHash, err := uc.payments.Send(ctx, deal.Address, deal.Amount)
	uc.metrics.PayoutDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		uc.metrics.PayoutsTotal.WithLabelValues("error").Inc()
		if releaseErr := uc.deals.ReleasePayout(ctx, deal.ID, token); releaseErr != nil {
			log.Error().Err(releaseErr).Msg("failed to release payout claim; deal needs an admin reset")
		}
		uc.publishEvent(ctx, domain.DealEvent{
			Type:    domain.EventPayoutFailed,
			Deal:    deal,
			ActorID: p.UserID,
			Reason:  err.Error(),
		})
		log.Warn().Err(err).Msg("payout failed, deal left pending")
		return nil, fmt.Errorf("payout for deal %d failed: %w", deal.ID, asPaymentErr(err))
	}
	uc.metrics.PayoutsTotal.WithLabelValues("ok").Inc()
	uc.metrics.PayoutAmountTotal.Add(deal.Amount.InexactFloat64())
	log.Info().Str("tx_hash", txHash).Str("amount", deal.Amount.String()).Msg("payout sent")

	committed, err := uc.deals.CompletePayout(ctx, deal.ID, token, txHash, p.UserID)
	if err != nil {
		uc.metrics.PartialFailuresTotal.Inc()
		log.Error().Err(err).
			Str("tx_hash", txHash).
			Bool("reconciliation_required", true).
			Msg("payout sent but deal status not committed")
		uc.publishEvent(ctx, domain.DealEvent{
			Type:    domain.EventPayoutUnconfirmed,
			Deal:    deal,
			ActorID: p.UserID,
			TxHash:  txHash,
			Reason:  err.Error(),
		})
		return nil, &domain.PartialFailureError{
			DealID: deal.ID,
			TxHash: txHash,
			Step:   "status commit",
			Err:    err,
		}
	}

	outcome := &domain.DecisionOutcome{Deal: committed, Action: domain.ActionApprove, TxHash: txHash}
	uc.afterApprove(ctx, outcome, p)
	return outcome, nil
}

func checkPending(deal *domain.Deal) error {
	if deal.Status != domain.DealPending {
		return fmt.Errorf("%w: deal %d is %s", domain.ErrAlreadyDecided, deal.ID, deal.Status)
	}
	if deal.PayoutClaim != "" {
		return fmt.Errorf("deal %d: %w", deal.ID, domain.ErrPayoutInProgress)
	}
	return nil
}

// explainLostClaim reports why another caller holds the deal.
func (uc *DefaultDealUsecase) explainLostClaim(ctx context.Context, dealID int64) error {
	current, err := uc.deals.GetDealByID(ctx, dealID)
	if err != nil {
		return fmt.Errorf("deal %d: %w", dealID, domain.ErrPayoutInProgress)
	}
	if err := checkPending(current); err != nil {
		return err
	}
	return fmt.Errorf("deal %d: %w", dealID, domain.ErrPayoutInProgress)
}

func asPaymentErr(err error) error {
	if errors.Is(err, domain.ErrPaymentFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPaymentFailed, err)
}
