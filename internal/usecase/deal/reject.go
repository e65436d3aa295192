package usecase

import (
	"context"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
)

func (uc *DefaultDealUsecase) reject(ctx context.Context, p domain.Proposal) (*domain.DecisionOutcome, error) {
	deal, err := uc.deals.UpdateDealStatus(ctx, p.DealID, domain.DealPending, domain.DealRejected, p.UserID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("deal_id", deal.ID).Int64("reviewer_id", p.UserID).Msg("deal rejected")

	outcome := &domain.DecisionOutcome{Deal: deal, Action: domain.ActionReject}
	uc.afterReject(context.WithoutCancel(ctx), outcome, p)
	return outcome, nil
}
