package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	dealdto "github.com/LavaJover/shvark-deal-service/internal/usecase/dto/deal"
)

func (uc *DefaultDealUsecase) SubmitDeal(ctx context.Context, input *dealdto.SubmitDealInput) (*domain.Deal, error) {
	address := strings.TrimSpace(input.Address)
	if err := domain.ValidateAddress(address); err != nil {
		return nil, fmt.Errorf("%w: %q", err, input.Address)
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, fmt.Errorf("%w: %s", err, input.Amount)
	}

	deal := &domain.Deal{
		RequesterID:   input.RequesterID,
		RequesterName: input.RequesterName,
		Address:       address,
		Amount:        input.Amount,
		Summary:       strings.TrimSpace(input.Summary),
		Status:        domain.DealPending,
	}
	if err := uc.deals.CreateDeal(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	uc.log.Info().
		Int64("deal_id", deal.ID).
		Int64("requester_id", deal.RequesterID).
		Str("amount", deal.Amount.String()).
		Msg("deal submitted")
	return deal, nil
}
