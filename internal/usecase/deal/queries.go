package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	dealdto "github.com/LavaJover/shvark-deal-service/internal/usecase/dto/deal"
	"github.com/shopspring/decimal"
)

func (uc *DefaultDealUsecase) GetDeal(ctx context.Context, dealID int64) (*domain.Deal, error) {
	return uc.deals.GetDealByID(ctx, dealID)
}

// ListDeals returns deals newest first, optionally restricted to one status.
func (uc *DefaultDealUsecase) ListDeals(ctx context.Context, input *dealdto.ListDealsInput) ([]*domain.Deal, error) {
	if input == nil || input.Status == nil {
		return uc.deals.ListAll(ctx)
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidField, *input.Status)
	}
	return uc.deals.ListByStatus(ctx, *input.Status)
}

func (uc *DefaultDealUsecase) GetTreasuryBalance(ctx context.Context) (decimal.Decimal, error) {
	return uc.payments.GetTreasuryBalance(ctx)
}
