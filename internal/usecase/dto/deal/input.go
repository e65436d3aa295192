package dealdto

import (
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/shopspring/decimal"
)

type SubmitDealInput struct {
	RequesterID   int64
	RequesterName string
	Address       string
	Amount        decimal.Decimal
	Summary       string
}

type ProposeDecisionInput struct {
	DealID   int64
	UserID   int64
	UserName string
	Action   domain.DecisionAction
}

type ConfirmDecisionInput struct {
	DealID int64
	UserID int64
}

// ListDealsInput filters by status when Status is set.
type ListDealsInput struct {
	Status *domain.DealStatus
}
