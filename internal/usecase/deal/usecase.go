// Package usecase drives a deal from submission through a confirmed decision to payout.
package usecase

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/metrics"
	dealdto "github.com/LavaJover/shvark-deal-service/internal/usecase/dto/deal"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type DealUsecase interface {
	SubmitDeal(ctx context.Context, input *dealdto.SubmitDealInput) (*domain.Deal, error)
	GetDeal(ctx context.Context, dealID int64) (*domain.Deal, error)
	ListDeals(ctx context.Context, input *dealdto.ListDealsInput) ([]*domain.Deal, error)
	ProposeDecision(ctx context.Context, input *dealdto.ProposeDecisionInput) (domain.Proposal, error)
	ConfirmDecision(ctx context.Context, input *dealdto.ConfirmDecisionInput) (*domain.DecisionOutcome, error)
	CancelDecision(ctx context.Context, dealID, userID int64) error
	ResetToPending(ctx context.Context, dealID, actorID int64) (*domain.Deal, error)
	GetTreasuryBalance(ctx context.Context) (decimal.Decimal, error)
	FindStuckPayouts(ctx context.Context, olderThan time.Duration) ([]*domain.Deal, error)
}

type ProposalStore interface {
	Propose(dealID, userID int64, userName string, action domain.DecisionAction) (domain.Proposal, error)
	Take(dealID, userID int64) (domain.Proposal, error)
	Cancel(dealID, userID int64) bool
}

type PointsAwarder interface {
	Award(ctx context.Context, contributorID int64, displayName string, points int64, reason string) bool
}

type Points struct {
	Approve int64
	Reject  int64
}

type DefaultDealUsecase struct {
	deals      domain.DealRepository
	payments   domain.PaymentExecutor
	notifier   domain.Notifier
	events     domain.EventPublisher
	proposals  ProposalStore
	ledger     PointsAwarder
	points     Points
	stuckAfter time.Duration
	metrics    *metrics.DealMetrics
	log        zerolog.Logger
}

// NewDefaultDealUsecase builds the controller. A payout claim younger than stuckAfter
// is treated as a send that may still be in flight.
func NewDefaultDealUsecase(
	deals domain.DealRepository,
	payments domain.PaymentExecutor,
	notifier domain.Notifier,
	events domain.EventPublisher,
	proposals ProposalStore,
	ledger PointsAwarder,
	points Points,
	stuckAfter time.Duration,
	m *metrics.DealMetrics,
	log zerolog.Logger,
) *DefaultDealUsecase {
	return &DefaultDealUsecase{
		deals:      deals,
		payments:   payments,
		notifier:   notifier,
		events:     events,
		proposals:  proposals,
		ledger:     ledger,
		points:     points,
		stuckAfter: stuckAfter,
		metrics:    m,
		log:        log.With().Str("component", "deal").Logger(),
	}
}
