package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/messages"
)

const (
	effectPoints       = "points"
	effectNotifyUser   = "notify_requester"
	effectNotifyGroup  = "notify_group"
	effectPublishEvent = "event"
)

// Post-commit effects. Each one is attempted independently; failures are recorded
// on the outcome and never change the decision.

func (uc *DefaultDealUsecase) afterApprove(ctx context.Context, outcome *domain.DecisionOutcome, p domain.Proposal) {
	deal := outcome.Deal
	if !uc.ledger.Award(ctx, p.UserID, p.UserName, uc.points.Approve, fmt.Sprintf("Executed deal #%d", deal.ID)) {
		uc.sideEffectFailed(outcome, effectPoints, nil)
	}
	uc.notify(ctx, outcome, effectNotifyUser, domain.User(deal.RequesterID), messages.RequesterApproved(deal, outcome.TxHash))
	uc.notify(ctx, outcome, effectNotifyGroup, domain.ReviewGroup(), messages.GroupApproved(deal, p.UserName, outcome.TxHash))
	uc.publishOutcome(ctx, outcome, domain.DealEvent{
		Type:    domain.EventDealApproved,
		Deal:    deal,
		ActorID: p.UserID,
		TxHash:  outcome.TxHash,
	})
}

func (uc *DefaultDealUsecase) afterReject(ctx context.Context, outcome *domain.DecisionOutcome, p domain.Proposal) {
	deal := outcome.Deal
	if !uc.ledger.Award(ctx, p.UserID, p.UserName, uc.points.Reject, fmt.Sprintf("Rejected deal #%d", deal.ID)) {
		uc.sideEffectFailed(outcome, effectPoints, nil)
	}
	uc.notify(ctx, outcome, effectNotifyUser, domain.User(deal.RequesterID), messages.RequesterRejected(deal))
	uc.notify(ctx, outcome, effectNotifyGroup, domain.ReviewGroup(), messages.GroupRejected(deal, p.UserName))
	uc.publishOutcome(ctx, outcome, domain.DealEvent{
		Type:    domain.EventDealRejected,
		Deal:    deal,
		ActorID: p.UserID,
	})
}

func (uc *DefaultDealUsecase) notify(ctx context.Context, outcome *domain.DecisionOutcome, effect string, to domain.Recipient, text string) {
	if to.Kind == domain.RecipientUser && to.UserID == 0 {
		return
	}
	if err := uc.notifier.Publish(ctx, to, text); err != nil {
		uc.sideEffectFailed(outcome, effect, err)
	}
}

func (uc *DefaultDealUsecase) publishOutcome(ctx context.Context, outcome *domain.DecisionOutcome, event domain.DealEvent) {
	if err := uc.events.PublishDealEvent(ctx, event); err != nil {
		uc.sideEffectFailed(outcome, effectPublishEvent, err)
	}
}

// publishEvent is for events outside a committed decision, where there is no outcome to report on.
func (uc *DefaultDealUsecase) publishEvent(ctx context.Context, event domain.DealEvent) {
	if err := uc.events.PublishDealEvent(ctx, event); err != nil {
		uc.metrics.SideEffectErrorsTotal.WithLabelValues(effectPublishEvent).Inc()
		uc.log.Error().Err(err).Str("event", string(event.Type)).Msg("failed to publish deal event")
	}
}

func (uc *DefaultDealUsecase) sideEffectFailed(outcome *domain.DecisionOutcome, effect string, err error) {
	outcome.SideEffectFailures = append(outcome.SideEffectFailures, effect)
	uc.metrics.SideEffectErrorsTotal.WithLabelValues(effect).Inc()
	if err != nil {
		uc.log.Error().Err(err).
			Int64("deal_id", outcome.Deal.ID).
			Str("effect", effect).
			Msg("post-decision side effect failed")
	}
}
