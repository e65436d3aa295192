package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	dealdto "github.com/LavaJover/shvark-deal-service/internal/usecase/dto/deal"
)

// ProposeDecision records the first half of a decision. Nothing changes on the deal
// until the same user confirms.
func (uc *DefaultDealUsecase) ProposeDecision(ctx context.Context, input *dealdto.ProposeDecisionInput) (domain.Proposal, error) {
	if !input.Action.Valid() {
		return domain.Proposal{}, fmt.Errorf("%w: %q", domain.ErrInvalidAction, input.Action)
	}

	deal, err := uc.deals.GetDealByID(ctx, input.DealID)
	if err != nil {
		return domain.Proposal{}, err
	}
	if deal.Status != domain.DealPending {
		return domain.Proposal{}, fmt.Errorf("%w: deal %d is %s", domain.ErrAlreadyDecided, deal.ID, deal.Status)
	}

	proposal, err := uc.proposals.Propose(input.DealID, input.UserID, input.UserName, input.Action)
	if err != nil {
		return domain.Proposal{}, err
	}
	uc.metrics.ProposalsTotal.WithLabelValues(string(input.Action), "proposed").Inc()
	uc.log.Info().
		Int64("deal_id", input.DealID).
		Int64("user_id", input.UserID).
		Str("action", string(input.Action)).
		Str("proposal_id", proposal.ID).
		Msg("decision proposed")
	return proposal, nil
}

// ConfirmDecision consumes the caller's proposal and executes it. The proposal is gone
// afterwards whatever the result, so a failed attempt needs a fresh proposal.
func (uc *DefaultDealUsecase) ConfirmDecision(ctx context.Context, input *dealdto.ConfirmDecisionInput) (*domain.DecisionOutcome, error) {
	proposal, err := uc.proposals.Take(input.DealID, input.UserID)
	if err != nil {
		uc.metrics.ProposalsTotal.WithLabelValues("", "missing").Inc()
		return nil, err
	}
	uc.metrics.ProposalsTotal.WithLabelValues(string(proposal.Action), "confirmed").Inc()

	var outcome *domain.DecisionOutcome
	switch proposal.Action {
	case domain.ActionApprove:
		outcome, err = uc.approve(ctx, proposal)
	case domain.ActionReject:
		outcome, err = uc.reject(ctx, proposal)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrInvalidAction, proposal.Action)
	}

	uc.metrics.DecisionsTotal.WithLabelValues(string(proposal.Action), outcomeLabel(err)).Inc()
	if err != nil {
		uc.log.Warn().Err(err).
			Int64("deal_id", proposal.DealID).
			Int64("user_id", proposal.UserID).
			Str("action", string(proposal.Action)).
			Str("kind", string(domain.KindOf(err))).
			Msg("decision not applied")
		return nil, err
	}
	return outcome, nil
}

func (uc *DefaultDealUsecase) CancelDecision(ctx context.Context, dealID, userID int64) error {
	if !uc.proposals.Cancel(dealID, userID) {
		return domain.ErrNoPendingProposal
	}
	uc.metrics.ProposalsTotal.WithLabelValues("", "cancelled").Inc()
	uc.log.Info().Int64("deal_id", dealID).Int64("user_id", userID).Msg("decision cancelled")
	return nil
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return string(domain.KindOf(err))
}
