package response

import (
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
)

type ProposalResponse struct {
	ID        string    `json:"id"`
	DealID    int64     `json:"deal_id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewProposalResponse(p domain.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:        p.ID,
		DealID:    p.DealID,
		UserID:    p.UserID,
		Action:    string(p.Action),
		ExpiresAt: p.ExpiresAt,
	}
}

type OutcomeResponse struct {
	Deal               DealResponse `json:"deal"`
	Action             string       `json:"action"`
	TxHash             string       `json:"tx_hash,omitempty"`
	SideEffectFailures []string     `json:"side_effect_failures,omitempty"`
}

func NewOutcomeResponse(o *domain.DecisionOutcome) OutcomeResponse {
	return OutcomeResponse{
		Deal:               NewDealResponse(o.Deal),
		Action:             string(o.Action),
		TxHash:             o.TxHash,
		SideEffectFailures: o.SideEffectFailures,
	}
}
