package domain

import "time"

type DecisionAction string

const (
	ActionApprove DecisionAction = "approve"
	ActionReject  DecisionAction = "reject"
)

func (a DecisionAction) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

// Proposal is a reviewer's not-yet-confirmed decision on one deal.
type Proposal struct {
	ID        string
	DealID    int64
	UserID    int64
	UserName  string
	Action    DecisionAction
	CreatedAt time.Time
	ExpiresAt time.Time
}

type DecisionOutcome struct {
	Deal               *Deal
	Action             DecisionAction
	TxHash             string
	SideEffectFailures []string
}
