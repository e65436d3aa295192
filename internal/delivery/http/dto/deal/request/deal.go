package request

import "github.com/shopspring/decimal"

type SubmitDealRequest struct {
	RequesterID   int64           `json:"requester_id"`
	RequesterName string          `json:"requester_name"`
	Address       string          `json:"address"`
	Amount        decimal.Decimal `json:"amount"`
	Summary       string          `json:"summary"`
}

type ProposeDecisionRequest struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Action   string `json:"action"`
}

// ActorRequest identifies who confirms, cancels or resets.
type ActorRequest struct {
	UserID int64 `json:"user_id"`
}
