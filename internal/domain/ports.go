package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type PaymentExecutor interface {
	GetTreasuryBalance(ctx context.Context) (decimal.Decimal, error)
	// Send returns once the transfer is broadcast-accepted, not finalized.
	Send(ctx context.Context, address string, amount decimal.Decimal) (string, error)
}

type RecipientKind string

const (
	RecipientReviewGroup RecipientKind = "review_group"
	RecipientUser        RecipientKind = "user"
)

type Recipient struct {
	Kind   RecipientKind
	UserID int64
}

func ReviewGroup() Recipient {
	return Recipient{Kind: RecipientReviewGroup}
}

func User(userID int64) Recipient {
	return Recipient{Kind: RecipientUser, UserID: userID}
}

type Notifier interface {
	Publish(ctx context.Context, to Recipient, text string) error
}

type DealEventType string

const (
	EventDealAnnounced     DealEventType = "deal_announced"
	EventDealApproved      DealEventType = "deal_approved"
	EventDealRejected      DealEventType = "deal_rejected"
	EventPayoutFailed      DealEventType = "payout_failed"
	EventPayoutUnconfirmed DealEventType = "payout_unconfirmed"
	EventDealReset         DealEventType = "deal_reset"
)

type DealEvent struct {
	Type    DealEventType
	Deal    *Deal
	ActorID int64
	TxHash  string
	Reason  string
}

type EventPublisher interface {
	PublishDealEvent(ctx context.Context, event DealEvent) error
}
