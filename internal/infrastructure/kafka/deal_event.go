package publisher

import (
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/google/uuid"
)

type DealEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	DealID      int64     `json:"deal_id"`
	Status      string    `json:"status"`
	RequesterID int64     `json:"requester_id"`
	Address     string    `json:"address"`
	Amount      string    `json:"amount"`
	ActorID     int64     `json:"actor_id,omitempty"`
	TxHash      string    `json:"tx_hash,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewDealEvent(event domain.DealEvent, now time.Time) DealEvent {
	out := DealEvent{
		EventID:    uuid.New().String(),
		Type:       string(event.Type),
		ActorID:    event.ActorID,
		TxHash:     event.TxHash,
		Reason:     event.Reason,
		OccurredAt: now.UTC(),
	}
	if deal := event.Deal; deal != nil {
		out.DealID = deal.ID
		out.Status = string(deal.Status)
		out.RequesterID = deal.RequesterID
		out.Address = deal.Address
		out.Amount = deal.Amount.String()
		if out.TxHash == "" {
			out.TxHash = deal.TxHash
		}
	}
	return out
}
