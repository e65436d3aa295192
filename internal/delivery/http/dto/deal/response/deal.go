package response

import (
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	dealdto "github.com/LavaJover/shvark-deal-service/internal/usecase/dto/deal"
	"github.com/shopspring/decimal"
)

type DealResponse struct {
	ID            int64           `json:"id"`
	ProjectName   string          `json:"project_name"`
	RequesterID   int64           `json:"requester_id"`
	RequesterName string          `json:"requester_name"`
	Address       string          `json:"address"`
	Amount        decimal.Decimal `json:"amount"`
	Summary       string          `json:"summary"`
	Status        string          `json:"status"`
	Announced     bool            `json:"announced"`
	TxHash        string          `json:"tx_hash,omitempty"`
	DecidedBy     int64           `json:"decided_by,omitempty"`
	DecidedAt     *time.Time      `json:"decided_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewDealResponse(d *domain.Deal) DealResponse {
	return DealResponse{
		ID:            d.ID,
		ProjectName:   d.ProjectName(),
		RequesterID:   d.RequesterID,
		RequesterName: d.RequesterName,
		Address:       d.Address,
		Amount:        d.Amount,
		Summary:       d.Summary,
		Status:        string(d.Status),
		Announced:     d.Announced,
		TxHash:        d.TxHash,
		DecidedBy:     d.DecidedBy,
		DecidedAt:     d.DecidedAt,
		CreatedAt:     d.CreatedAt,
	}
}

type DealsResponse struct {
	Deals []DealResponse `json:"deals"`
}

func NewDealsResponse(deals []*domain.Deal) DealsResponse {
	out := DealsResponse{Deals: make([]DealResponse, 0, len(deals))}
	for _, d := range deals {
		out.Deals = append(out.Deals, NewDealResponse(d))
	}
	return out
}

// DealsByStatusResponse mirrors the review group's view: pending first, then the decided ones.
type DealsByStatusResponse struct {
	Pending  []DealResponse `json:"pending"`
	Approved []DealResponse `json:"approved"`
	Rejected []DealResponse `json:"rejected"`
}

func NewDealsByStatusResponse(grouped *dealdto.DealsByStatusOutput) DealsByStatusResponse {
	return DealsByStatusResponse{
		Pending:  NewDealsResponse(grouped.Pending).Deals,
		Approved: NewDealsResponse(grouped.Approved).Deals,
		Rejected: NewDealsResponse(grouped.Rejected).Deals,
	}
}

// AnnounceResponse has a nil deal when nothing was waiting.
type AnnounceResponse struct {
	Deal *DealResponse `json:"deal"`
}
