package response

import (
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/shopspring/decimal"
)

type MemberResponse struct {
	Rank          int    `json:"rank,omitempty"`
	ContributorID int64  `json:"contributor_id"`
	DisplayName   string `json:"display_name"`
	Points        int64  `json:"points"`
}

type LeaderboardResponse struct {
	Members []MemberResponse `json:"members"`
}

func NewLeaderboardResponse(members []*domain.Member) LeaderboardResponse {
	out := LeaderboardResponse{Members: make([]MemberResponse, 0, len(members))}
	for i, m := range members {
		out.Members = append(out.Members, MemberResponse{
			Rank:          i + 1,
			ContributorID: m.ContributorID,
			DisplayName:   m.DisplayName,
			Points:        m.Points,
		})
	}
	return out
}

type TreasuryResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type ErrorResponse struct {
	Error                  string `json:"error"`
	Message                string `json:"message"`
	ReconciliationRequired bool   `json:"reconciliation_required,omitempty"`
	TxHash                 string `json:"tx_hash,omitempty"`
}
