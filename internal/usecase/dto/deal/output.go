package dealdto

import "github.com/LavaJover/shvark-deal-service/internal/domain"

type DealsByStatusOutput struct {
	Pending  []*domain.Deal
	Approved []*domain.Deal
	Rejected []*domain.Deal
}

func GroupByStatus(deals []*domain.Deal) *DealsByStatusOutput {
	out := &DealsByStatusOutput{}
	for _, d := range deals {
		switch d.Status {
		case domain.DealPending:
			out.Pending = append(out.Pending, d)
		case domain.DealApproved:
			out.Approved = append(out.Approved, d)
		case domain.DealRejected:
			out.Rejected = append(out.Rejected, d)
		}
	}
	return out
}
