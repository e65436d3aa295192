package mappers

import (
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/postgres/models"
)

func ToDomainDeal(model *models.DealModel) *domain.Deal {
	return &domain.Deal{
		ID:            model.ID,
		RequesterID:   model.RequesterID,
		RequesterName: model.RequesterName,
		Address:       model.Address,
		Amount:        model.Amount,
		Summary:       model.Summary,
		Status:        domain.DealStatus(model.Status),
		Announced:     model.Announced,
		TxHash:        model.TxHash,
		PayoutClaim:   model.PayoutClaim,
		DecidedBy:     model.DecidedBy,
		DecidedAt:     model.DecidedAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMDeal(deal *domain.Deal) *models.DealModel {
	return &models.DealModel{
		ID:            deal.ID,
		RequesterID:   deal.RequesterID,
		RequesterName: deal.RequesterName,
		Address:       deal.Address,
		Amount:        deal.Amount,
		Summary:       deal.Summary,
		Status:        string(deal.Status),
		Announced:     deal.Announced,
		TxHash:        deal.TxHash,
		PayoutClaim:   deal.PayoutClaim,
		DecidedBy:     deal.DecidedBy,
		DecidedAt:     deal.DecidedAt,
		CreatedAt:     deal.CreatedAt,
		UpdatedAt:     deal.UpdatedAt,
	}
}

func ToDomainDeals(dealModels []models.DealModel) []*domain.Deal {
	deals := make([]*domain.Deal, len(dealModels))
	for i := range dealModels {
		deals[i] = ToDomainDeal(&dealModels[i])
	}
	return deals
}
