package mappers

import (
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/postgres/models"
)

func ToDomainMember(model *models.MemberModel) *domain.Member {
	return &domain.Member{
		ID:            model.ID,
		ContributorID: model.ContributorID,
		DisplayName:   model.DisplayName,
		Points:        model.Points,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToDomainPointsTransaction(model *models.PointsTransactionModel) *domain.PointsTransaction {
	return &domain.PointsTransaction{
		ID:            model.ID,
		ContributorID: model.ContributorID,
		Points:        model.Points,
		Reason:        model.Reason,
		CreatedAt:     model.CreatedAt,
	}
}
