package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultMemberRepository struct {
	DB *gorm.DB
}

func NewDefaultMemberRepository(db *gorm.DB) *DefaultMemberRepository {
	return &DefaultMemberRepository{DB: db}
}

// AddPoints upserts the member row and appends the transaction in one DB transaction
// so the running total always matches the sum of transactions.
func (r *DefaultMemberRepository) AddPoints(ctx context.Context, contributorID int64, displayName string, points int64, reason string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member := models.MemberModel{
			ContributorID: contributorID,
			DisplayName:   displayName,
			Points:        points,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "contributor_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"points":       gorm.Expr("members.points + ?", points),
				"display_name": displayName,
				"updated_at":   time.Now(),
			}),
		}).Create(&member).Error; err != nil {
			return fmt.Errorf("upsert member: %w", err)
		}

		if err := tx.Create(&models.PointsTransactionModel{
			ContributorID: contributorID,
			Points:        points,
			Reason:        reason,
		}).Error; err != nil {
			return fmt.Errorf("append points transaction: %w", err)
		}
		return nil
	})
}

func (r *DefaultMemberRepository) GetMember(ctx context.Context, contributorID int64) (*domain.Member, error) {
	var member models.MemberModel
	if err := r.DB.WithContext(ctx).First(&member, "contributor_id = ?", contributorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return mappers.ToDomainMember(&member), nil
}

func (r *DefaultMemberRepository) Leaderboard(ctx context.Context, limit int) ([]*domain.Member, error) {
	var memberModels []models.MemberModel
	if err := r.DB.WithContext(ctx).
		Order("points DESC").
		Order("id ASC").
		Limit(limit).
		Find(&memberModels).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	members := make([]*domain.Member, len(memberModels))
	for i := range memberModels {
		members[i] = mappers.ToDomainMember(&memberModels[i])
	}
	return members, nil
}

func (r *DefaultMemberRepository) ListTransactions(ctx context.Context, contributorID int64) ([]*domain.PointsTransaction, error) {
	var txModels []models.PointsTransactionModel
	if err := r.DB.WithContext(ctx).
		Where("contributor_id = ?", contributorID).
		Order("id ASC").
		Find(&txModels).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	txs := make([]*domain.PointsTransaction, len(txModels))
	for i := range txModels {
		txs[i] = mappers.ToDomainPointsTransaction(&txModels[i])
	}
	return txs, nil
}
