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
)

type DefaultDealRepository struct {
	DB *gorm.DB
}

func NewDefaultDealRepository(db *gorm.DB) *DefaultDealRepository {
	return &DefaultDealRepository{DB: db}
}

func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrDealNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func (r *DefaultDealRepository) CreateDeal(ctx context.Context, deal *domain.Deal) error {
	dealModel := mappers.ToGORMDeal(deal)
	if err := r.DB.WithContext(ctx).Create(dealModel).Error; err != nil {
		return storeErr(err)
	}
	*deal = *mappers.ToDomainDeal(dealModel)
	return nil
}

func (r *DefaultDealRepository) GetDealByID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	var dealModel models.DealModel
	if err := r.DB.WithContext(ctx).First(&dealModel, "id = ?", dealID).Error; err != nil {
		return nil, storeErr(err)
	}
	return mappers.ToDomainDeal(&dealModel), nil
}

func (r *DefaultDealRepository) ListAll(ctx context.Context) ([]*domain.Deal, error) {
	var dealModels []models.DealModel
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&dealModels).Error; err != nil {
		return nil, storeErr(err)
	}
	return mappers.ToDomainDeals(dealModels), nil
}

func (r *DefaultDealRepository) ListByStatus(ctx context.Context, status domain.DealStatus) ([]*domain.Deal, error) {
	var dealModels []models.DealModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&dealModels).Error; err != nil {
		return nil, storeErr(err)
	}
	return mappers.ToDomainDeals(dealModels), nil
}

func (r *DefaultDealRepository) ListByStatusAndAnnounced(ctx context.Context, status domain.DealStatus, announced bool) ([]*domain.Deal, error) {
	var dealModels []models.DealModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", string(status)).
		Where("announced = ?", announced).
		Order("created_at ASC").
		Order("id ASC").
		Find(&dealModels).Error; err != nil {
		return nil, storeErr(err)
	}
	return mappers.ToDomainDeals(dealModels), nil
}

func (r *DefaultDealRepository) UpdateDealStatus(ctx context.Context, dealID int64, from, to domain.DealStatus, decidedBy int64) (*domain.Deal, error) {
	now := time.Now()
	res := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Where("id = ?", dealID).
		Where("status = ?", string(from)).
		Where("payout_claim = ''").
		Updates(map[string]any{
			"status":     string(to),
			"decided_by": decidedBy,
			"decided_at": now,
		})
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, r.explainConflict(ctx, dealID)
	}
	return r.GetDealByID(ctx, dealID)
}

// explainConflict tells apart a missing row, a decided deal and an in-flight payout.
func (r *DefaultDealRepository) explainConflict(ctx context.Context, dealID int64) error {
	deal, err := r.GetDealByID(ctx, dealID)
	if err != nil {
		return err
	}
	if deal.Status == domain.DealPending && deal.PayoutClaim != "" {
		return domain.ErrPayoutInProgress
	}
	return domain.ErrAlreadyDecided
}

func (r *DefaultDealRepository) UpdateDealField(ctx context.Context, dealID int64, field domain.DealField, value any) error {
	switch field {
	case domain.FieldAnnounced:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: %s expects a bool", domain.ErrInvalidField, field)
		}
	default:
		return fmt.Errorf("%w: %s", domain.ErrInvalidField, field)
	}

	res := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Where("id = ?", dealID).
		Update(string(field), value)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrDealNotFound
	}
	return nil
}

func (r *DefaultDealRepository) MarkAnnounced(ctx context.Context, dealID int64) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Where("id = ?", dealID).
		Where("status = ?", string(domain.DealPending)).
		Where("announced = ?", false).
		Update("announced", true)
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *DefaultDealRepository) ClaimPayout(ctx context.Context, dealID int64, token string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Where("id = ?", dealID).
		Where("status = ?", string(domain.DealPending)).
		Where("payout_claim = ''").
		Update("payout_claim", token)
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *DefaultDealRepository) ReleasePayout(ctx context.Context, dealID int64, token string) error {
	res := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Where("id = ?", dealID).
		Where("payout_claim = ?", token).
		Update("payout_claim", "")
	if res.Error != nil {
		return storeErr(res.Error)
	}
	return nil
}

func (r *DefaultDealRepository) CompletePayout(ctx context.Context, dealID int64, token, txHash string, decidedBy int64) (*domain.Deal, error) {
	now := time.Now()
	res := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Where("id = ?", dealID).
		Where("status = ?", string(domain.DealPending)).
		Where("payout_claim = ?", token).
		Updates(map[string]any{
			"status":       string(domain.DealApproved),
			"tx_hash":      txHash,
			"payout_claim": "",
			"decided_by":   decidedBy,
			"decided_at":   now,
		})
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: payout claim lost", domain.ErrAlreadyDecided)
	}
	return r.GetDealByID(ctx, dealID)
}

func (r *DefaultDealRepository) ResetDeal(ctx context.Context, dealID int64, expectedClaim string) (*domain.Deal, error) {
	res := r.DB.WithContext(ctx).Model(&models.DealModel{}).
		Where("id = ? AND payout_claim = ?", dealID, expectedClaim).
		Updates(map[string]any{
			"status":       string(domain.DealPending),
			"announced":    true,
			"payout_claim": "",
			"decided_by":   0,
			"decided_at":   nil,
		})
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetDealByID(ctx, dealID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: deal %d payout claim changed during reset", domain.ErrPayoutInProgress, dealID)
	}
	return r.GetDealByID(ctx, dealID)
}
