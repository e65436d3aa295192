package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DealModel struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	RequesterID   int64 `gorm:"index;not null"`
	RequesterName string
	Address       string          `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(38,18);not null"`
	Summary       string
	Status        string `gorm:"index:idx_deals_status_announced;not null;default:pending"`
	Announced     bool   `gorm:"index:idx_deals_status_announced;not null;default:false"`
	TxHash        string
	PayoutClaim   string `gorm:"not null;default:''"`
	DecidedBy     int64
	DecidedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DealModel) TableName() string {
	return "deals"
}
