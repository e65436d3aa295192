package logger

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"gorm.io/gorm"
)

// DealEventRecord is one row of the deal audit trail.
type DealEventRecord struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Type       string `gorm:"not null"`
	DealID     int64  `gorm:"index;not null"`
	Status     string
	ActorID    int64
	Amount     string
	TxHash     string
	Reason     string
	OccurredAt time.Time `gorm:"not null"`
}

func (DealEventRecord) TableName() string {
	return "deal_events"
}

func newDealEventRecord(event domain.DealEvent, now time.Time) *DealEventRecord {
	record := &DealEventRecord{
		Type:       string(event.Type),
		ActorID:    event.ActorID,
		TxHash:     event.TxHash,
		Reason:     event.Reason,
		OccurredAt: now.UTC(),
	}
	if deal := event.Deal; deal != nil {
		record.DealID = deal.ID
		record.Status = string(deal.Status)
		record.Amount = deal.Amount.String()
		if record.TxHash == "" {
			record.TxHash = deal.TxHash
		}
	}
	return record
}

// PGDealEventLogger keeps every lifecycle event in postgres, so payouts can be
// reconciled even when the broker is down.
type PGDealEventLogger struct {
	db *gorm.DB
}

func NewPGDealEventLogger(db *gorm.DB) *PGDealEventLogger {
	return &PGDealEventLogger{db: db}
}

func (l *PGDealEventLogger) PublishDealEvent(ctx context.Context, event domain.DealEvent) error {
	return l.db.WithContext(ctx).Create(newDealEventRecord(event, time.Now())).Error
}
