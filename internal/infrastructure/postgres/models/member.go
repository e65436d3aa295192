package models

import "time"

type MemberModel struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	ContributorID int64 `gorm:"uniqueIndex;not null"`
	DisplayName   string
	Points        int64 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (MemberModel) TableName() string {
	return "members"
}

type PointsTransactionModel struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	ContributorID int64 `gorm:"index;not null"`
	Points        int64 `gorm:"not null"`
	Reason        string
	CreatedAt     time.Time
}

func (PointsTransactionModel) TableName() string {
	return "points_transactions"
}
