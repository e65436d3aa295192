package domain

import (
	"context"
	"time"
)

type Member struct {
	ID            int64
	ContributorID int64
	DisplayName   string
	Points        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PointsTransaction struct {
	ID            int64
	ContributorID int64
	Points        int64
	Reason        string
	CreatedAt     time.Time
}

type MemberRepository interface {
	// AddPoints upserts the member and appends a transaction row.
	AddPoints(ctx context.Context, contributorID int64, displayName string, points int64, reason string) error
	GetMember(ctx context.Context, contributorID int64) (*Member, error)
	Leaderboard(ctx context.Context, limit int) ([]*Member, error)
	ListTransactions(ctx context.Context, contributorID int64) ([]*PointsTransaction, error)
}
