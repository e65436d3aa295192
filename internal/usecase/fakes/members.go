package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
)

type MemberRepository struct {
	mu      sync.Mutex
	members []*domain.Member
	txs     []*domain.PointsTransaction
	Err     error
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

func (m *MemberRepository) AddPoints(_ context.Context, contributorID int64, displayName string, points int64, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	var member *domain.Member
	for _, existing := range m.members {
		if existing.ContributorID == contributorID {
			member = existing
		}
	}
	if member == nil {
		m.members = append(m.members, &domain.Member{
			ID:            int64(len(m.members) + 1),
			ContributorID: contributorID,
			DisplayName:   displayName,
			Points:        points,
		})
	} else {
		member.Points += points
		member.DisplayName = displayName
	}
	m.txs = append(m.txs, &domain.PointsTransaction{
		ID:            int64(len(m.txs) + 1),
		ContributorID: contributorID,
		Points:        points,
		Reason:        reason,
	})
	return nil
}

func (m *MemberRepository) GetMember(_ context.Context, contributorID int64) (*domain.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range m.members {
		if member.ContributorID == contributorID {
			c := *member
			return &c, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

// Leaderboard orders by points descending; insertion order breaks ties.
func (m *MemberRepository) Leaderboard(_ context.Context, limit int) ([]*domain.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Member, 0, len(m.members))
	for _, member := range m.members {
		c := *member
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemberRepository) ListTransactions(_ context.Context, contributorID int64) ([]*domain.PointsTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.PointsTransaction
	for _, tx := range m.txs {
		if tx.ContributorID == contributorID {
			c := *tx
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *MemberRepository) TransactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txs)
}
