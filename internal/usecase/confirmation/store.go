// Package confirmation holds reviewers' proposed decisions until they confirm or cancel them.
package confirmation

import (
	"fmt"
	"sync"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jaevor/go-nanoid"
)

type key struct {
	userID int64
	dealID int64
}

// Store keys proposals by (acting user, deal). Entries expire after the TTL and the
// oldest entries are evicted once the size bound is hit.
type Store struct {
	mu        sync.Mutex
	proposals *lru.LRU[key, domain.Proposal]
	ttl       time.Duration
	newID     func() string
	now       func() time.Time
}

func NewStore(size int, ttl time.Duration) (*Store, error) {
	if size <= 0 {
		return nil, fmt.Errorf("confirmation store size must be positive, got %d", size)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("confirmation ttl must be positive, got %s", ttl)
	}
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	return &Store{
		proposals: lru.NewLRU[key, domain.Proposal](size, nil, ttl),
		ttl:       ttl,
		newID:     idGenerator,
		now:       time.Now,
	}, nil
}

// Propose records a decision awaiting confirmation, replacing any earlier proposal
// by the same user for the same deal.
func (s *Store) Propose(dealID, userID int64, userName string, action domain.DecisionAction) (domain.Proposal, error) {
	if !action.Valid() {
		return domain.Proposal{}, fmt.Errorf("%w: %q", domain.ErrInvalidAction, action)
	}

	now := s.now()
	proposal := domain.Proposal{
		ID:        s.newID(),
		DealID:    dealID,
		UserID:    userID,
		UserName:  userName,
		Action:    action,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals.Add(key{userID: userID, dealID: dealID}, proposal)
	return proposal, nil
}

// Take removes and returns the proposal. Only one caller can take a given proposal.
func (s *Store) Take(dealID, userID int64) (domain.Proposal, error) {
	k := key{userID: userID, dealID: dealID}

	s.mu.Lock()
	defer s.mu.Unlock()
	proposal, ok := s.proposals.Get(k)
	if !ok {
		return domain.Proposal{}, domain.ErrNoPendingProposal
	}
	s.proposals.Remove(k)
	if !proposal.ExpiresAt.After(s.now()) {
		return domain.Proposal{}, domain.ErrNoPendingProposal
	}
	return proposal, nil
}

// Cancel clears the proposal and reports whether one existed.
func (s *Store) Cancel(dealID, userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposals.Remove(key{userID: userID, dealID: dealID})
}
