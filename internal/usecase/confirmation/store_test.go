package confirmation

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := NewStore(100, ttl)
	require.NoError(t, err)
	return s
}

func TestProposalOnlyConfirmableBySameUserAndDeal(t *testing.T) {
	s := newTestStore(t, time.Minute)
	_, err := s.Propose(7, 1, "alice", domain.ActionApprove)
	require.NoError(t, err)

	_, err = s.Take(7, 2)
	require.ErrorIs(t, err, domain.ErrNoPendingProposal, "another user must not confirm")

	_, err = s.Take(8, 1)
	require.ErrorIs(t, err, domain.ErrNoPendingProposal, "a different deal must not match")

	p, err := s.Take(7, 1)
	require.NoError(t, err)
	require.Equal(t, domain.ActionApprove, p.Action)
	require.Equal(t, "alice", p.UserName)
	require.NotEmpty(t, p.ID)
}

func TestTakeConsumesProposal(t *testing.T) {
	s := newTestStore(t, time.Minute)
	_, err := s.Propose(7, 1, "alice", domain.ActionReject)
	require.NoError(t, err)

	_, err = s.Take(7, 1)
	require.NoError(t, err)
	_, err = s.Take(7, 1)
	require.ErrorIs(t, err, domain.ErrNoPendingProposal)
}

func TestProposeReplacesEarlierProposal(t *testing.T) {
	s := newTestStore(t, time.Minute)
	_, err := s.Propose(7, 1, "alice", domain.ActionApprove)
	require.NoError(t, err)
	_, err = s.Propose(7, 1, "alice", domain.ActionReject)
	require.NoError(t, err)

	p, err := s.Take(7, 1)
	require.NoError(t, err)
	require.Equal(t, domain.ActionReject, p.Action)
	_, err = s.Take(7, 1)
	require.ErrorIs(t, err, domain.ErrNoPendingProposal)
}

func TestProposalsOfDifferentUsersAreIndependent(t *testing.T) {
	s := newTestStore(t, time.Minute)
	_, err := s.Propose(7, 1, "alice", domain.ActionApprove)
	require.NoError(t, err)
	_, err = s.Propose(7, 2, "bob", domain.ActionReject)
	require.NoError(t, err)

	require.True(t, s.Cancel(7, 1))
	p, err := s.Take(7, 2)
	require.NoError(t, err)
	require.Equal(t, domain.ActionReject, p.Action)
}

func TestCancelClearsProposal(t *testing.T) {
	s := newTestStore(t, time.Minute)
	_, err := s.Propose(7, 1, "alice", domain.ActionApprove)
	require.NoError(t, err)

	require.True(t, s.Cancel(7, 1))
	require.False(t, s.Cancel(7, 1))
	_, err = s.Take(7, 1)
	require.ErrorIs(t, err, domain.ErrNoPendingProposal)
}

func TestProposalExpires(t *testing.T) {
	s := newTestStore(t, time.Minute)
	base := time.Now()
	s.now = func() time.Time { return base }
	_, err := s.Propose(7, 1, "alice", domain.ActionApprove)
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = s.Take(7, 1)
	require.ErrorIs(t, err, domain.ErrNoPendingProposal)
}

func TestProposalExpiresFromUnderlyingCache(t *testing.T) {
	s := newTestStore(t, 20*time.Millisecond)
	_, err := s.Propose(7, 1, "alice", domain.ActionApprove)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return s.proposals.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestProposeRejectsUnknownAction(t *testing.T) {
	s := newTestStore(t, time.Minute)
	_, err := s.Propose(7, 1, "alice", domain.DecisionAction("abstain"))
	require.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestConcurrentTakeYieldsSingleWinner(t *testing.T) {
	s := newTestStore(t, time.Minute)
	_, err := s.Propose(7, 1, "alice", domain.ActionApprove)
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(7, 1); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), wins.Load())
}

func TestNewStoreValidatesBounds(t *testing.T) {
	_, err := NewStore(0, time.Minute)
	require.Error(t, err)
	_, err = NewStore(10, 0)
	require.Error(t, err)
}
