package reputation

import (
	"context"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

type Ledger struct {
	members domain.MemberRepository
	metrics *metrics.DealMetrics
	log     zerolog.Logger
}

func NewLedger(members domain.MemberRepository, m *metrics.DealMetrics, log zerolog.Logger) *Ledger {
	return &Ledger{
		members: members,
		metrics: m,
		log:     log.With().Str("component", "reputation").Logger(),
	}
}

// Award credits points to a contributor. Failures are logged and reported as false,
// never returned: bookkeeping must not fail the caller's primary workflow.
func (l *Ledger) Award(ctx context.Context, contributorID int64, displayName string, points int64, reason string) bool {
	if contributorID == 0 {
		l.log.Error().Str("reason", reason).Msg("cannot award points: missing contributor id")
		l.metrics.PointsAwardedTotal.WithLabelValues("skipped").Inc()
		return false
	}

	if err := l.members.AddPoints(ctx, contributorID, displayName, points, reason); err != nil {
		l.log.Error().Err(err).
			Int64("contributor_id", contributorID).
			Int64("points", points).
			Str("reason", reason).
			Msg("failed to award points")
		l.metrics.PointsAwardedTotal.WithLabelValues("error").Inc()
		return false
	}

	l.metrics.PointsAwardedTotal.WithLabelValues("ok").Inc()
	return true
}

func (l *Ledger) Leaderboard(ctx context.Context, limit int) ([]*domain.Member, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	return l.members.Leaderboard(ctx, limit)
}

func (l *Ledger) Member(ctx context.Context, contributorID int64) (*domain.Member, error) {
	return l.members.GetMember(ctx, contributorID)
}
