package background

import (
	"context"
	"testing"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/announcement"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/confirmation"
	dealusecase "github.com/LavaJover/shvark-deal-service/internal/usecase/deal"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/fakes"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/reputation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTasks(t *testing.T, deals *fakes.DealRepository, notifier *fakes.Notifier) (*BackgroundTasks, *metrics.DealMetrics) {
	t.Helper()
	m := metrics.NewDealMetrics(prometheus.NewRegistry())
	events := fakes.NewEventPublisher()
	store, err := confirmation.NewStore(10, time.Minute)
	require.NoError(t, err)
	ledger := reputation.NewLedger(fakes.NewMemberRepository(), m, zerolog.Nop())
	uc := dealusecase.NewDefaultDealUsecase(
		deals, fakes.NewPaymentExecutor("10"), notifier, events, store, ledger,
		dealusecase.Points{Approve: 50, Reject: 10}, time.Minute, m, zerolog.Nop(),
	)
	scheduler := announcement.NewScheduler(deals, notifier, events, m, zerolog.Nop(), 5*time.Millisecond)
	return NewBackgroundTasks(scheduler, uc, m, zerolog.Nop(), Options{
		ReconcileInterval: 5 * time.Millisecond,
		StuckAfter:        0,
	}), m
}

func TestCheckStuckPayoutsSetsGauge(t *testing.T) {
	deals := fakes.NewDealRepository()
	tasks, m := newTasks(t, deals, fakes.NewNotifier())
	deals.Put(domain.Deal{Amount: decimal.NewFromInt(1), PayoutClaim: "lost", UpdatedAt: time.Now().Add(-time.Hour)})
	deals.Put(domain.Deal{Amount: decimal.NewFromInt(1)})

	assert.Equal(t, 1, tasks.checkStuckPayouts(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StuckPayouts))
}

func TestRunAnnouncesUntilCancelled(t *testing.T) {
	deals := fakes.NewDealRepository()
	notifier := fakes.NewNotifier()
	tasks, _ := newTasks(t, deals, notifier)
	deals.Put(domain.Deal{Amount: decimal.NewFromInt(1), Summary: "Project Name: Background"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tasks.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(notifier.Sent()) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("background tasks did not stop")
	}
}
