package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DealMetrics holds every collector the lifecycle engine reports.
type DealMetrics struct {
	// Decisions by action (approve/reject) and outcome kind
	DecisionsTotal *prometheus.CounterVec

	// Payouts
	PayoutsTotal          *prometheus.CounterVec
	PayoutAmountTotal     prometheus.Counter
	PayoutDuration        prometheus.Histogram
	PartialFailuresTotal  prometheus.Counter
	SideEffectErrorsTotal *prometheus.CounterVec
	StuckPayouts          prometheus.Gauge

	// Announcement scheduler
	AnnouncementsTotal *prometheus.CounterVec
	TicksSkippedTotal  prometheus.Counter

	// Confirmation proposals
	ProposalsTotal *prometheus.CounterVec

	// Reputation
	PointsAwardedTotal *prometheus.CounterVec
}

func NewDealMetrics(reg prometheus.Registerer) *DealMetrics {
	factory := promauto.With(reg)
	return &DealMetrics{
		DecisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_decisions_total",
				Help: "Confirmed deal decisions by action and outcome",
			},
			[]string{"action", "outcome"},
		),

		PayoutsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_payouts_total",
				Help: "Payment executor send attempts by result",
			},
			[]string{"result"},
		),

		PayoutAmountTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "deal_payout_amount_total",
				Help: "Sum of successfully sent payout amounts",
			},
		),

		PayoutDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "deal_payout_duration_seconds",
				Help:    "Time spent in the payment executor send call",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),

		PartialFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "deal_partial_failures_total",
				Help: "Payouts sent whose status commit failed and need reconciliation",
			},
		),

		SideEffectErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_side_effect_errors_total",
				Help: "Post-commit side effects that failed (points, notification, event)",
			},
			[]string{"effect"},
		),

		StuckPayouts: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "deal_stuck_payouts",
				Help: "Pending deals whose payout claim has been held longer than the reconciliation threshold",
			},
		),

		AnnouncementsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_announcements_total",
				Help: "Announcement attempts by result",
			},
			[]string{"result"},
		),

		TicksSkippedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "deal_announcement_ticks_skipped_total",
				Help: "Scheduler ticks skipped because a previous tick was still running",
			},
		),

		ProposalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_proposals_total",
				Help: "Confirmation proposals by action and event (proposed/confirmed/cancelled/missing)",
			},
			[]string{"action", "event"},
		),

		PointsAwardedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_points_awarded_total",
				Help: "Reputation points awards by result",
			},
			[]string{"result"},
		),
	}
}
