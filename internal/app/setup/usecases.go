package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-deal-service/internal/usecase/announcement"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/confirmation"
	dealusecase "github.com/LavaJover/shvark-deal-service/internal/usecase/deal"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/reputation"
)

type UseCases struct {
	DealUsecase dealusecase.DealUsecase
	Scheduler   *announcement.Scheduler
	Ledger      *reputation.Ledger
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	cfg := deps.Config

	proposals, err := confirmation.NewStore(cfg.Confirmation.MaxProposals, cfg.Confirmation.TTL)
	if err != nil {
		return nil, fmt.Errorf("confirmation store: %w", err)
	}

	ledger := reputation.NewLedger(deps.Repositories.MemberRepo, deps.Metrics, deps.Log)

	dealUsecase := dealusecase.NewDefaultDealUsecase(
		deps.Repositories.DealRepo,
		deps.Payments,
		deps.Notifier,
		deps.Events,
		proposals,
		ledger,
		dealusecase.Points{Approve: cfg.Points.Approve, Reject: cfg.Points.Reject},
		cfg.Reconciliation.StuckAfter,
		deps.Metrics,
		deps.Log,
	)

	scheduler := announcement.NewScheduler(
		deps.Repositories.DealRepo,
		deps.Notifier,
		deps.Events,
		deps.Metrics,
		deps.Log,
		cfg.Announcement.Interval,
	)

	return &UseCases{
		DealUsecase: dealUsecase,
		Scheduler:   scheduler,
		Ledger:      ledger,
	}, nil
}
