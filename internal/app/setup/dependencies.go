package setup

import (
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-deal-service/internal/config"
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	publisher "github.com/LavaJover/shvark-deal-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.DealConfig
	DB           *gorm.DB
	Log          zerolog.Logger
	Registry     *prometheus.Registry
	Metrics      *metrics.DealMetrics
	Repositories *Repositories
	Payments     domain.PaymentExecutor
	Notifier     domain.Notifier
	Events       domain.EventPublisher

	closers []func() error
}

type Repositories struct {
	DealRepo   domain.DealRepository
	MemberRepo domain.MemberRepository
}

func InitializeDependencies(cfg *config.DealConfig, log zerolog.Logger) (*Dependencies, error) {
	db, err := postgres.InitDB(cfg.DealDB.Dsn)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	deps := &Dependencies{Config: cfg, DB: db, Log: log}
	deps.closers = append(deps.closers, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})

	if cfg.DealDB.AutoMigrate {
		if err := migrate.RunMigrations(db, cfg.DealDB.MigrationsPath, log); err != nil {
			deps.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.NewDealMetrics(deps.Registry)

	deps.Repositories = &Repositories{
		DealRepo:   repository.NewDefaultDealRepository(db),
		MemberRepo: repository.NewDefaultMemberRepository(db),
	}

	deps.Payments = wallet.NewHTTPWalletClient(cfg.WalletService.BaseURL, cfg.WalletService.Timeout)

	deps.Notifier, err = initNotifier(cfg, log)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("notifier: %w", err)
	}

	deps.Events = initEventPublisher(cfg, log, deps)

	return deps, nil
}

func initNotifier(cfg *config.DealConfig, log zerolog.Logger) (domain.Notifier, error) {
	if cfg.Telegram.BotToken == "" {
		log.Warn().Msg("telegram bot token not set, notifications go to the log only")
		return notifier.NewLogNotifier(log), nil
	}
	if cfg.Telegram.ReviewGroupID == 0 {
		log.Warn().Msg("telegram review group id not set, announcements will fail")
	}
	return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ReviewGroupID)
}

// initEventPublisher always records events in the audit table and also streams
// them to kafka when brokers are configured.
func initEventPublisher(cfg *config.DealConfig, log zerolog.Logger, deps *Dependencies) domain.EventPublisher {
	audit := logger.NewPGDealEventLogger(deps.DB)
	if len(cfg.KafkaService.Brokers) == 0 {
		log.Info().Msg("kafka brokers not set, deal events go to the audit table only")
		return publisher.FanOut{audit}
	}
	pub := publisher.NewKafkaPublisher(cfg.KafkaService.Brokers, cfg.KafkaService.Topic)
	deps.closers = append(deps.closers, pub.Close)
	return publisher.FanOut{audit, pub}
}

// Close releases resources in reverse order of acquisition.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
