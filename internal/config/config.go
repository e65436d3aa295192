package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type DealConfig struct {
	Env            string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer     `yaml:"http_server"`
	DealDB         `yaml:"deal_db"`
	LogConfig      `yaml:"log_config"`
	WalletService  `yaml:"wallet_service"`
	KafkaService   `yaml:"kafka_service"`
	Telegram       `yaml:"telegram"`
	Announcement   `yaml:"announcement"`
	Confirmation   `yaml:"confirmation"`
	Points         `yaml:"points"`
	Reconciliation `yaml:"reconciliation"`
}

type HTTPServer struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"60s"`
	AdminToken   string        `yaml:"admin_token" env:"ADMIN_TOKEN"`
}

type DealDB struct {
	Dsn            string `yaml:"dsn" env:"DEAL_DB_DSN" env-required:"true"`
	MigrationsPath string `yaml:"migrations_path" env:"DEAL_DB_MIGRATIONS" env-default:"migrations"`
	AutoMigrate    bool   `yaml:"auto_migrate" env:"DEAL_DB_AUTO_MIGRATE" env-default:"true"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
}

type WalletService struct {
	BaseURL string        `yaml:"base_url" env:"WALLET_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"WALLET_TIMEOUT" env-default:"30s"`
}

type KafkaService struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"deal-events"`
}

type Telegram struct {
	BotToken      string `yaml:"bot_token" env:"DEAL_BOT_TOKEN"`
	ReviewGroupID int64  `yaml:"review_group_id" env:"DAO_GROUP_ID"`
}

type Announcement struct {
	Interval time.Duration `yaml:"interval" env:"ANNOUNCE_INTERVAL" env-default:"10s"`
}

type Confirmation struct {
	TTL          time.Duration `yaml:"ttl" env:"CONFIRMATION_TTL" env-default:"10m"`
	MaxProposals int           `yaml:"max_proposals" env-default:"10000"`
}

type Reconciliation struct {
	Interval   time.Duration `yaml:"interval" env-default:"1m"`
	StuckAfter time.Duration `yaml:"stuck_after" env-default:"5m"`
}

type Points struct {
	Approve int64 `yaml:"approve" env-default:"50"`
	Reject  int64 `yaml:"reject" env-default:"10"`
}

func Load(configPath string) (*DealConfig, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg DealConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg.Announcement.Interval <= 0 {
		return nil, fmt.Errorf("announcement interval must be positive, got %s", cfg.Announcement.Interval)
	}
	if cfg.Confirmation.TTL <= 0 {
		return nil, fmt.Errorf("confirmation ttl must be positive, got %s", cfg.Confirmation.TTL)
	}
	if cfg.Reconciliation.Interval <= 0 {
		return nil, fmt.Errorf("reconciliation interval must be positive, got %s", cfg.Reconciliation.Interval)
	}
	if cfg.Reconciliation.StuckAfter <= cfg.WalletService.Timeout {
		return nil, fmt.Errorf("reconciliation stuck_after %s must exceed the wallet timeout %s",
			cfg.Reconciliation.StuckAfter, cfg.WalletService.Timeout)
	}

	return &cfg, nil
}
