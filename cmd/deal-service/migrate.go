package main

import (
	"github.com/LavaJover/shvark-deal-service/internal/config"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/postgres"
	"github.com/urfave/cli/v2"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "apply database migrations and exit",
	Action: func(cctx *cli.Context) error {
		cfg, err := config.Load(cctx.String("config"))
		if err != nil {
			return err
		}
		log := logger.New(cfg.Env, cfg.LogConfig)

		db, err := postgres.InitDB(cfg.DealDB.Dsn)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		return migrate.RunMigrations(db, cfg.DealDB.MigrationsPath, log)
	},
}
