package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/app/background"
	"github.com/LavaJover/shvark-deal-service/internal/app/setup"
	"github.com/LavaJover/shvark-deal-service/internal/config"
	httpapi "github.com/LavaJover/shvark-deal-service/internal/delivery/http"
	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/logger"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "run the HTTP API and the announcement scheduler",
	Action: func(cctx *cli.Context) error {
		cfg, err := config.Load(cctx.String("config"))
		if err != nil {
			return err
		}
		log := logger.New(cfg.Env, cfg.LogConfig)

		ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		deps, err := setup.InitializeDependencies(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := deps.Close(); err != nil {
				log.Error().Err(err).Msg("failed to release resources")
			}
		}()

		ucs, err := setup.InitializeUseCases(deps)
		if err != nil {
			return err
		}

		tasks := background.NewBackgroundTasks(ucs.Scheduler, ucs.DealUsecase, deps.Metrics, log, background.Options{
			ReconcileInterval: cfg.Reconciliation.Interval,
			StuckAfter:        cfg.Reconciliation.StuckAfter,
		})

		h := handlers.NewHandler(ucs.DealUsecase, ucs.Scheduler, ucs.Ledger, deps.Notifier, log)
		router := httpapi.NewRouter(h, httpapi.RouterConfig{
			AdminToken: cfg.HTTPServer.AdminToken,
			Gatherer:   deps.Registry,
			Log:        log,
		})
		srv := &http.Server{
			Addr:              net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
			Handler:           router,
			ReadTimeout:       cfg.HTTPServer.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.HTTPServer.WriteTimeout,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Info().Str("addr", srv.Addr).Msg("http server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			return tasks.Run(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}
