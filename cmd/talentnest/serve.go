package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"talentnest/internal/domain/auth"
	"talentnest/internal/events"
	"talentnest/internal/jobs"
	"talentnest/internal/logger"
	"talentnest/internal/middleware"
	"talentnest/internal/scheduler"
	"talentnest/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		migrate     bool
		noScheduler bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}

			if migrate {
				if err := server.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			publisher, err := events.Connect(cfg.NATS.URL)
			if err != nil {
				return err
			}
			defer publisher.Close()

			var extra []middleware.IdentityResolver
			if cfg.OIDC.Enabled() {
				oidcResolver, err := auth.NewOIDCResolver(ctx, cfg.OIDC.IssuerURL, cfg.OIDC.ClientID, auth.NewUserRepository(db))
				if err != nil {
					return fmt.Errorf("oidc: %w", err)
				}
				extra = append(extra, oidcResolver)
				logger.Info("oidc identity enabled", "issuer", cfg.OIDC.IssuerURL)
			}

			srv := server.New(cfg, db, publisher, extra...)

			if !noScheduler {
				sched, err := scheduler.NewScheduler(
					jobs.NewJobRunner(srv.Services.Verification),
					scheduler.Schedules{Reconcile: cfg.Scheduler.ReconcileSchedule},
				)
				if err != nil {
					return err
				}
				sched.Start()
				defer sched.Stop()
			}

			return srv.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Run AutoMigrate before serving")
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Disable background jobs")
	return cmd
}
