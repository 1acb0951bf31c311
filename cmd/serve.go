package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DhavalSuthar-24/scorebook/config"
	"github.com/DhavalSuthar-24/scorebook/internal/live"
	"github.com/DhavalSuthar-24/scorebook/internal/metrics"
	"github.com/DhavalSuthar-24/scorebook/internal/store"
	"github.com/DhavalSuthar-24/scorebook/routes"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and live feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if migrate {
				if err := store.Migrate(config.DB); err != nil {
					return err
				}
				log.Info("AutoMigrate successful")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	hub := live.NewHub(cfg.App.CORSOrigin, log.Named("live"), m)

	var publishers []live.Publisher
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := live.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange, log.Named("amqp"))
		if err != nil {
			return err
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
	}

	router := routes.SetupRoutes(routes.Options{
		DB:         config.DB,
		Config:     cfg,
		Logger:     log,
		Metrics:    m,
		Hub:        hub,
		Publishers: publishers,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
