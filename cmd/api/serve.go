package main

import (
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/admission-service/internal/api/http"
	"github.com/spec-kit/admission-service/internal/api/http/handlers"
	"github.com/spec-kit/admission-service/internal/auth"
	"github.com/spec-kit/admission-service/internal/events"
	"github.com/spec-kit/admission-service/internal/observability"
	"github.com/spec-kit/admission-service/internal/persistence"
	"github.com/spec-kit/admission-service/internal/repository"
	"github.com/spec-kit/admission-service/internal/service"
	"github.com/spec-kit/admission-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()
	cfg, logger := rt.cfg, rt.logger

	ctx, stop := signal.NotifyContext(commandContext(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.DSN == "" {
		return errors.New("POSTGRES_DSN is required")
	}
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			return err
		}
	}

	redisConn := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redisConn.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	notifications := service.NewNotificationService(logger, cfg.Notification)
	notifyWorker := worker.NewNotificationWorker(notifications, logger, 0)
	notifyWorker.Subscribe(dispatcher)
	notifyWorker.Start(ctx)
	defer notifyWorker.Stop()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	applicantRepo := repository.NewApplicantRepository(pool)

	var throttleStore auth.AttemptStore
	var redisPinger handlers.Pinger
	if redisConn.Configured() {
		throttleStore = repository.NewLoginAttemptRepository(redisConn.Client)
		redisPinger = redisConn
	}

	tokens := auth.NewTokenManager(cfg.Auth)
	authService, err := service.NewAuthService(service.AuthDependencies{
		Accounts:   accountRepo,
		Hasher:     auth.NewPasswordHasher(cfg.Auth),
		Tokens:     tokens,
		Throttle:   auth.NewLoginThrottle(throttleStore, cfg.Auth, logger),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	applicantService, err := service.NewApplicantService(service.ApplicantDependencies{
		Applicants: applicantRepo,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	app := httptransport.NewApp(*cfg, logger, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisPinger),
		Auth:           handlers.NewAuthHandler(authService),
		Applicants:     handlers.NewApplicantsHandler(applicantService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, accountRepo, logger),
		Metrics:        metrics,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	return nil
}

