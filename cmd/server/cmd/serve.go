package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sivaprasad1108/event-sync-api/internal/api"
	"github.com/sivaprasad1108/event-sync-api/internal/app/service"
	"github.com/sivaprasad1108/event-sync-api/internal/app/worker"
	"github.com/sivaprasad1108/event-sync-api/internal/common/security"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/repository"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/config"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/logging"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/mailer"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/queue"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(root *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and the notification worker",
		Long: `Start the HTTP API and the background worker that delivers
registration confirmation emails.

Examples:
  # Start with configuration from the environment
  server serve

  # Start on another port with console logs
  server serve --port 9090 --log-format console`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			root.applyTo(cfg)
			if port != "" {
				cfg.APIPort = port
			}
			return runServer(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "server port (default: API_PORT or 8080)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	logger.Info().Msg("starting event sync server")

	tokens, err := security.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTExp)
	if err != nil {
		return err
	}
	hasher := security.NewPasswordHasher(cfg.BcryptCost)

	userRepo := repository.NewMemUserRepository()
	eventRepo := repository.NewMemEventRepository()

	notificationQueue, err := newNotificationQueue(ctx, cfg.Notification, logger)
	if err != nil {
		return err
	}
	defer notificationQueue.Close()

	mail, err := mailer.New(cfg.Email, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	notificationService := service.NewNotificationService(userRepo, notificationQueue, logger)
	authService := service.NewAuthService(userRepo, tokens, hasher, logger)
	eventService := service.NewEventService(eventRepo, notificationService, logger)
	notificationWorker := worker.NewNotificationWorker(notificationQueue, mail, cfg.Email.SendTimeout, logger)

	server := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           api.NewRouter(authService, eventService, tokens, logger),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      70 * time.Second, // longer than the router's request timeout
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return notificationWorker.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		notificationService.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return err
	}
	logger.Info().Msg("server and worker stopped gracefully")
	return nil
}

// newNotificationQueue uses Redis when REDIS_ADDR is set and an in-process
// queue otherwise.
func newNotificationQueue(ctx context.Context, cfg config.NotificationConfig, logger zerolog.Logger) (queue.NotificationQueue, error) {
	if cfg.RedisAddr == "" {
		logger.Info().Int("size", cfg.QueueSize).Msg("using in-memory notification queue")
		return queue.NewMemoryQueue(cfg.QueueSize), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	q, err := queue.ConnectRedis(connectCtx, queue.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Key:      cfg.QueueName,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info().Str("addr", cfg.RedisAddr).Str("key", cfg.QueueName).Msg("using redis notification queue")
	return q, nil
}
