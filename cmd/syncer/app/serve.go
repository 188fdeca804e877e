package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/cmd/syncer/config"
	"github.com/MichalMitros/supplier-feed-sync/internal/handler"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run scheduler, HTTP API and RabbitMQ commands consumer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(false, os.Stderr)
			if err != nil {
				return err
			}

			if err = serve(cmd.Context(), cfg, logger); err != nil {
				logger.Error().Err(err).Msg("syncer stopped with error")
				return err
			}

			return nil
		},
	}
}

func serve(parent context.Context, cfg config.Config, logger *zerolog.Logger) error {
	signalCtx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// consumer and jobs stop with http server failure as well
	g, ctx := errgroup.WithContext(signalCtx)

	svc, err := newService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.close(logger)

	if err = storage.Migrate(svc.db); err != nil {
		return err
	}

	scheduler := handler.NewScheduler(svc.dispatcher, handler.WithSchedulerLogger(logger))
	if err = scheduler.ScheduleSync(ctx, cfg.Sync.Schedule); err != nil {
		return err
	}
	if cfg.Cleanup.Enabled {
		if err = scheduler.ScheduleCleanup(ctx, cfg.Cleanup.Schedule); err != nil {
			return err
		}
	}

	closeConsumer, err := startConsumer(ctx, cfg.RabbitMQ, svc.dispatcher, logger)
	if err != nil {
		return err
	}
	defer closeConsumer()

	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.NewRouter(svc.dispatcher, svc.metrics.Handler(), logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g.Go(func() error {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("can't serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("graceful shutdown start")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	logger.Info().Str("addr", cfg.HTTP.Addr).Msg("supplier feed sync up and running")

	if err = g.Wait(); err != nil {
		return err
	}

	logger.Info().Msg("graceful shutdown successful")

	return nil
}

// startConsumer starts RabbitMQ commands consumer. It returns function waiting for consumer and closing connection.
func startConsumer(
	ctx context.Context,
	cfg config.RabbitMQ,
	commands handler.Commands,
	logger *zerolog.Logger,
) (func(), error) {
	if cfg.URL == "" {
		logger.Info().Msg("RabbitMQ isn't configured, commands consumer disabled")
		return func() {}, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("can't open RabbitMQ connection: %w", err)
	}

	mq, err := rabbitmq.NewRabbitMQ(conn, cfg.Exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = mq.Declare(cfg.Queue, cfg.RoutingKey); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = handler.NewRMQHandler(mq, commands, logger).Start(ctx, cfg.Queue); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	return func() {
		<-mq.Done()
		if err := mq.Close(); err != nil {
			logger.Error().Err(err).Msg("can't close RabbitMQ channel")
		}
		if err := conn.Close(); err != nil {
			logger.Error().Err(err).Msg("can't close RabbitMQ connection")
		}
	}, nil
}
