package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type runFunc func(ctx context.Context, cmd *cobra.Command, svc *service, logger *zerolog.Logger) error

// withService wires service for one-shot command and runs fn until it returns or process is interrupted.
func withService(opts *rootOptions, fn runFunc) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := opts.load(true, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := newService(ctx, cfg, logger)
		if err != nil {
			logger.Error().Err(err).Msg("can't start syncer")
			return err
		}
		defer svc.close(logger)

		if err = fn(ctx, cmd, svc, logger); err != nil {
			logger.Error().Err(err).Str("command", cmd.Name()).Msg("command failed")
			return err
		}

		return nil
	}
}

func newSyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync single feed page at current cursor offset",
		RunE: withService(opts, func(ctx context.Context, _ *cobra.Command, svc *service, _ *zerolog.Logger) error {
			_, err := svc.dispatcher.Sync(ctx)
			return err
		}),
	}
}

func newCleanupCommand(opts *rootOptions) *cobra.Command {
	var abort bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Run single cleanup step",
		RunE: withService(opts, func(ctx context.Context, cmd *cobra.Command, svc *service, logger *zerolog.Logger) error {
			if abort {
				if err := svc.dispatcher.AbortCleanup(ctx); err != nil {
					return err
				}
				logger.Info().Msg("cleanup cycle aborted")
				return nil
			}

			report, err := svc.dispatcher.Cleanup(ctx)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), report)
		}),
	}
	cmd.Flags().BoolVar(&abort, "abort", false, "Collapse running cleanup cycle to none phase")

	return cmd
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Hard reset sync cursor and lock",
		RunE: withService(opts, func(ctx context.Context, _ *cobra.Command, svc *service, _ *zerolog.Logger) error {
			return svc.dispatcher.Reset(ctx)
		}),
	}
}

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print sync cursor and cleanup state",
		RunE: withService(opts, func(ctx context.Context, cmd *cobra.Command, svc *service, _ *zerolog.Logger) error {
			status, err := svc.dispatcher.Status(ctx)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), status)
		}),
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	var down int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  "Apply all pending database migrations or revert given number of them with --down.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(true, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if down > 0 {
				if err = storage.Rollback(db, down); err != nil {
					return err
				}
				logger.Info().Int("steps", down).Msg("migrations reverted")
				return nil
			}

			if err = storage.Migrate(db); err != nil {
				return err
			}
			logger.Info().Msg("migrations applied")

			return nil
		},
	}
	cmd.Flags().IntVar(&down, "down", 0, "Number of migrations to revert")

	return cmd
}
