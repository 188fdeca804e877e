package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/cmd/syncer/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// UserAgent is user agent header value used when fetching supplier feed and images.
const UserAgent = "supplier-feed-sync/0.1.0"

type rootOptions struct {
	verbose bool
}

// NewRootCommand returns syncer command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "syncer",
		Short:         "Supplier feed sync engine",
		Long:          "Synchronizes supplier product feed with local catalog and trashes products missing in feed.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logs")

	root.AddCommand(
		newServeCommand(opts),
		newSyncCommand(opts),
		newCleanupCommand(opts),
		newResetCommand(opts),
		newStatusCommand(opts),
		newMigrateCommand(opts),
	)

	return root
}

// load parses configuration and builds logger. Console logger writes human readable progress to out.
func (o *rootOptions) load(console bool, out io.Writer) (config.Config, *zerolog.Logger, error) {
	cfg, err := config.Parse()
	if err != nil {
		return config.Config{}, nil, err
	}

	logger, err := newLogger(out, console, cfg.LogLevel, o.verbose)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, &logger, nil
}

func newLogger(out io.Writer, console bool, level string, verbose bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("can't parse log level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}

	if console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("can't print result: %w", err)
	}

	return nil
}
