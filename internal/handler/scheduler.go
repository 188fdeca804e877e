package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SchedulerOption is custom configuration of Scheduler.
type SchedulerOption func(s *Scheduler)

// Scheduler triggers sync and cleanup on cron schedules.
// Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron     *cron.Cron
	commands Commands
	logger   *zerolog.Logger
}

// NewScheduler returns new Scheduler. Schedules use cron format with seconds field.
func NewScheduler(commands Commands, ops ...SchedulerOption) *Scheduler {
	nop := zerolog.Nop()
	s := &Scheduler{
		commands: commands,
		logger:   &nop,
	}

	for _, op := range ops {
		op(s)
	}

	s.cron = cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger{logger: s.logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: s.logger})),
	)

	return s
}

// ScheduleSync registers sync job. Job runs under ctx.
func (s *Scheduler) ScheduleSync(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		report, err := s.commands.Sync(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("scheduled sync failed")
			return
		}
		s.logger.Debug().Str("outcome", string(report.Outcome)).Msg("scheduled sync finished")
	})
	if err != nil {
		return fmt.Errorf("can't schedule sync %q: %w", schedule, err)
	}

	return nil
}

// ScheduleCleanup registers cleanup job. Job runs under ctx.
func (s *Scheduler) ScheduleCleanup(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		report, err := s.commands.Cleanup(ctx)
		if errors.Is(err, ErrCleanupRunning) {
			return
		}
		if err != nil {
			s.logger.Error().Err(err).Msg("scheduled cleanup failed")
			return
		}
		s.logger.Debug().
			Str("phase_before", string(report.PhaseBefore)).
			Str("phase_after", string(report.PhaseAfter)).
			Msg("scheduled cleanup finished")
	})
	if err != nil {
		return fmt.Errorf("can't schedule cleanup %q: %w", schedule, err)
	}

	return nil
}

// Start starts scheduler in background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop stops scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

// WithSchedulerLogger sets Scheduler's logger.
func WithSchedulerLogger(logger *zerolog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
