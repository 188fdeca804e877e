package syncer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/clock"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/MichalMitros/supplier-feed-sync/internal/reconciler"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultTimeBudget is wall-clock budget of single run.
	DefaultTimeBudget = 9 * time.Minute
	// HousekeepingEvery is number of records between cache flushes and lock heartbeats.
	HousekeepingEvery = 50
)

// Record results counted in metrics.
const (
	ResultDropped = "dropped"
	ResultCreated = "created"
	ResultUpdated = "updated"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

//go:generate mockery --name State --filename state.go
//go:generate mockery --name Source --filename source.go
//go:generate mockery --name Reconciler --filename reconciler.go
//go:generate mockery --name Metrics --filename metrics.go

// State is persistent sync cursor with lock.
type State interface {
	// AcquireLock takes sync lock. It returns false if fresh lock is held by another run.
	AcquireLock(ctx context.Context) (bool, error)
	ReleaseLock(ctx context.Context) error
	Heartbeat(ctx context.Context) error
	Cursor(ctx context.Context) (models.SyncCursor, error)
	SetOffset(ctx context.Context, offset int) error
	// MarkCompleted resets cursor and stamps last sync time.
	MarkCompleted(ctx context.Context) error
}

// Source fetches and parses feed pages.
type Source interface {
	// FetchPage returns feed page at offset. Nil page means there are no more records.
	FetchPage(ctx context.Context, offset int) ([]byte, error)
	ParsePage(ctx context.Context, page []byte) ([]models.ParsingResult, error)
}

// Reconciler applies records to catalog.
type Reconciler interface {
	SyncSimple(ctx context.Context, record models.Record) reconciler.Result
	SyncVariable(ctx context.Context, record models.Record) reconciler.Result
	SyncVariation(ctx context.Context, parentID int64, record models.Record) reconciler.Result
	SyncParentStock(ctx context.Context, parentID int64) error
	FlushCache()
}

// Metrics records sync progress.
type Metrics interface {
	SyncRun(outcome models.SyncOutcome, duration time.Duration)
	SyncRecord(result string)
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// Config is sync cycle configuration.
type Config struct {
	PageSize                int
	Variations              bool
	OnlyWithVariationImages bool
	// MinInterval is minimal time between starts of consecutive cycles.
	MinInterval time.Duration
	TimeBudget  time.Duration
	// MemoryLimit is heap size in bytes above which page processing stops. Zero means no limit.
	MemoryLimit uint64
}

// Option is custom configuration of Syncer.
type Option func(s *Syncer)

// Syncer runs single page of sync cycle per invocation.
type Syncer struct {
	state       State
	source      Source
	reconciler  Reconciler
	config      Config
	clock       Clock
	metrics     Metrics
	memoryUsage func() uint64
	logger      *zerolog.Logger
}

// NewSyncer returns new Syncer.
func NewSyncer(state State, source Source, rec Reconciler, config Config, ops ...Option) *Syncer {
	if config.TimeBudget <= 0 {
		config.TimeBudget = DefaultTimeBudget
	}

	nop := zerolog.Nop()
	s := &Syncer{
		state:       state,
		source:      source,
		reconciler:  rec,
		config:      config,
		clock:       clock.System{},
		metrics:     nopMetrics{},
		memoryUsage: heapAlloc,
		logger:      &nop,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Run syncs feed page at current cursor offset.
// Lock contention and too early triggers aren't errors, they are reported as skipped outcomes.
func (s *Syncer) Run(ctx context.Context) (models.SyncReport, error) {
	started := s.clock.Now()
	report := models.SyncReport{RunID: uuid.NewString()}
	logger := s.logger.With().Str("run_id", report.RunID).Logger()

	locked, err := s.state.AcquireLock(ctx)
	if err != nil {
		return s.finish(&logger, &report, started, err)
	}
	if !locked {
		logger.Info().Msg("sync already running")
		report.Outcome = models.SyncOutcomeSkippedLocked
		return s.finish(&logger, &report, started, nil)
	}

	defer func() {
		if err := s.state.ReleaseLock(context.WithoutCancel(ctx)); err != nil {
			logger.Error().Err(err).Msg("can't release sync lock")
		}
	}()

	err = s.run(ctx, &logger, &report, started)

	return s.finish(&logger, &report, started, err)
}

func (s *Syncer) run(ctx context.Context, logger *zerolog.Logger, report *models.SyncReport, started time.Time) error {
	cursor, err := s.state.Cursor(ctx)
	if err != nil {
		return err
	}
	report.Offset = cursor.Offset
	report.NextOffset = cursor.Offset

	if cursor.Offset == 0 && cursor.LastSyncStart != nil && started.Sub(*cursor.LastSyncStart) < s.config.MinInterval {
		logger.Info().Time("last_sync_start", *cursor.LastSyncStart).Msg("too soon to start new sync cycle")
		report.Outcome = models.SyncOutcomeSkippedTooSoon
		return nil
	}

	page, err := s.source.FetchPage(ctx, cursor.Offset)
	if err != nil {
		return fmt.Errorf("can't fetch feed page: %w", err)
	}
	if page == nil {
		logger.Info().Int("offset", cursor.Offset).Msg("feed exhausted")
		return s.complete(ctx, report)
	}

	results, err := s.source.ParsePage(ctx, page)
	if err != nil {
		return fmt.Errorf("can't parse feed page: %w", err)
	}
	report.Fetched = len(results)

	if interrupted := s.processPage(ctx, logger, results, report, started.Add(s.config.TimeBudget)); interrupted {
		report.Outcome = models.SyncOutcomeInterrupted
		return nil
	}

	if len(results) < s.config.PageSize {
		return s.complete(ctx, report)
	}

	next := cursor.Offset + s.config.PageSize
	if err = s.state.SetOffset(ctx, next); err != nil {
		return err
	}
	report.NextOffset = next
	report.Outcome = models.SyncOutcomeAdvanced

	return nil
}

// processPage reconciles page records and recomputes stock of touched parents.
// It reports whether loop was stopped before processing all records.
func (s *Syncer) processPage(
	ctx context.Context,
	logger *zerolog.Logger,
	results []models.ParsingResult,
	report *models.SyncReport,
	deadline time.Time,
) bool {
	interrupted := false
	parents := map[string]reconciler.Result{}
	touched := make([]int64, 0)

	for ix, result := range results {
		if ix > 0 && ix%HousekeepingEvery == 0 {
			if s.housekeeping(ctx, logger) {
				interrupted = true
				break
			}
		}

		if ctx.Err() != nil || !s.clock.Now().Before(deadline) {
			logger.Warn().Int("processed", ix).Int("fetched", len(results)).Msg("sync budget exceeded")
			interrupted = true
			break
		}

		if result.Error != nil {
			logger.Debug().Err(result.Error).Str("sku", result.Record.Code).Msg("record dropped")
			report.Dropped++
			s.metrics.SyncRecord(ResultDropped)
			continue
		}

		record := result.Record
		if s.config.OnlyWithVariationImages && !record.HasVariationImages {
			report.Skipped++
			s.metrics.SyncRecord(ResultSkipped)
			continue
		}

		var res reconciler.Result
		if s.config.Variations && record.IsVariation {
			res = s.syncVariation(ctx, record, parents, &touched)
		} else {
			res = s.reconciler.SyncSimple(ctx, record)
		}
		s.count(report, res)
	}

	for _, parentID := range touched {
		if ctx.Err() != nil {
			break
		}
		if err := s.reconciler.SyncParentStock(ctx, parentID); err != nil {
			logger.Warn().Err(err).Int64("parent_id", parentID).Msg("can't sync parent stock")
		}
	}

	return interrupted
}

// syncVariation syncs variation record. Parent is synced at most once per page,
// variations of parent which failed in this page fail without retrying it.
func (s *Syncer) syncVariation(
	ctx context.Context,
	record models.Record,
	parents map[string]reconciler.Result,
	touched *[]int64,
) reconciler.Result {
	sku := record.ParentSKU()

	parent, ok := parents[sku]
	if !ok {
		parent = s.reconciler.SyncVariable(ctx, record)
		parents[sku] = parent
		if parent.Err == nil {
			*touched = append(*touched, parent.ID)
		}
	}
	if parent.Err != nil {
		return reconciler.Result{Action: reconciler.ActionFailed, Err: parent.Err}
	}

	return s.reconciler.SyncVariation(ctx, parent.ID, record)
}

// housekeeping flushes caches and refreshes lock. It reports whether lock is lost or memory limit is exceeded.
func (s *Syncer) housekeeping(ctx context.Context, logger *zerolog.Logger) bool {
	s.reconciler.FlushCache()

	if err := s.state.Heartbeat(ctx); err != nil {
		if errors.Is(err, platform.ErrLockLost) {
			logger.Error().Err(err).Msg("sync lock lost, stopping page")
			return true
		}
		logger.Warn().Err(err).Msg("can't refresh sync lock")
	}

	if s.config.MemoryLimit == 0 {
		return false
	}

	if usage := s.memoryUsage(); usage > s.config.MemoryLimit {
		logger.Warn().Uint64("heap_bytes", usage).Uint64("limit_bytes", s.config.MemoryLimit).Msg("sync memory limit exceeded")
		return true
	}

	return false
}

func (s *Syncer) complete(ctx context.Context, report *models.SyncReport) error {
	if err := s.state.MarkCompleted(ctx); err != nil {
		return err
	}
	report.NextOffset = 0
	report.Outcome = models.SyncOutcomeCompleted

	return nil
}

func (s *Syncer) count(report *models.SyncReport, res reconciler.Result) {
	switch res.Action {
	case reconciler.ActionCreated:
		report.Created++
		s.metrics.SyncRecord(ResultCreated)
	case reconciler.ActionUpdated:
		report.Updated++
		s.metrics.SyncRecord(ResultUpdated)
	case reconciler.ActionFailed:
		report.Failed++
		s.metrics.SyncRecord(ResultFailed)
	default:
		report.Skipped++
		s.metrics.SyncRecord(ResultSkipped)
	}
}

func (s *Syncer) finish(
	logger *zerolog.Logger,
	report *models.SyncReport,
	started time.Time,
	status error,
) (models.SyncReport, error) {
	report.Duration = s.clock.Now().Sub(started)
	if status != nil {
		report.Outcome = models.SyncOutcomeFailed
	}
	s.metrics.SyncRun(report.Outcome, report.Duration)

	event := logger.Info()
	if status != nil {
		event = logger.Error().Err(status)
	}
	event.
		Str("outcome", string(report.Outcome)).
		Int("offset", report.Offset).
		Int("next_offset", report.NextOffset).
		Int("fetched", report.Fetched).
		Int("dropped", report.Dropped).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Dur("elapsed", report.Duration).
		Msg("sync run finished")

	if status != nil {
		return *report, fmt.Errorf("can't sync feed page: %w", status)
	}

	return *report, nil
}

func heapAlloc() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	return stats.HeapAlloc
}

type nopMetrics struct{}

func (nopMetrics) SyncRun(models.SyncOutcome, time.Duration) {}

func (nopMetrics) SyncRecord(string) {}

// WithClock sets Syncer's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Syncer) {
		s.clock = c
	}
}

// WithLogger sets Syncer's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// WithMetrics sets Syncer's metrics.
func WithMetrics(metrics Metrics) Option {
	return func(s *Syncer) {
		s.metrics = metrics
	}
}

// WithMemoryUsage sets function returning current heap size in bytes.
func WithMemoryUsage(usage func() uint64) Option {
	return func(s *Syncer) {
		s.memoryUsage = usage
	}
}
