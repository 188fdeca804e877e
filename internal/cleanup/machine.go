package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/clock"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Default batch sizes.
const (
	DefaultFetchBatch  = 1000
	DefaultDeleteBatch = 50
)

//go:generate mockery --name Source --filename source.go
//go:generate mockery --name Catalog --filename catalog.go
//go:generate mockery --name Store --filename store.go
//go:generate mockery --name Metrics --filename metrics.go

// Source provides supplier SKUs.
type Source interface {
	// Configured reports whether supplier feed url is set.
	Configured() bool
	// FetchSKUs returns non-empty codes of SKU batch at offset and number of its data rows.
	FetchSKUs(ctx context.Context, offset, limit int) ([]string, int, error)
}

// Catalog is catalog products are trashed from.
type Catalog interface {
	// ListSKUs returns non-trashed top-level products with SKU.
	ListSKUs(ctx context.Context) ([]models.SKURef, error)
	// IDsBySKU returns ids of products with provided SKUs. Missing SKUs are omitted.
	IDsBySKU(ctx context.Context, skus []string) (map[string]int64, error)
	// Trash moves product to trash.
	Trash(ctx context.Context, id int64) error
}

// Store persists cleanup state singleton and its artifacts.
type Store interface {
	// CleanupState returns current cleanup state.
	CleanupState(ctx context.Context) (models.CleanupState, error)
	// StartCleanup moves cleanup to fetch phase with empty artifacts.
	StartCleanup(ctx context.Context) error
	// AddSupplierSKUs adds SKUs to supplier set and sets next fetch offset.
	AddSupplierSKUs(ctx context.Context, skus []string, nextOffset int) error
	// SetCleanupPhase sets cleanup phase.
	SetCleanupPhase(ctx context.Context, phase models.CleanupPhase) error
	// SupplierSKUs returns accumulated supplier SKUs.
	SupplierSKUs(ctx context.Context) ([]string, error)
	// QueueDeletions stores deletion queue, clears supplier set and moves cleanup to delete phase.
	QueueDeletions(ctx context.Context, skus []string) error
	// PeekDeletions returns up to limit SKUs from front of deletion queue.
	PeekDeletions(ctx context.Context, limit int) ([]string, error)
	// DropDeletions removes n SKUs from front of deletion queue and returns number of remaining ones.
	DropDeletions(ctx context.Context, n int) (int, error)
	// FinishCleanup moves cleanup to none phase and drops artifacts. Completion time is stamped when not nil.
	FinishCleanup(ctx context.Context, completedAt *time.Time) error
}

// Metrics records cleanup progress.
type Metrics interface {
	CleanupStep(phase models.CleanupPhase)
	CleanupTrashed(n int)
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// Config is cleanup cycle configuration.
type Config struct {
	// Interval is minimal time between completed cycles.
	Interval    time.Duration
	FetchBatch  int
	DeleteBatch int
}

// Option is custom configuration of Machine.
type Option func(m *Machine)

// Machine runs mark-and-sweep cleanup of catalog products missing in supplier feed.
// Every Step does bounded work of single phase and persists progress.
type Machine struct {
	source  Source
	catalog Catalog
	store   Store
	config  Config
	clock   Clock
	metrics Metrics
	logger  *zerolog.Logger
}

// NewMachine returns new Machine.
func NewMachine(source Source, catalog Catalog, store Store, config Config, ops ...Option) *Machine {
	if config.FetchBatch <= 0 {
		config.FetchBatch = DefaultFetchBatch
	}
	if config.DeleteBatch <= 0 {
		config.DeleteBatch = DefaultDeleteBatch
	}

	nop := zerolog.Nop()
	m := &Machine{
		source:  source,
		catalog: catalog,
		store:   store,
		config:  config,
		clock:   clock.System{},
		metrics: nopMetrics{},
		logger:  &nop,
	}

	for _, op := range ops {
		op(m)
	}

	return m
}

// State returns current cleanup state.
func (m *Machine) State(ctx context.Context) (models.CleanupState, error) {
	state, err := m.store.CleanupState(ctx)
	if err != nil {
		return models.CleanupState{}, fmt.Errorf("can't get cleanup state: %w", err)
	}

	return state, nil
}

// Step advances cleanup cycle by single phase.
// Fetch and catalog errors leave persisted state untouched so next Step retries same phase.
func (m *Machine) Step(ctx context.Context) (models.CleanupReport, error) {
	report := models.CleanupReport{RunID: uuid.NewString()}
	logger := m.logger.With().Str("run_id", report.RunID).Logger()

	state, err := m.State(ctx)
	if err != nil {
		return report, err
	}
	report.PhaseBefore = state.Phase
	report.PhaseAfter = state.Phase

	switch state.Phase {
	case models.CleanupPhaseNone:
		if !m.due(state) {
			logger.Debug().Msg("cleanup cycle isn't due yet")
			return report, nil
		}
		if !m.source.Configured() {
			err = m.abort(ctx, &logger, &report, ErrNoFeedURL)
			break
		}
		if err = m.store.StartCleanup(ctx); err != nil {
			return report, fmt.Errorf("can't start cleanup cycle: %w", err)
		}
		logger.Info().Msg("cleanup cycle started")
		report.PhaseAfter = models.CleanupPhaseFetch
		err = m.fetch(ctx, &logger, models.CleanupState{Phase: models.CleanupPhaseFetch}, &report)
	case models.CleanupPhaseFetch:
		err = m.fetch(ctx, &logger, state, &report)
	case models.CleanupPhaseCompare:
		err = m.compare(ctx, &logger, &report)
	case models.CleanupPhaseDelete:
		err = m.delete(ctx, &logger, &report)
	default:
		err = m.abort(ctx, &logger, &report, fmt.Errorf("%w: %q", ErrUnknownPhase, state.Phase))
	}

	m.metrics.CleanupStep(report.PhaseBefore)
	if err != nil {
		return report, err
	}

	logger.Info().
		Str("phase_before", string(report.PhaseBefore)).
		Str("phase_after", string(report.PhaseAfter)).
		Int("fetched", report.FetchedSKUs).
		Int("queued", report.QueuedSKUs).
		Int("trashed", report.Trashed).
		Int("failed", report.Failed).
		Bool("completed", report.Completed).
		Msg("cleanup step finished")

	return report, nil
}

// Abort collapses cleanup to none phase dropping its artifacts.
func (m *Machine) Abort(ctx context.Context) error {
	if err := m.store.FinishCleanup(ctx, nil); err != nil {
		return fmt.Errorf("can't abort cleanup cycle: %w", err)
	}
	m.logger.Warn().Msg("cleanup cycle aborted manually")

	return nil
}

func (m *Machine) due(state models.CleanupState) bool {
	if state.LastCycleCompletedAt == nil {
		return true
	}

	return m.clock.Now().Sub(*state.LastCycleCompletedAt) >= m.config.Interval
}

func (m *Machine) fetch(
	ctx context.Context,
	logger *zerolog.Logger,
	state models.CleanupState,
	report *models.CleanupReport,
) error {
	if !m.source.Configured() {
		return m.abort(ctx, logger, report, ErrNoFeedURL)
	}

	skus, rows, err := m.source.FetchSKUs(ctx, state.FetchOffset, m.config.FetchBatch)
	if err != nil {
		logger.Error().Err(err).Int("offset", state.FetchOffset).Msg("can't fetch supplier skus")
		return fmt.Errorf("can't fetch supplier skus at offset %d: %w", state.FetchOffset, err)
	}

	if rows == 0 && state.FetchOffset == 0 && state.SupplierSKUs == 0 {
		return m.abort(ctx, logger, report, ErrNoSupplierSKUs)
	}

	if err = m.store.AddSupplierSKUs(ctx, skus, state.FetchOffset+m.config.FetchBatch); err != nil {
		return fmt.Errorf("can't store supplier skus: %w", err)
	}
	report.FetchedSKUs = len(skus)

	if rows < m.config.FetchBatch {
		if err = m.store.SetCleanupPhase(ctx, models.CleanupPhaseCompare); err != nil {
			return fmt.Errorf("can't move cleanup to compare phase: %w", err)
		}
		report.PhaseAfter = models.CleanupPhaseCompare
		return nil
	}

	report.PhaseAfter = models.CleanupPhaseFetch

	return nil
}

func (m *Machine) compare(ctx context.Context, logger *zerolog.Logger, report *models.CleanupReport) error {
	supplier, err := m.store.SupplierSKUs(ctx)
	if err != nil {
		return fmt.Errorf("can't get supplier skus: %w", err)
	}
	if len(supplier) == 0 {
		return m.abort(ctx, logger, report, ErrNoSupplierSKUs)
	}

	local, err := m.catalog.ListSKUs(ctx)
	if err != nil {
		return fmt.Errorf("can't list catalog skus: %w", err)
	}

	stale := missing(local, supplier)
	if len(stale) == 0 {
		return m.complete(ctx, report)
	}

	if err = m.store.QueueDeletions(ctx, stale); err != nil {
		return fmt.Errorf("can't queue deletions: %w", err)
	}
	report.QueuedSKUs = len(stale)
	report.PhaseAfter = models.CleanupPhaseDelete

	return nil
}

func (m *Machine) delete(ctx context.Context, logger *zerolog.Logger, report *models.CleanupReport) error {
	batch, err := m.store.PeekDeletions(ctx, m.config.DeleteBatch)
	if err != nil {
		return fmt.Errorf("can't get deletion batch: %w", err)
	}

	ids, err := m.catalog.IDsBySKU(ctx, batch)
	if err != nil {
		return fmt.Errorf("can't resolve deletion batch: %w", err)
	}

	for _, sku := range batch {
		id, ok := ids[sku]
		if !ok {
			continue
		}
		if err = m.catalog.Trash(ctx, id); err != nil {
			report.Failed++
			logger.Warn().Err(err).Str("sku", sku).Int64("id", id).Msg("can't trash product")
			continue
		}
		report.Trashed++
	}
	m.metrics.CleanupTrashed(report.Trashed)

	remaining, err := m.store.DropDeletions(ctx, len(batch))
	if err != nil {
		return fmt.Errorf("can't drop deletion batch: %w", err)
	}
	report.QueuedSKUs = remaining

	if remaining == 0 {
		return m.complete(ctx, report)
	}
	report.PhaseAfter = models.CleanupPhaseDelete

	return nil
}

func (m *Machine) complete(ctx context.Context, report *models.CleanupReport) error {
	if err := m.store.FinishCleanup(ctx, lo.ToPtr(m.clock.Now())); err != nil {
		return fmt.Errorf("can't complete cleanup cycle: %w", err)
	}
	report.PhaseAfter = models.CleanupPhaseNone
	report.Completed = true

	return nil
}

func (m *Machine) abort(
	ctx context.Context,
	logger *zerolog.Logger,
	report *models.CleanupReport,
	reason error,
) error {
	reason = fmt.Errorf("%w: %w", ErrAborted, reason)
	logger.Error().Err(reason).Str("phase", string(report.PhaseBefore)).Msg("cleanup cycle aborted")

	if err := m.store.FinishCleanup(ctx, nil); err != nil {
		return fmt.Errorf("can't abort cleanup cycle: %w (abort reason: %w)", err, reason)
	}
	report.PhaseAfter = models.CleanupPhaseNone
	report.Aborted = true

	return reason
}

// missing returns SKUs of local products absent in supplier SKUs.
func missing(local []models.SKURef, supplier []string) []string {
	known := make(map[string]struct{}, len(supplier))
	for _, sku := range supplier {
		known[sku] = struct{}{}
	}

	stale := lo.Filter(local, func(ref models.SKURef, _ int) bool {
		_, ok := known[ref.SKU]
		return !ok
	})

	return lo.Uniq(lo.Map(stale, func(ref models.SKURef, _ int) string {
		return ref.SKU
	}))
}

type nopMetrics struct{}

func (nopMetrics) CleanupStep(models.CleanupPhase) {}

func (nopMetrics) CleanupTrashed(int) {}

// WithClock sets Machine's custom Clock.
func WithClock(c Clock) Option {
	return func(m *Machine) {
		m.clock = c
	}
}

// WithLogger sets Machine's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithMetrics sets Machine's metrics.
func WithMetrics(metrics Metrics) Option {
	return func(m *Machine) {
		m.metrics = metrics
	}
}
