package handler

import (
	"context"
	"fmt"
	"sync"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Syncer --filename syncer.go
//go:generate mockery --name Cleaner --filename cleaner.go
//go:generate mockery --name SyncState --filename sync_state.go
//go:generate mockery --name Commands --filename commands.go

// Syncer runs single sync invocation.
type Syncer interface {
	Run(ctx context.Context) (models.SyncReport, error)
}

// Cleaner advances cleanup cycle.
type Cleaner interface {
	Step(ctx context.Context) (models.CleanupReport, error)
	Abort(ctx context.Context) error
	State(ctx context.Context) (models.CleanupState, error)
}

// SyncState is sync cursor.
type SyncState interface {
	Cursor(ctx context.Context) (models.SyncCursor, error)
	Reset(ctx context.Context) error
}

// Commands are operations exposed by triggers.
type Commands interface {
	Sync(ctx context.Context) (models.SyncReport, error)
	Cleanup(ctx context.Context) (models.CleanupReport, error)
	AbortCleanup(ctx context.Context) error
	Reset(ctx context.Context) error
	Status(ctx context.Context) (models.Status, error)
}

// DispatcherOption is custom configuration of Dispatcher.
type DispatcherOption func(d *Dispatcher)

// Dispatcher is single entry point of all triggers.
// Cleanup invocations are serialized, overlapping ones are rejected with ErrCleanupRunning.
type Dispatcher struct {
	syncer    Syncer
	cleaner   Cleaner
	state     SyncState
	cleanupMu sync.Mutex
	logger    *zerolog.Logger
}

// NewDispatcher returns new Dispatcher.
func NewDispatcher(syncer Syncer, cleaner Cleaner, state SyncState, ops ...DispatcherOption) *Dispatcher {
	nop := zerolog.Nop()
	d := &Dispatcher{
		syncer:  syncer,
		cleaner: cleaner,
		state:   state,
		logger:  &nop,
	}

	for _, op := range ops {
		op(d)
	}

	return d
}

// Sync runs single sync invocation. Overlapping invocations are guarded by sync lock.
func (d *Dispatcher) Sync(ctx context.Context) (models.SyncReport, error) {
	return d.syncer.Run(ctx)
}

// Cleanup runs single cleanup step.
func (d *Dispatcher) Cleanup(ctx context.Context) (models.CleanupReport, error) {
	if !d.cleanupMu.TryLock() {
		d.logger.Info().Msg("cleanup step skipped, another one is running")
		return models.CleanupReport{}, ErrCleanupRunning
	}
	defer d.cleanupMu.Unlock()

	return d.cleaner.Step(ctx)
}

// AbortCleanup collapses cleanup cycle to none phase.
func (d *Dispatcher) AbortCleanup(ctx context.Context) error {
	if !d.cleanupMu.TryLock() {
		return ErrCleanupRunning
	}
	defer d.cleanupMu.Unlock()

	return d.cleaner.Abort(ctx)
}

// Reset hard-resets sync cursor.
func (d *Dispatcher) Reset(ctx context.Context) error {
	if err := d.state.Reset(ctx); err != nil {
		return err
	}
	d.logger.Info().Msg("sync cursor reset")

	return nil
}

// Status returns sync cursor and cleanup state.
func (d *Dispatcher) Status(ctx context.Context) (models.Status, error) {
	cursor, err := d.state.Cursor(ctx)
	if err != nil {
		return models.Status{}, fmt.Errorf("can't get sync status: %w", err)
	}

	cleanup, err := d.cleaner.State(ctx)
	if err != nil {
		return models.Status{}, fmt.Errorf("can't get cleanup status: %w", err)
	}

	return models.Status{Sync: cursor, Cleanup: cleanup}, nil
}

// WithDispatcherLogger sets Dispatcher's logger.
func WithDispatcherLogger(logger *zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}
