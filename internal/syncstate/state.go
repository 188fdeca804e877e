package syncstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/clock"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
)

// DefaultStaleAfter is age after which held lock is considered abandoned.
const DefaultStaleAfter = 600 * time.Second

//go:generate mockery --name Store --filename store.go

// Store persists sync cursor singleton.
type Store interface {
	// Cursor returns current cursor.
	Cursor(ctx context.Context) (models.SyncCursor, error)
	// TryLock takes lock if it is free or was acquired at or before staleBefore.
	// It returns platform.ErrAlreadyRunning if lock is held and fresh.
	TryLock(ctx context.Context, now, staleBefore time.Time) error
	// Unlock clears lock.
	Unlock(ctx context.Context) error
	// Heartbeat moves acquisition time of lock held since acquiredAt to now.
	// It returns platform.ErrLockLost if lock isn't held since acquiredAt.
	Heartbeat(ctx context.Context, acquiredAt, now time.Time) error
	// SetOffset sets cursor offset.
	SetOffset(ctx context.Context, offset int) error
	// CompleteCycle resets offset, clears flags and stamps last sync start.
	CompleteCycle(ctx context.Context, now time.Time) error
	// ResetCursor resets all cursor fields.
	ResetCursor(ctx context.Context) error
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// Option is custom configuration of State.
type Option func(s *State)

// State is persistent sync cursor with stale-aware lock.
type State struct {
	store      Store
	clock      Clock
	staleAfter time.Duration

	mu         sync.Mutex
	acquiredAt time.Time
}

// NewState returns new State.
func NewState(store Store, ops ...Option) *State {
	s := &State{
		store:      store,
		clock:      clock.System{},
		staleAfter: DefaultStaleAfter,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// AcquireLock takes sync lock. It returns false without error when fresh lock is held by another run.
func (s *State) AcquireLock(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	err := s.store.TryLock(ctx, now, now.Add(-s.staleAfter))
	if errors.Is(err, platform.ErrAlreadyRunning) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("can't acquire sync lock: %w", err)
	}
	s.acquiredAt = now

	return true, nil
}

// ReleaseLock clears sync lock.
func (s *State) ReleaseLock(ctx context.Context) error {
	if err := s.store.Unlock(ctx); err != nil {
		return fmt.Errorf("can't release sync lock: %w", err)
	}

	return nil
}

// Heartbeat refreshes lock taken by last AcquireLock so it isn't considered stale.
// It returns platform.ErrLockLost if lock was released or taken over by another run.
func (s *State) Heartbeat(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := s.store.Heartbeat(ctx, s.acquiredAt, now); err != nil {
		return fmt.Errorf("can't refresh sync lock: %w", err)
	}
	s.acquiredAt = now

	return nil
}

// Offset returns current cursor offset.
func (s *State) Offset(ctx context.Context) (int, error) {
	cursor, err := s.Cursor(ctx)
	if err != nil {
		return 0, err
	}

	return cursor.Offset, nil
}

// SetOffset sets cursor offset.
func (s *State) SetOffset(ctx context.Context, offset int) error {
	if offset < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeOffset, offset)
	}

	if err := s.store.SetOffset(ctx, offset); err != nil {
		return fmt.Errorf("can't set sync offset: %w", err)
	}

	return nil
}

// LastSync returns start time of most recent completed cycle or nil if there was none.
func (s *State) LastSync(ctx context.Context) (*time.Time, error) {
	cursor, err := s.Cursor(ctx)
	if err != nil {
		return nil, err
	}

	return cursor.LastSyncStart, nil
}

// MarkCompleted resets offset, clears syncing and lock flags and stamps last sync time.
func (s *State) MarkCompleted(ctx context.Context) error {
	if err := s.store.CompleteCycle(ctx, s.clock.Now()); err != nil {
		return fmt.Errorf("can't complete sync cycle: %w", err)
	}

	return nil
}

// Reset hard resets cursor.
func (s *State) Reset(ctx context.Context) error {
	if err := s.store.ResetCursor(ctx); err != nil {
		return fmt.Errorf("can't reset sync cursor: %w", err)
	}

	return nil
}

// Cursor returns current cursor.
func (s *State) Cursor(ctx context.Context) (models.SyncCursor, error) {
	cursor, err := s.store.Cursor(ctx)
	if err != nil {
		return models.SyncCursor{}, fmt.Errorf("can't get sync cursor: %w", err)
	}

	return cursor, nil
}

// WithClock sets State's custom Clock.
func WithClock(c Clock) Option {
	return func(s *State) {
		s.clock = c
	}
}

// WithStaleAfter sets age after which held lock is considered abandoned.
func WithStaleAfter(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.staleAfter = d
		}
	}
}

// now returns current time truncated to precision of stored timestamps.
func (s *State) now() time.Time {
	return s.clock.Now().Truncate(time.Microsecond)
}
