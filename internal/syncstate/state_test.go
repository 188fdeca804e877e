package syncstate_test

import (
	"context"
	"testing"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/clock"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/storagetesting"
	"github.com/MichalMitros/supplier-feed-sync/internal/syncstate"
	"github.com/MichalMitros/supplier-feed-sync/internal/syncstate/mocks"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func TestUnitAcquireLock(t *testing.T) {
	tests := map[string]struct {
		cursor   models.SyncCursor
		wantLock bool
	}{
		"free lock": {
			wantLock: true,
		},
		"fresh lock": {
			cursor:   models.SyncCursor{LockHeld: true, LockAcquiredAt: lo.ToPtr(start.Add(-100 * time.Second))},
			wantLock: false,
		},
		"stale lock": {
			cursor:   models.SyncCursor{LockHeld: true, LockAcquiredAt: lo.ToPtr(start.Add(-601 * time.Second))},
			wantLock: true,
		},
		"lock exactly at stale age": {
			cursor:   models.SyncCursor{LockHeld: true, LockAcquiredAt: lo.ToPtr(start.Add(-600 * time.Second))},
			wantLock: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store := storagetesting.NewMemoryState()
			store.SetCursor(tt.cursor)
			state := syncstate.NewState(store, syncstate.WithClock(clock.NewManual(start)))

			locked, err := state.AcquireLock(context.TODO())

			require.NoError(t, err, "shouldn't return error")
			assert.Equal(t, tt.wantLock, locked, "should acquire lock only when free or stale")

			cursor, err := state.Cursor(context.TODO())
			require.NoError(t, err, "shouldn't return error")
			if tt.wantLock {
				assert.True(t, cursor.LockHeld, "should hold lock")
				assert.True(t, cursor.IsSyncing, "should mark cursor syncing")
				assert.Equal(t, start, *cursor.LockAcquiredAt, "should stamp lock time")
			} else {
				assert.Equal(t, tt.cursor, cursor, "shouldn't touch held lock")
			}
		})
	}
}

func TestUnitAcquireLockTwice(t *testing.T) {
	now := clock.NewManual(start)
	state := syncstate.NewState(storagetesting.NewMemoryState(), syncstate.WithClock(now))

	first, err := state.AcquireLock(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	second, err := state.AcquireLock(context.TODO())
	require.NoError(t, err, "shouldn't return error")

	assert.True(t, first, "should acquire free lock")
	assert.False(t, second, "shouldn't acquire held lock")

	now.Advance(10 * time.Minute)
	third, err := state.AcquireLock(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	assert.True(t, third, "should take over abandoned lock")
}

func TestUnitAcquireLockCustomStaleAfter(t *testing.T) {
	store := storagetesting.NewMemoryState()
	store.SetCursor(models.SyncCursor{LockHeld: true, LockAcquiredAt: lo.ToPtr(start.Add(-100 * time.Second))})
	state := syncstate.NewState(store, syncstate.WithClock(clock.NewManual(start)), syncstate.WithStaleAfter(time.Minute))

	locked, err := state.AcquireLock(context.TODO())

	require.NoError(t, err, "shouldn't return error")
	assert.True(t, locked, "should consider lock older than custom age stale")
}

func TestUnitAcquireLockStoreError(t *testing.T) {
	store := mocks.NewStore(t)
	store.On("TryLock", mock.Anything, start, start.Add(-syncstate.DefaultStaleAfter)).Return(assert.AnError).Once()
	state := syncstate.NewState(store, syncstate.WithClock(clock.NewManual(start)))

	locked, err := state.AcquireLock(context.TODO())

	assert.False(t, locked, "shouldn't report lock")
	assert.ErrorIs(t, err, assert.AnError, "should return store error")
}

func TestUnitHeartbeat(t *testing.T) {
	now := clock.NewManual(start)
	state := syncstate.NewState(storagetesting.NewMemoryState(), syncstate.WithClock(now))
	_, err := state.AcquireLock(context.TODO())
	require.NoError(t, err, "shouldn't return error")

	now.Advance(5 * time.Minute)
	require.NoError(t, state.Heartbeat(context.TODO()), "shouldn't return error")

	cursor, err := state.Cursor(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	assert.Equal(t, start.Add(5*time.Minute), *cursor.LockAcquiredAt, "should refresh lock time")
}

func TestUnitHeartbeatLockLost(t *testing.T) {
	tests := map[string]struct {
		lose func(t *testing.T, store *storagetesting.MemoryState, now *clock.Manual)
	}{
		"released": {
			lose: func(t *testing.T, store *storagetesting.MemoryState, _ *clock.Manual) {
				require.NoError(t, store.Unlock(context.TODO()))
			},
		},
		"reset": {
			lose: func(t *testing.T, store *storagetesting.MemoryState, _ *clock.Manual) {
				require.NoError(t, store.ResetCursor(context.TODO()))
			},
		},
		"taken over after going stale": {
			lose: func(t *testing.T, store *storagetesting.MemoryState, now *clock.Manual) {
				now.Advance(601 * time.Second)
				other := syncstate.NewState(store, syncstate.WithClock(now))
				locked, err := other.AcquireLock(context.TODO())
				require.NoError(t, err)
				require.True(t, locked)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			now := clock.NewManual(start)
			store := storagetesting.NewMemoryState()
			state := syncstate.NewState(store, syncstate.WithClock(now))
			locked, err := state.AcquireLock(context.TODO())
			require.NoError(t, err, "shouldn't return error")
			require.True(t, locked, "should acquire free lock")

			tt.lose(t, store, now)
			now.Advance(time.Minute)

			err = state.Heartbeat(context.TODO())
			assert.ErrorIs(t, err, platform.ErrLockLost, "should report lost lock")
		})
	}
}

func TestUnitReleaseLock(t *testing.T) {
	state := syncstate.NewState(storagetesting.NewMemoryState(), syncstate.WithClock(clock.NewManual(start)))
	_, err := state.AcquireLock(context.TODO())
	require.NoError(t, err, "shouldn't return error")

	require.NoError(t, state.ReleaseLock(context.TODO()), "shouldn't return error")

	locked, err := state.AcquireLock(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	assert.True(t, locked, "should acquire released lock")
}

func TestUnitSetOffset(t *testing.T) {
	tests := map[string]struct {
		offset     int
		wantOffset int
		wantErr    error
	}{
		"positive offset": {
			offset:     150,
			wantOffset: 150,
		},
		"zero offset": {
			offset:     0,
			wantOffset: 0,
		},
		"negative offset": {
			offset:     -1,
			wantOffset: 50,
			wantErr:    syncstate.ErrNegativeOffset,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store := storagetesting.NewMemoryState()
			store.SetCursor(models.SyncCursor{Offset: 50})
			state := syncstate.NewState(store)

			err := state.SetOffset(context.TODO(), tt.offset)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr, "should return correct error")
			} else {
				assert.NoError(t, err, "shouldn't return error")
			}
			offset, err := state.Offset(context.TODO())
			require.NoError(t, err, "shouldn't return error")
			assert.Equal(t, tt.wantOffset, offset, "should store correct offset")
		})
	}
}

func TestUnitMarkCompleted(t *testing.T) {
	now := clock.NewManual(start)
	state := syncstate.NewState(storagetesting.NewMemoryState(), syncstate.WithClock(now))
	_, err := state.AcquireLock(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	require.NoError(t, state.SetOffset(context.TODO(), 300), "shouldn't return error")

	now.Advance(time.Minute)
	require.NoError(t, state.MarkCompleted(context.TODO()), "shouldn't return error")

	cursor, err := state.Cursor(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	assert.Equal(t, models.SyncCursor{LastSyncStart: lo.ToPtr(start.Add(time.Minute))}, cursor, "should reset cursor and stamp last sync")

	lastSync, err := state.LastSync(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	assert.Equal(t, start.Add(time.Minute), *lastSync, "should return last sync time")
}

func TestUnitReset(t *testing.T) {
	store := storagetesting.NewMemoryState()
	store.SetCursor(models.SyncCursor{
		Offset:         200,
		LastSyncStart:  lo.ToPtr(start),
		IsSyncing:      true,
		LockHeld:       true,
		LockAcquiredAt: lo.ToPtr(start),
	})
	state := syncstate.NewState(store)

	require.NoError(t, state.Reset(context.TODO()), "shouldn't return error")

	cursor, err := state.Cursor(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	assert.Equal(t, models.SyncCursor{}, cursor, "should clear cursor")
}

func TestUnitStoreErrors(t *testing.T) {
	tests := map[string]struct {
		method  string
		args    []interface{}
		returns []interface{}
		call    func(s *syncstate.State) error
	}{
		"release": {
			method:  "Unlock",
			args:    []interface{}{mock.Anything},
			returns: []interface{}{assert.AnError},
			call:    func(s *syncstate.State) error { return s.ReleaseLock(context.TODO()) },
		},
		"heartbeat": {
			method:  "Heartbeat",
			args:    []interface{}{mock.Anything, time.Time{}, start},
			returns: []interface{}{assert.AnError},
			call:    func(s *syncstate.State) error { return s.Heartbeat(context.TODO()) },
		},
		"complete": {
			method:  "CompleteCycle",
			args:    []interface{}{mock.Anything, start},
			returns: []interface{}{assert.AnError},
			call:    func(s *syncstate.State) error { return s.MarkCompleted(context.TODO()) },
		},
		"reset": {
			method:  "ResetCursor",
			args:    []interface{}{mock.Anything},
			returns: []interface{}{assert.AnError},
			call:    func(s *syncstate.State) error { return s.Reset(context.TODO()) },
		},
		"offset": {
			method:  "Cursor",
			args:    []interface{}{mock.Anything},
			returns: []interface{}{models.SyncCursor{}, assert.AnError},
			call: func(s *syncstate.State) error {
				_, err := s.Offset(context.TODO())
				return err
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store := mocks.NewStore(t)
			store.On(tt.method, tt.args...).Return(tt.returns...).Once()
			state := syncstate.NewState(store, syncstate.WithClock(clock.NewManual(start)))

			err := tt.call(state)

			assert.ErrorIs(t, err, assert.AnError, "should wrap store error")
		})
	}
}
