package handler_test

import (
	"context"
	"testing"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/handler"
	"github.com/MichalMitros/supplier-feed-sync/internal/handler/mocks"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitDispatcherSync(t *testing.T) {
	report := models.SyncReport{RunID: "run", Outcome: models.SyncOutcomeAdvanced, NextOffset: 50}

	syncer := mocks.NewSyncer(t)
	syncer.On("Run", mock.Anything).Return(report, nil).Once()

	d := handler.NewDispatcher(syncer, mocks.NewCleaner(t), mocks.NewSyncState(t))
	got, err := d.Sync(context.TODO())

	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestUnitDispatcherCleanupOverlap(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	cleaner := mocks.NewCleaner(t)
	cleaner.On("Step", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(models.CleanupReport{PhaseBefore: models.CleanupPhaseFetch, PhaseAfter: models.CleanupPhaseCompare}, nil).
		Once()

	d := handler.NewDispatcher(mocks.NewSyncer(t), cleaner, mocks.NewSyncState(t))

	done := make(chan error)
	go func() {
		_, err := d.Cleanup(context.TODO())
		done <- err
	}()
	<-started

	_, err := d.Cleanup(context.TODO())
	assert.ErrorIs(t, err, handler.ErrCleanupRunning, "overlapping step should be rejected")
	assert.ErrorIs(t, d.AbortCleanup(context.TODO()), handler.ErrCleanupRunning, "abort should be rejected while step runs")

	close(release)
	require.NoError(t, <-done)
}

func TestUnitDispatcherAbortCleanup(t *testing.T) {
	cleaner := mocks.NewCleaner(t)
	cleaner.On("Abort", mock.Anything).Return(nil).Once()

	d := handler.NewDispatcher(mocks.NewSyncer(t), cleaner, mocks.NewSyncState(t))

	require.NoError(t, d.AbortCleanup(context.TODO()))
}

func TestUnitDispatcherReset(t *testing.T) {
	tests := map[string]struct {
		resetErr error
	}{
		"ok":          {},
		"store error": {resetErr: assert.AnError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			state := mocks.NewSyncState(t)
			state.On("Reset", mock.Anything).Return(tt.resetErr).Once()

			d := handler.NewDispatcher(mocks.NewSyncer(t), mocks.NewCleaner(t), state)

			require.ErrorIs(t, d.Reset(context.TODO()), tt.resetErr)
		})
	}
}

func TestUnitDispatcherStatus(t *testing.T) {
	lastSync := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	cursor := models.SyncCursor{Offset: 100, LastSyncStart: &lastSync, IsSyncing: true, LockHeld: true}
	cleanup := models.CleanupState{Phase: models.CleanupPhaseDelete, QueuedSKUs: 20}

	tests := map[string]struct {
		cursorErr  error
		cleanupErr error
		want       models.Status
		wantErr    error
	}{
		"ok": {
			want: models.Status{Sync: cursor, Cleanup: cleanup},
		},
		"cursor error": {
			cursorErr: assert.AnError,
			wantErr:   assert.AnError,
		},
		"cleanup error": {
			cleanupErr: assert.AnError,
			wantErr:    assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			state := mocks.NewSyncState(t)
			state.On("Cursor", mock.Anything).Return(cursor, tt.cursorErr).Once()

			cleaner := mocks.NewCleaner(t)
			if tt.cursorErr == nil {
				cleaner.On("State", mock.Anything).Return(cleanup, tt.cleanupErr).Once()
			}

			d := handler.NewDispatcher(mocks.NewSyncer(t), cleaner, state)
			got, err := d.Status(context.TODO())

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
