package storagetesting

import (
	"context"
	"sync"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/samber/lo"
)

// MemoryState is in-memory store of sync cursor and cleanup state.
type MemoryState struct {
	mu sync.Mutex

	cursor models.SyncCursor

	phase         models.CleanupPhase
	fetchOffset   int
	supplierSKUs  []string
	supplierSet   map[string]struct{}
	deletionQueue []string
	lastCompleted *time.Time
}

// NewMemoryState returns empty MemoryState.
func NewMemoryState() *MemoryState {
	return &MemoryState{
		phase:       models.CleanupPhaseNone,
		supplierSet: map[string]struct{}{},
	}
}

// SetCursor overwrites stored cursor.
func (m *MemoryState) SetCursor(cursor models.SyncCursor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cursor = cursor
}

// Cursor returns stored cursor.
func (m *MemoryState) Cursor(_ context.Context) (models.SyncCursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cursor, nil
}

// TryLock takes lock if it is free or stale.
func (m *MemoryState) TryLock(_ context.Context, now, staleBefore time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursor.LockHeld && m.cursor.LockAcquiredAt != nil && m.cursor.LockAcquiredAt.After(staleBefore) {
		return platform.ErrAlreadyRunning
	}

	m.cursor.LockHeld = true
	m.cursor.LockAcquiredAt = lo.ToPtr(now)
	m.cursor.IsSyncing = true

	return nil
}

// Unlock clears lock.
func (m *MemoryState) Unlock(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cursor.LockHeld = false
	m.cursor.LockAcquiredAt = nil

	return nil
}

// Heartbeat refreshes acquisition time of lock held since acquiredAt.
func (m *MemoryState) Heartbeat(_ context.Context, acquiredAt, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cursor.LockHeld || m.cursor.LockAcquiredAt == nil || !m.cursor.LockAcquiredAt.Equal(acquiredAt) {
		return platform.ErrLockLost
	}
	m.cursor.LockAcquiredAt = lo.ToPtr(now)

	return nil
}

// SetOffset sets cursor offset.
func (m *MemoryState) SetOffset(_ context.Context, offset int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cursor.Offset = offset

	return nil
}

// CompleteCycle resets offset, clears flags and stamps last sync start.
func (m *MemoryState) CompleteCycle(_ context.Context, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cursor = models.SyncCursor{LastSyncStart: lo.ToPtr(now)}

	return nil
}

// ResetCursor resets all cursor fields.
func (m *MemoryState) ResetCursor(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cursor = models.SyncCursor{}

	return nil
}

// SetLastCleanup sets completion time of last cleanup cycle.
func (m *MemoryState) SetLastCleanup(completedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompleted = lo.ToPtr(completedAt)
}

// CleanupState returns current cleanup state.
func (m *MemoryState) CleanupState(_ context.Context) (models.CleanupState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return models.CleanupState{
		Phase:                m.phase,
		FetchOffset:          m.fetchOffset,
		SupplierSKUs:         len(m.supplierSKUs),
		QueuedSKUs:           len(m.deletionQueue),
		LastCycleCompletedAt: m.lastCompleted,
	}, nil
}

// StartCleanup moves cleanup to fetch phase with empty artifacts.
func (m *MemoryState) StartCleanup(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearArtifacts()
	m.phase = models.CleanupPhaseFetch

	return nil
}

// AddSupplierSKUs adds skus to supplier set and sets next fetch offset.
func (m *MemoryState) AddSupplierSKUs(_ context.Context, skus []string, nextOffset int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sku := range skus {
		if _, ok := m.supplierSet[sku]; ok {
			continue
		}
		m.supplierSet[sku] = struct{}{}
		m.supplierSKUs = append(m.supplierSKUs, sku)
	}
	m.fetchOffset = nextOffset

	return nil
}

// SetCleanupPhase sets cleanup phase.
func (m *MemoryState) SetCleanupPhase(_ context.Context, phase models.CleanupPhase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.phase = phase

	return nil
}

// SupplierSKUs returns accumulated supplier skus.
func (m *MemoryState) SupplierSKUs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.supplierSKUs...), nil
}

// QueueDeletions stores deletion queue, clears supplier set and moves cleanup to delete phase.
func (m *MemoryState) QueueDeletions(_ context.Context, skus []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletionQueue = append([]string(nil), skus...)
	m.supplierSKUs = nil
	m.supplierSet = map[string]struct{}{}
	m.fetchOffset = 0
	m.phase = models.CleanupPhaseDelete

	return nil
}

// PeekDeletions returns up to limit skus from front of deletion queue.
func (m *MemoryState) PeekDeletions(_ context.Context, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.deletionQueue[:min(limit, len(m.deletionQueue))]...), nil
}

// DropDeletions removes n skus from front of deletion queue and returns number of remaining ones.
func (m *MemoryState) DropDeletions(_ context.Context, n int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletionQueue = m.deletionQueue[min(n, len(m.deletionQueue)):]

	return len(m.deletionQueue), nil
}

// FinishCleanup moves cleanup to none phase and drops artifacts. Completion time is stamped when provided.
func (m *MemoryState) FinishCleanup(_ context.Context, completedAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearArtifacts()
	m.phase = models.CleanupPhaseNone
	if completedAt != nil {
		m.lastCompleted = lo.ToPtr(*completedAt)
	}

	return nil
}

// DeletionQueue returns copy of deletion queue.
func (m *MemoryState) DeletionQueue() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.deletionQueue...)
}

func (m *MemoryState) clearArtifacts() {
	m.fetchOffset = 0
	m.supplierSKUs = nil
	m.supplierSet = map[string]struct{}{}
	m.deletionQueue = nil
}
