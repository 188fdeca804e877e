package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// stateRowID is id of sync cursor and cleanup state singleton rows.
const stateRowID = 1

// Postgres is storage for sync cursor and cleanup state.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// Cursor returns sync cursor.
func (p Postgres) Cursor(ctx context.Context) (models.SyncCursor, error) {
	var cursor pgmodels.SyncCursor
	err := table.SyncCursor.SELECT(table.SyncCursor.AllColumns).
		WHERE(table.SyncCursor.ID.EQ(pg.Int32(stateRowID))).
		QueryContext(ctx, p.db, &cursor)
	if err != nil {
		return models.SyncCursor{}, fmt.Errorf("can't get sync cursor: %w", err)
	}

	return fromDBCursor(&cursor), nil
}

// TryLock takes sync lock in single conditional update.
// It returns platform.ErrAlreadyRunning if lock is held and was acquired after staleBefore.
func (p Postgres) TryLock(ctx context.Context, now, staleBefore time.Time) error {
	result, err := table.SyncCursor.UPDATE(
		table.SyncCursor.LockHeld,
		table.SyncCursor.LockAcquiredAt,
		table.SyncCursor.IsSyncing,
	).
		MODEL(pgmodels.SyncCursor{
			LockHeld:       true,
			LockAcquiredAt: &now,
			IsSyncing:      true,
		}).
		WHERE(pg.AND(
			table.SyncCursor.ID.EQ(pg.Int32(stateRowID)),
			pg.OR(
				table.SyncCursor.LockHeld.IS_FALSE(),
				table.SyncCursor.LockAcquiredAt.IS_NULL(),
				table.SyncCursor.LockAcquiredAt.LT_EQ(pg.TimestampzT(staleBefore)),
			),
		)).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't take sync lock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't take sync lock: %w", err)
	}
	if rowsAffected == 0 {
		return platform.ErrAlreadyRunning
	}

	return nil
}

// Unlock clears sync lock.
func (p Postgres) Unlock(ctx context.Context) error {
	return p.updateCursor(ctx, pgmodels.SyncCursor{}, pg.ColumnList{table.SyncCursor.LockHeld, table.SyncCursor.LockAcquiredAt})
}

// Heartbeat moves acquisition time of lock held since acquiredAt to now.
// It returns platform.ErrLockLost if lock was released or acquired again in the meantime.
func (p Postgres) Heartbeat(ctx context.Context, acquiredAt, now time.Time) error {
	result, err := table.SyncCursor.UPDATE(table.SyncCursor.LockAcquiredAt).
		MODEL(pgmodels.SyncCursor{LockAcquiredAt: &now}).
		WHERE(pg.AND(
			table.SyncCursor.ID.EQ(pg.Int32(stateRowID)),
			table.SyncCursor.LockHeld.IS_TRUE(),
			table.SyncCursor.LockAcquiredAt.EQ(pg.TimestampzT(acquiredAt)),
		)).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't refresh sync lock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't refresh sync lock: %w", err)
	}
	if rowsAffected == 0 {
		return platform.ErrLockLost
	}

	return nil
}

// SetOffset sets cursor offset.
func (p Postgres) SetOffset(ctx context.Context, offset int) error {
	return p.updateCursor(ctx, pgmodels.SyncCursor{PageOffset: int32(offset)}, pg.ColumnList{table.SyncCursor.PageOffset})
}

// CompleteCycle resets offset, clears flags and lock, and stamps last sync start.
func (p Postgres) CompleteCycle(ctx context.Context, now time.Time) error {
	return p.updateCursor(ctx, pgmodels.SyncCursor{LastSyncStart: &now}, table.SyncCursor.MutableColumns)
}

// ResetCursor resets all cursor fields.
func (p Postgres) ResetCursor(ctx context.Context) error {
	return p.updateCursor(ctx, pgmodels.SyncCursor{}, table.SyncCursor.MutableColumns)
}

func (p Postgres) updateCursor(ctx context.Context, cursor pgmodels.SyncCursor, columns pg.ColumnList) error {
	result, err := table.SyncCursor.UPDATE(columns).
		MODEL(cursor).
		WHERE(table.SyncCursor.ID.EQ(pg.Int32(stateRowID))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update sync cursor: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update sync cursor: %w", lo.Ternary(err != nil, err, platform.ErrNotFound))
	}

	return nil
}

// CleanupState returns cleanup state with sizes of its artifacts.
func (p Postgres) CleanupState(ctx context.Context) (models.CleanupState, error) {
	var state pgmodels.CleanupState
	err := table.CleanupState.SELECT(table.CleanupState.AllColumns).
		WHERE(table.CleanupState.ID.EQ(pg.Int32(stateRowID))).
		QueryContext(ctx, p.db, &state)
	if err != nil {
		return models.CleanupState{}, fmt.Errorf("can't get cleanup state: %w", err)
	}

	supplierSKUs, err := count(ctx, p.db, table.CleanupSupplierSku)
	if err != nil {
		return models.CleanupState{}, fmt.Errorf("can't count supplier skus: %w", err)
	}

	queuedSKUs, err := count(ctx, p.db, table.CleanupDeletionQueue)
	if err != nil {
		return models.CleanupState{}, fmt.Errorf("can't count queued skus: %w", err)
	}

	return models.CleanupState{
		Phase:                models.CleanupPhase(state.Phase),
		FetchOffset:          int(state.FetchOffset),
		SupplierSKUs:         supplierSKUs,
		QueuedSKUs:           queuedSKUs,
		LastCycleCompletedAt: state.LastCycleCompletedAt,
	}, nil
}

// StartCleanup drops artifacts of previous cycle and moves cleanup to fetch phase.
func (p Postgres) StartCleanup(ctx context.Context) error {
	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		if err := clearArtifacts(ctx, tx); err != nil {
			return err
		}

		return setCleanupState(ctx, tx, models.CleanupPhaseFetch, 0)
	})
}

// AddSupplierSKUs adds skus to supplier set and stores next fetch offset.
func (p Postgres) AddSupplierSKUs(ctx context.Context, skus []string, nextOffset int) error {
	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		rows := lo.Map(lo.Uniq(skus), func(sku string, _ int) pgmodels.CleanupSupplierSku {
			return pgmodels.CleanupSupplierSku{Sku: sku}
		})

		if len(rows) > 0 {
			_, err := table.CleanupSupplierSku.INSERT(table.CleanupSupplierSku.Sku).
				MODELS(rows).
				ON_CONFLICT(table.CleanupSupplierSku.Sku).
				DO_NOTHING().
				ExecContext(ctx, tx)
			if err != nil {
				return fmt.Errorf("can't insert supplier skus: %w", err)
			}
		}

		_, err := table.CleanupState.UPDATE(table.CleanupState.FetchOffset).
			MODEL(pgmodels.CleanupState{FetchOffset: int32(nextOffset)}).
			WHERE(table.CleanupState.ID.EQ(pg.Int32(stateRowID))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't update fetch offset: %w", err)
		}

		return nil
	})
}

// SetCleanupPhase sets cleanup phase.
func (p Postgres) SetCleanupPhase(ctx context.Context, phase models.CleanupPhase) error {
	_, err := table.CleanupState.UPDATE(table.CleanupState.Phase).
		MODEL(pgmodels.CleanupState{Phase: string(phase)}).
		WHERE(table.CleanupState.ID.EQ(pg.Int32(stateRowID))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't set cleanup phase: %w", err)
	}

	return nil
}

// SupplierSKUs returns accumulated supplier set.
func (p Postgres) SupplierSKUs(ctx context.Context) ([]string, error) {
	var rows []pgmodels.CleanupSupplierSku
	err := table.CleanupSupplierSku.SELECT(table.CleanupSupplierSku.Sku).
		ORDER_BY(table.CleanupSupplierSku.Sku.ASC()).
		QueryContext(ctx, p.db, &rows)
	if err != nil {
		return nil, fmt.Errorf("can't get supplier skus: %w", err)
	}

	return lo.Map(rows, func(row pgmodels.CleanupSupplierSku, _ int) string {
		return row.Sku
	}), nil
}

// QueueDeletions replaces deletion queue, drops supplier set and moves cleanup to delete phase.
func (p Postgres) QueueDeletions(ctx context.Context, skus []string) error {
	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		if err := clearArtifacts(ctx, tx); err != nil {
			return err
		}

		if len(skus) > 0 {
			rows := lo.Map(skus, func(sku string, _ int) pgmodels.CleanupDeletionQueue {
				return pgmodels.CleanupDeletionQueue{Sku: sku}
			})
			_, err := table.CleanupDeletionQueue.INSERT(table.CleanupDeletionQueue.Sku).
				MODELS(rows).
				ExecContext(ctx, tx)
			if err != nil {
				return fmt.Errorf("can't queue deletions: %w", err)
			}
		}

		return setCleanupState(ctx, tx, models.CleanupPhaseDelete, 0)
	})
}

// PeekDeletions returns up to limit skus from front of deletion queue.
func (p Postgres) PeekDeletions(ctx context.Context, limit int) ([]string, error) {
	var rows []pgmodels.CleanupDeletionQueue
	err := table.CleanupDeletionQueue.SELECT(table.CleanupDeletionQueue.AllColumns).
		ORDER_BY(table.CleanupDeletionQueue.Position.ASC()).
		LIMIT(int64(limit)).
		QueryContext(ctx, p.db, &rows)
	if err != nil {
		return nil, fmt.Errorf("can't get queued deletions: %w", err)
	}

	return lo.Map(rows, func(row pgmodels.CleanupDeletionQueue, _ int) string {
		return row.Sku
	}), nil
}

// DropDeletions removes n skus from front of deletion queue and returns number of remaining ones.
func (p Postgres) DropDeletions(ctx context.Context, n int) (int, error) {
	remaining := 0

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		front := table.CleanupDeletionQueue.SELECT(table.CleanupDeletionQueue.Position).
			ORDER_BY(table.CleanupDeletionQueue.Position.ASC()).
			LIMIT(int64(n))

		_, err := table.CleanupDeletionQueue.DELETE().
			WHERE(table.CleanupDeletionQueue.Position.IN(front)).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't drop queued deletions: %w", err)
		}

		remaining, err = count(ctx, tx, table.CleanupDeletionQueue)
		return err
	})
	if err != nil {
		return 0, err
	}

	return remaining, nil
}

// FinishCleanup drops cleanup artifacts and moves cleanup to none phase.
// Completion time is stamped when completedAt isn't nil.
func (p Postgres) FinishCleanup(ctx context.Context, completedAt *time.Time) error {
	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		if err := clearArtifacts(ctx, tx); err != nil {
			return err
		}

		if err := setCleanupState(ctx, tx, models.CleanupPhaseNone, 0); err != nil {
			return err
		}

		if completedAt == nil {
			return nil
		}

		_, err := table.CleanupState.UPDATE(table.CleanupState.LastCycleCompletedAt).
			MODEL(pgmodels.CleanupState{LastCycleCompletedAt: completedAt}).
			WHERE(table.CleanupState.ID.EQ(pg.Int32(stateRowID))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't stamp cleanup completion: %w", err)
		}

		return nil
	})
}

func setCleanupState(ctx context.Context, db qrm.Executable, phase models.CleanupPhase, fetchOffset int) error {
	_, err := table.CleanupState.UPDATE(table.CleanupState.Phase, table.CleanupState.FetchOffset).
		MODEL(pgmodels.CleanupState{
			Phase:       string(phase),
			FetchOffset: int32(fetchOffset),
		}).
		WHERE(table.CleanupState.ID.EQ(pg.Int32(stateRowID))).
		ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("can't set cleanup state: %w", err)
	}

	return nil
}

func clearArtifacts(ctx context.Context, db qrm.Executable) error {
	_, err := table.CleanupSupplierSku.DELETE().
		WHERE(table.CleanupSupplierSku.Sku.IS_NOT_NULL()).
		ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("can't clear supplier skus: %w", err)
	}

	_, err = table.CleanupDeletionQueue.DELETE().
		WHERE(table.CleanupDeletionQueue.Position.IS_NOT_NULL()).
		ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("can't clear deletion queue: %w", err)
	}

	return nil
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func count(ctx context.Context, db rowQueryer, from pg.ReadableTable) (int, error) {
	query, args := pg.SELECT(pg.COUNT(pg.STAR)).FROM(from).Sql()

	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
