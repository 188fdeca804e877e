package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/clock"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage"
	pgmodels "github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var start = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestPostgresIntegration(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

type PostgresTestSuite struct {
	suite.Suite
	DB *sql.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.DB = storagetesting.Open(s.T())
	if err := storage.Migrate(s.DB); err != nil {
		s.FailNow("migrate DB", err)
	}
	storagetesting.CleanupData(s.T(), s.DB)
}

func (s *PostgresTestSuite) TearDownSuite() {
	storagetesting.CleanupData(s.T(), s.DB)
	if err := s.DB.Close(); err != nil {
		s.FailNow("close DB", err)
	}
}

func (s *PostgresTestSuite) TestIntegrationTryLock() {
	staleBefore := start.Add(-10 * time.Minute)

	tests := map[string]struct {
		stored  pgmodels.SyncCursor
		wantErr error
	}{
		"free lock": {},
		"fresh lock": {
			stored:  pgmodels.SyncCursor{LockHeld: true, IsSyncing: true, LockAcquiredAt: lo.ToPtr(start.Add(-time.Minute))},
			wantErr: platform.ErrAlreadyRunning,
		},
		"stale lock": {
			stored: pgmodels.SyncCursor{LockHeld: true, IsSyncing: true, LockAcquiredAt: lo.ToPtr(start.Add(-11 * time.Minute))},
		},
		"lock exactly at stale boundary": {
			stored: pgmodels.SyncCursor{LockHeld: true, IsSyncing: true, LockAcquiredAt: lo.ToPtr(staleBefore)},
		},
		"held lock without acquisition time": {
			stored: pgmodels.SyncCursor{LockHeld: true},
		},
	}

	for name, tc := range tests {
		s.Run(name, func() {
			storagetesting.CleanupData(s.T(), s.DB)
			storagetesting.SetCursor(s.T(), s.DB, tc.stored)
			p := storage.NewPostgres(s.DB)

			err := p.TryLock(context.Background(), start, staleBefore)

			cursor := storagetesting.GetCursor(s.T(), s.DB)
			if tc.wantErr != nil {
				assert.ErrorIs(s.T(), err, tc.wantErr)
				assert.Equal(s.T(), tc.stored.LockHeld, cursor.LockHeld)
				return
			}
			require.NoError(s.T(), err)
			assert.True(s.T(), cursor.LockHeld)
			assert.True(s.T(), cursor.IsSyncing)
			require.NotNil(s.T(), cursor.LockAcquiredAt)
			assert.True(s.T(), start.Equal(*cursor.LockAcquiredAt))
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationTryLockTwice() {
	storagetesting.CleanupData(s.T(), s.DB)
	p := storage.NewPostgres(s.DB)
	ctx := context.Background()

	require.NoError(s.T(), p.TryLock(ctx, start, start.Add(-10*time.Minute)))
	assert.ErrorIs(s.T(), p.TryLock(ctx, start.Add(time.Second), start.Add(-10*time.Minute)), platform.ErrAlreadyRunning)

	require.NoError(s.T(), p.Unlock(ctx))
	assert.NoError(s.T(), p.TryLock(ctx, start.Add(2*time.Second), start.Add(-10*time.Minute)))
}

func (s *PostgresTestSuite) TestIntegrationCursorLifecycle() {
	storagetesting.CleanupData(s.T(), s.DB)
	p := storage.NewPostgres(s.DB)
	ctx := context.Background()

	require.NoError(s.T(), p.TryLock(ctx, start, start.Add(-10*time.Minute)))
	require.NoError(s.T(), p.SetOffset(ctx, 150))
	require.NoError(s.T(), p.Heartbeat(ctx, start, start.Add(5*time.Minute)))

	cursor, err := p.Cursor(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 150, cursor.Offset)
	assert.True(s.T(), cursor.LockHeld)
	require.NotNil(s.T(), cursor.LockAcquiredAt)
	assert.True(s.T(), start.Add(5*time.Minute).Equal(*cursor.LockAcquiredAt))

	require.NoError(s.T(), p.CompleteCycle(ctx, start))

	cursor, err = p.Cursor(ctx)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), cursor.Offset)
	assert.False(s.T(), cursor.LockHeld)
	assert.False(s.T(), cursor.IsSyncing)
	assert.Nil(s.T(), cursor.LockAcquiredAt)
	require.NotNil(s.T(), cursor.LastSyncStart)
	assert.True(s.T(), start.Equal(*cursor.LastSyncStart))

	require.NoError(s.T(), p.SetOffset(ctx, 50))
	require.NoError(s.T(), p.ResetCursor(ctx))

	cursor, err = p.Cursor(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.SyncCursor{}, cursor)
}

func (s *PostgresTestSuite) TestIntegrationHeartbeatWithoutLock() {
	storagetesting.CleanupData(s.T(), s.DB)
	p := storage.NewPostgres(s.DB)

	err := p.Heartbeat(context.Background(), start, start.Add(time.Minute))

	assert.ErrorIs(s.T(), err, platform.ErrLockLost)
	assert.Nil(s.T(), storagetesting.GetCursor(s.T(), s.DB).LockAcquiredAt)
}

func (s *PostgresTestSuite) TestIntegrationHeartbeatAfterTakeover() {
	storagetesting.CleanupData(s.T(), s.DB)
	p := storage.NewPostgres(s.DB)
	ctx := context.Background()
	takeover := start.Add(11 * time.Minute)

	require.NoError(s.T(), p.TryLock(ctx, start, start.Add(-10*time.Minute)))
	require.NoError(s.T(), p.TryLock(ctx, takeover, takeover.Add(-10*time.Minute)))

	err := p.Heartbeat(ctx, start, takeover.Add(time.Minute))

	assert.ErrorIs(s.T(), err, platform.ErrLockLost)
	cursor := storagetesting.GetCursor(s.T(), s.DB)
	require.NotNil(s.T(), cursor.LockAcquiredAt)
	assert.True(s.T(), takeover.Equal(*cursor.LockAcquiredAt), "shouldn't refresh lock of other run")
}

func (s *PostgresTestSuite) TestIntegrationCleanupCycle() {
	storagetesting.CleanupData(s.T(), s.DB)
	p := storage.NewPostgres(s.DB)
	ctx := context.Background()

	require.NoError(s.T(), p.StartCleanup(ctx))
	require.NoError(s.T(), p.AddSupplierSKUs(ctx, []string{"B", "A", "B"}, 1000))
	require.NoError(s.T(), p.AddSupplierSKUs(ctx, []string{"C", "A"}, 2000))

	state, err := p.CleanupState(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.CleanupState{Phase: models.CleanupPhaseFetch, FetchOffset: 2000, SupplierSKUs: 3}, state)

	skus, err := p.SupplierSKUs(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"A", "B", "C"}, skus)

	require.NoError(s.T(), p.SetCleanupPhase(ctx, models.CleanupPhaseCompare))
	require.NoError(s.T(), p.QueueDeletions(ctx, []string{"Z", "X", "Y"}))

	state, err = p.CleanupState(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.CleanupState{Phase: models.CleanupPhaseDelete, QueuedSKUs: 3}, state)

	front, err := p.PeekDeletions(ctx, 2)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"Z", "X"}, front)

	remaining, err := p.DropDeletions(ctx, 2)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, remaining)

	front, err = p.PeekDeletions(ctx, 2)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"Y"}, front)

	require.NoError(s.T(), p.FinishCleanup(ctx, lo.ToPtr(start)))

	state, err = p.CleanupState(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.CleanupPhaseNone, state.Phase)
	assert.Zero(s.T(), state.QueuedSKUs)
	require.NotNil(s.T(), state.LastCycleCompletedAt)
	assert.True(s.T(), start.Equal(*state.LastCycleCompletedAt))

	require.NoError(s.T(), p.StartCleanup(ctx))
	require.NoError(s.T(), p.AddSupplierSKUs(ctx, []string{"A"}, 1000))
	require.NoError(s.T(), p.FinishCleanup(ctx, nil))

	state, err = p.CleanupState(ctx)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), state.SupplierSKUs)
	require.NotNil(s.T(), state.LastCycleCompletedAt, "abort keeps last completion")
	assert.True(s.T(), start.Equal(*state.LastCycleCompletedAt))
}

func (s *PostgresTestSuite) TestIntegrationCreateAndFindProduct() {
	storagetesting.CleanupData(s.T(), s.DB)
	c := storage.NewCatalog(s.DB, storage.WithCatalogClock(clock.NewManual(start)))
	ctx := context.Background()
	sku := faker.Word() + "-1"

	product := &models.Product{
		Type:         models.ProductTypeSimple,
		SKU:          sku,
		Name:         faker.Word(),
		RegularPrice: lo.ToPtr(decimal.RequireFromString("12.50")),
		SalePrice:    lo.ToPtr(decimal.RequireFromString("10")),
		Stock:        lo.ToPtr(4),
		StockStatus:  models.StockStatusInStock,
		Weight:       lo.ToPtr(decimal.RequireFromString("0.75")),
		EAN:          "8001234567890",
		Status:       models.StatusPublish,
		Visibility:   models.VisibilityVisible,
	}

	id, err := c.CreateProduct(ctx, product)
	require.NoError(s.T(), err)

	found, err := c.FindBySKU(ctx, sku)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), id, found.ID)
	assert.Equal(s.T(), product.Name, found.Name)
	assert.True(s.T(), product.RegularPrice.Equal(*found.RegularPrice))
	assert.True(s.T(), product.SalePrice.Equal(*found.SalePrice))
	assert.True(s.T(), product.Weight.Equal(*found.Weight))
	assert.Equal(s.T(), 4, *found.Stock)
	assert.True(s.T(), start.Equal(found.CreatedAt))
	assert.Nil(s.T(), found.TrashedAt)
	assert.Empty(s.T(), found.Attributes)

	byID, err := c.FindByID(ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), sku, byID.SKU)

	_, err = c.FindBySKU(ctx, "missing")
	assert.ErrorIs(s.T(), err, platform.ErrNotFound)

	_, err = c.CreateProduct(ctx, product)
	assert.Error(s.T(), err, "duplicate sku")
}

func (s *PostgresTestSuite) TestIntegrationUpdateProductTrash() {
	storagetesting.CleanupData(s.T(), s.DB)
	clk := clock.NewManual(start)
	c := storage.NewCatalog(s.DB, storage.WithCatalogClock(clk))
	ctx := context.Background()

	id, err := c.CreateProduct(ctx, &models.Product{Type: models.ProductTypeSimple, SKU: "T1", Status: models.StatusPublish})
	require.NoError(s.T(), err)

	require.NoError(s.T(), c.Trash(ctx, id))
	trashed, err := c.FindBySKU(ctx, "T1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusTrash, trashed.Status)
	require.NotNil(s.T(), trashed.TrashedAt)

	clk.Advance(time.Hour)
	trashed.Status = models.StatusPublish
	trashed.Name = "restored"
	require.NoError(s.T(), c.UpdateProduct(ctx, trashed))

	restored, err := c.FindByID(ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusPublish, restored.Status)
	assert.Equal(s.T(), "restored", restored.Name)
	assert.Nil(s.T(), restored.TrashedAt)
	assert.True(s.T(), start.Add(time.Hour).Equal(restored.UpdatedAt))
	assert.True(s.T(), start.Equal(restored.CreatedAt))

	err = c.UpdateProduct(ctx, &models.Product{ID: id + 1000, SKU: "missing", Status: models.StatusPublish})
	assert.ErrorIs(s.T(), err, platform.ErrNotFound)
}

func (s *PostgresTestSuite) TestIntegrationVariations() {
	storagetesting.CleanupData(s.T(), s.DB)
	c := storage.NewCatalog(s.DB, storage.WithCatalogClock(clock.NewManual(start)))
	ctx := context.Background()

	size, err := c.EnsureAttribute(ctx, "Taglia")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "pa_taglia", size.Taxonomy)

	again, err := c.EnsureAttribute(ctx, "Taglia")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), size, again)

	c.FlushCache()
	afterFlush, err := c.EnsureAttribute(ctx, "Taglia")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), size.ID, afterFlush.ID)

	for _, value := range []string{"XL", "M"} {
		_, err = c.EnsureTerm(ctx, size.Taxonomy, value, 0)
		require.NoError(s.T(), err)
	}

	parentID, err := c.CreateProduct(ctx, &models.Product{
		Type:       models.ProductTypeVariable,
		SKU:        "P1",
		Status:     models.StatusPublish,
		Attributes: []models.ProductAttribute{{Taxonomy: size.Taxonomy, Options: []string{"xl", "m"}}},
	})
	require.NoError(s.T(), err)

	for _, value := range []string{"xl", "m"} {
		_, err = c.CreateProduct(ctx, &models.Product{
			Type:       models.ProductTypeVariation,
			ParentID:   lo.ToPtr(parentID),
			SKU:        "P1-" + value,
			Status:     models.StatusPublish,
			Stock:      lo.ToPtr(2),
			Attributes: []models.ProductAttribute{{Taxonomy: size.Taxonomy, Options: []string{value}}},
		})
		require.NoError(s.T(), err)
	}

	parent, err := c.FindByID(ctx, parentID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []models.ProductAttribute{{Taxonomy: "pa_taglia", Options: []string{"xl", "m"}}}, parent.Attributes)

	variations, err := c.Variations(ctx, parentID)
	require.NoError(s.T(), err)
	require.Len(s.T(), variations, 2)
	assert.Equal(s.T(), "P1-xl", variations[0].SKU)
	assert.Equal(s.T(), []models.ProductAttribute{{Taxonomy: "pa_taglia", Options: []string{"xl"}}}, variations[0].Attributes)
	assert.Equal(s.T(), []models.ProductAttribute{{Taxonomy: "pa_taglia", Options: []string{"m"}}}, variations[1].Attributes)

	require.NoError(s.T(), c.SetAttributes(ctx, parentID, []models.ProductAttribute{{Taxonomy: size.Taxonomy, Options: []string{"m"}}}))
	parent, err = c.FindByID(ctx, parentID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []models.ProductAttribute{{Taxonomy: "pa_taglia", Options: []string{"m"}}}, parent.Attributes)

	err = c.SetAttributes(ctx, parentID, []models.ProductAttribute{{Taxonomy: size.Taxonomy, Options: []string{"xxl"}}})
	assert.ErrorIs(s.T(), err, platform.ErrNotFound)

	require.NoError(s.T(), c.SetStock(ctx, parentID, 4, models.StockStatusInStock))
	parent, err = c.FindByID(ctx, parentID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 4, *parent.Stock)

	require.NoError(s.T(), c.Trash(ctx, parentID))
	for _, p := range storagetesting.GetProducts(s.T(), s.DB) {
		assert.Equal(s.T(), models.StatusTrash, p.Status, p.Sku)
	}
}

func (s *PostgresTestSuite) TestIntegrationTerms() {
	storagetesting.CleanupData(s.T(), s.DB)
	c := storage.NewCatalog(s.DB)
	ctx := context.Background()

	shoes, err := c.EnsureTerm(ctx, models.TaxonomyCategory, "Scarpe Uomo", 0)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "scarpe-uomo", shoes.Slug)

	sneakers, err := c.EnsureTerm(ctx, models.TaxonomyCategory, "Sneakers", shoes.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), shoes.ID, sneakers.ParentID)

	c.FlushCache()
	again, err := c.EnsureTerm(ctx, models.TaxonomyCategory, "Scarpe Uomo", 0)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), shoes, again)

	other, err := c.EnsureTerm(ctx, models.TaxonomyBrand, "Scarpe Uomo", 0)
	require.NoError(s.T(), err)
	assert.NotEqual(s.T(), shoes.ID, other.ID)

	id, err := c.CreateProduct(ctx, &models.Product{Type: models.ProductTypeSimple, SKU: "A1", Status: models.StatusPublish})
	require.NoError(s.T(), err)

	require.NoError(s.T(), c.SetTerms(ctx, id, models.TaxonomyCategory, []int64{shoes.ID, sneakers.ID}))
	require.NoError(s.T(), c.SetTerms(ctx, id, models.TaxonomyBrand, []int64{other.ID}))
	require.NoError(s.T(), c.SetTerms(ctx, id, models.TaxonomyCategory, []int64{sneakers.ID}))

	categories := storagetesting.GetProductTerms(s.T(), s.DB, id, models.TaxonomyCategory)
	require.Len(s.T(), categories, 1)
	assert.Equal(s.T(), sneakers.ID, categories[0].TermID)
	assert.Len(s.T(), storagetesting.GetProductTerms(s.T(), s.DB, id, models.TaxonomyBrand), 1)
}

func (s *PostgresTestSuite) TestIntegrationImages() {
	storagetesting.CleanupData(s.T(), s.DB)
	c := storage.NewCatalog(s.DB)
	ctx := context.Background()

	id, err := c.CreateProduct(ctx, &models.Product{Type: models.ProductTypeSimple, SKU: "I1", Status: models.StatusPublish})
	require.NoError(s.T(), err)

	images, err := c.Images(ctx, id)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), images)

	want := []models.Image{
		{Position: 0, URL: "https://cdn.example.com/i1/0.jpg", SourceURL: "https://feed.example.com/a.jpg"},
		{Position: 1, URL: "https://cdn.example.com/i1/1.jpg", SourceURL: "https://feed.example.com/b.jpg"},
	}
	require.NoError(s.T(), c.SetImages(ctx, id, want))

	images, err = c.Images(ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), want, images)

	require.NoError(s.T(), c.SetImages(ctx, id, want[1:]))
	images, err = c.Images(ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), want[1:], images)
}

func (s *PostgresTestSuite) TestIntegrationListAndTrash() {
	storagetesting.CleanupData(s.T(), s.DB)
	c := storage.NewCatalog(s.DB)
	ctx := context.Background()

	storagetesting.InsertProducts(s.T(), s.DB,
		pgmodels.Product{ID: 1001, Type: "simple", Sku: "S1", Status: models.StatusPublish, CreatedAt: start, UpdatedAt: start},
		pgmodels.Product{ID: 1002, Type: "variable", Sku: "V1", Status: models.StatusPublish, CreatedAt: start, UpdatedAt: start},
		pgmodels.Product{ID: 1003, ParentID: lo.ToPtr(int64(1002)), Type: "variation", Sku: "V1-xl", Status: models.StatusPublish, CreatedAt: start, UpdatedAt: start},
		pgmodels.Product{ID: 1004, Type: "simple", Sku: "S2", Status: models.StatusTrash, CreatedAt: start, UpdatedAt: start, TrashedAt: lo.ToPtr(start)},
		pgmodels.Product{ID: 1005, Type: "simple", Sku: "", Status: models.StatusPublish, CreatedAt: start, UpdatedAt: start},
	)

	refs, err := c.ListSKUs(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []models.SKURef{{ID: 1001, SKU: "S1"}, {ID: 1002, SKU: "V1"}}, refs)

	ids, err := c.IDsBySKU(ctx, []string{"S1", "S2", "V1-xl", "missing", "S1"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), map[string]int64{"S1": 1001, "S2": 1004, "V1-xl": 1003}, ids)

	ids, err = c.IDsBySKU(ctx, nil)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), ids)

	require.NoError(s.T(), c.Trash(ctx, 1002))
	refs, err = c.ListSKUs(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []models.SKURef{{ID: 1001, SKU: "S1"}}, refs)

	assert.ErrorIs(s.T(), c.Trash(ctx, 9999), platform.ErrNotFound)
}
