package reconciler_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models/modelstesting"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/storagetesting"
	"github.com/MichalMitros/supplier-feed-sync/internal/reconciler"
	"github.com/MichalMitros/supplier-feed-sync/internal/reconciler/mocks"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var options = reconciler.Options{
	UpdateCategories: true,
	UpdateBrand:      true,
	SizeAttribute:    "Taglia",
	ColorAttribute:   "Colore",
}

// sourceImages attaches images by their source urls and counts ingestions.
type sourceImages struct {
	calls int
}

func (s *sourceImages) Ingest(_ context.Context, _ string, urls []string) ([]models.Image, error) {
	s.calls++
	return lo.Map(urls, func(u string, ix int) models.Image {
		return models.Image{Position: ix, URL: u, SourceURL: u}
	}), nil
}

func newReconciler(catalog reconciler.Catalog, ops ...func(o *reconciler.Options)) (*reconciler.Reconciler, *sourceImages) {
	opts := options
	for _, op := range ops {
		op(&opts)
	}
	images := &sourceImages{}

	return reconciler.NewReconciler(catalog, images, opts), images
}

func knownRecord(r *models.Record) {
	r.Code = "A100"
	r.Name = "Scarpa"
	r.Price = decimal.RequireFromString("12.50")
	r.SalePrice = lo.ToPtr(decimal.RequireFromString("10"))
	r.Weight = decimal.RequireFromString("1.2")
	r.Stock = 4
	r.Brand = "Nike"
	r.Categories = []string{"Scarpe", "Uomo"}
	r.Image = "https://img.example.com/a.jpg"
	r.Gallery = []string{"https://img.example.com/b.jpg"}
}

func TestUnitSyncSimpleCreates(t *testing.T) {
	catalog := storagetesting.NewMemoryCatalog()
	rec, images := newReconciler(catalog)

	result := rec.SyncSimple(context.TODO(), modelstesting.FakeRecord(knownRecord))

	require.NoError(t, result.Err, "shouldn't return error")
	assert.Equal(t, reconciler.ActionCreated, result.Action, "should create product")

	products := catalog.Products()
	require.Len(t, products, 1, "should store one product")
	product := products[0]
	assert.Equal(t, result.ID, product.ID, "should return product id")
	assert.Equal(t, models.ProductTypeSimple, product.Type, "should create simple product")
	assert.Equal(t, "A100", product.SKU, "should use record code as sku")
	assert.Equal(t, "Scarpa", product.Name, "should set name")
	assert.True(t, decimal.RequireFromString("12.5").Equal(*product.RegularPrice), "should set price")
	assert.True(t, decimal.RequireFromString("10").Equal(*product.SalePrice), "should set sale price")
	assert.Equal(t, 4, *product.Stock, "should set stock")
	assert.Equal(t, models.StockStatusInStock, product.StockStatus, "should set stock status")
	assert.Equal(t, models.StatusPublish, product.Status, "should publish product")
	assert.Equal(t, models.VisibilityVisible, product.Visibility, "should make product visible")
	assert.Equal(t, []string{"Scarpe", "Uomo"}, catalog.TermNames(product.ID, models.TaxonomyCategory), "should tag categories")
	assert.Equal(t, []string{"Nike"}, catalog.TermNames(product.ID, models.TaxonomyBrand), "should tag brand")
	assert.Equal(t, 1, images.calls, "should ingest images")

	stored, err := catalog.Images(context.TODO(), product.ID)
	require.NoError(t, err, "shouldn't return error")
	assert.Len(t, stored, 2, "should attach featured and gallery images")
}

func TestUnitSyncSimpleIdempotent(t *testing.T) {
	catalog := storagetesting.NewMemoryCatalog()
	rec, _ := newReconciler(catalog)
	record := modelstesting.FakeRecord(knownRecord)

	first := rec.SyncSimple(context.TODO(), record)
	before := catalog.Products()
	second := rec.SyncSimple(context.TODO(), record)

	require.NoError(t, first.Err, "shouldn't return error on first sync")
	require.NoError(t, second.Err, "shouldn't return error on second sync")
	assert.Equal(t, first.ID, second.ID, "should resolve same product")
	assert.Equal(t, reconciler.ActionUpdated, second.Action, "should update existing product")
	assert.Equal(t, before, catalog.Products(), "should leave catalog unchanged")
}

func TestUnitSyncSimpleUpdateMerge(t *testing.T) {
	catalog := storagetesting.NewMemoryCatalog()
	id := catalog.Add(models.Product{
		Type:         models.ProductTypeSimple,
		SKU:          "A100",
		Name:         "Vecchio nome",
		Description:  "Vecchia descrizione",
		RegularPrice: lo.ToPtr(decimal.NewFromInt(10)),
		SalePrice:    lo.ToPtr(decimal.NewFromInt(8)),
		Stock:        lo.ToPtr(9),
		Weight:       lo.ToPtr(decimal.NewFromInt(2)),
		Status:       models.StatusTrash,
	})
	rec, images := newReconciler(catalog)

	result := rec.SyncSimple(context.TODO(), models.Record{Code: "A100", Stock: 0})
	require.NoError(t, result.Err, "shouldn't return error")
	assert.Equal(t, id, result.ID, "should update stored product")

	product, err := catalog.FindByID(context.TODO(), id)
	require.NoError(t, err, "shouldn't return error")
	assert.Equal(t, "Vecchio nome", product.Name, "should keep name when feed has none")
	assert.Equal(t, "Vecchia descrizione", product.Description, "should keep description when feed has none")
	assert.True(t, decimal.NewFromInt(10).Equal(*product.RegularPrice), "should keep price when feed has none")
	assert.True(t, decimal.NewFromInt(2).Equal(*product.Weight), "should keep weight when feed has none")
	assert.Nil(t, product.SalePrice, "should clear sale price without discount")
	assert.Equal(t, 0, *product.Stock, "should always set stock")
	assert.Equal(t, models.StockStatusOutOfStock, product.StockStatus, "should mark product out of stock")
	assert.Equal(t, models.StatusPublish, product.Status, "should restore trashed product")
	assert.Nil(t, product.TrashedAt, "should clear trash time")
	assert.Zero(t, images.calls, "shouldn't ingest images when record has none")
}

func TestUnitSyncSimpleUpdateOptions(t *testing.T) {
	tests := map[string]struct {
		options        func(o *reconciler.Options)
		wantCategories []string
		wantBrand      []string
		wantIngestions int
	}{
		"refresh taxonomies, keep images": {
			options:        func(o *reconciler.Options) {},
			wantCategories: []string{"Borse"},
			wantBrand:      []string{"Adidas"},
			wantIngestions: 1,
		},
		"keep taxonomies, refresh images": {
			options: func(o *reconciler.Options) {
				o.UpdateCategories = false
				o.UpdateBrand = false
				o.UpdateImages = true
			},
			wantCategories: []string{"Scarpe", "Uomo"},
			wantBrand:      []string{"Nike"},
			wantIngestions: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			catalog := storagetesting.NewMemoryCatalog()
			rec, images := newReconciler(catalog, tt.options)

			created := rec.SyncSimple(context.TODO(), modelstesting.FakeRecord(knownRecord))
			require.NoError(t, created.Err, "shouldn't return error on create")

			updated := rec.SyncSimple(context.TODO(), modelstesting.FakeRecord(knownRecord, func(r *models.Record) {
				r.Categories = []string{"Borse"}
				r.Brand = "Adidas"
				r.Image = "https://img.example.com/new.jpg"
			}))
			require.NoError(t, updated.Err, "shouldn't return error on update")

			assert.Equal(t, tt.wantCategories, catalog.TermNames(created.ID, models.TaxonomyCategory), "should set correct categories")
			assert.Equal(t, tt.wantBrand, catalog.TermNames(created.ID, models.TaxonomyBrand), "should set correct brand")
			assert.Equal(t, tt.wantIngestions, images.calls, "should ingest images expected number of times")
		})
	}
}

func TestUnitSyncSimpleSkipsUnchangedImages(t *testing.T) {
	catalog := storagetesting.NewMemoryCatalog()
	rec, images := newReconciler(catalog, func(o *reconciler.Options) { o.UpdateImages = true })
	record := modelstesting.FakeRecord(knownRecord)

	require.NoError(t, rec.SyncSimple(context.TODO(), record).Err, "shouldn't return error on create")
	require.NoError(t, rec.SyncSimple(context.TODO(), record).Err, "shouldn't return error on update")

	assert.Equal(t, 1, images.calls, "shouldn't ingest images with unchanged source urls")
}

func TestUnitSyncSimpleFailure(t *testing.T) {
	catalog := storagetesting.NewMemoryCatalog()
	catalog.FailSKU("A100", assert.AnError)
	rec, _ := newReconciler(catalog)

	result := rec.SyncSimple(context.TODO(), modelstesting.FakeRecord(knownRecord))

	assert.Equal(t, reconciler.ActionFailed, result.Action, "should report failure")
	assert.ErrorIs(t, result.Err, reconciler.ErrReconciliation, "should return reconciliation error")
	assert.ErrorIs(t, result.Err, assert.AnError, "should wrap catalog error")
	assert.Empty(t, catalog.Products(), "shouldn't store product")
}

func TestUnitSyncSimpleLookupFailure(t *testing.T) {
	catalog := mocks.NewCatalog(t)
	catalog.On("FindBySKU", mock.Anything, "A100").Return(nil, assert.AnError).Once()
	rec, _ := newReconciler(catalog)

	result := rec.SyncSimple(context.TODO(), modelstesting.FakeRecord(knownRecord))

	assert.Equal(t, reconciler.ActionFailed, result.Action, "should report failure")
	assert.ErrorIs(t, result.Err, assert.AnError, "should wrap lookup error")
}

func TestUnitSyncSimpleImageFailure(t *testing.T) {
	catalog := storagetesting.NewMemoryCatalog()
	images := mocks.NewImageIngester(t)
	images.On("Ingest", mock.Anything, "A100", []string{"https://img.example.com/a.jpg"}).
		Return(nil, assert.AnError).Once()
	rec := reconciler.NewReconciler(catalog, images, options)

	result := rec.SyncSimple(context.TODO(), modelstesting.FakeRecord(knownRecord, func(r *models.Record) {
		r.Gallery = nil
	}))

	assert.Equal(t, reconciler.ActionFailed, result.Action, "should report failure")
	assert.ErrorIs(t, result.Err, assert.AnError, "should wrap ingestion error")
}

func TestUnitFlushCache(t *testing.T) {
	catalog := storagetesting.NewMemoryCatalog()
	rec, _ := newReconciler(catalog)

	rec.FlushCache()

	assert.Equal(t, 1, catalog.Flushes, "should flush catalog cache")
}
