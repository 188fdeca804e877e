package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Catalog --filename catalog.go
//go:generate mockery --name ImageIngester --filename image_ingester.go

// Catalog is product catalog the feed is reconciled against.
type Catalog interface {
	// FindBySKU returns product with provided SKU, trashed included.
	// It returns platform.ErrNotFound if there is no such product.
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	// FindByID returns product with provided id.
	// It returns platform.ErrNotFound if there is no such product.
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	// CreateProduct creates product with its attributes and returns its id.
	CreateProduct(ctx context.Context, product *models.Product) (int64, error)
	// UpdateProduct overwrites product fields. Attributes are replaced when not nil.
	UpdateProduct(ctx context.Context, product *models.Product) error
	// SetAttributes replaces attribute options of product.
	SetAttributes(ctx context.Context, productID int64, attributes []models.ProductAttribute) error
	// Variations returns variations of variable product with their defining values.
	Variations(ctx context.Context, parentID int64) ([]models.Product, error)
	// SetStock sets product stock and stock status.
	SetStock(ctx context.Context, productID int64, stock int, stockStatus string) error
	// EnsureAttribute returns registered variation attribute with provided name, creating it if missing.
	EnsureAttribute(ctx context.Context, name string) (models.Attribute, error)
	// EnsureTerm returns taxonomy term with provided name and parent, creating it if missing.
	EnsureTerm(ctx context.Context, taxonomy, name string, parentID int64) (models.Term, error)
	// SetTerms replaces product terms of taxonomy.
	SetTerms(ctx context.Context, productID int64, taxonomy string, termIDs []int64) error
	// Images returns product images ordered by position.
	Images(ctx context.Context, productID int64) ([]models.Image, error)
	// SetImages replaces product images.
	SetImages(ctx context.Context, productID int64, images []models.Image) error
	// FlushCache drops cached taxonomy lookups.
	FlushCache()
}

// ImageIngester stores images from source urls and returns them ready to attach to product.
type ImageIngester interface {
	Ingest(ctx context.Context, sku string, urls []string) ([]models.Image, error)
}

// Action is kind of change made for single record.
type Action string

// Reconciliation actions.
const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
	ActionSkipped   Action = "skipped"
	ActionFailed    Action = "failed"
)

// Result is outcome of reconciling single record.
type Result struct {
	ID     int64
	Action Action
	Err    error
}

// Options configures which fields are refreshed on update and how variation axes are named.
type Options struct {
	UpdateImages     bool
	UpdateCategories bool
	UpdateBrand      bool
	SizeAttribute    string
	ColorAttribute   string
}

// Option is custom configuration of Reconciler.
type Option func(r *Reconciler)

// Reconciler applies feed records to catalog.
type Reconciler struct {
	catalog Catalog
	images  ImageIngester
	options Options
	logger  *zerolog.Logger
}

// NewReconciler returns new Reconciler.
func NewReconciler(catalog Catalog, images ImageIngester, options Options, ops ...Option) *Reconciler {
	nop := zerolog.Nop()
	r := &Reconciler{
		catalog: catalog,
		images:  images,
		options: options,
		logger:  &nop,
	}

	for _, op := range ops {
		op(r)
	}

	return r
}

// FlushCache drops catalog caches.
func (r *Reconciler) FlushCache() {
	r.catalog.FlushCache()
}

// SyncSimple creates or updates simple product from record.
func (r *Reconciler) SyncSimple(ctx context.Context, record models.Record) Result {
	existing, err := r.catalog.FindBySKU(ctx, record.Code)
	if err != nil && !errors.Is(err, platform.ErrNotFound) {
		return r.failed(record.Code, fmt.Errorf("can't find product: %w", err))
	}

	if existing == nil {
		return r.createSimple(ctx, record)
	}

	applyRecord(existing, record)
	existing.Name = nonEmpty(record.Name, existing.Name)
	existing.Description = nonEmpty(record.Description, existing.Description)
	existing.EAN = nonEmpty(record.EAN, existing.EAN)

	if err = r.catalog.UpdateProduct(ctx, existing); err != nil {
		return r.failed(record.Code, fmt.Errorf("can't update product: %w", err))
	}

	if err = r.tag(ctx, existing.ID, record, r.options.UpdateCategories, r.options.UpdateBrand); err != nil {
		return r.failed(record.Code, err)
	}

	if r.options.UpdateImages {
		if err = r.attachImages(ctx, existing.ID, record.Code, record.Images()); err != nil {
			return r.failed(record.Code, err)
		}
	}

	return Result{ID: existing.ID, Action: ActionUpdated}
}

func (r *Reconciler) createSimple(ctx context.Context, record models.Record) Result {
	product := &models.Product{
		Type:        models.ProductTypeSimple,
		SKU:         record.Code,
		Name:        nonEmpty(record.Name, record.Code),
		Description: record.Description,
		EAN:         record.EAN,
		Status:      models.StatusPublish,
		Visibility:  models.VisibilityVisible,
	}
	applyRecord(product, record)

	id, err := r.catalog.CreateProduct(ctx, product)
	if err != nil {
		return r.failed(record.Code, fmt.Errorf("can't create product: %w", err))
	}

	if err = r.tag(ctx, id, record, true, true); err != nil {
		return r.failed(record.Code, err)
	}

	if err = r.attachImages(ctx, id, record.Code, record.Images()); err != nil {
		return r.failed(record.Code, err)
	}

	return Result{ID: id, Action: ActionCreated}
}

// SyncVariable returns variable parent product of record, creating it if missing.
// Existing parent isn't updated, only trashed parent is restored.
func (r *Reconciler) SyncVariable(ctx context.Context, record models.Record) Result {
	sku := record.ParentSKU()

	existing, err := r.catalog.FindBySKU(ctx, sku)
	if err != nil && !errors.Is(err, platform.ErrNotFound) {
		return r.failed(sku, fmt.Errorf("can't find parent product: %w", err))
	}

	if existing != nil {
		if existing.Status != models.StatusTrash {
			return Result{ID: existing.ID, Action: ActionUnchanged}
		}

		existing.Status = models.StatusPublish
		if err = r.catalog.UpdateProduct(ctx, existing); err != nil {
			return r.failed(sku, fmt.Errorf("can't restore parent product: %w", err))
		}
		return Result{ID: existing.ID, Action: ActionUpdated}
	}

	parent := &models.Product{
		Type:        models.ProductTypeVariable,
		SKU:         sku,
		Name:        nonEmpty(record.Name, sku),
		Description: record.Description,
		Status:      models.StatusPublish,
		Visibility:  models.VisibilityVisible,
		StockStatus: models.StockStatusOutOfStock,
	}
	if !record.Weight.IsZero() {
		parent.Weight = lo.ToPtr(record.Weight)
	}

	id, err := r.catalog.CreateProduct(ctx, parent)
	if err != nil {
		return r.failed(sku, fmt.Errorf("can't create parent product: %w", err))
	}

	if err = r.tag(ctx, id, record, true, true); err != nil {
		return r.failed(sku, err)
	}

	if err = r.attachImages(ctx, id, sku, record.Images()); err != nil {
		return r.failed(sku, err)
	}

	return Result{ID: id, Action: ActionCreated}
}

// SyncParentStock recomputes stock and stock status of variable product from its variations.
func (r *Reconciler) SyncParentStock(ctx context.Context, parentID int64) error {
	variations, err := r.catalog.Variations(ctx, parentID)
	if err != nil {
		return fmt.Errorf("can't get variations of %d: %w", parentID, err)
	}

	stock := 0
	for ix := range variations {
		if variations[ix].Status == models.StatusTrash || variations[ix].Stock == nil {
			continue
		}
		if *variations[ix].Stock > 0 {
			stock += *variations[ix].Stock
		}
	}

	if err = r.catalog.SetStock(ctx, parentID, stock, stockStatus(stock)); err != nil {
		return fmt.Errorf("can't set stock of %d: %w", parentID, err)
	}

	return nil
}

// tag assigns categories and brand of record to product.
func (r *Reconciler) tag(ctx context.Context, productID int64, record models.Record, categories, brand bool) error {
	if categories && len(record.Categories) > 0 {
		if err := r.setCategories(ctx, productID, record.Categories); err != nil {
			return fmt.Errorf("can't set categories: %w", err)
		}
	}

	if brand && record.Brand != "" {
		term, err := r.catalog.EnsureTerm(ctx, models.TaxonomyBrand, record.Brand, 0)
		if err != nil {
			return fmt.Errorf("can't get brand: %w", err)
		}
		if err = r.catalog.SetTerms(ctx, productID, models.TaxonomyBrand, []int64{term.ID}); err != nil {
			return fmt.Errorf("can't set brand: %w", err)
		}
	}

	return nil
}

// setCategories assigns every category of path, each nested under previous one.
func (r *Reconciler) setCategories(ctx context.Context, productID int64, path []string) error {
	termIDs := make([]int64, 0, len(path))
	parentID := int64(0)
	for _, name := range path {
		term, err := r.catalog.EnsureTerm(ctx, models.TaxonomyCategory, name, parentID)
		if err != nil {
			return fmt.Errorf("can't get category %q: %w", name, err)
		}
		termIDs = append(termIDs, term.ID)
		parentID = term.ID
	}

	return r.catalog.SetTerms(ctx, productID, models.TaxonomyCategory, termIDs)
}

// attachImages replaces product images unless source urls are unchanged.
func (r *Reconciler) attachImages(ctx context.Context, productID int64, sku string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	current, err := r.catalog.Images(ctx, productID)
	if err != nil {
		return fmt.Errorf("can't get images: %w", err)
	}
	if sameSources(current, urls) {
		return nil
	}

	images, err := r.images.Ingest(ctx, sku, urls)
	if err != nil {
		return fmt.Errorf("can't ingest images: %w", err)
	}

	if err = r.catalog.SetImages(ctx, productID, images); err != nil {
		return fmt.Errorf("can't set images: %w", err)
	}

	return nil
}

func (r *Reconciler) failed(sku string, err error) Result {
	err = fmt.Errorf("%w: %s: %w", ErrReconciliation, sku, err)
	r.logger.Warn().Err(err).Str("sku", sku).Msg("can't reconcile record")

	return Result{Action: ActionFailed, Err: err}
}

// WithLogger sets Reconciler's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}
