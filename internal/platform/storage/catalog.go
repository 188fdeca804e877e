package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/clock"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/slug"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// attributeTaxonomyPrefix prefixes taxonomies of variation attributes.
const attributeTaxonomyPrefix = "pa_"

type termKey struct {
	taxonomy string
	parentID int64
	slug     string
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// Catalog is product catalog stored in Postgres.
// Attribute and term lookups are cached until FlushCache is called.
type Catalog struct {
	db    *sql.DB
	clock Clock

	mu         sync.Mutex
	terms      map[termKey]models.Term
	attributes map[string]models.Attribute
}

// CatalogOption is custom configuration of Catalog.
type CatalogOption func(c *Catalog)

// NewCatalog returns new Catalog.
func NewCatalog(db *sql.DB, ops ...CatalogOption) *Catalog {
	c := &Catalog{
		db:         db,
		clock:      clock.System{},
		terms:      map[termKey]models.Term{},
		attributes: map[string]models.Attribute{},
	}

	for _, op := range ops {
		op(c)
	}

	return c
}

// WithCatalogClock sets Catalog's custom Clock.
func WithCatalogClock(clk Clock) CatalogOption {
	return func(c *Catalog) {
		c.clock = clk
	}
}

// FindBySKU returns product with sku, trashed included.
// It returns platform.ErrNotFound if there is no such product.
func (c *Catalog) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	return c.findProduct(ctx, table.Product.Sku.EQ(pg.String(sku)))
}

// FindByID returns product with id.
// It returns platform.ErrNotFound if there is no such product.
func (c *Catalog) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	return c.findProduct(ctx, table.Product.ID.EQ(pg.Int64(id)))
}

func (c *Catalog) findProduct(ctx context.Context, condition pg.BoolExpression) (*models.Product, error) {
	var dbProduct pgmodels.Product
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(condition).
		QueryContext(ctx, c.db, &dbProduct)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, platform.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't get product: %w", err)
	}

	product := FromDBProduct(&dbProduct)

	attributes, err := getAttributes(ctx, c.db, []int64{product.ID})
	if err != nil {
		return nil, err
	}
	product.Attributes = attributes[product.ID]

	return product, nil
}

// CreateProduct inserts product with its attributes and returns its id.
func (c *Catalog) CreateProduct(ctx context.Context, product *models.Product) (int64, error) {
	now := c.clock.Now()
	dbProduct := ToDBProduct(product)
	dbProduct.CreatedAt = now
	dbProduct.UpdatedAt = now
	dbProduct.TrashedAt = nil
	if product.Status == models.StatusTrash {
		dbProduct.TrashedAt = &now
	}

	err := runInTransaction(ctx, c.db, func(tx *sql.Tx) error {
		err := table.Product.INSERT(table.Product.MutableColumns).
			MODEL(dbProduct).
			RETURNING(table.Product.ID).
			QueryContext(ctx, tx, dbProduct)
		if err != nil {
			return fmt.Errorf("can't insert product %s: %w", product.SKU, err)
		}

		return setAttributes(ctx, tx, dbProduct.ID, product.Attributes)
	})
	if err != nil {
		return 0, err
	}

	return dbProduct.ID, nil
}

// UpdateProduct overwrites product fields. Attributes are replaced when not nil.
// Trash time is stamped when product moves to trash and cleared when it leaves it.
func (c *Catalog) UpdateProduct(ctx context.Context, product *models.Product) error {
	now := c.clock.Now()
	dbProduct := ToDBProduct(product)
	dbProduct.UpdatedAt = now
	switch {
	case product.Status != models.StatusTrash:
		dbProduct.TrashedAt = nil
	case product.TrashedAt == nil:
		dbProduct.TrashedAt = &now
	}

	columnList := table.Product.MutableColumns.Except(table.Product.CreatedAt)

	return runInTransaction(ctx, c.db, func(tx *sql.Tx) error {
		result, err := table.Product.UPDATE(columnList).
			MODEL(dbProduct).
			WHERE(table.Product.ID.EQ(pg.Int64(product.ID))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't update product %s: %w", product.SKU, err)
		}

		if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
			return fmt.Errorf("can't update product %s: %w", product.SKU, lo.Ternary(err != nil, err, platform.ErrNotFound))
		}

		if product.Attributes == nil {
			return nil
		}

		return setAttributes(ctx, tx, product.ID, product.Attributes)
	})
}

// SetAttributes replaces attribute options of product.
func (c *Catalog) SetAttributes(ctx context.Context, productID int64, attributes []models.ProductAttribute) error {
	return runInTransaction(ctx, c.db, func(tx *sql.Tx) error {
		return setAttributes(ctx, tx, productID, attributes)
	})
}

// Variations returns variations of parent ordered by id with their defining values.
func (c *Catalog) Variations(ctx context.Context, parentID int64) ([]models.Product, error) {
	var dbProducts []pgmodels.Product
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.ParentID.EQ(pg.Int64(parentID))).
		ORDER_BY(table.Product.ID.ASC()).
		QueryContext(ctx, c.db, &dbProducts)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get variations of %d: %w", parentID, err)
	}
	if len(dbProducts) == 0 {
		return nil, nil
	}

	ids := lo.Map(dbProducts, func(p pgmodels.Product, _ int) int64 { return p.ID })
	attributes, err := getAttributes(ctx, c.db, ids)
	if err != nil {
		return nil, err
	}

	return lo.Map(dbProducts, func(p pgmodels.Product, _ int) models.Product {
		variation := FromDBProduct(&p)
		variation.Attributes = attributes[p.ID]
		return *variation
	}), nil
}

// SetStock sets product stock and stock status.
func (c *Catalog) SetStock(ctx context.Context, productID int64, stock int, stockStatus string) error {
	_, err := table.Product.UPDATE(table.Product.Stock, table.Product.StockStatus, table.Product.UpdatedAt).
		MODEL(pgmodels.Product{
			Stock:       lo.ToPtr(int32(stock)),
			StockStatus: stockStatus,
			UpdatedAt:   c.clock.Now(),
		}).
		WHERE(table.Product.ID.EQ(pg.Int64(productID))).
		ExecContext(ctx, c.db)
	if err != nil {
		return fmt.Errorf("can't set stock of %d: %w", productID, err)
	}

	return nil
}

// EnsureAttribute returns registered variation attribute with name, creating it if missing.
func (c *Catalog) EnsureAttribute(ctx context.Context, name string) (models.Attribute, error) {
	s := slug.Make(name)

	c.mu.Lock()
	attribute, ok := c.attributes[s]
	c.mu.Unlock()
	if ok {
		return attribute, nil
	}

	_, err := table.Attribute.INSERT(table.Attribute.MutableColumns).
		MODEL(pgmodels.Attribute{Slug: s, Name: name, Taxonomy: attributeTaxonomyPrefix + s}).
		ON_CONFLICT(table.Attribute.Slug).
		DO_NOTHING().
		ExecContext(ctx, c.db)
	if err != nil {
		return models.Attribute{}, fmt.Errorf("can't insert attribute %s: %w", name, err)
	}

	var dbAttribute pgmodels.Attribute
	err = table.Attribute.SELECT(table.Attribute.AllColumns).
		WHERE(table.Attribute.Slug.EQ(pg.String(s))).
		QueryContext(ctx, c.db, &dbAttribute)
	if err != nil {
		return models.Attribute{}, fmt.Errorf("can't get attribute %s: %w", name, err)
	}

	attribute = fromDBAttribute(&dbAttribute)

	c.mu.Lock()
	c.attributes[s] = attribute
	c.mu.Unlock()

	return attribute, nil
}

// EnsureTerm returns taxonomy term with name and parent, creating it if missing.
func (c *Catalog) EnsureTerm(ctx context.Context, taxonomy, name string, parentID int64) (models.Term, error) {
	key := termKey{taxonomy: taxonomy, parentID: parentID, slug: slug.Make(name)}

	c.mu.Lock()
	term, ok := c.terms[key]
	c.mu.Unlock()
	if ok {
		return term, nil
	}

	_, err := table.Term.INSERT(table.Term.MutableColumns).
		MODEL(pgmodels.Term{Taxonomy: taxonomy, ParentID: parentID, Slug: key.slug, Name: name}).
		ON_CONFLICT(table.Term.Taxonomy, table.Term.ParentID, table.Term.Slug).
		DO_NOTHING().
		ExecContext(ctx, c.db)
	if err != nil {
		return models.Term{}, fmt.Errorf("can't insert term %s of %s: %w", name, taxonomy, err)
	}

	var dbTerm pgmodels.Term
	err = table.Term.SELECT(table.Term.AllColumns).
		WHERE(pg.AND(
			table.Term.Taxonomy.EQ(pg.String(taxonomy)),
			table.Term.ParentID.EQ(pg.Int64(parentID)),
			table.Term.Slug.EQ(pg.String(key.slug)),
		)).
		QueryContext(ctx, c.db, &dbTerm)
	if err != nil {
		return models.Term{}, fmt.Errorf("can't get term %s of %s: %w", name, taxonomy, err)
	}

	term = fromDBTerm(&dbTerm)

	c.mu.Lock()
	c.terms[key] = term
	c.mu.Unlock()

	return term, nil
}

// SetTerms replaces product terms of taxonomy.
func (c *Catalog) SetTerms(ctx context.Context, productID int64, taxonomy string, termIDs []int64) error {
	return runInTransaction(ctx, c.db, func(tx *sql.Tx) error {
		return replaceTerms(ctx, tx, productID, []string{taxonomy}, lo.Map(lo.Uniq(termIDs), func(id int64, ix int) pgmodels.ProductTerm {
			return pgmodels.ProductTerm{ProductID: productID, TermID: id, Taxonomy: taxonomy, Position: int32(ix)}
		}))
	})
}

// Images returns product images ordered by position.
func (c *Catalog) Images(ctx context.Context, productID int64) ([]models.Image, error) {
	var dbImages []pgmodels.ProductImage
	err := table.ProductImage.SELECT(table.ProductImage.AllColumns).
		WHERE(table.ProductImage.ProductID.EQ(pg.Int64(productID))).
		ORDER_BY(table.ProductImage.Position.ASC()).
		QueryContext(ctx, c.db, &dbImages)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get images of %d: %w", productID, err)
	}

	return fromDBImages(dbImages), nil
}

// SetImages replaces product images.
func (c *Catalog) SetImages(ctx context.Context, productID int64, images []models.Image) error {
	return runInTransaction(ctx, c.db, func(tx *sql.Tx) error {
		_, err := table.ProductImage.DELETE().
			WHERE(table.ProductImage.ProductID.EQ(pg.Int64(productID))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't delete images of %d: %w", productID, err)
		}

		if len(images) == 0 {
			return nil
		}

		_, err = table.ProductImage.INSERT(table.ProductImage.AllColumns).
			MODELS(toDBImages(productID, images)).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't insert images of %d: %w", productID, err)
		}

		return nil
	})
}

// FlushCache drops cached attribute and term lookups.
func (c *Catalog) FlushCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.terms = map[termKey]models.Term{}
	c.attributes = map[string]models.Attribute{}
}

// ListSKUs returns non-trashed top-level products with sku.
func (c *Catalog) ListSKUs(ctx context.Context) ([]models.SKURef, error) {
	var dbProducts []pgmodels.Product
	err := table.Product.SELECT(table.Product.ID, table.Product.Sku).
		WHERE(pg.AND(
			table.Product.ParentID.IS_NULL(),
			table.Product.Type.NOT_EQ(pg.String(string(models.ProductTypeVariation))),
			table.Product.Status.NOT_EQ(pg.String(models.StatusTrash)),
			table.Product.Sku.NOT_EQ(pg.String("")),
		)).
		ORDER_BY(table.Product.ID.ASC()).
		QueryContext(ctx, c.db, &dbProducts)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't list product skus: %w", err)
	}

	return lo.Map(dbProducts, func(p pgmodels.Product, _ int) models.SKURef {
		return models.SKURef{ID: p.ID, SKU: p.Sku}
	}), nil
}

// IDsBySKU returns ids of products with provided skus. Missing skus are omitted.
func (c *Catalog) IDsBySKU(ctx context.Context, skus []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(skus))
	if len(skus) == 0 {
		return ids, nil
	}

	values := lo.Map(lo.Uniq(skus), func(sku string, _ int) pg.Expression { return pg.String(sku) })

	var dbProducts []pgmodels.Product
	err := table.Product.SELECT(table.Product.ID, table.Product.Sku).
		WHERE(table.Product.Sku.IN(values...)).
		QueryContext(ctx, c.db, &dbProducts)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get product ids: %w", err)
	}

	for _, p := range dbProducts {
		ids[p.Sku] = p.ID
	}

	return ids, nil
}

// Trash moves product and its variations to trash.
func (c *Catalog) Trash(ctx context.Context, id int64) error {
	now := c.clock.Now()

	result, err := table.Product.UPDATE(table.Product.Status, table.Product.TrashedAt, table.Product.UpdatedAt).
		MODEL(pgmodels.Product{
			Status:    models.StatusTrash,
			TrashedAt: &now,
			UpdatedAt: now,
		}).
		WHERE(pg.OR(
			table.Product.ID.EQ(pg.Int64(id)),
			table.Product.ParentID.EQ(pg.Int64(id)),
		)).
		ExecContext(ctx, c.db)
	if err != nil {
		return fmt.Errorf("can't trash product %d: %w", id, err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't trash product %d: %w", id, lo.Ternary(err != nil, err, platform.ErrNotFound))
	}

	return nil
}

// setAttributes replaces attribute terms of product. Option slugs resolve to terms of attribute taxonomy.
func setAttributes(ctx context.Context, tx *sql.Tx, productID int64, attributes []models.ProductAttribute) error {
	taxonomies := lo.Map(attributes, func(a models.ProductAttribute, _ int) string { return a.Taxonomy })

	var stored []pgmodels.ProductTerm
	err := table.ProductTerm.SELECT(table.ProductTerm.AllColumns).
		WHERE(pg.AND(
			table.ProductTerm.ProductID.EQ(pg.Int64(productID)),
			table.ProductTerm.Taxonomy.LIKE(pg.String(attributeTaxonomyPrefix+"%")),
		)).
		QueryContext(ctx, tx, &stored)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return fmt.Errorf("can't get attributes of %d: %w", productID, err)
	}
	taxonomies = lo.Uniq(append(taxonomies, lo.Map(stored, func(t pgmodels.ProductTerm, _ int) string { return t.Taxonomy })...))

	rows := make([]pgmodels.ProductTerm, 0)
	for _, attribute := range attributes {
		if len(attribute.Options) == 0 {
			continue
		}

		terms, err := getTermsBySlug(ctx, tx, attribute.Taxonomy, attribute.Options)
		if err != nil {
			return err
		}

		for ix, option := range attribute.Options {
			term, ok := terms[option]
			if !ok {
				return fmt.Errorf("can't set attribute %s of %d: term %s: %w", attribute.Taxonomy, productID, option, platform.ErrNotFound)
			}
			rows = append(rows, pgmodels.ProductTerm{
				ProductID: productID,
				TermID:    term.ID,
				Taxonomy:  attribute.Taxonomy,
				Position:  int32(ix),
			})
		}
	}

	return replaceTerms(ctx, tx, productID, taxonomies, rows)
}

func replaceTerms(ctx context.Context, tx *sql.Tx, productID int64, taxonomies []string, rows []pgmodels.ProductTerm) error {
	if len(taxonomies) > 0 {
		values := lo.Map(taxonomies, func(taxonomy string, _ int) pg.Expression { return pg.String(taxonomy) })
		_, err := table.ProductTerm.DELETE().
			WHERE(pg.AND(
				table.ProductTerm.ProductID.EQ(pg.Int64(productID)),
				table.ProductTerm.Taxonomy.IN(values...),
			)).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't delete terms of %d: %w", productID, err)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	_, err := table.ProductTerm.INSERT(table.ProductTerm.AllColumns).
		MODELS(rows).
		ON_CONFLICT(table.ProductTerm.ProductID, table.ProductTerm.TermID).
		DO_NOTHING().
		ExecContext(ctx, tx)
	if err != nil {
		return fmt.Errorf("can't insert terms of %d: %w", productID, err)
	}

	return nil
}

func getTermsBySlug(ctx context.Context, db qrm.Queryable, taxonomy string, slugs []string) (map[string]pgmodels.Term, error) {
	values := lo.Map(lo.Uniq(slugs), func(s string, _ int) pg.Expression { return pg.String(s) })

	var dbTerms []pgmodels.Term
	err := table.Term.SELECT(table.Term.AllColumns).
		WHERE(pg.AND(
			table.Term.Taxonomy.EQ(pg.String(taxonomy)),
			table.Term.ParentID.EQ(pg.Int64(0)),
			table.Term.Slug.IN(values...),
		)).
		QueryContext(ctx, db, &dbTerms)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get terms of %s: %w", taxonomy, err)
	}

	return lo.KeyBy(dbTerms, func(t pgmodels.Term) string { return t.Slug }), nil
}

// getAttributes returns attributes of products keyed by product id.
func getAttributes(ctx context.Context, db qrm.Queryable, productIDs []int64) (map[int64][]models.ProductAttribute, error) {
	ids := lo.Map(productIDs, func(id int64, _ int) pg.Expression { return pg.Int64(id) })

	var productTerms []pgmodels.ProductTerm
	err := table.ProductTerm.SELECT(table.ProductTerm.AllColumns).
		WHERE(pg.AND(
			table.ProductTerm.ProductID.IN(ids...),
			table.ProductTerm.Taxonomy.LIKE(pg.String(attributeTaxonomyPrefix+"%")),
		)).
		ORDER_BY(table.ProductTerm.ProductID.ASC(), table.ProductTerm.Taxonomy.ASC(), table.ProductTerm.Position.ASC()).
		QueryContext(ctx, db, &productTerms)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get product attributes: %w", err)
	}

	result := make(map[int64][]models.ProductAttribute, len(productIDs))
	if len(productTerms) == 0 {
		return result, nil
	}

	termIDs := lo.Map(lo.Uniq(lo.Map(productTerms, func(pt pgmodels.ProductTerm, _ int) int64 { return pt.TermID })),
		func(id int64, _ int) pg.Expression { return pg.Int64(id) })

	var dbTerms []pgmodels.Term
	err = table.Term.SELECT(table.Term.ID, table.Term.Slug).
		WHERE(table.Term.ID.IN(termIDs...)).
		QueryContext(ctx, db, &dbTerms)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get attribute terms: %w", err)
	}
	slugs := lo.Associate(dbTerms, func(t pgmodels.Term) (int64, string) { return t.ID, t.Slug })

	for _, pt := range productTerms {
		attributes := result[pt.ProductID]
		if len(attributes) == 0 || attributes[len(attributes)-1].Taxonomy != pt.Taxonomy {
			attributes = append(attributes, models.ProductAttribute{Taxonomy: pt.Taxonomy})
		}
		last := &attributes[len(attributes)-1]
		last.Options = append(last.Options, slugs[pt.TermID])
		result[pt.ProductID] = attributes
	}

	return result, nil
}
