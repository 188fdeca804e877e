package storagetesting

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/slug"
	"github.com/samber/lo"
)

type termKey struct {
	taxonomy string
	parentID int64
	slug     string
}

// MemoryCatalog is in-memory product catalog.
type MemoryCatalog struct {
	mu sync.Mutex

	nextID       int64
	products     map[int64]*models.Product
	terms        map[termKey]models.Term
	attributes   map[string]models.Attribute
	productTerms map[int64]map[string][]int64
	images       map[int64][]models.Image
	failing      map[string]error

	// Flushes counts FlushCache calls.
	Flushes int
	// Writes counts product create and update calls.
	Writes int
}

// NewMemoryCatalog returns empty MemoryCatalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		products:     map[int64]*models.Product{},
		terms:        map[termKey]models.Term{},
		attributes:   map[string]models.Attribute{},
		productTerms: map[int64]map[string][]int64{},
		images:       map[int64][]models.Image{},
		failing:      map[string]error{},
	}
}

// FailSKU makes every create and update of product with sku return err.
func (c *MemoryCatalog) FailSKU(sku string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failing[sku] = err
}

// Add stores product as is and returns its id.
func (c *MemoryCatalog) Add(product models.Product) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	product.ID = c.nextID
	c.products[product.ID] = copyProduct(&product)

	return product.ID
}

// Products returns all stored products ordered by id.
func (c *MemoryCatalog) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	products := make([]models.Product, 0, len(c.products))
	for _, id := range c.sortedIDs() {
		products = append(products, *copyProduct(c.products[id]))
	}

	return products
}

// Terms returns term ids of product in taxonomy.
func (c *MemoryCatalog) Terms(productID int64, taxonomy string) []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]int64(nil), c.productTerms[productID][taxonomy]...)
}

// TermNames returns names of product terms in taxonomy.
func (c *MemoryCatalog) TermNames(productID int64, taxonomy string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var names []string
	for _, id := range c.productTerms[productID][taxonomy] {
		for _, term := range c.terms {
			if term.ID == id {
				names = append(names, term.Name)
			}
		}
	}

	return names
}

// FindBySKU returns product with sku, trashed included.
func (c *MemoryCatalog) FindBySKU(_ context.Context, sku string) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range c.sortedIDs() {
		if c.products[id].SKU == sku {
			return copyProduct(c.products[id]), nil
		}
	}

	return nil, fmt.Errorf("product %s: %w", sku, platform.ErrNotFound)
}

// FindByID returns product with id.
func (c *MemoryCatalog) FindByID(_ context.Context, id int64) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, platform.ErrNotFound)
	}

	return copyProduct(product), nil
}

// CreateProduct stores new product and returns its id.
func (c *MemoryCatalog) CreateProduct(_ context.Context, product *models.Product) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err, ok := c.failing[product.SKU]; ok {
		return 0, err
	}
	for _, stored := range c.products {
		if stored.SKU == product.SKU {
			return 0, fmt.Errorf("duplicate sku %s", product.SKU)
		}
	}

	c.Writes++
	c.nextID++
	stored := copyProduct(product)
	stored.ID = c.nextID
	c.products[stored.ID] = stored

	return stored.ID, nil
}

// UpdateProduct overwrites stored product. Attributes are kept when nil.
func (c *MemoryCatalog) UpdateProduct(_ context.Context, product *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err, ok := c.failing[product.SKU]; ok {
		return err
	}
	stored, ok := c.products[product.ID]
	if !ok {
		return fmt.Errorf("product %d: %w", product.ID, platform.ErrNotFound)
	}

	c.Writes++
	updated := copyProduct(product)
	if product.Attributes == nil {
		updated.Attributes = stored.Attributes
	}
	switch {
	case updated.Status == models.StatusTrash && stored.TrashedAt == nil:
		updated.TrashedAt = lo.ToPtr(time.Now().UTC())
	case updated.Status != models.StatusTrash:
		updated.TrashedAt = nil
	}
	c.products[product.ID] = updated

	return nil
}

// SetAttributes replaces product attributes.
func (c *MemoryCatalog) SetAttributes(_ context.Context, productID int64, attributes []models.ProductAttribute) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, platform.ErrNotFound)
	}
	product.Attributes = copyAttributes(attributes)

	return nil
}

// Variations returns variations of parent ordered by id.
func (c *MemoryCatalog) Variations(_ context.Context, parentID int64) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var variations []models.Product
	for _, id := range c.sortedIDs() {
		product := c.products[id]
		if product.ParentID != nil && *product.ParentID == parentID {
			variations = append(variations, *copyProduct(product))
		}
	}

	return variations, nil
}

// SetStock sets product stock and stock status.
func (c *MemoryCatalog) SetStock(_ context.Context, productID int64, stock int, stockStatus string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, platform.ErrNotFound)
	}
	product.Stock = lo.ToPtr(stock)
	product.StockStatus = stockStatus

	return nil
}

// EnsureAttribute returns attribute with name, creating it if missing.
func (c *MemoryCatalog) EnsureAttribute(_ context.Context, name string) (models.Attribute, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := slug.Make(name)
	if attribute, ok := c.attributes[s]; ok {
		return attribute, nil
	}

	c.nextID++
	attribute := models.Attribute{ID: c.nextID, Slug: s, Name: name, Taxonomy: "pa_" + s}
	c.attributes[s] = attribute

	return attribute, nil
}

// EnsureTerm returns term of taxonomy, creating it if missing.
func (c *MemoryCatalog) EnsureTerm(_ context.Context, taxonomy, name string, parentID int64) (models.Term, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := termKey{taxonomy: taxonomy, parentID: parentID, slug: slug.Make(name)}
	if term, ok := c.terms[key]; ok {
		return term, nil
	}

	c.nextID++
	term := models.Term{ID: c.nextID, Taxonomy: taxonomy, ParentID: parentID, Slug: key.slug, Name: name}
	c.terms[key] = term

	return term, nil
}

// SetTerms replaces product terms of taxonomy.
func (c *MemoryCatalog) SetTerms(_ context.Context, productID int64, taxonomy string, termIDs []int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.productTerms[productID]; !ok {
		c.productTerms[productID] = map[string][]int64{}
	}
	c.productTerms[productID][taxonomy] = append([]int64(nil), termIDs...)

	return nil
}

// Images returns product images.
func (c *MemoryCatalog) Images(_ context.Context, productID int64) ([]models.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]models.Image(nil), c.images[productID]...), nil
}

// SetImages replaces product images.
func (c *MemoryCatalog) SetImages(_ context.Context, productID int64, images []models.Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.images[productID] = append([]models.Image(nil), images...)

	return nil
}

// FlushCache counts cache flushes.
func (c *MemoryCatalog) FlushCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Flushes++
}

// ListSKUs returns non-trashed top-level products with sku.
func (c *MemoryCatalog) ListSKUs(_ context.Context) ([]models.SKURef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var refs []models.SKURef
	for _, id := range c.sortedIDs() {
		product := c.products[id]
		if product.Type == models.ProductTypeVariation || product.Status == models.StatusTrash || product.SKU == "" {
			continue
		}
		refs = append(refs, models.SKURef{ID: id, SKU: product.SKU})
	}

	return refs, nil
}

// IDsBySKU returns ids of products with provided skus.
func (c *MemoryCatalog) IDsBySKU(_ context.Context, skus []string) (map[string]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make(map[string]int64, len(skus))
	for _, product := range c.products {
		if lo.Contains(skus, product.SKU) {
			ids[product.SKU] = product.ID
		}
	}

	return ids, nil
}

// Trash moves product and its variations to trash.
func (c *MemoryCatalog) Trash(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.products[id]
	if !ok {
		return fmt.Errorf("product %d: %w", id, platform.ErrNotFound)
	}
	if err, ok := c.failing[product.SKU]; ok {
		return err
	}

	now := time.Now().UTC()
	for _, p := range c.products {
		if p.ID == id || (p.ParentID != nil && *p.ParentID == id) {
			p.Status = models.StatusTrash
			p.TrashedAt = lo.ToPtr(now)
		}
	}

	return nil
}

func (c *MemoryCatalog) sortedIDs() []int64 {
	ids := lo.Keys(c.products)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func copyProduct(product *models.Product) *models.Product {
	cp := *product
	if product.ParentID != nil {
		cp.ParentID = lo.ToPtr(*product.ParentID)
	}
	if product.RegularPrice != nil {
		cp.RegularPrice = lo.ToPtr(*product.RegularPrice)
	}
	if product.SalePrice != nil {
		cp.SalePrice = lo.ToPtr(*product.SalePrice)
	}
	if product.Stock != nil {
		cp.Stock = lo.ToPtr(*product.Stock)
	}
	if product.Weight != nil {
		cp.Weight = lo.ToPtr(*product.Weight)
	}
	if product.TrashedAt != nil {
		cp.TrashedAt = lo.ToPtr(*product.TrashedAt)
	}
	cp.Attributes = copyAttributes(product.Attributes)

	return &cp
}

func copyAttributes(attributes []models.ProductAttribute) []models.ProductAttribute {
	if attributes == nil {
		return nil
	}

	return lo.Map(attributes, func(a models.ProductAttribute, _ int) models.ProductAttribute {
		return models.ProductAttribute{Taxonomy: a.Taxonomy, Options: append([]string(nil), a.Options...)}
	})
}
