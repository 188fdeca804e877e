package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsingResult contains feed record with parsing error if there is any.
type ParsingResult struct {
	Record Record
	Error  error
}

// Record is single supplier feed record with its derived fields.
type Record struct {
	Code               string
	GroupCode          string
	Name               string
	Description        string
	Price              decimal.Decimal
	SalePrice          *decimal.Decimal
	Discount           decimal.Decimal
	Weight             decimal.Decimal
	Stock              int
	EAN                string
	Brand              string
	Categories         []string
	Image              string
	Gallery            []string
	Size               string
	Color              string
	LotCount           int
	VariationImages    []string
	UpdatedAt          string
	IsVariation        bool
	HasVariationImages bool
}

// ParentSKU returns SKU of variable product grouping the record.
func (r Record) ParentSKU() string {
	if r.GroupCode != "" {
		return r.GroupCode
	}
	return r.Code
}

// Images returns featured image followed by gallery images.
func (r Record) Images() []string {
	images := make([]string, 0, len(r.Gallery)+1)
	if r.Image != "" {
		images = append(images, r.Image)
	}
	return append(images, r.Gallery...)
}

// ProductType is catalog product kind.
type ProductType string

// Catalog product kinds.
const (
	ProductTypeSimple    ProductType = "simple"
	ProductTypeVariable  ProductType = "variable"
	ProductTypeVariation ProductType = "variation"
)

// Catalog product statuses.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
	StatusTrash   = "trash"
)

// Catalog stock statuses.
const (
	StockStatusInStock    = "instock"
	StockStatusOutOfStock = "outofstock"
)

// VisibilityVisible is default catalog visibility of created products.
const VisibilityVisible = "visible"

// Catalog taxonomies.
const (
	TaxonomyCategory = "product_cat"
	TaxonomyBrand    = "product_brand"
)

// Product is catalog product, variable product parent or variation.
type Product struct {
	ID           int64
	ParentID     *int64
	Type         ProductType
	SKU          string
	Name         string
	Description  string
	RegularPrice *decimal.Decimal
	SalePrice    *decimal.Decimal
	Stock        *int
	StockStatus  string
	Weight       *decimal.Decimal
	EAN          string
	Status       string
	Visibility   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TrashedAt    *time.Time

	// Attributes holds allowed options of a variable product or the defining values of a variation.
	Attributes []ProductAttribute
}

// ProductAttribute is attribute axis of variable product or variation.
type ProductAttribute struct {
	Taxonomy string
	Options  []string
}

// AttributeValue is single attribute term assigned to variation.
type AttributeValue struct {
	Taxonomy string
	Slug     string
}

// Attribute is registered variation axis.
type Attribute struct {
	ID       int64
	Slug     string
	Name     string
	Taxonomy string
}

// Term is taxonomy term.
type Term struct {
	ID       int64
	Taxonomy string
	ParentID int64
	Slug     string
	Name     string
}

// Image is image attached to product.
type Image struct {
	Position  int
	URL       string
	SourceURL string
}

// SKURef is catalog product id and SKU pair.
type SKURef struct {
	ID  int64
	SKU string
}

// SyncCursor is persisted paging cursor and lock of sync cycle.
type SyncCursor struct {
	Offset         int        `json:"offset"`
	LastSyncStart  *time.Time `json:"lastSyncStart"`
	IsSyncing      bool       `json:"isSyncing"`
	LockHeld       bool       `json:"lockHeld"`
	LockAcquiredAt *time.Time `json:"lockAcquiredAt"`
}

// CleanupPhase is phase of cleanup cycle.
type CleanupPhase string

// Cleanup cycle phases.
const (
	CleanupPhaseNone    CleanupPhase = "none"
	CleanupPhaseFetch   CleanupPhase = "fetch"
	CleanupPhaseCompare CleanupPhase = "compare"
	CleanupPhaseDelete  CleanupPhase = "delete"
)

// CleanupState is persisted state of cleanup cycle.
type CleanupState struct {
	Phase                CleanupPhase `json:"phase"`
	FetchOffset          int          `json:"fetchOffset"`
	SupplierSKUs         int          `json:"supplierSkus"`
	QueuedSKUs           int          `json:"queuedSkus"`
	LastCycleCompletedAt *time.Time   `json:"lastCycleCompletedAt"`
}

// SyncOutcome is result kind of single sync invocation.
type SyncOutcome string

// Sync invocation outcomes.
const (
	SyncOutcomeSkippedLocked  SyncOutcome = "skipped_locked"
	SyncOutcomeSkippedTooSoon SyncOutcome = "skipped_too_soon"
	SyncOutcomeAdvanced       SyncOutcome = "advanced"
	SyncOutcomeCompleted      SyncOutcome = "completed"
	SyncOutcomeInterrupted    SyncOutcome = "interrupted"
	SyncOutcomeFailed         SyncOutcome = "failed"
)

// SyncReport summarizes single sync invocation.
type SyncReport struct {
	RunID      string        `json:"runId"`
	Outcome    SyncOutcome   `json:"outcome"`
	Offset     int           `json:"offset"`
	NextOffset int           `json:"nextOffset"`
	Fetched    int           `json:"fetched"`
	Dropped    int           `json:"dropped"`
	Created    int           `json:"created"`
	Updated    int           `json:"updated"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
}

// CleanupReport summarizes single cleanup invocation.
type CleanupReport struct {
	RunID       string       `json:"runId"`
	PhaseBefore CleanupPhase `json:"phaseBefore"`
	PhaseAfter  CleanupPhase `json:"phaseAfter"`
	FetchedSKUs int          `json:"fetchedSkus"`
	QueuedSKUs  int          `json:"queuedSkus"`
	Trashed     int          `json:"trashed"`
	Failed      int          `json:"failed"`
	Completed   bool         `json:"completed"`
	Aborted     bool         `json:"aborted"`
}

// Status is combined sync and cleanup state.
type Status struct {
	Sync    SyncCursor   `json:"sync"`
	Cleanup CleanupState `json:"cleanup"`
}
