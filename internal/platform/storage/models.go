package storage

import (
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	pgmodels "github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

// ToDBProduct converts models.Product into postgres product model.
func ToDBProduct(product *models.Product) *pgmodels.Product {
	dbProduct := pgmodels.Product{
		ID:           product.ID,
		ParentID:     product.ParentID,
		Type:         string(product.Type),
		Sku:          product.SKU,
		Name:         product.Name,
		Description:  product.Description,
		RegularPrice: toDBDecimal(product.RegularPrice),
		SalePrice:    toDBDecimal(product.SalePrice),
		StockStatus:  product.StockStatus,
		Weight:       toDBDecimal(product.Weight),
		Ean:          product.EAN,
		Status:       product.Status,
		Visibility:   product.Visibility,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
		TrashedAt:    product.TrashedAt,
	}

	if product.Stock != nil {
		dbProduct.Stock = lo.ToPtr(int32(*product.Stock))
	}

	return &dbProduct
}

// FromDBProduct converts postgres product model into models.Product without attributes.
func FromDBProduct(dbProduct *pgmodels.Product) *models.Product {
	product := models.Product{
		ID:           dbProduct.ID,
		ParentID:     dbProduct.ParentID,
		Type:         models.ProductType(dbProduct.Type),
		SKU:          dbProduct.Sku,
		Name:         dbProduct.Name,
		Description:  dbProduct.Description,
		RegularPrice: fromDBDecimal(dbProduct.RegularPrice),
		SalePrice:    fromDBDecimal(dbProduct.SalePrice),
		StockStatus:  dbProduct.StockStatus,
		Weight:       fromDBDecimal(dbProduct.Weight),
		EAN:          dbProduct.Ean,
		Status:       dbProduct.Status,
		Visibility:   dbProduct.Visibility,
		CreatedAt:    dbProduct.CreatedAt,
		UpdatedAt:    dbProduct.UpdatedAt,
		TrashedAt:    dbProduct.TrashedAt,
	}

	if dbProduct.Stock != nil {
		product.Stock = lo.ToPtr(int(*dbProduct.Stock))
	}

	return &product
}

func fromDBCursor(dbCursor *pgmodels.SyncCursor) models.SyncCursor {
	return models.SyncCursor{
		Offset:         int(dbCursor.PageOffset),
		LastSyncStart:  dbCursor.LastSyncStart,
		IsSyncing:      dbCursor.IsSyncing,
		LockHeld:       dbCursor.LockHeld,
		LockAcquiredAt: dbCursor.LockAcquiredAt,
	}
}

func fromDBTerm(dbTerm *pgmodels.Term) models.Term {
	return models.Term{
		ID:       dbTerm.ID,
		Taxonomy: dbTerm.Taxonomy,
		ParentID: dbTerm.ParentID,
		Slug:     dbTerm.Slug,
		Name:     dbTerm.Name,
	}
}

func fromDBAttribute(dbAttribute *pgmodels.Attribute) models.Attribute {
	return models.Attribute{
		ID:       dbAttribute.ID,
		Slug:     dbAttribute.Slug,
		Name:     dbAttribute.Name,
		Taxonomy: dbAttribute.Taxonomy,
	}
}

func toDBImages(productID int64, images []models.Image) []pgmodels.ProductImage {
	return lo.Map(images, func(image models.Image, _ int) pgmodels.ProductImage {
		return pgmodels.ProductImage{
			ProductID: productID,
			Position:  int32(image.Position),
			URL:       image.URL,
			SourceURL: image.SourceURL,
		}
	})
}

func fromDBImages(dbImages []pgmodels.ProductImage) []models.Image {
	return lo.Map(dbImages, func(image pgmodels.ProductImage, _ int) models.Image {
		return models.Image{
			Position:  int(image.Position),
			URL:       image.URL,
			SourceURL: image.SourceURL,
		}
	})
}

func toDBDecimal(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	return lo.ToPtr(d.InexactFloat64())
}

func fromDBDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	return lo.ToPtr(decimal.NewFromFloat(*f))
}
