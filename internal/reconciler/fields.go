package reconciler

import (
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/samber/lo"
)

// applyRecord merges price, stock, weight and status of record into product.
// Non-positive price and zero weight leave stored values untouched. Sale price is always recomputed.
func applyRecord(product *models.Product, record models.Record) {
	if record.Price.IsPositive() {
		product.RegularPrice = lo.ToPtr(record.Price)
	}
	product.SalePrice = nil
	if record.SalePrice != nil {
		product.SalePrice = lo.ToPtr(*record.SalePrice)
	}

	product.Stock = lo.ToPtr(record.Stock)
	product.StockStatus = stockStatus(record.Stock)

	if !record.Weight.IsZero() {
		product.Weight = lo.ToPtr(record.Weight)
	}

	product.Status = models.StatusPublish
}

func stockStatus(stock int) string {
	if stock > 0 {
		return models.StockStatusInStock
	}
	return models.StockStatusOutOfStock
}

func nonEmpty(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func sameSources(images []models.Image, urls []string) bool {
	if len(images) != len(urls) {
		return false
	}

	for ix := range images {
		if images[ix].SourceURL != urls[ix] {
			return false
		}
	}

	return true
}
