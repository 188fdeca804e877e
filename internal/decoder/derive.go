package decoder

import (
	"net/url"
	"strings"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/samber/lo"
)

const (
	categorySeparator = `\`
	brandSeparator    = "/"
	variationLotCount = -1
)

// derive builds record from sanitized fields and computes derived fields.
// Steps run in fixed order: stock, VAT, rounding, sale price, categories, brand, images, variation flags.
func (d *Decoder) derive(f fields) models.Record {
	record := models.Record{
		Code:        f.str(FieldCode),
		GroupCode:   f.str(FieldGroupCode),
		Name:        f.str(FieldName),
		Description: f.str(FieldDescription),
		Discount:    f.dec(FieldDiscount),
		Weight:      f.dec(FieldWeight),
		EAN:         f.str(FieldEAN),
		Brand:       f.str(FieldBrand),
		Size:        f.str(FieldSize),
		Color:       f.str(FieldColor),
		LotCount:    f.integer(FieldLotCount),
		UpdatedAt:   f.str(FieldUpdatedAt),
	}

	record.Stock = f.integer(d.options.StockType.field())

	price := f.dec(FieldPrice)
	if d.options.AddVAT {
		price = AddVAT(price)
	}
	record.Price = RoundPrice(price, d.options.Rounding)
	record.SalePrice = SalePrice(record.Price, record.Discount, d.options.Rounding)

	record.Categories = splitCategories(f.str(FieldCategories))

	if d.options.NormalizeBrand {
		record.Brand = normalizeBrand(record.Brand)
	}

	if image := f.str(FieldImage); d.validImageURL(image) {
		record.Image = image
	}
	record.Gallery = d.imageList(f, GalleryField, GallerySize)
	if d.schema.Kind == SchemaVariableImages {
		record.VariationImages = d.imageList(f, VariationImageField, VariationImagesSize)
	}

	record.IsVariation = d.schema.Variable() && record.LotCount == variationLotCount
	record.HasVariationImages = len(record.VariationImages) > 0

	return record
}

// splitCategories splits backslash delimited category path into ordered list of non-empty names.
func splitCategories(path string) []string {
	if path == "" {
		return nil
	}

	categories := lo.Map(strings.Split(path, categorySeparator), func(name string, _ int) string {
		return strings.TrimSpace(name)
	})

	return lo.Filter(categories, func(name string, _ int) bool {
		return name != ""
	})
}

// normalizeBrand truncates brand at first slash.
func normalizeBrand(brand string) string {
	before, _, _ := strings.Cut(brand, brandSeparator)
	return strings.TrimSpace(before)
}

func (d *Decoder) imageList(f fields, name func(ix int) string, size int) []string {
	var images []string
	for ix := range size {
		if image := f.str(name(ix)); d.validImageURL(image) {
			images = append(images, image)
		}
	}

	return images
}

// validImageURL reports whether value is absolute http(s) url without placeholder marker.
func (d *Decoder) validImageURL(value string) bool {
	if value == "" {
		return false
	}

	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	lower := strings.ToLower(value)
	for _, marker := range d.options.PlaceholderMarkers {
		if marker != "" && strings.Contains(lower, strings.ToLower(marker)) {
			return false
		}
	}

	return true
}
