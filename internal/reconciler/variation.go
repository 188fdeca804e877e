package reconciler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/samber/lo"
)

// axis is single variation attribute value of record.
type axis struct {
	attribute string
	value     string
}

// SyncVariation creates or updates variation of parent product from record.
// Record without size and color is skipped with ErrNoVariationAttributes.
func (r *Reconciler) SyncVariation(ctx context.Context, parentID int64, record models.Record) Result {
	axes := lo.Filter([]axis{
		{attribute: r.options.SizeAttribute, value: record.Size},
		{attribute: r.options.ColorAttribute, value: record.Color},
	}, func(a axis, _ int) bool {
		return a.value != ""
	})
	if len(axes) == 0 {
		r.logger.Warn().Str("sku", record.Code).Msg("variation has no size nor color")
		return Result{Action: ActionSkipped, Err: fmt.Errorf("%w: %s", ErrNoVariationAttributes, record.Code)}
	}

	parent, err := r.catalog.FindByID(ctx, parentID)
	if err != nil {
		return r.failed(record.Code, fmt.Errorf("can't get parent product %d: %w", parentID, err))
	}

	values, err := r.ensureParentOptions(ctx, parent, axes)
	if err != nil {
		return r.failed(record.Code, err)
	}

	variation, err := r.findVariation(ctx, parent, values, variationSKU(parent.SKU, values))
	if err != nil {
		return r.failed(record.Code, err)
	}

	if variation == nil {
		return r.createVariation(ctx, parent, record, values)
	}

	applyRecord(variation, record)
	if err = r.catalog.UpdateProduct(ctx, variation); err != nil {
		return r.failed(record.Code, fmt.Errorf("can't update variation: %w", err))
	}

	if r.options.UpdateImages && record.HasVariationImages {
		if err = r.attachImages(ctx, variation.ID, variation.SKU, record.VariationImages); err != nil {
			return r.failed(record.Code, err)
		}
	}

	return Result{ID: variation.ID, Action: ActionUpdated}
}

// ensureParentOptions registers variation axes and values and adds missing values to parent's options.
// Parent attributes are persisted only when they change.
func (r *Reconciler) ensureParentOptions(
	ctx context.Context,
	parent *models.Product,
	axes []axis,
) ([]models.AttributeValue, error) {
	values := make([]models.AttributeValue, 0, len(axes))
	changed := false

	for _, a := range axes {
		attribute, err := r.catalog.EnsureAttribute(ctx, a.attribute)
		if err != nil {
			return nil, fmt.Errorf("can't get attribute %q: %w", a.attribute, err)
		}

		term, err := r.catalog.EnsureTerm(ctx, attribute.Taxonomy, a.value, 0)
		if err != nil {
			return nil, fmt.Errorf("can't get %s value %q: %w", attribute.Taxonomy, a.value, err)
		}

		values = append(values, models.AttributeValue{Taxonomy: attribute.Taxonomy, Slug: term.Slug})

		if addOption(parent, attribute.Taxonomy, term.Slug) {
			changed = true
		}
	}

	if changed {
		if err := r.catalog.SetAttributes(ctx, parent.ID, parent.Attributes); err != nil {
			return nil, fmt.Errorf("can't set parent attributes: %w", err)
		}
	}

	return values, nil
}

// findVariation returns variation of parent with exactly provided values.
// Product stored under synthesized sku of same parent is matched as well.
func (r *Reconciler) findVariation(
	ctx context.Context,
	parent *models.Product,
	values []models.AttributeValue,
	sku string,
) (*models.Product, error) {
	variations, err := r.catalog.Variations(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("can't get variations: %w", err)
	}

	for ix := range variations {
		if matches(variations[ix].Attributes, values) {
			return &variations[ix], nil
		}
	}

	existing, err := r.catalog.FindBySKU(ctx, sku)
	if errors.Is(err, platform.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't find variation: %w", err)
	}

	if existing.ParentID == nil || *existing.ParentID != parent.ID {
		return nil, fmt.Errorf("sku %s is taken by other product", sku)
	}
	existing.Attributes = toProductAttributes(values)

	return existing, nil
}

func (r *Reconciler) createVariation(
	ctx context.Context,
	parent *models.Product,
	record models.Record,
	values []models.AttributeValue,
) Result {
	variation := &models.Product{
		ParentID:   lo.ToPtr(parent.ID),
		Type:       models.ProductTypeVariation,
		SKU:        variationSKU(parent.SKU, values),
		Name:       nonEmpty(record.Name, parent.Name),
		EAN:        record.EAN,
		Status:     models.StatusPublish,
		Visibility: models.VisibilityVisible,
		Attributes: toProductAttributes(values),
	}
	applyRecord(variation, record)

	id, err := r.catalog.CreateProduct(ctx, variation)
	if err != nil {
		return r.failed(record.Code, fmt.Errorf("can't create variation: %w", err))
	}

	if record.HasVariationImages {
		if err = r.attachImages(ctx, id, variation.SKU, record.VariationImages); err != nil {
			return r.failed(record.Code, err)
		}
	}

	return Result{ID: id, Action: ActionCreated}
}

// variationSKU returns parent sku followed by value slugs.
func variationSKU(parentSKU string, values []models.AttributeValue) string {
	slugs := lo.Map(values, func(v models.AttributeValue, _ int) string {
		return v.Slug
	})

	return parentSKU + "-" + strings.Join(slugs, "-")
}

// addOption appends value to parent's options of taxonomy. It reports whether options changed.
func addOption(parent *models.Product, taxonomy, value string) bool {
	for ix := range parent.Attributes {
		if parent.Attributes[ix].Taxonomy != taxonomy {
			continue
		}
		if lo.Contains(parent.Attributes[ix].Options, value) {
			return false
		}
		parent.Attributes[ix].Options = append(parent.Attributes[ix].Options, value)
		return true
	}

	parent.Attributes = append(parent.Attributes, models.ProductAttribute{Taxonomy: taxonomy, Options: []string{value}})

	return true
}

// matches reports whether variation attributes define exactly provided values.
func matches(attributes []models.ProductAttribute, values []models.AttributeValue) bool {
	if len(attributes) != len(values) {
		return false
	}

	for _, value := range values {
		attribute, ok := lo.Find(attributes, func(a models.ProductAttribute) bool {
			return a.Taxonomy == value.Taxonomy
		})
		if !ok || len(attribute.Options) != 1 || attribute.Options[0] != value.Slug {
			return false
		}
	}

	return true
}

func toProductAttributes(values []models.AttributeValue) []models.ProductAttribute {
	return lo.Map(values, func(v models.AttributeValue, _ int) models.ProductAttribute {
		return models.ProductAttribute{Taxonomy: v.Taxonomy, Options: []string{v.Slug}}
	})
}
