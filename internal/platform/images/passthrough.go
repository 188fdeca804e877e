package images

import (
	"context"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/samber/lo"
)

// Passthrough attaches images by their source urls.
type Passthrough struct{}

// Ingest returns images pointing at source urls.
func (Passthrough) Ingest(_ context.Context, _ string, urls []string) ([]models.Image, error) {
	return lo.Map(urls, func(url string, ix int) models.Image {
		return models.Image{Position: ix, URL: url, SourceURL: url}
	}), nil
}
