package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/decoder"
	"github.com/MichalMitros/supplier-feed-sync/internal/fetcher"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
)

//go:generate mockery --name Fetcher --filename fetcher.go

// Fetcher fetches feed pages.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// Decoder decodes whole feed page.
type Decoder interface {
	DecodeAll(ctx context.Context, page []byte) ([]models.ParsingResult, error)
}

// Option is custom configuration of Source.
type Option func(s *Source)

// Source fetches and parses supplier feed pages and sku batches.
type Source struct {
	fetcher Fetcher
	decoder Decoder
	config  Config
	now     func() time.Time
}

// NewSource returns new Source.
func NewSource(fetcher Fetcher, decoder Decoder, config Config, ops ...Option) *Source {
	s := &Source{
		fetcher: fetcher,
		decoder: decoder,
		config:  config,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Configured reports whether feed base url is set.
func (s *Source) Configured() bool {
	return s.config.BaseURL != ""
}

// PageSize returns configured feed page size.
func (s *Source) PageSize() int {
	return s.config.PageSize
}

// FetchPage returns raw feed page starting at offset.
// Empty body past first page means end of feed and returns nil page without error.
func (s *Source) FetchPage(ctx context.Context, offset int) ([]byte, error) {
	pageURL, err := s.config.PageURL(offset, s.now())
	if err != nil {
		return nil, fmt.Errorf("can't build page url: %w", err)
	}

	page, err := s.fetcher.FetchPage(ctx, pageURL)
	if errors.Is(err, fetcher.ErrEmptyBody) && offset > 0 {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w at offset %d: %w", ErrFetch, offset, err)
	}

	return page, nil
}

// ParsePage decodes raw feed page into parsing results.
func (s *Source) ParsePage(ctx context.Context, page []byte) ([]models.ParsingResult, error) {
	if len(page) == 0 {
		return nil, nil
	}

	return s.decoder.DecodeAll(ctx, page)
}

// FetchSKUs returns codes of sku-only feed batch and number of data rows in it.
// Empty body means batch without rows.
func (s *Source) FetchSKUs(ctx context.Context, offset, limit int) ([]string, int, error) {
	batchURL, err := s.config.SKUsURL(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("can't build sku batch url: %w", err)
	}

	batch, err := s.fetcher.FetchPage(ctx, batchURL)
	if errors.Is(err, fetcher.ErrEmptyBody) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: sku batch at offset %d: %w", ErrFetch, offset, err)
	}

	return decoder.DecodeSKUs(batch)
}

// WithNow sets Source's custom current time provider used for date window.
func WithNow(now func() time.Time) Option {
	return func(s *Source) {
		s.now = now
	}
}
