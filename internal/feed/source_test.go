package feed_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/decoder"
	"github.com/MichalMitros/supplier-feed-sync/internal/feed"
	"github.com/MichalMitros/supplier-feed-sync/internal/feed/mocks"
	"github.com/MichalMitros/supplier-feed-sync/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var config = feed.Config{BaseURL: "https://supplier.example.com/export", PageSize: 2}

func newSource(fet feed.Fetcher) *feed.Source {
	dec := decoder.NewDecoder(decoder.SchemaSimple, decoder.Options{})
	return feed.NewSource(fet, dec, config, feed.WithNow(func() time.Time { return now }))
}

func TestUnitSourceFetchPage(t *testing.T) {
	tests := map[string]struct {
		offset   int
		body     []byte
		fetchErr error
		wantBody []byte
		wantErr  error
	}{
		"page": {
			offset:   2,
			body:     []byte("A1"),
			wantBody: []byte("A1"),
		},
		"empty first page is fetch error": {
			offset:   0,
			fetchErr: fetcher.ErrEmptyBody,
			wantErr:  feed.ErrFetch,
		},
		"empty later page ends feed": {
			offset:   4,
			fetchErr: fetcher.ErrEmptyBody,
		},
		"bad status is fetch error": {
			offset:   2,
			fetchErr: fetcher.ErrStatusNotOK,
			wantErr:  feed.ErrFetch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fet := mocks.NewFetcher(t)
			fet.On("FetchPage", mock.Anything, mock.MatchedBy(func(u string) bool {
				return strings.Contains(u, "offset=")
			})).Return(tt.body, tt.fetchErr).Once()

			got, err := newSource(fet).FetchPage(context.TODO(), tt.offset)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			assert.Equal(t, tt.wantBody, got, "should return page body")
		})
	}
}

func TestUnitSourceParsePage(t *testing.T) {
	src := newSource(mocks.NewFetcher(t))

	results, err := src.ParsePage(context.TODO(), nil)
	require.NoError(t, err, "shouldn't return error for empty page")
	assert.Empty(t, results, "shouldn't return records for empty page")

	results, err = src.ParsePage(context.TODO(), []byte("A1"+decoder.FieldDelimiter+"Scarpa"))
	require.NoError(t, err, "shouldn't return error")
	require.Len(t, results, 1, "should return one result")
	assert.ErrorIs(t, results[0].Error, decoder.ErrRecordTooShort, "should keep record error")
}

func TestUnitSourceFetchSKUs(t *testing.T) {
	tests := map[string]struct {
		body     []byte
		fetchErr error
		wantSKUs []string
		wantRows int
		wantErr  error
	}{
		"batch": {
			body:     []byte("Codice#|#A1#|#A2"),
			wantSKUs: []string{"A1", "A2"},
			wantRows: 2,
		},
		"empty batch": {
			fetchErr: fetcher.ErrEmptyBody,
		},
		"fetch error": {
			fetchErr: assert.AnError,
			wantErr:  feed.ErrFetch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fet := mocks.NewFetcher(t)
			fet.On("FetchPage", mock.Anything, mock.MatchedBy(func(u string) bool {
				return strings.Contains(u, "solo_codici=1") && strings.Contains(u, "offset=10")
			})).Return(tt.body, tt.fetchErr).Once()

			skus, rows, err := newSource(fet).FetchSKUs(context.TODO(), 10, 5)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			assert.Equal(t, tt.wantSKUs, skus, "should return codes")
			assert.Equal(t, tt.wantRows, rows, "should return number of rows")
		})
	}
}

func TestUnitSourceConfigured(t *testing.T) {
	assert.True(t, newSource(mocks.NewFetcher(t)).Configured(), "should be configured with base url")
	assert.False(t, feed.NewSource(nil, nil, feed.Config{}).Configured(), "shouldn't be configured without base url")
}
