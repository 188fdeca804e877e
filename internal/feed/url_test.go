package feed_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestUnitPageURL(t *testing.T) {
	tests := map[string]struct {
		config    feed.Config
		offset    int
		wantQuery url.Values
	}{
		"minimal": {
			config: feed.Config{BaseURL: "https://supplier.example.com/export", PageSize: 50},
			offset: 100,
			wantQuery: url.Values{
				"limit":  {"50"},
				"offset": {"100"},
			},
		},
		"all options": {
			config: feed.Config{
				BaseURL:         "https://supplier.example.com/export?format=txt",
				PriceList:       "7",
				Token:           "secret",
				DaysBack:        3,
				PageSize:        25,
				Variations:      true,
				VariationImages: true,
			},
			wantQuery: url.Values{
				"format":       {"txt"},
				"listino":      {"7"},
				"token":        {"secret"},
				"limit":        {"25"},
				"offset":       {"0"},
				"dal":          {"2024-03-07"},
				"al":           {"2024-03-10"},
				"varianti":     {"1"},
				"img_varianti": {"1"},
			},
		},
		"variation images need variations": {
			config: feed.Config{BaseURL: "https://supplier.example.com/export", PageSize: 50, VariationImages: true},
			wantQuery: url.Values{
				"limit":  {"50"},
				"offset": {"0"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tt.config.PageURL(tt.offset, now)
			require.NoError(t, err, "shouldn't return error")

			u, err := url.Parse(got)
			require.NoError(t, err, "should return valid url")
			assert.Equal(t, "supplier.example.com", u.Host, "should keep base host")
			assert.Equal(t, "/export", u.Path, "should keep base path")
			assert.Equal(t, tt.wantQuery, u.Query(), "should build correct query")
		})
	}
}

func TestUnitSKUsURL(t *testing.T) {
	config := feed.Config{BaseURL: "https://supplier.example.com/export", PriceList: "7", Token: "secret", Variations: true}

	got, err := config.SKUsURL(2000, 1000)
	require.NoError(t, err, "shouldn't return error")

	u, err := url.Parse(got)
	require.NoError(t, err, "should return valid url")
	assert.Equal(t, url.Values{
		"listino":     {"7"},
		"token":       {"secret"},
		"solo_codici": {"1"},
		"limit":       {"1000"},
		"offset":      {"2000"},
	}, u.Query(), "should build sku batch query")
}

func TestUnitURLWithoutBase(t *testing.T) {
	_, err := feed.Config{}.PageURL(0, now)
	assert.ErrorIs(t, err, feed.ErrNoBaseURL, "should require base url")

	_, err = feed.Config{}.SKUsURL(0, 10)
	assert.ErrorIs(t, err, feed.ErrNoBaseURL, "should require base url")
}
