package cleanup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/cleanup"
	"github.com/MichalMitros/supplier-feed-sync/internal/decoder"
	"github.com/MichalMitros/supplier-feed-sync/internal/feed"
	"github.com/MichalMitros/supplier-feed-sync/internal/fetcher"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/clock"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/storagetesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitStepBlankSupplierRow(t *testing.T) {
	batches := map[string]string{
		"0": "A1" + decoder.RecordDelimiter + " " + decoder.RecordDelimiter + "A3",
		"3": "A4",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(batches[r.URL.Query().Get("offset")]))
	}))
	defer server.Close()

	dec := decoder.NewDecoder(decoder.SchemaSimple, decoder.Options{})
	source := feed.NewSource(fetcher.NewFetcher(server.Client(), "test"), dec, feed.Config{BaseURL: server.URL})
	catalog := newCatalog("A1", "A3", "A4", "B9")
	store := storagetesting.NewMemoryState()
	machine := cleanup.NewMachine(source, catalog, store,
		cleanup.Config{Interval: time.Hour, FetchBatch: 3, DeleteBatch: 50},
		cleanup.WithClock(clock.NewManual(now)),
	)

	phases := []models.CleanupPhase{}
	for range 4 {
		report, err := machine.Step(context.TODO())
		require.NoError(t, err, "shouldn't return error")
		phases = append(phases, report.PhaseAfter)
	}

	assert.Equal(t, []models.CleanupPhase{
		models.CleanupPhaseFetch,
		models.CleanupPhaseCompare,
		models.CleanupPhaseDelete,
		models.CleanupPhaseNone,
	}, phases, "should fetch next batch after full batch with blank row")
	assert.Equal(t, []string{"B9"}, trashed(catalog), "should trash only skus missing in every batch")
}
