package helpers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/decoder"
	pgmodels "github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/stretchr/testify/require"
)

const (
	contentType  = "Content-Type"
	pollInterval = 250 * time.Millisecond
	waitTimeout  = 30 * time.Second
)

// FeedRow is single simple product row of supplier feed.
type FeedRow struct {
	Code  string
	Name  string
	Price string
	Stock int
	Brand string
}

// GenerateRows generates n feed rows with codes E2E-001..E2E-n.
func GenerateRows(t *testing.T, n int) []FeedRow {
	t.Helper()

	rows := make([]FeedRow, n)
	for ix := range rows {
		rows[ix] = FeedRow{
			Code:  fmt.Sprintf("E2E-%03d", ix+1),
			Name:  faker.Word(),
			Price: fmt.Sprintf("%d,50", ix+10),
			Stock: ix,
			Brand: faker.Word(),
		}
	}

	return rows
}

// FeedServer is mocked supplier feed serving pages and sku-only batches of current rows.
type FeedServer struct {
	*httptest.Server
	mu   sync.Mutex
	rows []FeedRow
}

// NewFeedServer starts FeedServer closed after test is finished.
func NewFeedServer(t *testing.T) *FeedServer {
	t.Helper()

	fs := &FeedServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))

	t.Cleanup(func() {
		fs.Close()
	})

	return fs
}

// SetRows sets rows served by feed.
func (fs *FeedServer) SetRows(rows []FeedRow) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.rows = rows
}

// FeedURL returns base url of feed.
func (fs *FeedServer) FeedURL() string {
	return fs.URL + "/export.php"
}

func (fs *FeedServer) serve(wrt http.ResponseWriter, req *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	query := req.URL.Query()
	offset, _ := strconv.Atoi(query.Get("offset"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	start := min(offset, len(fs.rows))
	end := min(start+limit, len(fs.rows))
	rows := fs.rows[start:end]

	wrt.Header().Add(contentType, "text/plain; charset=utf-8")
	wrt.WriteHeader(http.StatusOK)

	if query.Get("solo_codici") == "1" {
		_, _ = wrt.Write([]byte(skusBody(rows)))
		return
	}
	_, _ = wrt.Write([]byte(pageBody(rows)))
}

func pageBody(rows []FeedRow) string {
	fields := decoder.SchemaFor(decoder.SchemaSimple).Fields

	records := make([]string, 0, len(rows))
	for _, row := range rows {
		values := map[string]string{
			decoder.FieldCode:        row.Code,
			decoder.FieldName:        row.Name,
			decoder.FieldDescription: "<p>" + row.Name + "</p>",
			decoder.FieldPrice:       row.Price,
			decoder.FieldDiscount:    "0",
			decoder.FieldWeight:      "0,5",
			decoder.FieldStockOnHand: strconv.Itoa(row.Stock),
			decoder.FieldBrand:       row.Brand,
			decoder.FieldCategories:  "Scarpe\\Uomo",
			decoder.FieldExclude:     "0",
		}

		record := make([]string, len(fields))
		for ix, field := range fields {
			record[ix] = values[field.Name]
		}
		records = append(records, strings.Join(record, decoder.FieldDelimiter))
	}

	return strings.Join(records, decoder.RecordDelimiter)
}

func skusBody(rows []FeedRow) string {
	records := []string{"Codice" + decoder.FieldDelimiter + "Descrizione"}
	for _, row := range rows {
		records = append(records, row.Code+decoder.FieldDelimiter+row.Name)
	}

	return strings.Join(records, decoder.RecordDelimiter)
}

// WaitFor is blocking helper function, it polls condition until it is met or time is out.
func WaitFor(t *testing.T, what string, condition func() bool) {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		if condition() {
			return
		}
		select {
		case <-deadline:
			require.FailNow(t, "timed out waiting for "+what)
		case <-time.After(pollInterval):
		}
	}
}

// ProductsBySKU is helper function for getting top-level products keyed by SKU.
func ProductsBySKU(t *testing.T, queryable qrm.Queryable) map[string]pgmodels.Product {
	t.Helper()

	result := map[string]pgmodels.Product{}
	for _, product := range storagetesting.GetProducts(t, queryable) {
		if product.ParentID == nil {
			result[product.Sku] = product
		}
	}

	return result
}
