package decoder

import (
	"bytes"
	"fmt"
	"strings"
)

// SKUHeader is name of code column in SKU-only feed.
const SKUHeader = "Codice"

// DecodeSKUs decodes SKU-only feed batch.
// It returns non-empty codes and number of data rows, header row excluded.
// Blank rows count as data rows unless they trail last non-blank row.
func DecodeSKUs(batch []byte) ([]string, int, error) {
	scanner := newRecordScanner(bytes.NewReader(batch))

	var (
		skus    []string
		rows    int
		blanks  int
		column  int
		started bool
	)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			blanks++
			continue
		}
		values := strings.Split(raw, FieldDelimiter)

		if !started {
			started = true
			if ix, ok := headerColumn(values); ok {
				column = ix
				blanks = 0
				continue
			}
		}

		rows += blanks + 1
		blanks = 0
		if column >= len(values) {
			continue
		}
		if sku := strings.TrimSpace(values[column]); sku != "" {
			skus = append(skus, sku)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("can't scan sku feed: %w", err)
	}

	return skus, rows, nil
}

func headerColumn(values []string) (int, bool) {
	for ix, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), SKUHeader) {
			return ix, true
		}
	}

	return 0, false
}
