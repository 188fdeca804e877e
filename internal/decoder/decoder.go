package decoder

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"golang.org/x/sync/errgroup"
)

const maxRecordSize = 4 * 1024 * 1024

// Options configures derived fields computation.
type Options struct {
	StockType          StockType
	AddVAT             bool
	Rounding           Rounding
	NormalizeBrand     bool
	PlaceholderMarkers []string
}

// Decoder decodes delimited feed into records.
type Decoder struct {
	schema    Schema
	options   Options
	sanitizer sanitizer
}

// NewDecoder returns Decoder for provided schema.
func NewDecoder(kind SchemaKind, options Options) *Decoder {
	return &Decoder{
		schema:    SchemaFor(kind),
		options:   options,
		sanitizer: newSanitizer(),
	}
}

// Schema returns schema used by decoder.
func (d *Decoder) Schema() Schema {
	return d.schema
}

// Decode decodes records from feed and returns each record with decoding error into output channel.
// Blank records inside feed are returned with ErrBlankRecord. Blank tail after last record is ignored.
func (d *Decoder) Decode(ctx context.Context, feed io.Reader, output chan<- models.ParsingResult) error {
	scanner := newRecordScanner(feed)

	blanks := 0
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			blanks++
			continue
		}

		for ; blanks > 0; blanks-- {
			if err := send(ctx, output, models.ParsingResult{Error: ErrBlankRecord}); err != nil {
				return err
			}
		}

		if err := send(ctx, output, d.decodeRecord(raw)); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("can't scan feed: %w", err)
	}

	return nil
}

func send(ctx context.Context, output chan<- models.ParsingResult, result models.ParsingResult) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case output <- result:
		return nil
	}
}

// DecodeAll decodes whole feed page and returns all results in feed order.
func (d *Decoder) DecodeAll(ctx context.Context, page []byte) ([]models.ParsingResult, error) {
	results := make(chan models.ParsingResult)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(results)
		return d.Decode(ctx, bytes.NewReader(page), results)
	})

	var collected []models.ParsingResult
	eg.Go(func() error {
		for result := range results {
			collected = append(collected, result)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("can't decode feed page: %w", err)
	}

	return collected, nil
}

func (d *Decoder) decodeRecord(raw string) models.ParsingResult {
	values := strings.Split(raw, FieldDelimiter)
	if len(values) < d.schema.Width() {
		return models.ParsingResult{
			Record: models.Record{Code: strings.TrimSpace(values[0])},
			Error:  fmt.Errorf("%w: got %d, want %d", ErrRecordTooShort, len(values), d.schema.Width()),
		}
	}

	f := d.sanitizer.sanitize(d.schema, values)
	record := d.derive(f)

	switch {
	case record.Code == "":
		return models.ParsingResult{Record: record, Error: ErrMissingCode}
	case f.flag(FieldExclude):
		return models.ParsingResult{Record: record, Error: ErrExcluded}
	default:
		return models.ParsingResult{Record: record}
	}
}

// newRecordScanner returns scanner splitting feed on record delimiter.
func newRecordScanner(feed io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(feed)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	scanner.Split(splitOn([]byte(RecordDelimiter)))

	return scanner
}

func splitOn(delimiter []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		if ix := bytes.Index(data, delimiter); ix >= 0 {
			return ix + len(delimiter), data[:ix], nil
		}

		if atEOF {
			return len(data), data, nil
		}

		return 0, nil, nil
	}
}
