package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v5"
)

// Option is custom configuration of Fetcher.
type Option func(f *Fetcher)

// Fetcher builds http requests and fetches feed pages via http.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxTries  uint
	backOff   func() backoff.BackOff
}

// NewFetcher returns new Fetcher.
func NewFetcher(client *http.Client, userAgent string, ops ...Option) *Fetcher {
	f := &Fetcher{
		client:    client,
		userAgent: userAgent,
		maxTries:  1,
		backOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}

	for _, op := range ops {
		op(f)
	}

	return f
}

// FetchPage returns body of page fetched from provided url or error.
// Transport errors and 5xx responses are retried, other failures are returned immediately.
func (f *Fetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	return backoff.Retry(ctx, func() ([]byte, error) {
		return f.fetch(ctx, url)
	},
		backoff.WithBackOff(f.backOff()),
		backoff.WithMaxTries(f.maxTries),
	)
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("can't build http request: %w", err))
	}

	req.Header.Add("Accept", "text/plain")
	req.Header.Add("Accept-Encoding", "gzip")
	req.Header.Add("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: got %d", ErrStatusNotOK, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("%w: got %d", ErrStatusNotOK, resp.StatusCode))
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("can't read response body: %w", err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, backoff.Permanent(ErrEmptyBody)
	}

	return body, nil
}

// readBody reads whole response body, decompressing gzipped responses.
func readBody(resp *http.Response) ([]byte, error) {
	if !isGzipped(resp) {
		return io.ReadAll(resp.Body)
	}

	decompressed, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}
	defer decompressed.Close()

	return io.ReadAll(decompressed)
}

func isGzipped(resp *http.Response) bool {
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return true
	}

	switch resp.Header.Get("Content-Type") {
	case "application/zip", "application/gzip", "application/x-gzip":
		return true
	default:
		return false
	}
}

// WithRetries sets number of attempts and back-off policy used between them.
func WithRetries(maxTries uint, backOff func() backoff.BackOff) Option {
	return func(f *Fetcher) {
		if maxTries > 0 {
			f.maxTries = maxTries
		}
		if backOff != nil {
			f.backOff = backOff
		}
	}
}
