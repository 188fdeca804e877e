package feed

import "errors"

var (
	// ErrFetch is returned when feed page or sku batch can't be fetched.
	ErrFetch = errors.New("can't fetch feed")
	// ErrNoBaseURL is returned when feed base url is not configured.
	ErrNoBaseURL = errors.New("feed base url is not configured")
)
