package fetcher

import "errors"

var (
	// ErrStatusNotOK is returned when http response had status different than 200 OK.
	ErrStatusNotOK = errors.New("response status is not 200 OK")
	// ErrEmptyBody is returned when response body is empty or contains only whitespace.
	ErrEmptyBody = errors.New("response body is empty")
)
