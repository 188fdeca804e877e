package cleanup

import "errors"

var (
	// ErrAborted is returned when cleanup cycle is collapsed to none phase and its artifacts are dropped.
	ErrAborted = errors.New("cleanup aborted")
	// ErrNoFeedURL is returned when supplier feed isn't configured.
	ErrNoFeedURL = errors.New("no feed url configured")
	// ErrNoSupplierSKUs is returned when supplier feed returned no SKUs at all.
	ErrNoSupplierSKUs = errors.New("no supplier skus fetched")
	// ErrUnknownPhase is returned when persisted phase isn't known.
	ErrUnknownPhase = errors.New("unknown cleanup phase")
)
