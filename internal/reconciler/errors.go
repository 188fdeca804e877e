package reconciler

import "errors"

var (
	// ErrReconciliation is returned when record can't be applied to catalog.
	ErrReconciliation = errors.New("can't reconcile record")
	// ErrNoVariationAttributes is returned for variation record without size and color.
	ErrNoVariationAttributes = errors.New("variation has no attribute values")
)
