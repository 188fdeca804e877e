package syncstate

import "errors"

// ErrNegativeOffset is returned when negative cursor offset is set.
var ErrNegativeOffset = errors.New("negative sync offset")
