package platform

import (
	"errors"
)

// ErrAlreadyRunning is an error returned when sync can't be started because another sync holds a fresh lock.
var ErrAlreadyRunning = errors.New("sync already running")

// ErrLockLost is returned when sync lock refreshed by run was released or taken over by another run.
var ErrLockLost = errors.New("sync lock isn't held anymore")

// ErrNotFound is returned when requested item doesn't exist.
var ErrNotFound = errors.New("not found")
