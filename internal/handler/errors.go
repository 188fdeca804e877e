package handler

import "errors"

var (
	// ErrCleanupRunning is returned when cleanup step is already running in this process.
	ErrCleanupRunning = errors.New("cleanup already running")
	// ErrUnknownCommand is returned when command name isn't known.
	ErrUnknownCommand = errors.New("unknown command")
)
