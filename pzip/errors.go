package pzip

import "errors"

// Sentinel errors for package pzip.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Argument errors
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")
	ErrNilFrequency       = errors.New("frequency table is nil")
	ErrOutputTooSmall     = errors.New("output buffer is smaller than the scanned input")

	// Input errors
	ErrInvalidCharacter = errors.New("character outside a-z")
	ErrInvalidRun       = errors.New("invalid run")

	// Synchronization errors
	ErrBarrierBroken = errors.New("barrier broken")
	ErrWorkerPanic   = errors.New("worker panicked")
)
