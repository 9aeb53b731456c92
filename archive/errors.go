package archive

import "errors"

// Sentinel errors for package archive.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File errors
	ErrNotPZFExtension = errors.New("file path extension is not '.pzf'")
	ErrExpectedFile    = errors.New("expected file, got directory")

	// Container errors
	ErrMissingMember = errors.New("archive member missing")
	ErrCorruptRuns   = errors.New("corrupt run encoding")

	// Store errors
	ErrInvalidStoreName = errors.New("invalid store name format")
)
