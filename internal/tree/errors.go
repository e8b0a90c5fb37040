package tree

import "errors"

var (
	// ErrNotFound is returned when the root of a hierarchy does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrScanFailure marks a single entry that could not be inspected.
	// Loading logs it and carries on.
	ErrScanFailure = errors.New("scan failure")

	// ErrWriteRejected reports that a value read back after a write differs
	// from what was written.
	ErrWriteRejected = errors.New("write rejected")

	// ErrStop can be returned by a visitor to end a walk early without
	// reporting a failure.
	ErrStop = errors.New("stop walking")
)
