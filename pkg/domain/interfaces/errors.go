package interfaces

import "errors"

// Sentinel errors shared by all repository backends
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrLookupMiss is returned when a classification code does not resolve
	// in its lookup table. The estimation engines deliberately treat this as
	// a zero weight or a raw-code fallback, not as a failure.
	ErrLookupMiss = errors.New("lookup code not found")

	// ErrStatusConflict is returned by UpdateApproval when the WBS row's
	// approval status changed between the caller's read and the write.
	ErrStatusConflict = errors.New("approval status changed concurrently")
)
