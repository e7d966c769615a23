package repository

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrNotFound is a normal, expected outcome: the data simply is not
	// there.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey signals an insert for a logical key that already
	// has a current record.
	ErrDuplicateKey = errors.New("record key already present")

	// ErrStoreConflict is an operational failure: the store was mutated
	// underneath a compound operation and its state may be inconsistent.
	// Callers must surface it and re-prompt rather than assume success.
	ErrStoreConflict = errors.New("store state changed during operation")
)
