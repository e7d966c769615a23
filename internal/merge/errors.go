package merge

import "errors"

// Sentinel kinds for merge errors.
var (
	ErrNoConflictPending = errors.New("no conflict pending")
	ErrNoBatchPending    = errors.New("no batch review pending")
	ErrUnknownAction     = errors.New("unknown resolution action")

	// ErrResolveFailed wraps a store failure during a replace. The
	// operation did not complete; the caller must re-prompt, never
	// assume success.
	ErrResolveFailed = errors.New("conflict resolution not applied")

	// ErrPartialFailure: some records of a batch applied and some did
	// not.
	ErrPartialFailure = errors.New("merge applied partially")
)
