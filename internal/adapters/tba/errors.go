package tba

import "errors"

// Sentinel kinds for feed errors.
var (
	// ErrMatchNotFound: the feed answered and the match does not exist.
	ErrMatchNotFound = errors.New("match not found in official feed")

	// ErrNeverFetched: the feed is unreachable and nothing is cached.
	// This is the only failure mode staleness can not paper over.
	ErrNeverFetched = errors.New("official data never fetched and feed unreachable")
)
