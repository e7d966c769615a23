// Package worker drains the import queue into the merge engine.
package worker

import (
	"github.com/vibescout/matchaudit/pkg/logger"
)

// Option applies a configuration option to the MergeWorker.
type Option func(*MergeWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *MergeWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *MergeWorker) {
		if l != nil {
			w.logger = l
		}
	}
}
