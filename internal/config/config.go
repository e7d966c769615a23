// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// TBABaseURL and TBAAuthKey configure the official-results feed.
	TBABaseURL string `koanf:"tba_base_url"`
	TBAAuthKey string `koanf:"tba_auth_key"`

	// ImportQueueSize bounds the in-memory batch queue feeding the merge
	// workers.
	ImportQueueSize int `koanf:"import_queue_size"`

	// MergeWorkerCount sets the number of merge workers draining the
	// import queue.
	MergeWorkerCount int `koanf:"merge_worker_count"`

	// ValidateWorkerCount bounds concurrent per-match validation during
	// a batch run.
	ValidateWorkerCount int `koanf:"validate_worker_count"`

	// BatchReviewThreshold is the incoming-conflict count at which the
	// merge workflow offers bulk triage before per-item review.
	BatchReviewThreshold int `koanf:"batch_review_threshold"`

	// ValidationConfigPath is where the tunable validation thresholds
	// are persisted. Empty disables persistence.
	ValidationConfigPath string `koanf:"validation_config_path"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		TBABaseURL:           "https://www.thebluealliance.com/api/v3",
		ImportQueueSize:      1024,
		MergeWorkerCount:     2,
		ValidateWorkerCount:  runtime.NumCPU(),
		BatchReviewThreshold: 5,
		ValidationConfigPath: "validation.yaml",
	}
}
