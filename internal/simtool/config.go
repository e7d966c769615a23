package simtool

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL     string        // Base URL of the service
	EventKey    string        // Event key for generated records
	Matches     int           // Number of matches to simulate
	Devices     int           // Number of simulated scouting devices
	CorruptRate float64       // Fraction of records with an injected miscount
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for generated batches
	LogFile     string        // Log file for run output
	Verbose     bool          // Enable verbose logging
}

// AckResponse represents the response from a batch submission.
type AckResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// Stats holds simulation statistics.
type Stats struct {
	RecordsGenerated int
	RecordsCorrupted int
	BatchesSubmitted int
	BatchesAccepted  int
	BatchesRejected  int
	MatchesValidated int
	MatchesFlagged   int
	MatchesFailed    int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
