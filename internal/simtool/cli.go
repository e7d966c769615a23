package simtool

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/vibescout/matchaudit/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "sim_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Scouting Data Simulator
=======================

Generates synthetic scouting batches, submits them through the import
pipeline and runs whole-event validation against the service.

Usage:
  go run cmd/scout-sim/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -event string
        Event key for generated records (default "2025sim")
  -matches int
        Number of matches to simulate (default 60)
  -devices int
        Number of simulated scouting devices (default 4)
  -corrupt float
        Fraction of records with an injected miscount (default 0.05)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated batches (default: sim_batches_TIMESTAMP.json)
  -log string
        Log file for run output (default: sim_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/scout-sim/main.go

  # Larger event, more devices, noisier data
  go run cmd/scout-sim/main.go -matches 120 -devices 8 -corrupt 0.15
`)
}
