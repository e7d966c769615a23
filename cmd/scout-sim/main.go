package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/vibescout/matchaudit/internal/simtool"
)

// Default configuration constants.
const (
	defaultMatches     = 60
	defaultDevices     = 4
	defaultCorruptRate = 0.05
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		eventKey    = flag.String("event", "2025sim", "Event key for generated records")
		matches     = flag.Int("matches", defaultMatches, "Number of matches to simulate")
		devices     = flag.Int("devices", defaultDevices, "Number of simulated scouting devices")
		corruptRate = flag.Float64("corrupt", defaultCorruptRate, "Fraction of records with an injected miscount")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Output file for generated batches (default: sim_batches_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for run output (default: sim_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simtool.ShowHelp()
		return
	}

	if err := simtool.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &simtool.Config{
		BaseURL:     *baseURL,
		EventKey:    *eventKey,
		Matches:     *matches,
		Devices:     *devices,
		CorruptRate: *corruptRate,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	if err := simtool.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
