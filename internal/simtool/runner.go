package simtool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/internal/validate"
	"github.com/vibescout/matchaudit/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	outputPermission    = 0600
)

// mergeSettleDelay gives the async merge workers time to drain the
// queue before validation is triggered.
const mergeSettleDelay = 2 * time.Second

// Run executes the complete simulation: generate, submit, validate,
// verify.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting scouting simulation",
		logger.String("baseURL", config.BaseURL),
		logger.String("event", config.EventKey),
		logger.Int("matches", config.Matches),
		logger.Int("devices", config.Devices),
		logger.Float64("corruptRate", config.CorruptRate),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	batches := generateBatches(ctx, config, stats)

	if err := submitBatches(ctx, config, batches, stats); err != nil {
		return fmt.Errorf("batch submission failed: %w", err)
	}

	logger.Get().Info(ctx, "waiting for merge workers to drain the queue")
	time.Sleep(mergeSettleDelay)

	report, err := triggerValidation(ctx, config)
	if err != nil {
		return fmt.Errorf("validation run failed: %w", err)
	}
	stats.MatchesValidated = report.MatchesValidated
	stats.MatchesFlagged = report.Flagged
	stats.MatchesFailed = report.Failed

	if err := verifyResults(ctx, config, report, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	if err := saveBatchesToFile(ctx, config, batches); err != nil {
		logger.Get().Warn(ctx, "failed to save batches to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// triggerValidation runs whole-event validation over the simulated
// records.
func triggerValidation(ctx context.Context, config *Config) (validate.EventReport, error) {
	var report validate.EventReport

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/validate?event=" + config.EventKey

	resp, err := client.Post(ctx, url, struct{}{})
	if err != nil {
		return report, err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return report, err
	}
	if resp.StatusCode != http.StatusOK {
		return report, fmt.Errorf("validation returned status %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &report); err != nil {
		return report, fmt.Errorf("failed to decode validation report: %w", err)
	}
	return report, nil
}

// saveBatchesToFile writes the generated batches for replay.
func saveBatchesToFile(ctx context.Context, config *Config, batches [][]model.ScoutingRecord) error {
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "sim_batches_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batches: %w", err)
	}
	if err := os.WriteFile(filename, data, outputPermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "batches saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("recordsGenerated", stats.RecordsGenerated),
		logger.Int("recordsCorrupted", stats.RecordsCorrupted),
		logger.Int("batchesSubmitted", stats.BatchesSubmitted),
		logger.Int("batchesAccepted", stats.BatchesAccepted),
		logger.Int("batchesRejected", stats.BatchesRejected),
		logger.Int("matchesValidated", stats.MatchesValidated),
		logger.Int("matchesFlagged", stats.MatchesFlagged),
		logger.Int("matchesFailed", stats.MatchesFailed),
		logger.String("duration", stats.Duration.String()),
	)
}
