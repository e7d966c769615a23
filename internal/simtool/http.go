package simtool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/vibescout/matchaudit/internal/adapters/importer"
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/pkg/logger"
)

// HTTPClient wraps http.Client with a per-request timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitBatches uploads every device's batch concurrently, one goroutine
// per device, the way real devices sync independently.
func submitBatches(ctx context.Context, config *Config, batches [][]model.ScoutingRecord, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/import"

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	for i, records := range batches {
		if len(records) == 0 {
			continue
		}
		wg.Add(1)
		go func(device int, records []model.ScoutingRecord) {
			defer wg.Done()

			envelope := importer.Envelope{
				Version: 1,
				Source:  fmt.Sprintf("sim-device-%d", device),
				Records: records,
			}
			resp, err := client.Post(ctx, url, envelope)

			mu.Lock()
			defer mu.Unlock()
			stats.BatchesSubmitted++
			if err != nil {
				stats.BatchesRejected++
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			body, _ := readResponseBody(resp)
			if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
				stats.BatchesRejected++
				if firstErr == nil {
					firstErr = fmt.Errorf("batch rejected with status %d: %s", resp.StatusCode, body)
				}
				return
			}
			stats.BatchesAccepted++
			if config.Verbose {
				logger.Get().Info(ctx, "batch accepted",
					logger.Int("device", device),
					logger.Int("records", len(records)),
				)
			}
		}(i, records)
	}

	wg.Wait()
	return firstErr
}
