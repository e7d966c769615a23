// Package tba fetches official match results from The Blue Alliance API,
// serving cached data transparently when the feed is unreachable.
package tba

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/vibescout/matchaudit/internal/domain/official"
	"github.com/vibescout/matchaudit/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL     = "https://www.thebluealliance.com/api/v3"
	defaultHTTPTimeout = 15 * time.Second

	authHeader = "X-TBA-Auth-Key"
)

// Provider returns official match data, cached-or-fresh. Implementations
// never delete cached data; staleness is always preferable to nothing.
type Provider interface {
	// GetMatch returns one match's payload, or ErrMatchNotFound when the
	// feed has answered that the match does not exist.
	GetMatch(ctx context.Context, eventKey, matchKey string) (*official.MatchPayload, error)

	// GetEventMatches returns every match payload for an event.
	GetEventMatches(ctx context.Context, eventKey string) ([]official.MatchPayload, error)
}

// Client is the HTTP Provider with a never-evicting in-memory cache.
type Client struct {
	baseURL string
	authKey string
	httpc   *http.Client

	mu         sync.RWMutex
	matchCache map[string]*official.MatchPayload
	eventCache map[string][]official.MatchPayload
}

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the feed base URL (useful for tests).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithAuthKey sets the feed API key.
func WithAuthKey(key string) ClientOption {
	return func(c *Client) { c.authKey = key }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

// NewClient creates a feed client with configuration options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpc:      &http.Client{Timeout: defaultHTTPTimeout},
		matchCache: map[string]*official.MatchPayload{},
		eventCache: map[string][]official.MatchPayload{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetMatch returns one match payload, from the feed when reachable and
// from cache otherwise.
func (c *Client) GetMatch(ctx context.Context, eventKey, matchKey string) (*official.MatchPayload, error) {
	var payload official.MatchPayload
	err := c.getJSON(ctx, fmt.Sprintf("/match/%s", matchKey), &payload)
	switch {
	case err == nil:
		c.mu.Lock()
		c.matchCache[matchKey] = &payload
		c.mu.Unlock()
		metrics.RecordFeedRequest("ok")
		return &payload, nil
	case errors.Is(err, errFeedNotFound):
		metrics.RecordFeedRequest("not_found")
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchKey)
	default:
		c.mu.RLock()
		cached, ok := c.matchCache[matchKey]
		c.mu.RUnlock()
		if ok {
			metrics.RecordFeedCacheHit()
			return cached, nil
		}
		metrics.RecordFeedRequest("error")
		return nil, fmt.Errorf("%w: %s (%v)", ErrNeverFetched, matchKey, err)
	}
}

// GetEventMatches returns every match payload for an event, cached-or-fresh.
func (c *Client) GetEventMatches(ctx context.Context, eventKey string) ([]official.MatchPayload, error) {
	var payloads []official.MatchPayload
	err := c.getJSON(ctx, fmt.Sprintf("/event/%s/matches", eventKey), &payloads)
	switch {
	case err == nil:
		c.mu.Lock()
		c.eventCache[eventKey] = payloads
		for i := range payloads {
			c.matchCache[payloads[i].Key] = &payloads[i]
		}
		c.mu.Unlock()
		metrics.RecordFeedRequest("ok")
		return payloads, nil
	case errors.Is(err, errFeedNotFound):
		metrics.RecordFeedRequest("not_found")
		return nil, fmt.Errorf("%w: event %s", ErrMatchNotFound, eventKey)
	default:
		c.mu.RLock()
		cached, ok := c.eventCache[eventKey]
		c.mu.RUnlock()
		if ok {
			metrics.RecordFeedCacheHit()
			return cached, nil
		}
		metrics.RecordFeedRequest("error")
		return nil, fmt.Errorf("%w: event %s (%v)", ErrNeverFetched, eventKey, err)
	}
}

// errFeedNotFound is internal: the feed answered 404.
var errFeedNotFound = errors.New("feed returned 404")

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.authKey != "" {
		req.Header.Set(authHeader, c.authKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errFeedNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
