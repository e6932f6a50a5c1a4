// Package datasets implements a client for the Bright Data datasets API,
// which collects structured records (product listings, social profiles,
// posts) from supported websites. A collection is triggered for a dataset
// ID, then the resulting snapshot is polled until it leaves the running
// state.
package datasets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/deepnoodle-ai/brightdata/slogger"
	"github.com/deepnoodle-ai/brightdata/web"
)

var _ web.Extractor = &Client{}

const (
	// DefaultBaseURL is the datasets API root.
	DefaultBaseURL = "https://api.brightdata.com/datasets/v3"

	// DefaultTimeout bounds each trigger and snapshot request.
	DefaultTimeout = 30 * time.Second

	// DefaultPollInterval is the delay between snapshot polls.
	DefaultPollInterval = 5 * time.Second

	// DefaultMaxWait bounds the total time spent waiting for a snapshot.
	DefaultMaxWait = 300 * time.Second
)

// ClientOption is a function that modifies the client configuration.
type ClientOption func(*Client)

// WithAPIToken sets the API token for the client.
func WithAPIToken(apiToken string) ClientOption {
	return func(c *Client) {
		c.apiToken = apiToken
	}
}

// WithBaseURL sets the base URL for the client.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
		c.customClient = true
	}
}

// WithTimeout sets the timeout for the default HTTP client.
// This option is ignored if a custom HTTP client is provided.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if c.customClient {
			return
		}
		c.httpClient = &http.Client{
			Timeout: timeout,
		}
	}
}

// WithPollInterval sets the delay between snapshot polls.
func WithPollInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.pollInterval = interval
	}
}

// WithMaxWait sets the default limit on the total snapshot wait. Callers
// can still override it per request via ExtractInput.MaxWaitTime.
func WithMaxWait(maxWait time.Duration) ClientOption {
	return func(c *Client) {
		c.maxWait = maxWait
	}
}

// WithLogger sets the logger for the client.
func WithLogger(logger slogger.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client represents a Bright Data datasets API client.
type Client struct {
	apiToken     string
	baseURL      string
	httpClient   *http.Client
	customClient bool
	pollInterval time.Duration
	maxWait      time.Duration
	logger       slogger.Logger
}

// New creates a new datasets client with the provided options. The API
// token defaults to the BRIGHTDATA_API_TOKEN environment variable.
func New(opts ...ClientOption) (*Client, error) {
	c := &Client{
		apiToken: os.Getenv("BRIGHTDATA_API_TOKEN"),
		baseURL:  DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		pollInterval: DefaultPollInterval,
		maxWait:      DefaultMaxWait,
		logger:       slogger.DefaultLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if envURL := os.Getenv("BRIGHTDATA_DATASETS_API_URL"); envURL != "" {
		c.baseURL = envURL
	}
	if c.apiToken == "" {
		return nil, fmt.Errorf("no api token provided")
	}
	return c, nil
}

// Extract triggers a dataset collection for the URL and polls the snapshot
// until it is ready. When input.DataType is empty the dataset is chosen by
// Detect; setting AutoDetect to false instead requires an explicit DataType.
func (c *Client) Extract(ctx context.Context, input *web.ExtractInput) (*web.ExtractOutput, error) {
	if input.URL == "" {
		return nil, errors.New("URL is required")
	}

	autoDetect := input.AutoDetect == nil || *input.AutoDetect

	dataType := input.DataType
	confidence := 0
	autoDetected := false
	if dataType == "" {
		if !autoDetect {
			return nil, errors.New("data_type is required when auto_detect is disabled")
		}
		detection, err := Detect(input.URL)
		if err != nil {
			return nil, err
		}
		dataType = detection.DataType
		confidence = detection.Confidence
		autoDetected = true
		c.logger.Info("auto-detected data type",
			"url", input.URL, "data_type", dataType, "confidence", confidence)
	}

	config, ok := Lookup(dataType)
	if !ok {
		return nil, fmt.Errorf("Unknown data type: %s", dataType)
	}

	payload := buildPayload(config, input.URL, input.AdditionalParams)

	snapshotID, err := c.trigger(ctx, config.DatasetID, payload)
	if err != nil {
		return nil, err
	}
	c.logger.Info("data collection triggered",
		"dataset_id", config.DatasetID, "snapshot_id", snapshotID)

	maxWait := c.maxWait
	if input.MaxWaitTime > 0 {
		maxWait = time.Duration(input.MaxWaitTime) * time.Second
	}
	data, attempts, err := c.poll(ctx, snapshotID, maxWait)
	if err != nil {
		return nil, err
	}
	return &web.ExtractOutput{
		URL:          input.URL,
		DataType:     dataType,
		DatasetID:    config.DatasetID,
		SnapshotID:   snapshotID,
		Attempts:     attempts,
		AutoDetected: autoDetected,
		Confidence:   confidence,
		Payload:      payload,
		Data:         data,
	}, nil
}

// buildPayload assembles the trigger payload: the URL, then the dataset's
// defaults, then caller-provided parameters. Later entries override earlier
// ones.
func buildPayload(dt *DatasetType, rawURL string, extra map[string]any) map[string]any {
	payload := map[string]any{"url": rawURL}
	for key, value := range dt.Defaults {
		payload[key] = value
	}
	for key, value := range extra {
		payload[key] = value
	}
	return payload
}

// trigger starts a collection and returns the snapshot ID to poll.
func (c *Client) trigger(ctx context.Context, datasetID string, payload map[string]any) (string, error) {
	body, err := json.Marshal([]map[string]any{payload})
	if err != nil {
		return "", fmt.Errorf("failed to marshal trigger payload: %w", err)
	}
	endpoint := fmt.Sprintf("%s/trigger?dataset_id=%s&include_errors=true",
		c.baseURL, url.QueryEscape(datasetID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("trigger request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read trigger response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Failed to trigger collection: HTTP %d - %s",
			resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return parseSnapshotID(respBody)
}

// parseSnapshotID pulls the snapshot ID out of a trigger response, which is
// either an object or a single-element list.
func parseSnapshotID(body []byte) (string, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("failed to parse trigger response: %w", err)
	}
	switch value := decoded.(type) {
	case map[string]any:
		if id, ok := value["snapshot_id"].(string); ok && id != "" {
			return id, nil
		}
	case []any:
		if len(value) == 0 {
			return "", errors.New("unexpected trigger response format: empty list")
		}
		first, ok := value[0].(map[string]any)
		if !ok {
			return "", fmt.Errorf("unexpected trigger response entry: %T", value[0])
		}
		if id, ok := first["snapshot_id"].(string); ok && id != "" {
			return id, nil
		}
	default:
		return "", fmt.Errorf("unexpected trigger response format: %T", decoded)
	}
	return "", errors.New("No snapshot ID returned from trigger request")
}

// poll fetches the snapshot until it reports a status other than "running".
// Transient failures are logged and retried on the next interval; auth
// failures abort immediately since they will never recover.
func (c *Client) poll(ctx context.Context, snapshotID string, maxWait time.Duration) (any, int, error) {
	deadline := time.Now().Add(maxWait)
	attempts := 0
	for time.Now().Before(deadline) {
		attempts++
		data, status, err := c.fetchSnapshot(ctx, snapshotID)
		switch {
		case err == nil && status != "running":
			c.logger.Info("data collection completed",
				"snapshot_id", snapshotID, "status", status, "attempts", attempts)
			return data, attempts, nil
		case err == nil:
			c.logger.Debug("data collection still running",
				"snapshot_id", snapshotID, "attempt", attempts)
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return nil, attempts, err
		default:
			var reqErr *web.RequestError
			if errors.As(err, &reqErr) &&
				(reqErr.StatusCode == http.StatusUnauthorized || reqErr.StatusCode == http.StatusForbidden) {
				return nil, attempts, fmt.Errorf("Failed to poll snapshot: %s", reqErr)
			}
			c.logger.Warn("snapshot poll failed",
				"snapshot_id", snapshotID, "attempt", attempts, "error", err)
		}
		select {
		case <-ctx.Done():
			return nil, attempts, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
	return nil, attempts, fmt.Errorf("Timeout after %d seconds waiting for data (attempted %d times)",
		int(maxWait.Seconds()), attempts)
}

// fetchSnapshot performs one snapshot request and reports the collection
// status alongside the decoded body.
func (c *Client) fetchSnapshot(ctx context.Context, snapshotID string) (any, string, error) {
	endpoint := fmt.Sprintf("%s/snapshot/%s?format=json", c.baseURL, url.PathEscape(snapshotID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read snapshot response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", web.NewRequestError(resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return parseSnapshot(body)
}

// parseSnapshot decodes a snapshot response. Object responses report their
// own status. List responses are finished records unless the first entry
// carries a status field of its own.
func parseSnapshot(body []byte) (any, string, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, "", fmt.Errorf("failed to parse snapshot response: %w", err)
	}
	switch value := decoded.(type) {
	case map[string]any:
		status, ok := value["status"].(string)
		if !ok || status == "" {
			status = "unknown"
		}
		return value, status, nil
	case []any:
		if len(value) == 0 {
			return nil, "", errors.New("unexpected snapshot response format: empty list")
		}
		if first, ok := value[0].(map[string]any); ok {
			if status, ok := first["status"].(string); ok {
				return value, status, nil
			}
		}
		return value, "completed", nil
	default:
		return nil, "", fmt.Errorf("unexpected snapshot response format: %T", decoded)
	}
}
