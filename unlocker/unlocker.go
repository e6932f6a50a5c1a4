// Package unlocker provides a client for the Bright Data Web Unlocker
// request API, which fetches pages through Bright Data's proxy network with
// bot-detection bypass.
package unlocker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/deepnoodle-ai/brightdata/web"
)

var (
	_ web.Searcher = &Client{}
	_ web.Scraper  = &Client{}
)

const (
	// DefaultBaseURL is the Bright Data API root.
	DefaultBaseURL = "https://api.brightdata.com"

	// DefaultZone is the Web Unlocker zone used when none is configured.
	DefaultZone = "mcp_unlocker"

	// DefaultTimeout bounds each request. Unlocker requests are slow when
	// the target site requires interactive unblocking.
	DefaultTimeout = 120 * time.Second
)

// ClientOption is a function that modifies the client configuration.
type ClientOption func(*Client)

// WithAPIToken sets the API token for the client.
func WithAPIToken(apiToken string) ClientOption {
	return func(c *Client) {
		c.apiToken = apiToken
	}
}

// WithZone sets the Web Unlocker zone for the client.
func WithZone(zone string) ClientOption {
	return func(c *Client) {
		c.zone = zone
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

// Client represents a Bright Data Web Unlocker API client.
type Client struct {
	apiToken     string
	baseURL      string
	zone         string
	httpClient   *http.Client
	customClient bool
}

// New creates a new Web Unlocker client with the provided options. The API
// token defaults to the BRIGHTDATA_API_TOKEN environment variable.
func New(opts ...ClientOption) (*Client, error) {
	c := &Client{
		apiToken: os.Getenv("BRIGHTDATA_API_TOKEN"),
		baseURL:  DefaultBaseURL,
		zone:     DefaultZone,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if envURL := os.Getenv("BRIGHTDATA_API_URL"); envURL != "" {
		c.baseURL = envURL
	}
	if c.apiToken == "" {
		return nil, fmt.Errorf("no api token provided")
	}
	return c, nil
}

// Zone returns the zone the client sends requests through.
func (c *Client) Zone() string {
	return c.zone
}

// requestBody is the Web Unlocker request payload.
type requestBody struct {
	URL        string `json:"url"`
	Zone       string `json:"zone"`
	Format     string `json:"format"`
	DataFormat string `json:"data_format,omitempty"`
}

// Search fetches the results page for the given query from the selected
// search engine, rendered as markdown.
func (c *Client) Search(ctx context.Context, input *web.SearchInput) (*web.SearchOutput, error) {
	searchURL := SearchURL(input.Engine, input.Query)
	body, err := c.doRequest(ctx, &requestBody{
		URL:        searchURL,
		Zone:       c.zone,
		Format:     "raw",
		DataFormat: "markdown",
	})
	if err != nil {
		return nil, err
	}
	return &web.SearchOutput{URL: searchURL, Content: string(body)}, nil
}

// Scrape fetches the given URL through the Web Unlocker. Markdown output is
// rendered by Bright Data; HTML comes back as-is.
func (c *Client) Scrape(ctx context.Context, input *web.ScrapeInput) (*web.ScrapeOutput, error) {
	zone := input.Zone
	if zone == "" {
		zone = c.zone
	}
	format := input.Format
	if format == "" {
		format = web.FormatMarkdown
	}
	body := &requestBody{
		URL:    input.URL,
		Zone:   zone,
		Format: "raw",
	}
	if format == web.FormatMarkdown {
		body.DataFormat = "markdown"
	}
	respBody, err := c.doRequest(ctx, body)
	if err != nil {
		return nil, err
	}
	return &web.ScrapeOutput{URL: input.URL, Format: format, Content: string(respBody)}, nil
}

// doRequest performs a single POST to the Web Unlocker request endpoint.
func (c *Client) doRequest(ctx context.Context, body *requestBody) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/request", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, web.NewRequestError(resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
