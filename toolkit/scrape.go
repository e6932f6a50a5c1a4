package toolkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/retry"
	"github.com/deepnoodle-ai/brightdata/schema"
	"github.com/deepnoodle-ai/brightdata/web"
)

// DefaultScrapeMaxRetries is the total number of attempts made per scrape.
const DefaultScrapeMaxRetries = 1

var _ brightdata.TypedTool[*web.ScrapeInput] = &ScrapeTool{}

// ScrapeToolOptions configures the behavior of [ScrapeTool].
type ScrapeToolOptions struct {
	// MaxRetries is the total number of attempts made per scrape,
	// counting the first one. Only recoverable failures (429/5xx,
	// transport errors) are retried.
	MaxRetries int `json:"max_retries,omitempty"`

	// RetryBaseWait is the wait before the first retry. Zero uses the
	// retry package default.
	RetryBaseWait time.Duration `json:"retry_base_wait,omitempty"`

	// Scraper is the underlying scrape implementation (e.g. the Web
	// Unlocker client). Required.
	Scraper web.Scraper `json:"-"`
}

// ScrapeTool retrieves a single webpage through the scraping API, bypassing
// bot detection, and returns its content as markdown or raw HTML.
type ScrapeTool struct {
	scraper       web.Scraper
	maxRetries    int
	retryBaseWait time.Duration
}

// NewScrapeTool creates a new ScrapeTool with the given options.
func NewScrapeTool(options ScrapeToolOptions) *brightdata.TypedToolAdapter[*web.ScrapeInput] {
	if options.MaxRetries <= 0 {
		options.MaxRetries = DefaultScrapeMaxRetries
	}
	if options.RetryBaseWait <= 0 {
		options.RetryBaseWait = retry.DefaultBaseWait
	}
	return brightdata.ToolAdapter(&ScrapeTool{
		scraper:       options.Scraper,
		maxRetries:    options.MaxRetries,
		retryBaseWait: options.RetryBaseWait,
	})
}

func (t *ScrapeTool) Name() string {
	return "scrape"
}

func (t *ScrapeTool) Description() string {
	return "Scrape a single webpage with advanced options for content extraction. Returns the page content as markdown by default, or raw HTML."
}

func (t *ScrapeTool) Schema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"url"},
		Properties: map[string]*schema.Property{
			"url": {
				Type:        "string",
				Description: "The URL of the webpage to scrape, e.g. 'https://www.example.com'",
			},
			"format": {
				Type:        "string",
				Description: "The output format (Default: markdown)",
				Enum:        []string{"markdown", "html"},
			},
			"zone": {
				Type:        "string",
				Description: "Override the configured unlocker zone for this request",
			},
		},
	}
}

// Call scrapes the page and packages the outcome into a uniform record. The
// structured content carries the URL, format, and content length on success,
// or a status and error message on failure.
func (t *ScrapeTool) Call(ctx context.Context, input *web.ScrapeInput) (*brightdata.ToolResult, error) {
	if input.URL == "" {
		message := "URL is required"
		return NewToolResultError(message).WithStructured(map[string]any{
			"status": "error",
			"error":  message,
		}), nil
	}
	if input.Format == "" {
		input.Format = web.FormatMarkdown
	}

	var response *web.ScrapeOutput
	err := retry.Do(ctx, func() error {
		var err error
		response, err = t.scraper.Scrape(ctx, input)
		if err != nil {
			return classifyScrapeError(err)
		}
		return nil
	}, retry.WithMaxRetries(t.maxRetries), retry.WithBaseWait(t.retryBaseWait))

	if err != nil {
		message := scrapeErrorMessage(err)
		return NewToolResultError(message).WithStructured(map[string]any{
			"url":    input.URL,
			"status": "error",
			"error":  message,
		}), nil
	}

	display := fmt.Sprintf("Scraped %s as %s", response.URL, response.Format)
	return NewToolResultText(response.Content).
		WithStructured(map[string]any{
			"url":            response.URL,
			"format":         response.Format.String(),
			"status":         "success",
			"content_length": len(response.Content),
		}).
		WithDisplay(display), nil
}

// classifyScrapeError marks transient failures as recoverable so the retry
// loop tries again. Non-2xx responses outside the recoverable status set and
// context cancellations stop the attempts immediately.
func classifyScrapeError(err error) error {
	var reqErr *web.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.IsRecoverable() {
			return retry.NewRecoverableError(err)
		}
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return retry.NewRecoverableError(err)
}

func scrapeErrorMessage(err error) string {
	var reqErr *web.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("Error scraping URL: %s", reqErr)
	}
	return fmt.Sprintf("Exception occurred while scraping: %s", err)
}

func (t *ScrapeTool) Annotations() *brightdata.ToolAnnotations {
	return &brightdata.ToolAnnotations{
		Title:           "Scrape",
		ReadOnlyHint:    true,
		DestructiveHint: false,
		IdempotentHint:  true,
		OpenWorldHint:   true,
	}
}
