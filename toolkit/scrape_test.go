package toolkit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockScraper implements web.Scraper for testing. Errors are returned in
// order, one per call; once the queue is drained calls succeed.
type mockScraper struct {
	errs      []error
	output    *web.ScrapeOutput
	calls     int
	lastInput *web.ScrapeInput
}

func (m *mockScraper) Scrape(ctx context.Context, input *web.ScrapeInput) (*web.ScrapeOutput, error) {
	m.calls++
	m.lastInput = input
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return nil, err
	}
	return m.output, nil
}

func newScrapeTool(scraper web.Scraper, maxRetries int) *brightdata.TypedToolAdapter[*web.ScrapeInput] {
	return NewScrapeTool(ScrapeToolOptions{
		Scraper:       scraper,
		MaxRetries:    maxRetries,
		RetryBaseWait: time.Millisecond,
	})
}

func TestScrapeTool_Success(t *testing.T) {
	scraper := &mockScraper{
		output: &web.ScrapeOutput{
			URL:     "https://example.com",
			Format:  web.FormatMarkdown,
			Content: "# Example\n\nSome content.",
		},
	}
	tool := newScrapeTool(scraper, 1)

	result, err := tool.Call(context.Background(), &web.ScrapeInput{URL: "https://example.com"})
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.Equal(t, "# Example\n\nSome content.", result.Text())
	assert.Equal(t, map[string]any{
		"url":            "https://example.com",
		"format":         "markdown",
		"status":         "success",
		"content_length": 24,
	}, result.Structured)

	// Markdown is the default output format
	assert.Equal(t, web.FormatMarkdown, scraper.lastInput.Format)
}

func TestScrapeTool_EmptyURL(t *testing.T) {
	scraper := &mockScraper{}
	tool := newScrapeTool(scraper, 1)

	result, err := tool.Call(context.Background(), &web.ScrapeInput{})
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Equal(t, "URL is required", result.Text())
	assert.Equal(t, 0, scraper.calls)
}

func TestScrapeTool_HTTPError(t *testing.T) {
	scraper := &mockScraper{
		errs: []error{web.NewRequestError(403, "zone not authorized")},
	}
	tool := newScrapeTool(scraper, 3)

	result, err := tool.Call(context.Background(), &web.ScrapeInput{URL: "https://example.com"})
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Equal(t, "Error scraping URL: HTTP 403 - zone not authorized", result.Text())
	assert.Equal(t, map[string]any{
		"url":    "https://example.com",
		"status": "error",
		"error":  "Error scraping URL: HTTP 403 - zone not authorized",
	}, result.Structured)
	assert.Equal(t, 1, scraper.calls, "A 403 is not recoverable and must not be retried")
}

func TestScrapeTool_RetriesRecoverableFailures(t *testing.T) {
	scraper := &mockScraper{
		errs: []error{
			web.NewRequestError(503, "overloaded"),
			errors.New("connection reset"),
		},
		output: &web.ScrapeOutput{
			URL:     "https://example.com",
			Format:  web.FormatMarkdown,
			Content: "recovered",
		},
	}
	tool := newScrapeTool(scraper, 3)

	result, err := tool.Call(context.Background(), &web.ScrapeInput{URL: "https://example.com"})
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.Equal(t, "recovered", result.Text())
	assert.Equal(t, 3, scraper.calls)
}

func TestScrapeTool_ExhaustsRetries(t *testing.T) {
	scraper := &mockScraper{
		errs: []error{
			web.NewRequestError(503, "overloaded"),
			web.NewRequestError(503, "overloaded"),
		},
	}
	tool := newScrapeTool(scraper, 2)

	result, err := tool.Call(context.Background(), &web.ScrapeInput{URL: "https://example.com"})
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "503")
	assert.Equal(t, 2, scraper.calls)
}

func TestScrapeTool_HTMLFormatPassesThrough(t *testing.T) {
	scraper := &mockScraper{
		output: &web.ScrapeOutput{
			URL:     "https://example.com",
			Format:  web.FormatHTML,
			Content: "<html></html>",
		},
	}
	tool := newScrapeTool(scraper, 1)

	result, err := tool.Call(context.Background(), &web.ScrapeInput{
		URL:    "https://example.com",
		Format: web.FormatHTML,
		Zone:   "custom_zone",
	})
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.Equal(t, web.FormatHTML, scraper.lastInput.Format)
	assert.Equal(t, "custom_zone", scraper.lastInput.Zone)
	assert.Equal(t, "html", result.Structured["format"])
}

func TestScrapeTool_Metadata(t *testing.T) {
	tool := &ScrapeTool{}

	assert.Equal(t, "scrape", tool.Name())
	assert.Contains(t, tool.Description(), "markdown")

	annotations := tool.Annotations()
	require.NotNil(t, annotations)
	assert.True(t, annotations.ReadOnlyHint)
	assert.False(t, annotations.DestructiveHint)
	assert.True(t, annotations.IdempotentHint)
	assert.True(t, annotations.OpenWorldHint)
}

func TestScrapeTool_Schema(t *testing.T) {
	tool := &ScrapeTool{}
	s := tool.Schema()

	require.NotNil(t, s)
	assert.Equal(t, []string{"url"}, s.Required)
	assert.Contains(t, s.Properties, "url")
	require.Contains(t, s.Properties, "format")
	assert.Equal(t, []string{"markdown", "html"}, s.Properties["format"].Enum)
	assert.Contains(t, s.Properties, "zone")
}
