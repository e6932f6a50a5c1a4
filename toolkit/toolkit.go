// Package toolkit provides the Bright Data tools: scraping search engine
// results pages, scraping individual webpages through the Web Unlocker, and
// collecting structured data through the datasets API.
//
// # Tools
//
//   - [SearchEngineTool]: Scrape Google, Bing, or Yandex results for a query
//   - [ScrapeTool]: Scrape a single webpage as markdown or raw HTML
//   - [ExtractTool]: Collect structured records for a URL (products,
//     profiles, listings, and so on)
//
// Each tool has a constructor function (e.g. [NewSearchEngineTool]) that
// accepts an options struct carrying the provider client it calls through.
// Constructors return a [brightdata.TypedToolAdapter] that can be registered
// with an MCP server or called directly:
//
//	client, err := unlocker.New()
//	if err != nil {
//	    return err
//	}
//	tool := toolkit.NewSearchEngineTool(toolkit.SearchEngineToolOptions{
//	    Searcher: client,
//	})
//
// Tools follow one result convention: operational failures (non-2xx upstream
// responses, transport errors, invalid input) are returned as error-shaped
// results, not as Go errors. A Go error from a tool call means the call
// machinery itself broke.
//
// # Middleware
//
// Any tool can be composed with [WithRateLimit] and [WithCircuitBreaker] to
// pace calls and fail fast when the upstream is struggling. Both preserve
// the wrapped tool's name, schema, and annotations.
package toolkit

import "github.com/deepnoodle-ai/brightdata"

var (
	// NewToolResultError creates a tool result indicating an error occurred.
	// The message is returned to the caller as the result text.
	NewToolResultError = brightdata.NewToolResultError

	// NewToolResultText creates a successful tool result with text content.
	NewToolResultText = brightdata.NewToolResultText
)
