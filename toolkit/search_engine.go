package toolkit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/schema"
	"github.com/deepnoodle-ai/brightdata/web"
)

var _ brightdata.TypedTool[*SearchEngineInput] = &SearchEngineTool{}

// SearchEngineToolOptions configures the behavior of [SearchEngineTool].
type SearchEngineToolOptions struct {
	// DefaultEngine is used when a request does not name an engine.
	// Defaults to google.
	DefaultEngine web.Engine `json:"default_engine,omitempty"`

	// Searcher is the underlying search implementation (e.g. the Web
	// Unlocker client). Required - the tool will fail at call time if not
	// provided.
	Searcher web.Searcher `json:"-"`
}

// SearchEngineInput represents the input parameters for the search_engine
// tool. The query accepts either a plain string or a message object with a
// text field, since workflow hosts pass both forms.
type SearchEngineInput struct {
	// Query is the search query. Required.
	Query brightdata.MessageText `json:"query"`

	// Engine selects the search engine. Defaults to google.
	Engine web.Engine `json:"engine,omitempty"`
}

// SearchEngineTool scrapes search engine results pages via a configured
// search provider. Results are returned as markdown text containing the
// URL, title, and description of each hit.
//
// Three outcomes are possible, and all three are returned as results rather
// than errors: a success record carrying the results page, an error record
// for a non-2xx upstream response, and an error record for a transport
// failure. A blank query short-circuits to an error record without any
// network call.
type SearchEngineTool struct {
	defaultEngine web.Engine
	searcher      web.Searcher
}

// NewSearchEngineTool creates a new SearchEngineTool with the given options.
func NewSearchEngineTool(options SearchEngineToolOptions) *brightdata.TypedToolAdapter[*SearchEngineInput] {
	if options.DefaultEngine == "" {
		options.DefaultEngine = web.EngineGoogle
	}
	return brightdata.ToolAdapter(&SearchEngineTool{
		defaultEngine: options.DefaultEngine,
		searcher:      options.Searcher,
	})
}

func (t *SearchEngineTool) Name() string {
	return "search_engine"
}

func (t *SearchEngineTool) Description() string {
	return "Scrape search results from Google, Bing, or Yandex. Returns the results page in markdown, with the URL, title, and description of each result."
}

func (t *SearchEngineTool) Schema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"query"},
		Properties: map[string]*schema.Property{
			"query": {
				Type:        "string",
				Description: "The search query, e.g. 'cloud security companies'",
			},
			"engine": {
				Type:        "string",
				Description: "The search engine to use (Default: google)",
				Enum:        []string{"google", "bing", "yandex"},
			},
		},
	}
}

// Call runs the search and packages the outcome into a uniform record. The
// structured content carries the query, engine, search URL, and result
// length on success, or a status and error message on failure.
func (t *SearchEngineTool) Call(ctx context.Context, input *SearchEngineInput) (*brightdata.ToolResult, error) {
	query := strings.TrimSpace(input.Query.String())
	if query == "" {
		message := "Search query is required"
		return NewToolResultError(message).WithStructured(map[string]any{
			"status": "error",
			"error":  message,
		}), nil
	}

	engine := input.Engine
	if engine == "" {
		engine = t.defaultEngine
	}
	if engine == "" {
		engine = web.EngineGoogle
	}

	response, err := t.searcher.Search(ctx, &web.SearchInput{
		Query:  query,
		Engine: engine,
	})
	if err != nil {
		message := searchErrorMessage(err)
		return NewToolResultError(message).WithStructured(map[string]any{
			"query":  query,
			"engine": engine.String(),
			"status": "error",
			"error":  message,
		}), nil
	}

	display := fmt.Sprintf("Searched %s for %q", engine, query)
	return NewToolResultText(response.Content).
		WithStructured(map[string]any{
			"query":          query,
			"engine":         engine.String(),
			"search_url":     response.URL,
			"status":         "success",
			"results_length": len(response.Content),
		}).
		WithDisplay(display), nil
}

func searchErrorMessage(err error) string {
	var reqErr *web.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("Error searching: %s", reqErr)
	}
	return fmt.Sprintf("Exception occurred while searching: %s", err)
}

func (t *SearchEngineTool) Annotations() *brightdata.ToolAnnotations {
	return &brightdata.ToolAnnotations{
		Title:           "Search Engine",
		ReadOnlyHint:    true,
		DestructiveHint: false,
		IdempotentHint:  true,
		OpenWorldHint:   true,
	}
}
