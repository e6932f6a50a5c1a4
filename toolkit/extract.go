package toolkit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/schema"
	"github.com/deepnoodle-ai/brightdata/web"
)

var _ brightdata.TypedTool[*web.ExtractInput] = &ExtractTool{}

// ExtractToolOptions configures the behavior of [ExtractTool].
type ExtractToolOptions struct {
	// Extractor is the underlying structured data implementation (e.g.
	// the datasets client). Required.
	Extractor web.Extractor `json:"-"`
}

// ExtractTool collects structured data for a URL through the datasets API.
// The dataset type is either named explicitly or detected from the URL, the
// collection is triggered, and the tool waits for the snapshot to complete
// before returning the rows as JSON.
type ExtractTool struct {
	extractor web.Extractor
}

// NewExtractTool creates a new ExtractTool with the given options.
func NewExtractTool(options ExtractToolOptions) *brightdata.TypedToolAdapter[*web.ExtractInput] {
	return brightdata.ToolAdapter(&ExtractTool{
		extractor: options.Extractor,
	})
}

func (t *ExtractTool) Name() string {
	return "extract"
}

func (t *ExtractTool) Description() string {
	return "Extract structured data from popular websites (Amazon, LinkedIn, Instagram, and many more). The dataset type is detected from the URL unless specified. Returns the collected records as JSON."
}

func (t *ExtractTool) Schema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"url"},
		Properties: map[string]*schema.Property{
			"url": {
				Type:        "string",
				Description: "The URL to collect structured data for, e.g. 'https://www.amazon.com/dp/B08N5WRWNW'",
			},
			"data_type": {
				Type:        "string",
				Description: "The dataset type, e.g. 'amazon_product'. Omit to detect it from the URL",
			},
			"auto_detect": {
				Type:        "boolean",
				Description: "Detect the dataset type from the URL (Default: true)",
			},
			"max_wait_time": {
				Type:        "integer",
				Description: "Maximum seconds to wait for the collection to complete (Default: 300)",
			},
			"additional_params": {
				Type:        "object",
				Description: "Extra fields merged into the trigger payload",
			},
		},
	}
}

// Call runs the collection and packages the outcome into a uniform record.
// The structured content carries the dataset, snapshot, and detection
// details on success, or a status and error message on failure.
func (t *ExtractTool) Call(ctx context.Context, input *web.ExtractInput) (*brightdata.ToolResult, error) {
	if input.URL == "" {
		message := "URL is required"
		return NewToolResultError(message).WithStructured(map[string]any{
			"status": "error",
			"error":  message,
		}), nil
	}

	response, err := t.extractor.Extract(ctx, input)
	if err != nil {
		message := err.Error()
		return NewToolResultError(message).WithStructured(map[string]any{
			"url":    input.URL,
			"status": "error",
			"error":  message,
		}), nil
	}

	text, err := json.MarshalIndent(response.Data, "", "  ")
	if err != nil {
		message := fmt.Sprintf("Failed to format structured data: %s", err)
		return NewToolResultError(message).WithStructured(map[string]any{
			"url":    input.URL,
			"status": "error",
			"error":  message,
		}), nil
	}

	display := fmt.Sprintf("Collected %s data for %s", response.DataType, response.URL)
	return NewToolResultText(string(text)).
		WithStructured(map[string]any{
			"url":                  response.URL,
			"data_type":            response.DataType,
			"dataset_id":           response.DatasetID,
			"snapshot_id":          response.SnapshotID,
			"status":               "success",
			"attempts":             response.Attempts,
			"auto_detected":        response.AutoDetected,
			"detection_confidence": response.Confidence,
			"payload_used":         response.Payload,
			"structured_data":      response.Data,
		}).
		WithDisplay(display), nil
}

func (t *ExtractTool) Annotations() *brightdata.ToolAnnotations {
	return &brightdata.ToolAnnotations{
		Title:           "Extract",
		ReadOnlyHint:    true,
		DestructiveHint: false,
		IdempotentHint:  true,
		OpenWorldHint:   true,
	}
}
