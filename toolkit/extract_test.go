package toolkit

import (
	"context"
	"errors"
	"testing"

	"github.com/deepnoodle-ai/brightdata/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExtractor implements web.Extractor for testing
type mockExtractor struct {
	output    *web.ExtractOutput
	err       error
	calls     int
	lastInput *web.ExtractInput
}

func (m *mockExtractor) Extract(ctx context.Context, input *web.ExtractInput) (*web.ExtractOutput, error) {
	m.calls++
	m.lastInput = input
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func TestExtractTool_Success(t *testing.T) {
	extractor := &mockExtractor{
		output: &web.ExtractOutput{
			URL:          "https://www.amazon.com/dp/B08N5WRWNW",
			DataType:     "amazon_product",
			DatasetID:    "gd_l7q7dkf244hwjntr0",
			SnapshotID:   "snap_123",
			Attempts:     4,
			AutoDetected: true,
			Confidence:   150,
			Payload:      map[string]any{"url": "https://www.amazon.com/dp/B08N5WRWNW"},
			Data: []any{
				map[string]any{"title": "Echo Dot", "price": "49.99"},
			},
		},
	}
	tool := &ExtractTool{extractor: extractor}

	result, err := tool.Call(context.Background(), &web.ExtractInput{
		URL: "https://www.amazon.com/dp/B08N5WRWNW",
	})
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.Contains(t, result.Text(), `"title": "Echo Dot"`)

	structured := result.Structured
	assert.Equal(t, "amazon_product", structured["data_type"])
	assert.Equal(t, "gd_l7q7dkf244hwjntr0", structured["dataset_id"])
	assert.Equal(t, "snap_123", structured["snapshot_id"])
	assert.Equal(t, "success", structured["status"])
	assert.Equal(t, 4, structured["attempts"])
	assert.Equal(t, true, structured["auto_detected"])
	assert.Equal(t, 150, structured["detection_confidence"])
}

func TestExtractTool_EmptyURL(t *testing.T) {
	extractor := &mockExtractor{}
	tool := &ExtractTool{extractor: extractor}

	result, err := tool.Call(context.Background(), &web.ExtractInput{})
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Equal(t, "URL is required", result.Text())
	assert.Equal(t, 0, extractor.calls)
}

func TestExtractTool_ExtractorError(t *testing.T) {
	extractor := &mockExtractor{
		err: errors.New("Could not automatically detect website type for domain: example.com. Please disable auto-detect and manually select a data type."),
	}
	tool := &ExtractTool{extractor: extractor}

	result, err := tool.Call(context.Background(), &web.ExtractInput{
		URL: "https://example.com/page",
	})
	require.NoError(t, err, "Collection failures become error records, not errors")

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "Could not automatically detect website type")
	assert.Equal(t, map[string]any{
		"url":    "https://example.com/page",
		"status": "error",
		"error":  extractor.err.Error(),
	}, result.Structured)
}

func TestExtractTool_PassesInputThrough(t *testing.T) {
	autoDetect := false
	extractor := &mockExtractor{
		output: &web.ExtractOutput{DataType: "linkedin_person_profile"},
	}
	tool := &ExtractTool{extractor: extractor}

	_, err := tool.Call(context.Background(), &web.ExtractInput{
		URL:              "https://www.linkedin.com/in/someone",
		DataType:         "linkedin_person_profile",
		AutoDetect:       &autoDetect,
		MaxWaitTime:      60,
		AdditionalParams: map[string]any{"country": "US"},
	})
	require.NoError(t, err)

	input := extractor.lastInput
	assert.Equal(t, "linkedin_person_profile", input.DataType)
	require.NotNil(t, input.AutoDetect)
	assert.False(t, *input.AutoDetect)
	assert.Equal(t, 60, input.MaxWaitTime)
	assert.Equal(t, map[string]any{"country": "US"}, input.AdditionalParams)
}

func TestExtractTool_Metadata(t *testing.T) {
	tool := &ExtractTool{}

	assert.Equal(t, "extract", tool.Name())
	assert.Contains(t, tool.Description(), "structured data")

	annotations := tool.Annotations()
	require.NotNil(t, annotations)
	assert.True(t, annotations.ReadOnlyHint)
	assert.True(t, annotations.IdempotentHint)
	assert.True(t, annotations.OpenWorldHint)
}

func TestExtractTool_Schema(t *testing.T) {
	tool := &ExtractTool{}
	s := tool.Schema()

	require.NotNil(t, s)
	assert.Equal(t, []string{"url"}, s.Required)
	for _, name := range []string{"url", "data_type", "auto_detect", "max_wait_time", "additional_params"} {
		assert.Contains(t, s.Properties, name)
	}
}
