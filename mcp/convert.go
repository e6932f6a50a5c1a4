package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// convertTool converts a tool definition to its MCP representation.
func convertTool(tool brightdata.Tool) (mcp.Tool, error) {
	inputSchema, err := convertSchema(tool.Schema())
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("failed to convert schema for tool %s: %w", tool.Name(), err)
	}
	converted := mcp.Tool{
		Name:        tool.Name(),
		Description: tool.Description(),
		InputSchema: inputSchema,
	}
	if annotations := tool.Annotations(); annotations != nil {
		converted.Annotations = mcp.ToolAnnotation{
			Title:           annotations.Title,
			ReadOnlyHint:    mcp.ToBoolPtr(annotations.ReadOnlyHint),
			DestructiveHint: mcp.ToBoolPtr(annotations.DestructiveHint),
			IdempotentHint:  mcp.ToBoolPtr(annotations.IdempotentHint),
			OpenWorldHint:   mcp.ToBoolPtr(annotations.OpenWorldHint),
		}
	}
	return converted, nil
}

// convertSchema converts a tool schema to the MCP input schema shape,
// passing properties through a JSON round trip.
func convertSchema(s *schema.Schema) (mcp.ToolInputSchema, error) {
	inputSchema := mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]any{},
	}
	if s == nil {
		return inputSchema, nil
	}
	if s.Type != "" {
		inputSchema.Type = s.Type
	}
	inputSchema.Required = s.Required
	if len(s.Properties) > 0 {
		data, err := json.Marshal(s.Properties)
		if err != nil {
			return inputSchema, fmt.Errorf("failed to marshal schema properties: %w", err)
		}
		properties := map[string]any{}
		if err := json.Unmarshal(data, &properties); err != nil {
			return inputSchema, fmt.Errorf("failed to unmarshal schema properties: %w", err)
		}
		inputSchema.Properties = properties
	}
	return inputSchema, nil
}

// convertResult converts a tool result to the MCP wire shape. Text, image,
// and audio content pass through; anything else is flattened to text.
func convertResult(result *brightdata.ToolResult) *mcp.CallToolResult {
	if result == nil {
		return mcp.NewToolResultError("tool returned no result")
	}
	converted := &mcp.CallToolResult{IsError: result.IsError}
	for _, content := range result.Content {
		switch content.Type {
		case brightdata.ToolResultContentTypeImage:
			converted.Content = append(converted.Content, mcp.ImageContent{
				Type:     "image",
				Data:     content.Data,
				MIMEType: content.MimeType,
			})
		case brightdata.ToolResultContentTypeAudio:
			converted.Content = append(converted.Content, mcp.AudioContent{
				Type:     "audio",
				Data:     content.Data,
				MIMEType: content.MimeType,
			})
		default:
			converted.Content = append(converted.Content, mcp.TextContent{
				Type: "text",
				Text: content.Text,
			})
		}
	}
	if result.Structured != nil {
		converted.StructuredContent = result.Structured
	}
	return converted
}
