package config

import "sort"

// Merge merges two configurations, with the override taking precedence.
// Scalar fields are replaced when the override sets them. Tools are merged
// by name, an overriding entry replacing the base entry wholesale, and the
// merged list is sorted by name. AllowedTools is replaced when the override
// provides any patterns.
func Merge(base, override *Config) *Config {
	result := *base

	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Description != "" {
		result.Description = override.Description
	}
	if override.APIToken != "" {
		result.APIToken = override.APIToken
	}
	if override.Zone != "" {
		result.Zone = override.Zone
	}
	if override.DefaultEngine != "" {
		result.DefaultEngine = override.DefaultEngine
	}
	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}

	toolMap := make(map[string]Tool)
	for _, tool := range base.Tools {
		toolMap[tool.Name] = tool
	}
	for _, tool := range override.Tools {
		toolMap[tool.Name] = tool
	}
	tools := make([]Tool, 0, len(toolMap))
	for _, tool := range toolMap {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	result.Tools = tools

	if len(override.AllowedTools) > 0 {
		result.AllowedTools = override.AllowedTools
	}
	if override.RateLimit != nil {
		result.RateLimit = override.RateLimit
	}
	if override.CircuitBreaker != nil {
		result.CircuitBreaker = override.CircuitBreaker
	}
	return &result
}
