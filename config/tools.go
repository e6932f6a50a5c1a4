package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/datasets"
	"github.com/deepnoodle-ai/brightdata/slogger"
	"github.com/deepnoodle-ai/brightdata/toolkit"
	"github.com/deepnoodle-ai/brightdata/unlocker"
	"github.com/deepnoodle-ai/brightdata/web"
	"github.com/gobwas/glob"
)

// ToolInitializer is a function that builds a tool from the shared
// configuration and the tool's Parameters block.
type ToolInitializer func(cfg *Config, params map[string]any) (brightdata.Tool, error)

// ToolInitializers maps tool names to their initialization functions.
var ToolInitializers = map[string]ToolInitializer{
	"search_engine": InitializeSearchEngineTool,
	"scrape":        InitializeScrapeTool,
	"extract":       InitializeExtractTool,
}

// InitializeToolByName initializes a single tool by name.
func InitializeToolByName(cfg *Config, name string, params map[string]any) (brightdata.Tool, error) {
	initializer, ok := ToolInitializers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return initializer(cfg, params)
}

// AvailableToolNames returns the sorted names of all registered tools.
func AvailableToolNames() []string {
	names := make([]string, 0, len(ToolInitializers))
	for name := range ToolInitializers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitializeSearchEngineTool builds the search_engine tool backed by a Web
// Unlocker client.
func InitializeSearchEngineTool(cfg *Config, params map[string]any) (brightdata.Tool, error) {
	client, err := newUnlockerClient(cfg)
	if err != nil {
		return nil, err
	}
	var options toolkit.SearchEngineToolOptions
	if err := convertToolConfig(params, &options); err != nil {
		return nil, err
	}
	if options.DefaultEngine == "" && cfg.DefaultEngine != "" {
		options.DefaultEngine = web.Engine(cfg.DefaultEngine)
	}
	options.Searcher = client
	return toolkit.NewSearchEngineTool(options), nil
}

// InitializeScrapeTool builds the scrape tool backed by a Web Unlocker
// client.
func InitializeScrapeTool(cfg *Config, params map[string]any) (brightdata.Tool, error) {
	client, err := newUnlockerClient(cfg)
	if err != nil {
		return nil, err
	}
	var options toolkit.ScrapeToolOptions
	if err := convertToolConfig(params, &options); err != nil {
		return nil, err
	}
	options.Scraper = client
	return toolkit.NewScrapeTool(options), nil
}

// InitializeExtractTool builds the extract tool backed by a datasets
// client.
func InitializeExtractTool(cfg *Config, params map[string]any) (brightdata.Tool, error) {
	var opts []datasets.ClientOption
	if cfg.APIToken != "" {
		opts = append(opts, datasets.WithAPIToken(cfg.APIToken))
	}
	client, err := datasets.New(opts...)
	if err != nil {
		return nil, err
	}
	var options toolkit.ExtractToolOptions
	if err := convertToolConfig(params, &options); err != nil {
		return nil, err
	}
	options.Extractor = client
	return toolkit.NewExtractTool(options), nil
}

// InitializeTools builds the tool set described by the configuration: the
// listed tools, or every registered tool when none are listed, minus
// disabled entries, filtered by the AllowedTools patterns, each wrapped
// with the configured middleware.
func InitializeTools(cfg *Config, logger slogger.Logger) ([]brightdata.Tool, error) {
	if logger == nil {
		logger = slogger.DefaultLogger
	}
	entries := cfg.Tools
	if len(entries) == 0 {
		for _, name := range AvailableToolNames() {
			entries = append(entries, Tool{Name: name})
		}
	}
	allowed, err := compileAllowedTools(cfg.AllowedTools)
	if err != nil {
		return nil, err
	}

	var tools []brightdata.Tool
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("tool name is required")
		}
		if !entry.IsEnabled() {
			continue
		}
		if !allowed.match(entry.Name) {
			continue
		}
		tool, err := InitializeToolByName(cfg, entry.Name, entry.Parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tool %s: %w", entry.Name, err)
		}
		tool, err = applyMiddleware(cfg, tool, logger)
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

func newUnlockerClient(cfg *Config) (*unlocker.Client, error) {
	var opts []unlocker.ClientOption
	if cfg.APIToken != "" {
		opts = append(opts, unlocker.WithAPIToken(cfg.APIToken))
	}
	if cfg.Zone != "" {
		opts = append(opts, unlocker.WithZone(cfg.Zone))
	}
	return unlocker.New(opts...)
}

// convertToolConfig decodes a tool's Parameters block into its typed
// options struct via a JSON round trip.
func convertToolConfig(params map[string]any, options any) error {
	if len(params) == 0 {
		return nil
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal tool config: %w", err)
	}
	if err := json.Unmarshal(paramsJSON, options); err != nil {
		return fmt.Errorf("failed to unmarshal tool config: %w", err)
	}
	return nil
}

// allowedToolSet is a compiled AllowedTools filter. An empty set allows
// every tool.
type allowedToolSet []glob.Glob

func compileAllowedTools(patterns []string) (allowedToolSet, error) {
	set := make(allowedToolSet, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed tool pattern %q: %w", pattern, err)
		}
		set = append(set, g)
	}
	return set, nil
}

func (s allowedToolSet) match(name string) bool {
	if len(s) == 0 {
		return true
	}
	for _, g := range s {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// applyMiddleware wraps a tool per the configuration. The rate limiter sits
// closest to the tool and the circuit breaker outermost, so an open circuit
// fails fast without consuming limiter tokens.
func applyMiddleware(cfg *Config, tool brightdata.Tool, logger slogger.Logger) (brightdata.Tool, error) {
	if cfg.RateLimit != nil && cfg.RateLimit.RequestsPerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		tool = toolkit.WithRateLimit(tool, cfg.RateLimit.RequestsPerSecond, burst)
	}
	if cfg.CircuitBreaker != nil {
		interval, err := parseDuration(cfg.CircuitBreaker.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid circuit breaker interval: %w", err)
		}
		timeout, err := parseDuration(cfg.CircuitBreaker.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid circuit breaker timeout: %w", err)
		}
		tool = toolkit.WithCircuitBreaker(tool, toolkit.CircuitBreakerOptions{
			MaxFailures: cfg.CircuitBreaker.MaxFailures,
			Interval:    interval,
			Timeout:     timeout,
			Logger:      logger,
		})
	}
	return tool, nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	return time.ParseDuration(value)
}
