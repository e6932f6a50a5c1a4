// Package config defines the declarative configuration consumed by the
// brightdata binaries. A configuration selects which tools to expose, sets
// the shared Bright Data credentials and zone, and tunes the rate limiting
// and circuit breaker middleware wrapped around each tool.
//
// Configurations are written in YAML or JSON and may be split across
// multiple files in a directory, in which case they are merged in sorted
// filename order with later files taking precedence.
package config

// Config is the top-level configuration for a Bright Data tool host.
type Config struct {
	Name           string          `yaml:"Name,omitempty" json:"Name,omitempty"`
	Description    string          `yaml:"Description,omitempty" json:"Description,omitempty"`
	APIToken       string          `yaml:"APIToken,omitempty" json:"APIToken,omitempty"`
	Zone           string          `yaml:"Zone,omitempty" json:"Zone,omitempty"`
	DefaultEngine  string          `yaml:"DefaultEngine,omitempty" json:"DefaultEngine,omitempty"`
	Logging        Logging         `yaml:"Logging,omitempty" json:"Logging,omitempty"`
	Tools          []Tool          `yaml:"Tools,omitempty" json:"Tools,omitempty"`
	AllowedTools   []string        `yaml:"AllowedTools,omitempty" json:"AllowedTools,omitempty"`
	RateLimit      *RateLimit      `yaml:"RateLimit,omitempty" json:"RateLimit,omitempty"`
	CircuitBreaker *CircuitBreaker `yaml:"CircuitBreaker,omitempty" json:"CircuitBreaker,omitempty"`
}

// Logging configures log output for the host.
type Logging struct {
	Level string `yaml:"Level,omitempty" json:"Level,omitempty"`
}

// Tool selects one tool to expose. Parameters are decoded into the tool's
// options struct, so the accepted keys vary per tool.
type Tool struct {
	Name       string         `yaml:"Name,omitempty" json:"Name,omitempty"`
	Enabled    *bool          `yaml:"Enabled,omitempty" json:"Enabled,omitempty"`
	Parameters map[string]any `yaml:"Parameters,omitempty" json:"Parameters,omitempty"`
}

// IsEnabled returns true unless the tool is explicitly disabled.
func (t *Tool) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// RateLimit configures the token bucket applied to each tool call.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"RequestsPerSecond,omitempty" json:"RequestsPerSecond,omitempty"`
	Burst             int     `yaml:"Burst,omitempty" json:"Burst,omitempty"`
}

// CircuitBreaker configures the breaker applied to each tool call.
// Interval and Timeout are Go duration strings such as "30s" or "1m".
type CircuitBreaker struct {
	MaxFailures uint32 `yaml:"MaxFailures,omitempty" json:"MaxFailures,omitempty"`
	Interval    string `yaml:"Interval,omitempty" json:"Interval,omitempty"`
	Timeout     string `yaml:"Timeout,omitempty" json:"Timeout,omitempty"`
}
