package toolkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/schema"
	"github.com/deepnoodle-ai/brightdata/slogger"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// Default circuit breaker settings.
const (
	DefaultBreakerMaxFailures uint32        = 5
	DefaultBreakerTimeout     time.Duration = 30 * time.Second
	DefaultBreakerInterval    time.Duration = 60 * time.Second
)

var (
	_ brightdata.Tool = (*RateLimitedTool)(nil)
	_ brightdata.Tool = (*CircuitBreakerTool)(nil)
)

// RateLimitedTool wraps a tool with a token bucket so calls to a rate
// limited upstream are spaced out instead of rejected.
type RateLimitedTool struct {
	tool    brightdata.Tool
	limiter *rate.Limiter
}

// WithRateLimit wraps tool with a token bucket allowing rps requests per
// second with the given burst size. Calls wait for a token before reaching
// the wrapped tool, honoring context cancellation while waiting.
func WithRateLimit(tool brightdata.Tool, rps float64, burst int) *RateLimitedTool {
	return &RateLimitedTool{
		tool:    tool,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (t *RateLimitedTool) Name() string        { return t.tool.Name() }
func (t *RateLimitedTool) Description() string { return t.tool.Description() }

func (t *RateLimitedTool) Schema() *schema.Schema { return t.tool.Schema() }

func (t *RateLimitedTool) Annotations() *brightdata.ToolAnnotations {
	return t.tool.Annotations()
}

func (t *RateLimitedTool) Call(ctx context.Context, input any) (*brightdata.ToolResult, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.tool.Call(ctx, input)
}

// Unwrap returns the wrapped tool.
func (t *RateLimitedTool) Unwrap() brightdata.Tool {
	return t.tool
}

// CircuitBreakerOptions configures the circuit breaker behavior.
type CircuitBreakerOptions struct {
	// MaxFailures is the number of consecutive failures before the
	// circuit opens.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before a single
	// half-open probe is allowed through.
	Timeout time.Duration

	// Interval is the cyclic period of the closed state for clearing
	// failure counts. If 0, failures never reset until the circuit opens.
	Interval time.Duration

	// Logger receives state change events. Defaults to a no-op logger.
	Logger slogger.Logger
}

// CircuitBreakerTool wraps a tool with a circuit breaker. When the wrapped
// tool fails repeatedly at the transport level, the circuit opens and
// subsequent calls return an error record immediately without reaching the
// tool, preventing retry storms against a struggling upstream.
//
// Only Go errors returned by the tool count as failures. Error-shaped
// results (IsError set) are successful calls from the breaker's point of
// view, since the upstream answered.
type CircuitBreakerTool struct {
	tool    brightdata.Tool
	breaker *gobreaker.CircuitBreaker[*brightdata.ToolResult]
}

// WithCircuitBreaker wraps tool with a circuit breaker. Zero-valued options
// fall back to the package defaults.
func WithCircuitBreaker(tool brightdata.Tool, opts CircuitBreakerOptions) *CircuitBreakerTool {
	maxFailures := opts.MaxFailures
	if maxFailures == 0 {
		maxFailures = DefaultBreakerMaxFailures
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultBreakerTimeout
	}
	interval := opts.Interval
	if interval == 0 {
		interval = DefaultBreakerInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogger.DefaultLogger
	}

	breaker := gobreaker.NewCircuitBreaker[*brightdata.ToolResult](gobreaker.Settings{
		Name:        "tool:" + tool.Name(),
		MaxRequests: 1, // allow 1 probe in half-open state
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	return &CircuitBreakerTool{
		tool:    tool,
		breaker: breaker,
	}
}

func (t *CircuitBreakerTool) Name() string        { return t.tool.Name() }
func (t *CircuitBreakerTool) Description() string { return t.tool.Description() }

func (t *CircuitBreakerTool) Schema() *schema.Schema { return t.tool.Schema() }

func (t *CircuitBreakerTool) Annotations() *brightdata.ToolAnnotations {
	return t.tool.Annotations()
}

func (t *CircuitBreakerTool) Call(ctx context.Context, input any) (*brightdata.ToolResult, error) {
	result, err := t.breaker.Execute(func() (*brightdata.ToolResult, error) {
		return t.tool.Call(ctx, input)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			message := fmt.Sprintf("Tool %s is temporarily unavailable: %s", t.tool.Name(), err)
			return NewToolResultError(message), nil
		}
		return nil, err
	}
	return result, nil
}

// Unwrap returns the wrapped tool.
func (t *CircuitBreakerTool) Unwrap() brightdata.Tool {
	return t.tool
}

// State returns the current circuit breaker state for monitoring.
func (t *CircuitBreakerTool) State() gobreaker.State {
	return t.breaker.State()
}

// Counts returns the current circuit breaker failure and success counts.
func (t *CircuitBreakerTool) Counts() gobreaker.Counts {
	return t.breaker.Counts()
}
