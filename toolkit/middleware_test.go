package toolkit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/schema"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTool implements brightdata.Tool for middleware testing
type stubTool struct {
	result *brightdata.ToolResult
	err    error
	calls  int
}

func (s *stubTool) Name() string        { return "stub" }
func (s *stubTool) Description() string { return "A stub tool" }

func (s *stubTool) Schema() *schema.Schema {
	return &schema.Schema{Type: "object"}
}

func (s *stubTool) Annotations() *brightdata.ToolAnnotations {
	return &brightdata.ToolAnnotations{Title: "Stub", ReadOnlyHint: true}
}

func (s *stubTool) Call(ctx context.Context, input any) (*brightdata.ToolResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestRateLimitedTool_Delegates(t *testing.T) {
	stub := &stubTool{result: NewToolResultText("ok")}
	tool := WithRateLimit(stub, 100, 10)

	result, err := tool.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Text())
	assert.Equal(t, 1, stub.calls)
}

func TestRateLimitedTool_HonorsContextWhileWaiting(t *testing.T) {
	stub := &stubTool{result: NewToolResultText("ok")}
	// One token available, then a ~100s refill
	tool := WithRateLimit(stub, 0.01, 1)

	_, err := tool.Call(context.Background(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = tool.Call(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, 1, stub.calls, "The tool must not run once the wait is abandoned")
}

func TestCircuitBreakerTool_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubTool{err: errors.New("upstream down")}
	tool := WithCircuitBreaker(stub, CircuitBreakerOptions{
		MaxFailures: 2,
		Timeout:     time.Minute,
	})

	for i := 0; i < 2; i++ {
		_, err := tool.Call(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upstream down")
	}
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, gobreaker.StateOpen, tool.State())

	// The open circuit fails fast with an error record
	result, err := tool.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "temporarily unavailable")
	assert.Equal(t, 2, stub.calls, "The tool must not be called while the circuit is open")
}

func TestCircuitBreakerTool_ErrorResultsDoNotTrip(t *testing.T) {
	stub := &stubTool{result: NewToolResultError("Error searching: HTTP 400 - bad request")}
	tool := WithCircuitBreaker(stub, CircuitBreakerOptions{MaxFailures: 2})

	for i := 0; i < 5; i++ {
		result, err := tool.Call(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, result.IsError)
	}
	assert.Equal(t, 5, stub.calls)
	assert.Equal(t, gobreaker.StateClosed, tool.State())
}

func TestCircuitBreakerTool_RecoversAfterTimeout(t *testing.T) {
	stub := &stubTool{err: errors.New("down")}
	tool := WithCircuitBreaker(stub, CircuitBreakerOptions{
		MaxFailures: 1,
		Timeout:     50 * time.Millisecond,
	})

	_, err := tool.Call(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, gobreaker.StateOpen, tool.State())

	// Wait for the half-open transition, then probe successfully
	time.Sleep(100 * time.Millisecond)
	stub.err = nil
	stub.result = NewToolResultText("recovered")

	result, err := tool.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "recovered", result.Text())
	assert.Equal(t, gobreaker.StateClosed, tool.State())
}

func TestMiddleware_PreservesToolMetadata(t *testing.T) {
	stub := &stubTool{}

	limited := WithRateLimit(stub, 1, 1)
	assert.Equal(t, stub.Name(), limited.Name())
	assert.Equal(t, stub.Description(), limited.Description())
	assert.Equal(t, stub.Schema(), limited.Schema())
	assert.Equal(t, stub.Annotations(), limited.Annotations())

	broken := WithCircuitBreaker(stub, CircuitBreakerOptions{})
	assert.Equal(t, stub.Name(), broken.Name())
	assert.Equal(t, stub.Description(), broken.Description())
	assert.Equal(t, stub.Schema(), broken.Schema())
	assert.Equal(t, stub.Annotations(), broken.Annotations())
}
