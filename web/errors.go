package web

import "fmt"

// RequestError describes a non-2xx response from the scraping API. Body
// holds the raw response text so callers can surface it in result records.
type RequestError struct {
	StatusCode int
	Body       string
}

// NewRequestError creates a new RequestError with the given status code and
// response body.
func NewRequestError(statusCode int, body string) *RequestError {
	return &RequestError{StatusCode: statusCode, Body: body}
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP %d - %s", e.StatusCode, e.Body)
}

func (e *RequestError) IsRecoverable() bool {
	return e.StatusCode == 429 || // Too Many Requests
		e.StatusCode == 500 || // Internal Server Error
		e.StatusCode == 502 || // Bad Gateway
		e.StatusCode == 503 || // Service Unavailable
		e.StatusCode == 504 // Gateway Timeout
}
