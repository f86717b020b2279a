package util

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxErrorBodySize caps how much of an error response ends up in messages.
const MaxErrorBodySize = 500

// HTTPError is a non-2xx response with its (truncated) body.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	URL        string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s (status %d): %s", e.URL, e.Status, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s (status %d)", e.URL, e.Status, e.StatusCode)
}

// Retryable is true for throttling and server-side failures.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// CheckResponse returns nil for 2xx responses. Otherwise it drains and closes
// the body and returns an *HTTPError.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode/100 == 2 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodySize+1))
	resp.Body.Close()

	body := strings.TrimSpace(string(b))
	if len(body) > MaxErrorBodySize {
		body = body[:MaxErrorBodySize] + "..."
	}
	u := ""
	if resp.Request != nil && resp.Request.URL != nil {
		u = resp.Request.URL.Redacted()
	}
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		Body:       body,
		URL:        u,
	}
}
