// Package transport executes single HTTP round trips against a CRM provider.
// It carries no retry or caching policy of its own: one call in, one network
// request out. A retry decorator is available separately for callers that
// want one.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request is the fully assembled outbound HTTP request: the URL already
// contains the encoded query string, Body the encoded form body (empty when
// the call has none).
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

// Response is the fully buffered result of a round trip that produced a
// 2xx status.
type Response struct {
	Status int
	Body   []byte
}

// Doer executes one HTTP request. Implementations must respect the context
// and are safe for concurrent use.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Error reports a failed round trip: a connection failure, a timeout, or a
// non-2xx status. Status is 0 and Err non-nil when no HTTP response was
// received; otherwise Status and Body carry what the server returned.
type Error struct {
	Status int
	Body   []byte
	Err    error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("crm transport: %v", e.Err)
	}
	return fmt.Sprintf("crm transport: HTTP %d: %s", e.Status, e.Body)
}

func (e *Error) Unwrap() error { return e.Err }

// Transient reports whether the failure is worth retrying: network-level
// failures and 5xx responses are, client errors are not.
func (e *Error) Transient() bool {
	return e.Status == 0 || e.Status >= http.StatusInternalServerError
}

// Client is the retryless Doer over net/http. The embedded http.Client
// enforces the per-call timeout bound, so a hung provider surfaces as an
// *Error instead of blocking the caller indefinitely.
type Client struct {
	hc *http.Client
}

// NewClient returns a Client whose calls are bounded by timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{hc: &http.Client{Timeout: timeout}}
}

// Do performs exactly one network call. Non-2xx statuses, connection
// failures and timeouts all come back as *Error; a well-formed provider
// error envelope under a 200 status is not this layer's concern.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("create request: %w", err)}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Body: raw}
	}

	return &Response{Status: resp.StatusCode, Body: raw}, nil
}
