// ABOUTME: HTTP client for the hackathon jobs backend API
// ABOUTME: Attaches the bearer token to every call and maps failures to typed errors

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the per-request timeout unless overridden
const DefaultTimeout = 30 * time.Second

// Client is the API client for the jobs backend
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          func() string
	onUnauthorized func()
}

// Option customises a Client
type Option func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets the function returning the current bearer token.
// An empty token sends no Authorization header.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) {
		c.token = fn
	}
}

// WithUnauthorizedHandler sets a hook run whenever an authenticated call
// comes back 401. The auth session uses it to drop a rejected token.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		token: func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetTokenSource replaces the token source after construction
func (c *Client) SetTokenSource(fn func() string) {
	c.token = fn
}

// SetUnauthorizedHandler replaces the 401 hook after construction
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// request describes one API call
type request struct {
	method string
	path   string
	body   any
	// token overrides the token source when non-empty
	token string
	// skipAuthHook suppresses the 401 hook (login endpoints answer 401 for bad credentials)
	skipAuthHook bool
}

// do performs the request and decodes a 2xx JSON body into out (when out is
// non-nil). A *[]byte out receives the raw body.
func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	token := r.token
	if token == "" {
		token = c.token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.handleErrorResponse(resp)
		if resp.StatusCode == http.StatusUnauthorized && token != "" && !r.skipAuthHook && c.onUnauthorized != nil {
			slog.Warn("Authentication expired, dropping stored token", "path", r.path)
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: c.baseURL, Err: err}
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts transport and context errors into a NetworkError
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	return &NetworkError{
		URL:      c.baseURL,
		Err:      err,
		Canceled: ctx.Err() == context.Canceled,
		Timeout:  ctx.Err() == context.DeadlineExceeded || isTimeout(err),
	}
}

// handleErrorResponse parses API error responses into an APIError
func (c *Client) handleErrorResponse(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &APIError{
		Status:  resp.StatusCode,
		Message: extractMessage(data),
	}
}

// decodeList decodes a JSON array body, treating any other shape as empty
func decodeList[T any](raw json.RawMessage, path string) []T {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		slog.Warn("Invalid list response format, using empty list", "path", path)
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		slog.Warn("Invalid list response format, using empty list", "path", path, "error", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func escape(id string) string {
	return url.PathEscape(id)
}
