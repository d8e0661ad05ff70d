package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mxwebio/mxweb-utils/flow"
	"github.com/mxwebio/mxweb-utils/token"
)

// maxErrorBody caps how much of an error response body is kept on a
// StatusError.
const maxErrorBody = 2048

// Config configures the client.
type Config struct {
	// BaseURL is the root all request paths are joined to. Required.
	BaseURL string

	// Timeout applies to each individual HTTP request when no custom
	// HTTPClient is supplied.
	// Default: 30s
	Timeout time.Duration

	// Headers are added to every request.
	Headers map[string]string

	// UserAgent overrides the default User-Agent header.
	// Default: "mxweb-utils"
	UserAgent string

	// HTTPClient is the underlying HTTP client.
	// If nil, a default client with Timeout is used.
	HTTPClient *http.Client

	// Limiter, when set, gates every request through its admission queue.
	Limiter *flow.RateLimiter

	// Retry, when set, retries failed attempts. Only GET requests are
	// retried unless RetryNonIdempotent is set, and only transport
	// failures and retryable statuses (5xx, 429) count as failures worth
	// retrying.
	Retry *flow.Retry

	// RetryNonIdempotent extends retries to every verb.
	RetryNonIdempotent bool

	// Tokens, when set, supplies a bearer token for every request.
	Tokens token.Source
}

// Client is a JSON-over-HTTP client. All methods are safe for concurrent
// use.
type Client struct {
	config Config
	base   *url.URL
	http   *http.Client
}

// New creates a client from config.
func New(config Config) (*Client, error) {
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("httpclient: invalid base URL: %w", err)
	}

	// Apply defaults
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "mxweb-utils"
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config: config,
		base:   base,
		http:   httpClient,
	}, nil
}

// Get issues a GET request and decodes the JSON response into out when out
// is non-nil.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Do issues a request through the configured flow primitives: each attempt
// takes its own admission slot in the limiter, and the retry controller
// wraps the whole limiter round trip.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	attempt := func(ctx context.Context) (any, error) {
		return nil, c.attempt(ctx, method, path, body, out)
	}

	run := attempt
	if c.config.Limiter != nil {
		inner := run
		run = func(ctx context.Context) (any, error) {
			return c.config.Limiter.Do(ctx, inner)
		}
	}

	if c.config.Retry == nil || !c.retryableMethod(method) {
		_, err := run(ctx)
		return err
	}

	// Non-retryable failures short-circuit the retry loop: the op reports
	// success to the controller and the real error is surfaced afterwards.
	var permanent error
	_, err := c.config.Retry.Execute(ctx, func(ctx context.Context) (any, error) {
		_, err := run(ctx)
		if err != nil && !retryableError(err) {
			permanent = err
			return nil, nil
		}
		return nil, err
	})
	if permanent != nil {
		return permanent
	}
	return err
}

func (c *Client) retryableMethod(method string) bool {
	if c.config.RetryNonIdempotent {
		return true
	}
	return method == http.MethodGet || method == http.MethodHead
}

// retryableError reports whether err is worth retrying: transport failures
// are, HTTP status failures only when the status is transient.
func retryableError(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}

// attempt performs one HTTP round trip.
func (c *Client) attempt(ctx context.Context, method, path string, body, out any) error {
	target, err := url.JoinPath(c.base.String(), path)
	if err != nil {
		return fmt.Errorf("httpclient: join path: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("httpclient: encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("httpclient: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	if c.config.Tokens != nil {
		bearer, err := c.config.Tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("httpclient: token source: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(excerpt),
		}
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("httpclient: decode response: %w", err)
	}
	return nil
}
