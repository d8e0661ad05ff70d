// Package httpclient provides a small JSON-over-HTTP client that composes
// the flow primitives: requests pass through an optional rate limiter and an
// optional retry controller, with bearer tokens supplied by a token source.
//
// # Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Limiter: flow.NewRateLimiter(flow.RateLimitPolicy{MaxRequests: 10, Interval: time.Second}),
//	    Retry:   flow.NewRetry(flow.RetryPolicy{MaxRetries: 3, Delay: 200 * time.Millisecond}),
//	})
//
//	var quote Quote
//	err = client.Get(ctx, "/v1/quotes/ACME", &quote)
//
// Retries apply to GET requests by default; set RetryNonIdempotent to retry
// every verb. Only transport failures and retryable statuses (5xx and 429)
// are retried.
package httpclient
